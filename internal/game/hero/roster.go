package hero

import (
	"fmt"

	"github.com/cory-johannsen/heroforge/internal/game/idgen"
)

// Receipt reports how a summoned template was absorbed into a roster.
type Receipt struct {
	Hero      *Instance
	Duplicate bool
}

// Roster owns a player's hero instances. It is not safe for concurrent use;
// callers serialize mutation per roster.
type Roster struct {
	ids    idgen.Generator
	heroes []*Instance
}

// NewRoster returns a Roster seeded with existing heroes.
//
// Precondition: ids must be non-nil.
func NewRoster(ids idgen.Generator, existing ...*Instance) *Roster {
	return &Roster{ids: ids, heroes: append([]*Instance(nil), existing...)}
}

// Heroes returns the roster's heroes in acquisition order. The slice is a
// copy; the instances are shared.
func (r *Roster) Heroes() []*Instance {
	return append([]*Instance(nil), r.heroes...)
}

// Len returns the number of heroes.
func (r *Roster) Len() int {
	return len(r.heroes)
}

// Get returns the hero with the given ID.
func (r *Roster) Get(id string) (*Instance, bool) {
	for _, h := range r.heroes {
		if h.ID == id {
			return h, true
		}
	}
	return nil, false
}

// FindDuplicate returns the roster hero matching tmpl by name, class, and
// rarity, or nil.
func (r *Roster) FindDuplicate(tmpl Template) *Instance {
	for _, h := range r.heroes {
		if h.Matches(tmpl) {
			return h
		}
	}
	return nil
}

// Receive absorbs a summoned template. A duplicate grants the existing hero
// one talent point; otherwise a new level-1 hero joins the roster.
//
// Postcondition: on a duplicate Len() is unchanged and the matched hero's
// TalentPoints increased by exactly 1; otherwise Len() grew by 1.
func (r *Roster) Receive(tmpl Template) (Receipt, error) {
	if h := r.FindDuplicate(tmpl); h != nil {
		h.TalentPoints++
		return Receipt{Hero: h, Duplicate: true}, nil
	}
	h, err := NewInstance(r.ids.NewID(), tmpl)
	if err != nil {
		return Receipt{}, err
	}
	r.heroes = append(r.heroes, h)
	return Receipt{Hero: h}, nil
}

// ReceiveAll absorbs templates in order, stopping at the first error.
func (r *Roster) ReceiveAll(tmpls []Template) ([]Receipt, error) {
	out := make([]Receipt, 0, len(tmpls))
	for _, t := range tmpls {
		rec, err := r.Receive(t)
		if err != nil {
			return out, fmt.Errorf("receiving %q: %w", t.ID, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
