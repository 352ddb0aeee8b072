package hero

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/heroforge/internal/game/rarity"
)

// Catalog is the read-only hero template catalog partitioned by rarity.
// It is safe for concurrent reads once constructed.
type Catalog struct {
	byID     map[string]Template
	byRarity map[rarity.Rarity][]Template
}

// NewCatalog indexes templates by ID and rarity.
//
// Precondition: every template has passed Validate.
// Postcondition: Returns an error iff a template is invalid or an ID repeats.
// Within a rarity, templates keep their ID order so uniform picks are stable
// for a given random stream.
func NewCatalog(templates []*Template) (*Catalog, error) {
	c := &Catalog{
		byID:     make(map[string]Template, len(templates)),
		byRarity: make(map[rarity.Rarity][]Template),
	}
	for _, t := range templates {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.byID[t.ID]; exists {
			return nil, fmt.Errorf("hero catalog: template ID %q already registered", t.ID)
		}
		c.byID[t.ID] = *t
		c.byRarity[t.Rarity] = append(c.byRarity[t.Rarity], *t)
	}
	for r := range c.byRarity {
		pool := c.byRarity[r]
		sort.Slice(pool, func(i, j int) bool { return pool[i].ID < pool[j].ID })
	}
	return c, nil
}

// Get returns the template with the given ID and whether it exists.
func (c *Catalog) Get(id string) (Template, bool) {
	t, ok := c.byID[id]
	return t, ok
}

// ByRarity returns a copy of the templates of rarity r, ordered by ID.
//
// Postcondition: the returned slice may be empty; mutating it does not
// affect the catalog.
func (c *Catalog) ByRarity(r rarity.Rarity) []Template {
	return append([]Template(nil), c.byRarity[r]...)
}

// Len returns the number of templates in the catalog.
func (c *Catalog) Len() int {
	return len(c.byID)
}

// MissingRarities lists rarities with no templates, rarest first. A catalog
// fit for summoning returns an empty slice.
func (c *Catalog) MissingRarities() []rarity.Rarity {
	var missing []rarity.Rarity
	for _, r := range rarity.Order {
		if len(c.byRarity[r]) == 0 {
			missing = append(missing, r)
		}
	}
	return missing
}
