package hero

import (
	"fmt"

	"github.com/cory-johannsen/heroforge/internal/game/rarity"
)

// Equipment is the equipment collaborator a hero may hold. TotalBonus is
// recomputed by the implementation on every call.
type Equipment interface {
	TotalBonus() Stats
}

// Instance is a mutable roster hero. It is owned by exactly one Roster and is
// not safe for concurrent mutation.
//
// Invariants: CurrentHP <= MaxHP(); RequiredXP == RequiredXP(Level);
// Experience < RequiredXP after any leveling pass.
type Instance struct {
	ID           string
	TemplateID   string
	Name         string
	Class        Class
	Role         Role
	Rarity       rarity.Rarity
	Level        int
	Experience   int
	RequiredXP   int
	TalentPoints int
	BaseStats    Stats
	CurrentStats Stats
	CurrentHP    int
	Equipment    Equipment
}

// NewInstance creates a level-1 hero from tmpl using the class base-stat
// formula for the template's rarity.
//
// Precondition: id must be non-empty; tmpl must have passed Validate.
// Postcondition: Level == 1, Experience == 0, CurrentHP == MaxHP().
func NewInstance(id string, tmpl Template) (*Instance, error) {
	if id == "" {
		return nil, fmt.Errorf("hero instance id must not be empty")
	}
	base, err := BaseStatsFor(tmpl.Class, tmpl.Rarity)
	if err != nil {
		return nil, fmt.Errorf("creating hero from template %q: %w", tmpl.ID, err)
	}
	h := &Instance{
		ID:           id,
		TemplateID:   tmpl.ID,
		Name:         tmpl.Name,
		Class:        tmpl.Class,
		Role:         tmpl.Role,
		Rarity:       tmpl.Rarity,
		Level:        1,
		RequiredXP:   RequiredXP(1),
		BaseStats:    base,
		CurrentStats: base,
		CurrentHP:    base.HP,
	}
	return h, nil
}

// MaxHP returns the hero's effective maximum hit points.
func (h *Instance) MaxHP() int {
	return h.CurrentStats.HP
}

// MissingHP returns MaxHP() - CurrentHP, never negative.
func (h *Instance) MissingHP() int {
	missing := h.MaxHP() - h.CurrentHP
	if missing < 0 {
		return 0
	}
	return missing
}

// RestoreHP sets CurrentHP to MaxHP().
func (h *Instance) RestoreHP() {
	h.CurrentHP = h.MaxHP()
}

// Equip replaces the hero's equipment and recalculates effective stats.
// Passing nil removes all equipment.
func (h *Instance) Equip(eq Equipment) {
	h.Equipment = eq
	h.Recalculate()
}

// Recalculate recomputes effective stats as base plus the equipment bonus,
// or base alone without equipment, and clamps CurrentHP to the new maximum.
//
// Postcondition: CurrentHP <= MaxHP().
func (h *Instance) Recalculate() {
	h.CurrentStats = h.BaseStats
	if h.Equipment != nil {
		h.CurrentStats = h.BaseStats.Add(h.Equipment.TotalBonus())
	}
	if h.CurrentHP > h.MaxHP() {
		h.CurrentHP = h.MaxHP()
	}
}

// Matches reports whether h is a duplicate of tmpl: same name, class, and
// rarity.
func (h *Instance) Matches(tmpl Template) bool {
	return h.Name == tmpl.Name && h.Class == tmpl.Class && h.Rarity == tmpl.Rarity
}
