package item

import "github.com/cory-johannsen/heroforge/internal/game/hero"

// Loadout holds at most one item per slot for a hero and implements
// hero.Equipment.
type Loadout struct {
	slots map[Slot]*Instance
}

// NewLoadout returns an empty Loadout.
//
// Postcondition: every slot is empty.
func NewLoadout() *Loadout {
	return &Loadout{slots: make(map[Slot]*Instance)}
}

// Equip places it in its slot and returns the item previously there, or nil.
//
// Precondition: it must not be nil and it.Slot must be valid.
func (l *Loadout) Equip(it *Instance) *Instance {
	prev := l.slots[it.Slot]
	l.slots[it.Slot] = it
	return prev
}

// Unequip empties slot s and returns the removed item, or nil.
func (l *Loadout) Unequip(s Slot) *Instance {
	prev := l.slots[s]
	delete(l.slots, s)
	return prev
}

// Item returns the item in slot s, or nil.
func (l *Loadout) Item(s Slot) *Instance {
	return l.slots[s]
}

// Items returns equipped items in Slots order.
func (l *Loadout) Items() []*Instance {
	var out []*Instance
	for _, s := range Slots {
		if it := l.slots[s]; it != nil {
			out = append(out, it)
		}
	}
	return out
}

// TotalBonus sums the enchant-scaled stats of every equipped item.
//
// Postcondition: an empty Loadout returns the zero Stats.
func (l *Loadout) TotalBonus() hero.Stats {
	var total hero.Stats
	for _, it := range l.Items() {
		total = total.Add(it.EffectiveStats())
	}
	return total
}
