package hero

import "math"

// RequiredXP returns the experience needed to advance from level to
// level+1: floor(100 * level^1.5). Levels below 1 are treated as 1.
func RequiredXP(level int) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(100 * math.Pow(float64(level), 1.5)))
}

// LevelUp describes one level gained during a GainXP pass. It is advisory
// output for logs and presentation.
type LevelUp struct {
	Level     int
	BaseStats Stats
	MaxHP     int
}

// GainXP adds amount experience and applies every level-up it pays for.
//
// Each level-up subtracts RequiredXP, increments Level, grows the base stats
// by the class growth table, recomputes RequiredXP for the new level, and
// fully restores CurrentHP to the new MaxHP. Effective stats are recomputed
// from base plus equipment after the loop. Non-positive amounts are ignored.
//
// Postcondition: Experience < RequiredXP; len(result) equals the number of
// levels gained.
func (h *Instance) GainXP(amount int) []LevelUp {
	if amount <= 0 {
		return nil
	}
	growth, err := GrowthFor(h.Class)
	if err != nil {
		growth = Growth{Crit: critPerLevel}
	}
	if h.RequiredXP <= 0 {
		h.RequiredXP = RequiredXP(h.Level)
	}

	h.Experience += amount
	var ups []LevelUp
	for h.Experience >= h.RequiredXP {
		h.Experience -= h.RequiredXP
		h.Level++
		h.BaseStats = Grow(h.BaseStats, growth)
		h.RequiredXP = RequiredXP(h.Level)
		h.Recalculate()
		h.RestoreHP()
		ups = append(ups, LevelUp{Level: h.Level, BaseStats: h.BaseStats, MaxHP: h.MaxHP()})
	}
	h.Recalculate()
	return ups
}

// XPToLevel returns the total experience a hero at fromLevel with zero
// progress needs to reach toLevel.
func XPToLevel(fromLevel, toLevel int) int {
	total := 0
	for l := fromLevel; l < toLevel; l++ {
		total += RequiredXP(l)
	}
	return total
}
