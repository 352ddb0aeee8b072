package rarity

import "github.com/cory-johannsen/heroforge/internal/game/dice"

// Roll draws one rarity from rates.
//
// A draw r in [0, 100) is taken from src. When allowed is non-empty the table
// is restricted to those rarities and renormalized so the restricted rates
// still sum to 100. Rarities are scanned from rarest to most common with a
// running cumulative total; the first rarity whose cumulative boundary
// exceeds r wins.
//
// Example with {common:60, rare:25, epic:12, legendary:3}: the boundaries are
// legendary=3, epic=15, rare=40, common=100, so r=97 resolves to common and
// r=2 resolves to legendary.
//
// Postcondition: never panics. If float drift leaves r above every boundary,
// or every allowed rate is zero, the first allowed rarity is returned, or
// Common when unrestricted.
func Roll(src dice.Source, rates Rates, allowed ...Rarity) Rarity {
	r := dice.Unit(src) * 100
	return resolve(r, rates, allowed)
}

// resolve maps a draw in [0, 100) onto rates.
func resolve(r float64, rates Rates, allowed []Rarity) Rarity {
	fallback := Common
	if len(allowed) > 0 {
		fallback = allowed[0]
	}

	scale := 1.0
	include := func(Rarity) bool { return true }
	if len(allowed) > 0 {
		set := make(map[Rarity]bool, len(allowed))
		var total float64
		for _, a := range allowed {
			if set[a] {
				continue
			}
			set[a] = true
			if v := rates[a]; v > 0 {
				total += v
			}
		}
		if total <= 0 {
			return fallback
		}
		scale = 100 / total
		include = func(x Rarity) bool { return set[x] }
	}

	var cumulative float64
	for _, x := range Order {
		if !include(x) {
			continue
		}
		v := rates[x]
		if v <= 0 {
			continue
		}
		cumulative += v * scale
		if r < cumulative {
			return x
		}
	}
	return fallback
}
