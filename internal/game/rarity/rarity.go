// Package rarity implements weighted rarity selection with renormalization
// under filtering, the pity counter, and the ten-pull guarantee.
package rarity

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Rarity is a reward tier.
type Rarity string

const (
	Common    Rarity = "common"
	Rare      Rarity = "rare"
	Epic      Rarity = "epic"
	Legendary Rarity = "legendary"
)

// Order lists every rarity from rarest to most common. Rolls scan in this
// order, so the rarest tier owns the lowest slice of [0, 100).
var Order = []Rarity{Legendary, Epic, Rare, Common}

// Parse converts s into a Rarity.
//
// Postcondition: returns an error iff s does not name a known rarity.
func Parse(s string) (Rarity, error) {
	r := Rarity(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown rarity %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the known rarities.
func (r Rarity) Valid() bool {
	switch r {
	case Common, Rare, Epic, Legendary:
		return true
	}
	return false
}

// Tier returns 0 for common up to 3 for legendary, or -1 for an unknown rarity.
func (r Rarity) Tier() int {
	switch r {
	case Common:
		return 0
	case Rare:
		return 1
	case Epic:
		return 2
	case Legendary:
		return 3
	}
	return -1
}

// Next returns the rarity exactly one tier above r. Legendary and unknown
// rarities are returned unchanged.
func (r Rarity) Next() Rarity {
	switch r {
	case Common:
		return Rare
	case Rare:
		return Epic
	case Epic:
		return Legendary
	}
	return r
}

// String returns the lower-case rarity name.
func (r Rarity) String() string { return string(r) }

// IsHighTier reports whether r resets the pity counter (epic or legendary).
func IsHighTier(r Rarity) bool {
	return r == Epic || r == Legendary
}

// IsRareOrBetter reports whether r satisfies the ten-pull guarantee.
func IsRareOrBetter(r Rarity) bool {
	return r.Tier() >= Rare.Tier()
}

// Rates maps each rarity to its drop rate in percent.
type Rates map[Rarity]float64

// DefaultSummonRates is the hero summon distribution.
var DefaultSummonRates = Rates{Common: 60, Rare: 25, Epic: 12, Legendary: 3}

// rateTolerance absorbs float noise in configured percentages.
const rateTolerance = 0.001

// Validate checks that every key is a known rarity, no rate is negative, and
// the rates sum to 100.
//
// Postcondition: returns nil iff all constraints hold; otherwise one error
// describing every violation.
func (rs Rates) Validate() error {
	var errs []string
	var sum float64
	for _, r := range sortedKeys(rs) {
		v := rs[r]
		if !r.Valid() {
			errs = append(errs, fmt.Sprintf("unknown rarity %q", r))
		}
		if v < 0 || math.IsNaN(v) {
			errs = append(errs, fmt.Sprintf("rate for %s must be >= 0, got %v", r, v))
		}
		sum += v
	}
	if math.Abs(sum-100) > rateTolerance {
		errs = append(errs, fmt.Sprintf("rates must sum to 100, got %v", sum))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid rarity rates: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Clone returns an independent copy of rs.
func (rs Rates) Clone() Rates {
	out := make(Rates, len(rs))
	for k, v := range rs {
		out[k] = v
	}
	return out
}

// sortedKeys returns the keys of rs in Order first, then any unknown keys in
// lexical order, so validation messages are stable.
func sortedKeys(rs Rates) []Rarity {
	keys := make([]Rarity, 0, len(rs))
	for _, r := range Order {
		if _, ok := rs[r]; ok {
			keys = append(keys, r)
		}
	}
	var unknown []string
	for r := range rs {
		if !r.Valid() {
			unknown = append(unknown, string(r))
		}
	}
	sort.Strings(unknown)
	for _, u := range unknown {
		keys = append(keys, Rarity(u))
	}
	return keys
}
