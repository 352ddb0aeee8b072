package hero

import (
	"fmt"

	"github.com/cory-johannsen/heroforge/internal/game/rarity"
)

// Class identifies a hero class.
type Class string

const (
	ClassWarrior Class = "warrior"
	ClassMage    Class = "mage"
	ClassArcher  Class = "archer"
	ClassHealer  Class = "healer"
	ClassRogue   Class = "rogue"
)

// Role identifies a hero's party role.
type Role string

const (
	RoleTank    Role = "tank"
	RoleDamage  Role = "damage"
	RoleSupport Role = "support"
)

// Growth holds per-level multiplicative growth rates for the integer stats and
// the additive crit gain.
type Growth struct {
	HP      float64
	Attack  float64
	Defense float64
	Speed   float64
	Crit    float64
}

// critPerLevel is the additive crit gain shared by every class.
const critPerLevel = 0.5

type classDef struct {
	base   Stats
	growth Growth
}

var classes = map[Class]classDef{
	ClassWarrior: {
		base:   Stats{HP: 120, Attack: 14, Defense: 12, Speed: 8, Crit: 5},
		growth: Growth{HP: 0.06, Attack: 0.03, Defense: 0.04, Speed: 0.02, Crit: critPerLevel},
	},
	ClassMage: {
		base:   Stats{HP: 80, Attack: 20, Defense: 6, Speed: 10, Crit: 8},
		growth: Growth{HP: 0.04, Attack: 0.04, Defense: 0.02, Speed: 0.02, Crit: critPerLevel},
	},
	ClassArcher: {
		base:   Stats{HP: 90, Attack: 17, Defense: 7, Speed: 13, Crit: 12},
		growth: Growth{HP: 0.05, Attack: 0.04, Defense: 0.02, Speed: 0.03, Crit: critPerLevel},
	},
	ClassHealer: {
		base:   Stats{HP: 95, Attack: 10, Defense: 9, Speed: 9, Crit: 5},
		growth: Growth{HP: 0.05, Attack: 0.02, Defense: 0.03, Speed: 0.02, Crit: critPerLevel},
	},
	ClassRogue: {
		base:   Stats{HP: 85, Attack: 18, Defense: 6, Speed: 15, Crit: 15},
		growth: Growth{HP: 0.04, Attack: 0.04, Defense: 0.02, Speed: 0.03, Crit: critPerLevel},
	},
}

// rarityStatMultiplier scales level-1 base stats by summon rarity.
var rarityStatMultiplier = map[rarity.Rarity]float64{
	rarity.Common:    1.0,
	rarity.Rare:      1.1,
	rarity.Epic:      1.25,
	rarity.Legendary: 1.5,
}

// Valid reports whether c is a known class.
func (c Class) Valid() bool {
	_, ok := classes[c]
	return ok
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleTank, RoleDamage, RoleSupport:
		return true
	}
	return false
}

// GrowthFor returns the per-level growth rates for class c.
//
// Postcondition: returns an error iff c is unknown.
func GrowthFor(c Class) (Growth, error) {
	def, ok := classes[c]
	if !ok {
		return Growth{}, fmt.Errorf("unknown hero class %q", c)
	}
	return def.growth, nil
}

// BaseStatsFor returns the level-1 base stats for a hero of class c summoned
// at rarity r: each integer stat is ceil(classBase * rarityMultiplier); crit
// is the class base unscaled.
//
// Postcondition: returns an error iff c or r is unknown.
func BaseStatsFor(c Class, r rarity.Rarity) (Stats, error) {
	def, ok := classes[c]
	if !ok {
		return Stats{}, fmt.Errorf("unknown hero class %q", c)
	}
	m, ok := rarityStatMultiplier[r]
	if !ok {
		return Stats{}, fmt.Errorf("unknown hero rarity %q", r)
	}
	return Stats{
		HP:      ceilStat(float64(def.base.HP) * m),
		Attack:  ceilStat(float64(def.base.Attack) * m),
		Defense: ceilStat(float64(def.base.Defense) * m),
		Speed:   ceilStat(float64(def.base.Speed) * m),
		Crit:    def.base.Crit,
	}, nil
}

// Grow applies one level of growth g to s: integer stats become
// ceil(stat * (1 + rate)) and crit grows additively.
func Grow(s Stats, g Growth) Stats {
	return Stats{
		HP:      ceilStat(float64(s.HP) * (1 + g.HP)),
		Attack:  ceilStat(float64(s.Attack) * (1 + g.Attack)),
		Defense: ceilStat(float64(s.Defense) * (1 + g.Defense)),
		Speed:   ceilStat(float64(s.Speed) * (1 + g.Speed)),
		Crit:    s.Crit + g.Crit,
	}
}
