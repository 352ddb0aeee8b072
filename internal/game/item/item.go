// Package item provides the item stat generator, item instances, and the
// hero equipment loadout.
package item

import (
	"fmt"
	"math"
	"strings"

	"github.com/cory-johannsen/heroforge/internal/game/hero"
	"github.com/cory-johannsen/heroforge/internal/game/rarity"
)

// MaxEnchantLevel is the highest enchant level an item can reach.
const MaxEnchantLevel = 10

// Slot identifies an equipment slot.
type Slot string

const (
	SlotWeapon    Slot = "weapon"
	SlotArmor     Slot = "armor"
	SlotHelmet    Slot = "helmet"
	SlotBoots     Slot = "boots"
	SlotAccessory Slot = "accessory"
)

// Slots lists every slot in display order.
var Slots = []Slot{SlotWeapon, SlotArmor, SlotHelmet, SlotBoots, SlotAccessory}

// Weights holds per-stat weights for a slot. A zero weight means the slot
// never rolls that stat.
type Weights struct {
	HP      float64
	Attack  float64
	Defense float64
	Speed   float64
	Crit    float64
}

type slotDef struct {
	name    string
	weights Weights
}

var slotDefs = map[Slot]slotDef{
	SlotWeapon:    {name: "Blade", weights: Weights{Attack: 1.0, Crit: 0.2}},
	SlotArmor:     {name: "Cuirass", weights: Weights{Defense: 1.0, HP: 3.0}},
	SlotHelmet:    {name: "Helm", weights: Weights{Defense: 0.6, HP: 2.0}},
	SlotBoots:     {name: "Greaves", weights: Weights{Speed: 0.5, Defense: 0.4}},
	SlotAccessory: {name: "Amulet", weights: Weights{Attack: 0.4, Crit: 0.3, HP: 1.0}},
}

// rarityMultiplier scales generated stats and gold value by rarity.
var rarityMultiplier = map[rarity.Rarity]float64{
	rarity.Common:    1.0,
	rarity.Rare:      1.5,
	rarity.Epic:      2.2,
	rarity.Legendary: 3.0,
}

// Valid reports whether s is a known slot.
func (s Slot) Valid() bool {
	_, ok := slotDefs[s]
	return ok
}

// WeightsFor returns the stat weights of slot s, or zero weights for an
// unknown slot.
func WeightsFor(s Slot) Weights {
	return slotDefs[s].weights
}

// RarityMultiplier returns the stat multiplier for r, or 1 for an unknown
// rarity.
func RarityMultiplier(r rarity.Rarity) float64 {
	if m, ok := rarityMultiplier[r]; ok {
		return m
	}
	return 1
}

// GenerateStats returns the stat block for an item: every stat the slot
// weights is floor(3 * level^1.2 * rarityMultiplier * slotWeight).
// Levels below 1 are treated as 1.
func GenerateStats(level int, r rarity.Rarity, s Slot) hero.Stats {
	if level < 1 {
		level = 1
	}
	power := 3 * math.Pow(float64(level), 1.2) * RarityMultiplier(r)
	w := WeightsFor(s)
	return hero.Stats{
		HP:      int(math.Floor(power * w.HP)),
		Attack:  int(math.Floor(power * w.Attack)),
		Defense: int(math.Floor(power * w.Defense)),
		Speed:   int(math.Floor(power * w.Speed)),
		Crit:    math.Floor(power * w.Crit),
	}
}

// GoldValue returns the base market value of an item:
// floor(20 * level * rarityMultiplier).
func GoldValue(level int, r rarity.Rarity) int {
	if level < 1 {
		level = 1
	}
	return int(math.Floor(20 * float64(level) * RarityMultiplier(r)))
}

// Instance is a generated item.
type Instance struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Rarity       rarity.Rarity `json:"rarity"`
	Level        int           `json:"level"`
	Slot         Slot          `json:"slot"`
	Stats        hero.Stats    `json:"stats"`
	GoldValue    int           `json:"gold_value"`
	EnchantLevel int           `json:"enchant_level"`
}

// New synthesizes an item of the given level, rarity, and slot.
//
// Precondition: id must be non-empty.
// Postcondition: Level >= 1; EnchantLevel == 0; Stats == GenerateStats(...).
func New(id string, level int, r rarity.Rarity, s Slot) Instance {
	if level < 1 {
		level = 1
	}
	return Instance{
		ID:        id,
		Name:      Name(r, s),
		Rarity:    r,
		Level:     level,
		Slot:      s,
		Stats:     GenerateStats(level, r, s),
		GoldValue: GoldValue(level, r),
	}
}

// Name returns the display name for an item of rarity r in slot s, e.g.
// "Epic Helm".
func Name(r rarity.Rarity, s Slot) string {
	base := slotDefs[s].name
	if base == "" {
		base = string(s)
	}
	tier := string(r)
	if tier != "" {
		tier = strings.ToUpper(tier[:1]) + tier[1:]
	}
	return fmt.Sprintf("%s %s", tier, base)
}

// CanEnchant reports whether the item is below MaxEnchantLevel.
func (i Instance) CanEnchant() bool {
	return i.EnchantLevel < MaxEnchantLevel
}

// EffectiveStats returns the item stats scaled by +10% per enchant level,
// floored per stat.
func (i Instance) EffectiveStats() hero.Stats {
	if i.EnchantLevel <= 0 {
		return i.Stats
	}
	m := 1 + 0.1*float64(i.EnchantLevel)
	return hero.Stats{
		HP:      int(math.Floor(float64(i.Stats.HP) * m)),
		Attack:  int(math.Floor(float64(i.Stats.Attack) * m)),
		Defense: int(math.Floor(float64(i.Stats.Defense) * m)),
		Speed:   int(math.Floor(float64(i.Stats.Speed) * m)),
		Crit:    math.Floor(i.Stats.Crit*m*10) / 10,
	}
}
