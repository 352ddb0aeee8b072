// Package loot generates gold and item rewards for combat victories,
// treasure chests, and hidden paths.
package loot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cory-johannsen/heroforge/internal/game/rarity"
)

// EnemyType selects the item drop probability for a defeated enemy.
type EnemyType string

const (
	EnemyNormal EnemyType = "normal"
	EnemyElite  EnemyType = "elite"
	EnemyBoss   EnemyType = "boss"
)

// Config parameterizes loot generation. It is read-only once an Engine is
// built from it.
type Config struct {
	// BaseGoldPerLevel is the combat gold paid per enemy level before variance.
	BaseGoldPerLevel float64 `yaml:"base_gold_per_level" mapstructure:"base_gold_per_level"`
	// GoldVariance is V in the per-enemy variance range [1-V, 1+V].
	GoldVariance float64 `yaml:"gold_variance" mapstructure:"gold_variance"`
	// DropChance maps enemy type to item drop probability in [0, 1].
	DropChance map[EnemyType]float64 `yaml:"drop_chance" mapstructure:"drop_chance"`
	// CombatRates is the rarity table for combat drops.
	CombatRates rarity.Rates `yaml:"combat_rates" mapstructure:"combat_rates"`
	// MinLevelOffset and MaxLevelOffset bound the combat item level offset
	// from the enemy level.
	MinLevelOffset int `yaml:"min_level_offset" mapstructure:"min_level_offset"`
	MaxLevelOffset int `yaml:"max_level_offset" mapstructure:"max_level_offset"`
	// ChestGold is the base gold per treasure chest quality.
	ChestGold map[rarity.Rarity]int `yaml:"chest_gold" mapstructure:"chest_gold"`
	// ChestRates is the item rarity table per treasure chest quality.
	ChestRates map[rarity.Rarity]rarity.Rates `yaml:"chest_rates" mapstructure:"chest_rates"`
	// HiddenPathGold is the base gold per hidden path quality.
	HiddenPathGold map[rarity.Rarity]int `yaml:"hidden_path_gold" mapstructure:"hidden_path_gold"`
	// HiddenPathBumpChance is the flat chance a hidden path item rolls one
	// tier above the path quality.
	HiddenPathBumpChance float64 `yaml:"hidden_path_bump_chance" mapstructure:"hidden_path_bump_chance"`
}

// chestItemCount is the fixed number of items per treasure chest quality.
var chestItemCount = map[rarity.Rarity]int{
	rarity.Common:    1,
	rarity.Rare:      2,
	rarity.Epic:      3,
	rarity.Legendary: 4,
}

// hiddenPathItemCount is the fixed number of items per hidden path quality.
var hiddenPathItemCount = map[rarity.Rarity]int{
	rarity.Rare:      3,
	rarity.Epic:      4,
	rarity.Legendary: 5,
}

// DefaultConfig returns the standard loot tuning.
func DefaultConfig() Config {
	return Config{
		BaseGoldPerLevel: 10,
		GoldVariance:     0.2,
		DropChance: map[EnemyType]float64{
			EnemyNormal: 0.30,
			EnemyElite:  0.60,
			EnemyBoss:   1.00,
		},
		CombatRates:    rarity.Rates{rarity.Common: 70, rarity.Rare: 22, rarity.Epic: 7, rarity.Legendary: 1},
		MinLevelOffset: -1,
		MaxLevelOffset: 2,
		ChestGold: map[rarity.Rarity]int{
			rarity.Common:    50,
			rarity.Rare:      150,
			rarity.Epic:      400,
			rarity.Legendary: 1000,
		},
		ChestRates: map[rarity.Rarity]rarity.Rates{
			rarity.Common:    {rarity.Common: 80, rarity.Rare: 18, rarity.Epic: 2},
			rarity.Rare:      {rarity.Common: 40, rarity.Rare: 45, rarity.Epic: 13, rarity.Legendary: 2},
			rarity.Epic:      {rarity.Rare: 50, rarity.Epic: 42, rarity.Legendary: 8},
			rarity.Legendary: {rarity.Rare: 20, rarity.Epic: 55, rarity.Legendary: 25},
		},
		HiddenPathGold: map[rarity.Rarity]int{
			rarity.Rare:      300,
			rarity.Epic:      800,
			rarity.Legendary: 2000,
		},
		HiddenPathBumpChance: 0.20,
	}
}

// Validate checks every loot invariant.
//
// Postcondition: Returns nil iff the configuration is usable; otherwise one
// error describing all violations.
func (c Config) Validate() error {
	var errs []string
	if c.BaseGoldPerLevel < 0 {
		errs = append(errs, fmt.Sprintf("base_gold_per_level must be >= 0, got %v", c.BaseGoldPerLevel))
	}
	if c.GoldVariance < 0 || c.GoldVariance >= 1 {
		errs = append(errs, fmt.Sprintf("gold_variance must be in [0, 1), got %v", c.GoldVariance))
	}
	if _, ok := c.DropChance[EnemyNormal]; !ok {
		errs = append(errs, "drop_chance must define the normal enemy type")
	}
	for _, k := range sortedEnemyTypes(c.DropChance) {
		if p := c.DropChance[k]; p < 0 || p > 1 {
			errs = append(errs, fmt.Sprintf("drop_chance[%s] must be in [0, 1], got %v", k, p))
		}
	}
	if err := c.CombatRates.Validate(); err != nil {
		errs = append(errs, "combat_rates: "+err.Error())
	}
	if c.MinLevelOffset > c.MaxLevelOffset {
		errs = append(errs, fmt.Sprintf("min_level_offset (%d) must be <= max_level_offset (%d)", c.MinLevelOffset, c.MaxLevelOffset))
	}
	for q := range chestItemCount {
		if c.ChestGold[q] < 0 {
			errs = append(errs, fmt.Sprintf("chest_gold[%s] must be >= 0", q))
		}
		rates, ok := c.ChestRates[q]
		if !ok {
			errs = append(errs, fmt.Sprintf("chest_rates must define quality %s", q))
			continue
		}
		if err := rates.Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("chest_rates[%s]: %s", q, err))
		}
	}
	for q := range hiddenPathItemCount {
		if c.HiddenPathGold[q] < 0 {
			errs = append(errs, fmt.Sprintf("hidden_path_gold[%s] must be >= 0", q))
		}
	}
	if c.HiddenPathBumpChance < 0 || c.HiddenPathBumpChance > 1 {
		errs = append(errs, fmt.Sprintf("hidden_path_bump_chance must be in [0, 1], got %v", c.HiddenPathBumpChance))
	}
	if len(errs) > 0 {
		sort.Strings(errs)
		return fmt.Errorf("invalid loot config: %s", strings.Join(errs, "; "))
	}
	return nil
}

func sortedEnemyTypes(m map[EnemyType]float64) []EnemyType {
	keys := make([]EnemyType, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
