// Package gacha implements hero summoning: single and ten-pull summons with
// the pity counter and rare-or-better guarantee, the daily free summon, and
// paid summons.
package gacha

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/heroforge/internal/game/rarity"
)

// Default summon tunables.
const (
	DefaultSingleCost = 1000
	DefaultTenCost    = 9000
)

// DebugConfig holds switches that must stay off in production.
type DebugConfig struct {
	// FreeSummonAlwaysAvailable bypasses the once-per-UTC-day free summon gate.
	FreeSummonAlwaysAvailable bool `yaml:"free_summon_always_available" mapstructure:"free_summon_always_available"`
}

// Config holds the summon tunables.
type Config struct {
	PityThreshold int          `yaml:"pity_threshold" mapstructure:"pity_threshold"`
	SingleCost    int          `yaml:"single_cost" mapstructure:"single_cost"`
	TenCost       int          `yaml:"ten_cost" mapstructure:"ten_cost"`
	Rates         rarity.Rates `yaml:"rates" mapstructure:"rates"`
	Debug         DebugConfig  `yaml:"debug" mapstructure:"debug"`
}

// DefaultConfig returns the standard summon configuration.
func DefaultConfig() Config {
	return Config{
		PityThreshold: rarity.DefaultPityThreshold,
		SingleCost:    DefaultSingleCost,
		TenCost:       DefaultTenCost,
		Rates:         rarity.DefaultSummonRates.Clone(),
	}
}

// Validate checks the summon configuration.
//
// Postcondition: Returns nil iff the configuration is usable; otherwise one
// error listing all violations.
func (c Config) Validate() error {
	var errs []string
	if c.PityThreshold < 1 {
		errs = append(errs, fmt.Sprintf("pity_threshold must be >= 1, got %d", c.PityThreshold))
	}
	if c.SingleCost < 0 {
		errs = append(errs, fmt.Sprintf("single_cost must be >= 0, got %d", c.SingleCost))
	}
	if c.TenCost < 0 {
		errs = append(errs, fmt.Sprintf("ten_cost must be >= 0, got %d", c.TenCost))
	}
	if err := c.Rates.Validate(); err != nil {
		errs = append(errs, "rates: "+err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid gacha config: %s", strings.Join(errs, "; "))
	}
	return nil
}
