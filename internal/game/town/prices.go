// Package town implements the town economy: healing, enchanting, and the
// item market.
package town

import (
	"fmt"
	"strings"
)

// Prices holds the town service tunables.
type Prices struct {
	// PricePerHP is the gold charged per missing hit point.
	PricePerHP float64 `yaml:"price_per_hp" mapstructure:"price_per_hp"`
	// PartyHealCap is the most a whole-party heal can ever cost.
	PartyHealCap int `yaml:"party_heal_cap" mapstructure:"party_heal_cap"`
	// EnchantBaseCost is the cost of enchanting a level 0 item.
	EnchantBaseCost float64 `yaml:"enchant_base_cost" mapstructure:"enchant_base_cost"`
	// EnchantMultiplier compounds the enchant cost per enchant level.
	EnchantMultiplier float64 `yaml:"enchant_multiplier" mapstructure:"enchant_multiplier"`
	// EnchantSellBonus is the gold value added per enchant level when selling.
	EnchantSellBonus int `yaml:"enchant_sell_bonus" mapstructure:"enchant_sell_bonus"`
	// SellMultiplier is the fraction of item value paid on sale.
	SellMultiplier float64 `yaml:"sell_multiplier" mapstructure:"sell_multiplier"`
}

// DefaultPrices returns the standard town prices.
func DefaultPrices() Prices {
	return Prices{
		PricePerHP:        1,
		PartyHealCap:      50,
		EnchantBaseCost:   100,
		EnchantMultiplier: 1.5,
		EnchantSellBonus:  50,
		SellMultiplier:    0.5,
	}
}

// Validate checks the price invariants.
//
// Postcondition: Returns nil iff every price is usable; otherwise one error
// listing all violations.
func (p Prices) Validate() error {
	var errs []string
	if p.PricePerHP < 0 {
		errs = append(errs, fmt.Sprintf("price_per_hp must be >= 0, got %v", p.PricePerHP))
	}
	if p.PartyHealCap < 0 {
		errs = append(errs, fmt.Sprintf("party_heal_cap must be >= 0, got %d", p.PartyHealCap))
	}
	if p.EnchantBaseCost <= 0 {
		errs = append(errs, fmt.Sprintf("enchant_base_cost must be > 0, got %v", p.EnchantBaseCost))
	}
	if p.EnchantMultiplier <= 1 {
		errs = append(errs, fmt.Sprintf("enchant_multiplier must be > 1, got %v", p.EnchantMultiplier))
	}
	if p.EnchantSellBonus < 0 {
		errs = append(errs, fmt.Sprintf("enchant_sell_bonus must be >= 0, got %d", p.EnchantSellBonus))
	}
	if p.SellMultiplier < 0 || p.SellMultiplier > 1 {
		errs = append(errs, fmt.Sprintf("sell_multiplier must be in [0, 1], got %v", p.SellMultiplier))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid town prices: %s", strings.Join(errs, "; "))
	}
	return nil
}
