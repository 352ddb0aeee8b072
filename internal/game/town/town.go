package town

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/heroforge/internal/game/dice"
	"github.com/cory-johannsen/heroforge/internal/game/hero"
	"github.com/cory-johannsen/heroforge/internal/game/item"
)

var (
	// ErrInsufficientFunds is returned when a purchase costs more gold than
	// the player holds. No gold is charged.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrMaxLevelReached is returned when enchanting an item already at
	// item.MaxEnchantLevel. No gold is charged.
	ErrMaxLevelReached = errors.New("item is at max enchant level")
	// ErrInvalidPrice is returned when a cost or price is negative. No gold
	// is charged.
	ErrInvalidPrice = errors.New("price must not be negative")
)

// enchantSuccess is the success probability per current enchant level.
var enchantSuccess = [item.MaxEnchantLevel]float64{1.0, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.2, 0.1}

// EnchantOutcome reports the result of an authorized enchant attempt.
type EnchantOutcome struct {
	Success bool
	NewGold int
	Level   int
}

// Service prices and performs town actions. It holds no mutable state.
type Service struct {
	prices Prices
	src    dice.Source
	logger *zap.Logger
}

// NewService builds a town Service.
//
// Precondition: src must be non-nil. A nil logger is replaced with a no-op
// logger.
func NewService(prices Prices, src dice.Source, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{prices: prices, src: src, logger: logger}
}

// Prices returns the service's price table.
func (s *Service) Prices() Prices {
	return s.prices
}

// HealCost returns ceil(missingHP * PricePerHP), or 0 for a full-health hero.
func (s *Service) HealCost(h *hero.Instance) int {
	return s.hpCost(h.MissingHP())
}

// PartyHealCost returns the cost of healing every hero in hs, capped at
// PartyHealCap.
//
// Postcondition: the result is <= the sum of HealCost over hs and <=
// PartyHealCap.
func (s *Service) PartyHealCost(hs []*hero.Instance) int {
	missing := 0
	for _, h := range hs {
		missing += h.MissingHP()
	}
	return min(s.hpCost(missing), s.prices.PartyHealCap)
}

func (s *Service) hpCost(missing int) int {
	if missing <= 0 {
		return 0
	}
	return int(math.Ceil(float64(missing) * s.prices.PricePerHP))
}

// Heal charges HealCost and restores h to full HP.
//
// Postcondition: on success returns gold - HealCost(h) and h.CurrentHP ==
// h.MaxHP(); on ErrInsufficientFunds neither gold nor h changes.
func (s *Service) Heal(h *hero.Instance, gold int) (int, error) {
	cost := s.HealCost(h)
	if gold < cost {
		return gold, fmt.Errorf("heal %s costs %d, have %d: %w", h.ID, cost, gold, ErrInsufficientFunds)
	}
	h.RestoreHP()
	return gold - cost, nil
}

// HealParty charges PartyHealCost and restores every hero in hs to full HP.
func (s *Service) HealParty(hs []*hero.Instance, gold int) (int, error) {
	cost := s.PartyHealCost(hs)
	if gold < cost {
		return gold, fmt.Errorf("party heal costs %d, have %d: %w", cost, gold, ErrInsufficientFunds)
	}
	for _, h := range hs {
		h.RestoreHP()
	}
	return gold - cost, nil
}

// EnchantCost returns ceil(EnchantBaseCost * EnchantMultiplier^level), or 0
// when the item cannot be enchanted further.
func (s *Service) EnchantCost(it item.Instance) int {
	if !it.CanEnchant() {
		return 0
	}
	level := max(it.EnchantLevel, 0)
	return int(math.Ceil(s.prices.EnchantBaseCost * math.Pow(s.prices.EnchantMultiplier, float64(level))))
}

// EnchantSuccessRate returns the success probability of enchanting from
// level. Levels at or above item.MaxEnchantLevel return 0 and must not be
// rolled.
func EnchantSuccessRate(level int) float64 {
	if level < 0 {
		level = 0
	}
	if level >= item.MaxEnchantLevel {
		return 0
	}
	return enchantSuccess[level]
}

// AttemptEnchant performs one enchant attempt on it.
//
// Precondition: cost is the price quoted by EnchantCost.
// Postcondition: on ErrInvalidPrice, ErrMaxLevelReached, or
// ErrInsufficientFunds nothing is charged and it is unchanged. Otherwise cost is always deducted, one draw
// is taken, and on success it.EnchantLevel is incremented by 1.
func (s *Service) AttemptEnchant(it *item.Instance, cost, gold int) (EnchantOutcome, error) {
	if cost < 0 {
		return EnchantOutcome{NewGold: gold, Level: it.EnchantLevel}, fmt.Errorf("enchant %s costs %d: %w", it.ID, cost, ErrInvalidPrice)
	}
	if !it.CanEnchant() {
		return EnchantOutcome{NewGold: gold, Level: it.EnchantLevel}, fmt.Errorf("enchant %s: %w", it.ID, ErrMaxLevelReached)
	}
	if gold < cost {
		return EnchantOutcome{NewGold: gold, Level: it.EnchantLevel}, fmt.Errorf("enchant %s costs %d, have %d: %w", it.ID, cost, gold, ErrInsufficientFunds)
	}

	rate := EnchantSuccessRate(it.EnchantLevel)
	success := s.src.Float64() < rate
	if success {
		it.EnchantLevel++
	}
	s.logger.Debug("enchant attempted",
		zap.String("item_id", it.ID),
		zap.Int("cost", cost),
		zap.Float64("rate", rate),
		zap.Bool("success", success),
		zap.Int("level", it.EnchantLevel),
	)
	return EnchantOutcome{Success: success, NewGold: gold - cost, Level: it.EnchantLevel}, nil
}

// SellPrice returns ceil((GoldValue + EnchantLevel*EnchantSellBonus) *
// SellMultiplier).
func (s *Service) SellPrice(it item.Instance) int {
	value := it.GoldValue + it.EnchantLevel*s.prices.EnchantSellBonus
	return int(math.Ceil(float64(value) * s.prices.SellMultiplier))
}

// BuyItem deducts price from gold. A negative price returns ErrInvalidPrice
// and gold unchanged.
func (s *Service) BuyItem(gold, price int) (int, error) {
	if price < 0 {
		return gold, fmt.Errorf("item costs %d: %w", price, ErrInvalidPrice)
	}
	if gold < price {
		return gold, fmt.Errorf("item costs %d, have %d: %w", price, gold, ErrInsufficientFunds)
	}
	return gold - price, nil
}

// SellItem returns gold plus the sell price of it.
func (s *Service) SellItem(gold int, it item.Instance) int {
	return gold + s.SellPrice(it)
}
