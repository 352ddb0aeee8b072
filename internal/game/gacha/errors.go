package gacha

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/heroforge/internal/game/rarity"
	"github.com/cory-johannsen/heroforge/internal/game/town"
)

var (
	// ErrConfiguration marks a catalog that cannot serve a rolled rarity.
	ErrConfiguration = errors.New("gacha configuration error")
	// ErrFreeSummonUnavailable is returned when today's free summon was
	// already used.
	ErrFreeSummonUnavailable = errors.New("free summon already used today")
	// ErrInsufficientFunds is the shared economy error, so callers can match
	// summon and town purchases with one errors.Is check.
	ErrInsufficientFunds = town.ErrInsufficientFunds
)

// ConfigurationError reports a rolled rarity with no catalog templates.
type ConfigurationError struct {
	Rarity rarity.Rarity
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("gacha configuration error: no hero templates of rarity %s", e.Rarity)
}

// Is makes errors.Is(err, ErrConfiguration) match.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}
