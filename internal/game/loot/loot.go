package loot

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/cory-johannsen/heroforge/internal/game/dice"
	"github.com/cory-johannsen/heroforge/internal/game/idgen"
	"github.com/cory-johannsen/heroforge/internal/game/item"
	"github.com/cory-johannsen/heroforge/internal/game/rarity"
)

// ErrUnknownQuality is returned when a chest or hidden path quality has no
// configured table.
var ErrUnknownQuality = errors.New("unknown loot quality")

const (
	// chestGoldMin and chestGoldMax bound the gold roll for chests and hidden paths.
	chestGoldMin = 0.8
	chestGoldMax = 1.2
)

// Enemy is a defeated combatant contributing to combat loot.
type Enemy struct {
	Level int       `json:"level"`
	Type  EnemyType `json:"type"`
}

// Result holds the rewards from one loot event.
type Result struct {
	Gold  int             `json:"gold"`
	Items []item.Instance `json:"items"`
}

// Engine generates loot. It holds no mutable state beyond its injected
// collaborators.
type Engine struct {
	cfg    Config
	src    dice.Source
	ids    idgen.Generator
	logger *zap.Logger
}

// NewEngine builds a loot Engine.
//
// Precondition: src and ids must be non-nil; cfg should have passed Validate.
// A nil logger is replaced with a no-op logger.
func NewEngine(cfg Config, src dice.Source, ids idgen.Generator, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{cfg: cfg, src: src, ids: ids, logger: logger}
}

// Config returns the engine's loot configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// GenerateCombatLoot rolls gold and item drops for a set of defeated enemies.
//
// Each enemy contributes floor(level * BaseGoldPerLevel * variance) gold with
// an independent variance draw, then gets one drop trial at the chance for its
// type. Unknown types use the normal drop chance.
//
// Postcondition: Gold >= 0; every item Level >= 1.
func (e *Engine) GenerateCombatLoot(enemies []Enemy) Result {
	var res Result
	v := e.cfg.GoldVariance
	for _, en := range enemies {
		variance := dice.Uniform(e.src, 1-v, 1+v)
		res.Gold += int(math.Floor(float64(max(en.Level, 0)) * e.cfg.BaseGoldPerLevel * variance))

		if !dice.Chance(e.src, e.dropChance(en.Type)) {
			continue
		}
		r := rarity.Roll(e.src, e.cfg.CombatRates)
		itemLevel := en.Level + dice.IntRange(e.src, e.cfg.MinLevelOffset, e.cfg.MaxLevelOffset)
		res.Items = append(res.Items, e.newItem(itemLevel, r))
	}
	e.logger.Debug("combat loot generated",
		zap.Int("enemies", len(enemies)),
		zap.Int("gold", res.Gold),
		zap.Int("items", len(res.Items)),
	)
	return res
}

// GenerateTreasureChestLoot rolls the contents of a treasure chest.
//
// Precondition: quality must be a known rarity.
// Postcondition: len(Items) is 1, 2, 3, or 4 for common, rare, epic, or
// legendary chests; each item level is playerLevel-1..playerLevel+1, at least 1.
func (e *Engine) GenerateTreasureChestLoot(quality rarity.Rarity, playerLevel int) (Result, error) {
	count, ok := chestItemCount[quality]
	if !ok {
		return Result{}, fmt.Errorf("treasure chest %q: %w", quality, ErrUnknownQuality)
	}
	rates, ok := e.cfg.ChestRates[quality]
	if !ok {
		return Result{}, fmt.Errorf("treasure chest %q has no rarity table: %w", quality, ErrUnknownQuality)
	}

	res := Result{Gold: e.rollGold(e.cfg.ChestGold[quality])}
	for i := 0; i < count; i++ {
		r := rarity.Roll(e.src, rates)
		res.Items = append(res.Items, e.newItem(playerLevel+dice.IntRange(e.src, -1, 1), r))
	}
	e.logger.Debug("treasure chest loot generated",
		zap.String("quality", string(quality)),
		zap.Int("gold", res.Gold),
		zap.Int("items", len(res.Items)),
	)
	return res, nil
}

// GenerateHiddenPathLoot rolls the rewards of a hidden path.
//
// Items start at the path quality and have a flat HiddenPathBumpChance of
// rolling one tier higher (legendary stays legendary).
//
// Precondition: quality must be rare, epic, or legendary.
// Postcondition: len(Items) is 3, 4, or 5; each item level is
// playerLevel..playerLevel+4, at least 1.
func (e *Engine) GenerateHiddenPathLoot(quality rarity.Rarity, playerLevel int) (Result, error) {
	count, ok := hiddenPathItemCount[quality]
	if !ok {
		return Result{}, fmt.Errorf("hidden path %q: %w", quality, ErrUnknownQuality)
	}

	res := Result{Gold: e.rollGold(e.cfg.HiddenPathGold[quality])}
	for i := 0; i < count; i++ {
		r := quality
		if dice.Chance(e.src, e.cfg.HiddenPathBumpChance) {
			r = r.Next()
		}
		res.Items = append(res.Items, e.newItem(playerLevel+dice.IntRange(e.src, 0, 4), r))
	}
	e.logger.Debug("hidden path loot generated",
		zap.String("quality", string(quality)),
		zap.Int("gold", res.Gold),
		zap.Int("items", len(res.Items)),
	)
	return res, nil
}

func (e *Engine) dropChance(t EnemyType) float64 {
	if p, ok := e.cfg.DropChance[t]; ok {
		return p
	}
	return e.cfg.DropChance[EnemyNormal]
}

func (e *Engine) rollGold(base int) int {
	return int(math.Floor(float64(base) * dice.Uniform(e.src, chestGoldMin, chestGoldMax)))
}

// newItem synthesizes an item in a uniformly chosen slot.
func (e *Engine) newItem(level int, r rarity.Rarity) item.Instance {
	slot := item.Slots[dice.Intn(e.src, len(item.Slots))]
	return item.New(e.ids.NewID(), max(level, 1), r, slot)
}
