package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cory-johannsen/heroforge/internal/game/dice"
	"github.com/cory-johannsen/heroforge/internal/game/gacha"
	"github.com/cory-johannsen/heroforge/internal/game/hero"
	"github.com/cory-johannsen/heroforge/internal/game/idgen"
	"github.com/cory-johannsen/heroforge/internal/game/item"
	"github.com/cory-johannsen/heroforge/internal/game/loot"
	"github.com/cory-johannsen/heroforge/internal/game/rarity"
	"github.com/cory-johannsen/heroforge/internal/game/town"
)

func newEconomy(t *testing.T, seed uint64) (*economy, *observer.ObservedLogs) {
	t.Helper()
	cat, err := hero.NewCatalog([]*hero.Template{
		{ID: "c1", Name: "Brannoc", Class: hero.ClassWarrior, Role: hero.RoleTank, Rarity: rarity.Common},
		{ID: "c2", Name: "Tamsin", Class: hero.ClassRogue, Role: hero.RoleDamage, Rarity: rarity.Common},
		{ID: "r1", Name: "Kestrel", Class: hero.ClassArcher, Role: hero.RoleDamage, Rarity: rarity.Rare},
		{ID: "e1", Name: "Maren", Class: hero.ClassHealer, Role: hero.RoleSupport, Rarity: rarity.Epic},
		{ID: "l1", Name: "Selene", Class: hero.ClassMage, Role: hero.RoleDamage, Rarity: rarity.Legendary},
	})
	require.NoError(t, err)

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)
	src := dice.NewSeededSource(seed)
	clock := func() time.Time { return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC) }

	svc, err := gacha.NewService(gacha.DefaultConfig(), cat, src, clock, logger)
	require.NoError(t, err)
	return &economy{
		gacha:  svc,
		loot:   loot.NewEngine(loot.DefaultConfig(), src, idgen.NewSequential("item"), logger),
		town:   town.NewService(town.DefaultPrices(), src, logger),
		roster: hero.NewRoster(idgen.NewSequential("hero")),
		logger: logger,
	}, logs
}

func TestPlaySession_FreeAndTenSummon(t *testing.T) {
	econ, logs := newEconomy(t, 42)

	res, err := econ.playSession(gacha.State{}, 20000)
	require.NoError(t, err)

	assert.Equal(t, 11, res.State.SummonCount)
	assert.Equal(t, "2026-03-15", res.State.LastFreeSummonDate)
	assert.GreaterOrEqual(t, res.Gold, 0)
	assert.LessOrEqual(t, len(res.Party), partySize)
	assert.NotEmpty(t, res.Party)

	slots := make(map[item.Slot]bool)
	for _, it := range res.Items {
		assert.False(t, slots[it.Slot], "one kept item per slot")
		slots[it.Slot] = true
	}
	for _, h := range res.Party {
		assert.Equal(t, h.MaxHP(), h.CurrentHP, "party healed at end of session")
		assert.Equal(t, 2, h.Level)
	}
	assert.Equal(t, len(res.Party), res.Levels)
	assert.Equal(t, 1, logs.FilterMessage("session complete").Len())
}

func TestPlaySession_BrokePlayerSkipsTenSummon(t *testing.T) {
	econ, logs := newEconomy(t, 7)

	res, err := econ.playSession(gacha.State{}, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, res.State.SummonCount, "only the free summon")
	assert.Equal(t, 1, econ.roster.Len())
	require.Len(t, res.Party, 1)
	assert.Equal(t, 1, logs.FilterMessage("skipping ten summon").Len())
	assert.Equal(t, res.Party[0].MaxHP(), res.Party[0].CurrentHP)
}

func TestPlaySession_FreeSummonAlreadyUsedToday(t *testing.T) {
	econ, _ := newEconomy(t, 7)

	res, err := econ.playSession(gacha.State{LastFreeSummonDate: "2026-03-15", SummonCount: 4}, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, res.State.SummonCount)
	assert.Empty(t, res.Party)
	assert.Equal(t, 0, econ.roster.Len())
}

func TestParty_PrefersHigherTiers(t *testing.T) {
	econ, _ := newEconomy(t, 1)
	for _, tm := range []hero.Template{
		{ID: "a", Name: "A", Class: hero.ClassWarrior, Role: hero.RoleTank, Rarity: rarity.Common},
		{ID: "b", Name: "B", Class: hero.ClassMage, Role: hero.RoleDamage, Rarity: rarity.Legendary},
		{ID: "c", Name: "C", Class: hero.ClassRogue, Role: hero.RoleDamage, Rarity: rarity.Common},
		{ID: "d", Name: "D", Class: hero.ClassArcher, Role: hero.RoleDamage, Rarity: rarity.Rare},
		{ID: "e", Name: "E", Class: hero.ClassHealer, Role: hero.RoleSupport, Rarity: rarity.Epic},
	} {
		_, err := econ.roster.Receive(tm)
		require.NoError(t, err)
	}

	party := econ.party()
	require.Len(t, party, partySize)
	assert.Equal(t, "B", party[0].Name)
	assert.Equal(t, "E", party[1].Name)
	assert.Equal(t, "D", party[2].Name)
	assert.Equal(t, "A", party[3].Name, "ties keep acquisition order")
}

func TestApplyWear_NeverBelowZero(t *testing.T) {
	h, err := hero.NewInstance("h1", hero.Template{
		ID: "c1", Name: "Brannoc", Class: hero.ClassWarrior, Role: hero.RoleTank, Rarity: rarity.Common,
	})
	require.NoError(t, err)

	applyWear(h)
	assert.Equal(t, 80, h.CurrentHP)

	h.CurrentHP = 10
	applyWear(h)
	assert.Equal(t, 0, h.CurrentHP)
}
