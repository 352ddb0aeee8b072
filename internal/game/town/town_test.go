package town_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/heroforge/internal/game/dice"
	"github.com/cory-johannsen/heroforge/internal/game/hero"
	"github.com/cory-johannsen/heroforge/internal/game/item"
	"github.com/cory-johannsen/heroforge/internal/game/rarity"
	"github.com/cory-johannsen/heroforge/internal/game/town"
)

func newService(draws ...float64) *town.Service {
	if len(draws) == 0 {
		draws = []float64{0.5}
	}
	return town.NewService(town.DefaultPrices(), dice.NewSequenceSource(draws...), nil)
}

func newHero(t require.TestingT, id string, missing int) *hero.Instance {
	h, err := hero.NewInstance(id, hero.Template{
		ID: "t-" + id, Name: id, Class: hero.ClassWarrior, Role: hero.RoleTank, Rarity: rarity.Common,
	})
	require.NoError(t, err)
	h.CurrentHP -= missing
	return h
}

func TestDefaultPrices_Valid(t *testing.T) {
	assert.NoError(t, town.DefaultPrices().Validate())

	bad := town.Prices{PricePerHP: -1, EnchantMultiplier: 1, SellMultiplier: 2}
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "price_per_hp")
	assert.Contains(t, err.Error(), "enchant_base_cost")
	assert.Contains(t, err.Error(), "enchant_multiplier")
	assert.Contains(t, err.Error(), "sell_multiplier")
}

func TestHealCost(t *testing.T) {
	s := newService()
	assert.Equal(t, 0, s.HealCost(newHero(t, "a", 0)))
	assert.Equal(t, 37, s.HealCost(newHero(t, "a", 37)))
}

func TestPartyHealCost_CappedAndNeverAboveSum(t *testing.T) {
	s := newService()
	a, b := newHero(t, "a", 10), newHero(t, "b", 15)
	assert.Equal(t, 25, s.PartyHealCost([]*hero.Instance{a, b}))

	c := newHero(t, "c", 80)
	assert.Equal(t, 50, s.PartyHealCost([]*hero.Instance{a, b, c}))
	assert.Equal(t, 0, s.PartyHealCost(nil))
}

func TestPartyHealCost_AtCapBoundary(t *testing.T) {
	s := newService()
	assert.Equal(t, 50, s.PartyHealCost([]*hero.Instance{newHero(t, "a", 20), newHero(t, "b", 30)}))
	assert.Equal(t, 50, s.PartyHealCost([]*hero.Instance{newHero(t, "a", 20), newHero(t, "b", 31)}))
	assert.Equal(t, 49, s.PartyHealCost([]*hero.Instance{newHero(t, "a", 20), newHero(t, "b", 29)}))
}

func TestHeal_ChargesAndRestores(t *testing.T) {
	s := newService()
	h := newHero(t, "a", 40)
	gold, err := s.Heal(h, 100)
	require.NoError(t, err)
	assert.Equal(t, 60, gold)
	assert.Equal(t, h.MaxHP(), h.CurrentHP)
}

func TestHeal_InsufficientFundsChangesNothing(t *testing.T) {
	s := newService()
	h := newHero(t, "a", 40)
	gold, err := s.Heal(h, 39)
	assert.ErrorIs(t, err, town.ErrInsufficientFunds)
	assert.Equal(t, 39, gold)
	assert.Equal(t, 40, h.MissingHP())
}

func TestHealParty_ChargesCap(t *testing.T) {
	s := newService()
	party := []*hero.Instance{newHero(t, "a", 60), newHero(t, "b", 60)}
	gold, err := s.HealParty(party, 50)
	require.NoError(t, err)
	assert.Equal(t, 0, gold)
	for _, h := range party {
		assert.Equal(t, 0, h.MissingHP())
	}

	party = []*hero.Instance{newHero(t, "a", 60)}
	_, err = s.HealParty(party, 49)
	assert.ErrorIs(t, err, town.ErrInsufficientFunds)
	assert.Equal(t, 60, party[0].MissingHP())
}

func TestEnchantCost_StrictlyIncreasingThenZero(t *testing.T) {
	s := newService()
	want := []int{100, 150, 225, 338, 507, 760, 1140, 1709, 2563, 3845}
	prev := 0
	for level := 0; level < item.MaxEnchantLevel; level++ {
		it := item.Instance{EnchantLevel: level}
		cost := s.EnchantCost(it)
		assert.Equal(t, want[level], cost, "level %d", level)
		assert.Greater(t, cost, prev)
		prev = cost
	}
	assert.Equal(t, 0, s.EnchantCost(item.Instance{EnchantLevel: 10}))
	assert.Equal(t, 0, s.EnchantCost(item.Instance{EnchantLevel: 12}))
}

func TestEnchantSuccessRate(t *testing.T) {
	assert.Equal(t, 1.0, town.EnchantSuccessRate(0))
	assert.InDelta(t, 0.5, town.EnchantSuccessRate(5), 1e-9)
	assert.InDelta(t, 0.1, town.EnchantSuccessRate(9), 1e-9)
	assert.Equal(t, 0.0, town.EnchantSuccessRate(10))
}

func TestAttemptEnchant_LevelNineFixtures(t *testing.T) {
	s := newService(0.05)
	it := item.New("i", 5, rarity.Rare, item.SlotWeapon)
	it.EnchantLevel = 9
	cost := s.EnchantCost(it)

	out, err := s.AttemptEnchant(&it, cost, 10_000)
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, 10_000-cost, out.NewGold)
	assert.Equal(t, 10, out.Level)
	assert.Equal(t, 10, it.EnchantLevel)

	s = newService(0.5)
	it.EnchantLevel = 9
	out, err = s.AttemptEnchant(&it, cost, 10_000)
	require.NoError(t, err)
	assert.False(t, out.Success)
	assert.Equal(t, 10_000-cost, out.NewGold, "a failed attempt is still charged")
	assert.Equal(t, 9, it.EnchantLevel)
}

func TestAttemptEnchant_RejectsWithoutCharge(t *testing.T) {
	s := newService(0.0)
	it := item.New("i", 5, rarity.Rare, item.SlotWeapon)
	it.EnchantLevel = item.MaxEnchantLevel
	out, err := s.AttemptEnchant(&it, 100, 1000)
	assert.ErrorIs(t, err, town.ErrMaxLevelReached)
	assert.Equal(t, 1000, out.NewGold)

	it.EnchantLevel = 2
	out, err = s.AttemptEnchant(&it, 225, 224)
	assert.ErrorIs(t, err, town.ErrInsufficientFunds)
	assert.Equal(t, 224, out.NewGold)
	assert.Equal(t, 2, it.EnchantLevel)
}

func TestAttemptEnchant_NegativeCostRejected(t *testing.T) {
	src := dice.NewSequenceSource(0.0)
	s := town.NewService(town.DefaultPrices(), src, nil)
	it := item.New("i", 5, rarity.Rare, item.SlotWeapon)

	out, err := s.AttemptEnchant(&it, -500, 100)
	assert.ErrorIs(t, err, town.ErrInvalidPrice)
	assert.Equal(t, 100, out.NewGold)
	assert.False(t, out.Success)
	assert.Equal(t, 0, it.EnchantLevel)
	assert.Equal(t, 0, src.Draws())
}

func TestAttemptEnchant_Logs(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s := town.NewService(town.DefaultPrices(), dice.NewSequenceSource(0.0), zap.New(core))
	it := item.New("i", 1, rarity.Common, item.SlotBoots)
	_, err := s.AttemptEnchant(&it, 100, 100)
	require.NoError(t, err)

	entries := logs.FilterMessage("enchant attempted").All()
	require.Len(t, entries, 1)
	assert.Equal(t, true, entries[0].ContextMap()["success"])
}

func TestSellPriceAndMarket(t *testing.T) {
	s := newService()
	it := item.New("i", 4, rarity.Legendary, item.SlotAccessory) // gold value 240
	assert.Equal(t, 120, s.SellPrice(it))
	it.EnchantLevel = 3
	assert.Equal(t, 195, s.SellPrice(it))
	assert.Equal(t, 205, s.SellItem(10, it))

	gold, err := s.BuyItem(500, 120)
	require.NoError(t, err)
	assert.Equal(t, 380, gold)
	gold, err = s.BuyItem(100, 120)
	assert.ErrorIs(t, err, town.ErrInsufficientFunds)
	assert.Equal(t, 100, gold)
}

func TestBuyItem_NegativePriceRejected(t *testing.T) {
	s := newService()
	gold, err := s.BuyItem(100, -500)
	assert.ErrorIs(t, err, town.ErrInvalidPrice)
	assert.Equal(t, 100, gold)

	gold, err = s.BuyItem(100, 0)
	require.NoError(t, err)
	assert.Equal(t, 100, gold)
}

func TestProperty_GoldNeverGrowsFromPurchases(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		gold := rapid.IntRange(0, 10_000).Draw(rt, "gold")
		price := rapid.IntRange(-10_000, 10_000).Draw(rt, "price")
		s := newService(0.0)

		after, _ := s.BuyItem(gold, price)
		assert.LessOrEqual(rt, after, gold)

		it := item.New("i", 3, rarity.Epic, item.SlotHelmet)
		out, _ := s.AttemptEnchant(&it, price, gold)
		assert.LessOrEqual(rt, out.NewGold, gold)
	})
}

func TestProperty_AuthorizedEnchantAlwaysCharges(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		level := rapid.IntRange(0, item.MaxEnchantLevel-1).Draw(rt, "level")
		f := rapid.Float64Range(0, 0.999999).Draw(rt, "draw")
		extra := rapid.IntRange(0, 10_000).Draw(rt, "extra")

		s := newService(f)
		it := item.New("i", 3, rarity.Epic, item.SlotHelmet)
		it.EnchantLevel = level
		cost := s.EnchantCost(it)

		out, err := s.AttemptEnchant(&it, cost, cost+extra)
		require.NoError(rt, err)
		assert.Equal(rt, extra, out.NewGold)
		if out.Success {
			assert.Equal(rt, level+1, it.EnchantLevel)
		} else {
			assert.Equal(rt, level, it.EnchantLevel)
		}
	})
}

func TestProperty_PartyHealBounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		missing := rapid.SliceOfN(rapid.IntRange(0, 120), 0, 6).Draw(rt, "missing")
		s := newService()
		var party []*hero.Instance
		sum := 0
		for i, m := range missing {
			h := newHero(rt, string(rune('a'+i)), m)
			party = append(party, h)
			sum += s.HealCost(h)
		}
		cost := s.PartyHealCost(party)
		assert.LessOrEqual(rt, cost, sum)
		assert.LessOrEqual(rt, cost, town.DefaultPrices().PartyHealCap)
	})
}
