package rarity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/heroforge/internal/game/dice"
	"github.com/cory-johannsen/heroforge/internal/game/rarity"
)

var summonRates = rarity.Rates{
	rarity.Common:    60,
	rarity.Rare:      25,
	rarity.Epic:      12,
	rarity.Legendary: 3,
}

// draw converts a percentage into the unit draw a SequenceSource must replay.
func draw(pct float64) *dice.SequenceSource {
	return dice.NewSequenceSource(pct / 100)
}

// TestRoll_RarestFirstScan pins the scan order: boundaries are legendary=3,
// epic=15, rare=40, common=100, so a high draw is common, not rare.
func TestRoll_RarestFirstScan(t *testing.T) {
	cases := []struct {
		pct  float64
		want rarity.Rarity
	}{
		{97, rarity.Common},
		{0, rarity.Legendary},
		{2.99, rarity.Legendary},
		{3.01, rarity.Epic},
		{14.99, rarity.Epic},
		{15.01, rarity.Rare},
		{39.99, rarity.Rare},
		{40.01, rarity.Common},
		{99.99, rarity.Common},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, rarity.Roll(draw(tc.pct), summonRates), "draw %v", tc.pct)
	}
}

func TestRoll_RenormalizesAllowedSubset(t *testing.T) {
	// rare+epic+legendary = 40; renormalized boundaries: legendary 7.5, epic 37.5, rare 100.
	allowed := []rarity.Rarity{rarity.Rare, rarity.Epic, rarity.Legendary}
	assert.Equal(t, rarity.Legendary, rarity.Roll(draw(7.4), summonRates, allowed...))
	assert.Equal(t, rarity.Epic, rarity.Roll(draw(7.6), summonRates, allowed...))
	assert.Equal(t, rarity.Epic, rarity.Roll(draw(37.4), summonRates, allowed...))
	assert.Equal(t, rarity.Rare, rarity.Roll(draw(37.6), summonRates, allowed...))
	assert.Equal(t, rarity.Rare, rarity.Roll(draw(99.9), summonRates, allowed...))
}

func TestRoll_FallbackOnDrift(t *testing.T) {
	short := rarity.Rates{rarity.Legendary: 1, rarity.Epic: 1}
	assert.Equal(t, rarity.Common, rarity.Roll(draw(50), short))
}

func TestRoll_FallbackWhenAllowedRatesZero(t *testing.T) {
	rates := rarity.Rates{rarity.Common: 100}
	got := rarity.Roll(draw(10), rates, rarity.Epic, rarity.Legendary)
	assert.Equal(t, rarity.Epic, got, "falls back to the first allowed rarity")
}

func TestRollWithPity_ForcesEpicAtThreshold(t *testing.T) {
	src := draw(0) // would be legendary if rolled
	got, pity := rarity.RollWithPity(src, summonRates, 100, 100)
	assert.Equal(t, rarity.Epic, got)
	assert.Equal(t, 0, pity)
	assert.Equal(t, 0, src.Draws(), "forced roll must not consume a draw")
}

func TestRollWithPity_IncrementsOnLowTier(t *testing.T) {
	got, pity := rarity.RollWithPity(draw(20), summonRates, 41, 100)
	assert.Equal(t, rarity.Rare, got)
	assert.Equal(t, 42, pity)
}

func TestRollWithPity_LegendaryResets(t *testing.T) {
	got, pity := rarity.RollWithPity(draw(1), summonRates, 99, 100)
	assert.Equal(t, rarity.Legendary, got)
	assert.Equal(t, 0, pity)
}

func TestRollWithPity_ZeroThresholdDisablesForce(t *testing.T) {
	got, _ := rarity.RollWithPity(draw(97), summonRates, 500, 0)
	assert.Equal(t, rarity.Common, got)
	assert.False(t, rarity.Forced(500, 0))
}

func TestRollTen_GuaranteesRareWhenNineCommons(t *testing.T) {
	// nine commons, then a 97% draw that only the restricted table can turn into rare.
	src := dice.NewSequenceSource(0.97)
	got, pity := rarity.RollTen(src, summonRates, 0, 100)
	require.Len(t, got, rarity.TenPullSize)
	for i := 0; i < 9; i++ {
		assert.Equal(t, rarity.Common, got[i])
	}
	assert.Equal(t, rarity.Rare, got[9])
	assert.Equal(t, 10, pity)
}

func TestRollTen_UnrestrictedLastWhenSatisfied(t *testing.T) {
	src := dice.NewSequenceSource(0.20, 0.97)
	got, _ := rarity.RollTen(src, summonRates, 0, 100)
	assert.Equal(t, rarity.Rare, got[0])
	assert.Equal(t, rarity.Common, got[9], "tenth roll stays unrestricted")
}

func TestRollTen_PityTriggersMidBatch(t *testing.T) {
	src := dice.NewSequenceSource(0.97)
	got, pity := rarity.RollTen(src, summonRates, 97, 100)
	// rolls 0-2 are common (pity 98, 99, 100), roll 3 is forced epic.
	assert.Equal(t, rarity.Common, got[2])
	assert.Equal(t, rarity.Epic, got[3])
	assert.Equal(t, rarity.Common, got[9], "epic satisfied the guarantee")
	assert.Equal(t, 6, pity)
}

func TestRates_Validate(t *testing.T) {
	assert.NoError(t, summonRates.Validate())
	assert.NoError(t, rarity.DefaultSummonRates.Validate())
	assert.Error(t, rarity.Rates{rarity.Common: 50}.Validate())
	assert.Error(t, rarity.Rates{rarity.Common: 110, rarity.Rare: -10}.Validate())
	assert.Error(t, rarity.Rates{"mythic": 100}.Validate())
}

func TestParseAndNext(t *testing.T) {
	r, err := rarity.Parse(" Epic ")
	require.NoError(t, err)
	assert.Equal(t, rarity.Epic, r)
	_, err = rarity.Parse("mythic")
	assert.Error(t, err)

	assert.Equal(t, rarity.Epic, rarity.Rare.Next())
	assert.Equal(t, rarity.Legendary, rarity.Epic.Next())
	assert.Equal(t, rarity.Legendary, rarity.Legendary.Next())
}

func TestProperty_PityResetOrIncrement(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		pity := rapid.IntRange(0, 150).Draw(rt, "pity")
		f := rapid.Float64Range(0, 0.999999).Draw(rt, "draw")
		got, next := rarity.RollWithPity(dice.NewSequenceSource(f), summonRates, pity, rarity.DefaultPityThreshold)
		if pity >= rarity.DefaultPityThreshold {
			assert.Equal(rt, rarity.Epic, got)
		}
		if rarity.IsHighTier(got) {
			assert.Equal(rt, 0, next)
		} else {
			assert.Equal(rt, pity+1, next)
		}
	})
}

func TestProperty_TenPullAlwaysHasRareOrBetter(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		pity := rapid.IntRange(0, 120).Draw(rt, "pity")
		got, _ := rarity.RollTen(dice.NewSeededSource(seed), summonRates, pity, rarity.DefaultPityThreshold)
		found := false
		for _, r := range got {
			if rarity.IsRareOrBetter(r) {
				found = true
			}
		}
		assert.True(rt, found, "ten-pull %v lacks a rare-or-better result", got)
	})
}

func TestProperty_RenormalizedRollStaysInAllowedSet(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := rapid.Float64Range(0, 1).Draw(rt, "draw")
		allowed := rapid.SliceOfNDistinct(rapid.SampledFrom(rarity.Order), 1, 4, func(r rarity.Rarity) rarity.Rarity { return r }).Draw(rt, "allowed")
		got := rarity.Roll(dice.NewSequenceSource(f), summonRates, allowed...)
		assert.Contains(rt, allowed, got)
	})
}
