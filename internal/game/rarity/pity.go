package rarity

import "github.com/cory-johannsen/heroforge/internal/game/dice"

// DefaultPityThreshold is the number of consecutive non-epic, non-legendary
// rolls after which the next roll is forced to epic.
const DefaultPityThreshold = 100

// TenPullSize is the number of draws in a multi-summon.
const TenPullSize = 10

// guaranteeTiers is the restricted table for the last draw of a ten-pull that
// produced nothing rare or better.
var guaranteeTiers = []Rarity{Rare, Epic, Legendary}

// RollWithPity performs one pity-aware roll.
//
// When pity >= threshold the draw is bypassed and Epic is returned. Legendary
// is never forced; it is reachable only through a normal roll. A result of
// epic or legendary resets the counter to 0, anything else increments it by
// exactly 1. A threshold <= 0 disables the forced outcome.
//
// Postcondition: the returned counter is 0 iff the result IsHighTier.
func RollWithPity(src dice.Source, rates Rates, pity, threshold int, allowed ...Rarity) (Rarity, int) {
	var r Rarity
	if threshold > 0 && pity >= threshold {
		r = Epic
	} else {
		r = Roll(src, rates, allowed...)
	}
	return r, advancePity(pity, r)
}

// Forced reports whether the next pity-aware roll will bypass the draw.
func Forced(pity, threshold int) bool {
	return threshold > 0 && pity >= threshold
}

func advancePity(pity int, r Rarity) int {
	if IsHighTier(r) {
		return 0
	}
	return pity + 1
}

// RollTen performs a ten-pull with the rare-or-better guarantee.
//
// Nine sequential pity-aware rolls thread the counter in order, so pity may
// trigger mid-batch. If none of the nine is rare or better, the tenth roll is
// restricted to {rare, epic, legendary} and renormalized; otherwise it is
// unrestricted. The tenth roll is pity-aware either way.
//
// Postcondition: len(result) == TenPullSize and at least one element is
// rare or better.
func RollTen(src dice.Source, rates Rates, pity, threshold int) ([]Rarity, int) {
	out := make([]Rarity, 0, TenPullSize)
	satisfied := false
	for i := 0; i < TenPullSize-1; i++ {
		var r Rarity
		r, pity = RollWithPity(src, rates, pity, threshold)
		if IsRareOrBetter(r) {
			satisfied = true
		}
		out = append(out, r)
	}

	var last Rarity
	if satisfied {
		last, pity = RollWithPity(src, rates, pity, threshold)
	} else {
		last, pity = RollWithPity(src, rates, pity, threshold, guaranteeTiers...)
	}
	return append(out, last), pity
}
