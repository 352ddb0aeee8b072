package main

import (
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/cory-johannsen/heroforge/internal/game/gacha"
	"github.com/cory-johannsen/heroforge/internal/game/hero"
	"github.com/cory-johannsen/heroforge/internal/game/item"
	"github.com/cory-johannsen/heroforge/internal/game/loot"
	"github.com/cory-johannsen/heroforge/internal/game/rarity"
	"github.com/cory-johannsen/heroforge/internal/game/town"
)

// partySize is the number of roster heroes sent on an expedition.
const partySize = 4

// xpPerEnemyLevel is the experience each party hero earns per enemy level.
const xpPerEnemyLevel = 25

// economy bundles the services one player session drives.
type economy struct {
	gacha  *gacha.Service
	loot   *loot.Engine
	town   *town.Service
	roster *hero.Roster
	logger *zap.Logger
}

// sessionResult is the player state after a session.
type sessionResult struct {
	Gold   int
	State  gacha.State
	Items  []item.Instance
	Sold   []item.Instance
	Party  []*hero.Instance
	Levels int
}

// playSession runs one scripted day: the free summon, a paid ten-pull when
// affordable, an expedition with combat and a treasure chest, an enchant
// attempt, a party heal, and selling spare loot.
func (e *economy) playSession(state gacha.State, gold int) (sessionResult, error) {
	res := sessionResult{Gold: gold, State: state}

	if e.gacha.CanFreeSummon(res.State) {
		tmpl, next, err := e.gacha.FreeSummon(res.State)
		if err != nil {
			return res, err
		}
		res.State = next
		if _, err := e.receive([]hero.Template{tmpl}); err != nil {
			return res, err
		}
	}

	paid, err := e.gacha.PaidSummonTen(res.State, res.Gold)
	switch {
	case errors.Is(err, gacha.ErrInsufficientFunds):
		e.logger.Info("skipping ten summon", zap.Int("gold", res.Gold))
	case err != nil:
		return res, err
	default:
		res.State, res.Gold = paid.State, paid.Gold
		if _, err := e.receive(paid.Templates); err != nil {
			return res, err
		}
	}

	res.Party = e.party()
	if len(res.Party) == 0 {
		return res, nil
	}
	level := averageLevel(res.Party)

	enemies := []loot.Enemy{
		{Level: level, Type: loot.EnemyNormal},
		{Level: level, Type: loot.EnemyNormal},
		{Level: level + 1, Type: loot.EnemyElite},
		{Level: level + 2, Type: loot.EnemyBoss},
	}
	combat := e.loot.GenerateCombatLoot(enemies)
	res.Gold += combat.Gold
	res.Items = append(res.Items, combat.Items...)

	xp := 0
	for _, en := range enemies {
		xp += en.Level * xpPerEnemyLevel
	}
	for _, h := range res.Party {
		ups := h.GainXP(xp)
		res.Levels += len(ups)
		for _, up := range ups {
			e.logger.Info("hero leveled up",
				zap.String("hero", h.Name),
				zap.Int("level", up.Level),
				zap.Int("max_hp", up.MaxHP),
			)
		}
	}

	for _, h := range res.Party {
		applyWear(h)
	}

	chest, err := e.loot.GenerateTreasureChestLoot(rarity.Rare, level)
	if err != nil {
		return res, err
	}
	res.Gold += chest.Gold
	res.Items = append(res.Items, chest.Items...)

	// everything beyond one item per slot goes to the market
	keep := make(map[item.Slot]bool)
	var kept []item.Instance
	for _, it := range res.Items {
		if keep[it.Slot] {
			res.Gold = e.town.SellItem(res.Gold, it)
			res.Sold = append(res.Sold, it)
			continue
		}
		keep[it.Slot] = true
		kept = append(kept, it)
	}
	res.Items = kept

	lead := res.Party[0]
	e.equip(lead, res.Items)

	if len(res.Items) > 0 {
		it := &res.Items[0]
		cost := e.town.EnchantCost(*it)
		out, err := e.town.AttemptEnchant(it, cost, res.Gold)
		switch {
		case errors.Is(err, town.ErrInsufficientFunds), errors.Is(err, town.ErrMaxLevelReached):
			e.logger.Info("skipping enchant", zap.Error(err))
		case err != nil:
			return res, err
		default:
			res.Gold = out.NewGold
			lead.Recalculate()
		}
	}

	healed, err := e.town.HealParty(res.Party, res.Gold)
	if err != nil && !errors.Is(err, town.ErrInsufficientFunds) {
		return res, err
	}
	res.Gold = healed

	e.logger.Info("session complete",
		zap.Int("gold", res.Gold),
		zap.Int("summon_count", res.State.SummonCount),
		zap.Int("pity_summons", res.State.PitySummons),
		zap.Int("items", len(res.Items)),
		zap.Int("sold", len(res.Sold)),
		zap.Int("level_ups", res.Levels),
	)
	return res, nil
}

func (e *economy) receive(tmpls []hero.Template) ([]hero.Receipt, error) {
	receipts, err := e.roster.ReceiveAll(tmpls)
	for _, r := range receipts {
		e.logger.Info("hero received",
			zap.String("hero", r.Hero.Name),
			zap.String("rarity", string(r.Hero.Rarity)),
			zap.Bool("duplicate", r.Duplicate),
		)
	}
	return receipts, err
}

// party picks the highest-tier heroes from the roster.
func (e *economy) party() []*hero.Instance {
	heroes := e.roster.Heroes()
	sort.SliceStable(heroes, func(i, j int) bool {
		return heroes[i].Rarity.Tier() > heroes[j].Rarity.Tier()
	})
	return heroes[:min(len(heroes), partySize)]
}

// equip gives h the first item found for every slot.
func (e *economy) equip(h *hero.Instance, items []item.Instance) {
	l := item.NewLoadout()
	for i := range items {
		if l.Item(items[i].Slot) == nil {
			l.Equip(&items[i])
		}
	}
	h.Equip(l)
}

// applyWear takes a third of h's maximum HP as expedition damage, never
// dropping below 0.
func applyWear(h *hero.Instance) {
	h.CurrentHP = max(h.CurrentHP-h.MaxHP()/3, 0)
}

func averageLevel(hs []*hero.Instance) int {
	total := 0
	for _, h := range hs {
		total += h.Level
	}
	return max(total/len(hs), 1)
}
