package gacha

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/cory-johannsen/heroforge/internal/game/rarity"
)

// Stats summarizes an integer sample.
type Stats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
}

// Report is the outcome of a Monte Carlo summon simulation.
type Report struct {
	Trials        int                       `json:"trials"`
	PullsPerTrial int                       `json:"pulls_per_trial"`
	Counts        map[rarity.Rarity]int     `json:"counts"`
	Frequency     map[rarity.Rarity]float64 `json:"frequency"`
	// FirstHighTier describes how many pulls each trial needed for its first
	// epic or legendary, over trials that got one.
	FirstHighTier Stats `json:"first_high_tier"`
	// NoHighTier counts trials that never rolled epic or legendary.
	NoHighTier   int `json:"no_high_tier"`
	PityTriggers int `json:"pity_triggers"`
}

// Simulate runs trials independent sequences of pullsPerTrial single summons
// from a fresh State using the service's rates, pity threshold, and random
// source. Only rarities are rolled; the catalog is not consulted.
//
// Postcondition: the sum of Counts is trials*pullsPerTrial. Non-positive
// arguments yield an empty report.
func (s *Service) Simulate(trials, pullsPerTrial int) Report {
	rep := Report{
		Trials:        max(trials, 0),
		PullsPerTrial: max(pullsPerTrial, 0),
		Counts:        make(map[rarity.Rarity]int, len(rarity.Order)),
		Frequency:     make(map[rarity.Rarity]float64, len(rarity.Order)),
	}
	if trials <= 0 || pullsPerTrial <= 0 {
		return rep
	}

	var firsts []int
	for t := 0; t < trials; t++ {
		pity := 0
		first := 0
		for p := 1; p <= pullsPerTrial; p++ {
			if rarity.Forced(pity, s.cfg.PityThreshold) {
				rep.PityTriggers++
			}
			var r rarity.Rarity
			r, pity = rarity.RollWithPity(s.src, s.cfg.Rates, pity, s.cfg.PityThreshold)
			rep.Counts[r]++
			if first == 0 && rarity.IsHighTier(r) {
				first = p
			}
		}
		if first == 0 {
			rep.NoHighTier++
			continue
		}
		firsts = append(firsts, first)
	}

	total := float64(trials * pullsPerTrial)
	for r, n := range rep.Counts {
		rep.Frequency[r] = float64(n) / total
	}
	rep.FirstHighTier = calcStats(firsts)
	s.logger.Debug("simulation complete",
		zap.Int("trials", trials),
		zap.Int("pulls_per_trial", pullsPerTrial),
		zap.Int("pity_triggers", rep.PityTriggers),
	)
	return rep
}

// calcStats computes mean, population standard deviation, and linearly
// interpolated percentiles.
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}
	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}

	cp := append([]int(nil), xs...)
	sort.Ints(cp)
	percentile := func(p float64) float64 {
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		if i+1 >= n {
			return float64(cp[n-1])
		}
		f := pos - float64(i)
		return float64(cp[i])*(1-f) + float64(cp[i+1])*f
	}

	return Stats{
		Mean:   mean,
		StdDev: math.Sqrt(acc / float64(n)),
		P50:    percentile(0.50),
		P90:    percentile(0.90),
		P99:    percentile(0.99),
	}
}
