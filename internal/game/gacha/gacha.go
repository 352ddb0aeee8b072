package gacha

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/heroforge/internal/game/dice"
	"github.com/cory-johannsen/heroforge/internal/game/hero"
	"github.com/cory-johannsen/heroforge/internal/game/rarity"
)

// Service performs summons against a hero catalog. It holds no per-player
// state; all progress travels in State values.
type Service struct {
	cfg     Config
	catalog *hero.Catalog
	src     dice.Source
	clock   func() time.Time
	logger  *zap.Logger
}

// NewService builds a summon Service.
//
// Precondition: catalog and src must be non-nil. A nil clock uses time.Now;
// a nil logger is replaced with a no-op logger.
// Postcondition: Returns an error iff cfg is invalid or catalog is nil.
func NewService(cfg Config, catalog *hero.Catalog, src dice.Source, clock func() time.Time, logger *zap.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if catalog == nil {
		return nil, errors.New("gacha: catalog must not be nil")
	}
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Debug.FreeSummonAlwaysAvailable {
		logger.Warn("debug: free summon gate disabled")
	}
	if missing := catalog.MissingRarities(); len(missing) > 0 {
		logger.Warn("hero catalog is missing rarities", zap.Any("rarities", missing))
	}
	return &Service{cfg: cfg, catalog: catalog, src: src, clock: clock, logger: logger}, nil
}

// Config returns the service configuration.
func (s *Service) Config() Config {
	return s.cfg
}

// today returns the current UTC day as YYYY-MM-DD.
func (s *Service) today() string {
	return s.clock().UTC().Format(time.DateOnly)
}

// Summon performs one pity-aware summon.
//
// Postcondition: on success the returned State has SummonCount+1, the
// advanced pity counter, and LastFreeSummonDate set to today iff isFree. On
// error the input state is returned unchanged.
func (s *Service) Summon(state State, isFree bool) (hero.Template, State, error) {
	if rarity.Forced(state.PitySummons, s.cfg.PityThreshold) {
		s.logger.Info("pity triggered", zap.Int("pity_summons", state.PitySummons))
	}
	r, pity := rarity.RollWithPity(s.src, s.cfg.Rates, state.PitySummons, s.cfg.PityThreshold)
	tmpl, err := s.pick(r)
	if err != nil {
		return hero.Template{}, state, err
	}

	next := state
	next.SummonCount++
	next.PitySummons = pity
	if isFree {
		next.LastFreeSummonDate = s.today()
	}
	s.logger.Debug("summon",
		zap.String("template_id", tmpl.ID),
		zap.String("rarity", string(r)),
		zap.Int("pity_summons", pity),
		zap.Bool("free", isFree),
	)
	return tmpl, next, nil
}

// SummonTen performs a ten-pull. The pity counter threads through all ten
// rolls and at least one result is rare or better.
//
// Postcondition: on success len(result) == 10 and SummonCount grew by 10. On
// error the input state is returned unchanged.
func (s *Service) SummonTen(state State) ([]hero.Template, State, error) {
	rs, pity := rarity.RollTen(s.src, s.cfg.Rates, state.PitySummons, s.cfg.PityThreshold)
	for _, at := range forcedRolls(rs, state.PitySummons, s.cfg.PityThreshold) {
		s.logger.Info("pity triggered", zap.Int("roll", at))
	}
	out := make([]hero.Template, 0, len(rs))
	for _, r := range rs {
		tmpl, err := s.pick(r)
		if err != nil {
			return nil, state, err
		}
		out = append(out, tmpl)
	}

	next := state
	next.SummonCount += len(rs)
	next.PitySummons = pity
	s.logger.Debug("ten summon",
		zap.Int("summon_count", next.SummonCount),
		zap.Int("pity_summons", pity),
	)
	return out, next, nil
}

// forcedRolls replays the pity counter over rs and returns the indexes whose
// result was forced.
func forcedRolls(rs []rarity.Rarity, pity, threshold int) []int {
	var forced []int
	for i, r := range rs {
		if rarity.Forced(pity, threshold) {
			forced = append(forced, i)
		}
		if rarity.IsHighTier(r) {
			pity = 0
		} else {
			pity++
		}
	}
	return forced
}

// CanFreeSummon reports whether state may take a free summon today.
func (s *Service) CanFreeSummon(state State) bool {
	if s.cfg.Debug.FreeSummonAlwaysAvailable {
		return true
	}
	return state.LastFreeSummonDate != s.today()
}

// FreeSummon performs today's free summon.
func (s *Service) FreeSummon(state State) (hero.Template, State, error) {
	if !s.CanFreeSummon(state) {
		return hero.Template{}, state, fmt.Errorf("last free summon %s: %w", state.LastFreeSummonDate, ErrFreeSummonUnavailable)
	}
	return s.Summon(state, true)
}

// PaidSummon charges SingleCost and performs one summon.
//
// Postcondition: on ErrInsufficientFunds or a configuration error neither
// state nor gold changes.
func (s *Service) PaidSummon(state State, gold int) (Result, error) {
	if gold < s.cfg.SingleCost {
		return Result{State: state, Gold: gold}, fmt.Errorf("summon costs %d, have %d: %w", s.cfg.SingleCost, gold, ErrInsufficientFunds)
	}
	tmpl, next, err := s.Summon(state, false)
	if err != nil {
		return Result{State: state, Gold: gold}, err
	}
	return Result{Templates: []hero.Template{tmpl}, State: next, Gold: gold - s.cfg.SingleCost}, nil
}

// PaidSummonTen charges TenCost and performs a ten-pull.
func (s *Service) PaidSummonTen(state State, gold int) (Result, error) {
	if gold < s.cfg.TenCost {
		return Result{State: state, Gold: gold}, fmt.Errorf("ten summon costs %d, have %d: %w", s.cfg.TenCost, gold, ErrInsufficientFunds)
	}
	tmpls, next, err := s.SummonTen(state)
	if err != nil {
		return Result{State: state, Gold: gold}, err
	}
	return Result{Templates: tmpls, State: next, Gold: gold - s.cfg.TenCost}, nil
}

// pick chooses uniformly among the catalog templates of rarity r.
func (s *Service) pick(r rarity.Rarity) (hero.Template, error) {
	pool := s.catalog.ByRarity(r)
	if len(pool) == 0 {
		err := &ConfigurationError{Rarity: r}
		s.logger.Error("summon failed", zap.Error(err))
		return hero.Template{}, err
	}
	return pool[dice.Intn(s.src, len(pool))], nil
}
