// Package main runs summon-rate simulations against the configured gacha
// tables and, optionally, a scripted economy session for one player.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/heroforge/internal/config"
	"github.com/cory-johannsen/heroforge/internal/game/dice"
	"github.com/cory-johannsen/heroforge/internal/game/gacha"
	"github.com/cory-johannsen/heroforge/internal/game/hero"
	"github.com/cory-johannsen/heroforge/internal/game/idgen"
	"github.com/cory-johannsen/heroforge/internal/game/loot"
	"github.com/cory-johannsen/heroforge/internal/game/rarity"
	"github.com/cory-johannsen/heroforge/internal/game/town"
	"github.com/cory-johannsen/heroforge/internal/observability"
	"github.com/cory-johannsen/heroforge/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	trials := flag.Int("trials", 10000, "number of simulated players")
	pulls := flag.Int("pulls", 100, "summons per simulated player")
	seed := flag.Uint64("seed", 0, "RNG seed; overrides random.seed when non-zero")
	session := flag.Bool("session", false, "run one scripted economy session after the simulation")
	username := flag.String("username", "", "persist the session for this player (requires -session)")
	startGold := flag.Int("gold", 20000, "starting gold for an in-memory session")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *seed != 0 {
		cfg.Random.Seed = *seed
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	tmpls, err := hero.LoadTemplates(cfg.Content.HeroesDir)
	if err != nil {
		logger.Fatal("loading hero templates", zap.Error(err))
	}
	catalog, err := hero.NewCatalog(tmpls)
	if err != nil {
		logger.Fatal("building hero catalog", zap.Error(err))
	}
	logger.Info("hero catalog loaded",
		zap.Int("templates", catalog.Len()),
		zap.String("dir", cfg.Content.HeroesDir),
	)

	src := newSource(cfg.Random.Seed)
	svc, err := gacha.NewService(cfg.Gacha, catalog, src, time.Now, observability.Component(logger, "gacha"))
	if err != nil {
		logger.Fatal("creating gacha service", zap.Error(err))
	}

	report := svc.Simulate(*trials, *pulls)
	logReport(logger, report)

	if *session {
		if err := runSession(cfg, svc, src, logger, *username, *startGold); err != nil {
			logger.Fatal("session failed", zap.Error(err))
		}
	}

	logger.Info("simulation complete", zap.Duration("elapsed", time.Since(start)))
}

func newSource(seed uint64) dice.Source {
	if seed != 0 {
		return dice.NewSeededSource(seed)
	}
	return dice.NewCryptoSource()
}

func logReport(logger *zap.Logger, r gacha.Report) {
	fields := []zap.Field{
		zap.Int("trials", r.Trials),
		zap.Int("pulls_per_trial", r.PullsPerTrial),
		zap.Int("pity_triggers", r.PityTriggers),
		zap.Int("no_high_tier", r.NoHighTier),
		zap.Float64("first_high_tier_mean", r.FirstHighTier.Mean),
		zap.Float64("first_high_tier_stddev", r.FirstHighTier.StdDev),
		zap.Float64("first_high_tier_p50", r.FirstHighTier.P50),
		zap.Float64("first_high_tier_p90", r.FirstHighTier.P90),
		zap.Float64("first_high_tier_p99", r.FirstHighTier.P99),
	}
	for _, rar := range rarity.Order {
		fields = append(fields,
			zap.Int(fmt.Sprintf("count_%s", rar), r.Counts[rar]),
			zap.Float64(fmt.Sprintf("frequency_%s", rar), r.Frequency[rar]),
		)
	}
	logger.Info("summon simulation report", fields...)
}

// runSession plays one scripted session. With a username the player's gold,
// gacha state, and roster are read from and written back to the database;
// otherwise the session runs in memory starting from gold.
func runSession(cfg config.Config, svc *gacha.Service, src dice.Source, logger *zap.Logger, username string, gold int) error {
	// session draws are audited; simulation draws are too many to log
	audited := dice.NewLoggedSource(src, observability.Component(logger, "dice"), "session")
	econ := &economy{
		gacha:  svc,
		loot:   loot.NewEngine(cfg.Loot, audited, idgen.UUID(), observability.Component(logger, "loot")),
		town:   town.NewService(cfg.Town, audited, observability.Component(logger, "town")),
		logger: observability.Component(logger, "session"),
	}

	if username == "" {
		econ.roster = hero.NewRoster(idgen.UUID())
		_, err := econ.playSession(gacha.State{}, gold)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	if err := pool.Health(ctx, 5*time.Second); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}

	players := postgres.NewPlayerRepository(pool.DB())
	heroes := postgres.NewHeroRepository(pool.DB())
	states := postgres.NewGachaStateRepository(pool.DB())
	items := postgres.NewItemRepository(pool.DB())

	player, err := players.GetByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("looking up player %q: %w", username, err)
	}
	owned, err := heroes.ListByOwner(ctx, player.ID)
	if err != nil {
		return err
	}
	state, err := states.Get(ctx, player.ID)
	if err != nil {
		return err
	}

	econ.roster = hero.NewRoster(idgen.UUID(), owned...)
	res, err := econ.playSession(state, player.Gold)
	if err != nil {
		return err
	}

	for _, h := range econ.roster.Heroes() {
		if err := heroes.Save(ctx, player.ID, h); err != nil {
			return err
		}
	}
	if err := items.SaveAll(ctx, player.ID, res.Items); err != nil {
		return err
	}
	if err := states.Save(ctx, player.ID, res.State); err != nil {
		return err
	}
	if err := players.SetGold(ctx, player.ID, res.Gold); err != nil {
		return err
	}
	logger.Info("session persisted",
		zap.String("username", username),
		zap.Int("heroes", econ.roster.Len()),
		zap.Int("items", len(res.Items)),
	)
	return nil
}
