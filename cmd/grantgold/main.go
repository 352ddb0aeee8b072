// Package main provides a CLI tool for creating players and adjusting their
// gold balance.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/cory-johannsen/heroforge/internal/config"
	"github.com/cory-johannsen/heroforge/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	username := flag.String("username", "", "target player username (required)")
	delta := flag.Int("gold", 0, "gold to add; negative values debit")
	create := flag.Bool("create", false, "create the player if it does not exist")
	flag.Parse()

	if *username == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Health(ctx, 5*time.Second); err != nil {
		log.Fatalf("database not ready: %v", err)
	}

	repo := postgres.NewPlayerRepository(pool.DB())

	player, err := repo.GetByUsername(ctx, *username)
	if errors.Is(err, postgres.ErrPlayerNotFound) && *create {
		player, err = repo.Create(ctx, *username, 0)
	}
	if err != nil {
		log.Fatalf("looking up player %q: %v", *username, err)
	}

	gold, err := repo.AdjustGold(ctx, player.ID, *delta)
	if err != nil {
		log.Fatalf("adjusting gold: %v", err)
	}

	elapsed := time.Since(start)
	fmt.Fprintf(os.Stdout, "gold for %s (#%d): %d -> %d [%s]\n",
		player.Username, player.ID, player.Gold, gold, elapsed)
}
