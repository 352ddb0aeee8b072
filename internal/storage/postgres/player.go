package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/heroforge/internal/game/town"
)

// Player is a player record and its gold wallet.
type Player struct {
	ID        int64
	Username  string
	Gold      int
	CreatedAt time.Time
}

// ErrPlayerNotFound is returned when a player lookup yields no results.
var ErrPlayerNotFound = errors.New("player not found")

// ErrPlayerExists is returned when attempting to create a duplicate username.
var ErrPlayerExists = errors.New("player already exists")

// PlayerRepository provides player persistence operations.
type PlayerRepository struct {
	db *pgxpool.Pool
}

// NewPlayerRepository creates a PlayerRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewPlayerRepository(db *pgxpool.Pool) *PlayerRepository {
	return &PlayerRepository{db: db}
}

// Create inserts a new player with the given starting gold.
//
// Precondition: username must be non-empty; gold must be >= 0.
// Postcondition: Returns the created Player with ID and CreatedAt set,
// or ErrPlayerExists if the username is taken.
func (r *PlayerRepository) Create(ctx context.Context, username string, gold int) (Player, error) {
	var p Player
	err := r.db.QueryRow(ctx,
		`INSERT INTO players (username, gold)
		 VALUES ($1, $2)
		 RETURNING id, username, gold, created_at`,
		username, gold,
	).Scan(&p.ID, &p.Username, &p.Gold, &p.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return Player{}, ErrPlayerExists
		}
		return Player{}, fmt.Errorf("inserting player: %w", err)
	}
	return p, nil
}

// GetByID retrieves a player by primary key.
//
// Postcondition: Returns the Player or ErrPlayerNotFound.
func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (Player, error) {
	return r.get(ctx, `SELECT id, username, gold, created_at FROM players WHERE id = $1`, id)
}

// GetByUsername retrieves a player by username.
//
// Precondition: username must be non-empty.
// Postcondition: Returns the Player or ErrPlayerNotFound.
func (r *PlayerRepository) GetByUsername(ctx context.Context, username string) (Player, error) {
	return r.get(ctx, `SELECT id, username, gold, created_at FROM players WHERE username = $1`, username)
}

func (r *PlayerRepository) get(ctx context.Context, query string, arg any) (Player, error) {
	var p Player
	err := r.db.QueryRow(ctx, query, arg).Scan(&p.ID, &p.Username, &p.Gold, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Player{}, ErrPlayerNotFound
		}
		return Player{}, fmt.Errorf("querying player: %w", err)
	}
	return p, nil
}

// AdjustGold atomically adds delta (which may be negative) to the player's
// gold and returns the new balance.
//
// Postcondition: the balance never drops below zero; a debit larger than
// the balance returns town.ErrInsufficientFunds and changes nothing.
func (r *PlayerRepository) AdjustGold(ctx context.Context, id int64, delta int) (int, error) {
	var gold int
	err := r.db.QueryRow(ctx,
		`UPDATE players SET gold = gold + $2, updated_at = NOW()
		 WHERE id = $1
		 RETURNING gold`,
		id, delta,
	).Scan(&gold)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrPlayerNotFound
		}
		if isCheckViolation(err) {
			return 0, fmt.Errorf("debiting %d gold from player %d: %w", -delta, id, town.ErrInsufficientFunds)
		}
		return 0, fmt.Errorf("adjusting gold: %w", err)
	}
	return gold, nil
}

// SetGold stores an absolute balance, as returned by the pure town and
// gacha operations.
//
// Precondition: gold must be >= 0.
func (r *PlayerRepository) SetGold(ctx context.Context, id int64, gold int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE players SET gold = $2, updated_at = NOW() WHERE id = $1`,
		id, gold,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("setting gold to %d: %w", gold, town.ErrInsufficientFunds)
		}
		return fmt.Errorf("setting gold: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlayerNotFound
	}
	return nil
}
