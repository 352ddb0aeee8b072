package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/heroforge/internal/game/gacha"
)

// GachaStateRepository persists each player's summon progress.
type GachaStateRepository struct {
	db *pgxpool.Pool
}

// NewGachaStateRepository creates a GachaStateRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewGachaStateRepository(db *pgxpool.Pool) *GachaStateRepository {
	return &GachaStateRepository{db: db}
}

// Get returns the summon state of playerID. A player who never summoned has
// the zero State.
func (r *GachaStateRepository) Get(ctx context.Context, playerID int64) (gacha.State, error) {
	var s gacha.State
	err := r.db.QueryRow(ctx, `
		SELECT summon_count,
		       COALESCE(to_char(last_free_summon_date, 'YYYY-MM-DD'), ''),
		       pity_summons
		FROM gacha_states WHERE player_id = $1`,
		playerID,
	).Scan(&s.SummonCount, &s.LastFreeSummonDate, &s.PitySummons)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return gacha.State{}, nil
		}
		return gacha.State{}, fmt.Errorf("querying gacha state: %w", err)
	}
	return s, nil
}

// Save upserts the summon state of playerID.
//
// Precondition: s.LastFreeSummonDate is "" or YYYY-MM-DD.
// Postcondition: a following Get returns s; returns ErrPlayerNotFound if the
// player does not exist.
func (r *GachaStateRepository) Save(ctx context.Context, playerID int64, s gacha.State) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO gacha_states (player_id, summon_count, last_free_summon_date, pity_summons)
		VALUES ($1, $2, NULLIF($3, '')::date, $4)
		ON CONFLICT (player_id) DO UPDATE SET
			summon_count = EXCLUDED.summon_count,
			last_free_summon_date = EXCLUDED.last_free_summon_date,
			pity_summons = EXCLUDED.pity_summons,
			updated_at = NOW()`,
		playerID, s.SummonCount, s.LastFreeSummonDate, s.PitySummons,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("saving gacha state: %w", err)
	}
	return nil
}
