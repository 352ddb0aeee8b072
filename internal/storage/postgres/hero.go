package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/heroforge/internal/game/hero"
	"github.com/cory-johannsen/heroforge/internal/game/rarity"
)

// ErrHeroNotFound is returned when a hero lookup yields no results.
var ErrHeroNotFound = errors.New("hero not found")

// HeroRepository provides roster hero persistence operations.
//
// Equipment is not stored with the hero; loaded heroes have effective stats
// equal to their base stats until equipment is reattached.
type HeroRepository struct {
	db *pgxpool.Pool
}

// NewHeroRepository creates a HeroRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewHeroRepository(db *pgxpool.Pool) *HeroRepository {
	return &HeroRepository{db: db}
}

const heroColumns = `id, template_id, name, class, role, rarity, level, experience, talent_points,
	base_hp, base_attack, base_defense, base_speed, base_crit, current_hp`

// Save inserts or updates a hero owned by playerID.
//
// Precondition: h.ID must be non-empty; playerID must reference a player.
// Postcondition: the stored row matches h; returns ErrPlayerNotFound if the
// player does not exist.
func (r *HeroRepository) Save(ctx context.Context, playerID int64, h *hero.Instance) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO heroes
			(player_id, `+heroColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		ON CONFLICT (id) DO UPDATE SET
			level = EXCLUDED.level,
			experience = EXCLUDED.experience,
			talent_points = EXCLUDED.talent_points,
			base_hp = EXCLUDED.base_hp,
			base_attack = EXCLUDED.base_attack,
			base_defense = EXCLUDED.base_defense,
			base_speed = EXCLUDED.base_speed,
			base_crit = EXCLUDED.base_crit,
			current_hp = EXCLUDED.current_hp,
			updated_at = NOW()`,
		playerID, h.ID, h.TemplateID, h.Name, string(h.Class), string(h.Role), string(h.Rarity),
		h.Level, h.Experience, h.TalentPoints,
		h.BaseStats.HP, h.BaseStats.Attack, h.BaseStats.Defense, h.BaseStats.Speed, h.BaseStats.Crit,
		h.CurrentHP,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("saving hero %s: %w", h.ID, err)
	}
	return nil
}

// ListByOwner returns every hero of playerID ordered by acquisition.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *HeroRepository) ListByOwner(ctx context.Context, playerID int64) ([]*hero.Instance, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+heroColumns+`
		FROM heroes WHERE player_id = $1 ORDER BY created_at ASC, id ASC`,
		playerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing heroes: %w", err)
	}
	defer rows.Close()

	heroes := make([]*hero.Instance, 0)
	for rows.Next() {
		h, err := scanHero(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning hero row: %w", err)
		}
		heroes = append(heroes, h)
	}
	return heroes, rows.Err()
}

// GetByID retrieves a hero by its ID.
//
// Postcondition: Returns the hero or ErrHeroNotFound.
func (r *HeroRepository) GetByID(ctx context.Context, id string) (*hero.Instance, error) {
	h, err := scanHero(r.db.QueryRow(ctx, `SELECT `+heroColumns+` FROM heroes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrHeroNotFound
		}
		return nil, fmt.Errorf("querying hero: %w", err)
	}
	return h, nil
}

// scanHero rebuilds a hero and its derived fields from a row.
func scanHero(row pgx.Row) (*hero.Instance, error) {
	var (
		h                    hero.Instance
		class, role, rarityS string
	)
	if err := row.Scan(
		&h.ID, &h.TemplateID, &h.Name, &class, &role, &rarityS,
		&h.Level, &h.Experience, &h.TalentPoints,
		&h.BaseStats.HP, &h.BaseStats.Attack, &h.BaseStats.Defense, &h.BaseStats.Speed, &h.BaseStats.Crit,
		&h.CurrentHP,
	); err != nil {
		return nil, err
	}
	h.Class = hero.Class(class)
	h.Role = hero.Role(role)
	h.Rarity = rarity.Rarity(rarityS)
	h.RequiredXP = hero.RequiredXP(h.Level)
	h.Recalculate()
	return &h, nil
}
