package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/heroforge/internal/game/item"
	"github.com/cory-johannsen/heroforge/internal/game/rarity"
)

// ErrItemNotFound is returned when an item lookup yields no results.
var ErrItemNotFound = errors.New("item not found")

// ItemRepository persists generated items in a player's inventory.
type ItemRepository struct {
	db *pgxpool.Pool
}

// NewItemRepository creates an ItemRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewItemRepository(db *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = `id, name, rarity, level, slot, hp, attack, defense, speed, crit, gold_value, enchant_level`

// Save inserts or updates an item owned by playerID. Only the enchant level
// of an existing item can change.
func (r *ItemRepository) Save(ctx context.Context, playerID int64, it item.Instance) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO items (player_id, `+itemColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (id) DO UPDATE SET
			enchant_level = EXCLUDED.enchant_level,
			updated_at = NOW()`,
		playerID, it.ID, it.Name, string(it.Rarity), it.Level, string(it.Slot),
		it.Stats.HP, it.Stats.Attack, it.Stats.Defense, it.Stats.Speed, it.Stats.Crit,
		it.GoldValue, it.EnchantLevel,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("saving item %s: %w", it.ID, err)
	}
	return nil
}

// SaveAll stores a batch of loot in one transaction.
func (r *ItemRepository) SaveAll(ctx context.Context, playerID int64, items []item.Instance) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning item batch: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(`
			INSERT INTO items (player_id, `+itemColumns+`)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
			playerID, it.ID, it.Name, string(it.Rarity), it.Level, string(it.Slot),
			it.Stats.HP, it.Stats.Attack, it.Stats.Defense, it.Stats.Speed, it.Stats.Crit,
			it.GoldValue, it.EnchantLevel,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if isForeignKeyViolation(err) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("inserting item batch: %w", err)
	}
	return tx.Commit(ctx)
}

// ListByOwner returns every item of playerID ordered by acquisition.
func (r *ItemRepository) ListByOwner(ctx context.Context, playerID int64) ([]item.Instance, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+itemColumns+`
		FROM items WHERE player_id = $1 ORDER BY created_at ASC, id ASC`,
		playerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	items := make([]item.Instance, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item row: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetByID retrieves an item by its ID.
func (r *ItemRepository) GetByID(ctx context.Context, id string) (item.Instance, error) {
	it, err := scanItem(r.db.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return item.Instance{}, ErrItemNotFound
		}
		return item.Instance{}, fmt.Errorf("querying item: %w", err)
	}
	return it, nil
}

// Delete removes a sold item.
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func scanItem(row pgx.Row) (item.Instance, error) {
	var (
		it            item.Instance
		rarityS, slot string
	)
	err := row.Scan(
		&it.ID, &it.Name, &rarityS, &it.Level, &slot,
		&it.Stats.HP, &it.Stats.Attack, &it.Stats.Defense, &it.Stats.Speed, &it.Stats.Crit,
		&it.GoldValue, &it.EnchantLevel,
	)
	it.Rarity = rarity.Rarity(rarityS)
	it.Slot = item.Slot(slot)
	return it, err
}
