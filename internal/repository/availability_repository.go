package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/tutor_crm/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AvailabilityRepository struct {
	pool *pgxpool.Pool
}

func NewAvailabilityRepository(pool *pgxpool.Pool) *AvailabilityRepository {
	return &AvailabilityRepository{pool: pool}
}

const availabilityColumns = `id, owner_id, owner_kind, weekday, start_minute, end_minute, is_available, created_at`

func scanAvailabilitySlot(row pgx.Row) (*model.AvailabilitySlot, error) {
	var s model.AvailabilitySlot
	err := row.Scan(
		&s.ID,
		&s.OwnerID,
		&s.OwnerKind,
		&s.Weekday,
		&s.StartMinute,
		&s.EndMinute,
		&s.IsAvailable,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create добавляет один слот доступности
func (r *AvailabilityRepository) Create(ctx context.Context, slot *model.AvailabilitySlot) error {
	query := `
		INSERT INTO availability_slots (owner_id, owner_kind, weekday, start_minute, end_minute, is_available)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		slot.OwnerID,
		slot.OwnerKind,
		slot.Weekday,
		slot.StartMinute,
		slot.EndMinute,
		slot.IsAvailable,
	).Scan(&slot.ID, &slot.CreatedAt)

	if err != nil {
		return fmt.Errorf("create availability slot: %w", err)
	}

	return nil
}

// GetByID получает слот по ID
func (r *AvailabilityRepository) GetByID(ctx context.Context, id int64) (*model.AvailabilitySlot, error) {
	query := `SELECT ` + availabilityColumns + ` FROM availability_slots WHERE id = $1`

	slot, err := scanAvailabilitySlot(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get availability slot by id: %w", err)
	}

	return slot, nil
}

// GetByOwner получает все слоты владельца
func (r *AvailabilityRepository) GetByOwner(ctx context.Context, ownerID int64, kind model.OwnerKind) ([]model.AvailabilitySlot, error) {
	query := `
		SELECT ` + availabilityColumns + `
		FROM availability_slots
		WHERE owner_id = $1 AND owner_kind = $2
		ORDER BY weekday, start_minute
	`
	return r.queryMany(ctx, query, ownerID, kind)
}

// GetAvailableByOwner получает только слоты с is_available = true
func (r *AvailabilityRepository) GetAvailableByOwner(ctx context.Context, ownerID int64, kind model.OwnerKind) ([]model.AvailabilitySlot, error) {
	query := `
		SELECT ` + availabilityColumns + `
		FROM availability_slots
		WHERE owner_id = $1 AND owner_kind = $2 AND is_available = TRUE
		ORDER BY weekday, start_minute
	`
	return r.queryMany(ctx, query, ownerID, kind)
}

// ReplaceWeekly целиком заменяет недельное расписание владельца.
// Удаление и вставка выполняются в одной транзакции.
func (r *AvailabilityRepository) ReplaceWeekly(ctx context.Context, ownerID int64, kind model.OwnerKind, slots []model.AvailabilitySlot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`DELETE FROM availability_slots WHERE owner_id = $1 AND owner_kind = $2`,
		ownerID, kind,
	)
	if err != nil {
		return fmt.Errorf("delete availability slots: %w", err)
	}

	for i := range slots {
		err := tx.QueryRow(ctx,
			`INSERT INTO availability_slots (owner_id, owner_kind, weekday, start_minute, end_minute, is_available)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING id, created_at`,
			ownerID,
			kind,
			slots[i].Weekday,
			slots[i].StartMinute,
			slots[i].EndMinute,
			slots[i].IsAvailable,
		).Scan(&slots[i].ID, &slots[i].CreatedAt)
		if err != nil {
			return fmt.Errorf("insert availability slot: %w", err)
		}
		slots[i].OwnerID = ownerID
		slots[i].OwnerKind = kind
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// Delete удаляет один слот
func (r *AvailabilityRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM availability_slots WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete availability slot: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *AvailabilityRepository) queryMany(ctx context.Context, query string, args ...any) ([]model.AvailabilitySlot, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query availability slots: %w", err)
	}
	defer rows.Close()

	var slots []model.AvailabilitySlot
	for rows.Next() {
		slot, err := scanAvailabilitySlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan availability slot: %w", err)
		}
		slots = append(slots, *slot)
	}

	return slots, nil
}
