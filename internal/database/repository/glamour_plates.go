package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// GlamourPlateRepo handles the remembered glamour plates.
type GlamourPlateRepo struct {
	db *sql.DB
}

func NewGlamourPlateRepo(db *sql.DB) *GlamourPlateRepo {
	return &GlamourPlateRepo{db: db}
}

// ReplaceAll swaps the stored plates for plates in one transaction.
func (r *GlamourPlateRepo) ReplaceAll(ctx context.Context, plates []GlamourPlate) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM glamour_plates`); err != nil {
		_ = tx.Rollback()
		return err
	}
	for _, p := range plates {
		items, err := json.Marshal(p.Items)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("encode plate %d items: %w", p.Slot, err)
		}
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO glamour_plates(id, slot, name, items, captured_at)
		VALUES (?, ?, ?, ?, ?)`, p.ID, p.Slot, p.Name, string(items), p.CapturedAt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert plate %d: %w", p.Slot, err)
		}
	}
	return tx.Commit()
}

func (r *GlamourPlateRepo) List(ctx context.Context) ([]GlamourPlate, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, slot, name, items, captured_at FROM glamour_plates ORDER BY slot`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []GlamourPlate
	for rows.Next() {
		var p GlamourPlate
		var items string
		if err := rows.Scan(&p.ID, &p.Slot, &p.Name, &items, &p.CapturedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(items), &p.Items); err != nil {
			return nil, fmt.Errorf("decode plate %d items: %w", p.Slot, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Summary returns the plate count and the most recent capture time (zero
// when there are no plates).
func (r *GlamourPlateRepo) Summary(ctx context.Context) (int, time.Time, error) {
	plates, err := r.List(ctx)
	if err != nil {
		return 0, time.Time{}, err
	}
	var latest time.Time
	for _, p := range plates {
		if p.CapturedAt.After(latest) {
			latest = p.CapturedAt
		}
	}
	return len(plates), latest, nil
}

func (r *GlamourPlateRepo) DeleteAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM glamour_plates`)
	return err
}
