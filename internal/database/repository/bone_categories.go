package repository

import (
	"context"
	"database/sql"
	"time"
)

// BoneCategoryRepo handles the catalog of bone categories.
type BoneCategoryRepo struct {
	db *sql.DB
}

func NewBoneCategoryRepo(db *sql.DB) *BoneCategoryRepo {
	return &BoneCategoryRepo{db: db}
}

// Upsert inserts c or updates its default color and order. last_seen is
// only ever advanced by Touch.
func (r *BoneCategoryRepo) Upsert(ctx context.Context, c BoneCategory) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO bone_categories(id, name, default_color, sort_order, last_seen)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET
	 default_color=excluded.default_color,
	 sort_order=excluded.sort_order;
	`, c.ID, c.Name, c.DefaultColor, c.SortOrder, c.LastSeen)
	return err
}

func (r *BoneCategoryRepo) List(ctx context.Context) ([]BoneCategory, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, default_color, sort_order, last_seen FROM bone_categories ORDER BY sort_order, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []BoneCategory
	for rows.Next() {
		var c BoneCategory
		var seen sql.NullTime
		if err := rows.Scan(&c.ID, &c.Name, &c.DefaultColor, &c.SortOrder, &seen); err != nil {
			return nil, err
		}
		if seen.Valid {
			t := seen.Time
			c.LastSeen = &t
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Count returns the number of catalogued categories.
func (r *BoneCategoryRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bone_categories`).Scan(&n)
	return n, err
}

// Touch records that a bone of the named category was drawn at seen. It
// reports false when no catalogued category has that name.
func (r *BoneCategoryRepo) Touch(ctx context.Context, name string, seen time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE bone_categories SET last_seen=? WHERE name=?`, seen, name)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
