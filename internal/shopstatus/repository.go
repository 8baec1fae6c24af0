package shopstatus

import (
	"context"
	"database/sql"

	"sweetshop-service/internal/entity"
)

// Repository reads and writes shop_settings and working_hours.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repository over the given database.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetSettings returns the single settings row.
func (r *Repository) GetSettings(ctx context.Context) (*entity.ShopSettings, error) {
	var s entity.ShopSettings
	err := r.db.QueryRowContext(ctx, `SELECT id, is_open FROM shop_settings LIMIT 1`).Scan(&s.ID, &s.IsOpen)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SetOpen flips the manual open/closed switch.
func (r *Repository) SetOpen(ctx context.Context, open bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE shop_settings SET is_open = ?`, open)
	return err
}

// ListHours returns the seven weekday rows ordered by day of week.
func (r *Repository) ListHours(ctx context.Context) ([]entity.WorkingHours, error) {
	query := `SELECT id, day_of_week, is_closed, opening_time, closing_time FROM working_hours ORDER BY day_of_week`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.WorkingHours
	for rows.Next() {
		var h entity.WorkingHours
		if err := rows.Scan(&h.ID, &h.DayOfWeek, &h.IsClosed, &h.OpeningTime, &h.ClosingTime); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// UpdateHours rewrites one weekday row.
func (r *Repository) UpdateHours(ctx context.Context, h entity.WorkingHours) error {
	query := `UPDATE working_hours SET is_closed = ?, opening_time = ?, closing_time = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, h.IsClosed, h.OpeningTime, h.ClosingTime, h.ID)
	return err
}
