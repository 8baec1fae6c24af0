package availability

import (
	"context"
	"database/sql"

	"sweetshop-service/internal/entity"
)

// Repository reads and writes the product_availability table.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repository over the given database.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// FetchAll loads the full availability map. Products without a row are
// simply absent; callers default them to available.
func (r *Repository) FetchAll(ctx context.Context) (map[string]bool, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT product_id, is_available FROM product_availability`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	m := make(map[string]bool)
	for rows.Next() {
		var id string
		var available bool
		if err := rows.Scan(&id, &available); err != nil {
			return nil, err
		}
		m[id] = available
	}
	return m, rows.Err()
}

// List returns the rows for the admin panel, ordered by product id.
func (r *Repository) List(ctx context.Context) ([]entity.ProductAvailability, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT product_id, is_available FROM product_availability ORDER BY product_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.ProductAvailability
	for rows.Next() {
		var pa entity.ProductAvailability
		if err := rows.Scan(&pa.ProductID, &pa.Available); err != nil {
			return nil, err
		}
		out = append(out, pa)
	}
	return out, rows.Err()
}

// Set upserts one product's availability flag.
func (r *Repository) Set(ctx context.Context, productID string, available bool) error {
	query := `
		INSERT INTO product_availability (product_id, is_available)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE is_available = VALUES(is_available)`
	_, err := r.db.ExecContext(ctx, query, productID, available)
	return err
}
