package promo

import (
	"context"
	"database/sql"
	"errors"

	"sweetshop-service/internal/entity"
)

// Repository reads and writes the promo_codes table.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repository over the given database.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const promoColumns = `id, code, discount_percentage, is_active, expires_at, created_at, updated_at`

func scanPromo(row interface{ Scan(...any) error }) (*entity.PromoCode, error) {
	var p entity.PromoCode
	var expires sql.NullTime
	err := row.Scan(&p.ID, &p.Code, &p.DiscountPercentage, &p.Active, &expires, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if expires.Valid {
		t := expires.Time
		p.ExpiresAt = &t
	}
	return &p, nil
}

// GetActiveByCode looks up an active code. The caller normalizes the code
// and checks expiry.
func (r *Repository) GetActiveByCode(ctx context.Context, code string) (*entity.PromoCode, error) {
	query := `SELECT ` + promoColumns + ` FROM promo_codes WHERE code = ? AND is_active = TRUE`
	p, err := scanPromo(r.db.QueryRowContext(ctx, query, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCodeNotFound
	}
	return p, err
}

// List returns all codes ordered by creation time, for the admin panel.
func (r *Repository) List(ctx context.Context) ([]entity.PromoCode, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+promoColumns+` FROM promo_codes ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.PromoCode
	for rows.Next() {
		p, err := scanPromo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Create inserts a new code and returns it with its assigned id.
func (r *Repository) Create(ctx context.Context, p *entity.PromoCode) (*entity.PromoCode, error) {
	query := `
		INSERT INTO promo_codes (code, discount_percentage, is_active, expires_at)
		VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, p.Code, p.DiscountPercentage, p.Active, p.ExpiresAt)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, int(id))
}

// GetByID fetches one code.
func (r *Repository) GetByID(ctx context.Context, id int) (*entity.PromoCode, error) {
	query := `SELECT ` + promoColumns + ` FROM promo_codes WHERE id = ?`
	p, err := scanPromo(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCodeNotFound
	}
	return p, err
}

// Update rewrites the mutable fields of one code.
func (r *Repository) Update(ctx context.Context, p *entity.PromoCode) error {
	query := `
		UPDATE promo_codes
		SET code = ?, discount_percentage = ?, is_active = ?, expires_at = ?, updated_at = NOW()
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, p.Code, p.DiscountPercentage, p.Active, p.ExpiresAt, p.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCodeNotFound
	}
	return nil
}

// Delete removes one code.
func (r *Repository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM promo_codes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCodeNotFound
	}
	return nil
}
