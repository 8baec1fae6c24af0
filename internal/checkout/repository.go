package checkout

import (
	"context"
	"database/sql"

	"sweetshop-service/internal/entity"
)

// Repository persists submitted orders.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repository over the given database.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateOrder inserts the order and its lines in one transaction.
func (r *Repository) CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	orderQuery := `
		INSERT INTO orders
			(customer_name, phone, fulfillment, notes, promo_code, subtotal, discount_amount, final_total, summary, status, idempotency_key)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, orderQuery,
		order.CustomerName, order.Phone, order.Fulfillment, order.Notes, order.PromoCode,
		order.Subtotal, order.DiscountAmount, order.FinalTotal, order.Summary, order.Status, order.IdempotencyKey)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	orderID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if len(order.Lines) > 0 {
		lineQuery := `INSERT INTO order_lines (order_id, kind, label, total) VALUES `
		var values []interface{}
		for _, line := range order.Lines {
			lineQuery += "(?, ?, ?, ?),"
			values = append(values, orderID, line.Kind, line.Label, line.Total)
		}
		lineQuery = lineQuery[:len(lineQuery)-1]

		if _, err := tx.ExecContext(ctx, lineQuery, values...); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	order.ID = orderID
	return order, nil
}
