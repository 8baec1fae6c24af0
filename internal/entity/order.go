package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fulfillment is how the customer receives the order.
type Fulfillment string

const (
	FulfillmentPickup   Fulfillment = "pickup"
	FulfillmentDelivery Fulfillment = "delivery"
)

// Valid reports whether the value is one of the two supported methods.
func (f Fulfillment) Valid() bool {
	return f == FulfillmentPickup || f == FulfillmentDelivery
}

// Order is the persisted record of a submitted checkout. Summary is the
// exact message handed to the messaging link; delivery confirmation is not
// tracked here.
type Order struct {
	ID             int64           `json:"id"`
	CustomerName   string          `json:"customer_name"`
	Phone          string          `json:"phone"`
	Fulfillment    Fulfillment     `json:"fulfillment"`
	Notes          string          `json:"notes,omitempty"`
	PromoCode      string          `json:"promo_code,omitempty"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalTotal     decimal.Decimal `json:"final_total"`
	Summary        string          `json:"summary"`
	Status         string          `json:"status"` // e.g. "submitted"
	IdempotencyKey string          `json:"idempotency_key"`
	Lines          []OrderLine     `json:"lines"`
	CreatedAt      time.Time       `json:"created_at"`
}

// OrderLine is a flattened cart line kept with the order record.
type OrderLine struct {
	ID      int64           `json:"id"`
	OrderID int64           `json:"order_id"`
	Kind    LineKind        `json:"kind"`
	Label   string          `json:"label"`
	Total   decimal.Decimal `json:"total"`
}
