package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PromoCode is a percentage-discount token. Codes are stored trimmed and
// upper-cased. A code is usable only while active and, when an expiry is
// set, before that expiry.
type PromoCode struct {
	ID                 int             `json:"id"`
	Code               string          `json:"code"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	Active             bool            `json:"is_active"`
	ExpiresAt          *time.Time      `json:"expires_at,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// Usable reports whether the code can be applied at the given instant.
func (p PromoCode) Usable(now time.Time) bool {
	if !p.Active {
		return false
	}
	if p.ExpiresAt != nil && !p.ExpiresAt.After(now) {
		return false
	}
	return true
}
