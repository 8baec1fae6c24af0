// Package cart owns the ordered cart lines, notes and applied promo of one
// checkout session and computes price breakdowns.
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sweetshop-service/internal/entity"
)

var oneHundred = decimal.NewFromInt(100)

// Breakdown is the subtotal/discount/final triple served to the storefront.
// Values are unrounded; render with two decimals at display time.
type Breakdown struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalTotal     decimal.Decimal `json:"final_total"`
}

// Session is one customer's cart. Not safe for concurrent use; callers
// serialize access per customer session.
type Session struct {
	lines []entity.CartLine
	notes string
	promo *entity.AppliedPromo
}

// NewSession returns an empty cart.
func NewSession() *Session {
	return &Session{}
}

// Add appends a line. Insertion order is display order.
func (s *Session) Add(line entity.CartLine) {
	s.lines = append(s.lines, line)
}

// Remove drops the line with the given instance id. Absent ids are a no-op.
func (s *Session) Remove(instanceID uuid.UUID) {
	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.InstanceID() != instanceID {
			kept = append(kept, l)
		}
	}
	s.lines = kept
}

// Clear resets lines, notes and the applied promo together. This mirrors
// the single "empty cart" user action.
func (s *Session) Clear() {
	s.lines = nil
	s.notes = ""
	s.promo = nil
}

// Lines returns the cart lines in insertion order.
func (s *Session) Lines() []entity.CartLine {
	out := make([]entity.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Count returns the number of lines.
func (s *Session) Count() int { return len(s.lines) }

// SetNotes replaces the free-text order notes.
func (s *Session) SetNotes(notes string) { s.notes = notes }

// Notes returns the free-text order notes.
func (s *Session) Notes() string { return s.notes }

// ApplyPromo attaches a validated promo, replacing any previous one. A
// failed validation must not reach this method: an invalid candidate leaves
// the previously applied promo untouched.
func (s *Session) ApplyPromo(promo entity.AppliedPromo) {
	s.promo = &promo
}

// RemovePromo explicitly detaches the applied promo.
func (s *Session) RemovePromo() {
	s.promo = nil
}

// Promo returns the applied promo, or nil.
func (s *Session) Promo() *entity.AppliedPromo {
	if s.promo == nil {
		return nil
	}
	p := *s.promo
	return &p
}

// Subtotal sums line totals without intermediate rounding. Box line totals
// were baked at add time and already include the container base price.
func (s *Session) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range s.lines {
		switch line := l.(type) {
		case entity.WeightLine:
			sum = sum.Add(line.TotalPrice)
		case entity.FixedLine:
			sum = sum.Add(line.TotalPrice)
		case entity.BoxLine:
			sum = sum.Add(line.TotalPrice)
		}
	}
	return sum
}

// DiscountedTotal applies the promo percentage, if any, to the subtotal.
func (s *Session) DiscountedTotal() Breakdown {
	subtotal := s.Subtotal()
	if s.promo == nil {
		return Breakdown{Subtotal: subtotal, DiscountAmount: decimal.Zero, FinalTotal: subtotal}
	}
	discount := subtotal.Mul(s.promo.DiscountPercentage).Div(oneHundred)
	return Breakdown{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		FinalTotal:     subtotal.Sub(discount),
	}
}
