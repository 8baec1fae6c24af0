// Package boxbuilder maintains the ordered placements of one box-building
// session and enforces the container's width budget before every insertion.
package boxbuilder

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sweetshop-service/internal/catalog"
	"sweetshop-service/internal/entity"
)

// CapacityError rejects an add that would exceed the container width.
// Full distinguishes "nothing fits anymore" from "this sweet does not fit",
// which drives different user-facing messages.
type CapacityError struct {
	SweetName   string
	RemainingCm float64
	Full        bool
}

func (e *CapacityError) Error() string {
	if e.Full {
		return fmt.Sprintf("cannot add %q: container is full", e.SweetName)
	}
	return fmt.Sprintf("cannot add %q: only %.1fcm remaining", e.SweetName, e.RemainingCm)
}

// Totals is the running price/weight/width of the working box.
type Totals struct {
	Price       decimal.Decimal `json:"price"`
	WeightGrams int             `json:"weight_grams"`
	WidthCm     float64         `json:"width_cm"`
}

// Session owns the placements for one in-progress box. It is not safe for
// concurrent use; callers serialize access per customer session. Sweets
// passed to TryAdd must already be scaled to the session's container.
type Session struct {
	container  entity.Container
	placements []entity.Placement
}

// NewSession starts an empty box for the given container.
func NewSession(container entity.Container) *Session {
	return &Session{container: container}
}

// Container returns the container this session packs into.
func (s *Session) Container() entity.Container { return s.container }

// Placements returns the placements in insertion order. The slice is a
// copy; mutating it does not affect the session.
func (s *Session) Placements() []entity.Placement {
	out := make([]entity.Placement, len(s.placements))
	copy(out, s.placements)
	return out
}

func (s *Session) usedWidth() float64 {
	var w float64
	for _, p := range s.placements {
		w += p.Sweet.WidthCm
	}
	return w
}

// TryAdd appends a new placement for the sweet if it fits the remaining
// width, returning a *CapacityError otherwise. The width invariant is
// checked before insertion, so the used width never exceeds the container
// width.
func (s *Session) TryAdd(sweet entity.Sweet) (entity.Placement, error) {
	used := s.usedWidth()
	if used+sweet.WidthCm > s.container.WidthCm {
		remaining := s.container.WidthCm - used
		return entity.Placement{}, &CapacityError{
			SweetName:   sweet.NameAr,
			RemainingCm: remaining,
			Full:        remaining <= 0,
		}
	}

	p := entity.Placement{PlacementID: uuid.New(), Sweet: sweet}
	s.placements = append(s.placements, p)
	return p, nil
}

// Remove drops the placement with the given id. Unknown ids are a no-op.
func (s *Session) Remove(placementID uuid.UUID) {
	kept := s.placements[:0]
	for _, p := range s.placements {
		if p.PlacementID != placementID {
			kept = append(kept, p)
		}
	}
	s.placements = kept
}

// Clear empties the box.
func (s *Session) Clear() {
	s.placements = nil
}

// FillPercent is the share of the width budget consumed, 0–100. It is not
// clamped; TryAdd guarantees it never exceeds 100.
func (s *Session) FillPercent() float64 {
	return 100 * s.usedWidth() / s.container.WidthCm
}

// CheckoutEligible reports whether the box is filled enough to be added to
// the cart. The threshold is inclusive.
func (s *Session) CheckoutEligible() bool {
	return s.FillPercent() >= catalog.MinFillPercent
}

// Totals sums the working box. Price includes the container base price;
// separators contribute width and price but no weight.
func (s *Session) Totals() Totals {
	t := Totals{Price: s.container.BasePrice}
	for _, p := range s.placements {
		t.Price = t.Price.Add(p.Sweet.Price)
		t.WeightGrams += p.Sweet.WeightGrams
		t.WidthCm += p.Sweet.WidthCm
	}
	return t
}

// ToCartLine snapshots the session into a cart line. Callers gate on
// CheckoutEligible first.
func (s *Session) ToCartLine() entity.BoxLine {
	t := s.Totals()
	return entity.BoxLine{
		ID:               uuid.New(),
		Container:        s.container,
		Placements:       s.Placements(),
		TotalPrice:       t.Price,
		TotalWeightGrams: t.WeightGrams,
		FillPercent:      s.FillPercent(),
	}
}
