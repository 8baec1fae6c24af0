package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineKind discriminates the cart line union.
type LineKind string

const (
	LineKindWeight LineKind = "weight"
	LineKindFixed  LineKind = "fixed"
	LineKindBox    LineKind = "box"
)

// CartLine is one orderable entry in the checkout cart. Totals are baked in
// at add time and never recomputed. The three implementations are
// WeightLine, FixedLine and BoxLine; code computing totals or rendering
// summaries must switch over all of them.
type CartLine interface {
	Kind() LineKind
	InstanceID() uuid.UUID
	Total() decimal.Decimal
}

// WeightLine is a weight-priced catalog item: total = price per kg × kg.
type WeightLine struct {
	ID          uuid.UUID       `json:"instance_id"`
	Item        AlaCarteItem    `json:"item"`
	WeightKg    float64         `json:"weight_kg"`
	WeightLabel string          `json:"weight_label"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

func (l WeightLine) Kind() LineKind         { return LineKindWeight }
func (l WeightLine) InstanceID() uuid.UUID  { return l.ID }
func (l WeightLine) Total() decimal.Decimal { return l.TotalPrice }

// FixedLine is a fixed-tier item such as a pre-assembled gift box.
type FixedLine struct {
	ID         uuid.UUID       `json:"instance_id"`
	Item       AlaCarteItem    `json:"item"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func (l FixedLine) Kind() LineKind         { return LineKindFixed }
func (l FixedLine) InstanceID() uuid.UUID  { return l.ID }
func (l FixedLine) Total() decimal.Decimal { return l.TotalPrice }

// BoxLine is a snapshot of a completed box-building session. Total already
// includes the container base price.
type BoxLine struct {
	ID               uuid.UUID       `json:"instance_id"`
	Container        Container       `json:"container"`
	Placements       []Placement     `json:"placements"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	TotalWeightGrams int             `json:"total_weight_grams"`
	FillPercent      float64         `json:"fill_percent"`
}

func (l BoxLine) Kind() LineKind         { return LineKindBox }
func (l BoxLine) InstanceID() uuid.UUID  { return l.ID }
func (l BoxLine) Total() decimal.Decimal { return l.TotalPrice }

// AppliedPromo is the promo currently attached to a cart.
type AppliedPromo struct {
	Code               string          `json:"code"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
}
