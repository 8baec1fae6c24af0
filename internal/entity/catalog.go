package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ContainerKind distinguishes lidded boxes from open trays. Trays never
// carry separator sweets.
type ContainerKind string

const (
	ContainerBox  ContainerKind = "box"
	ContainerTray ContainerKind = "tray"
)

// Sweet is one catalog confection. Width is what it consumes inside a
// container; a separator is a thin divider that still takes width and costs
// money but weighs nothing.
type Sweet struct {
	ID          string          `json:"id"`
	NameAr      string          `json:"name_ar"`
	WidthCm     float64         `json:"width_cm"`
	WeightGrams int             `json:"weight_grams"`
	Price       decimal.Decimal `json:"price"`
	Separator   bool            `json:"separator,omitempty"`
}

// Container defines the width budget a custom box must fit into.
type Container struct {
	ID        string          `json:"id"`
	Kind      ContainerKind   `json:"kind"`
	NameAr    string          `json:"name_ar"`
	NameEn    string          `json:"name_en"`
	HeightCm  float64         `json:"height_cm"`
	WidthCm   float64         `json:"width_cm"`
	BasePrice decimal.Decimal `json:"base_price"`
}

// Placement is one instance of a sweet inside a box-building session. The
// sweet is stored already scaled to the session's container height.
type Placement struct {
	PlacementID uuid.UUID `json:"placement_id"`
	Sweet       Sweet     `json:"sweet"`
}

// ItemCategory groups the fixed à-la-carte catalog.
type ItemCategory string

const (
	CategoryDaily   ItemCategory = "daily"
	CategoryDry     ItemCategory = "dry"
	CategoryGiftBox ItemCategory = "giftbox"
)

// AlaCarteItem is a catalog item ordered by weight, or at a fixed price
// when it is a pre-assembled gift box. A fixed price tier always overrides
// the per-kilo computation.
type AlaCarteItem struct {
	ID            string          `json:"id"`
	NameAr        string          `json:"name_ar"`
	Category      ItemCategory    `json:"category"`
	PricePerKg    decimal.Decimal `json:"price_per_kg,omitempty"`
	FixedWeightKg float64         `json:"fixed_weight_kg,omitempty"`
	FixedPrice    decimal.Decimal `json:"fixed_price,omitempty"`
}

// Fixed reports whether the item sells at a fixed tier price rather than
// by weight.
func (i AlaCarteItem) Fixed() bool {
	return i.FixedPrice.IsPositive()
}

// WeightOption is one of the weights a customer can pick for a
// weight-priced item.
type WeightOption struct {
	ID       string  `json:"id"`
	NameAr   string  `json:"name_ar"`
	WeightKg float64 `json:"weight_kg"`
}
