package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sweetshop-service/internal/entity"
)

// NewWeightLine prices a weight-priced item at price-per-kg × kg.
func NewWeightLine(item entity.AlaCarteItem, opt entity.WeightOption) entity.WeightLine {
	return entity.WeightLine{
		ID:          uuid.New(),
		Item:        item,
		WeightKg:    opt.WeightKg,
		WeightLabel: opt.NameAr,
		TotalPrice:  item.PricePerKg.Mul(decimal.NewFromFloat(opt.WeightKg)),
	}
}

// NewFixedLine prices a fixed-tier item at its tier price.
func NewFixedLine(item entity.AlaCarteItem) entity.FixedLine {
	return entity.FixedLine{
		ID:         uuid.New(),
		Item:       item,
		TotalPrice: item.FixedPrice,
	}
}

// NewItemLine builds the right line for an à-la-carte item. A fixed price
// tier overrides the per-kilo computation, and such items ignore the weight
// option.
func NewItemLine(item entity.AlaCarteItem, opt entity.WeightOption) entity.CartLine {
	if item.Fixed() {
		return NewFixedLine(item)
	}
	return NewWeightLine(item, opt)
}
