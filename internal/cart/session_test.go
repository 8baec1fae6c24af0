package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweetshop-service/internal/entity"
)

func weightItem(id string, perKg float64) entity.AlaCarteItem {
	return entity.AlaCarteItem{
		ID:         id,
		NameAr:     id,
		Category:   entity.CategoryDaily,
		PricePerKg: decimal.NewFromFloat(perKg),
	}
}

func fixedItem(id string, price float64) entity.AlaCarteItem {
	return entity.AlaCarteItem{
		ID:         id,
		NameAr:     id,
		Category:   entity.CategoryGiftBox,
		FixedPrice: decimal.NewFromFloat(price),
	}
}

func kg(weight float64) entity.WeightOption {
	return entity.WeightOption{ID: "opt", NameAr: "كيلو", WeightKg: weight}
}

func TestSubtotal_EmptyCart(t *testing.T) {
	s := NewSession()
	assert.True(t, s.Subtotal().IsZero())
}

func TestDiscountedTotal_NoPromo(t *testing.T) {
	s := NewSession()
	s.Add(NewWeightLine(weightItem("harissa", 5.50), kg(2)))

	b := s.DiscountedTotal()
	assert.True(t, b.DiscountAmount.IsZero())
	assert.True(t, b.FinalTotal.Equal(b.Subtotal))
	assert.Equal(t, "11.00", b.Subtotal.StringFixed(2))
}

func TestDiscountedTotal_TwentyPercentOnTen(t *testing.T) {
	s := NewSession()
	s.Add(NewFixedLine(fixedItem("gift", 10.00)))
	s.ApplyPromo(entity.AppliedPromo{Code: "SAVE20", DiscountPercentage: decimal.NewFromInt(20)})

	b := s.DiscountedTotal()
	assert.Equal(t, "10.00", b.Subtotal.StringFixed(2))
	assert.Equal(t, "2.00", b.DiscountAmount.StringFixed(2))
	assert.Equal(t, "8.00", b.FinalTotal.StringFixed(2))
}

func TestDiscountedTotal_MixedCartScenario(t *testing.T) {
	s := NewSession()
	// 2kg × 5.50/kg = 11.00 plus a fixed 12.00 gift box
	s.Add(NewWeightLine(weightItem("harissa", 5.50), kg(2)))
	s.Add(NewFixedLine(fixedItem("gift", 12.00)))

	assert.Equal(t, "23.00", s.Subtotal().StringFixed(2))

	s.ApplyPromo(entity.AppliedPromo{Code: "SAVE10", DiscountPercentage: decimal.NewFromInt(10)})
	b := s.DiscountedTotal()
	assert.Equal(t, "2.30", b.DiscountAmount.StringFixed(2))
	assert.Equal(t, "20.70", b.FinalTotal.StringFixed(2))
}

func TestAdd_PreservesInsertionOrder(t *testing.T) {
	s := NewSession()
	first := NewFixedLine(fixedItem("first", 1))
	second := NewFixedLine(fixedItem("second", 2))
	third := NewFixedLine(fixedItem("third", 3))
	s.Add(first)
	s.Add(second)
	s.Add(third)

	lines := s.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, first.ID, lines[0].InstanceID())
	assert.Equal(t, second.ID, lines[1].InstanceID())
	assert.Equal(t, third.ID, lines[2].InstanceID())
}

func TestRemove_UnknownIDIsNoop(t *testing.T) {
	s := NewSession()
	s.Add(NewFixedLine(fixedItem("gift", 12.00)))

	s.Remove(uuid.New())
	assert.Equal(t, 1, s.Count())
}

func TestRemove_DropsOnlyMatchingLine(t *testing.T) {
	s := NewSession()
	keep := NewFixedLine(fixedItem("keep", 1))
	drop := NewFixedLine(fixedItem("drop", 2))
	s.Add(keep)
	s.Add(drop)

	s.Remove(drop.ID)
	lines := s.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, keep.ID, lines[0].InstanceID())
}

func TestClear_ResetsLinesNotesAndPromoTogether(t *testing.T) {
	s := NewSession()
	s.Add(NewFixedLine(fixedItem("gift", 12.00)))
	s.SetNotes("بدون مكسرات")
	s.ApplyPromo(entity.AppliedPromo{Code: "SAVE10", DiscountPercentage: decimal.NewFromInt(10)})

	s.Clear()

	assert.Zero(t, s.Count())
	assert.True(t, s.Subtotal().IsZero())
	assert.Empty(t, s.Notes())
	assert.Nil(t, s.Promo())
}

func TestApplyPromo_ReplacesPrevious(t *testing.T) {
	s := NewSession()
	s.ApplyPromo(entity.AppliedPromo{Code: "OLD", DiscountPercentage: decimal.NewFromInt(5)})
	s.ApplyPromo(entity.AppliedPromo{Code: "NEW", DiscountPercentage: decimal.NewFromInt(15)})

	p := s.Promo()
	require.NotNil(t, p)
	assert.Equal(t, "NEW", p.Code)
}

func TestRemovePromo(t *testing.T) {
	s := NewSession()
	s.ApplyPromo(entity.AppliedPromo{Code: "SAVE10", DiscountPercentage: decimal.NewFromInt(10)})
	s.RemovePromo()
	assert.Nil(t, s.Promo())
}

func TestSubtotal_NoIntermediateRounding(t *testing.T) {
	s := NewSession()
	// 0.25kg × 6.50/kg = 1.625 three times; rounding between additions
	// would drift from the exact 4.875.
	for i := 0; i < 3; i++ {
		s.Add(NewWeightLine(weightItem("greek", 6.50), kg(0.25)))
	}
	assert.True(t, s.Subtotal().Equal(decimal.RequireFromString("4.875")))
	assert.Equal(t, "4.88", s.Subtotal().StringFixed(2))
}

func TestNewItemLine_FixedTierOverridesWeight(t *testing.T) {
	item := fixedItem("gift", 17.00)
	item.PricePerKg = decimal.NewFromFloat(5.00)

	line := NewItemLine(item, kg(2))
	require.Equal(t, entity.LineKindFixed, line.Kind())
	assert.Equal(t, "17.00", line.Total().StringFixed(2))
}
