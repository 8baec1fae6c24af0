package checkout

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweetshop-service/internal/cart"
	"sweetshop-service/internal/entity"
)

func testInfo() CustomerInfo {
	return CustomerInfo{
		Name:        "أحمد",
		Phone:       "0790000000",
		Fulfillment: entity.FulfillmentPickup,
	}
}

func boxLine() entity.BoxLine {
	return entity.BoxLine{
		ID: uuid.New(),
		Container: entity.Container{
			ID: "box-1", Kind: entity.ContainerBox, NameAr: "علبة صغيرة",
		},
		Placements: []entity.Placement{
			{PlacementID: uuid.New(), Sweet: entity.Sweet{ID: "greek", NameAr: "يونانية"}},
			{PlacementID: uuid.New(), Sweet: entity.Sweet{ID: "separator", NameAr: "فاصل", Separator: true}},
			{PlacementID: uuid.New(), Sweet: entity.Sweet{ID: "nuts", NameAr: "أصابع الجوز"}},
		},
		TotalPrice: decimal.NewFromFloat(8.5),
	}
}

func weightLine() entity.WeightLine {
	return entity.WeightLine{
		ID:          uuid.New(),
		Item:        entity.AlaCarteItem{ID: "harissa-nuts", NameAr: "هريسة مكسرات"},
		WeightKg:    2,
		WeightLabel: "2 كيلو",
		TotalPrice:  decimal.NewFromFloat(11),
	}
}

func TestBuildSummary_CustomerBlock(t *testing.T) {
	lines := []entity.CartLine{weightLine()}
	breakdown := cart.Breakdown{
		Subtotal:   decimal.NewFromFloat(11),
		FinalTotal: decimal.NewFromFloat(11),
	}

	msg := BuildSummary(testInfo(), lines, "", breakdown, nil)

	assert.Contains(t, msg, "طلب جديد")
	assert.Contains(t, msg, "👤 الاسم: أحمد")
	assert.Contains(t, msg, "📞 رقم الهاتف: 0790000000")
	assert.Contains(t, msg, "استلام من المحل")
	assert.NotContains(t, msg, "📝 ملاحظات", "no notes line when notes are empty")
}

func TestBuildSummary_DeliveryLabel(t *testing.T) {
	info := testInfo()
	info.Fulfillment = entity.FulfillmentDelivery
	breakdown := cart.Breakdown{Subtotal: decimal.NewFromFloat(11), FinalTotal: decimal.NewFromFloat(11)}

	msg := BuildSummary(info, []entity.CartLine{weightLine()}, "", breakdown, nil)
	assert.Contains(t, msg, "توصيل")
}

func TestBuildSummary_BoxContentsReversedWithDividerWord(t *testing.T) {
	breakdown := cart.Breakdown{Subtotal: decimal.NewFromFloat(8.5), FinalTotal: decimal.NewFromFloat(8.5)}

	msg := BuildSummary(testInfo(), []entity.CartLine{boxLine()}, "", breakdown, nil)

	assert.Contains(t, msg, "علبة مخصصة (علبة صغيرة)")
	// placements render newest first; the separator shows as the divider word
	assert.Contains(t, msg, "أصابع الجوز، قاطع، يونانية")
	assert.NotContains(t, msg, "فاصل")
	assert.Contains(t, msg, "السعر: 8.50 د.أ")
}

func TestBuildSummary_ItemsSectionAndTotal(t *testing.T) {
	breakdown := cart.Breakdown{Subtotal: decimal.NewFromFloat(11), FinalTotal: decimal.NewFromFloat(11)}

	msg := BuildSummary(testInfo(), []entity.CartLine{weightLine()}, "بدون سكر", breakdown, nil)

	assert.Contains(t, msg, "📝 ملاحظات: بدون سكر")
	assert.Contains(t, msg, "1. 2 كيلو هريسة مكسرات")
	assert.Contains(t, msg, "💰 المجموع الكلي: 11.00 دينار أردني")
}

func TestBuildSummary_PromoLines(t *testing.T) {
	subtotal := decimal.NewFromFloat(23)
	discount := decimal.NewFromFloat(2.3)
	breakdown := cart.Breakdown{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		FinalTotal:     subtotal.Sub(discount),
	}
	promo := &entity.AppliedPromo{Code: "SAVE10", DiscountPercentage: decimal.NewFromInt(10)}

	msg := BuildSummary(testInfo(), []entity.CartLine{weightLine()}, "", breakdown, promo)

	assert.Contains(t, msg, "المجموع: 23.00 د.أ")
	assert.Contains(t, msg, "كود الخصم (SAVE10): -2.30 د.أ")
	assert.Contains(t, msg, "💰 المجموع الكلي: 20.70 دينار أردني")
}

func TestWhatsAppURL(t *testing.T) {
	u := WhatsAppURL("962781506347", "طلب جديد test")

	require.True(t, strings.HasPrefix(u, "https://wa.me/962781506347?text="))
	assert.NotContains(t, u, "+", "spaces must be %20-escaped, not +")
	assert.Contains(t, u, "%20")
}
