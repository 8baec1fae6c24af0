package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"sweetshop-service/internal/cart"
	"sweetshop-service/internal/entity"
)

const sectionDivider = "━━━━━━━━━━━━━━━━\n"

// CustomerInfo is what the checkout form collects.
type CustomerInfo struct {
	Name        string             `json:"name"`
	Phone       string             `json:"phone"`
	Fulfillment entity.Fulfillment `json:"fulfillment"`
}

func fulfillmentLabel(f entity.Fulfillment) string {
	if f == entity.FulfillmentDelivery {
		return "توصيل"
	}
	return "استلام من المحل"
}

// boxContents renders a box line's placements, newest first, separators as
// the divider word.
func boxContents(line entity.BoxLine) string {
	names := make([]string, 0, len(line.Placements))
	for i := len(line.Placements) - 1; i >= 0; i-- {
		sweet := line.Placements[i].Sweet
		if sweet.Separator {
			names = append(names, "قاطع")
			continue
		}
		names = append(names, sweet.NameAr)
	}
	return strings.Join(names, "، ")
}

// BuildSummary renders the human-readable order message handed to the
// messaging link. Monetary values round to two decimals here and nowhere
// earlier.
func BuildSummary(info CustomerInfo, lines []entity.CartLine, notes string, breakdown cart.Breakdown, promo *entity.AppliedPromo) string {
	var b strings.Builder

	b.WriteString("📦 طلب جديد - حلويات الواحة الشامية\n\n")
	fmt.Fprintf(&b, "👤 الاسم: %s\n", info.Name)
	fmt.Fprintf(&b, "📞 رقم الهاتف: %s\n", info.Phone)
	fmt.Fprintf(&b, "🚚 طريقة الاستلام: %s\n\n", fulfillmentLabel(info.Fulfillment))

	if strings.TrimSpace(notes) != "" {
		fmt.Fprintf(&b, "📝 ملاحظات: %s\n\n", notes)
	}

	var boxes []entity.BoxLine
	var items []entity.CartLine
	for _, l := range lines {
		switch line := l.(type) {
		case entity.BoxLine:
			boxes = append(boxes, line)
		case entity.WeightLine, entity.FixedLine:
			items = append(items, line)
		}
	}

	if len(boxes) > 0 {
		b.WriteString(sectionDivider)
		b.WriteString("أ. العلب المخصصة / علب المشكل:\n\n")
		for i, box := range boxes {
			fmt.Fprintf(&b, "%d. علبة مخصصة (%s):\n", i+1, box.Container.NameAr)
			fmt.Fprintf(&b, "   %s\n", boxContents(box))
			fmt.Fprintf(&b, "   السعر: %s د.أ\n\n", box.TotalPrice.StringFixed(2))
		}
	}

	if len(items) > 0 {
		b.WriteString(sectionDivider)
		b.WriteString("ب. الأصناف المحددة:\n\n")
		for i, l := range items {
			switch line := l.(type) {
			case entity.WeightLine:
				fmt.Fprintf(&b, "%d. %s %s\n", i+1, line.WeightLabel, line.Item.NameAr)
				fmt.Fprintf(&b, "   السعر: %s د.أ\n\n", line.TotalPrice.StringFixed(2))
			case entity.FixedLine:
				fmt.Fprintf(&b, "%d. %s\n", i+1, line.Item.NameAr)
				fmt.Fprintf(&b, "   السعر: %s د.أ\n\n", line.TotalPrice.StringFixed(2))
			}
		}
	}

	b.WriteString(sectionDivider)
	if promo != nil {
		fmt.Fprintf(&b, "المجموع: %s د.أ\n", breakdown.Subtotal.StringFixed(2))
		fmt.Fprintf(&b, "🎁 كود الخصم (%s): -%s د.أ\n", promo.Code, breakdown.DiscountAmount.StringFixed(2))
	}
	fmt.Fprintf(&b, "💰 المجموع الكلي: %s دينار أردني\n", breakdown.FinalTotal.StringFixed(2))

	return b.String()
}

// WhatsAppURL builds the messaging link the storefront opens for the
// customer. Spaces are %20-escaped; wa.me does not decode '+'.
func WhatsAppURL(shopPhone, message string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", shopPhone, escaped)
}
