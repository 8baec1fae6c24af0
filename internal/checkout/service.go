// Package checkout gates order submission and hands completed orders to
// the external messaging link.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"sweetshop-service/internal/cart"
	"sweetshop-service/internal/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// ErrShopClosed blocks submission entirely while the shop is closed,
// regardless of field completeness.
var ErrShopClosed = errors.New("shop is closed")

// ErrDuplicateSubmission rejects a replayed idempotency key.
var ErrDuplicateSubmission = errors.New("order already submitted")

// ValidationError lists the missing checkout fields. Submission is all or
// nothing; there is no partial submission.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Orders is the persistence surface the service needs.
type Orders interface {
	CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error)
}

// ShopGate answers whether submission is currently allowed.
type ShopGate interface {
	IsOpenNow(ctx context.Context) bool
}

// Result is what the storefront needs to hand the order to the messaging
// channel.
type Result struct {
	Order       *entity.Order `json:"order"`
	WhatsAppURL string        `json:"whatsapp_url"`
}

// Service validates and records checkout submissions.
type Service struct {
	orders    Orders
	gate      ShopGate
	rdb       *redis.Client
	writer    *kafka.Writer
	shopPhone string
}

// NewService creates a checkout service. shopPhone is the messaging number
// in international format without the plus sign.
func NewService(orders Orders, gate ShopGate, rdb *redis.Client, writer *kafka.Writer, shopPhone string) *Service {
	return &Service{orders: orders, gate: gate, rdb: rdb, writer: writer, shopPhone: shopPhone}
}

func validateInfo(info CustomerInfo) error {
	var missing []string
	if strings.TrimSpace(info.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(info.Phone) == "" {
		missing = append(missing, "phone")
	}
	if !info.Fulfillment.Valid() {
		missing = append(missing, "fulfillment")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Submit runs the checkout gates in order: shop open, required fields,
// idempotency. It then records the order and publishes the submitted
// event. The caller clears the cart on success.
func (s *Service) Submit(ctx context.Context, info CustomerInfo, cartSession *cart.Session, idempotencyKey string) (*Result, error) {
	if !s.gate.IsOpenNow(ctx) {
		return nil, ErrShopClosed
	}
	if err := validateInfo(info); err != nil {
		return nil, err
	}
	if cartSession.Count() == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	fresh, err := s.claimIdempotencyKey(ctx, idempotencyKey)
	if err != nil {
		return nil, err
	}
	if !fresh {
		return nil, ErrDuplicateSubmission
	}

	lines := cartSession.Lines()
	breakdown := cartSession.DiscountedTotal()
	promo := cartSession.Promo()
	summary := BuildSummary(info, lines, cartSession.Notes(), breakdown, promo)

	order := &entity.Order{
		CustomerName:   strings.TrimSpace(info.Name),
		Phone:          strings.TrimSpace(info.Phone),
		Fulfillment:    info.Fulfillment,
		Notes:          cartSession.Notes(),
		Subtotal:       breakdown.Subtotal.Round(2),
		DiscountAmount: breakdown.DiscountAmount.Round(2),
		FinalTotal:     breakdown.FinalTotal.Round(2),
		Summary:        summary,
		Status:         "submitted",
		IdempotencyKey: idempotencyKey,
		Lines:          flattenLines(lines),
	}
	if promo != nil {
		order.PromoCode = promo.Code
	}

	created, err := s.orders.CreateOrder(ctx, order)
	if err != nil {
		logger.Error().Err(err).Msg("Error recording order")
		return nil, err
	}

	if err := s.publishOrderEvent(ctx, created); err != nil {
		// The order is recorded and the customer gets their link; the
		// event stream catches up from the orders table if needed.
		logger.Error().Err(err).Msgf("Error publishing order event for order %d", created.ID)
	}

	return &Result{
		Order:       created,
		WhatsAppURL: WhatsAppURL(s.shopPhone, summary),
	}, nil
}

// flattenLines projects cart lines into the order_lines rows, with a
// display label per line.
func flattenLines(lines []entity.CartLine) []entity.OrderLine {
	out := make([]entity.OrderLine, 0, len(lines))
	for _, l := range lines {
		var label string
		switch line := l.(type) {
		case entity.WeightLine:
			label = fmt.Sprintf("%s %s", line.WeightLabel, line.Item.NameAr)
		case entity.FixedLine:
			label = line.Item.NameAr
		case entity.BoxLine:
			label = fmt.Sprintf("علبة مخصصة (%s)", line.Container.NameAr)
		}
		out = append(out, entity.OrderLine{Kind: l.Kind(), Label: label, Total: l.Total()})
	}
	return out
}

func (s *Service) claimIdempotencyKey(ctx context.Context, key string) (bool, error) {
	// if env is set to test, return true
	if os.Getenv("ENV") == "test" {
		return true, nil
	}
	if key == "" {
		return true, nil
	}

	redisKey := fmt.Sprintf("checkout-key:%s", key)
	ok, err := s.rdb.SetNX(ctx, redisKey, "exists", 24*time.Hour).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (s *Service) publishOrderEvent(ctx context.Context, order *entity.Order) error {
	// if env is set to test, return
	if os.Getenv("ENV") == "test" {
		return nil
	}

	orderJSON, err := json.Marshal(order)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order-submitted-%d", order.ID)),
		Value: orderJSON,
	}
	return s.writer.WriteMessages(ctx, msg)
}
