// Package admin exposes the administrator endpoints: availability toggles,
// promo code management, shop settings and working hours.
package admin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"sweetshop-service/internal/availability"
	"sweetshop-service/internal/entity"
	"sweetshop-service/internal/promo"
	"sweetshop-service/internal/shopstatus"
)

type Handler struct {
	availRepo *availability.Repository
	availSvc  *availability.Service
	promos    *promo.Service
	shopRepo  *shopstatus.Repository
	writer    *kafka.Writer
}

// NewHandler wires the admin endpoints.
func NewHandler(
	availRepo *availability.Repository,
	availSvc *availability.Service,
	promos *promo.Service,
	shopRepo *shopstatus.Repository,
	writer *kafka.Writer,
) *Handler {
	return &Handler{
		availRepo: availRepo,
		availSvc:  availSvc,
		promos:    promos,
		shopRepo:  shopRepo,
		writer:    writer,
	}
}

// Register mounts the admin routes on an already JWT-protected group.
func (h *Handler) Register(g *echo.Group) {
	g.GET("/availability", h.ListAvailability)
	g.PUT("/availability", h.SetAvailability)

	g.GET("/promos", h.ListPromos)
	g.POST("/promos", h.CreatePromo)
	g.PUT("/promos/:id", h.UpdatePromo)
	g.DELETE("/promos/:id", h.DeletePromo)

	g.GET("/shop", h.GetShop)
	g.PUT("/shop/open", h.SetShopOpen)
	g.PUT("/hours/:id", h.UpdateHours)
}

func (h *Handler) ListAvailability(c echo.Context) error {
	rows, err := h.availRepo.List(c.Request().Context())
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, rows)
}

type setAvailabilityRequest struct {
	ProductID string `json:"product_id"`
	Available bool   `json:"is_available"`
}

func (h *Handler) SetAvailability(c echo.Context) error {
	req := setAvailabilityRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}
	if req.ProductID == "" {
		return c.JSON(400, map[string]string{"error": "product_id is required"})
	}

	ctx := c.Request().Context()
	if err := h.availRepo.Set(ctx, req.ProductID, req.Available); err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	// Refresh this instance immediately; the event fans the change out to
	// any other storefront instances.
	if err := h.availSvc.Refresh(ctx); err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	if err := h.publishAvailabilityEvent(ctx, req.ProductID); err != nil {
		logger.Error().Err(err).Msgf("Error publishing availability event for %s", req.ProductID)
	}

	return c.JSON(200, entity.ProductAvailability{ProductID: req.ProductID, Available: req.Available})
}

func (h *Handler) publishAvailabilityEvent(ctx context.Context, productID string) error {
	// if env is set to test, return
	if os.Getenv("ENV") == "test" {
		return nil
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("availability-changed-%s", productID)),
		Value: []byte(productID),
	}
	return h.writer.WriteMessages(ctx, msg)
}

func (h *Handler) ListPromos(c echo.Context) error {
	codes, err := h.promos.List(c.Request().Context())
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, codes)
}

type createPromoRequest struct {
	Code               string  `json:"code"`
	DiscountPercentage float64 `json:"discount_percentage"`
}

func (h *Handler) CreatePromo(c echo.Context) error {
	req := createPromoRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	created, err := h.promos.Create(c.Request().Context(), req.Code, decimal.NewFromFloat(req.DiscountPercentage))
	if err != nil {
		return c.JSON(400, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, created)
}

type updatePromoRequest struct {
	Code               *string  `json:"code"`
	DiscountPercentage *float64 `json:"discount_percentage"`
	Active             *bool    `json:"is_active"`
	ExpiresAt          *string  `json:"expires_at"` // RFC 3339
	ClearExpiry        bool     `json:"clear_expiry"`
}

func (h *Handler) UpdatePromo(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	req := updatePromoRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	u := promo.Update{Code: req.Code, Active: req.Active, ClearExpiry: req.ClearExpiry}
	if req.DiscountPercentage != nil {
		pct := decimal.NewFromFloat(*req.DiscountPercentage)
		u.DiscountPct = &pct
	}
	if req.ExpiresAt != nil {
		expires, err := time.Parse(time.RFC3339, *req.ExpiresAt)
		if err != nil {
			return c.JSON(400, map[string]string{"error": "expires_at must be RFC 3339"})
		}
		u.ExpiresAt = &expires
	}

	updated, err := h.promos.Apply(c.Request().Context(), id, u)
	if err != nil {
		if errors.Is(err, promo.ErrCodeNotFound) {
			return c.JSON(404, map[string]string{"error": err.Error()})
		}
		return c.JSON(400, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, updated)
}

func (h *Handler) DeletePromo(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	if err := h.promos.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, promo.ErrCodeNotFound) {
			return c.JSON(404, map[string]string{"error": err.Error()})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, map[string]string{"status": "deleted"})
}

func (h *Handler) GetShop(c echo.Context) error {
	ctx := c.Request().Context()
	settings, err := h.shopRepo.GetSettings(ctx)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	hours, err := h.shopRepo.ListHours(ctx)
	if err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, map[string]interface{}{
		"settings":      settings,
		"working_hours": hours,
	})
}

type setShopOpenRequest struct {
	IsOpen bool `json:"is_open"`
}

func (h *Handler) SetShopOpen(c echo.Context) error {
	req := setShopOpenRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	if err := h.shopRepo.SetOpen(c.Request().Context(), req.IsOpen); err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, map[string]bool{"is_open": req.IsOpen})
}

type updateHoursRequest struct {
	IsClosed    bool   `json:"is_closed"`
	OpeningTime string `json:"opening_time"`
	ClosingTime string `json:"closing_time"`
}

func (h *Handler) UpdateHours(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	req := updateHoursRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	h2 := entity.WorkingHours{
		ID:          id,
		IsClosed:    req.IsClosed,
		OpeningTime: req.OpeningTime,
		ClosingTime: req.ClosingTime,
	}
	if err := h.shopRepo.UpdateHours(c.Request().Context(), h2); err != nil {
		return c.JSON(500, map[string]string{"error": err.Error()})
	}
	return c.JSON(200, h2)
}
