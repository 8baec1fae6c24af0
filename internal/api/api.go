// Package api exposes the customer-facing storefront endpoints.
package api

import (
	"errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"sweetshop-service/internal/availability"
	"sweetshop-service/internal/boxbuilder"
	"sweetshop-service/internal/cart"
	"sweetshop-service/internal/catalog"
	"sweetshop-service/internal/checkout"
	"sweetshop-service/internal/entity"
	"sweetshop-service/internal/promo"
	"sweetshop-service/internal/session"
	"sweetshop-service/internal/shopstatus"
)

// SessionHeader carries the storefront session id. Handlers mint a session
// when the header is absent and always echo the id back.
const SessionHeader = "X-Session-ID"

type StorefrontHandler struct {
	sessions     *session.Manager
	catalog      *catalog.Catalog
	availability *availability.Service
	promos       *promo.Service
	shop         *shopstatus.Service
	checkout     *checkout.Service
}

// NewStorefrontHandler wires the storefront endpoints.
func NewStorefrontHandler(
	sessions *session.Manager,
	cat *catalog.Catalog,
	avail *availability.Service,
	promos *promo.Service,
	shop *shopstatus.Service,
	co *checkout.Service,
) *StorefrontHandler {
	return &StorefrontHandler{
		sessions:     sessions,
		catalog:      cat,
		availability: avail,
		promos:       promos,
		shop:         shop,
		checkout:     co,
	}
}

// Register mounts the storefront routes.
func (h *StorefrontHandler) Register(e *echo.Echo) {
	e.GET("/catalog/containers", h.GetContainers)
	e.GET("/catalog/containers/:id/sweets", h.GetContainerSweets)
	e.GET("/catalog/items", h.GetItems)
	e.GET("/catalog/weights", h.GetWeightOptions)

	e.POST("/box", h.StartBox)
	e.GET("/box", h.GetBox)
	e.POST("/box/items", h.AddToBox)
	e.DELETE("/box/items/:placementId", h.RemoveFromBox)
	e.DELETE("/box", h.ClearBox)

	e.GET("/cart", h.GetCart)
	e.POST("/cart/box", h.AddBoxToCart)
	e.POST("/cart/items", h.AddItemToCart)
	e.DELETE("/cart/items/:instanceId", h.RemoveCartLine)
	e.DELETE("/cart", h.ClearCart)
	e.PUT("/cart/notes", h.SetNotes)
	e.POST("/cart/promo", h.ApplyPromo)
	e.DELETE("/cart/promo", h.RemovePromo)

	e.GET("/shop/status", h.GetShopStatus)
	e.POST("/checkout", h.SubmitCheckout)
}

func (h *StorefrontHandler) session(c echo.Context) *session.Session {
	sess := h.sessions.Resolve(c.Request().Header.Get(SessionHeader))
	c.Response().Header().Set(SessionHeader, sess.ID.String())
	return sess
}

func (h *StorefrontHandler) GetContainers(c echo.Context) error {
	return c.JSON(200, h.catalog.Containers())
}

type sweetWithAvailability struct {
	entity.Sweet
	Available bool `json:"is_available"`
}

func (h *StorefrontHandler) GetContainerSweets(c echo.Context) error {
	container, ok := h.catalog.Container(c.Param("id"))
	if !ok {
		return c.JSON(404, map[string]string{"error": "container not found"})
	}

	sweets := h.catalog.SweetsFor(container)
	out := make([]sweetWithAvailability, 0, len(sweets))
	for _, s := range sweets {
		out = append(out, sweetWithAvailability{Sweet: s, Available: h.availability.IsAvailable(s.ID)})
	}
	return c.JSON(200, out)
}

func (h *StorefrontHandler) GetItems(c echo.Context) error {
	if cat := c.QueryParam("category"); cat != "" {
		return c.JSON(200, h.catalog.ItemsByCategory(entity.ItemCategory(cat)))
	}
	return c.JSON(200, h.catalog.Items())
}

func (h *StorefrontHandler) GetWeightOptions(c echo.Context) error {
	return c.JSON(200, h.catalog.WeightOptions())
}

type startBoxRequest struct {
	ContainerID string `json:"container_id"`
}

func (h *StorefrontHandler) StartBox(c echo.Context) error {
	req := startBoxRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	container, ok := h.catalog.Container(req.ContainerID)
	if !ok {
		return c.JSON(404, map[string]string{"error": "container not found"})
	}

	sess := h.session(c)
	sess.Lock()
	defer sess.Unlock()

	sess.Box = boxbuilder.NewSession(container)
	return c.JSON(200, h.boxState(sess))
}

type boxState struct {
	Container   entity.Container   `json:"container"`
	Placements  []entity.Placement `json:"placements"`
	Totals      boxbuilder.Totals  `json:"totals"`
	FillPercent float64            `json:"fill_percent"`
	Eligible    bool               `json:"checkout_eligible"`
}

// boxState snapshots the working box; callers hold the session lock.
func (h *StorefrontHandler) boxState(sess *session.Session) boxState {
	box := sess.Box
	return boxState{
		Container:   box.Container(),
		Placements:  box.Placements(),
		Totals:      box.Totals(),
		FillPercent: box.FillPercent(),
		Eligible:    box.CheckoutEligible(),
	}
}

func (h *StorefrontHandler) GetBox(c echo.Context) error {
	sess := h.session(c)
	sess.Lock()
	defer sess.Unlock()

	if sess.Box == nil {
		return c.JSON(404, map[string]string{"error": "no box in progress"})
	}
	return c.JSON(200, h.boxState(sess))
}

type addToBoxRequest struct {
	SweetID string `json:"sweet_id"`
}

func (h *StorefrontHandler) AddToBox(c echo.Context) error {
	req := addToBoxRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	sess := h.session(c)
	sess.Lock()
	defer sess.Unlock()

	if sess.Box == nil {
		return c.JSON(404, map[string]string{"error": "no box in progress"})
	}

	sweet, ok := h.catalog.Sweet(req.SweetID)
	if !ok {
		return c.JSON(404, map[string]string{"error": "sweet not found"})
	}
	container := sess.Box.Container()
	if sweet.Separator && container.Kind != entity.ContainerBox {
		return c.JSON(400, map[string]string{"error": "separators only fit in boxes"})
	}

	// Availability is gated before the width check; an unavailable sweet
	// never reaches TryAdd.
	if !h.availability.IsAvailable(sweet.ID) {
		return c.JSON(409, map[string]interface{}{
			"error":  "item currently unavailable",
			"reason": "unavailable",
		})
	}

	placement, err := sess.Box.TryAdd(catalog.ScaleSweet(sweet, container.HeightCm))
	if err != nil {
		var capErr *boxbuilder.CapacityError
		if errors.As(err, &capErr) {
			return c.JSON(409, map[string]interface{}{
				"error":        capErr.Error(),
				"reason":       "capacity",
				"full":         capErr.Full,
				"remaining_cm": capErr.RemainingCm,
			})
		}
		return c.JSON(500, map[string]string{"error": err.Error()})
	}

	return c.JSON(200, map[string]interface{}{
		"placement": placement,
		"box":       h.boxState(sess),
	})
}

func (h *StorefrontHandler) RemoveFromBox(c echo.Context) error {
	placementID, err := uuid.Parse(c.Param("placementId"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	sess := h.session(c)
	sess.Lock()
	defer sess.Unlock()

	if sess.Box == nil {
		return c.JSON(404, map[string]string{"error": "no box in progress"})
	}
	sess.Box.Remove(placementID)
	return c.JSON(200, h.boxState(sess))
}

func (h *StorefrontHandler) ClearBox(c echo.Context) error {
	sess := h.session(c)
	sess.Lock()
	defer sess.Unlock()

	if sess.Box == nil {
		return c.JSON(404, map[string]string{"error": "no box in progress"})
	}
	sess.Box.Clear()
	return c.JSON(200, h.boxState(sess))
}

type cartState struct {
	Lines     []entity.CartLine    `json:"lines"`
	Notes     string               `json:"notes"`
	Promo     *entity.AppliedPromo `json:"promo,omitempty"`
	Breakdown cart.Breakdown       `json:"breakdown"`
}

// cartState snapshots the cart; callers hold the session lock.
func (h *StorefrontHandler) cartState(sess *session.Session) cartState {
	return cartState{
		Lines:     sess.Cart.Lines(),
		Notes:     sess.Cart.Notes(),
		Promo:     sess.Cart.Promo(),
		Breakdown: sess.Cart.DiscountedTotal(),
	}
}

func (h *StorefrontHandler) GetCart(c echo.Context) error {
	sess := h.session(c)
	sess.Lock()
	defer sess.Unlock()
	return c.JSON(200, h.cartState(sess))
}

func (h *StorefrontHandler) AddBoxToCart(c echo.Context) error {
	sess := h.session(c)
	sess.Lock()
	defer sess.Unlock()

	if sess.Box == nil {
		return c.JSON(404, map[string]string{"error": "no box in progress"})
	}
	if !sess.Box.CheckoutEligible() {
		return c.JSON(422, map[string]interface{}{
			"error":            "box is not filled enough",
			"fill_percent":     sess.Box.FillPercent(),
			"min_fill_percent": catalog.MinFillPercent,
		})
	}

	line := sess.Box.ToCartLine()
	sess.Cart.Add(line)
	sess.Box = nil
	return c.JSON(200, h.cartState(sess))
}

type addItemRequest struct {
	ItemID   string `json:"item_id"`
	WeightID string `json:"weight_id"`
}

func (h *StorefrontHandler) AddItemToCart(c echo.Context) error {
	req := addItemRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	item, ok := h.catalog.Item(req.ItemID)
	if !ok {
		return c.JSON(404, map[string]string{"error": "item not found"})
	}
	if !h.availability.IsAvailable(item.ID) {
		return c.JSON(409, map[string]interface{}{
			"error":  "item currently unavailable",
			"reason": "unavailable",
		})
	}

	var opt entity.WeightOption
	if !item.Fixed() {
		var ok bool
		opt, ok = h.catalog.WeightOption(req.WeightID)
		if !ok {
			return c.JSON(400, map[string]string{"error": "weight option required"})
		}
	}

	sess := h.session(c)
	sess.Lock()
	defer sess.Unlock()

	sess.Cart.Add(cart.NewItemLine(item, opt))
	return c.JSON(200, h.cartState(sess))
}

func (h *StorefrontHandler) RemoveCartLine(c echo.Context) error {
	instanceID, err := uuid.Parse(c.Param("instanceId"))
	if err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid ID"})
	}

	sess := h.session(c)
	sess.Lock()
	defer sess.Unlock()

	sess.Cart.Remove(instanceID)
	return c.JSON(200, h.cartState(sess))
}

func (h *StorefrontHandler) ClearCart(c echo.Context) error {
	sess := h.session(c)
	sess.Lock()
	defer sess.Unlock()

	sess.Cart.Clear()
	return c.JSON(200, h.cartState(sess))
}

type notesRequest struct {
	Notes string `json:"notes"`
}

func (h *StorefrontHandler) SetNotes(c echo.Context) error {
	req := notesRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	sess := h.session(c)
	sess.Lock()
	defer sess.Unlock()

	sess.Cart.SetNotes(req.Notes)
	return c.JSON(200, h.cartState(sess))
}

type applyPromoRequest struct {
	Code string `json:"code"`
}

func (h *StorefrontHandler) ApplyPromo(c echo.Context) error {
	req := applyPromoRequest{}
	if err := c.Bind(&req); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	applied, err := h.promos.LookupActiveCode(c.Request().Context(), req.Code)
	if err != nil {
		// An invalid candidate leaves any previously applied promo in
		// place; only DELETE /cart/promo clears it.
		return c.JSON(422, map[string]string{"error": "invalid promo code"})
	}

	sess := h.session(c)
	sess.Lock()
	defer sess.Unlock()

	sess.Cart.ApplyPromo(applied)
	return c.JSON(200, h.cartState(sess))
}

func (h *StorefrontHandler) RemovePromo(c echo.Context) error {
	sess := h.session(c)
	sess.Lock()
	defer sess.Unlock()

	sess.Cart.RemovePromo()
	return c.JSON(200, h.cartState(sess))
}

func (h *StorefrontHandler) GetShopStatus(c echo.Context) error {
	return c.JSON(200, h.shop.Status(c.Request().Context()))
}

func (h *StorefrontHandler) SubmitCheckout(c echo.Context) error {
	info := checkout.CustomerInfo{}
	if err := c.Bind(&info); err != nil {
		return c.JSON(400, map[string]string{"error": "Invalid request payload"})
	}

	sess := h.session(c)
	sess.Lock()
	defer sess.Unlock()

	key := c.Request().Header.Get("Idempotent-Key")
	result, err := h.checkout.Submit(c.Request().Context(), info, sess.Cart, key)
	if err != nil {
		var valErr *checkout.ValidationError
		switch {
		case errors.Is(err, checkout.ErrShopClosed):
			return c.JSON(403, map[string]string{"error": "shop is currently closed"})
		case errors.As(err, &valErr):
			return c.JSON(422, map[string]interface{}{"error": valErr.Error(), "missing": valErr.Missing})
		case errors.Is(err, checkout.ErrDuplicateSubmission):
			return c.JSON(409, map[string]string{"error": err.Error()})
		default:
			return c.JSON(500, map[string]string{"error": err.Error()})
		}
	}

	sess.Cart.Clear()
	return c.JSON(200, result)
}
