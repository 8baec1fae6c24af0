// Package promo validates customer promo codes and backs the admin CRUD
// panel.
package promo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"sweetshop-service/internal/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// ErrCodeNotFound covers unknown, inactive and expired codes alike; the
// storefront shows the same "invalid code" message for all three.
var ErrCodeNotFound = errors.New("promo code not found")

var oneHundred = decimal.NewFromInt(100)

// Store is the repository surface the service needs.
type Store interface {
	GetActiveByCode(ctx context.Context, code string) (*entity.PromoCode, error)
	List(ctx context.Context) ([]entity.PromoCode, error)
	Create(ctx context.Context, p *entity.PromoCode) (*entity.PromoCode, error)
	GetByID(ctx context.Context, id int) (*entity.PromoCode, error)
	Update(ctx context.Context, p *entity.PromoCode) error
	Delete(ctx context.Context, id int) error
}

// Service owns promo validation rules on top of the store.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a promo service.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Normalize trims and upper-cases a candidate code, matching how codes are
// stored.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// LookupActiveCode resolves a candidate code to an applicable promo. The
// lookup is case-insensitive and expiry-aware; any failure is
// ErrCodeNotFound.
func (s *Service) LookupActiveCode(ctx context.Context, candidate string) (entity.AppliedPromo, error) {
	code := Normalize(candidate)
	if code == "" {
		return entity.AppliedPromo{}, ErrCodeNotFound
	}

	p, err := s.store.GetActiveByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, ErrCodeNotFound) {
			logger.Error().Err(err).Msg("Error looking up promo code")
		}
		return entity.AppliedPromo{}, ErrCodeNotFound
	}
	if !p.Usable(s.now()) {
		return entity.AppliedPromo{}, ErrCodeNotFound
	}

	return entity.AppliedPromo{Code: p.Code, DiscountPercentage: p.DiscountPercentage}, nil
}

func validateDiscount(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(oneHundred) {
		return fmt.Errorf("discount percentage must be between 0 and 100")
	}
	return nil
}

// Create stores a new code. Codes start inactive; the admin flips them on
// explicitly.
func (s *Service) Create(ctx context.Context, code string, discountPct decimal.Decimal) (*entity.PromoCode, error) {
	normalized := Normalize(code)
	if normalized == "" {
		return nil, fmt.Errorf("code is required")
	}
	if err := validateDiscount(discountPct); err != nil {
		return nil, err
	}

	return s.store.Create(ctx, &entity.PromoCode{
		Code:               normalized,
		DiscountPercentage: discountPct,
		Active:             false,
	})
}

// Update is the partial update used by the admin panel; nil fields keep
// their current value.
type Update struct {
	Code        *string
	DiscountPct *decimal.Decimal
	Active      *bool
	ExpiresAt   *time.Time
	ClearExpiry bool
}

// Apply merges the update into an existing code and persists it.
func (s *Service) Apply(ctx context.Context, id int, u Update) (*entity.PromoCode, error) {
	p, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if u.Code != nil {
		normalized := Normalize(*u.Code)
		if normalized == "" {
			return nil, fmt.Errorf("code is required")
		}
		p.Code = normalized
	}
	if u.DiscountPct != nil {
		if err := validateDiscount(*u.DiscountPct); err != nil {
			return nil, err
		}
		p.DiscountPercentage = *u.DiscountPct
	}
	if u.Active != nil {
		p.Active = *u.Active
	}
	if u.ClearExpiry {
		p.ExpiresAt = nil
	} else if u.ExpiresAt != nil {
		p.ExpiresAt = u.ExpiresAt
	}

	if err := s.store.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a code.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.store.Delete(ctx, id)
}

// List returns all codes for the admin panel.
func (s *Service) List(ctx context.Context) ([]entity.PromoCode, error) {
	return s.store.List(ctx)
}
