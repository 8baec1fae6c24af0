// Package shopstatus computes whether the shop currently accepts orders.
// The manual switch wins over working hours; infrastructure errors fail
// open so a database hiccup never closes the storefront.
package shopstatus

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"sweetshop-service/internal/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Store is the repository surface the service needs.
type Store interface {
	GetSettings(ctx context.Context) (*entity.ShopSettings, error)
	ListHours(ctx context.Context) ([]entity.WorkingHours, error)
}

// Service answers "is the shop open right now?".
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a shop status service.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Status computes the current open/closed state.
func (s *Service) Status(ctx context.Context) entity.ShopStatus {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error reading shop settings, failing open")
		return entity.ShopStatus{Open: true}
	}
	if !settings.IsOpen {
		return entity.ShopStatus{Open: false, Reason: entity.CloseReasonManual}
	}

	hours, err := s.store.ListHours(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error reading working hours, failing open")
		return entity.ShopStatus{Open: true}
	}

	now := s.now()
	currentDay := int(now.Weekday())
	currentTime := now.Format("15:04")

	for _, day := range hours {
		if day.DayOfWeek != currentDay {
			continue
		}
		if day.IsClosed {
			return entity.ShopStatus{Open: false, Reason: entity.CloseReasonHours}
		}
		// "HH:MM" strings compare correctly lexically. Closing time is
		// exclusive: at closing the shop is already closed.
		if currentTime < day.OpeningTime || currentTime >= day.ClosingTime {
			return entity.ShopStatus{
				Open:         false,
				Reason:       entity.CloseReasonHours,
				NextOpenTime: day.OpeningTime,
			}
		}
		break
	}

	return entity.ShopStatus{Open: true}
}

// IsOpenNow is the gate consulted by checkout submission.
func (s *Service) IsOpenNow(ctx context.Context) bool {
	return s.Status(ctx).Open
}
