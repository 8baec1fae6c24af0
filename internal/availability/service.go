// Package availability keeps the storefront's local copy of the product
// availability map and fans change notifications out to observers.
package availability

import (
	"context"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Fetcher is the slice of Repository the service needs; split out so tests
// can substitute a fake.
type Fetcher interface {
	FetchAll(ctx context.Context) (map[string]bool, error)
}

// Service caches the availability map and notifies subscribers after every
// replace. A change event always triggers a full refetch-and-replace,
// last write wins; there is no per-row merging.
type Service struct {
	fetcher Fetcher

	mu      sync.RWMutex
	m       map[string]bool
	subs    map[int]func()
	nextSub int
}

// NewService creates an empty service. Call Refresh to seed the map.
func NewService(fetcher Fetcher) *Service {
	return &Service{
		fetcher: fetcher,
		m:       make(map[string]bool),
		subs:    make(map[int]func()),
	}
}

// Refresh refetches the whole map and replaces the local copy, then
// notifies subscribers. On error the previous map stays in place.
func (s *Service) Refresh(ctx context.Context) error {
	m, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error refreshing availability map")
		return err
	}

	s.mu.Lock()
	s.m = m
	handlers := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		handlers = append(handlers, fn)
	}
	s.mu.Unlock()

	for _, fn := range handlers {
		fn()
	}
	return nil
}

// IsAvailable reports a product's availability. Products absent from the
// map default to available.
func (s *Service) IsAvailable(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	available, ok := s.m[productID]
	if !ok {
		return true
	}
	return available
}

// Snapshot copies the current map for handlers that render the whole list.
func (s *Service) Snapshot() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]bool, len(s.m))
	for k, v := range s.m {
		out[k] = v
	}
	return out
}

// Subscribe registers a change handler and returns its unsubscribe
// function. Handlers run after every successful Refresh.
func (s *Service) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
