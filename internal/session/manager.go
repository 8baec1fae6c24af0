// Package session holds the server-side state of active storefront
// sessions: one cart and, while a container is being packed, one box
// builder per customer.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"sweetshop-service/internal/boxbuilder"
	"sweetshop-service/internal/cart"
)

// Session is one customer's mutable state. Handlers lock it for the
// duration of each request; the inner cart/box types are not safe for
// concurrent use on their own.
type Session struct {
	ID   uuid.UUID
	Cart *cart.Session
	Box  *boxbuilder.Session

	mu       sync.Mutex
	lastSeen time.Time
}

// Lock serializes access to the session's cart and box.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session.
func (s *Session) Unlock() { s.mu.Unlock() }

// Manager issues and expires sessions. Construct one explicitly and pass
// it to the handlers; there is no package-level instance.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewManager creates a manager expiring sessions idle longer than ttl.
func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create mints a fresh session with an empty cart.
func (m *Manager) Create() *Session {
	s := &Session{
		ID:       uuid.New(),
		Cart:     cart.NewSession(),
		lastSeen: m.now(),
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get fetches a session by id and refreshes its idle timer.
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	s.lastSeen = m.now()
	return s, true
}

// Resolve returns the session for a client-provided id, minting a new one
// when the id is empty, malformed or expired.
func (m *Manager) Resolve(id string) *Session {
	if parsed, err := uuid.Parse(id); err == nil {
		if s, ok := m.Get(parsed); ok {
			return s
		}
	}
	return m.Create()
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep drops sessions idle past the ttl and returns how many were
// removed.
func (m *Manager) Sweep() int {
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps periodically until the context is cancelled. Intended to be
// launched as a goroutine from main.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Sweep()
		case <-ctx.Done():
			return
		}
	}
}
