package cart

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/essence-store/essence-backend/pkg/logger"
)

// Manager owns one Store per browser session. Carts are in-memory only and
// expire after a period of inactivity; they are never persisted.
type Manager struct {
	mu     sync.RWMutex
	stores map[string]*Store
	ttl    time.Duration
}

// NewManager creates a session cart manager
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		stores: make(map[string]*Store),
		ttl:    ttl,
	}
}

// NewSessionID mints a fresh session identifier
func (m *Manager) NewSessionID() string {
	return uuid.NewString()
}

// Get returns the store for the session, creating it on first use
func (m *Manager) Get(sessionID string) *Store {
	m.mu.RLock()
	store, ok := m.stores[sessionID]
	m.mu.RUnlock()
	if ok {
		return store
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if store, ok := m.stores[sessionID]; ok {
		return store
	}
	store = NewStore()
	m.stores[sessionID] = store
	return store
}

// StartSweeper drops carts idle longer than the TTL until ctx is cancelled
func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.sweep()
			}
		}
	}()
}

func (m *Manager) sweep() {
	cutoff := time.Now().Add(-m.ttl)

	m.mu.Lock()
	removed := 0
	for id, store := range m.stores {
		if store.lastAccessed().Before(cutoff) {
			delete(m.stores, id)
			removed++
		}
	}
	m.mu.Unlock()

	if removed > 0 {
		logger.Logger.Info().Int("count", removed).Msg("Expired idle carts")
	}
}
