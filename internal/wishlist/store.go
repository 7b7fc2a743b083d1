package wishlist

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	catalogdomain "github.com/essence-store/essence-backend/internal/catalog/domain"
	"github.com/essence-store/essence-backend/internal/wishlist/domain"
	"github.com/essence-store/essence-backend/pkg/logger"
)

// AddOutcome distinguishes a fresh insert from an informational conflict
type AddOutcome int

const (
	Added AddOutcome = iota
	AlreadyPresent
)

// Store mirrors one user's remote wishlist into local state. Lookups run
// against the mirror; every successful mutation refetches the remote rows
// so the mirror never drifts for long. Identity changes reset the mirror so
// a new session can never see the previous user's wishlist.
type Store struct {
	mu       sync.RWMutex
	repo     domain.Repository
	products catalogdomain.ProductRepository

	userID   uint
	entries  []domain.Entry
	resolved []catalogdomain.Product
}

// NewStore creates a wishlist store with no signed-in user
func NewStore(repo domain.Repository, products catalogdomain.ProductRepository) *Store {
	return &Store{repo: repo, products: products}
}

// SetUser switches the store to a new identity and refetches. A zero user
// id means signed out: both the entry list and the resolved products reset
// to empty.
func (s *Store) SetUser(userID uint) error {
	s.mu.Lock()
	s.userID = userID
	s.mu.Unlock()
	return s.Refresh()
}

// Refresh performs the two-phase fetch: entries for the current user, then
// one batched product lookup for the referenced ids. An unresolvable
// product set yields an empty resolved list, not an error.
func (s *Store) Refresh() error {
	s.mu.RLock()
	userID := s.userID
	s.mu.RUnlock()

	if userID == 0 {
		s.mu.Lock()
		s.entries = nil
		s.resolved = nil
		s.mu.Unlock()
		return nil
	}

	entries, err := s.repo.FindByUser(userID)
	if err != nil {
		return fmt.Errorf("failed to fetch wishlist: %w", err)
	}

	var resolved []catalogdomain.Product
	if len(entries) > 0 {
		ids := make([]string, len(entries))
		for i, e := range entries {
			ids[i] = e.ProductID
		}

		resolved, err = s.products.FindByIDs(ids)
		if err != nil {
			// entries are still valid; an unhydrated view beats a stale one
			logger.Logger.Warn().Err(err).Msg("Failed to resolve wishlist products")
			resolved = nil
		}
	}

	s.mu.Lock()
	s.entries = entries
	s.resolved = resolved
	s.mu.Unlock()
	return nil
}

// Add inserts a wishlist entry for the current user. A duplicate is
// reported as AlreadyPresent with no error.
func (s *Store) Add(productID string) (AddOutcome, error) {
	s.mu.RLock()
	userID := s.userID
	s.mu.RUnlock()

	if userID == 0 {
		return 0, domain.ErrUnauthenticated
	}

	err := s.repo.Create(&domain.Entry{UserID: userID, ProductID: productID})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return AlreadyPresent, nil
		}
		return 0, fmt.Errorf("failed to add to wishlist: %w", err)
	}

	if err := s.Refresh(); err != nil {
		logger.Logger.Warn().Err(err).Msg("Wishlist refetch after add failed")
	}
	return Added, nil
}

// Remove deletes the entry for the current user
func (s *Store) Remove(productID string) error {
	s.mu.RLock()
	userID := s.userID
	s.mu.RUnlock()

	if userID == 0 {
		return domain.ErrUnauthenticated
	}

	if err := s.repo.Delete(userID, productID); err != nil {
		return fmt.Errorf("failed to remove from wishlist: %w", err)
	}

	if err := s.Refresh(); err != nil {
		logger.Logger.Warn().Err(err).Msg("Wishlist refetch after remove failed")
	}
	return nil
}

// Contains is a pure lookup against the local mirror
func (s *Store) Contains(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if e.ProductID == productID {
			return true
		}
	}
	return false
}

// Entries returns a copy of the mirrored entries
func (s *Store) Entries() []domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Products returns a copy of the hydrated products
func (s *Store) Products() []catalogdomain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalogdomain.Product, len(s.resolved))
	copy(out, s.resolved)
	return out
}

// Manager hands out one store per signed-in user. Mirrors are in-memory
// only and expire after a period of inactivity; the database rows are the
// source of truth, so an evicted mirror is simply rehydrated on next use.
type Manager struct {
	mu         sync.Mutex
	stores     map[uint]*Store
	lastAccess map[uint]time.Time
	ttl        time.Duration
	repo       domain.Repository
	products   catalogdomain.ProductRepository
}

// NewManager creates a wishlist store manager
func NewManager(repo domain.Repository, products catalogdomain.ProductRepository, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		stores:     make(map[uint]*Store),
		lastAccess: make(map[uint]time.Time),
		ttl:        ttl,
		repo:       repo,
		products:   products,
	}
}

// ForUser returns the user's store, creating and hydrating it on first use
func (m *Manager) ForUser(userID uint) (*Store, error) {
	m.mu.Lock()
	store, ok := m.stores[userID]
	if !ok {
		store = NewStore(m.repo, m.products)
		m.stores[userID] = store
	}
	m.lastAccess[userID] = time.Now()
	m.mu.Unlock()

	if !ok {
		if err := store.SetUser(userID); err != nil {
			return nil, err
		}
	}
	return store, nil
}

// StartSweeper drops mirrors idle longer than the TTL until ctx is cancelled
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
	for userID, last := range m.lastAccess {
		if last.Before(cutoff) {
			delete(m.stores, userID)
			delete(m.lastAccess, userID)
			removed++
		}
	}
	m.mu.Unlock()

	if removed > 0 {
		logger.Logger.Info().Int("count", removed).Msg("Expired idle wishlist mirrors")
	}
}
