package cart

import (
	"sync"
	"time"
)

// Item is a single cart entry. Quantity is always >= 1 while the entry
// exists; reducing it to zero removes the entry instead.
type Item struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	ImageURL  string  `json:"image_url"`
	Category  string  `json:"category"`
	Quantity  int     `json:"quantity"`
}

// Store holds one session's cart. It is an explicitly injected state
// container: consumers hold a reference and may subscribe to change
// notifications instead of reaching for ambient globals.
//
// Totals are derived on every read so they can never drift from the item
// set. Prices are kept at full float precision; rounding happens only at
// the presentation boundary.
type Store struct {
	mu          sync.Mutex
	items       []Item
	drawerOpen  bool
	subscribers map[int]func()
	nextSubID   int
	lastAccess  time.Time
}

// NewStore creates an empty cart store
func NewStore() *Store {
	return &Store{
		subscribers: make(map[int]func()),
		lastAccess:  time.Now(),
	}
}

// AddItem inserts the item with quantity 1, or increments the quantity by 1
// if an entry with the same id already exists. The merge makes repeated adds
// idempotent with respect to the entry set.
func (s *Store) AddItem(item Item) {
	s.mu.Lock()
	s.lastAccess = time.Now()
	merged := false
	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = 1
		s.items = append(s.items, item)
	}
	s.mu.Unlock()

	s.notify()
}

// RemoveItem deletes the entry if present; no-op otherwise
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	s.lastAccess = time.Now()
	removed := false
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if removed {
		s.notify()
	}
}

// UpdateQuantity sets the quantity for the entry. Any quantity <= 0 is
// treated as removal.
func (s *Store) UpdateQuantity(id string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(id)
		return
	}

	s.mu.Lock()
	s.lastAccess = time.Now()
	changed := false
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			changed = true
			break
		}
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Clear empties the cart
func (s *Store) Clear() {
	s.mu.Lock()
	s.lastAccess = time.Now()
	s.items = nil
	s.mu.Unlock()

	s.notify()
}

// Items returns a copy of the current entries in insertion order
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems is the sum of quantities, recomputed on every read
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of unit price times quantity, recomputed on every
// read at full precision.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, item := range s.items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// IsDrawerOpen reports the presentation drawer flag
func (s *Store) IsDrawerOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawerOpen
}

// SetDrawerOpen flips the presentation drawer flag. It has no effect on the
// cart contents.
func (s *Store) SetDrawerOpen(open bool) {
	s.mu.Lock()
	s.drawerOpen = open
	s.mu.Unlock()

	s.notify()
}

// Subscribe registers a change listener and returns an unsubscribe func
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// notify calls subscribers outside the lock so a listener can read the
// store without deadlocking.
func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (s *Store) lastAccessed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}
