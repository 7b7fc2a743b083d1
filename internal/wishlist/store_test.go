package wishlist

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogdomain "github.com/essence-store/essence-backend/internal/catalog/domain"
	"github.com/essence-store/essence-backend/internal/wishlist/domain"
)

type fakeWishlistRepo struct {
	entries []domain.Entry
	nextID  uint
	fail    bool
}

func (f *fakeWishlistRepo) Create(entry *domain.Entry) error {
	if f.fail {
		return fmt.Errorf("connection refused")
	}
	for _, e := range f.entries {
		if e.UserID == entry.UserID && e.ProductID == entry.ProductID {
			return domain.ErrDuplicate
		}
	}
	f.nextID++
	entry.ID = f.nextID
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeWishlistRepo) FindByUser(userID uint) ([]domain.Entry, error) {
	if f.fail {
		return nil, fmt.Errorf("connection refused")
	}
	var out []domain.Entry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeWishlistRepo) Delete(userID uint, productID string) error {
	for i, e := range f.entries {
		if e.UserID == userID && e.ProductID == productID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeCatalog struct {
	products map[string]catalogdomain.Product
	fail     bool
}

func (f *fakeCatalog) Create(*catalogdomain.Product) error  { return nil }
func (f *fakeCatalog) Update(*catalogdomain.Product) error  { return nil }
func (f *fakeCatalog) Delete(string) error                  { return nil }
func (f *fakeCatalog) Count() (int64, error)                { return int64(len(f.products)), nil }
func (f *fakeCatalog) CountByCategory() (map[string]int64, error) {
	return nil, nil
}

func (f *fakeCatalog) FindByID(id string) (*catalogdomain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("record not found")
	}
	return &p, nil
}

func (f *fakeCatalog) FindAll(limit, offset int) ([]catalogdomain.Product, error) {
	var out []catalogdomain.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeCatalog) FindByIDs(ids []string) ([]catalogdomain.Product, error) {
	if f.fail {
		return nil, fmt.Errorf("connection refused")
	}
	var out []catalogdomain.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func newTestStore() (*Store, *fakeWishlistRepo, *fakeCatalog) {
	repo := &fakeWishlistRepo{}
	catalog := &fakeCatalog{products: map[string]catalogdomain.Product{
		"p1": {ID: "p1", Name: "Velvet Rose", Price: 110},
		"p2": {ID: "p2", Name: "Amber Woods", Price: 135},
	}}
	return NewStore(repo, catalog), repo, catalog
}

func TestAddRequiresAuthentication(t *testing.T) {
	s, _, _ := newTestStore()

	_, err := s.Add("p1")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	err = s.Remove("p1")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAddThenDuplicateIsInformational(t *testing.T) {
	s, _, _ := newTestStore()
	require.NoError(t, s.SetUser(7))

	outcome, err := s.Add("p1")
	require.NoError(t, err)
	assert.Equal(t, Added, outcome)

	outcome, err = s.Add("p1")
	require.NoError(t, err, "duplicate must not surface as an error")
	assert.Equal(t, AlreadyPresent, outcome)

	assert.Len(t, s.Entries(), 1, "never two entries for one product")
}

func TestTwoPhaseFetchHydratesProducts(t *testing.T) {
	s, _, _ := newTestStore()
	require.NoError(t, s.SetUser(7))

	_, err := s.Add("p1")
	require.NoError(t, err)
	_, err = s.Add("p2")
	require.NoError(t, err)

	products := s.Products()
	require.Len(t, products, 2)
	assert.True(t, s.Contains("p1"))
	assert.True(t, s.Contains("p2"))
	assert.False(t, s.Contains("p3"))
}

func TestHydrateFailureYieldsEmptyProducts(t *testing.T) {
	s, repo, catalog := newTestStore()
	repo.entries = []domain.Entry{{ID: 1, UserID: 7, ProductID: "p1"}}
	catalog.fail = true

	require.NoError(t, s.SetUser(7))

	assert.Len(t, s.Entries(), 1, "entries survive a failed hydrate")
	assert.Empty(t, s.Products())
}

func TestSignOutResetsMirror(t *testing.T) {
	s, _, _ := newTestStore()
	require.NoError(t, s.SetUser(7))
	_, err := s.Add("p1")
	require.NoError(t, err)

	require.NoError(t, s.SetUser(0))
	assert.Empty(t, s.Entries())
	assert.Empty(t, s.Products())
	assert.False(t, s.Contains("p1"))
}

func TestIdentityChangeNeverLeaksPreviousWishlist(t *testing.T) {
	s, _, _ := newTestStore()
	require.NoError(t, s.SetUser(7))
	_, err := s.Add("p1")
	require.NoError(t, err)

	require.NoError(t, s.SetUser(8))
	assert.False(t, s.Contains("p1"))
	assert.Empty(t, s.Entries())
}

func TestManagerReusesStorePerUser(t *testing.T) {
	repo := &fakeWishlistRepo{}
	catalog := &fakeCatalog{products: map[string]catalogdomain.Product{}}
	m := NewManager(repo, catalog, time.Hour)

	sA, err := m.ForUser(7)
	require.NoError(t, err)
	sB, err := m.ForUser(8)
	require.NoError(t, err)
	assert.NotSame(t, sA, sB)

	again, err := m.ForUser(7)
	require.NoError(t, err)
	assert.Same(t, sA, again)
}

func TestManagerSweepDropsIdleMirrors(t *testing.T) {
	repo := &fakeWishlistRepo{}
	catalog := &fakeCatalog{products: map[string]catalogdomain.Product{}}
	m := NewManager(repo, catalog, time.Nanosecond)

	s, err := m.ForUser(7)
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)
	m.sweep()

	// The mirror is gone; next use rehydrates from the repository.
	fresh, err := m.ForUser(7)
	require.NoError(t, err)
	assert.NotSame(t, s, fresh)
}

func TestRemoveRefetches(t *testing.T) {
	s, _, _ := newTestStore()
	require.NoError(t, s.SetUser(7))
	_, err := s.Add("p1")
	require.NoError(t, err)

	require.NoError(t, s.Remove("p1"))
	assert.False(t, s.Contains("p1"))
	assert.Empty(t, s.Products())
}
