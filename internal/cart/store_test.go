package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItemMergesRepeatedIDs(t *testing.T) {
	s := NewStore()

	s.AddItem(Item{ID: "p1", Name: "Velvet Rose", UnitPrice: 110})
	s.AddItem(Item{ID: "p2", Name: "Amber Woods", UnitPrice: 135})
	s.AddItem(Item{ID: "p1", Name: "Velvet Rose", UnitPrice: 110})
	s.AddItem(Item{ID: "p1", Name: "Velvet Rose", UnitPrice: 110})

	items := s.Items()
	require.Len(t, items, 2, "one entry per distinct id")
	assert.Equal(t, 4, s.TotalItems(), "totalItems equals sum of add counts")
	assert.Equal(t, "p1", items[0].ID)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestAddItemForcesQuantityOne(t *testing.T) {
	s := NewStore()
	// an incoming quantity is ignored; a fresh entry always starts at 1
	s.AddItem(Item{ID: "p1", Quantity: 7})
	assert.Equal(t, 1, s.TotalItems())
}

func TestUpdateQuantityZeroAndNegativeRemove(t *testing.T) {
	s := NewStore()
	s.AddItem(Item{ID: "p1", UnitPrice: 50})
	s.AddItem(Item{ID: "p2", UnitPrice: 60})

	s.UpdateQuantity("p1", 0)
	assert.Len(t, s.Items(), 1)

	s.UpdateQuantity("p2", -5)
	assert.Empty(t, s.Items())
}

func TestUpdateQuantitySets(t *testing.T) {
	s := NewStore()
	s.AddItem(Item{ID: "p1", UnitPrice: 50})

	s.UpdateQuantity("p1", 4)
	assert.Equal(t, 4, s.TotalItems())
	assert.InDelta(t, 200.0, s.TotalPrice(), 1e-9)

	// unknown id is a no-op
	s.UpdateQuantity("missing", 3)
	assert.Equal(t, 4, s.TotalItems())
}

func TestRemoveItemNoopWhenAbsent(t *testing.T) {
	s := NewStore()
	s.AddItem(Item{ID: "p1"})
	s.RemoveItem("p9")
	assert.Len(t, s.Items(), 1)
	s.RemoveItem("p1")
	assert.Empty(t, s.Items())
}

func TestTotalPriceInvariantUnderReordering(t *testing.T) {
	a := NewStore()
	a.AddItem(Item{ID: "p1", UnitPrice: 110})
	a.AddItem(Item{ID: "p1", UnitPrice: 110})
	a.AddItem(Item{ID: "p2", UnitPrice: 135})

	b := NewStore()
	b.AddItem(Item{ID: "p2", UnitPrice: 135})
	b.AddItem(Item{ID: "p1", UnitPrice: 110})
	b.AddItem(Item{ID: "p1", UnitPrice: 110})

	assert.InDelta(t, a.TotalPrice(), b.TotalPrice(), 1e-9)
	assert.InDelta(t, 355.0, a.TotalPrice(), 1e-9)
}

func TestClearEmptiesCart(t *testing.T) {
	s := NewStore()
	s.AddItem(Item{ID: "p1", UnitPrice: 10})
	s.AddItem(Item{ID: "p2", UnitPrice: 20})

	s.Clear()
	assert.Empty(t, s.Items())
	assert.Zero(t, s.TotalItems())
	assert.Zero(t, s.TotalPrice())
}

func TestDrawerFlagHasNoBusinessEffect(t *testing.T) {
	s := NewStore()
	s.AddItem(Item{ID: "p1", UnitPrice: 10})

	assert.False(t, s.IsDrawerOpen())
	s.SetDrawerOpen(true)
	assert.True(t, s.IsDrawerOpen())
	assert.Equal(t, 1, s.TotalItems())
}

func TestSubscribeNotifiesOnMutation(t *testing.T) {
	s := NewStore()

	calls := 0
	unsubscribe := s.Subscribe(func() { calls++ })

	s.AddItem(Item{ID: "p1"})
	s.UpdateQuantity("p1", 3)
	s.RemoveItem("p1")
	assert.Equal(t, 3, calls)

	// removing an absent item does not notify
	s.RemoveItem("missing")
	assert.Equal(t, 3, calls)

	unsubscribe()
	s.AddItem(Item{ID: "p2"})
	assert.Equal(t, 3, calls)
}

func TestSubscriberCanReadStore(t *testing.T) {
	s := NewStore()

	var observed int
	s.Subscribe(func() { observed = s.TotalItems() })

	s.AddItem(Item{ID: "p1"})
	s.AddItem(Item{ID: "p1"})
	assert.Equal(t, 2, observed)
}

func TestManagerSessionsAreIsolated(t *testing.T) {
	m := NewManager(time.Hour)

	sA := m.Get("session-a")
	sB := m.Get("session-b")
	sA.AddItem(Item{ID: "p1"})

	assert.Equal(t, 1, sA.TotalItems())
	assert.Zero(t, sB.TotalItems())

	// same session id returns the same store
	assert.Same(t, sA, m.Get("session-a"))
}

func TestManagerSweepDropsIdleCarts(t *testing.T) {
	m := NewManager(time.Nanosecond)
	s := m.Get("stale")
	s.AddItem(Item{ID: "p1"})

	time.Sleep(2 * time.Millisecond)
	m.sweep()

	fresh := m.Get("stale")
	assert.NotSame(t, s, fresh)
	assert.Zero(t, fresh.TotalItems())
}
