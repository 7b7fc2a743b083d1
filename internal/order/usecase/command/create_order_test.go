package command

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/essence-store/essence-backend/internal/order/domain"
)

type fakeOrderRepo struct {
	orders    map[string]*domain.Order
	items     map[string][]domain.OrderItem
	failItems bool
	lastCtx   context.Context
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]*domain.Order{}, items: map[string][]domain.OrderItem{}}
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	r.lastCtx = ctx
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) CreateItems(ctx context.Context, items []domain.OrderItem) error {
	r.lastCtx = ctx
	if r.failItems {
		return fmt.Errorf("insert failed")
	}
	for _, it := range items {
		r.items[it.OrderID] = append(r.items[it.OrderID], it)
	}
	return nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	r.lastCtx = ctx
	o, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("record not found")
	}
	cp := *o
	cp.Items = r.items[id]
	return &cp, nil
}

func (r *fakeOrderRepo) FindByUser(userID uint, limit, offset int) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			cp := *o
			cp.Items = r.items[o.ID]
			out = append(out, cp)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) FindAll(limit, offset int) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(id string, status string) error {
	o, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("record not found")
	}
	o.Status = status
	return nil
}

func (r *fakeOrderRepo) Count() (int64, error) { return int64(len(r.orders)), nil }

func (r *fakeOrderRepo) SumRevenue() (float64, error) {
	var total float64
	for _, o := range r.orders {
		if o.Status != domain.StatusCancelled {
			total += o.TotalAmount
		}
	}
	return total, nil
}

func (r *fakeOrderRepo) CountByStatus() (map[string]int64, error) {
	counts := map[string]int64{}
	for _, o := range r.orders {
		counts[o.Status]++
	}
	return counts, nil
}

func validCommand(lines []CartLine) CreateOrderCommand {
	return CreateOrderCommand{
		UserID:          7,
		Lines:           lines,
		ShippingName:    "Amira Hassan",
		ShippingEmail:   "amira@example.com",
		ShippingAddress: "5 Rose Street",
		ShippingCity:    "Lyon",
		ShippingZip:     "69000",
	}
}

func TestCreateOrderTotalsFromLines(t *testing.T) {
	repo := newFakeOrderRepo()
	handler := NewCreateOrderHandler(repo)

	order, err := handler.Handle(context.Background(), validCommand([]CartLine{
		{ProductID: "p1", Name: "Noir Intense", UnitPrice: 50, Quantity: 2},
	}))
	require.NoError(t, err)

	assert.Equal(t, 100.0, order.TotalAmount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 50.0, order.Items[0].Price)
	assert.Equal(t, "Noir Intense", order.Items[0].ProductName)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Regexp(t, `^ORD-[0-9A-F]{8}$`, order.Reference)
}

func TestCreateOrderPropagatesContext(t *testing.T) {
	repo := newFakeOrderRepo()
	handler := NewCreateOrderHandler(repo)

	type ctxKey string
	ctx := context.WithValue(context.Background(), ctxKey("request"), "r1")

	_, err := handler.Handle(ctx, validCommand([]CartLine{
		{ProductID: "p1", Name: "Noir", UnitPrice: 10, Quantity: 1},
	}))
	require.NoError(t, err)

	// The request context must reach the repository so tracing decorators
	// can parent their spans on it.
	require.NotNil(t, repo.lastCtx)
	assert.Equal(t, "r1", repo.lastCtx.Value(ctxKey("request")))
}

func TestCreateOrderSnapshotIsFrozen(t *testing.T) {
	repo := newFakeOrderRepo()
	handler := NewCreateOrderHandler(repo)

	lines := []CartLine{{ProductID: "p1", Name: "Noir Intense", UnitPrice: 50, Quantity: 1}}
	order, err := handler.Handle(context.Background(), validCommand(lines))
	require.NoError(t, err)

	// Mutating the caller's cart line after placement must not touch
	// what was written.
	lines[0].UnitPrice = 999
	lines[0].Name = "renamed"

	stored, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, stored.Items[0].Price)
	assert.Equal(t, "Noir Intense", stored.Items[0].ProductName)
	assert.Equal(t, 50.0, stored.TotalAmount)
}

func TestCreateOrderValidatesShipping(t *testing.T) {
	handler := NewCreateOrderHandler(newFakeOrderRepo())

	cmd := validCommand([]CartLine{{ProductID: "p1", Name: "Noir", UnitPrice: 10, Quantity: 1}})
	cmd.ShippingCity = ""

	_, err := handler.Handle(context.Background(), cmd)
	assert.ErrorContains(t, err, "shipping city is required")
}

func TestCreateOrderRejectsEmptyCart(t *testing.T) {
	handler := NewCreateOrderHandler(newFakeOrderRepo())

	_, err := handler.Handle(context.Background(), validCommand(nil))
	assert.ErrorContains(t, err, "cart is empty")
}

func TestCreateOrderItemFailureLeavesOrderRow(t *testing.T) {
	repo := newFakeOrderRepo()
	repo.failItems = true
	handler := NewCreateOrderHandler(repo)

	_, err := handler.Handle(context.Background(), validCommand([]CartLine{
		{ProductID: "p1", Name: "Noir", UnitPrice: 10, Quantity: 1},
	}))
	require.Error(t, err)

	// The order row is written before items and is not rolled back.
	assert.Len(t, repo.orders, 1)
}

func TestUpdateStatusRejectsUnknown(t *testing.T) {
	repo := newFakeOrderRepo()
	order, err := NewCreateOrderHandler(repo).Handle(context.Background(), validCommand([]CartLine{
		{ProductID: "p1", Name: "Noir", UnitPrice: 10, Quantity: 1},
	}))
	require.NoError(t, err)

	_, err = NewUpdateStatusHandler(repo).Handle(context.Background(), UpdateStatusCommand{OrderID: order.ID, Status: "teleported"})
	assert.ErrorContains(t, err, "invalid status")

	updated, err := NewUpdateStatusHandler(repo).Handle(context.Background(), UpdateStatusCommand{OrderID: order.ID, Status: domain.StatusShipped})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusShipped, updated.Status)
}
