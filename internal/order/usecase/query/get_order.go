package query

import (
	"context"
	"fmt"

	"github.com/essence-store/essence-backend/internal/order/domain"
)

// GetOrderQuery represents the query to fetch one order
type GetOrderQuery struct {
	OrderID string
	// UserID scopes the lookup; zero means no scoping (admin path)
	UserID uint
}

// GetOrderHandler handles single order lookups
type GetOrderHandler struct {
	repo domain.OrderRepository
}

func NewGetOrderHandler(repo domain.OrderRepository) *GetOrderHandler {
	return &GetOrderHandler{repo: repo}
}

// Handle executes the get order query
func (h *GetOrderHandler) Handle(ctx context.Context, q GetOrderQuery) (*domain.Order, error) {
	order, err := h.repo.FindByID(ctx, q.OrderID)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	if q.UserID != 0 && order.UserID != q.UserID {
		return nil, fmt.Errorf("order not found")
	}
	return order, nil
}
