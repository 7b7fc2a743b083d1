package query

import (
	"fmt"

	"github.com/essence-store/essence-backend/internal/order/domain"
)

const defaultLimit = 100

// ListUserOrdersQuery represents the query for a customer's order history
type ListUserOrdersQuery struct {
	UserID uint
	Limit  int
	Offset int
}

// ListUserOrdersHandler handles order history lookups
type ListUserOrdersHandler struct {
	repo domain.OrderRepository
}

func NewListUserOrdersHandler(repo domain.OrderRepository) *ListUserOrdersHandler {
	return &ListUserOrdersHandler{repo: repo}
}

// Handle executes the list user orders query, newest first
func (h *ListUserOrdersHandler) Handle(q ListUserOrdersQuery) ([]domain.Order, error) {
	if q.UserID == 0 {
		return nil, fmt.Errorf("user id is required")
	}
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	return h.repo.FindByUser(q.UserID, q.Limit, q.Offset)
}

// ListOrdersQuery represents the admin query over all orders
type ListOrdersQuery struct {
	Limit  int
	Offset int
}

// ListOrdersHandler handles admin order listing
type ListOrdersHandler struct {
	repo domain.OrderRepository
}

func NewListOrdersHandler(repo domain.OrderRepository) *ListOrdersHandler {
	return &ListOrdersHandler{repo: repo}
}

// Handle executes the list orders query
func (h *ListOrdersHandler) Handle(q ListOrdersQuery) ([]domain.Order, error) {
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	return h.repo.FindAll(q.Limit, q.Offset)
}

// GetStatsQuery represents the admin stats query
type GetStatsQuery struct{}

// GetStatsHandler aggregates order counts and revenue
type GetStatsHandler struct {
	repo domain.OrderRepository
}

func NewGetStatsHandler(repo domain.OrderRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the stats query
func (h *GetStatsHandler) Handle(q GetStatsQuery) (*domain.OrderStats, error) {
	count, err := h.repo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	revenue, err := h.repo.SumRevenue()
	if err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}
	byStatus, err := h.repo.CountByStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}

	return &domain.OrderStats{
		TotalOrders:    count,
		TotalRevenue:   revenue,
		OrdersByStatus: byStatus,
	}, nil
}
