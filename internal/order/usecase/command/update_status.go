package command

import (
	"context"
	"fmt"

	"github.com/essence-store/essence-backend/internal/order/domain"
)

// UpdateStatusCommand represents the command to move an order through its lifecycle
type UpdateStatusCommand struct {
	OrderID string
	Status  string
}

// UpdateStatusHandler handles order status changes
type UpdateStatusHandler struct {
	repo domain.OrderRepository
}

func NewUpdateStatusHandler(repo domain.OrderRepository) *UpdateStatusHandler {
	return &UpdateStatusHandler{repo: repo}
}

// Handle executes the update status command
func (h *UpdateStatusHandler) Handle(ctx context.Context, cmd UpdateStatusCommand) (*domain.Order, error) {
	if cmd.OrderID == "" {
		return nil, fmt.Errorf("order id is required")
	}
	if !domain.ValidStatus(cmd.Status) {
		return nil, fmt.Errorf("invalid status: %s", cmd.Status)
	}

	if err := h.repo.UpdateStatus(cmd.OrderID, cmd.Status); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	order, err := h.repo.FindByID(ctx, cmd.OrderID)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	return order, nil
}
