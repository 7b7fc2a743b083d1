package command

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/essence-store/essence-backend/internal/order/domain"
)

// CartLine is a cart item snapshot carried into checkout. Name and
// UnitPrice are frozen here, not re-read from the catalog.
type CartLine struct {
	ProductID string
	Name      string
	UnitPrice float64
	Quantity  int
}

// CreateOrderCommand represents the command to place an order
type CreateOrderCommand struct {
	UserID          uint
	Lines           []CartLine
	ShippingName    string
	ShippingEmail   string
	ShippingAddress string
	ShippingCity    string
	ShippingZip     string
	Phone           string
	Notes           string
}

// CreateOrderHandler handles order placement
type CreateOrderHandler struct {
	repo domain.OrderRepository
}

func NewCreateOrderHandler(repo domain.OrderRepository) *CreateOrderHandler {
	return &CreateOrderHandler{repo: repo}
}

// Handle executes the create order command. The order row and its items
// are written as two sequential inserts; a failure between them leaves an
// order without items rather than rolling the order back.
func (h *CreateOrderHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("user id is required")
	}
	if len(cmd.Lines) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}
	if cmd.ShippingName == "" {
		return nil, fmt.Errorf("shipping name is required")
	}
	if cmd.ShippingEmail == "" {
		return nil, fmt.Errorf("shipping email is required")
	}
	if cmd.ShippingAddress == "" {
		return nil, fmt.Errorf("shipping address is required")
	}
	if cmd.ShippingCity == "" {
		return nil, fmt.Errorf("shipping city is required")
	}
	if cmd.ShippingZip == "" {
		return nil, fmt.Errorf("shipping zip is required")
	}

	var total float64
	for _, line := range cmd.Lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("invalid quantity for %s", line.Name)
		}
		total += line.UnitPrice * float64(line.Quantity)
	}

	orderID := uuid.NewString()
	order := &domain.Order{
		ID:              orderID,
		UserID:          cmd.UserID,
		Reference:       domain.NewReference(orderID),
		TotalAmount:     total,
		Status:          domain.StatusPending,
		ShippingName:    cmd.ShippingName,
		ShippingEmail:   cmd.ShippingEmail,
		ShippingAddress: cmd.ShippingAddress,
		ShippingCity:    cmd.ShippingCity,
		ShippingZip:     cmd.ShippingZip,
		Phone:           cmd.Phone,
		Notes:           cmd.Notes,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := h.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	items := make([]domain.OrderItem, 0, len(cmd.Lines))
	for _, line := range cmd.Lines {
		productID := line.ProductID
		items = append(items, domain.OrderItem{
			OrderID:     orderID,
			ProductID:   &productID,
			ProductName: line.Name,
			Quantity:    line.Quantity,
			Price:       line.UnitPrice,
		})
	}

	if err := h.repo.CreateItems(ctx, items); err != nil {
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	order.Items = items
	return order, nil
}
