package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Order statuses, in rough lifecycle sequence
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// ValidStatus reports whether s is a known order status
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order is a placed order. Shipping fields are flattened onto the row and
// the total is fixed at placement time from the cart snapshot.
type Order struct {
	ID              string      `json:"id" gorm:"type:uuid;primaryKey"`
	UserID          uint        `json:"user_id" gorm:"index;not null"`
	Reference       string      `json:"reference" gorm:"uniqueIndex;not null"`
	TotalAmount     float64     `json:"total_amount" gorm:"not null"`
	Status          string      `json:"status" gorm:"not null;default:'pending'"`
	ShippingName    string      `json:"shipping_name" gorm:"not null"`
	ShippingEmail   string      `json:"shipping_email" gorm:"not null"`
	ShippingAddress string      `json:"shipping_address" gorm:"not null"`
	ShippingCity    string      `json:"shipping_city" gorm:"not null"`
	ShippingZip     string      `json:"shipping_zip" gorm:"not null"`
	Phone           string      `json:"phone"`
	Notes           string      `json:"notes"`
	Items           []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// TableName specifies the table name
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a line of an order. ProductName and Price are copied from
// the catalog at placement time so later catalog edits never rewrite
// order history. ProductID is nullable for the same reason: the product
// may be deleted after the order exists.
type OrderItem struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	OrderID     string  `json:"order_id" gorm:"type:uuid;index;not null"`
	ProductID   *string `json:"product_id" gorm:"type:uuid"`
	ProductName string  `json:"product_name" gorm:"not null"`
	Quantity    int     `json:"quantity" gorm:"not null"`
	Price       float64 `json:"price" gorm:"not null"`
}

// TableName specifies the table name
func (OrderItem) TableName() string {
	return "order_items"
}

// NewReference builds a human-facing order reference from an order id
func NewReference(orderID string) string {
	short := strings.ReplaceAll(orderID, "-", "")
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("ORD-%s", strings.ToUpper(short))
}

// OrderStats summarizes orders for the admin dashboard
type OrderStats struct {
	TotalOrders    int64            `json:"total_orders"`
	TotalRevenue   float64          `json:"total_revenue"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
}

// OrderRepository defines the contract for order data access. The write
// path and single-order reads carry a context so tracing decorators can
// parent their spans on the request.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	CreateItems(ctx context.Context, items []OrderItem) error
	FindByID(ctx context.Context, id string) (*Order, error)
	FindByUser(userID uint, limit, offset int) ([]Order, error)
	FindAll(limit, offset int) ([]Order, error)
	UpdateStatus(id string, status string) error
	Count() (int64, error)
	SumRevenue() (float64, error)
	CountByStatus() (map[string]int64, error)
}
