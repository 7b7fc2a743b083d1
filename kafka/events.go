package kafka

import "time"

// OrderItemSnapshot mirrors an order line at purchase time
type OrderItemSnapshot struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// OrderPlacedEvent is published by the storefront when checkout succeeds
type OrderPlacedEvent struct {
	EventID         string              `json:"event_id"`
	EventType       string              `json:"event_type"`
	OrderID         string              `json:"order_id"`
	UserID          uint                `json:"user_id"`
	Email           string              `json:"email"`
	CustomerName    string              `json:"customer_name"`
	Items           []OrderItemSnapshot `json:"items"`
	TotalAmount     float64             `json:"total_amount"`
	ShippingAddress string              `json:"shipping_address"`
	Timestamp       time.Time           `json:"timestamp"`
}

// NewsletterSubscribedEvent is published when a newsletter signup succeeds
type NewsletterSubscribedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Email     string    `json:"email"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeOrderPlaced          = "order.placed"
	EventTypeNewsletterSubscribed = "newsletter.subscribed"
)

// Kafka topics
const (
	TopicOrderPlaced          = "order-placed"
	TopicNewsletterSubscribed = "newsletter-subscribed"
)
