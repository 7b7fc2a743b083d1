package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/essence-store/essence-backend/kafka"
	"github.com/essence-store/essence-backend/pkg/logger"
)

// Sender delivers one email
type Sender interface {
	Send(ctx context.Context, email Email) (string, error)
}

// Service turns storefront events and direct requests into emails
type Service struct {
	sender     Sender
	fromOrders string
	fromStore  string
	adminEmail string
	shopURL    string
}

// NewService builds the notifier service. Sender addresses and the admin
// inbox come from the environment with development defaults.
func NewService(sender Sender) *Service {
	return &Service{
		sender:     sender,
		fromOrders: getEnv("EMAIL_FROM_ORDERS", "Fragrance Store <onboarding@resend.dev>"),
		fromStore:  getEnv("EMAIL_FROM_STORE", "Essence <onboarding@resend.dev>"),
		adminEmail: getEnv("EMAIL_ADMIN", "onboarding@resend.dev"),
		shopURL:    os.Getenv("SHOP_URL"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// SendOrderConfirmation emails a purchase summary to the customer
func (s *Service) SendOrderConfirmation(ctx context.Context, to string, data OrderConfirmation) error {
	subject, body, err := RenderOrderConfirmation(data)
	if err != nil {
		return err
	}

	id, err := s.sender.Send(ctx, Email{
		From:    s.fromOrders,
		To:      []string{to},
		Subject: subject,
		HTML:    body,
	})
	if err != nil {
		return fmt.Errorf("failed to send order confirmation: %w", err)
	}

	logger.Info(ctx).Str("email_id", id).Str("order_id", data.OrderID).Msg("Order confirmation sent")
	return nil
}

// SendNewsletterWelcome emails the welcome message to a new subscriber
func (s *Service) SendNewsletterWelcome(ctx context.Context, to string) error {
	subject, body, err := RenderNewsletterWelcome(s.shopURL)
	if err != nil {
		return err
	}

	id, err := s.sender.Send(ctx, Email{
		From:    s.fromStore,
		To:      []string{to},
		Subject: subject,
		HTML:    body,
	})
	if err != nil {
		return fmt.Errorf("failed to send newsletter welcome: %w", err)
	}

	logger.Info(ctx).Str("email_id", id).Msg("Newsletter welcome sent")
	return nil
}

// SendContactEmails acknowledges the customer and notifies the admin inbox
func (s *Service) SendContactEmails(ctx context.Context, msg ContactMessage) error {
	if msg.Received.IsZero() {
		msg.Received = time.Now()
	}

	customerBody, adminBody, err := RenderContactEmails(msg)
	if err != nil {
		return err
	}

	if _, err := s.sender.Send(ctx, Email{
		From:    s.fromStore,
		To:      []string{msg.Email},
		Subject: "We received your message - Essence Fragrances",
		HTML:    customerBody,
	}); err != nil {
		return fmt.Errorf("failed to send contact acknowledgement: %w", err)
	}

	if _, err := s.sender.Send(ctx, Email{
		From:    s.fromStore,
		To:      []string{s.adminEmail},
		Subject: fmt.Sprintf("New Contact Form Submission: %s", msg.Subject),
		HTML:    adminBody,
	}); err != nil {
		return fmt.Errorf("failed to send contact notification: %w", err)
	}

	return nil
}

// HandleOrderPlaced consumes an order placed event and emails the customer
func (s *Service) HandleOrderPlaced(ctx context.Context, payload []byte) error {
	var event kafka.OrderPlacedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("failed to decode order placed event: %w", err)
	}

	lines := make([]OrderLine, 0, len(event.Items))
	for _, item := range event.Items {
		lines = append(lines, OrderLine{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	return s.SendOrderConfirmation(ctx, event.Email, OrderConfirmation{
		CustomerName:    event.CustomerName,
		OrderID:         event.OrderID,
		Items:           lines,
		TotalAmount:     event.TotalAmount,
		ShippingAddress: event.ShippingAddress,
	})
}

// HandleNewsletterSubscribed consumes a subscription event and sends the
// welcome email
func (s *Service) HandleNewsletterSubscribed(ctx context.Context, payload []byte) error {
	var event kafka.NewsletterSubscribedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("failed to decode newsletter subscribed event: %w", err)
	}
	return s.SendNewsletterWelcome(ctx, event.Email)
}

// RegisterHandlers binds the service to the consumer's event types
func (s *Service) RegisterHandlers(consumer *kafka.Consumer) {
	consumer.RegisterHandler(kafka.EventTypeOrderPlaced, s.HandleOrderPlaced)
	consumer.RegisterHandler(kafka.EventTypeNewsletterSubscribed, s.HandleNewsletterSubscribed)
}
