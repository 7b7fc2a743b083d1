package notifier

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/essence-store/essence-backend/kafka"
)

func TestRenderOrderConfirmation(t *testing.T) {
	subject, body, err := RenderOrderConfirmation(OrderConfirmation{
		CustomerName: "Amira Hassan",
		OrderID:      "3f1c2a9b-0000-0000-0000-000000000000",
		Items: []OrderLine{
			{ProductName: "Noir Intense", Quantity: 2, Price: 50},
			{ProductName: "Rose Petal", Quantity: 1, Price: 95},
		},
		TotalAmount:     195,
		ShippingAddress: "5 Rose Street, 69000 Lyon",
	})
	require.NoError(t, err)

	assert.Equal(t, "Order Confirmation #3f1c2a9b", subject)
	assert.Contains(t, body, "Hi Amira Hassan,")
	assert.Contains(t, body, "Noir Intense")
	assert.Contains(t, body, "$100.00")
	assert.Contains(t, body, "$195.00")
	assert.Contains(t, body, "5 Rose Street, 69000 Lyon")
}

func TestRenderOrderConfirmationEscapesHTML(t *testing.T) {
	_, body, err := RenderOrderConfirmation(OrderConfirmation{
		CustomerName: "<script>alert(1)</script>",
		OrderID:      "abc",
	})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>alert(1)</script>")
}

func TestRenderNewsletterWelcome(t *testing.T) {
	subject, body, err := RenderNewsletterWelcome("")
	require.NoError(t, err)

	assert.Equal(t, "Welcome to Essence Fragrance Community!", subject)
	assert.Contains(t, body, "Thank You for Subscribing!")
	assert.Contains(t, body, "https://essence.lovable.app/products")

	_, body, err = RenderNewsletterWelcome("https://shop.example.com")
	require.NoError(t, err)
	assert.Contains(t, body, "https://shop.example.com")
}

func TestRenderContactEmails(t *testing.T) {
	customer, admin, err := RenderContactEmails(ContactMessage{
		Name:     "Amira",
		Email:    "amira@example.com",
		Subject:  "Shipping question",
		Message:  "When does my order arrive?",
		Received: time.Date(2026, time.March, 2, 15, 4, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Contains(t, customer, "Dear Amira,")
	assert.Contains(t, customer, "Shipping question")
	assert.Contains(t, admin, "amira@example.com")
	assert.Contains(t, admin, "Mar 2, 2026 3:04 PM")
}

type fakeSender struct {
	sent []Email
}

func (f *fakeSender) Send(_ context.Context, email Email) (string, error) {
	f.sent = append(f.sent, email)
	return "email_1", nil
}

func TestHandleOrderPlaced(t *testing.T) {
	sender := &fakeSender{}
	service := NewService(sender)

	payload, err := json.Marshal(kafka.OrderPlacedEvent{
		OrderID:      "3f1c2a9b-0000-0000-0000-000000000000",
		Email:        "amira@example.com",
		CustomerName: "Amira Hassan",
		Items: []kafka.OrderItemSnapshot{
			{ProductName: "Noir Intense", Quantity: 2, Price: 50},
		},
		TotalAmount:     100,
		ShippingAddress: "5 Rose Street, 69000 Lyon",
	})
	require.NoError(t, err)

	require.NoError(t, service.HandleOrderPlaced(context.Background(), payload))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"amira@example.com"}, sender.sent[0].To)
	assert.Contains(t, sender.sent[0].Subject, "Order Confirmation")
}

func TestHandleNewsletterSubscribed(t *testing.T) {
	sender := &fakeSender{}
	service := NewService(sender)

	payload, err := json.Marshal(kafka.NewsletterSubscribedEvent{Email: "amira@example.com"})
	require.NoError(t, err)

	require.NoError(t, service.HandleNewsletterSubscribed(context.Background(), payload))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Welcome to Essence Fragrance Community!", sender.sent[0].Subject)
}

func TestSendContactEmailsSendsBoth(t *testing.T) {
	sender := &fakeSender{}
	service := NewService(sender)

	err := service.SendContactEmails(context.Background(), ContactMessage{
		Name:    "Amira",
		Email:   "amira@example.com",
		Subject: "Hello",
		Message: "Hi there",
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, []string{"amira@example.com"}, sender.sent[0].To)
	assert.Contains(t, sender.sent[1].Subject, "New Contact Form Submission")
}
