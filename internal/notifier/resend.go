package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const resendEndpoint = "https://api.resend.com/emails"

var tracer = otel.Tracer("notifier")

// ResendClient sends transactional email through the Resend API
type ResendClient struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

// NewResendClient builds a client from the environment. RESEND_API_KEY is
// required at send time.
func NewResendClient() *ResendClient {
	endpoint := os.Getenv("RESEND_ENDPOINT")
	if endpoint == "" {
		endpoint = resendEndpoint
	}
	return &ResendClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		endpoint:   endpoint,
		apiKey:     os.Getenv("RESEND_API_KEY"),
	}
}

// Email is one outgoing message
type Email struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send delivers one email. The returned id is Resend's message id.
func (c *ResendClient) Send(ctx context.Context, email Email) (string, error) {
	ctx, span := tracer.Start(ctx, "resend.Send")
	defer span.End()
	span.SetAttributes(attribute.String("email.subject", email.Subject))

	if c.apiKey == "" {
		err := fmt.Errorf("RESEND_API_KEY is not configured")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	body, err := json.Marshal(email)
	if err != nil {
		return "", fmt.Errorf("failed to encode email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build email request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("email request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		errorText, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("email request failed: %d %s", resp.StatusCode, string(errorText))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode email response: %w", err)
	}
	return result.ID, nil
}
