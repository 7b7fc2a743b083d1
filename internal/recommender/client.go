package recommender

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

	"github.com/essence-store/essence-backend/internal/recommender/domain"
)

const (
	defaultGatewayURL = "https://ai.gateway.lovable.dev/v1/chat/completions"
	defaultModel      = "google/gemini-2.5-flash"
)

var tracer = otel.Tracer("recommender-client")

// Client talks to an OpenAI-compatible chat completion gateway
type Client struct {
	httpClient *http.Client
	gatewayURL string
	model      string
	apiKey     string
}

// NewClient builds a client from the environment. AI_API_KEY is required
// at request time; AI_GATEWAY_URL and AI_MODEL override the defaults.
func NewClient() *Client {
	gatewayURL := os.Getenv("AI_GATEWAY_URL")
	if gatewayURL == "" {
		gatewayURL = defaultGatewayURL
	}
	model := os.Getenv("AI_MODEL")
	if model == "" {
		model = defaultModel
	}

	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		gatewayURL: gatewayURL,
		model:      model,
		apiKey:     os.Getenv("AI_API_KEY"),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Recommend asks the model for fragrance recommendations and returns the
// sanitized JSON payload
func (c *Client) Recommend(ctx context.Context, prefs domain.Preferences) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "recommender.Recommend")
	defer span.End()

	if c.apiKey == "" {
		err := fmt.Errorf("AI_API_KEY is not configured")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: domain.SystemPrompt},
			{Role: "user", Content: prefs.Prompt()},
		},
		Temperature: 0.8,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errorText, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("chat request failed: %d %s", resp.StatusCode, string(errorText))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("chat response has no choices")
	}

	recommendations, err := domain.ParseRecommendations(chat.Choices[0].Message.Content)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("recommender.model", c.model))
	return recommendations, nil
}
