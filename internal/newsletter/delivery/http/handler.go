package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/essence-store/essence-backend/internal/newsletter/domain"
	"github.com/essence-store/essence-backend/kafka"
	"github.com/essence-store/essence-backend/pkg/logger"
)

// NewsletterHandler handles newsletter signups
type NewsletterHandler struct {
	repo      domain.SubscriberRepository
	publisher *kafka.Publisher

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewNewsletterHandler creates a new newsletter handler. publisher may be
// nil when Kafka is not configured.
func NewNewsletterHandler(repo domain.SubscriberRepository, publisher *kafka.Publisher) *NewsletterHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "newsletter_requests_total",
			Help: "Total number of newsletter requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "newsletter_request_duration_seconds",
			Help:    "Duration of newsletter requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &NewsletterHandler{
		repo:           repo,
		publisher:      publisher,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (h *NewsletterHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// Subscribe handles POST /newsletter/subscribe
func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid email address")
		return
	}

	sub, err := h.repo.Subscribe(email)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadySubscribed) {
			h.respondJSON(w, http.StatusOK, map[string]string{
				"message": "You're already subscribed",
			})
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to subscribe")
		return
	}

	if h.publisher != nil {
		event := kafka.NewsletterSubscribedEvent{Email: sub.Email}
		if err := h.publisher.PublishNewsletterSubscribed(r.Context(), event); err != nil {
			logger.Error(r.Context()).Err(err).Str("email", sub.Email).Msg("Failed to publish newsletter subscribed event")
		}
	}

	h.respondJSON(w, http.StatusCreated, map[string]string{
		"message": "Thanks for subscribing!",
	})
}

func (h *NewsletterHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *NewsletterHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers newsletter routes
func (h *NewsletterHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/newsletter/subscribe", h.metricsMiddleware("/newsletter/subscribe", h.Subscribe)).Methods("POST")
}
