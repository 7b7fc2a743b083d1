package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/essence-store/essence-backend/internal/recommender/domain"
	"github.com/essence-store/essence-backend/pkg/logger"
)

// Recommender is the model-backed recommendation source
type Recommender interface {
	Recommend(ctx context.Context, prefs domain.Preferences) (json.RawMessage, error)
}

// RecommenderHandler handles HTTP requests for AI recommendations
type RecommenderHandler struct {
	client Recommender

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewRecommenderHandler creates a new recommender handler
func NewRecommenderHandler(client Recommender) *RecommenderHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommender_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommender_request_duration_seconds",
			Help:    "Duration of recommendation requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &RecommenderHandler{
		client:         client,
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

func (h *RecommenderHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// Recommend handles POST /recommendations
func (h *RecommenderHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Preferences domain.Preferences `json:"preferences"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	logger.Info(r.Context()).
		Str("occasion", req.Preferences.Occasion).
		Str("season", req.Preferences.Season).
		Msg("Generating fragrance recommendations")

	recommendations, err := h.client.Recommend(r.Context(), req.Preferences)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Recommendation request failed")
		h.respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   err.Error(),
			"details": "Failed to generate recommendations. Please try again.",
		})
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"recommendations": recommendations,
		"preferences":     req.Preferences,
	})
}

func (h *RecommenderHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RegisterRoutes registers recommendation routes
func (h *RecommenderHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/recommendations", h.metricsMiddleware("/recommendations", h.Recommend)).Methods("POST")
}
