package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	userhttp "github.com/essence-store/essence-backend/internal/user/delivery/http"
	"github.com/essence-store/essence-backend/internal/wishlist"
	"github.com/essence-store/essence-backend/pkg/logger"
)

// WishlistHandler handles HTTP requests for per-user wishlists
type WishlistHandler struct {
	manager        *wishlist.Manager
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(manager *wishlist.Manager) *WishlistHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wishlist_requests_total",
			Help: "Total number of wishlist requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wishlist_request_duration_seconds",
			Help:    "Duration of wishlist requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &WishlistHandler{
		manager:        manager,
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

func (h *WishlistHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes registers all wishlist routes (all require authentication)
func (h *WishlistHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/wishlist", h.metricsMiddleware("/wishlist", userhttp.AuthMiddleware(h.GetWishlist))).Methods("GET")
	router.HandleFunc("/wishlist", h.metricsMiddleware("/wishlist", userhttp.AuthMiddleware(h.AddToWishlist))).Methods("POST")
	router.HandleFunc("/wishlist/{productID}", h.metricsMiddleware("/wishlist/{productID}", userhttp.AuthMiddleware(h.RemoveFromWishlist))).Methods("DELETE")
}

func (h *WishlistHandler) userStore(w http.ResponseWriter, r *http.Request) (*wishlist.Store, bool) {
	userID, ok := r.Context().Value(userhttp.UserIDKey).(uint)
	if !ok || userID == 0 {
		respondError(w, http.StatusUnauthorized, "Please sign in to use your wishlist")
		return nil, false
	}

	store, err := h.manager.ForUser(userID)
	if err != nil {
		logger.Logger.Error().Err(err).Uint("user_id", userID).Msg("Failed to load wishlist")
		respondError(w, http.StatusInternalServerError, "Failed to load wishlist")
		return nil, false
	}
	return store, true
}

// GetWishlist handles GET /wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	store, ok := h.userStore(w, r)
	if !ok {
		return
	}

	if err := store.Refresh(); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to refresh wishlist")
		respondError(w, http.StatusInternalServerError, "Failed to load wishlist")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":    store.Entries(),
		"products": store.Products(),
	})
}

// AddToWishlist handles POST /wishlist
func (h *WishlistHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	store, ok := h.userStore(w, r)
	if !ok {
		return
	}

	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "product_id is required")
		return
	}

	outcome, err := store.Add(req.ProductID)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to add to wishlist")
		respondError(w, http.StatusInternalServerError, "Failed to add to wishlist")
		return
	}

	message := "Added to wishlist"
	if outcome == wishlist.AlreadyPresent {
		message = "This item is already in your wishlist"
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": message,
		"items":   store.Entries(),
	})
}

// RemoveFromWishlist handles DELETE /wishlist/{productID}
func (h *WishlistHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	store, ok := h.userStore(w, r)
	if !ok {
		return
	}

	productID := mux.Vars(r)["productID"]
	if err := store.Remove(productID); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to remove from wishlist")
		respondError(w, http.StatusInternalServerError, "Failed to remove from wishlist")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Removed from wishlist",
		"items":   store.Entries(),
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
