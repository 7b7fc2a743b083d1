package http

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/essence-store/essence-backend/internal/cart"
)

// SessionHeader carries the tab-local cart session id
const SessionHeader = "X-Session-ID"

// CartHandler handles HTTP requests for session carts
type CartHandler struct {
	manager        *cart.Manager
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewCartHandler creates a new cart handler
func NewCartHandler(manager *cart.Manager) *CartHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_requests_total",
			Help: "Total number of cart requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cart_request_duration_seconds",
			Help:    "Duration of cart requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &CartHandler{
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

func (h *CartHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/cart", h.metricsMiddleware("/cart", h.GetCart)).Methods("GET")
	router.HandleFunc("/cart", h.metricsMiddleware("/cart", h.ClearCart)).Methods("DELETE")
	router.HandleFunc("/cart/items", h.metricsMiddleware("/cart/items", h.AddItem)).Methods("POST")
	router.HandleFunc("/cart/items/{id}", h.metricsMiddleware("/cart/items/{id}", h.UpdateQuantity)).Methods("PUT")
	router.HandleFunc("/cart/items/{id}", h.metricsMiddleware("/cart/items/{id}", h.RemoveItem)).Methods("DELETE")
	router.HandleFunc("/cart/drawer", h.metricsMiddleware("/cart/drawer", h.SetDrawer)).Methods("PUT")
}

// Store resolves the session's cart store, minting a session id when the
// request carries none. The (possibly new) id is echoed on the response.
func (h *CartHandler) store(w http.ResponseWriter, r *http.Request) *cart.Store {
	sessionID := r.Header.Get(SessionHeader)
	if sessionID == "" {
		sessionID = h.manager.NewSessionID()
	}
	w.Header().Set(SessionHeader, sessionID)
	return h.manager.Get(sessionID)
}

type cartView struct {
	Items      []cart.Item `json:"items"`
	TotalItems int         `json:"total_items"`
	TotalPrice float64     `json:"total_price"`
	DrawerOpen bool        `json:"drawer_open"`
}

// view snapshots the store. Rounding to two decimals happens here, at the
// presentation boundary, never in the stored value.
func view(s *cart.Store) cartView {
	return cartView{
		Items:      s.Items(),
		TotalItems: s.TotalItems(),
		TotalPrice: math.Round(s.TotalPrice()*100) / 100,
		DrawerOpen: s.IsDrawerOpen(),
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	s := h.store(w, r)
	respondJSON(w, http.StatusOK, view(s))
}

// AddItem handles POST /cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID        string  `json:"id"`
		Name      string  `json:"name"`
		UnitPrice float64 `json:"unit_price"`
		ImageURL  string  `json:"image_url"`
		Category  string  `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s := h.store(w, r)
	s.AddItem(cart.Item{
		ID:        req.ID,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		ImageURL:  req.ImageURL,
		Category:  req.Category,
	})

	respondJSON(w, http.StatusOK, view(s))
}

// UpdateQuantity handles PUT /cart/items/{id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s := h.store(w, r)
	s.UpdateQuantity(id, req.Quantity)

	respondJSON(w, http.StatusOK, view(s))
}

// RemoveItem handles DELETE /cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	s := h.store(w, r)
	s.RemoveItem(id)

	respondJSON(w, http.StatusOK, view(s))
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	s := h.store(w, r)
	s.Clear()
	respondJSON(w, http.StatusOK, view(s))
}

// SetDrawer handles PUT /cart/drawer
func (h *CartHandler) SetDrawer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Open bool `json:"open"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s := h.store(w, r)
	s.SetDrawerOpen(req.Open)

	respondJSON(w, http.StatusOK, view(s))
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
