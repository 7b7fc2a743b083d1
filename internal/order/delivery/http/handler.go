package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/essence-store/essence-backend/internal/cart"
	carthttp "github.com/essence-store/essence-backend/internal/cart/delivery/http"
	"github.com/essence-store/essence-backend/internal/order/domain"
	"github.com/essence-store/essence-backend/internal/order/usecase/command"
	"github.com/essence-store/essence-backend/internal/order/usecase/query"
	userhttp "github.com/essence-store/essence-backend/internal/user/delivery/http"
	"github.com/essence-store/essence-backend/kafka"
	"github.com/essence-store/essence-backend/pkg/logger"
)

// OrderHandler handles HTTP requests for checkout and order history
type OrderHandler struct {
	createHandler *command.CreateOrderHandler
	statusHandler *command.UpdateStatusHandler

	getHandler      *query.GetOrderHandler
	listUserHandler *query.ListUserOrdersHandler
	listAllHandler  *query.ListOrdersHandler
	statsHandler    *query.GetStatsHandler

	carts     *cart.Manager
	publisher *kafka.Publisher

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewOrderHandler creates a new order handler. publisher may be nil when
// Kafka is not configured; checkout then skips the event.
func NewOrderHandler(repo domain.OrderRepository, carts *cart.Manager, publisher *kafka.Publisher) *OrderHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_service_requests_total",
			Help: "Total number of requests to order service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "order_service_request_duration_seconds",
			Help:    "Duration of order service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &OrderHandler{
		createHandler:   command.NewCreateOrderHandler(repo),
		statusHandler:   command.NewUpdateStatusHandler(repo),
		getHandler:      query.NewGetOrderHandler(repo),
		listUserHandler: query.NewListUserOrdersHandler(repo),
		listAllHandler:  query.NewListOrdersHandler(repo),
		statsHandler:    query.NewGetStatsHandler(repo),
		carts:           carts,
		publisher:       publisher,
		requestCounter:  requestCounter,
		requestLatency:  requestLatency,
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

func (h *OrderHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// Checkout handles POST /checkout (authenticated user)
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(userhttp.UserIDKey).(uint)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	sessionID := r.Header.Get(carthttp.SessionHeader)
	if sessionID == "" {
		h.respondError(w, http.StatusBadRequest, "Cart session required")
		return
	}

	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Address string `json:"address"`
		City    string `json:"city"`
		Zip     string `json:"zip"`
		Phone   string `json:"phone"`
		Notes   string `json:"notes"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	store := h.carts.Get(sessionID)
	items := store.Items()

	lines := make([]command.CartLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, command.CartLine{
			ProductID: item.ID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}

	cmd := command.CreateOrderCommand{
		UserID:          userID,
		Lines:           lines,
		ShippingName:    req.Name,
		ShippingEmail:   req.Email,
		ShippingAddress: req.Address,
		ShippingCity:    req.City,
		ShippingZip:     req.Zip,
		Phone:           req.Phone,
		Notes:           req.Notes,
	}

	order, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	store.Clear()

	if h.publisher != nil {
		snapshots := make([]kafka.OrderItemSnapshot, 0, len(order.Items))
		for _, item := range order.Items {
			snapshots = append(snapshots, kafka.OrderItemSnapshot{
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				Price:       item.Price,
			})
		}

		event := kafka.OrderPlacedEvent{
			OrderID:      order.ID,
			UserID:       order.UserID,
			Email:        order.ShippingEmail,
			CustomerName: order.ShippingName,
			Items:        snapshots,
			TotalAmount:  order.TotalAmount,
			ShippingAddress: fmt.Sprintf("%s, %s %s",
				order.ShippingAddress, order.ShippingZip, order.ShippingCity),
		}

		if err := h.publisher.PublishOrderPlaced(r.Context(), event); err != nil {
			// The order is already placed; a missed event only delays
			// the confirmation email.
			logger.Error(r.Context()).Err(err).Str("order_id", order.ID).Msg("Failed to publish order placed event")
		}
	}

	h.respondJSON(w, http.StatusCreated, order)
}

// ListMyOrders handles GET /orders (authenticated user)
func (h *OrderHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(userhttp.UserIDKey).(uint)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	orders, err := h.listUserHandler.Handle(query.ListUserOrdersQuery{
		UserID: userID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, orders)
}

// GetOrder handles GET /orders/{id} (authenticated user, own orders only)
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(userhttp.UserIDKey).(uint)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	vars := mux.Vars(r)
	order, err := h.getHandler.Handle(r.Context(), query.GetOrderQuery{OrderID: vars["id"], UserID: userID})
	if err != nil {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, order)
}

// --- ADMIN ENDPOINTS ---

// ListOrders handles GET /admin/orders (admin only)
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	orders, err := h.listAllHandler.Handle(query.ListOrdersQuery{Limit: limit, Offset: offset})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, orders)
}

// UpdateStatus handles PUT /admin/orders/{id}/status (admin only)
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Status string `json:"status"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.statusHandler.Handle(r.Context(), command.UpdateStatusCommand{
		OrderID: vars["id"],
		Status:  req.Status,
	})
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, order)
}

// GetStats handles GET /admin/stats (admin only)
func (h *OrderHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(query.GetStatsQuery{})
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, stats)
}

func (h *OrderHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *OrderHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	// Authenticated user routes
	router.HandleFunc("/checkout", h.metricsMiddleware("/checkout", userhttp.AuthMiddleware(h.Checkout))).Methods("POST")
	router.HandleFunc("/orders", h.metricsMiddleware("/orders", userhttp.AuthMiddleware(h.ListMyOrders))).Methods("GET")
	router.HandleFunc("/orders/{id}", h.metricsMiddleware("/orders/{id}", userhttp.AuthMiddleware(h.GetOrder))).Methods("GET")

	// Admin routes
	router.HandleFunc("/admin/orders", h.metricsMiddleware("/admin/orders", userhttp.AdminMiddleware(h.ListOrders))).Methods("GET")
	router.HandleFunc("/admin/orders/{id}/status", h.metricsMiddleware("/admin/orders/{id}/status", userhttp.AdminMiddleware(h.UpdateStatus))).Methods("PUT")
	router.HandleFunc("/admin/stats", h.metricsMiddleware("/admin/stats", userhttp.AdminMiddleware(h.GetStats))).Methods("GET")
}
