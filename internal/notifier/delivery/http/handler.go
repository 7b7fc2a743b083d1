package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/essence-store/essence-backend/internal/notifier"
	"github.com/essence-store/essence-backend/pkg/logger"
)

// NotifierHandler exposes the email endpoints for direct callers. The
// kafka consumers cover the storefront flows; these routes exist for the
// contact form and for retries.
type NotifierHandler struct {
	service *notifier.Service

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// NewNotifierHandler creates a new notifier handler
func NewNotifierHandler(service *notifier.Service) *NotifierHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifier_requests_total",
			Help: "Total number of notifier requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "notifier_request_duration_seconds",
			Help:    "Duration of notifier requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)

	return &NotifierHandler{
		service:        service,
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

func (h *NotifierHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
	}
}

// SendOrderConfirmation handles POST /notifications/order-confirmation
func (h *NotifierHandler) SendOrderConfirmation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email        string `json:"email"`
		CustomerName string `json:"customerName"`
		OrderID      string `json:"orderId"`
		OrderItems   []struct {
			ProductName string  `json:"product_name"`
			Quantity    int     `json:"quantity"`
			Price       float64 `json:"price"`
		} `json:"orderItems"`
		TotalAmount     float64 `json:"totalAmount"`
		ShippingAddress string  `json:"shippingAddress"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" {
		h.respondError(w, http.StatusBadRequest, "email is required")
		return
	}

	lines := make([]notifier.OrderLine, 0, len(req.OrderItems))
	for _, item := range req.OrderItems {
		lines = append(lines, notifier.OrderLine{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	err := h.service.SendOrderConfirmation(r.Context(), req.Email, notifier.OrderConfirmation{
		CustomerName:    req.CustomerName,
		OrderID:         req.OrderID,
		Items:           lines,
		TotalAmount:     req.TotalAmount,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to send order confirmation")
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SendNewsletterWelcome handles POST /notifications/newsletter
func (h *NotifierHandler) SendNewsletterWelcome(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" {
		h.respondError(w, http.StatusBadRequest, "email is required")
		return
	}

	if err := h.service.SendNewsletterWelcome(r.Context(), req.Email); err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to send newsletter welcome")
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SendContactNotification handles POST /notifications/contact
func (h *NotifierHandler) SendContactNotification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Message == "" {
		h.respondError(w, http.StatusBadRequest, "email and message are required")
		return
	}

	err := h.service.SendContactEmails(r.Context(), notifier.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to send contact emails")
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *NotifierHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *NotifierHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes registers notifier routes
func (h *NotifierHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/notifications/order-confirmation", h.metricsMiddleware("/notifications/order-confirmation", h.SendOrderConfirmation)).Methods("POST")
	router.HandleFunc("/notifications/newsletter", h.metricsMiddleware("/notifications/newsletter", h.SendNewsletterWelcome)).Methods("POST")
	router.HandleFunc("/notifications/contact", h.metricsMiddleware("/notifications/contact", h.SendContactNotification)).Methods("POST")
}
