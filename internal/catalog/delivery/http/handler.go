package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/essence-store/essence-backend/internal/catalog/domain"
	"github.com/essence-store/essence-backend/internal/catalog/usecase/command"
	"github.com/essence-store/essence-backend/internal/catalog/usecase/query"
	userhttp "github.com/essence-store/essence-backend/internal/user/delivery/http"
	"github.com/essence-store/essence-backend/pkg/logger"
)

// CatalogHandler handles HTTP requests for the product catalog
type CatalogHandler struct {
	createHandler *command.CreateProductHandler
	updateHandler *command.UpdateProductHandler
	deleteHandler *command.DeleteProductHandler
	reviewHandler *command.AddReviewHandler

	getProductHandler  *query.GetProductHandler
	listHandler        *query.ListProductsHandler
	notesHandler       *query.GetNotesHandler
	statsHandler       *query.GetStatsHandler
	listReviewsHandler *query.ListReviewsHandler

	repo           domain.ProductRepository
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	totalProducts  prometheus.Gauge
}

// NewCatalogHandler creates a new catalog handler (manual DI)
func NewCatalogHandler(products domain.ProductRepository, reviews domain.ReviewRepository) *CatalogHandler {
	return NewCatalogHandlerWithDI(
		command.NewCreateProductHandler(products),
		command.NewUpdateProductHandler(products),
		command.NewDeleteProductHandler(products),
		command.NewAddReviewHandler(products, reviews),
		query.NewGetProductHandler(products),
		query.NewListProductsHandler(products),
		query.NewGetNotesHandler(products),
		query.NewGetStatsHandler(products),
		query.NewListReviewsHandler(reviews),
		products,
	)
}

// NewCatalogHandlerWithDI creates a new catalog handler using dependency
// injection. Used by Wire.
func NewCatalogHandlerWithDI(
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	reviewHandler *command.AddReviewHandler,
	getProductHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
	notesHandler *query.GetNotesHandler,
	statsHandler *query.GetStatsHandler,
	listReviewsHandler *query.ListReviewsHandler,
	repo domain.ProductRepository,
) *CatalogHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Total number of requests to the catalog",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "Duration of catalog requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	totalProducts := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_total_products",
			Help: "Total number of products in the catalog",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(totalProducts)

	return &CatalogHandler{
		createHandler:      createHandler,
		updateHandler:      updateHandler,
		deleteHandler:      deleteHandler,
		reviewHandler:      reviewHandler,
		getProductHandler:  getProductHandler,
		listHandler:        listHandler,
		notesHandler:       notesHandler,
		statsHandler:       statsHandler,
		listReviewsHandler: listReviewsHandler,
		repo:               repo,
		requestCounter:     requestCounter,
		requestLatency:     requestLatency,
		totalProducts:      totalProducts,
	}
}

// Response is the common JSON envelope
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *CatalogHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	// Public routes
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/api/products/notes", h.metricsMiddleware("/api/products/notes", h.GetNotes)).Methods("GET")

	// Admin stats before {id} so mux does not treat "stats" as an id
	router.HandleFunc("/api/products/stats", h.metricsMiddleware("/api/products/stats", userhttp.AdminMiddleware(h.GetStats))).Methods("GET")

	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", h.GetProduct)).Methods("GET")
	router.HandleFunc("/api/products/{id}/reviews", h.metricsMiddleware("/api/products/{id}/reviews", h.ListReviews)).Methods("GET")

	// Authenticated routes
	router.HandleFunc("/api/products/{id}/reviews", h.metricsMiddleware("/api/products/{id}/reviews", userhttp.AuthMiddleware(h.AddReview))).Methods("POST")

	// Admin routes
	router.HandleFunc("/api/products", h.metricsMiddleware("/api/products", userhttp.AdminMiddleware(h.CreateProduct))).Methods("POST")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", userhttp.AdminMiddleware(h.UpdateProduct))).Methods("PUT")
	router.HandleFunc("/api/products/{id}", h.metricsMiddleware("/api/products/{id}", userhttp.AdminMiddleware(h.DeleteProduct))).Methods("DELETE")
}

type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	TopNotes    string  `json:"top_notes"`
	HeartNotes  string  `json:"heart_notes"`
	BaseNotes   string  `json:"base_notes"`
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()

	filter := domain.DefaultFilter()
	filter.Search = qs.Get("search")
	if category := qs.Get("category"); category != "" {
		filter.Category = category
	}
	if note := qs.Get("note"); note != "" {
		filter.Note = note
	}
	if min, err := strconv.ParseFloat(qs.Get("min_price"), 64); err == nil {
		filter.MinPrice = min
	}
	if max, err := strconv.ParseFloat(qs.Get("max_price"), 64); err == nil {
		filter.MaxPrice = max
	}

	limit, _ := strconv.Atoi(qs.Get("limit"))
	offset, _ := strconv.Atoi(qs.Get("offset"))

	result, err := h.listHandler.Handle(query.ListProductsQuery{
		Filter: filter,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list products")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list products",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// GetNotes handles GET /api/products/notes
func (h *CatalogHandler) GetNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notesHandler.Handle(query.GetNotesQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to derive note vocabulary")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to load notes",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"notes": notes},
	})
}

// GetProduct handles GET /api/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := h.getProductHandler.Handle(query.GetProductQuery{ID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Error:   "Product not found",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    product,
	})
}

// CreateProduct handles POST /api/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	product, err := h.createHandler.Handle(command.CreateProductCommand{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		TopNotes:    req.TopNotes,
		HeartNotes:  req.HeartNotes,
		BaseNotes:   req.BaseNotes,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create product")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.updateProductsMetric()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// UpdateProduct handles PUT /api/products/{id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	product, err := h.updateHandler.Handle(command.UpdateProductCommand{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		ImageURL:    req.ImageURL,
		TopNotes:    req.TopNotes,
		HeartNotes:  req.HeartNotes,
		BaseNotes:   req.BaseNotes,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to update product")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.deleteHandler.Handle(command.DeleteProductCommand{ID: id}); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to delete product")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	h.updateProductsMetric()

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product deleted successfully",
	})
}

// ListReviews handles GET /api/products/{id}/reviews
func (h *CatalogHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	reviews, err := h.listReviewsHandler.Handle(query.ListReviewsQuery{ProductID: id})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list reviews")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list reviews",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]interface{}{"reviews": reviews},
	})
}

// AddReview handles POST /api/products/{id}/reviews
func (h *CatalogHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	userID, ok := r.Context().Value(userhttp.UserIDKey).(uint)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{
			Success: false,
			Error:   "User ID not found in context",
		})
		return
	}

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	review, err := h.reviewHandler.Handle(command.AddReviewCommand{
		ProductID: id,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to add review")
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Review added successfully",
		Data:    review,
	})
}

// GetStats handles GET /api/products/stats
func (h *CatalogHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(query.GetStatsQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to get catalog stats")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to get statistics",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    stats,
	})
}

// updateProductsMetric updates the total products gauge
func (h *CatalogHandler) updateProductsMetric() {
	count, err := h.repo.Count()
	if err == nil {
		h.totalProducts.Set(float64(count))
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
