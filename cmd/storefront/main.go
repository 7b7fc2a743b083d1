package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"

	"github.com/essence-store/essence-backend/internal/cart"
	carthttp "github.com/essence-store/essence-backend/internal/cart/delivery/http"
	cataloghttp "github.com/essence-store/essence-backend/internal/catalog/delivery/http"
	catalogdomain "github.com/essence-store/essence-backend/internal/catalog/domain"
	catalogrepo "github.com/essence-store/essence-backend/internal/catalog/repository"
	newsletterhttp "github.com/essence-store/essence-backend/internal/newsletter/delivery/http"
	newsletterrepo "github.com/essence-store/essence-backend/internal/newsletter/repository"
	orderhttp "github.com/essence-store/essence-backend/internal/order/delivery/http"
	orderrepo "github.com/essence-store/essence-backend/internal/order/repository"
	userhttp "github.com/essence-store/essence-backend/internal/user/delivery/http"
	userrepo "github.com/essence-store/essence-backend/internal/user/repository"
	"github.com/essence-store/essence-backend/internal/wishlist"
	wishlisthttp "github.com/essence-store/essence-backend/internal/wishlist/delivery/http"
	wishlistrepo "github.com/essence-store/essence-backend/internal/wishlist/repository"
	"github.com/essence-store/essence-backend/kafka"
	"github.com/essence-store/essence-backend/pkg/database"
	"github.com/essence-store/essence-backend/pkg/logger"
	"github.com/essence-store/essence-backend/pkg/tracing"
)

func main() {
	logger.Init("storefront", getEnv("APP_ENV", "development") == "development")

	tp, err := tracing.InitTracer("storefront")
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx, tp); err != nil {
			log.Printf("Failed to shut down tracer: %v", err)
		}
	}()

	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "essence"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	defer sqlDB.Close()

	// The newsletter repository runs on database/sql directly
	rawDB, err := database.NewPostgresConnection(dbConfig)
	if err != nil {
		log.Fatalf("Failed to open raw database connection: %v", err)
	}
	defer rawDB.Close()

	// Repositories
	productRepo := catalogrepo.NewGormProductRepository(db)
	if err := productRepo.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run catalog migrations: %v", err)
	}
	reviewRepo := catalogrepo.NewGormReviewRepository(db)

	userRepo := userrepo.NewGormUserRepository(db)
	if err := userRepo.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run user migrations: %v", err)
	}

	orderRepo := orderrepo.NewGormOrderRepositoryWithTracing(db)
	if err := orderRepo.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run order migrations: %v", err)
	}

	wishlistRepo := wishlistrepo.NewGormWishlistRepository(db)
	if err := wishlistRepo.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run wishlist migrations: %v", err)
	}

	subscriberRepo := newsletterrepo.NewPostgresSubscriberRepository(rawDB)
	if err := subscriberRepo.Migrate(); err != nil {
		log.Fatalf("Failed to run newsletter migrations: %v", err)
	}

	// Product reads go through Redis when it is configured
	var catalogProducts catalogdomain.ProductRepository = productRepo
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		catalogProducts = catalogrepo.NewCachedProductRepository(productRepo, redisClient, 5*time.Minute)
	}

	// Kafka publisher feeds the notifier service; optional in development
	var publisher *kafka.Publisher
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		publisher, err = kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			log.Fatalf("Failed to connect to Kafka: %v", err)
		}
		defer publisher.Close()
	}

	// Session carts and wishlist mirrors are swept after prolonged inactivity
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cartManager := cart.NewManager(24 * time.Hour)
	cartManager.StartSweeper(ctx, time.Hour)

	wishlistManager := wishlist.NewManager(wishlistRepo, catalogProducts, 24*time.Hour)
	wishlistManager.StartSweeper(ctx, time.Hour)

	// HTTP handlers
	router := mux.NewRouter()

	userHandler := userhttp.NewUserHandler(userRepo)
	userHandler.RegisterRoutes(router)

	catalogHandler := cataloghttp.NewCatalogHandler(catalogProducts, reviewRepo)
	catalogHandler.RegisterRoutes(router)

	cartHandler := carthttp.NewCartHandler(cartManager)
	cartHandler.RegisterRoutes(router)

	wishlistHandler := wishlisthttp.NewWishlistHandler(wishlistManager)
	wishlistHandler.RegisterRoutes(router)

	orderHandler := orderhttp.NewOrderHandler(orderRepo, cartManager, publisher)
	orderHandler.RegisterRoutes(router)

	newsletterHandler := newsletterhttp.NewNewsletterHandler(subscriberRepo, publisher)
	newsletterHandler.RegisterRoutes(router)

	router.Handle("/metrics", promhttp.Handler())
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		healthCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := sqlDB.PingContext(healthCtx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy"}`))
			return
		}
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	port := getEnv("HTTP_PORT", "8080")
	server := &http.Server{
		Addr:    ":" + port,
		Handler: c.Handler(tracing.Middleware("storefront", router)),
	}

	go func() {
		log.Printf("🌐 Storefront server starting on port %s", port)
		log.Printf("📊 Prometheus metrics: http://localhost:%s/metrics", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down storefront...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
