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
	"github.com/rs/cors"

	"github.com/essence-store/essence-backend/internal/notifier"
	notifierhttp "github.com/essence-store/essence-backend/internal/notifier/delivery/http"
	"github.com/essence-store/essence-backend/kafka"
	"github.com/essence-store/essence-backend/pkg/logger"
	"github.com/essence-store/essence-backend/pkg/tracing"
)

func main() {
	logger.Init("notifier", getEnv("APP_ENV", "development") == "development")

	tp, err := tracing.InitTracer("notifier")
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

	service := notifier.NewService(notifier.NewResendClient())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Kafka consumers drive the storefront email flows
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		consumer, err := kafka.NewConsumer(
			strings.Split(brokers, ","),
			getEnv("KAFKA_GROUP_ID", "notifier"),
			[]string{kafka.TopicOrderPlaced, kafka.TopicNewsletterSubscribed},
		)
		if err != nil {
			log.Fatalf("Failed to connect to Kafka: %v", err)
		}
		defer consumer.Close()

		service.RegisterHandlers(consumer)

		go func() {
			if err := consumer.Start(ctx); err != nil {
				log.Fatalf("Kafka consumer stopped: %v", err)
			}
		}()
	}

	handler := notifierhttp.NewNotifierHandler(service)

	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	router.Handle("/metrics", promhttp.Handler())
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	port := getEnv("HTTP_PORT", "8082")
	server := &http.Server{
		Addr:    ":" + port,
		Handler: c.Handler(tracing.Middleware("notifier", router)),
	}

	go func() {
		log.Printf("🌐 Notifier server starting on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down notifier...")

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
