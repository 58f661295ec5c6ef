package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/smsplatform/payments-service/internal/config"
	"github.com/smsplatform/payments-service/internal/database"
	"github.com/smsplatform/payments-service/internal/handlers"
	mW "github.com/smsplatform/payments-service/internal/middleware"
	"github.com/smsplatform/payments-service/internal/services"
)

// @title Subscription Payments Service API
// @version 1.0
// @description Records payment transactions against bank accounts and registers them with the subscription system
// @host localhost:8080
// @BasePath /

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	// Initialize config
	viper.SetConfigFile(".env") // explicitly point to .env file
	viper.AutomaticEnv()        // allow environment variables to override .env

	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.name", "DATABASE_NAME")
	viper.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")
	viper.BindEnv("subscription.service.url", "SUBSCRIPTION_SERVICE_URL")
	viper.BindEnv("subscription.timeout", "SUBSCRIPTION_TIMEOUT")
	viper.BindEnv("service.actor", "SERVICE_ACTOR")
	viper.BindEnv("events.queue_key", "EVENTS_QUEUE_KEY")

	if err := viper.ReadInConfig(); err != nil {
		zap.S().Infof("Config file not found, using defaults: %v", err)
	}

	cfg := config.Load()

	// Initialize services
	db := database.InitDatabase()
	defer db.Close()

	redisClient := database.InitRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}

	notifier := services.NewSubscriptionService(cfg.SubscriptionServiceURL, cfg.SubscriptionTimeout)
	paymentService := services.NewPaymentService(db, redisClient, notifier, cfg)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	// Metrics
	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	// Payment routes
	r.Route("/payment", func(r chi.Router) {
		// Token check is only enforced when a secret is configured.
		if viper.GetString("jwt.secret_key") != "" {
			r.Use(mW.AuthMiddleware)
		}

		r.Post("/transaction", paymentHandler.AddPaymentTransaction)
		r.Post("/add", paymentHandler.AddPaymentTransaction)
		r.Get("/transaction/{id}", paymentHandler.GetTransaction)
		r.Get("/transactions", paymentHandler.ListTransactions)
		r.Get("/bank/{id}/balance", paymentHandler.GetBankBalance)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Start server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		zap.S().Infof("Server starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zap.S().Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zap.S().Info("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zap.S().Fatalf("Server forced to shutdown: %v", err)
	}

	zap.S().Info("Server stopped")
}
