package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aaravmahajanofficial/storefront/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront/internal/cache"
	"github.com/aaravmahajanofficial/storefront/internal/config"
	"github.com/aaravmahajanofficial/storefront/internal/events"
	"github.com/aaravmahajanofficial/storefront/internal/health"
	repository "github.com/aaravmahajanofficial/storefront/internal/repositories"
	service "github.com/aaravmahajanofficial/storefront/internal/services"
	"github.com/aaravmahajanofficial/storefront/internal/telemetry"
	"github.com/aaravmahajanofficial/storefront/internal/tracking"
	"github.com/aaravmahajanofficial/storefront/pkg/sendgrid"
)

func main() {

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.MustLoad()

	ctx := context.Background()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Otel, cfg.Env)
	if err != nil {
		slog.Error("❌ Error initializing tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	if err := repository.Migrate(ctx, db); err != nil {
		slog.Error("❌ Error applying schema", slog.String("error", err.Error()))
		os.Exit(1)
	}

	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer redisClient.Close()

	publisher := events.NewKafkaPublisher(cfg.Kafka)
	defer publisher.Close()

	// an untyped nil keeps notifications disabled when no API key is configured
	var emailService sendgrid.EmailService
	if cfg.SendGrid.APIKey != "" {
		emailService = sendgrid.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	} else {
		slog.Warn("SendGrid API key not set, order emails are disabled")
	}

	store := repository.NewStore(db, cfg.Checkout.TxTimeout)
	productCache := cache.NewRedisCache(redisClient, cfg.Cache)
	rateLimiter := repository.NewRateLimitRepo(redisClient, cfg.RateConfig)

	notificationService := service.NewNotificationService(store, emailService)
	userService := service.NewUserService(store, rateLimiter, cfg.Security)
	productService := service.NewProductService(store, productCache)
	cartService := service.NewCartService(store)
	addressService := service.NewAddressService(store)
	checkoutService := service.NewCheckoutService(store, tracking.NewRandomGenerator(cfg.Checkout.TrackingNumberLength), publisher, notificationService, cfg.Checkout)
	orderService := service.NewOrderService(store)
	adminOrderService := service.NewAdminOrderService(store, notificationService)

	healthChecker, err := health.NewHealthHandler(cfg, &health.Endpoints{DB: db})
	if err != nil {
		slog.Error("❌ Error creating health checks", slog.String("error", err.Error()))
		os.Exit(1)
	}

	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	handler := newRouter(routeHandlers{
		user:     handlers.NewUserHandler(userService),
		product:  handlers.NewProductHandler(productService),
		cart:     handlers.NewCartHandler(cartService),
		address:  handlers.NewAddressHandler(addressService),
		checkout: handlers.NewCheckoutHandler(checkoutService),
		order:    handlers.NewOrderHandler(orderService),
		admin:    handlers.NewAdminHandler(adminOrderService, productService),
		health:   healthChecker.Handler(),
	}, authMiddleware, cfg.Otel.ServiceName)

	slog.Info("Dependencies initialized", slog.String("env", cfg.Env))

	server := http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("❌ Failed to start server", slog.Any("error", err))
			done <- syscall.SIGTERM
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := shutdownTracer(shutdownCtx); err != nil {
		slog.Error("⚠️ Tracer shutdown failed", slog.String("error", err.Error()))
	}

}
