package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shopfront/internal/config"
	"shopfront/internal/database"
	"shopfront/internal/handler"
	"shopfront/internal/notify"
	"shopfront/internal/payment"
	"shopfront/internal/region"
	"shopfront/internal/repository"
	"shopfront/internal/router"
	"shopfront/internal/service"
	"shopfront/internal/session"
	"shopfront/internal/telemetry"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting shopfront API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional tracing
	if cfg.Telemetry.Enabled {
		shutdownTracing, err := telemetry.Init(ctx, "shopfront", cfg.Telemetry.Endpoint, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize tracing: %w", err)
		}
		defer func() {
			flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer flushCancel()
			if err := shutdownTracing(flushCtx); err != nil {
				logger.Warn().Err(err).Msg("failed to flush traces")
			}
		}()
	}

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize session store
	sessions, err := session.NewRedisStore(ctx, cfg.Redis.URL, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	defer sessions.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	regionRepo := repository.NewRegionRepository(pool, logger)
	couponRepo := repository.NewCouponRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	paymentRepo := repository.NewPaymentRepository(pool, logger)
	reviewRepo := repository.NewReviewRepository(pool, logger)
	wishlistRepo := repository.NewWishlistRepository(pool, logger)
	engagementRepo := repository.NewEngagementRepository(pool, logger)

	// Seed static shipping regions
	if err := region.Seed(ctx, cfg.Seed.RegionsFile, regionRepo, logger); err != nil {
		return fmt.Errorf("failed to seed shipping regions: %w", err)
	}

	// External collaborators
	gateway := payment.NewStripeGateway(cfg.Stripe.APIKey, cfg.Stripe.WebhookSecret, logger)
	var notifier notify.Notifier = notify.Nop{}
	if cfg.WhatsApp.Enabled {
		notifier = notify.NewWhatsApp(cfg.WhatsApp.Token, cfg.WhatsApp.PhoneNumberID, logger)
	}

	// Initialize services
	userService := service.NewUserService(userRepo, sessions, logger)
	productService := service.NewProductService(productRepo, logger)
	cartService := service.NewCartService(cartRepo, productRepo, logger)
	couponService := service.NewCouponService(couponRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, cartRepo, regionRepo, couponService, notifier, logger)
	checkoutService := service.NewCheckoutService(paymentRepo, orderRepo, gateway, logger)
	engagementService := service.NewEngagementService(reviewRepo, wishlistRepo, engagementRepo, productRepo, orderRepo, logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(userService, logger),
		Product:    handler.NewProductHandler(productService, engagementService, logger),
		Cart:       handler.NewCartHandler(cartService, logger),
		Order:      handler.NewOrderHandler(orderService, engagementService, logger),
		Coupon:     handler.NewCouponHandler(couponService, logger),
		Checkout:   handler.NewCheckoutHandler(checkoutService, logger),
		Engagement: handler.NewEngagementHandler(engagementService, logger),
	}

	// Initialize router
	mux := router.New(handlers, sessions, userRepo, logger)
	if cfg.Telemetry.Enabled {
		mux = otelhttp.NewHandler(mux, "shopfront")
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
