package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weedhaven-storefront/config"
	catalogStore "weedhaven-storefront/internal/adapter/catalog"
	httpHandler "weedhaven-storefront/internal/adapter/http/handler"
	"weedhaven-storefront/internal/adapter/ledger"
	"weedhaven-storefront/internal/adapter/processor"
	memStorage "weedhaven-storefront/internal/adapter/storage/memory"
	redisStorage "weedhaven-storefront/internal/adapter/storage/redis"
	"weedhaven-storefront/internal/adapter/wallet"
	"weedhaven-storefront/internal/core/ports"
	"weedhaven-storefront/internal/service"
	"weedhaven-storefront/pkg/logger"

	"github.com/shopspring/decimal"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("store", cfg.Store.Backend).
		Msg("Starting WeedHaven storefront")

	ctx := context.Background()

	serviceFee, err := decimal.NewFromString(cfg.Checkout.ServiceFee)
	if err != nil {
		log.Fatal().Err(err).Str("service_fee", cfg.Checkout.ServiceFee).Msg("Invalid service fee")
	}

	// Cart/session stores: in-memory by default, Redis when configured.
	var (
		cartStore      ports.CartStore
		sessionStore   ports.SessionStore
		healthCheckers []ports.HealthChecker
	)
	switch cfg.Store.Backend {
	case "redis":
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		cartStore = redisStorage.NewCartStore(rdb)
		sessionStore = redisStorage.NewSessionStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	case "memory", "":
		cartStore = memStorage.NewCartStore()
		sessionStore = memStorage.NewSessionStore()
	default:
		log.Fatal().Str("backend", cfg.Store.Backend).Msg("Unknown store backend")
	}

	// Seeded demo catalog
	catalog := catalogStore.NewMemory()

	// Optional collaborators: each one degrades gracefully when absent.
	var cardProcessor ports.CardProcessor
	if cfg.Processor.BaseURL != "" {
		cardProcessor = processor.NewClient(cfg.Processor)
		log.Info().Str("base_url", cfg.Processor.BaseURL).Msg("Card processor configured")
	} else {
		log.Warn().Msg("No card processor configured, card payments disabled")
	}

	var walletProvider ports.WalletProvider
	if cfg.Wallet.RPCURL != "" {
		provider, err := wallet.Dial(ctx, cfg.Wallet, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to wallet provider")
		}
		defer provider.Close()
		walletProvider = provider
	} else {
		log.Warn().Msg("No wallet provider configured, crypto payments disabled")
	}

	var settlementLedger ports.SettlementLedger
	if cfg.Ledger.BaseURL != "" {
		settlementLedger = ledger.NewClient(cfg.Ledger)
		log.Info().Str("base_url", cfg.Ledger.BaseURL).Msg("Settlement ledger configured")
	}

	// Core services
	tokenSvc := service.NewJWTTokenService(cfg.Session.Secret, cfg.Session.TTL, cfg.Session.Issuer)
	cartSvc := service.NewCartService(catalog, cartStore, serviceFee, cfg.Session.TTL, log)
	walletSvc := service.NewWalletService(walletProvider, sessionStore, cfg.Session.TTL, log)
	checkoutSvc := service.NewCheckoutService(
		cartSvc,
		sessionStore,
		catalog,
		cardProcessor,
		walletProvider,
		service.NewOneToOneOracle(),
		settlementLedger,
		log,
	)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Catalog:        catalog,
		CartSvc:        cartSvc,
		WalletSvc:      walletSvc,
		CheckoutSvc:    checkoutSvc,
		TokenSvc:       tokenSvc,
		HealthCheckers: healthCheckers,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
