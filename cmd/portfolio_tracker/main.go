package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"

	"portfolio_tracker/internal/app/service"
	"portfolio_tracker/internal/infrastructure/assetregistry"
	"portfolio_tracker/internal/infrastructure/chainadapter"
	"portfolio_tracker/internal/infrastructure/configloader"
	"portfolio_tracker/internal/infrastructure/connectivity"
	"portfolio_tracker/internal/infrastructure/marketdata"
	"portfolio_tracker/internal/infrastructure/restapi"
	"portfolio_tracker/internal/pkg/logger"
)

const defaultConfigPath = "config/config.yml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := configloader.Load(defaultConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level)
	appLogger := logger.NewSlogAdapter()
	logger.Info("Configuration loaded", "chains", len(cfg.Chains))

	zapLogger, err := zap.NewProduction()
	if err != nil {
		logger.Fatal("Failed to initialize zap logger", "error", err)
	}
	defer zapLogger.Sync()

	registry := assetregistry.New(logrus.New())
	if err := registry.LoadDir(cfg.Registry.Dir); err != nil {
		logger.Fatal("Failed to load asset registry", "dir", cfg.Registry.Dir, "error", err)
	}

	priceClient := marketdata.NewPriceClient(
		cfg.MarketData.BaseURL,
		time.Duration(cfg.MarketData.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
		cfg.MarketData.MaxAssetsPerRequest,
	)
	marketService := marketdata.NewService(
		priceClient,
		time.Duration(cfg.MarketData.CacheTTLMinutes)*time.Minute,
		cfg.MarketData.RequestsPerSecond,
		cfg.MarketData.MaxAssetsPerRequest,
		appLogger,
	)

	adapterProvider := chainadapter.NewProvider(cfg, registry, appLogger)
	store := service.NewPortfolioStore()
	metrics := restapi.NewMetrics(prometheus.DefaultRegisterer)

	portfolioService := service.NewPortfolioService(
		adapterProvider,
		registry,
		marketService,
		store,
		appLogger,
		metrics,
		cfg.TrackedKeys(),
		cfg.Performance.MaxConcurrentRoutines,
	)
	valuationService := service.NewValuationService(store, marketService, registry, appLogger)
	walletSession := service.NewWalletSession(portfolioService, appLogger)

	// Initial fetch runs in the background so the API comes up immediately.
	go func() {
		if _, fetchErrs := portfolioService.RefetchTracked(ctx); len(fetchErrs) > 0 {
			logger.Warn("Initial portfolio fetch finished with errors", "failed_accounts", len(fetchErrs))
		}
	}()

	if cfg.Connectivity.ProbeURL != "" {
		watcher := connectivity.NewWatcher(
			cfg.Connectivity.ProbeURL,
			time.Duration(cfg.Connectivity.IntervalSeconds)*time.Second,
			func(ctx context.Context) { portfolioService.RefetchTracked(ctx) },
			appLogger,
		)
		go watcher.Run(ctx)
	}

	portfolioHandler := restapi.NewPortfolioHandler(portfolioService, valuationService, appLogger)
	actionHandler := restapi.NewActionHandler(walletSession, metrics, appLogger)
	walletHandler := restapi.NewWalletHandler(walletSession)
	router := restapi.SetupRouter(portfolioHandler, actionHandler, walletHandler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info("HTTP server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", "error", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	<-signalChan

	logger.Info("Shutdown signal received, stopping HTTP server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}

	cancel()
	logger.Info("Portfolio tracker stopped")
}
