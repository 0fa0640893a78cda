package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pnl_tracker/internal/app/provider"
	"pnl_tracker/internal/app/service"
	"pnl_tracker/internal/client"
	"pnl_tracker/internal/infrastructure/configloader"
	networkdefinition "pnl_tracker/internal/infrastructure/network/definition"
	"pnl_tracker/internal/infrastructure/restapi"
	"pnl_tracker/internal/pkg/logger"
	"pnl_tracker/internal/pkg/metrics"

	"github.com/gin-gonic/gin"
	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultConfigPath = "config/config.yml"

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := configloader.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to load configuration from %s: %v\n", configPath, err)
		os.Exit(1)
	}

	zapLogger, err := newZapLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize zap logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()

	slogLevel, _ := logger.ParseLevel(cfg.Logging.Level)
	slogHandler := slogzap.Option{Level: slogLevel, Logger: zapLogger}.NewZapHandler()
	logger.SetLogger(slog.New(slogHandler))

	logger.Info("PnL tracker starting", "config", configPath, "log_level", cfg.Logging.Level)

	appLogger := logger.NewSlogAdapter()

	netDefProvider := networkdefinition.NewNetworkDefinitionProvider(appLogger)
	chain, err := netDefProvider.Resolve(cfg.Chain.Identifier)
	if err != nil {
		logger.Fatal("Failed to resolve configured chain", "error", err)
	}
	logger.Info("Chain resolved", "name", chain.Name, "chainID", chain.ChainIDHex(), "dexScreenerChainID", chain.DEXScreenerChainID)

	metrics.MustRegisterMetrics()

	moralisClient := client.NewMoralisClient(
		cfg.Moralis.BaseURL,
		cfg.Moralis.APIKey,
		time.Duration(cfg.Moralis.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
		cfg.Moralis.RateLimit,
		cfg.Moralis.BurstLimit,
	)
	dexscreenerClient := client.NewDEXScreenerClient(
		cfg.DEXScreener.BaseURL,
		time.Duration(cfg.DEXScreener.RequestTimeoutMillis)*time.Millisecond,
		zapLogger,
		cfg.DEXScreener.RateLimit,
		cfg.DEXScreener.BurstLimit,
	)

	feedProvider := provider.NewTransferFeedProvider(moralisClient, cfg.Moralis.PageLimit, cfg.Moralis.MaxPages, logger.With(appLogger, "component", "transfer_feed"))
	spotProvider := provider.NewSpotPriceProvider(dexscreenerClient, chain.DEXScreenerChainID, logger.With(appLogger, "component", "spot_price"))
	historicalProvider := provider.NewHistoricalPriceProvider(moralisClient, chain.ChainIDHex(), logger.With(appLogger, "component", "historical_price"))

	enricher := service.NewPriceEnricher(
		spotProvider,
		historicalProvider,
		cfg.DEXScreener.ChartBaseURL,
		chain.DEXScreenerChainID,
		cfg.Portfolio.MaxConcurrentRequests,
		cfg.Portfolio.DustThreshold,
		logger.With(appLogger, "component", "price_enricher"),
	)
	portfolioService := service.NewPortfolioService(feedProvider, enricher, chain, cfg, logger.With(appLogger, "component", "portfolio_service"))

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	portfolioHandler := restapi.NewPortfolioHandler(portfolioService, logger.With(appLogger, "component", "http"))
	router := restapi.SetupRouter(portfolioHandler, cfg, zapLogger)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", "address", srv.Addr, "swagger", cfg.Swagger.Enabled)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start HTTP server", "error", err)
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
	} else {
		logger.Info("HTTP server stopped")
	}
}

// newZapLogger builds a production JSON logger at the configured level, optionally also writing to a file.
func newZapLogger(cfg configloader.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.TimeKey = "ts"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg.File != "" {
		zapCfg.OutputPaths = append(zapCfg.OutputPaths, cfg.File)
	}
	return zapCfg.Build()
}
