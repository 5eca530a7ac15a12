package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-collection/internal/adapter"
	"github.com/feral-file/ff-collection/internal/api/middleware"
	"github.com/feral-file/ff-collection/internal/api/server"
	"github.com/feral-file/ff-collection/internal/config"
	"github.com/feral-file/ff-collection/internal/domain"
	"github.com/feral-file/ff-collection/internal/events"
	"github.com/feral-file/ff-collection/internal/logger"
	"github.com/feral-file/ff-collection/internal/service"
	"github.com/feral-file/ff-collection/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "collection-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Feral File Collection API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Run schema migrations
	if err := store.Migrate(db); err != nil {
		logger.FatalCtx(ctx, "Failed to migrate database schema", zap.Error(err))
	}

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	jcsAdapter := adapter.NewJCS()
	clock := adapter.NewClock()
	httpClient := adapter.NewHTTPClient(cfg.Webhook.HTTPTimeout)

	// Connect the event publisher (optional; skipped when no NATS URL is set)
	var publisher events.Publisher
	if cfg.NATS.URL != "" {
		publisher, err = events.NewPublisher(events.PublisherConfig{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			SubjectPrefix:  cfg.NATS.SubjectPrefix,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
			PublishRetries: cfg.NATS.PublishRetries,
		}, adapter.NewNatsJetStream(), jsonAdapter)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err))
		}
		defer publisher.Close()
		logger.InfoCtx(ctx, "Connected to NATS", zap.String("url", cfg.NATS.URL))
	} else {
		logger.WarnCtx(ctx, "NATS URL not configured, event publishing disabled")
	}

	// Create the event dispatcher (stream publishing + webhook deliveries)
	dispatcher := events.NewDispatcher(events.DispatcherConfig{
		PoolSize:        cfg.Webhook.PoolSize,
		DeliveryTimeout: cfg.Webhook.DeliveryTimeout,
	}, publisher, dataStore, httpClient, jsonAdapter, jcsAdapter, clock)
	defer dispatcher.Stop()

	// Create the collection service, restoring recorded state
	svc, err := service.New(ctx, service.Config{
		Name:               cfg.Collection.Name,
		Symbol:             cfg.Collection.Symbol,
		CollectionURI:      cfg.Collection.CollectionURI,
		RoyaltyBasisPoints: domain.BasisPoints(cfg.Collection.RoyaltyBasisPoints),
		Owner:              common.HexToAddress(cfg.Collection.OwnerAddress),
		Address:            common.HexToAddress(cfg.Collection.Address),
	}, dataStore, dispatcher, nil, clock)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create collection service", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Collection service ready",
		zap.String("name", cfg.Collection.Name),
		zap.Uint64("total_minted", svc.Collection().TotalMinted()),
	)

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
	}

	// Create and start server. No ERC-20 token client is wired here; the
	// corresponding withdrawal endpoint reports itself unavailable.
	srv := server.New(serverConfig, svc, nil)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	// Shutdown server
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
