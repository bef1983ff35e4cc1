package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scoutline/player-catalog-server/internal/api"
	"github.com/scoutline/player-catalog-server/internal/config"
	"github.com/scoutline/player-catalog-server/internal/httpclient"
	"github.com/scoutline/player-catalog-server/internal/logger"
	"github.com/scoutline/player-catalog-server/internal/provider"
	"github.com/scoutline/player-catalog-server/internal/service"
	"github.com/scoutline/player-catalog-server/internal/store"
	pkgsync "github.com/scoutline/player-catalog-server/internal/sync"
	"github.com/scoutline/player-catalog-server/internal/sync/coordinator"
	"github.com/scoutline/player-catalog-server/internal/telemetry"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the player catalog API server",
	Long: `Start the player catalog API server.

The server requires a configuration file (--config) that specifies:
- MongoDB connection settings
- The external data provider endpoint
- Optional background synchronization settings

See examples/ directory for sample configurations.`,
	RunE: runServe,
}

const (
	defaultGracefulTimeout = 30 * time.Second
	serverRequestTimeout   = 30 * time.Second // Sync requests fan out to the provider
	serverReadTimeout      = 10 * time.Second
	serverWriteTimeout     = 35 * time.Second // Must be > serverRequestTimeout to let middleware handle timeout
	serverIdleTimeout      = 60 * time.Second
)

func init() {
	serveCmd.Flags().String("address", "", "Address to listen on (overrides the configuration file)")
	serveCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")

	if err := viper.BindPFlag("address", serveCmd.Flags().Lookup("address")); err != nil {
		logger.Fatalf("Failed to bind address flag: %v", err)
	}
	if err := viper.BindPFlag("config", serveCmd.Flags().Lookup("config")); err != nil {
		logger.Fatalf("Failed to bind config flag: %v", err)
	}

	if err := serveCmd.MarkFlagRequired("config"); err != nil {
		logger.Fatalf("Failed to mark config flag as required: %v", err)
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	configPath := viper.GetString("config")
	cfg, err := config.NewConfigLoader().LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Logging != nil {
		logger.Initialize(logger.Options{
			Level:      cfg.Logging.Level,
			File:       cfg.Logging.File,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
		})
	}

	address := viper.GetString("address")
	if address == "" {
		address = cfg.Address
	}

	logger.Infof("Loaded configuration from %s (database: %s, provider: %s)",
		configPath, cfg.Database.Database, cfg.Provider.Endpoint)

	conn, err := store.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := conn.Close(context.Background()); err != nil {
			logger.Errorf("Failed to close database connection: %v", err)
		}
	}()

	playerStore := store.NewPlayerStore(conn)

	providerTimeout, err := cfg.Provider.ProviderTimeout()
	if err != nil {
		return err
	}
	providerClient := provider.NewHTTPProvider(
		httpclient.NewDefaultClient(providerTimeout), cfg.Provider.Endpoint)

	concurrency := 0
	if cfg.Sync != nil {
		concurrency = cfg.Sync.Concurrency
	}
	syncManager := pkgsync.NewManager(providerClient, playerStore, concurrency)

	metrics := telemetry.NewMetrics()

	// Start the background sync coordinator when sync is configured
	var syncCoordinator coordinator.Coordinator
	if cfg.Sync != nil {
		syncCoordinator = coordinator.New(syncManager, cfg.Sync, coordinator.WithMetrics(metrics))

		syncCtx, syncCancel := context.WithCancel(context.Background())
		defer syncCancel()

		go func() {
			if err := syncCoordinator.Start(syncCtx); err != nil {
				logger.Errorf("Sync coordinator failed: %v", err)
			}
		}()
	}

	svc := service.NewPlayerService(playerStore, syncManager)

	router := api.NewServer(svc,
		api.WithMiddlewares(
			middleware.RequestID,
			middleware.RealIP,
			middleware.Recoverer,
			middleware.Timeout(serverRequestTimeout),
			telemetry.Middleware(metrics),
			api.LoggingMiddleware,
		),
		api.WithMetricsHandler(metrics.Handler()),
	)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	go func() {
		logger.Infof("Server listening on %s", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Infof("Shutting down server...")

	if syncCoordinator != nil {
		if err := syncCoordinator.Stop(); err != nil {
			logger.Errorf("Failed to stop sync coordinator: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
		return err
	}

	logger.Infof("Server shutdown complete")
	return nil
}
