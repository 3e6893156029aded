// Package main is the entry point for the FleetRent API server.
// FleetRent is a multi-tenant vehicle rental back office: vehicles,
// customers and rental agreements, isolated per account.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/fleetrent/fleetrent/internal/cache/memory"
	rediscache "github.com/fleetrent/fleetrent/internal/cache/redis"
	"github.com/fleetrent/fleetrent/internal/config"
	"github.com/fleetrent/fleetrent/internal/handler"
	"github.com/fleetrent/fleetrent/internal/metrics"
	"github.com/fleetrent/fleetrent/internal/repository"
	"github.com/fleetrent/fleetrent/internal/repository/postgres"
	"github.com/fleetrent/fleetrent/internal/repository/sqlite"
	"github.com/fleetrent/fleetrent/internal/service"
	"github.com/fleetrent/fleetrent/internal/storage"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	log.Logger = logger

	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("starting FleetRent server")

	if err := run(cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(cfg *config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Database
	repos, db, err := openDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	// Token cache
	cache, closeCache, err := openCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	// Image store
	images, err := openImageStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	// Services
	userService := service.NewUserService(repos.User, logger)
	tokenService := service.NewTokenService(repos.Token, repos.User, userService, cache, logger)
	vehicleService := service.NewVehicleService(repos.Vehicle, repos.Agreement, images, logger)
	customerService := service.NewCustomerService(repos.Customer, repos.Agreement, logger)
	agreementService := service.NewAgreementService(repos.Agreement, repos.Customer, repos.Vehicle, logger)

	// Metrics
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	// HTTP handler
	router := handler.NewRouter(handler.RouterConfig{
		UserHandler:      handler.NewUserHandler(userService, tokenService, logger),
		VehicleHandler:   handler.NewVehicleHandler(vehicleService, logger),
		CustomerHandler:  handler.NewCustomerHandler(customerService, logger),
		AgreementHandler: handler.NewAgreementHandler(agreementService, logger),
		TokenValidator:   tokenService,
		Database:         db,
		Metrics:          m,
		Logger:           logger,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info().Msg("server stopped")
	return nil
}

// openDatabase connects to the configured backend, runs migrations and
// builds the repository set.
func openDatabase(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*repository.Repositories, repository.DatabaseHealth, error) {
	if cfg.Database.IsEmbedded() {
		dbCfg := sqlite.DefaultConfig(cfg.Database.Path)
		dbCfg.JournalMode = cfg.Database.JournalMode
		dbCfg.BusyTimeout = cfg.Database.BusyTimeout

		db, err := sqlite.NewDB(ctx, dbCfg, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return sqlite.NewRepositories(db), db, nil
	}

	db, err := postgres.NewDB(ctx, postgres.Config{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		Database:     cfg.Database.Database,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxOpenConns / 5,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, nil, err
	}
	return postgres.NewRepositories(db), db, nil
}

// openCache returns the token cache: Redis when enabled, otherwise the
// in-process cache.
func openCache(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.Cache, func(), error) {
	if cfg.Redis.Enabled {
		cache, err := rediscache.NewCache(ctx, rediscache.Config{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info().Str("addr", cfg.Redis.Addr()).Msg("using Redis token cache")
		return cache, func() { cache.Close() }, nil
	}

	cache := memory.NewCache()
	logger.Info().Msg("using in-memory token cache")
	return cache, cache.Stop, nil
}

// openImageStore returns the configured image storage backend.
func openImageStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (storage.ImageStore, error) {
	switch cfg.Storage.Backend {
	case "s3":
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Endpoint:        cfg.Storage.S3.Endpoint,
			Region:          cfg.Storage.S3.Region,
			Bucket:          cfg.Storage.S3.Bucket,
			AccessKeyID:     cfg.Storage.S3.AccessKeyID,
			SecretAccessKey: cfg.Storage.S3.SecretAccessKey,
			UsePathStyle:    cfg.Storage.S3.UsePathStyle,
		})
		if err != nil {
			return nil, err
		}
		logger.Info().Str("bucket", cfg.Storage.S3.Bucket).Msg("using S3 image store")
		return store, nil
	default:
		store, err := storage.NewFSStore(cfg.Storage.MediaDir)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("media_dir", cfg.Storage.MediaDir).Msg("using filesystem image store")
		return store, nil
	}
}

// newLogger builds the process logger from config.
func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	zerolog.TimeFieldFormat = cfg.TimeFormat

	var logger zerolog.Logger
	if cfg.Format == "console" {
		logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	return logger.Level(level)
}
