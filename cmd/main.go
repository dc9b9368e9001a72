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

	"github.com/Dosada05/gaming-portal/brackets"
	"github.com/Dosada05/gaming-portal/config"
	"github.com/Dosada05/gaming-portal/db"
	"github.com/Dosada05/gaming-portal/handlers"
	"github.com/Dosada05/gaming-portal/repositories"
	"github.com/Dosada05/gaming-portal/routes"
	"github.com/Dosada05/gaming-portal/services"
	"github.com/Dosada05/gaming-portal/storage"
)

const (
	dbConnectTimeout = 5 * time.Second
	shutdownTimeout  = 15 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	logger.Info("configuration loaded",
		slog.Int("port", cfg.ServerPort),
		slog.String("storage_backend", cfg.StorageBackend),
	)

	if err := run(cfg, logger); err != nil {
		logger.Error("application failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("application exited")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kv, err := openKVStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := kv.Close(); err != nil {
			logger.Error("failed to close storage", slog.Any("error", err))
		} else {
			logger.Info("storage closed")
		}
	}()

	snapshots := repositories.NewKVSnapshotRepository(kv, repositories.KVSnapshotRepositoryConfig{
		Prefix: cfg.KVPrefix,
	})
	store := services.NewStore(snapshots, logger)
	if err := store.Load(ctx); err != nil {
		return fmt.Errorf("failed to load portal state: %w", err)
	}
	logger.Info("portal state loaded")

	credentials, err := services.NewCredentialPolicy(cfg.CredentialPolicy)
	if err != nil {
		return err
	}

	if cfg.SeedDefaults {
		seeded, err := services.SeedDefaults(ctx, store, credentials, time.Now(), logger)
		if err != nil {
			return fmt.Errorf("failed to seed default data: %w", err)
		}
		if seeded {
			logger.Info("default data seeded")
		}
	}

	wsHub := brackets.NewHub(logger)
	go wsHub.Run(ctx)
	logger.Info("WebSocket Hub started")

	arbiter := services.NewSingleReportArbiter()
	if cfg.ResultArbiter == "confirmation" {
		arbiter = services.NewConfirmationArbiter()
	}

	notificationService := services.NewNotificationService(wsHub, logger)
	rankingService := services.NewRankingService(store, notificationService, logger)
	authService := services.NewAuthService(store, credentials, logger)
	userService := services.NewUserService(store, credentials, logger)
	eventService := services.NewEventService(store, brackets.NewThreeVThreeGenerator(), notificationService, logger)
	matchService := services.NewMatchService(store, arbiter, rankingService, notificationService, logger)
	adminService := services.NewAdminService(store, credentials, notificationService, logger)
	dashboardService := services.NewDashboardService(store)
	logger.Info("Services initialized", slog.String("arbiter", arbiter.Name()))

	if err := rankingService.RebuildRankings(ctx); err != nil {
		return fmt.Errorf("failed to rebuild rankings: %w", err)
	}

	scheduler := services.NewTickScheduler(eventService, cfg.TickInterval, logger)
	if err := scheduler.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := scheduler.Stop(); err != nil {
			logger.Error("failed to stop scheduler", slog.Any("error", err))
		}
	}()

	router := routes.SetupRoutes(routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService, cfg.JWTSecret, cfg.JWTTTL),
		User:      handlers.NewUserHandler(userService, eventService, notificationService),
		Event:     handlers.NewEventHandler(eventService),
		Match:     handlers.NewMatchHandler(matchService),
		Ranking:   handlers.NewRankingHandler(rankingService),
		Admin:     handlers.NewAdminHandler(adminService, rankingService, eventService),
		Dashboard: handlers.NewDashboardHandler(dashboardService),
		WebSocket: handlers.NewWebSocketHandler(wsHub, cfg.CORSAllowedOrigins, logger),
	}, routes.Config{
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		RequestTimeout: 30 * time.Second,
	})
	logger.Info("Routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		logger.Info("server stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	logger.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("failed to force close server", slog.Any("error", closeErr))
		}
		return err
	}
	logger.Info("server shutdown complete")
	return nil
}

// openKVStore connects the configured storage backend.
func openKVStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.KVStore, error) {
	switch cfg.StorageBackend {
	case config.BackendMemory:
		logger.Warn("using in-memory storage, state is lost on restart")
		return storage.NewMemoryStore(), nil

	case config.BackendSQLite:
		conn, err := db.OpenSQLite(cfg.SQLitePath, dbConnectTimeout)
		if err != nil {
			return nil, err
		}
		kv, err := storage.NewSQLiteStore(ctx, conn)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		logger.Info("sqlite storage opened", slog.String("path", cfg.SQLitePath))
		return kv, nil

	case config.BackendPostgres:
		conn, err := db.Connect(cfg.DatabaseURL, dbConnectTimeout)
		if err != nil {
			return nil, err
		}
		kv, err := storage.NewPostgresStore(ctx, conn)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}
		logger.Info("database connection established")
		return kv, nil

	case config.BackendRedis:
		kv, err := storage.NewRedisStore(ctx, storage.RedisStoreConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("redis storage connected", slog.String("addr", cfg.RedisAddr))
		return kv, nil

	case config.BackendR2:
		kv, err := storage.NewCloudflareR2Store(ctx, storage.CloudflareR2StoreConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("Cloudflare R2 storage initialized", slog.String("bucket", cfg.R2BucketName))
		return kv, nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}
