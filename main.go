package main

import (
	"context"
	"errors"
	"metrics_demo_server/api"
	"metrics_demo_server/config"
	"metrics_demo_server/database"
	"metrics_demo_server/metrics"
	"metrics_demo_server/services"
	"metrics_demo_server/structs"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

func main() {
	envErr := godotenv.Load()

	cfg := config.GetConfig()
	logger := config.InitializeLogger(cfg)

	if envErr != nil {
		logger.Warn("No .env file found or error loading .env file, proceeding with system environment variables")
	}

	instanceID := uuid.NewString()
	registry := metrics.NewRegistry(metrics.Options{
		AppName:           cfg.Server.AppName,
		Environment:       cfg.Server.Environment,
		InstanceID:        instanceID,
		RuntimeCollectors: cfg.Metrics.RuntimeCollectors,
	})

	db := openDatabase(cfg, logger, registry)
	cache := openCache(cfg, logger)

	svc := services.NewServiceManager(logger, db, cache)

	srv := &http.Server{
		Addr:           cfg.Server.Port,
		Handler:        api.App(cfg, registry, svc),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting server",
			gecho.Field("app", cfg.Server.AppName),
			gecho.Field("addr", cfg.Server.Port),
			gecho.Field("instance_id", instanceID),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server", gecho.Field("timeout", cfg.Server.ShutdownTimeout.String()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err := g.Wait()

	if cache != nil {
		_ = cache.Close()
	}
	if db != nil {
		if closeErr := db.Close(); closeErr != nil {
			logger.Warn("Failed to close database", gecho.Field("error", closeErr))
		}
	}

	if err != nil {
		logger.Fatal("Server stopped with error", gecho.Field("error", err))
	}
	logger.Info("Server stopped")
}

func openDatabase(cfg *structs.Config, logger *gecho.Logger, registry *metrics.Registry) *database.DB {
	if !cfg.Database.Enabled {
		return nil
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", gecho.Field("error", err))
	}

	if err := registry.Register(collectors.NewDBStatsCollector(db.SQLDB(), cfg.Database.Name)); err != nil {
		logger.Warn("Failed to register database pool metrics", gecho.Field("error", err))
	}

	logger.Info("Database probe enabled", gecho.Field("host", cfg.Database.Host), gecho.Field("name", cfg.Database.Name))
	return db
}

func openCache(cfg *structs.Config, logger *gecho.Logger) *services.CacheService {
	if !cfg.Cache.Enabled {
		return nil
	}

	logger.Info("Cache probe enabled", gecho.Field("address", cfg.Cache.Address))
	return services.NewCacheService(logger, services.NewRedisClient(cfg.Cache))
}
