package main

import (
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/trendscope/star-trends/internal/aggregator"
	"github.com/trendscope/star-trends/internal/api"
	"github.com/trendscope/star-trends/internal/config"
	"github.com/trendscope/star-trends/internal/storage"
	"github.com/trendscope/star-trends/internal/storage/mongo"
	"github.com/trendscope/star-trends/internal/storage/postgres"
	"github.com/trendscope/star-trends/internal/storage/sqlite"
)

func main() {
	logger, err := zap.NewProductionConfig().Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	// Initialize storage
	store, err := openStorage(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage",
			zap.String("storage_type", cfg.StorageType),
			zap.Error(err))
	}
	defer store.Close()

	// Initialize aggregator
	agg := aggregator.NewAggregator(store, logger)

	// Session gate: tokens live in process memory and die with it.
	sessions := api.NewSessionStore(cfg.DashboardPassword,
		time.Duration(cfg.SessionTTLMinutes)*time.Minute)

	// Initialize handler
	handler := api.NewHandler(agg, sessions)

	// Setup routes
	router := api.SetupRoutes(handler, logger)

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	logger.Info("starting API server",
		zap.String("addr", addr),
		zap.String("storage_type", cfg.StorageType))

	if err := router.Run(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func openStorage(cfg *config.Config, logger *zap.Logger) (storage.Storage, error) {
	switch cfg.StorageType {
	case "postgres":
		return postgres.NewPostgresStorage(cfg.PostgresURL)
	case "sqlite":
		return sqlite.NewSQLiteStorage(cfg.SQLitePath)
	default:
		return mongo.NewMongoStorage(cfg.MongoURI, cfg.MongoDatabase, logger)
	}
}
