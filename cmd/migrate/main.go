package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/semo-payment-gateway/internal/config"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/infrastructure/database"
	"github.com/wekeepgrowing/semo-payment-gateway/pkg/logger"
)

func main() {
	seed := flag.Bool("seed", false, "insert the test merchant after migrating")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	cfg.Log.Service = cfg.Service.Name + "-migrate"
	zapLogger, err := logger.NewZapLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	// Run migrations
	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	if *seed || cfg.Database.SeedTestMerchant {
		if err := database.SeedTestMerchant(db, zapLogger); err != nil {
			zapLogger.Fatal("Failed to seed test merchant", zap.Error(err))
		}
	}

	zapLogger.Info("Database ready",
		zap.String("database", cfg.Database.Name),
		zap.Bool("seeded", *seed || cfg.Database.SeedTestMerchant))
}
