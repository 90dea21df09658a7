package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wekeepgrowing/semo-payment-gateway/internal/config"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/infrastructure/cache"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/infrastructure/database"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/infrastructure/events"
	grpcServer "github.com/wekeepgrowing/semo-payment-gateway/internal/infrastructure/grpc"
	httpServer "github.com/wekeepgrowing/semo-payment-gateway/internal/infrastructure/http"
	"github.com/wekeepgrowing/semo-payment-gateway/pkg/logger"
	"github.com/wekeepgrowing/semo-payment-gateway/pkg/messaging"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	cfg.Log.Service = cfg.Service.Name
	zapLogger, err := logger.NewZapLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting payment gateway",
		zap.String("environment", cfg.Service.Environment),
		zap.String("version", cfg.Service.Version),
		zap.Bool("test_mode", cfg.Simulation.TestMode),
	)

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

	// Run database migrations
	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	if cfg.Database.SeedTestMerchant || cfg.Service.EnableTestEndpoints {
		if err := database.SeedTestMerchant(db, zapLogger); err != nil {
			zapLogger.Fatal("Failed to seed test merchant", zap.Error(err))
		}
	}

	// Initialize repositories
	repos := database.NewRepositories(db, zapLogger)
	deps := httpServer.Dependencies{Repos: repos}

	// Optional Redis order cache and payment events
	if cfg.Redis.Enabled {
		redisClient, err := messaging.Dial(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func(client *redis.Client) {
			if err := client.Close(); err != nil {
				zapLogger.Error("Failed to close Redis connection", zap.Error(err))
			}
		}(redisClient)

		deps.Cache = cache.NewRedisRepository(redisClient, zapLogger)
		if cfg.Redis.PublishEvents {
			deps.Publisher = events.NewPublisher(messaging.NewRedisClient(redisClient), zapLogger)
		}
		zapLogger.Info("Redis enabled",
			zap.String("addr", cfg.Redis.Addr),
			zap.Bool("publish_events", cfg.Redis.PublishEvents))
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize servers
	grpcSrv := grpcServer.NewServer(cfg, zapLogger, repos.Merchant)
	httpSrv := httpServer.NewServer(cfg, zapLogger, deps)

	// Start servers
	go grpcSrv.MonitorDatabase(ctx)

	go func() {
		if err := grpcSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start gRPC server", zap.Error(err))
		}
	}()

	go func() {
		if err := httpSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down servers...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	// Shutdown servers
	if err := grpcSrv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shutdown gRPC server", zap.Error(err))
	}

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Servers shut down successfully")
}
