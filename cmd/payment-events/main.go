package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/semo-payment-gateway/internal/config"
	"github.com/wekeepgrowing/semo-payment-gateway/internal/infrastructure/events"
	"github.com/wekeepgrowing/semo-payment-gateway/pkg/logger"
	"github.com/wekeepgrowing/semo-payment-gateway/pkg/messaging"
)

// payment-events tails the payments.* channels and logs each settled payment
func main() {
	pattern := flag.String("channel", events.ChannelPrefix+"*", "channel pattern to subscribe to")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	cfg.Log.Service = cfg.Service.Name + "-events"
	zapLogger, err := logger.NewZapLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	redisClient, err := messaging.Dial(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	client := messaging.NewRedisClient(redisClient)
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	messages, err := client.Subscribe(ctx, *pattern)
	if err != nil {
		zapLogger.Fatal("Failed to subscribe", zap.String("channel", *pattern), zap.Error(err))
	}
	zapLogger.Info("Listening for payment events", zap.String("channel", *pattern))

	for msg := range messages {
		var event events.PaymentEvent
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			zapLogger.Warn("Skipping malformed event",
				zap.String("channel", msg.Channel),
				zap.Error(err))
			continue
		}

		fields := []zap.Field{
			zap.String("channel", msg.Channel),
			zap.String("payment_id", event.PaymentID),
			zap.String("order_id", event.OrderID),
			zap.String("merchant_id", event.MerchantID),
			zap.Int64("amount", event.Amount),
			zap.String("currency", event.Currency),
			zap.String("method", string(event.Method)),
			zap.String("status", string(event.Status)),
		}
		if event.ErrorCode != nil {
			fields = append(fields, zap.String("error_code", *event.ErrorCode))
		}
		zapLogger.Info("Payment settled", fields...)
	}

	zapLogger.Info("Event listener stopped")
}
