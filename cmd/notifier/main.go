package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gambit/admin-api/internal/domain"
	"github.com/gambit/admin-api/internal/infra"
)

// notifier consumes published notification events from Kafka and fans them out
// to connected delivery clients through the push hub. Push-provider
// integration (APNs/FCM) hangs off the same hub rooms.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("notifier failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	target := "all"
	if t := os.Getenv("NOTIFIER_TARGET"); t != "" {
		target = t
	}

	consumer := infra.NewNotificationConsumer(cfg.KafkaBrokers, target, "gambit-notifier", cfg.KafkaEnabled, logger)
	defer consumer.Close()

	hub := infra.NewPushHub(logger)
	defer hub.Shutdown(context.Background())

	if !cfg.KafkaEnabled {
		logger.Info("kafka disabled, notifier idle")
		<-ctx.Done()
		return nil
	}

	logger.Info("notifier starting", "topic", infra.NotificationTopic(target))

	for {
		msg, err := consumer.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("notifier shutting down")
				return nil
			}
			logger.Error("read message", "error", err)
			continue
		}
		handleEvent(logger, hub, msg.Value)
	}
}

func handleEvent(logger *slog.Logger, hub *infra.PushHub, value []byte) {
	var n domain.Notification
	if err := json.Unmarshal(value, &n); err != nil {
		logger.Error("decode notification", "error", err)
		return
	}

	if n.TargetType == "user" && n.TargetUserID != nil {
		hub.BroadcastToUser(*n.TargetUserID, "notification", n)
	} else {
		hub.Broadcast(n.TargetType, "notification", n)
	}

	logger.Info("delivering notification",
		"notification_id", n.ID,
		"title", n.Title,
		"target_type", n.TargetType,
		"target_user_id", n.TargetUserID,
	)
}
