// Command relay drains the notification queue and delivers each message
// through LINE. It only exists for deployments where the batch publishes to
// AMQP instead of talking to LINE directly; with the line messenger backend
// there is no queue to drain.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"kakeibo/internal/config"
	"kakeibo/internal/log"
	"kakeibo/internal/messaging/amqp"
	"kakeibo/internal/messaging/line"
)

func main() {
	_ = godotenv.Load()

	logger := log.New(log.Config{Level: slog.LevelInfo})
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	queue, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", log.FieldError, err)
		os.Exit(1)
	}
	defer queue.Close()

	lineClient, err := line.NewFromEnv()
	if err != nil {
		logger.Error("Failed to initialize LINE client", log.FieldError, err)
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Relay consuming notifications",
		"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)

	err = queue.Consume(ctx, func(msg *amqp.NotificationMessage) error {
		switch msg.Kind {
		case amqp.KindBroadcast:
			return lineClient.SendToAll(ctx, msg.Text)
		case amqp.KindTemplate:
			return lineClient.SendTemplate(ctx, msg.ReplyToken, msg.AltText, msg.Template)
		default:
			// Ack and drop; requeueing an unknown kind would loop forever.
			logger.WarnContext(ctx, "Dropping notification of unknown kind", "kind", msg.Kind)
			return nil
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Relay stopped", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Relay shut down")
}
