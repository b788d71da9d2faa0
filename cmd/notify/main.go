// Command notify runs the calendar-triggered reminders, currently the
// evening-before trash-day notice. Scheduling is external; each invocation
// sends at most one message and exits.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"kakeibo/internal/backend"
	"kakeibo/internal/config"
	"kakeibo/internal/log"
	"kakeibo/internal/trash"
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

	messenger, cleanup, err := backend.NewMessenger(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize messenger", log.FieldError, err)
		os.Exit(1)
	}
	if cleanup != nil {
		defer cleanup()
	}

	msg := trash.DefaultSchedule().ReminderMessage(time.Now())
	if msg == "" {
		logger.InfoContext(ctx, "No trash collection tomorrow, nothing to send")
		return
	}
	if err := messenger.SendToAll(ctx, msg); err != nil {
		logger.ErrorContext(ctx, "Failed to send trash reminder", log.FieldError, err)
		os.Exit(1)
	}
	logger.InfoContext(ctx, "Trash reminder sent")
}
