// Command webhook serves the LINE webhook: it verifies request signatures,
// parses reported commands, and appends the resulting rows through the
// repositories. The settlement engine never depends on this surface; it
// only reads what this process writes.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/line/line-bot-sdk-go/v7/linebot"

	"kakeibo/internal/backend"
	"kakeibo/internal/config"
	"kakeibo/internal/log"
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

	st, cleanup, err := backend.NewStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize store", log.FieldError, err)
		os.Exit(1)
	}
	if cleanup != nil {
		defer cleanup()
	}

	lineClient, err := line.NewFromEnv()
	if err != nil {
		logger.Error("Failed to initialize LINE client", log.FieldError, err)
		os.Exit(1)
	}

	router := newRouter(st, cfg, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/webhook", func(w http.ResponseWriter, r *http.Request) {
		events, err := lineClient.Bot().ParseRequest(r)
		if err != nil {
			if errors.Is(err, linebot.ErrInvalidSignature) {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			logger.ErrorContext(r.Context(), "Failed to parse webhook", log.FieldError, err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		for _, event := range events {
			if event.Type != linebot.EventTypeMessage {
				continue
			}
			msg, ok := event.Message.(*linebot.TextMessage)
			if !ok {
				continue
			}
			reply := router.Handle(r.Context(), msg.Text)
			if reply == "" {
				continue
			}
			if err := lineClient.ReplyText(r.Context(), event.ReplyToken, reply); err != nil {
				logger.ErrorContext(r.Context(), "Failed to reply", log.FieldError, err)
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed", log.FieldError, err)
		}
	}()

	logger.InfoContext(ctx, "Webhook server listening", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server failed", log.FieldError, err)
		os.Exit(1)
	}
}
