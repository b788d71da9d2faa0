// Package backend wires concrete store and messenger implementations from
// configuration. The engine itself only ever sees the ports.
package backend

import (
	"context"
	"fmt"

	"kakeibo/internal/config"
	"kakeibo/internal/log"
	"kakeibo/internal/messaging"
	msgamqp "kakeibo/internal/messaging/amqp"
	"kakeibo/internal/messaging/line"
	"kakeibo/internal/store"
	"kakeibo/internal/store/google"
	storemem "kakeibo/internal/store/memory"
	storesqlite "kakeibo/internal/store/sqlite"
)

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// StoreType selects the Tabular implementation.
type StoreType string

const (
	MemoryStore StoreType = "memory"
	SheetsStore StoreType = "sheets"
	SQLiteStore StoreType = "sqlite"
)

func (t StoreType) IsValid() bool {
	switch t {
	case MemoryStore, SheetsStore, SQLiteStore:
		return true
	}
	return false
}

// MessengerType selects the Messenger implementation.
type MessengerType string

const (
	LineMessenger MessengerType = "line"
	AMQPMessenger MessengerType = "amqp"
)

func (t MessengerType) IsValid() bool {
	switch t {
	case LineMessenger, AMQPMessenger:
		return true
	}
	return false
}

// NewStore creates the configured Tabular store.
func NewStore(ctx context.Context, cfg *config.Config, logger *log.Logger) (store.Tabular, CleanupFunc, error) {
	logger = logger.WithComponent(log.ComponentBackend)
	switch StoreType(cfg.StoreBackend) {
	case MemoryStore:
		logger.InfoContext(ctx, "Initialized memory store")
		return storemem.New(), nil, nil
	case SheetsStore:
		cli, err := google.NewFromEnv(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize sheets store: %w", err)
		}
		logger.InfoContext(ctx, "Initialized Google Sheets store",
			log.FieldBackend, cfg.StoreBackend)
		return cli, nil, nil
	case SQLiteStore:
		st, err := storesqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.InfoContext(ctx, "Initialized SQLite store",
			log.FieldBackend, cfg.StoreBackend, "db_path", cfg.SQLiteDBPath)
		return st, st.Close, nil
	default:
		return nil, nil, fmt.Errorf("invalid store backend: %s", cfg.StoreBackend)
	}
}

// NewMessenger creates the configured Messenger.
func NewMessenger(ctx context.Context, cfg *config.Config, logger *log.Logger) (messaging.Messenger, CleanupFunc, error) {
	logger = logger.WithComponent(log.ComponentBackend)
	switch MessengerType(cfg.MessengerBackend) {
	case LineMessenger:
		cli, err := line.NewFromEnv()
		if err != nil {
			return nil, nil, fmt.Errorf("initialize LINE messenger: %w", err)
		}
		logger.InfoContext(ctx, "Initialized LINE messenger")
		return cli, nil, nil
	case AMQPMessenger:
		cli, err := msgamqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize AMQP messenger: %w", err)
		}
		logger.InfoContext(ctx, "Initialized AMQP messenger",
			"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		return cli, cli.Close, nil
	default:
		return nil, nil, fmt.Errorf("invalid messenger backend: %s", cfg.MessengerBackend)
	}
}
