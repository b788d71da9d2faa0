// Command settlement runs the externally scheduled batch jobs: the monthly
// expense settlement, the weekly chore settlement, or both. A failed run is
// converted into one operator-facing notice; end users only ever see
// successful settlement messages.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"kakeibo/internal/backend"
	"kakeibo/internal/chores"
	"kakeibo/internal/config"
	"kakeibo/internal/core"
	"kakeibo/internal/ledger"
	"kakeibo/internal/log"
	"kakeibo/internal/messaging"
	"kakeibo/internal/services"
)

func main() {
	// Load .env for local development (ignore errors in production).
	_ = godotenv.Load()

	job := flag.String("job", "all", "which job to run: ledger | chores | all")
	cutoffFlag := flag.String("cutoff", "", "settlement period as YYYY/MM (default: current month)")
	flag.Parse()

	logger := log.New(log.Config{Level: slog.LevelInfo})
	log.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	cutoff := core.PeriodOf(time.Now())
	if *cutoffFlag != "" {
		parsed, err := core.ParsePeriod(*cutoffFlag)
		if err != nil {
			logger.Error("Invalid cutoff flag", log.FieldError, err)
			os.Exit(1)
		}
		cutoff = parsed
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, storeCleanup, err := backend.NewStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize store", log.FieldError, err)
		os.Exit(1)
	}
	if storeCleanup != nil {
		defer storeCleanup()
	}

	messenger, msgCleanup, err := backend.NewMessenger(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize messenger", log.FieldError, err)
		os.Exit(1)
	}
	if msgCleanup != nil {
		defer msgCleanup()
	}

	household := cfg.Household()
	ledgerTables := ledger.Tables{
		VariableCosts: cfg.VariableCostsTable,
		FixedCosts:    cfg.FixedCostsTable,
		Summary:       cfg.SummaryTable,
	}
	ledgerSvc := services.NewLedgerSettlement(
		ledger.NewRepository(st, ledgerTables),
		ledger.NewSummaryLedger(st, ledgerTables),
		messenger,
		household,
		logger,
	)
	choreSvc := services.NewChoreSettlement(
		chores.NewRepository(st, chores.Tables{Chores: cfg.ChoresTable, Rates: cfg.ChoreRatesTable}, household, cfg.RateHeaderDelimiter),
		messenger,
		household,
		logger,
	)

	logger.InfoContext(ctx, "Starting settlement batch",
		log.FieldJob, *job,
		log.FieldPeriod, cutoff.String(),
		log.FieldBackend, cfg.StoreBackend)

	if err := run(ctx, *job, cutoff, ledgerSvc, choreSvc); err != nil {
		logger.ErrorContext(ctx, "Batch run failed", log.FieldJob, *job, log.FieldError, err)
		notifyFailure(ctx, messenger, logger, *job, err)
		os.Exit(1)
	}
	logger.InfoContext(ctx, "Batch run complete", log.FieldJob, *job)
}

func run(ctx context.Context, job string, cutoff core.Period, ledgerSvc *services.LedgerSettlement, choreSvc *services.ChoreSettlement) error {
	switch job {
	case "ledger":
		return ledgerSvc.Run(ctx, cutoff)
	case "chores":
		return choreSvc.Run(ctx)
	case "all":
		// The two paths share the store but touch disjoint tables.
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return ledgerSvc.Run(gctx, cutoff) })
		g.Go(func() error { return choreSvc.Run(gctx) })
		return g.Wait()
	default:
		return fmt.Errorf("unknown job %q (want ledger, chores, or all)", job)
	}
}

// notifyFailure sends the operator notice on a best-effort basis; when the
// messenger itself is the failure, the log entry is all we have.
func notifyFailure(ctx context.Context, messenger messaging.Messenger, logger *log.Logger, job string, runErr error) {
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := messenger.SendToAll(notifyCtx, services.FormatFailure(job, runErr)); err != nil {
		logger.ErrorContext(ctx, "Failed to send failure notice", log.FieldError, err)
	}
}
