// Package services orchestrates the externally scheduled batch runs. Each
// run reads every source row first, then notifies, then writes; a failure
// anywhere aborts before later writes so the store never ends up ahead of
// what was actually announced.
package services

import (
	"context"
	"fmt"

	"kakeibo/internal/core"
	"kakeibo/internal/ledger"
	"kakeibo/internal/log"
	"kakeibo/internal/messaging"
)

// LedgerSettlement runs the monthly expense settlement: aggregate, compute
// the bilateral split, notify, persist the summary column, notify diffs,
// clear the variable table.
type LedgerSettlement struct {
	repo      *ledger.Repository
	summary   *ledger.SummaryLedger
	messenger messaging.Messenger
	household core.Household
	logger    *log.Logger
}

func NewLedgerSettlement(
	repo *ledger.Repository,
	summary *ledger.SummaryLedger,
	messenger messaging.Messenger,
	household core.Household,
	logger *log.Logger,
) *LedgerSettlement {
	return &LedgerSettlement{
		repo:      repo,
		summary:   summary,
		messenger: messenger,
		household: household,
		logger:    logger.WithComponent(log.ComponentSettlement),
	}
}

func (s *LedgerSettlement) Run(ctx context.Context, cutoff core.Period) error {
	// Bootstrap the label column on a brand-new summary table.
	if err := s.summary.EnsureLabels(ctx); err != nil {
		return err
	}

	variable, err := s.repo.LoadVariableCosts(ctx)
	if err != nil {
		return err
	}
	fixed, err := s.repo.LoadFixedCosts(ctx)
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Loaded expense rows",
		log.FieldPeriod, cutoff.String(),
		log.FieldRowCount, len(variable)+len(fixed))

	agg := core.Aggregate(cutoff, variable, fixed)
	settlement := core.ComputeSettlement(s.household, cutoff, variable, fixed)
	lines := core.DetailLines(s.household, cutoff, variable, fixed)

	msg := formatSettlement(s.household, cutoff, settlement, lines)
	if err := s.messenger.SendToAll(ctx, msg); err != nil {
		return fmt.Errorf("send settlement notice: %w", err)
	}
	s.logger.InfoContext(ctx, "Settlement notice sent",
		log.FieldPeriod, cutoff.String(),
		log.FieldOperation, log.OpNotify)

	if err := s.summary.AppendPeriod(ctx, agg); err != nil {
		return err
	}

	diff, err := s.summary.ComputeDiff(ctx)
	if err != nil {
		return err
	}
	if err := s.messenger.SendToAll(ctx, formatDiff(diff)); err != nil {
		return fmt.Errorf("send diff notice: %w", err)
	}

	// Settled rows roll off wholesale; fixed costs persist.
	if err := s.repo.ClearVariableCosts(ctx); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Ledger settlement complete",
		log.FieldPeriod, cutoff.String(),
		log.FieldOperation, log.OpClear)
	return nil
}
