package services

import (
	"context"
	"fmt"

	"kakeibo/internal/chores"
	"kakeibo/internal/core"
	"kakeibo/internal/log"
	"kakeibo/internal/messaging"
)

// ChoreSettlement runs the weekly chore payout: collect pending rows,
// price them, notify, then mark the rows reconciled. The flag write happens
// strictly after a successful send; a delivery failure leaves every row
// pending for the next run.
type ChoreSettlement struct {
	repo      *chores.Repository
	messenger messaging.Messenger
	household core.Household
	logger    *log.Logger
}

func NewChoreSettlement(
	repo *chores.Repository,
	messenger messaging.Messenger,
	household core.Household,
	logger *log.Logger,
) *ChoreSettlement {
	return &ChoreSettlement{
		repo:      repo,
		messenger: messenger,
		household: household,
		logger:    logger.WithComponent(log.ComponentChores),
	}
}

func (s *ChoreSettlement) Run(ctx context.Context) error {
	pending, err := s.repo.CollectUnreconciled(ctx)
	if err != nil {
		return err
	}
	if pending.Empty() {
		s.logger.InfoContext(ctx, "No pending chores to settle")
		return nil
	}
	s.logger.InfoContext(ctx, "Collected pending chores",
		log.FieldPendingRows, len(pending.Rows))

	rates, err := s.repo.LoadRateTable(ctx)
	if err != nil {
		return err
	}
	summary1, err := core.SummarizeChores(s.household.Member1, pending.Member1Chores, rates)
	if err != nil {
		return err
	}
	summary2, err := core.SummarizeChores(s.household.Member2, pending.Member2Chores, rates)
	if err != nil {
		return err
	}

	if err := s.messenger.SendToAll(ctx, formatChores(summary1, summary2)); err != nil {
		return fmt.Errorf("send chore notice: %w", err)
	}

	if err := s.repo.MarkReconciled(ctx, pending.Rows); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Chore settlement complete",
		log.FieldPendingRows, len(pending.Rows),
		log.FieldOperation, log.OpReconcile)
	return nil
}
