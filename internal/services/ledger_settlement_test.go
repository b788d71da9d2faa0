package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kakeibo/internal/core"
	"kakeibo/internal/ledger"
	"kakeibo/internal/log"
	msgmem "kakeibo/internal/messaging/memory"
	storemem "kakeibo/internal/store/memory"
)

var household = core.Household{Member1: "A", Member2: "B"}

func quietLogger() *log.Logger {
	return log.New(log.Config{Level: slog.LevelError})
}

// seedSummaryHistory writes n settled columns so the diff has room to look
// back, ending with a provisioned column for cutoff.
func seedSummaryHistory(t *testing.T, st *storemem.Store, sl *ledger.SummaryLedger, n int, upTo core.Period) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, sl.EnsureLabels(ctx))
	p := upTo
	for i := 0; i < n; i++ {
		p = prev(p)
	}
	for i := 0; i < n; i++ {
		require.NoError(t, sl.AppendPeriod(ctx, core.Aggregate(p, nil, nil)))
		p = p.Next()
	}
}

func prev(p core.Period) core.Period {
	if p.Month == 1 {
		return core.Period{Year: p.Year - 1, Month: 12}
	}
	return core.Period{Year: p.Year, Month: p.Month - 1}
}

func TestLedgerSettlementRun(t *testing.T) {
	ctx := context.Background()
	cutoff := core.Period{Year: 2024, Month: 2}

	st := storemem.New()
	st.Seed("variable_costs", [][]string{
		{"A", "2024", "2", "food", "1000"},
		{"B", "2024", "2", "misc", "2000"},
	})
	st.Seed("fixed_costs", [][]string{
		{"gas", "3000", "A"},
		{"electricity", "4000", "B"},
	})

	tables := ledger.DefaultTables()
	repo := ledger.NewRepository(st, tables)
	summary := ledger.NewSummaryLedger(st, tables)
	seedSummaryHistory(t, st, summary, 13, cutoff)

	messenger := msgmem.New()
	svc := NewLedgerSettlement(repo, summary, messenger, household, quietLogger())

	require.NoError(t, svc.Run(ctx, cutoff))

	sent := messenger.Broadcasts()
	require.Len(t, sent, 2)
	assert.Contains(t, sent[0], "Settlement for 2024/02")
	assert.Contains(t, sent[0], "A pays B: 3000 yen")
	assert.Contains(t, sent[0], "B pays A: 2000 yen")
	assert.Contains(t, sent[1], "Spending changes for 2024/02")
	assert.Contains(t, sent[1], "food: +1000 yen")

	// Settled rows roll off; fixed costs persist.
	varRows, err := st.Rows(ctx, "variable_costs")
	require.NoError(t, err)
	assert.Empty(t, varRows)
	fixedRows, err := st.Rows(ctx, "fixed_costs")
	require.NoError(t, err)
	assert.Len(t, fixedRows, 2)
}

func TestLedgerSettlementDeliveryFailureBlocksWrites(t *testing.T) {
	ctx := context.Background()
	cutoff := core.Period{Year: 2024, Month: 2}

	st := storemem.New()
	st.Seed("variable_costs", [][]string{{"A", "2024", "2", "food", "1000"}})

	tables := ledger.DefaultTables()
	repo := ledger.NewRepository(st, tables)
	summary := ledger.NewSummaryLedger(st, tables)
	seedSummaryHistory(t, st, summary, 13, cutoff)
	before, err := st.Rows(ctx, "summary")
	require.NoError(t, err)

	messenger := msgmem.New()
	messenger.FailWith = errors.New("line is down")
	svc := NewLedgerSettlement(repo, summary, messenger, household, quietLogger())

	err = svc.Run(ctx, cutoff)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line is down")

	// Nothing was persisted past the failed send.
	after, err := st.Rows(ctx, "summary")
	require.NoError(t, err)
	assert.Equal(t, before, after)
	varRows, err := st.Rows(ctx, "variable_costs")
	require.NoError(t, err)
	assert.Len(t, varRows, 1)
}

func TestLedgerSettlementInsufficientHistoryPropagates(t *testing.T) {
	ctx := context.Background()
	cutoff := core.Period{Year: 2024, Month: 2}

	st := storemem.New()
	st.Seed("variable_costs", [][]string{{"A", "2024", "2", "food", "1000"}})
	tables := ledger.DefaultTables()
	repo := ledger.NewRepository(st, tables)
	summary := ledger.NewSummaryLedger(st, tables)
	// Only two settled periods of history: the year-over-year diff cannot
	// be computed and the run must fail rather than report zeros.
	seedSummaryHistory(t, st, summary, 2, cutoff)

	svc := NewLedgerSettlement(repo, summary, msgmem.New(), household, quietLogger())

	err := svc.Run(ctx, cutoff)
	require.ErrorIs(t, err, core.ErrInsufficientHistory)

	// The variable table survives an aborted run.
	varRows, err2 := st.Rows(ctx, "variable_costs")
	require.NoError(t, err2)
	assert.Len(t, varRows, 1)
}
