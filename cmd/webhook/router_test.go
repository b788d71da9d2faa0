package main

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kakeibo/internal/config"
	"kakeibo/internal/log"
	"kakeibo/internal/store/memory"
)

func newTestRouter(t *testing.T) (*router, *memory.Store) {
	t.Helper()
	st := memory.New()
	cfg := &config.Config{
		Member1Name:         "A",
		Member2Name:         "B",
		VariableCostsTable:  "variable_costs",
		FixedCostsTable:     "fixed_costs",
		SummaryTable:        "summary",
		ChoresTable:         "chores",
		ChoreRatesTable:     "chore_rates",
		ShoppingTable:       "shopping_list",
		RateHeaderDelimiter: "/",
	}
	logger := log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
	rt := newRouter(st, cfg, logger)
	rt.now = func() time.Time {
		return time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)
	}
	return rt, st
}

func TestRouterRecordsExpense(t *testing.T) {
	rt, st := newTestRouter(t)

	reply := rt.Handle(context.Background(), "expense A food 1,200")
	assert.Equal(t, "Recorded 1200 yen of food paid by A", reply)

	rows, err := st.Rows(context.Background(), "variable_costs")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"A", "2024", "2", "food", "1200"}, rows[0])
}

func TestRouterRejectsBadExpense(t *testing.T) {
	rt, st := newTestRouter(t)

	assert.Contains(t, rt.Handle(context.Background(), "expense C food 100"), "unknown payer")
	assert.Contains(t, rt.Handle(context.Background(), "expense A snacks 100"), "unknown category")
	assert.Contains(t, rt.Handle(context.Background(), "expense A food"), "usage")

	rows, err := st.Rows(context.Background(), "variable_costs")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRouterRecordsChore(t *testing.T) {
	rt, st := newTestRouter(t)

	reply := rt.Handle(context.Background(), "chore B laundry")
	assert.Equal(t, "Logged laundry for B", reply)

	rows, err := st.Rows(context.Background(), "chores")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "B", rows[0][0])
	assert.Equal(t, "laundry", rows[0][1])
	assert.Equal(t, "", rows[0][4])
}

func TestRouterShoppingFlow(t *testing.T) {
	rt, _ := newTestRouter(t)
	ctx := context.Background()

	assert.Equal(t, "Added milk to the shopping list", rt.Handle(ctx, "buy milk"))
	assert.Equal(t, "Added olive oil to the shopping list", rt.Handle(ctx, "buy olive oil"))
	assert.Equal(t, "Shopping list:\n- milk\n- olive oil", rt.Handle(ctx, "list"))
	assert.Equal(t, "Checked milk off the shopping list", rt.Handle(ctx, "bought milk"))
	assert.Equal(t, "Shopping list:\n- olive oil", rt.Handle(ctx, "list"))
}

func TestRouterIgnoresChatter(t *testing.T) {
	rt, _ := newTestRouter(t)

	assert.Equal(t, "", rt.Handle(context.Background(), "see you tonight"))
	assert.Equal(t, "", rt.Handle(context.Background(), ""))
	assert.Contains(t, rt.Handle(context.Background(), "help"), "expense <payer>")
}
