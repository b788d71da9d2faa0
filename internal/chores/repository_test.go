package chores

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kakeibo/internal/core"
	"kakeibo/internal/store/memory"
)

var household = core.Household{Member1: "花子", Member2: "太郎"}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newRepo(st *memory.Store) *Repository {
	return NewRepository(st, DefaultTables(), household, "・")
}

func TestCollectUnreconciled(t *testing.T) {
	st := memory.New()
	st.Seed("chores", [][]string{
		{"花子", "cleaning", "2024/02/01", "2024/02/01 20:00:00", ""},
		{"太郎", "laundry", "2024/02/02", "2024/02/02 08:30:00", ""},
		{"花子", "cleaning", "2024/02/03", "2024/02/03 21:15:00", "済"},
		{"someone", "cooking", "2024/02/04", "2024/02/04 19:00:00", ""},
	})

	pending, err := newRepo(st).CollectUnreconciled(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"cleaning"}, pending.Member1Chores)
	// Unknown reporters default to member 2; there is no third bucket.
	assert.Equal(t, []string{"laundry", "cooking"}, pending.Member2Chores)
	assert.Equal(t, []int{1, 2, 4}, pending.Rows)
	assert.False(t, pending.Empty())
}

func TestCollectUnreconciledAllSettled(t *testing.T) {
	st := memory.New()
	st.Seed("chores", [][]string{
		{"花子", "cleaning", "2024/02/01", "2024/02/01 20:00:00", "済"},
	})
	pending, err := newRepo(st).CollectUnreconciled(context.Background())
	require.NoError(t, err)
	assert.True(t, pending.Empty())
	assert.Empty(t, pending.Rows)
}

func TestLoadRateTable(t *testing.T) {
	st := memory.New()
	st.Seed("chore_rates", [][]string{
		{"chore", "花子・太郎"},
		{"cleaning", "100", "120"},
		{"laundry", "80", "90"},
	})

	rates, err := newRepo(st).LoadRateTable(context.Background())
	require.NoError(t, err)

	r, err := rates.Rate("花子", "cleaning")
	require.NoError(t, err)
	assert.True(t, r.Equal(dec("100")))

	r, err = rates.Rate("太郎", "laundry")
	require.NoError(t, err)
	assert.True(t, r.Equal(dec("90")))

	_, err = rates.Rate("花子", "cooking")
	require.ErrorIs(t, err, core.ErrRateNotFound)
}

func TestLoadRateTableHeaderOrder(t *testing.T) {
	// Reversed names in the header swap the column assignment.
	st := memory.New()
	st.Seed("chore_rates", [][]string{
		{"chore", "太郎・花子"},
		{"cleaning", "100", "120"},
	})

	rates, err := newRepo(st).LoadRateTable(context.Background())
	require.NoError(t, err)

	r, err := rates.Rate("太郎", "cleaning")
	require.NoError(t, err)
	assert.True(t, r.Equal(dec("100")))
}

func TestLoadRateTableBadHeader(t *testing.T) {
	st := memory.New()
	st.Seed("chore_rates", [][]string{
		{"chore", "nobody・stranger"},
		{"cleaning", "100", "120"},
	})
	_, err := newRepo(st).LoadRateTable(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "household")
}

func TestMarkReconciled(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	st.Seed("chores", [][]string{
		{"花子", "cleaning", "2024/02/01", "2024/02/01 20:00:00", ""},
		{"太郎", "laundry", "2024/02/02", "2024/02/02 08:30:00", ""},
	})
	repo := newRepo(st)

	require.NoError(t, repo.MarkReconciled(ctx, []int{1, 2}))

	rows, err := st.Rows(ctx, "chores")
	require.NoError(t, err)
	assert.Equal(t, ReconciledFlag, rows[0][4])
	assert.Equal(t, ReconciledFlag, rows[1][4])

	pending, err := repo.CollectUnreconciled(ctx)
	require.NoError(t, err)
	assert.True(t, pending.Empty())
}
