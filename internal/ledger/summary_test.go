package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kakeibo/internal/core"
	"kakeibo/internal/store/memory"
)

func newSummary(t *testing.T) (*SummaryLedger, *memory.Store) {
	t.Helper()
	st := memory.New()
	l := NewSummaryLedger(st, DefaultTables())
	require.NoError(t, l.EnsureLabels(context.Background()))
	return l, st
}

func aggWith(p core.Period, food string) core.AggregatedPeriod {
	agg := core.Aggregate(p, nil, nil)
	agg.Totals[core.CategoryFood] = dec(food)
	return agg
}

// seedColumn writes one settled column of zeros with the given period label
// and food amount.
func seedColumn(t *testing.T, st *memory.Store, col int, period, food string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, st.SetCell(ctx, "summary", 1, col, period))
	for i, c := range core.Categories() {
		v := "0"
		if c == core.CategoryFood {
			v = food
		}
		require.NoError(t, st.SetCell(ctx, "summary", i+2, col, v))
	}
}

func TestEnsureLabels(t *testing.T) {
	ctx := context.Background()
	l, st := newSummary(t)

	rows, err := st.Rows(ctx, "summary")
	require.NoError(t, err)
	require.Len(t, rows, len(core.Categories())+1)
	assert.Equal(t, core.PeriodLabel, rows[0][0])
	assert.Equal(t, string(core.CategoryFood), rows[1][0])

	// Idempotent on an already-seeded table.
	require.NoError(t, l.EnsureLabels(ctx))
	again, err := st.Rows(ctx, "summary")
	require.NoError(t, err)
	assert.Len(t, again, len(rows))
}

func TestAppendPeriodFreshColumn(t *testing.T) {
	ctx := context.Background()
	l, st := newSummary(t)

	agg := aggWith(core.Period{Year: 2024, Month: 2}, "1000")
	require.NoError(t, l.AppendPeriod(ctx, agg))

	rows, err := st.Rows(ctx, "summary")
	require.NoError(t, err)
	// Column 2: the settled period.
	assert.Equal(t, "2024/02", rows[0][1])
	assert.Equal(t, "1000", rows[1][1])
	assert.Equal(t, "0", rows[2][1])
	// Column 3: provisioned with next label and live formulas.
	assert.Equal(t, "2024/03", rows[0][2])
	assert.Equal(t, `=SUMIF(variable_costs!D:D,"food",variable_costs!E:E)`, rows[1][2])
}

func TestAppendPeriodOverwritesProvisionedColumn(t *testing.T) {
	ctx := context.Background()
	l, st := newSummary(t)

	require.NoError(t, l.AppendPeriod(ctx, aggWith(core.Period{Year: 2024, Month: 2}, "1000")))
	require.NoError(t, l.AppendPeriod(ctx, aggWith(core.Period{Year: 2024, Month: 3}, "750")))

	rows, err := st.Rows(ctx, "summary")
	require.NoError(t, err)
	// The provisioned 2024/03 column was replaced in place, not duplicated.
	assert.Equal(t, "2024/03", rows[0][2])
	assert.Equal(t, "750", rows[1][2])
	assert.Equal(t, "2024/04", rows[0][3])

	w, err := st.ColumnCount(ctx, "summary")
	require.NoError(t, err)
	assert.Equal(t, 4, w)
}

func TestAppendPeriodMissingLabel(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	st.Seed("summary", [][]string{{"not-a-period-row"}})
	l := NewSummaryLedger(st, DefaultTables())

	err := l.AppendPeriod(ctx, aggWith(core.Period{Year: 2024, Month: 2}, "0"))
	require.ErrorIs(t, err, core.ErrLabelNotFound)
}

func TestComputeDiff(t *testing.T) {
	ctx := context.Background()
	l, st := newSummary(t)

	// Thirteen settled columns (2..14); the year-back column holds 900, the
	// month-back column 800, the current column 1000.
	periods := core.Period{Year: 2023, Month: 2}
	for col := 2; col <= 14; col++ {
		food := "0"
		switch col {
		case 2:
			food = "900"
		case 13:
			food = "800"
		case 14:
			food = "1000"
		}
		seedColumn(t, st, col, periods.String(), food)
		periods = periods.Next()
	}
	// Provisioned live column after the history.
	seedColumn(t, st, 15, periods.String(), "0")

	report, err := l.ComputeDiff(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024/02", report.Current)
	assert.Equal(t, "2024/01", report.PriorMonth)
	assert.Equal(t, "2023/02", report.PriorYear)
	assert.True(t, report.LastMonth[core.CategoryFood].Equal(dec("200")))
	assert.True(t, report.LastYear[core.CategoryFood].Equal(dec("100")))
	assert.True(t, report.LastMonth[core.CategoryMisc].IsZero())
}

func TestComputeDiffInsufficientHistory(t *testing.T) {
	ctx := context.Background()
	l, st := newSummary(t)

	// Only three settled columns plus the live one: the twelve-back lookup
	// would read before the table and must fail loudly, not report zero.
	p := core.Period{Year: 2024, Month: 1}
	for col := 2; col <= 5; col++ {
		seedColumn(t, st, col, p.String(), "100")
		p = p.Next()
	}

	_, err := l.ComputeDiff(ctx)
	require.ErrorIs(t, err, core.ErrInsufficientHistory)
}

func TestComputeDiffEmptyLedger(t *testing.T) {
	l, _ := newSummary(t)
	_, err := l.ComputeDiff(context.Background())
	require.ErrorIs(t, err, core.ErrInsufficientHistory)
}
