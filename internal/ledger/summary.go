package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"kakeibo/internal/core"
	"kakeibo/internal/store"
)

// SummaryLedger owns the columnar history table: column 1 holds the fixed
// row labels (categories plus the period label), every later column is one
// settled period in chronological order.
type SummaryLedger struct {
	store         store.Tabular
	table         string
	variableTable string
}

// DiffReport holds per-category deltas of the current period against the
// previous month's column and the same month one year back.
type DiffReport struct {
	Current    string
	PriorMonth string
	PriorYear  string
	LastMonth  map[core.Category]decimal.Decimal
	LastYear   map[core.Category]decimal.Decimal
}

func NewSummaryLedger(st store.Tabular, tables Tables) *SummaryLedger {
	return &SummaryLedger{store: st, table: tables.Summary, variableTable: tables.VariableCosts}
}

// AppendPeriod writes the aggregated totals into the column after the last
// settled period, then provisions the following column with the next period
// label and live SUMIF formulas over the variable-cost table, so the ledger
// shows a running total between settlement runs.
//
// When the provisioned column's period label matches the period being
// settled, that column is overwritten instead of growing a duplicate.
func (l *SummaryLedger) AppendPeriod(ctx context.Context, agg core.AggregatedPeriod) error {
	labels, err := l.labelRows(ctx)
	if err != nil {
		return err
	}
	periodRow, ok := labels[core.PeriodLabel]
	if !ok {
		return fmt.Errorf("%w: %q", core.ErrLabelNotFound, core.PeriodLabel)
	}

	rows, err := l.store.Rows(ctx, l.table)
	if err != nil {
		return fmt.Errorf("read summary: %w", err)
	}
	last, err := l.store.ColumnCount(ctx, l.table)
	if err != nil {
		return fmt.Errorf("summary width: %w", err)
	}

	writeCol := last + 1
	if last >= 2 && cellAt(rows, periodRow, last) == agg.Period.String() {
		writeCol = last
	}

	if err := l.store.SetCell(ctx, l.table, periodRow, writeCol, agg.Period.String()); err != nil {
		return fmt.Errorf("write period label: %w", err)
	}
	for _, c := range core.Categories() {
		row, ok := labels[string(c)]
		if !ok {
			return fmt.Errorf("%w: %q", core.ErrLabelNotFound, c)
		}
		if err := l.store.SetCell(ctx, l.table, row, writeCol, agg.Totals[c].String()); err != nil {
			return fmt.Errorf("write %s total: %w", c, err)
		}
	}

	// Provision the live column for the upcoming period.
	next := writeCol + 1
	if err := l.store.SetCell(ctx, l.table, periodRow, next, agg.Period.Next().String()); err != nil {
		return fmt.Errorf("provision period label: %w", err)
	}
	for _, c := range core.Categories() {
		if err := l.store.SetCell(ctx, l.table, labels[string(c)], next, l.liveFormula(c)); err != nil {
			return fmt.Errorf("provision %s formula: %w", c, err)
		}
	}
	return nil
}

// ComputeDiff compares the most recent settled column against the column one
// period back and the column twelve periods back. Reaching before the first
// data column is ErrInsufficientHistory.
func (l *SummaryLedger) ComputeDiff(ctx context.Context) (DiffReport, error) {
	labels, err := l.labelRows(ctx)
	if err != nil {
		return DiffReport{}, err
	}
	periodRow, ok := labels[core.PeriodLabel]
	if !ok {
		return DiffReport{}, fmt.Errorf("%w: %q", core.ErrLabelNotFound, core.PeriodLabel)
	}

	rows, err := l.store.Rows(ctx, l.table)
	if err != nil {
		return DiffReport{}, fmt.Errorf("read summary: %w", err)
	}
	width, err := l.store.ColumnCount(ctx, l.table)
	if err != nil {
		return DiffReport{}, fmt.Errorf("summary width: %w", err)
	}

	// The last column is the provisioned live one; the settled history ends
	// one before it. Column 1 is labels, so data lives in columns >= 2.
	current := width - 1
	priorMonth := current - 1
	priorYear := current - 12
	if current < 2 || priorMonth < 2 {
		return DiffReport{}, fmt.Errorf("%w: need at least two settled periods", core.ErrInsufficientHistory)
	}
	if priorYear < 2 {
		return DiffReport{}, fmt.Errorf("%w: need thirteen settled periods for the year-over-year diff", core.ErrInsufficientHistory)
	}

	report := DiffReport{
		Current:    cellAt(rows, periodRow, current),
		PriorMonth: cellAt(rows, periodRow, priorMonth),
		PriorYear:  cellAt(rows, periodRow, priorYear),
		LastMonth:  make(map[core.Category]decimal.Decimal, len(core.Categories())),
		LastYear:   make(map[core.Category]decimal.Decimal, len(core.Categories())),
	}
	for _, c := range core.Categories() {
		row, ok := labels[string(c)]
		if !ok {
			return DiffReport{}, fmt.Errorf("%w: %q", core.ErrLabelNotFound, c)
		}
		cur, err := core.ParseAmount(cellAt(rows, row, current))
		if err != nil {
			return DiffReport{}, fmt.Errorf("summary %s current column: %w", c, err)
		}
		pm, err := core.ParseAmount(cellAt(rows, row, priorMonth))
		if err != nil {
			return DiffReport{}, fmt.Errorf("summary %s prior-month column: %w", c, err)
		}
		py, err := core.ParseAmount(cellAt(rows, row, priorYear))
		if err != nil {
			return DiffReport{}, fmt.Errorf("summary %s prior-year column: %w", c, err)
		}
		report.LastMonth[c] = cur.Sub(pm)
		report.LastYear[c] = cur.Sub(py)
	}
	return report, nil
}

// EnsureLabels seeds the row-label column when the table is brand new.
// Existing labels are left untouched; the vocabulary is fixed, so a partial
// label column is a layout fault, not something to repair silently.
func (l *SummaryLedger) EnsureLabels(ctx context.Context) error {
	n, err := l.store.RowCount(ctx, l.table)
	if err != nil {
		return fmt.Errorf("summary height: %w", err)
	}
	if n > 0 {
		return nil
	}
	rows := make([][]string, 0, len(core.Categories())+1)
	rows = append(rows, []string{core.PeriodLabel})
	for _, c := range core.Categories() {
		rows = append(rows, []string{string(c)})
	}
	if err := l.store.Append(ctx, l.table, rows); err != nil {
		return fmt.Errorf("seed summary labels: %w", err)
	}
	return nil
}

// labelRows maps the row-label column to 1-based row indexes.
func (l *SummaryLedger) labelRows(ctx context.Context) (map[string]int, error) {
	rows, err := l.store.Rows(ctx, l.table)
	if err != nil {
		return nil, fmt.Errorf("read summary labels: %w", err)
	}
	labels := make(map[string]int, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		label := strings.TrimSpace(row[0])
		if label == "" {
			continue
		}
		if _, dup := labels[label]; !dup {
			labels[label] = i + 1
		}
	}
	return labels, nil
}

// liveFormula sums the variable-cost table's amount column filtered by
// category, keyed to the persisted [payer, year, month, category, amount]
// layout.
func (l *SummaryLedger) liveFormula(c core.Category) string {
	return fmt.Sprintf("=SUMIF(%s!D:D,%q,%s!E:E)", l.variableTable, string(c), l.variableTable)
}

func cellAt(rows [][]string, row, col int) string {
	if row < 1 || row > len(rows) {
		return ""
	}
	r := rows[row-1]
	if col < 1 || col > len(r) {
		return ""
	}
	return strings.TrimSpace(r[col-1])
}
