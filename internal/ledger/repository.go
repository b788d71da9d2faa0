// Package ledger reads the expense tables and maintains the long-lived
// summary ledger. Row decoding happens here, at the boundary, so the
// aggregation logic only ever sees typed entries.
package ledger

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"kakeibo/internal/core"
	"kakeibo/internal/store"
)

// Column layout of the source tables, 0-based within a decoded row.
// variable_costs: [payer, year, month, category, amount]
// fixed_costs:    [category, amount, payer]
const (
	varColPayer = iota
	varColYear
	varColMonth
	varColCategory
	varColAmount
	varWidth
)

const (
	fixedColCategory = iota
	fixedColAmount
	fixedColPayer
	fixedWidth
)

// Tables names the store tables the repository touches.
type Tables struct {
	VariableCosts string
	FixedCosts    string
	Summary       string
}

func DefaultTables() Tables {
	return Tables{
		VariableCosts: "variable_costs",
		FixedCosts:    "fixed_costs",
		Summary:       "summary",
	}
}

// Repository loads expense rows from the tabular store. It never filters by
// period; cutoff filtering belongs to the aggregation.
type Repository struct {
	store  store.Tabular
	tables Tables
}

func NewRepository(st store.Tabular, tables Tables) *Repository {
	return &Repository{store: st, tables: tables}
}

// LoadVariableCosts returns every variable-cost row, prior periods included.
// An empty table is a valid "no data" state and yields an empty slice.
func (r *Repository) LoadVariableCosts(ctx context.Context) ([]core.CostEntry, error) {
	rows, err := r.store.Rows(ctx, r.tables.VariableCosts)
	if err != nil {
		return nil, fmt.Errorf("load variable costs: %w", err)
	}
	entries := make([]core.CostEntry, 0, len(rows))
	for i, row := range rows {
		if blankRow(row) {
			continue
		}
		e, err := decodeVariableRow(row)
		if err != nil {
			return nil, fmt.Errorf("variable costs row %d: %w", i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// LoadFixedCosts returns every recurring bill row.
func (r *Repository) LoadFixedCosts(ctx context.Context) ([]core.FixedCostEntry, error) {
	rows, err := r.store.Rows(ctx, r.tables.FixedCosts)
	if err != nil {
		return nil, fmt.Errorf("load fixed costs: %w", err)
	}
	entries := make([]core.FixedCostEntry, 0, len(rows))
	for i, row := range rows {
		if blankRow(row) {
			continue
		}
		e, err := decodeFixedRow(row)
		if err != nil {
			return nil, fmt.Errorf("fixed costs row %d: %w", i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// AppendVariableCost records a single expense row.
func (r *Repository) AppendVariableCost(ctx context.Context, e core.CostEntry) error {
	row := []string{
		string(e.Payer),
		strconv.Itoa(e.Year),
		strconv.Itoa(e.Month),
		string(e.Category),
		e.Amount.String(),
	}
	if err := r.store.Append(ctx, r.tables.VariableCosts, [][]string{row}); err != nil {
		return fmt.Errorf("append variable cost: %w", err)
	}
	return nil
}

// ClearVariableCosts wipes the variable-cost table after a completed
// settlement run. Fixed costs persist across periods and are never cleared.
func (r *Repository) ClearVariableCosts(ctx context.Context) error {
	if err := r.store.Clear(ctx, r.tables.VariableCosts); err != nil {
		return fmt.Errorf("clear variable costs: %w", err)
	}
	return nil
}

func decodeVariableRow(row []string) (core.CostEntry, error) {
	if len(row) < varWidth {
		return core.CostEntry{}, fmt.Errorf("expected %d columns, got %d", varWidth, len(row))
	}
	year, err := strconv.Atoi(strings.TrimSpace(row[varColYear]))
	if err != nil {
		return core.CostEntry{}, fmt.Errorf("year %q: %w", row[varColYear], err)
	}
	month, err := strconv.Atoi(strings.TrimSpace(row[varColMonth]))
	if err != nil {
		return core.CostEntry{}, fmt.Errorf("month %q: %w", row[varColMonth], err)
	}
	if month < 1 || month > 12 {
		return core.CostEntry{}, fmt.Errorf("month out of range: %d", month)
	}
	amount, err := core.ParseAmount(row[varColAmount])
	if err != nil {
		return core.CostEntry{}, err
	}
	return core.CostEntry{
		Payer:    core.PersonID(strings.TrimSpace(row[varColPayer])),
		Year:     year,
		Month:    month,
		Category: core.Category(strings.TrimSpace(row[varColCategory])),
		Amount:   amount,
	}, nil
}

func decodeFixedRow(row []string) (core.FixedCostEntry, error) {
	if len(row) < fixedWidth {
		return core.FixedCostEntry{}, fmt.Errorf("expected %d columns, got %d", fixedWidth, len(row))
	}
	amount, err := core.ParseAmount(row[fixedColAmount])
	if err != nil {
		return core.FixedCostEntry{}, err
	}
	return core.FixedCostEntry{
		Category: core.Category(strings.TrimSpace(row[fixedColCategory])),
		Amount:   amount,
		Payer:    core.PersonID(strings.TrimSpace(row[fixedColPayer])),
	}, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
