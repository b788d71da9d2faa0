// Package chores reads the chore log, builds the rate table, and flips the
// reconciled flag once a settlement notification has gone out. Rows are
// never deleted; the log is the permanent audit trail.
package chores

import (
	"context"
	"fmt"
	"strings"

	"kakeibo/internal/core"
	"kakeibo/internal/store"
)

// ReconciledFlag is the literal cell value marking a settled chore row.
const ReconciledFlag = "済"

// Column layout of the chore table: [person, choreType, date, reportedTime, flag].
const (
	choreColPerson = iota
	choreColType
	choreColDate
	choreColReported
	choreColFlag
)

// Tables names the store tables the chore engine touches.
type Tables struct {
	Chores string
	Rates  string
}

func DefaultTables() Tables {
	return Tables{Chores: "chores", Rates: "chore_rates"}
}

// Pending is the result of one unreconciled scan: chore types bucketed per
// member plus the 1-based row indexes that produced them, so the exact rows
// can be flagged afterwards.
type Pending struct {
	Member1Chores []string
	Member2Chores []string
	Rows          []int
}

// Empty reports whether the scan found nothing to settle.
func (p Pending) Empty() bool {
	return len(p.Member1Chores) == 0 && len(p.Member2Chores) == 0
}

// Repository loads chore rows and rates and writes reconciliation flags.
type Repository struct {
	store           store.Tabular
	tables          Tables
	household       core.Household
	headerDelimiter string
}

func NewRepository(st store.Tabular, tables Tables, h core.Household, headerDelimiter string) *Repository {
	return &Repository{store: st, tables: tables, household: h, headerDelimiter: headerDelimiter}
}

// CollectUnreconciled scans the chore table for rows not yet flagged.
// A reporter matching member 1 lands in the first bucket; everything else
// defaults to member 2. That matches-or-defaults rule mirrors how reporters
// actually fill in the sheet and is intentional.
func (r *Repository) CollectUnreconciled(ctx context.Context) (Pending, error) {
	rows, err := r.store.Rows(ctx, r.tables.Chores)
	if err != nil {
		return Pending{}, fmt.Errorf("load chores: %w", err)
	}
	var pending Pending
	for i, row := range rows {
		if len(row) <= choreColType || strings.TrimSpace(row[choreColType]) == "" {
			continue
		}
		if len(row) > choreColFlag && strings.TrimSpace(row[choreColFlag]) == ReconciledFlag {
			continue
		}
		choreType := strings.TrimSpace(row[choreColType])
		if core.PersonID(strings.TrimSpace(row[choreColPerson])) == r.household.Member1 {
			pending.Member1Chores = append(pending.Member1Chores, choreType)
		} else {
			pending.Member2Chores = append(pending.Member2Chores, choreType)
		}
		pending.Rows = append(pending.Rows, i+1)
	}
	return pending, nil
}

// LoadRateTable builds the per-member rate map once per run. Row 1 encodes
// the two member names in a single delimited cell; the name order decides
// which rate column belongs to whom. Rows 2..N are [choreType, rate, rate].
func (r *Repository) LoadRateTable(ctx context.Context) (*core.RateTable, error) {
	rows, err := r.store.Rows(ctx, r.tables.Rates)
	if err != nil {
		return nil, fmt.Errorf("load chore rates: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: rate table has no data rows", core.ErrRateNotFound)
	}

	order, err := r.memberOrder(rows[0])
	if err != nil {
		return nil, err
	}

	rates := core.NewRateTable()
	for i, row := range rows[1:] {
		if len(row) < 3 {
			if blankRow(row) {
				continue
			}
			return nil, fmt.Errorf("chore rates row %d: expected 3 columns, got %d", i+2, len(row))
		}
		choreType := strings.TrimSpace(row[0])
		if choreType == "" {
			continue
		}
		for j, person := range order {
			rate, err := core.ParseAmount(row[j+1])
			if err != nil {
				return nil, fmt.Errorf("chore rates row %d: %w", i+2, err)
			}
			rates.Set(person, choreType, rate)
		}
	}
	return rates, nil
}

// MarkReconciled flags the given 1-based rows. Callers invoke this only
// after the settlement notification succeeded; a delivery failure must leave
// every flag untouched.
func (r *Repository) MarkReconciled(ctx context.Context, rowIndexes []int) error {
	for _, row := range rowIndexes {
		if err := r.store.SetCell(ctx, r.tables.Chores, row, choreColFlag+1, ReconciledFlag); err != nil {
			return fmt.Errorf("mark row %d reconciled: %w", row, err)
		}
	}
	return nil
}

// AppendChore records a newly reported chore with an empty flag cell.
func (r *Repository) AppendChore(ctx context.Context, rec core.ChoreRecord) error {
	row := []string{
		string(rec.Person),
		rec.ChoreType,
		rec.Date.Format("2006/01/02"),
		rec.ReportedAt.Format("2006/01/02 15:04:05"),
		"",
	}
	if err := r.store.Append(ctx, r.tables.Chores, [][]string{row}); err != nil {
		return fmt.Errorf("append chore: %w", err)
	}
	return nil
}

// memberOrder resolves which rate column belongs to which member from the
// delimited header cell.
func (r *Repository) memberOrder(header []string) ([]core.PersonID, error) {
	cell := ""
	for _, c := range header {
		if strings.Contains(c, r.headerDelimiter) {
			cell = c
			break
		}
	}
	if cell == "" {
		return nil, fmt.Errorf("chore rates header: no cell delimited by %q", r.headerDelimiter)
	}
	parts := strings.Split(cell, r.headerDelimiter)
	if len(parts) < 2 {
		return nil, fmt.Errorf("chore rates header: expected two names in %q", cell)
	}
	first := core.PersonID(strings.TrimSpace(parts[0]))
	second := core.PersonID(strings.TrimSpace(parts[1]))
	if !r.household.IsMember(first) || !r.household.IsMember(second) {
		return nil, fmt.Errorf("chore rates header: names %q/%q do not match the household", first, second)
	}
	return []core.PersonID{first, second}, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
