package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrRateNotFound        = errors.New("chore rate not found")
	ErrLabelNotFound       = errors.New("summary label not found")
	ErrInsufficientHistory = errors.New("insufficient summary history")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidPeriod       = errors.New("invalid period")
)

type (
	// PersonID identifies one of the two household members by display name.
	// The name doubles as the match key against payer/reporter cells, so it
	// must be spelled exactly as users report it.
	PersonID string

	// Household holds the two fixed members. Person-keyed sums only ever
	// recognize these two; anything else is excluded (but still counted in
	// category totals).
	Household struct {
		Member1 PersonID
		Member2 PersonID
	}

	// Period is a calendar year+month settlement bucket.
	Period struct {
		Year  int
		Month int // 1-12
	}

	// CostEntry is one reported variable expense. Read-only to the engine;
	// the variable-cost table is cleared wholesale after settlement.
	CostEntry struct {
		Payer    PersonID
		Year     int
		Month    int
		Category Category
		Amount   decimal.Decimal
	}

	// FixedCostEntry is one recurring bill. It persists across periods and
	// is re-read every run.
	FixedCostEntry struct {
		Category Category
		Amount   decimal.Decimal
		Payer    PersonID
	}

	// AggregatedPeriod holds the per-category totals for one period. Every
	// known category is present, zero-valued when nothing was reported.
	AggregatedPeriod struct {
		Period Period
		Totals map[Category]decimal.Decimal
	}

	// Settlement is the bilateral result: each member owes half of what the
	// other member already paid into the shared pool.
	Settlement struct {
		OwedByMember1 decimal.Decimal
		OwedByMember2 decimal.Decimal
	}

	// DetailLine is one itemized line of a settlement message.
	DetailLine struct {
		Category Category
		Amount   decimal.Decimal
		Payer    PersonID
	}

	// ChoreRecord is one reported chore. Mutated exactly once, when the flag
	// flips from pending to reconciled; rows are the permanent audit trail.
	ChoreRecord struct {
		Person     PersonID
		ChoreType  string
		Date       time.Time
		ReportedAt time.Time
		Reconciled bool
	}

	// ChoreSummary is the payable result of one member's pending chores.
	ChoreSummary struct {
		Person       PersonID
		TotalOwed    decimal.Decimal
		CountsByType map[string]int
	}
)

func (h Household) Valid() error {
	if strings.TrimSpace(string(h.Member1)) == "" || strings.TrimSpace(string(h.Member2)) == "" {
		return errors.New("household requires two member names")
	}
	if h.Member1 == h.Member2 {
		return errors.New("household members must be distinct")
	}
	return nil
}

// IsMember reports whether name matches either household member exactly.
func (h Household) IsMember(name PersonID) bool {
	return name == h.Member1 || name == h.Member2
}

func NewPeriod(year, month int) (Period, error) {
	if year < 1 || month < 1 || month > 12 {
		return Period{}, fmt.Errorf("%w: %d/%d", ErrInvalidPeriod, year, month)
	}
	return Period{Year: year, Month: month}, nil
}

// PeriodOf buckets a wall-clock time into its period.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// String renders the period label used in the summary ledger, e.g. "2024/02".
func (p Period) String() string {
	return fmt.Sprintf("%04d/%02d", p.Year, p.Month)
}

// Next returns the following calendar period.
func (p Period) Next() Period {
	if p.Month == 12 {
		return Period{Year: p.Year + 1, Month: 1}
	}
	return Period{Year: p.Year, Month: p.Month + 1}
}

// After reports whether p is strictly later than other.
func (p Period) After(other Period) bool {
	if p.Year != other.Year {
		return p.Year > other.Year
	}
	return p.Month > other.Month
}

// ParsePeriod parses a "YYYY/MM" label back into a Period.
func ParsePeriod(s string) (Period, error) {
	var year, month int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d/%d", &year, &month); err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return NewPeriod(year, month)
}

// ParseAmount parses a monetary cell value. Thousands separators are
// tolerated because spreadsheet exports often carry them.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}
