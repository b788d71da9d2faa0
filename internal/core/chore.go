package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RateTable maps chore types to the per-member rate paid for doing them.
// Built once per run from the rate sheet; a lookup miss is an error, never
// a zero.
type RateTable struct {
	rates map[string]map[PersonID]decimal.Decimal
}

func NewRateTable() *RateTable {
	return &RateTable{rates: make(map[string]map[PersonID]decimal.Decimal)}
}

// Set records the rate one member earns for one chore type.
func (t *RateTable) Set(person PersonID, choreType string, rate decimal.Decimal) {
	byPerson, ok := t.rates[choreType]
	if !ok {
		byPerson = make(map[PersonID]decimal.Decimal, 2)
		t.rates[choreType] = byPerson
	}
	byPerson[person] = rate
}

// Rate returns the rate person earns for choreType, or ErrRateNotFound.
func (t *RateTable) Rate(person PersonID, choreType string) (decimal.Decimal, error) {
	byPerson, ok := t.rates[choreType]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: chore %q", ErrRateNotFound, choreType)
	}
	rate, ok := byPerson[person]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: chore %q for %s", ErrRateNotFound, choreType, person)
	}
	return rate, nil
}

// SummarizeChores counts the given chore types and accumulates their rates
// into the amount owed to person. A missing rate aborts the summary.
func SummarizeChores(person PersonID, choreTypes []string, rates *RateTable) (ChoreSummary, error) {
	summary := ChoreSummary{
		Person:       person,
		TotalOwed:    decimal.Zero,
		CountsByType: make(map[string]int),
	}
	for _, ct := range choreTypes {
		rate, err := rates.Rate(person, ct)
		if err != nil {
			return ChoreSummary{}, err
		}
		summary.CountsByType[ct]++
		summary.TotalOwed = summary.TotalOwed.Add(rate)
	}
	return summary, nil
}
