package core

import "github.com/shopspring/decimal"

// Aggregate folds variable and fixed cost entries into per-category totals
// for the given cutoff period.
//
// Variable entries dated at or before the cutoff accumulate into their
// category. Fixed entries are a snapshot of the current recurring bill and
// overwrite their category afterwards, so a fixed bill whose category name
// collides with a variable category replaces that period's variable total.
// Unknown payers are not filtered here; payer identity only matters to the
// settlement split.
func Aggregate(cutoff Period, variable []CostEntry, fixed []FixedCostEntry) AggregatedPeriod {
	totals := make(map[Category]decimal.Decimal, len(Categories()))
	for _, c := range Categories() {
		totals[c] = decimal.Zero
	}

	for _, e := range variable {
		entryPeriod := Period{Year: e.Year, Month: e.Month}
		if entryPeriod.After(cutoff) {
			continue
		}
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}

	for _, e := range fixed {
		totals[e.Category] = e.Amount
	}

	return AggregatedPeriod{Period: cutoff, Totals: totals}
}
