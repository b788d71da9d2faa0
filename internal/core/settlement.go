package core

import "github.com/shopspring/decimal"

var two = decimal.NewFromInt(2)

// ComputeSettlement derives the bilateral split for the cutoff period.
//
// Each member's obligation is half of what the *other* member already paid:
// the two are settling up a shared pool, not paying their own spend.
// Variable entries are filtered to the cutoff period or earlier; fixed
// entries count unconditionally. Entries whose payer matches neither member
// are excluded from both sums.
func ComputeSettlement(h Household, cutoff Period, variable []CostEntry, fixed []FixedCostEntry) Settlement {
	paid1, paid2 := paidByMember(h, cutoff, variable, fixed)
	return Settlement{
		OwedByMember1: paid2.Div(two),
		OwedByMember2: paid1.Div(two),
	}
}

func paidByMember(h Household, cutoff Period, variable []CostEntry, fixed []FixedCostEntry) (decimal.Decimal, decimal.Decimal) {
	paid1, paid2 := decimal.Zero, decimal.Zero
	for _, e := range variable {
		if (Period{Year: e.Year, Month: e.Month}).After(cutoff) {
			continue
		}
		switch e.Payer {
		case h.Member1:
			paid1 = paid1.Add(e.Amount)
		case h.Member2:
			paid2 = paid2.Add(e.Amount)
		}
	}
	for _, e := range fixed {
		switch e.Payer {
		case h.Member1:
			paid1 = paid1.Add(e.Amount)
		case h.Member2:
			paid2 = paid2.Add(e.Amount)
		}
	}
	return paid1, paid2
}

// DetailLines itemizes the entries behind a settlement, in source-table
// order: in-period variable entries of either member first, then every fixed
// entry.
func DetailLines(h Household, cutoff Period, variable []CostEntry, fixed []FixedCostEntry) []DetailLine {
	lines := make([]DetailLine, 0, len(variable)+len(fixed))
	for _, e := range variable {
		if (Period{Year: e.Year, Month: e.Month}).After(cutoff) {
			continue
		}
		if !h.IsMember(e.Payer) {
			continue
		}
		lines = append(lines, DetailLine{Category: e.Category, Amount: e.Amount, Payer: e.Payer})
	}
	for _, e := range fixed {
		lines = append(lines, DetailLine{Category: e.Category, Amount: e.Amount, Payer: e.Payer})
	}
	return lines
}
