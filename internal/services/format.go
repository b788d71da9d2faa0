package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"kakeibo/internal/core"
	"kakeibo/internal/ledger"
)

func formatSettlement(h core.Household, cutoff core.Period, s core.Settlement, lines []core.DetailLine) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Settlement for %s\n", cutoff)
	fmt.Fprintf(&b, "%s pays %s: %s yen\n", h.Member1, h.Member2, s.OwedByMember1)
	fmt.Fprintf(&b, "%s pays %s: %s yen\n", h.Member2, h.Member1, s.OwedByMember2)
	if len(lines) > 0 {
		b.WriteString("\nDetails:\n")
		for _, l := range lines {
			fmt.Fprintf(&b, "- %s: %s yen (%s)\n", l.Category, l.Amount, l.Payer)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatDiff(d ledger.DiffReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Spending changes for %s\n", d.Current)
	fmt.Fprintf(&b, "vs %s:\n", d.PriorMonth)
	writeDeltas(&b, d.LastMonth)
	fmt.Fprintf(&b, "vs %s:\n", d.PriorYear)
	writeDeltas(&b, d.LastYear)
	return strings.TrimRight(b.String(), "\n")
}

func writeDeltas(b *strings.Builder, deltas map[core.Category]decimal.Decimal) {
	for _, c := range core.Categories() {
		delta := deltas[c]
		if delta.IsZero() {
			continue
		}
		sign := "+"
		if delta.IsNegative() {
			sign = ""
		}
		fmt.Fprintf(b, "- %s: %s%s yen\n", c, sign, delta)
	}
}

func formatChores(summaries ...core.ChoreSummary) string {
	var b strings.Builder
	b.WriteString("Chore settlement\n")
	for _, s := range summaries {
		fmt.Fprintf(&b, "%s earned %s yen\n", s.Person, s.TotalOwed)
		for _, ct := range sortedTypes(s.CountsByType) {
			fmt.Fprintf(&b, "- %s x%d\n", ct, s.CountsByType[ct])
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatFailure renders the operator-facing notice for a failed batch run.
// End users never see engine errors, only this single notice channel does.
func FormatFailure(job string, err error) string {
	return fmt.Sprintf("Batch job %q failed: %v", job, err)
}

func sortedTypes(counts map[string]int) []string {
	types := make([]string, 0, len(counts))
	for ct := range counts {
		types = append(types, ct)
	}
	sort.Strings(types)
	return types
}
