package core

// Category is one entry of the fixed expense vocabulary. The same list
// drives aggregation and the summary ledger's row axis, so the two cannot
// drift apart.
type Category string

const (
	CategoryFood        Category = "food"
	CategoryMisc        Category = "misc"
	CategoryGas         Category = "gas"
	CategoryElectricity Category = "electricity"
	CategoryWater       Category = "water"
	CategoryCar         Category = "car"
	CategoryLeisure     Category = "leisure"
	CategoryDiningOut   Category = "dining-out"
	CategoryBeverages   Category = "beverages"
	CategoryOther       Category = "other"
)

// PeriodLabel is the extra row label of the summary ledger, next to the
// category rows.
const PeriodLabel = "period"

// Categories returns the vocabulary in summary-ledger row order. Order is
// load-bearing: the label rows of the summary table follow it.
func Categories() []Category {
	return []Category{
		CategoryFood,
		CategoryMisc,
		CategoryGas,
		CategoryElectricity,
		CategoryWater,
		CategoryCar,
		CategoryLeisure,
		CategoryDiningOut,
		CategoryBeverages,
		CategoryOther,
	}
}

// KnownCategory reports whether c is part of the vocabulary.
func KnownCategory(c Category) bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}
