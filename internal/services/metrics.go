package services

import (
	"github.com/shopspring/decimal"

	"cafe-dashboard/internal/dataset"
	"cafe-dashboard/internal/models"
)

// Deltas are period-over-period percentage changes. A nil delta means the
// comparison is undefined (previous window empty or zero), which is a normal
// state, not an error.
type Deltas struct {
	RevenuePct      *float64 `json:"revenue_pct"`
	QuantityPct     *float64 `json:"quantity_pct"`
	TransactionsPct *float64 `json:"transactions_pct"`
}

// DeltaPct returns (current-previous)/previous*100, or nil when previous is
// zero. It never produces Inf or NaN.
func DeltaPct(current, previous float64) *float64 {
	if previous == 0 {
		return nil
	}
	d := (current - previous) / previous * 100
	return &d
}

// SplitHalves sorts the set by datetime and splits it by record count:
// previous is the first half, current the second. Count-based halving is the
// historical rule for the implicit trend window; callers with real calendar
// periods should filter two sets and call Compare directly.
func SplitHalves(set *dataset.TransactionSet) (previous, current *dataset.TransactionSet) {
	sorted := set.SortByDateTime()
	half := sorted.Len() / 2
	return sorted.Slice(0, half), sorted.Slice(half, sorted.Len())
}

func sumRevenue(set *dataset.TransactionSet) decimal.Decimal {
	var total decimal.Decimal
	for _, tx := range set.Transactions() {
		total = total.Add(tx.TotalBill)
	}
	return total
}

func sumQuantity(set *dataset.TransactionSet) int {
	total := 0
	for _, tx := range set.Transactions() {
		total += tx.Quantity
	}
	return total
}

// Compare computes the named deltas of current against previous. An empty
// previous set yields all-nil deltas.
func Compare(current, previous *dataset.TransactionSet) Deltas {
	if previous.Len() == 0 {
		return Deltas{}
	}
	return Deltas{
		RevenuePct:      DeltaPct(sumRevenue(current).InexactFloat64(), sumRevenue(previous).InexactFloat64()),
		QuantityPct:     DeltaPct(float64(sumQuantity(current)), float64(sumQuantity(previous))),
		TransactionsPct: DeltaPct(float64(current.Len()), float64(previous.Len())),
	}
}

// Summarize computes the KPI summary of current, with growth deltas against
// previous. Pass nil (or an empty set) for previous to get nil deltas. Total
// over the empty set: all metrics are zero, no division happens.
func Summarize(current, previous *dataset.TransactionSet) models.MetricsSummary {
	summary := models.MetricsSummary{
		TotalTransactions: current.Len(),
		TotalQuantity:     sumQuantity(current),
		UniqueProducts: len(current.Distinct(func(t models.Transaction) string {
			return t.ProductDetail
		})),
	}

	revenue := sumRevenue(current)
	summary.TotalRevenue = revenue.InexactFloat64()

	if n := current.Len(); n > 0 {
		count := decimal.NewFromInt(int64(n))
		summary.AvgTransactionValue = revenue.Div(count).InexactFloat64()
		summary.AvgItemsPerTransaction = float64(summary.TotalQuantity) / float64(n)
	}

	deltas := Compare(current, previous)
	summary.RevenueGrowthPct = deltas.RevenuePct
	summary.TransactionGrowthPct = deltas.TransactionsPct

	return summary
}

// SummarizeWithTrend derives the growth figures from the set's own halves
// when no explicit previous period is available.
func SummarizeWithTrend(set *dataset.TransactionSet) models.MetricsSummary {
	previous, current := SplitHalves(set)

	summary := Summarize(set, nil)
	deltas := Compare(current, previous)
	summary.RevenueGrowthPct = deltas.RevenuePct
	summary.TransactionGrowthPct = deltas.TransactionsPct
	return summary
}
