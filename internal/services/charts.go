package services

import (
	"sort"
	"strconv"

	"cafe-dashboard/internal/dataset"
	"cafe-dashboard/internal/models"
)

// Canonical categorical orderings. The aggregation engine is
// ordering-agnostic; these belong to the callers that render them.
var (
	WeekdayOrder = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	MonthOrder   = []string{
		"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December",
	}
)

const (
	measureRevenue      = "revenue"
	measureQuantity     = "quantity"
	measureTransactions = "transactions"
	measureAvgPrice     = "avg_unit_price"
	measureAvgQty       = "avg_quantity"
)

func revenueSum() Measure {
	return Measure{Name: measureRevenue, Field: FieldTotalBill, Reduce: ReduceSum}
}

func quantitySum() Measure {
	return Measure{Name: measureQuantity, Field: FieldQuantity, Reduce: ReduceSum}
}

func transactionCount() Measure {
	return Measure{Name: measureTransactions, Field: FieldTransactionID, Reduce: ReduceNUnique}
}

// RevenueByCategory sums revenue, quantity and transactions per product
// category, highest revenue first.
func RevenueByCategory(set *dataset.TransactionSet) []models.CategoryRevenue {
	rows, _ := Aggregate(set, []Field{FieldCategory}, []Measure{
		revenueSum(), quantitySum(), transactionCount(),
	})
	out := make([]models.CategoryRevenue, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.CategoryRevenue{
			Category:     r.Keys[0],
			Revenue:      r.Values[measureRevenue],
			Quantity:     int(r.Values[measureQuantity]),
			Transactions: int(r.Values[measureTransactions]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return out
}

// RevenueByStore sums revenue per store, highest first.
func RevenueByStore(set *dataset.TransactionSet) []models.StoreRevenue {
	rows, _ := Aggregate(set, []Field{FieldStoreID, FieldStoreLocation}, []Measure{
		revenueSum(), quantitySum(), transactionCount(),
	})
	out := make([]models.StoreRevenue, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.StoreRevenue{
			StoreID:      r.Keys[0],
			Location:     r.Keys[1],
			Revenue:      r.Values[measureRevenue],
			Quantity:     int(r.Values[measureQuantity]),
			Transactions: int(r.Values[measureTransactions]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return out
}

// DailyTrend returns revenue per calendar date in chronological order.
func DailyTrend(set *dataset.TransactionSet) []models.DailyRevenue {
	rows, _ := Aggregate(set, []Field{FieldDate}, []Measure{revenueSum()})
	out := make([]models.DailyRevenue, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.DailyRevenue{Date: r.Keys[0], Revenue: r.Values[measureRevenue]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// MonthlyTrend returns revenue per month in calendar order. Months without
// transactions are omitted.
func MonthlyTrend(set *dataset.TransactionSet) []models.MonthlyRevenue {
	rows, _ := Aggregate(set, []Field{FieldMonthName}, []Measure{revenueSum()})
	rows = Reindex(rows, MonthOrder, false)
	out := make([]models.MonthlyRevenue, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.MonthlyRevenue{Month: r.Keys[0], Revenue: r.Values[measureRevenue]})
	}
	return out
}

// SalesByHour returns revenue per hour of day, ascending.
func SalesByHour(set *dataset.TransactionSet) []models.HourlyRevenue {
	rows, _ := Aggregate(set, []Field{FieldHour}, []Measure{revenueSum()})
	out := make([]models.HourlyRevenue, 0, len(rows))
	for _, r := range rows {
		hour, _ := strconv.Atoi(r.Keys[0])
		out = append(out, models.HourlyRevenue{Hour: hour, Revenue: r.Values[measureRevenue]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}

// SalesByWeekday returns revenue per weekday in Monday-first order,
// zero-filling days with no sales so the week renders complete.
func SalesByWeekday(set *dataset.TransactionSet) []models.WeekdayRevenue {
	rows, _ := Aggregate(set, []Field{FieldDayName}, []Measure{revenueSum()})
	rows = Reindex(rows, WeekdayOrder, true)
	out := make([]models.WeekdayRevenue, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.WeekdayRevenue{Day: r.Keys[0], Revenue: r.Values[measureRevenue]})
	}
	return out
}

// HourWeekdayHeatmap pivots revenue over hour-of-day rows and weekday
// columns, with totals appended.
func HourWeekdayHeatmap(set *dataset.TransactionSet) models.Heatmap {
	hm, _ := Pivot(set, FieldHour, FieldDayName, revenueSum(), nil, WeekdayOrder)
	return hm
}

// TopProducts ranks products by revenue and keeps the top n.
func TopProducts(set *dataset.TransactionSet, n int) []models.ProductSales {
	rows, _ := Aggregate(set, []Field{FieldCategory, FieldProductType, FieldProductDetail}, []Measure{
		revenueSum(), quantitySum(), transactionCount(),
	})
	out := make([]models.ProductSales, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.ProductSales{
			Category:     r.Keys[0],
			Type:         r.Keys[1],
			Detail:       r.Keys[2],
			Revenue:      r.Values[measureRevenue],
			Quantity:     int(r.Values[measureQuantity]),
			Transactions: int(r.Values[measureTransactions]),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// TimePeriodDistribution buckets revenue by time of day in chronological
// bucket order, keeping empty buckets visible.
func TimePeriodDistribution(set *dataset.TransactionSet) []models.TimePeriodShare {
	rows, _ := Aggregate(set, []Field{FieldTimePeriod}, []Measure{revenueSum(), transactionCount()})
	rows = Reindex(rows, dataset.TimePeriods, true)
	out := make([]models.TimePeriodShare, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.TimePeriodShare{
			Period:       r.Keys[0],
			Revenue:      r.Values[measureRevenue],
			Transactions: int(r.Values[measureTransactions]),
		})
	}
	return out
}

// CompareCategories outer-merges per-category revenue of two sets,
// zero-filling categories present in only one of them. Sorted by current
// revenue ascending, matching the horizontal bar layout it feeds.
func CompareCategories(current, previous *dataset.TransactionSet) []models.CategoryComparison {
	cur, _ := Aggregate(current, []Field{FieldCategory}, []Measure{revenueSum()})
	prev, _ := Aggregate(previous, []Field{FieldCategory}, []Measure{revenueSum()})

	merged := make(map[string]*models.CategoryComparison)
	order := make([]string, 0)
	add := func(key string) *models.CategoryComparison {
		if c, ok := merged[key]; ok {
			return c
		}
		c := &models.CategoryComparison{Category: key}
		merged[key] = c
		order = append(order, key)
		return c
	}
	for _, r := range cur {
		add(r.Keys[0]).CurrentRevenue = r.Values[measureRevenue]
	}
	for _, r := range prev {
		add(r.Keys[0]).PreviousRevenue = r.Values[measureRevenue]
	}

	out := make([]models.CategoryComparison, 0, len(order))
	for _, key := range order {
		out = append(out, *merged[key])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CurrentRevenue < out[j].CurrentRevenue })
	return out
}

// CategorySummaries builds the per-category summary table with each
// category's share of total revenue.
func CategorySummaries(set *dataset.TransactionSet) []models.CategorySummary {
	rows, _ := Aggregate(set, []Field{FieldCategory}, []Measure{
		revenueSum(),
		quantitySum(),
		{Name: measureAvgPrice, Field: FieldUnitPrice, Reduce: ReduceMean},
	})

	total := 0.0
	for _, r := range rows {
		total += r.Values[measureRevenue]
	}

	out := make([]models.CategorySummary, 0, len(rows))
	for _, r := range rows {
		s := models.CategorySummary{
			Category:     r.Keys[0],
			Revenue:      r.Values[measureRevenue],
			AvgUnitPrice: r.Values[measureAvgPrice],
			Quantity:     int(r.Values[measureQuantity]),
		}
		if total > 0 {
			s.SalesPct = s.Revenue / total * 100
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return out
}

// DailyTrendMean is the reference line drawn across the daily trend chart:
// the mean of the per-day revenues, zero for an empty series.
func DailyTrendMean(series []models.DailyRevenue) float64 {
	if len(series) == 0 {
		return 0
	}
	total := 0.0
	for _, d := range series {
		total += d.Revenue
	}
	return total / float64(len(series))
}

// PriceQuantityMatrix positions each category by its mean unit price and
// mean quantity per transaction, sized by total revenue. The overall means
// across all transactions split the matrix into quadrants.
func PriceQuantityMatrix(set *dataset.TransactionSet) models.PriceQuantityMatrix {
	rows, _ := Aggregate(set, []Field{FieldCategory}, []Measure{
		{Name: measureAvgPrice, Field: FieldUnitPrice, Reduce: ReduceMean},
		{Name: measureAvgQty, Field: FieldQuantity, Reduce: ReduceMean},
		revenueSum(),
	})
	points := make([]models.PriceQuantityPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, models.PriceQuantityPoint{
			Category:     r.Keys[0],
			AvgUnitPrice: r.Values[measureAvgPrice],
			AvgQuantity:  r.Values[measureAvgQty],
			Revenue:      r.Values[measureRevenue],
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Category < points[j].Category })

	matrix := models.PriceQuantityMatrix{Points: points}
	if set.Len() > 0 {
		overall, _ := Aggregate(set, nil, []Measure{
			{Name: measureAvgPrice, Field: FieldUnitPrice, Reduce: ReduceMean},
			{Name: measureAvgQty, Field: FieldQuantity, Reduce: ReduceMean},
		})
		matrix.AvgUnitPrice = overall[0].Values[measureAvgPrice]
		matrix.AvgQuantity = overall[0].Values[measureAvgQty]
	}
	return matrix
}
