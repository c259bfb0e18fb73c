package services

import (
	"math"
	"testing"

	"cafe-dashboard/internal/dataset"
	"cafe-dashboard/internal/models"
)

func TestMonthlyTrend_OmitsEmptyMonths(t *testing.T) {
	set := dataset.NewTransactionSet([]models.Transaction{
		tx("T001", "2023-01-05", "08:30:00", "A", "Astoria", "Coffee", "Brewed coffee", "Ethiopia Rg", "3.00", 1),
		tx("T002", "2023-03-10", "12:00:00", "A", "Astoria", "Coffee", "Brewed coffee", "Ethiopia Rg", "4.00", 1),
	})

	trend := MonthlyTrend(set)

	if len(trend) != 2 {
		t.Fatalf("got %d months, want 2", len(trend))
	}
	if trend[0].Month != "January" || trend[1].Month != "March" {
		t.Errorf("months = %s, %s, want January, March", trend[0].Month, trend[1].Month)
	}
}

func TestSalesByWeekday_FillsFullWeek(t *testing.T) {
	week := SalesByWeekday(sampleSet())

	if len(week) != 7 {
		t.Fatalf("got %d days, want 7", len(week))
	}
	if week[0].Day != "Monday" || week[6].Day != "Sunday" {
		t.Errorf("week runs %s..%s, want Monday..Sunday", week[0].Day, week[6].Day)
	}
	// sampleSet is all on a Thursday.
	if week[3].Revenue != 9.00 {
		t.Errorf("Thursday revenue = %v, want 9.00", week[3].Revenue)
	}
	if week[6].Revenue != 0 {
		t.Errorf("Sunday revenue = %v, want 0", week[6].Revenue)
	}
}

func TestTimePeriodDistribution(t *testing.T) {
	shares := TimePeriodDistribution(sampleSet())

	if len(shares) != len(dataset.TimePeriods) {
		t.Fatalf("got %d periods, want %d", len(shares), len(dataset.TimePeriods))
	}
	byPeriod := map[string]models.TimePeriodShare{}
	for _, s := range shares {
		byPeriod[s.Period] = s
	}
	if byPeriod[dataset.PeriodMorning].Revenue != 7.00 {
		t.Errorf("Morning revenue = %v, want 7.00", byPeriod[dataset.PeriodMorning].Revenue)
	}
	if byPeriod[dataset.PeriodLunch].Revenue != 2.00 {
		t.Errorf("Lunch revenue = %v, want 2.00", byPeriod[dataset.PeriodLunch].Revenue)
	}
	if byPeriod[dataset.PeriodNight].Revenue != 0 {
		t.Errorf("Night revenue = %v, want 0", byPeriod[dataset.PeriodNight].Revenue)
	}
}

func TestCompareCategories_OuterMerge(t *testing.T) {
	current := dataset.NewTransactionSet([]models.Transaction{
		tx("T010", "2023-02-01", "09:00:00", "A", "Astoria", "Coffee", "Brewed coffee", "Ethiopia Rg", "5.00", 1),
	})
	previous := dataset.NewTransactionSet([]models.Transaction{
		tx("T001", "2023-01-01", "09:00:00", "A", "Astoria", "Coffee", "Brewed coffee", "Ethiopia Rg", "4.00", 1),
		tx("T002", "2023-01-02", "09:00:00", "A", "Astoria", "Tea", "Brewed herbal tea", "Peppermint", "2.00", 1),
	})

	rows := CompareCategories(current, previous)

	if len(rows) != 2 {
		t.Fatalf("got %d categories, want 2", len(rows))
	}
	// Ascending by current revenue, so the vanished category comes first.
	if rows[0].Category != "Tea" || rows[0].CurrentRevenue != 0 || rows[0].PreviousRevenue != 2.00 {
		t.Errorf("rows[0] = %+v, want Tea 0/2.00", rows[0])
	}
	if rows[1].Category != "Coffee" || rows[1].CurrentRevenue != 5.00 || rows[1].PreviousRevenue != 4.00 {
		t.Errorf("rows[1] = %+v, want Coffee 5.00/4.00", rows[1])
	}
}

func TestCategorySummaries_SharesSumTo100(t *testing.T) {
	summaries := CategorySummaries(sampleSet())

	if len(summaries) != 2 {
		t.Fatalf("got %d categories, want 2", len(summaries))
	}
	total := 0.0
	for _, s := range summaries {
		total += s.SalesPct
	}
	if math.Abs(total-100.0) > 1e-9 {
		t.Errorf("shares sum to %v, want 100", total)
	}
	// Highest revenue first.
	if summaries[0].Category != "Coffee" {
		t.Errorf("summaries[0] = %q, want Coffee", summaries[0].Category)
	}
	if summaries[0].AvgUnitPrice != 3.50 {
		t.Errorf("Coffee avg price = %v, want 3.50", summaries[0].AvgUnitPrice)
	}
}

func TestPriceQuantityMatrix(t *testing.T) {
	matrix := PriceQuantityMatrix(sampleSet())

	if len(matrix.Points) != 2 {
		t.Fatalf("got %d points, want 2", len(matrix.Points))
	}
	// Alphabetical: Coffee then Tea.
	coffee := matrix.Points[0]
	if coffee.Category != "Coffee" || coffee.AvgUnitPrice != 3.50 || coffee.AvgQuantity != 2.0 {
		t.Errorf("coffee point = %+v", coffee)
	}
	if coffee.Revenue != 7.00 {
		t.Errorf("coffee revenue = %v, want 7.00", coffee.Revenue)
	}
	// Overall means across both transactions: (3.50+2.00)/2 and (2+1)/2.
	if matrix.AvgUnitPrice != 2.75 || matrix.AvgQuantity != 1.5 {
		t.Errorf("overall means = %v/%v, want 2.75/1.5", matrix.AvgUnitPrice, matrix.AvgQuantity)
	}
}

func TestDailyTrendMean(t *testing.T) {
	series := []models.DailyRevenue{
		{Date: "2023-01-01", Revenue: 10},
		{Date: "2023-01-02", Revenue: 20},
	}
	if got := DailyTrendMean(series); got != 15 {
		t.Errorf("DailyTrendMean = %v, want 15", got)
	}
	if got := DailyTrendMean(nil); got != 0 {
		t.Errorf("DailyTrendMean(nil) = %v, want 0", got)
	}
}
