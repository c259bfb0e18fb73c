package services

import (
	"math"
	"testing"

	"cafe-dashboard/internal/dataset"
	"cafe-dashboard/internal/models"
)

func heatmapSet() *dataset.TransactionSet {
	return dataset.NewTransactionSet([]models.Transaction{
		// Thursday
		tx("T001", "2023-01-05", "08:30:00", "A", "Astoria", "Coffee", "Brewed", "Ethiopia Rg", "3.50", 2),
		tx("T002", "2023-01-05", "08:45:00", "A", "Astoria", "Tea", "Herbal", "Peppermint", "2.00", 1),
		tx("T003", "2023-01-05", "12:10:00", "B", "Lower Manhattan", "Coffee", "Drip", "Diner Blend", "4.00", 1),
		// Friday
		tx("T004", "2023-01-06", "08:05:00", "A", "Astoria", "Bakery", "Scone", "Oatmeal Scone", "4.75", 2),
	})
}

func TestPivot_TotalsConsistentWithCells(t *testing.T) {
	hm, err := Pivot(heatmapSet(), FieldHour, FieldDayName, revenueSum(), nil, WeekdayOrder)
	if err != nil {
		t.Fatalf("Pivot() failed: %v", err)
	}

	if len(hm.RowLabels) != 2 { // hours 8 and 12
		t.Fatalf("row labels = %v, want [8 12]", hm.RowLabels)
	}
	if len(hm.ColLabels) != 7 {
		t.Fatalf("col labels = %v, want full week", hm.ColLabels)
	}

	var rowSum, colSum, cellSum float64
	for i := range hm.Cells {
		for _, v := range hm.Cells[i] {
			cellSum += v
		}
	}
	for _, v := range hm.RowTotals {
		rowSum += v
	}
	for _, v := range hm.ColTotals {
		colSum += v
	}

	if math.Abs(rowSum-colSum) > 1e-9 || math.Abs(rowSum-hm.GrandTotal) > 1e-9 || math.Abs(cellSum-hm.GrandTotal) > 1e-9 {
		t.Errorf("totals disagree: rows=%v cols=%v cells=%v grand=%v", rowSum, colSum, cellSum, hm.GrandTotal)
	}

	// 2*3.50 + 2.00 + 4.00 + 2*4.75 = 22.50
	if math.Abs(hm.GrandTotal-22.50) > 1e-9 {
		t.Errorf("grand total = %v, want 22.50", hm.GrandTotal)
	}
}

func TestPivot_CellPlacement(t *testing.T) {
	hm, err := Pivot(heatmapSet(), FieldHour, FieldDayName, revenueSum(), nil, WeekdayOrder)
	if err != nil {
		t.Fatalf("Pivot() failed: %v", err)
	}

	cell := func(rowLabel, colLabel string) float64 {
		t.Helper()
		for i, r := range hm.RowLabels {
			for j, c := range hm.ColLabels {
				if r == rowLabel && c == colLabel {
					return hm.Cells[i][j]
				}
			}
		}
		t.Fatalf("no cell (%s, %s)", rowLabel, colLabel)
		return 0
	}

	if got := cell("8", "Thursday"); math.Abs(got-9.00) > 1e-9 {
		t.Errorf("cell(8, Thursday) = %v, want 9.00", got)
	}
	if got := cell("12", "Thursday"); math.Abs(got-4.00) > 1e-9 {
		t.Errorf("cell(12, Thursday) = %v, want 4.00", got)
	}
	if got := cell("8", "Friday"); math.Abs(got-9.50) > 1e-9 {
		t.Errorf("cell(8, Friday) = %v, want 9.50", got)
	}
	if got := cell("12", "Monday"); got != 0 {
		t.Errorf("cell(12, Monday) = %v, want zero fill", got)
	}
}

func TestPivot_EmptySet(t *testing.T) {
	hm, err := Pivot(dataset.Empty(), FieldHour, FieldDayName, revenueSum(), nil, WeekdayOrder)
	if err != nil {
		t.Fatalf("Pivot() failed on the empty set: %v", err)
	}
	if len(hm.RowLabels) != 0 || hm.GrandTotal != 0 {
		t.Errorf("empty pivot = %+v, want no rows and zero total", hm)
	}
}
