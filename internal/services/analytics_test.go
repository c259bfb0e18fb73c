package services

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"cafe-dashboard/internal/dataset"
	"cafe-dashboard/internal/models"
)

func newTestAnalytics(t *testing.T) *Analytics {
	t.Helper()
	a := NewAnalytics(slog.New(slog.NewTextHandler(io.Discard, nil)))
	a.SetData([]models.Transaction{
		tx("T001", "2023-01-05", "08:30:00", "A", "Astoria", "Coffee", "Brewed coffee", "Ethiopia Rg", "3.50", 2),
		tx("T002", "2023-01-05", "12:00:00", "B", "Lower Manhattan", "Tea", "Brewed herbal tea", "Peppermint", "2.00", 1),
		tx("T003", "2023-01-06", "18:15:00", "A", "Astoria", "Coffee", "Barista Espresso", "Latte", "4.25", 2),
	})
	return a
}

func TestAnalytics_KPIs(t *testing.T) {
	a := newTestAnalytics(t)

	summary := a.KPIs(dataset.Filter{})

	if summary.TotalTransactions != 3 {
		t.Errorf("TotalTransactions = %d, want 3", summary.TotalTransactions)
	}
	// 3.50*2 + 2.00*1 + 4.25*2 = 17.50
	if summary.TotalRevenue != 17.50 {
		t.Errorf("TotalRevenue = %v, want 17.50", summary.TotalRevenue)
	}
	if summary.UniqueProducts != 3 {
		t.Errorf("UniqueProducts = %d, want 3", summary.UniqueProducts)
	}
}

func TestAnalytics_FilteredKPIs(t *testing.T) {
	a := newTestAnalytics(t)

	summary := a.KPIs(dataset.Filter{Categories: []string{"Coffee"}})

	if summary.TotalTransactions != 2 {
		t.Errorf("TotalTransactions = %d, want 2", summary.TotalTransactions)
	}
	if summary.TotalRevenue != 15.50 {
		t.Errorf("TotalRevenue = %v, want 15.50", summary.TotalRevenue)
	}
}

func TestAnalytics_RevenueByCategory(t *testing.T) {
	a := newTestAnalytics(t)

	rows := a.RevenueByCategory(dataset.Filter{})

	if len(rows) != 2 {
		t.Fatalf("got %d categories, want 2", len(rows))
	}
	byName := map[string]models.CategoryRevenue{}
	for _, row := range rows {
		byName[row.Category] = row
	}
	if byName["Coffee"].Revenue != 15.50 {
		t.Errorf("Coffee revenue = %v, want 15.50", byName["Coffee"].Revenue)
	}
	if byName["Tea"].Revenue != 2.00 {
		t.Errorf("Tea revenue = %v, want 2.00", byName["Tea"].Revenue)
	}
}

func TestAnalytics_TopProducts(t *testing.T) {
	a := newTestAnalytics(t)

	products := a.TopProducts(dataset.Filter{}, 2)

	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}
	if products[0].Detail != "Latte" || products[0].Revenue != 8.50 {
		t.Errorf("top product = %+v, want Latte at 8.50", products[0])
	}
	if products[1].Detail != "Ethiopia Rg" {
		t.Errorf("second product = %q, want Ethiopia Rg", products[1].Detail)
	}
}

func TestAnalytics_FilterOptions(t *testing.T) {
	a := newTestAnalytics(t)

	opts := a.FilterOptions()

	if len(opts.Stores) != 2 || opts.Stores[0] != "A" || opts.Stores[1] != "B" {
		t.Errorf("Stores = %v, want [A B]", opts.Stores)
	}
	if len(opts.Categories) != 2 {
		t.Errorf("Categories = %v, want 2 entries", opts.Categories)
	}
	if opts.DateMin != "2023-01-05" || opts.DateMax != "2023-01-06" {
		t.Errorf("date range = %s..%s, want 2023-01-05..2023-01-06", opts.DateMin, opts.DateMax)
	}
}

func TestAnalytics_Stats(t *testing.T) {
	a := newTestAnalytics(t)

	stats := a.Stats()

	if stats["record_count"] != 3 {
		t.Errorf("record_count = %v, want 3", stats["record_count"])
	}
	if stats["date_min"] != "2023-01-05" {
		t.Errorf("date_min = %v, want 2023-01-05", stats["date_min"])
	}
}

func TestAnalytics_LoadFromCSV(t *testing.T) {
	csv := "transaction_id,transaction_date,transaction_time,transaction_qty,unit_price,store_id,store_location,product_id,product_category,product_type,product_detail,Size\n" +
		"114331,05/01/2023,08:30:00,2,3.50,5,Lower Manhattan,32,Coffee,Brewed coffee,Ethiopia Rg,Regular\n" +
		"114332,06/01/2023,12:15:00,1,2.00,5,Lower Manhattan,57,Tea,Brewed herbal tea,Peppermint,Large\n"

	path := filepath.Join(t.TempDir(), "sales.csv")
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	a := NewAnalytics(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := a.LoadFromCSV(context.Background(), path, dataset.Options{DayFirst: true}); err != nil {
		t.Fatalf("LoadFromCSV() failed: %v", err)
	}

	if a.Base().Len() != 2 {
		t.Fatalf("loaded %d records, want 2", a.Base().Len())
	}
	summary := a.KPIs(dataset.Filter{})
	if summary.TotalRevenue != 9.00 {
		t.Errorf("TotalRevenue = %v, want 9.00", summary.TotalRevenue)
	}
	if a.Stats()["source"] != path {
		t.Errorf("source = %v, want %s", a.Stats()["source"], path)
	}
}

func TestAnalytics_EmptyBeforeLoad(t *testing.T) {
	a := NewAnalytics(nil)

	summary := a.KPIs(dataset.Filter{})
	if summary.TotalTransactions != 0 || summary.TotalRevenue != 0 {
		t.Errorf("summary = %+v, want zeros", summary)
	}
	if rows := a.DailyTrend(dataset.Filter{}); len(rows) != 0 {
		t.Errorf("DailyTrend on empty base = %v, want none", rows)
	}
}
