package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"cafe-dashboard/internal/dataset"
	"cafe-dashboard/internal/models"
	"cafe-dashboard/internal/observability"
)

// Analytics owns the process-wide transaction set. The base set is built
// once at load and treated as read-only afterwards; every query filters and
// aggregates from it without locking beyond the load/swap guard, so requests
// are stateless and independently computable.
type Analytics struct {
	mu       sync.RWMutex
	base     *dataset.TransactionSet
	stats    dataset.LoadStats
	loadedAt time.Time
	csvPath  string
	logger   *slog.Logger
}

func NewAnalytics(logger *slog.Logger) *Analytics {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analytics{
		base:   dataset.Empty(),
		logger: logger,
	}
}

// SetData replaces the base set with in-memory transactions, deriving
// computed fields. Used by tests and embedders that bypass the CSV.
func (a *Analytics) SetData(txs []models.Transaction) {
	derived := make([]models.Transaction, len(txs))
	for i, tx := range txs {
		derived[i] = dataset.Derive(tx)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.base = dataset.NewTransactionSet(derived)
	a.stats = dataset.LoadStats{Records: len(derived)}
	a.loadedAt = time.Now()
}

// LoadFromCSV loads the base set from the sales CSV, sorted by datetime.
func (a *Analytics) LoadFromCSV(ctx context.Context, filename string, opts dataset.Options) error {
	ctx, span := observability.StartSpan(ctx, "dataset.load")
	defer span.Finish()
	span.SetTag("filename", filename)

	start := time.Now()
	a.logger.Info("processing CSV file", "filename", filename, "day_first", opts.DayFirst)

	set, stats, err := dataset.LoadCSV(ctx, filename, opts, a.logger)
	if err != nil {
		span.SetError(err)
		return fmt.Errorf("load csv: %w", err)
	}
	sorted := set.SortByDateTime()

	a.mu.Lock()
	a.base = sorted
	a.stats = stats
	a.loadedAt = time.Now()
	a.csvPath = filename
	a.mu.Unlock()

	duration := time.Since(start)
	a.logger.Info("csv processing complete",
		"records", stats.Records,
		"skipped", stats.Skipped,
		"duration", duration,
		"rate", fmt.Sprintf("%.0f records/sec", float64(stats.Records)/duration.Seconds()))

	return nil
}

// Base returns the immutable base set.
func (a *Analytics) Base() *dataset.TransactionSet {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.base
}

// Filtered returns a new set narrowed by f.
func (a *Analytics) Filtered(f dataset.Filter) *dataset.TransactionSet {
	return f.Apply(a.Base())
}

// KPIs summarizes the filtered set, with growth deltas from the implicit
// half-split when the filter does not supply an explicit previous period.
func (a *Analytics) KPIs(f dataset.Filter) models.MetricsSummary {
	return SummarizeWithTrend(a.Filtered(f))
}

// KPIsAgainst summarizes the current filter against an explicit previous
// filter, e.g. one calendar month against the one before it.
func (a *Analytics) KPIsAgainst(current, previous dataset.Filter) models.MetricsSummary {
	return Summarize(a.Filtered(current), a.Filtered(previous))
}

func (a *Analytics) DailyTrend(f dataset.Filter) []models.DailyRevenue {
	return DailyTrend(a.Filtered(f))
}

func (a *Analytics) MonthlyTrend(f dataset.Filter) []models.MonthlyRevenue {
	return MonthlyTrend(a.Filtered(f))
}

func (a *Analytics) RevenueByCategory(f dataset.Filter) []models.CategoryRevenue {
	return RevenueByCategory(a.Filtered(f))
}

func (a *Analytics) RevenueByStore(f dataset.Filter) []models.StoreRevenue {
	return RevenueByStore(a.Filtered(f))
}

func (a *Analytics) SalesByHour(f dataset.Filter) []models.HourlyRevenue {
	return SalesByHour(a.Filtered(f))
}

func (a *Analytics) SalesByWeekday(f dataset.Filter) []models.WeekdayRevenue {
	return SalesByWeekday(a.Filtered(f))
}

func (a *Analytics) HourWeekdayHeatmap(f dataset.Filter) models.Heatmap {
	return HourWeekdayHeatmap(a.Filtered(f))
}

func (a *Analytics) TopProducts(f dataset.Filter, n int) []models.ProductSales {
	return TopProducts(a.Filtered(f), n)
}

func (a *Analytics) TimePeriodDistribution(f dataset.Filter) []models.TimePeriodShare {
	return TimePeriodDistribution(a.Filtered(f))
}

func (a *Analytics) CompareCategories(current, previous dataset.Filter) []models.CategoryComparison {
	return CompareCategories(a.Filtered(current), a.Filtered(previous))
}

func (a *Analytics) CategorySummaries(f dataset.Filter) []models.CategorySummary {
	return CategorySummaries(a.Filtered(f))
}

func (a *Analytics) PriceQuantityMatrix(f dataset.Filter) models.PriceQuantityMatrix {
	return PriceQuantityMatrix(a.Filtered(f))
}

// FilterOptions lists the distinct values each filter dimension accepts,
// plus the covered date range, for populating dashboard controls.
func (a *Analytics) FilterOptions() models.FilterOptions {
	base := a.Base()
	opts := models.FilterOptions{
		Stores:     base.Distinct(func(t models.Transaction) string { return t.StoreID }),
		Locations:  base.Distinct(func(t models.Transaction) string { return t.StoreLocation }),
		Categories: base.Distinct(func(t models.Transaction) string { return t.ProductCategory }),
		Products:   base.Distinct(func(t models.Transaction) string { return t.ProductType }),
	}
	if min, max, ok := base.DateRange(); ok {
		opts.DateMin = min.Format("2006-01-02")
		opts.DateMax = max.Format("2006-01-02")
	}
	return opts
}

// Stats is the monitoring view served at /admin/stats.
func (a *Analytics) Stats() map[string]any {
	a.mu.RLock()
	defer a.mu.RUnlock()

	stats := map[string]any{
		"record_count": a.stats.Records,
		"skipped_rows": a.stats.Skipped,
		"loaded_at":    a.loadedAt,
		"source":       a.csvPath,
	}
	if min, max, ok := a.base.DateRange(); ok {
		stats["date_min"] = min.Format("2006-01-02")
		stats["date_max"] = max.Format("2006-01-02")
	}
	return stats
}
