package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"cafe-dashboard/internal/dataset"
	"cafe-dashboard/internal/errors"
	"cafe-dashboard/internal/observability"
	"cafe-dashboard/internal/services"
)

const (
	cacheMaxAge     = "public, max-age=300"
	queryDateLayout = "2006-01-02"
	defaultTopN     = 10
	maxTopN         = 50
)

type APIHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewAPIHandlers(analytics *services.Analytics, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

// parseFilter builds the predicate set from query parameters. Absent
// parameters leave their dimension unconstrained.
func parseFilter(r *http.Request, prefix string) (dataset.Filter, error) {
	q := r.URL.Query()
	var f dataset.Filter

	if raw := q.Get(prefix + "start"); raw != "" {
		t, err := time.Parse(queryDateLayout, raw)
		if err != nil {
			return f, errors.BadRequestWrap(err, "invalid "+prefix+"start date, want YYYY-MM-DD")
		}
		f.DateStart = &t
	}
	if raw := q.Get(prefix + "end"); raw != "" {
		t, err := time.Parse(queryDateLayout, raw)
		if err != nil {
			return f, errors.BadRequestWrap(err, "invalid "+prefix+"end date, want YYYY-MM-DD")
		}
		f.DateEnd = &t
	}

	f.Stores = splitList(q.Get(prefix + "stores"))
	f.Categories = splitList(q.Get(prefix + "categories"))
	f.Products = splitList(q.Get(prefix + "products"))

	if raw := q.Get(prefix + "min_price"); raw != "" {
		p, err := decimal.NewFromString(raw)
		if err != nil {
			return f, errors.BadRequestWrap(err, "invalid "+prefix+"min_price")
		}
		f.MinPrice = &p
	}
	if raw := q.Get(prefix + "max_price"); raw != "" {
		p, err := decimal.NewFromString(raw)
		if err != nil {
			return f, errors.BadRequestWrap(err, "invalid "+prefix+"max_price")
		}
		f.MaxPrice = &p
	}

	return f, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (h *APIHandlers) withFilter(w http.ResponseWriter, r *http.Request, fn func(dataset.Filter) any) {
	f, err := parseFilter(r, "")
	if err != nil {
		errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
		return
	}

	headers := map[string]string{
		"Cache-Control": cacheMaxAge,
	}
	errors.WriteSuccessWithHeaders(w, fn(f), headers)
}

func (h *APIHandlers) HandleKPIs(w http.ResponseWriter, r *http.Request) {
	h.withFilter(w, r, func(f dataset.Filter) any {
		return h.analytics.KPIs(f)
	})
}

func (h *APIHandlers) HandleDailyTrend(w http.ResponseWriter, r *http.Request) {
	h.withFilter(w, r, func(f dataset.Filter) any {
		series := h.analytics.DailyTrend(f)
		return map[string]any{
			"series": series,
			"mean":   services.DailyTrendMean(series),
		}
	})
}

func (h *APIHandlers) HandleMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	h.withFilter(w, r, func(f dataset.Filter) any {
		return h.analytics.MonthlyTrend(f)
	})
}

func (h *APIHandlers) HandleCategories(w http.ResponseWriter, r *http.Request) {
	h.withFilter(w, r, func(f dataset.Filter) any {
		return h.analytics.RevenueByCategory(f)
	})
}

func (h *APIHandlers) HandleCategorySummary(w http.ResponseWriter, r *http.Request) {
	h.withFilter(w, r, func(f dataset.Filter) any {
		return h.analytics.CategorySummaries(f)
	})
}

// HandleCategoryComparison compares the filtered window against an explicit
// previous window given by prev_start/prev_end (plus any shared predicates).
func (h *APIHandlers) HandleCategoryComparison(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	current, err := parseFilter(r, "")
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}
	previous, err := parseFilter(r, "prev_")
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}
	// Non-date predicates apply to both windows.
	previous.Stores = current.Stores
	previous.Categories = current.Categories
	previous.Products = current.Products
	previous.MinPrice = current.MinPrice
	previous.MaxPrice = current.MaxPrice

	errors.WriteSuccess(w, h.analytics.CompareCategories(current, previous))
}

func (h *APIHandlers) HandleStores(w http.ResponseWriter, r *http.Request) {
	h.withFilter(w, r, func(f dataset.Filter) any {
		return h.analytics.RevenueByStore(f)
	})
}

func (h *APIHandlers) HandleTopProducts(w http.ResponseWriter, r *http.Request) {
	limit := defaultTopN
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= maxTopN {
			limit = n
		}
	}

	h.withFilter(w, r, func(f dataset.Filter) any {
		return h.analytics.TopProducts(f, limit)
	})
}

func (h *APIHandlers) HandleHeatmap(w http.ResponseWriter, r *http.Request) {
	h.withFilter(w, r, func(f dataset.Filter) any {
		return h.analytics.HourWeekdayHeatmap(f)
	})
}

func (h *APIHandlers) HandleHourly(w http.ResponseWriter, r *http.Request) {
	h.withFilter(w, r, func(f dataset.Filter) any {
		return h.analytics.SalesByHour(f)
	})
}

func (h *APIHandlers) HandleWeekdays(w http.ResponseWriter, r *http.Request) {
	h.withFilter(w, r, func(f dataset.Filter) any {
		return h.analytics.SalesByWeekday(f)
	})
}

func (h *APIHandlers) HandleTimePeriods(w http.ResponseWriter, r *http.Request) {
	h.withFilter(w, r, func(f dataset.Filter) any {
		return h.analytics.TimePeriodDistribution(f)
	})
}

func (h *APIHandlers) HandlePriceMatrix(w http.ResponseWriter, r *http.Request) {
	h.withFilter(w, r, func(f dataset.Filter) any {
		return h.analytics.PriceQuantityMatrix(f)
	})
}

func (h *APIHandlers) HandleFilterOptions(w http.ResponseWriter, r *http.Request) {
	headers := map[string]string{
		"Cache-Control": cacheMaxAge,
	}
	errors.WriteSuccessWithHeaders(w, h.analytics.FilterOptions(), headers)
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.analytics.Stats())
}
