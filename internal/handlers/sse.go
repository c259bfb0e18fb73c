package handlers

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"cafe-dashboard/internal/dataset"
	"cafe-dashboard/internal/models"
	"cafe-dashboard/internal/services"
)

const (
	maxProductRows = 10
)

var kpiFuncs = template.FuncMap{
	// delta renders a growth pointer; with-blocks guarantee it is non-nil.
	"delta": func(p *float64) string { return fmt.Sprintf("%+.1f", *p) },
}

var kpiCardsTemplate = template.Must(template.New("kpiCards").Funcs(kpiFuncs).Parse(`
<div id="kpi-cards" class="kpi-grid">
<div class="kpi-card"><span class="kpi-label">Total Revenue</span><strong>${{printf "%.2f" .TotalRevenue}}</strong>{{with .RevenueGrowthPct}}<span class="kpi-delta">{{delta .}}%</span>{{end}}</div>
<div class="kpi-card"><span class="kpi-label">Transactions</span><strong>{{.TotalTransactions}}</strong>{{with .TransactionGrowthPct}}<span class="kpi-delta">{{delta .}}%</span>{{end}}</div>
<div class="kpi-card"><span class="kpi-label">Items Sold</span><strong>{{.TotalQuantity}}</strong></div>
<div class="kpi-card"><span class="kpi-label">Avg Ticket</span><strong>${{printf "%.2f" .AvgTransactionValue}}</strong></div>
</div>`))

var productTableTemplate = template.Must(template.New("productTable").Parse(`
<div id="products-content">
<table class="modern-table">
<thead><tr><th>Product</th><th>Type</th><th>Category</th><th>Revenue</th><th>Qty</th></tr></thead>
<tbody>
{{range .}}<tr>
<td>{{.Detail}}</td>
<td>{{.Type}}</td>
<td><span class="category-badge">{{.Category}}</span></td>
<td><strong>${{printf "%.2f" .Revenue}}</strong></td>
<td>{{.Quantity}}</td>
</tr>{{end}}
</tbody>
</table>
</div>`))

type SSEHandlers struct {
	analytics *services.Analytics
	logger    *slog.Logger
}

func NewSSEHandlers(analytics *services.Analytics, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		analytics: analytics,
		logger:    logger,
	}
}

func (h *SSEHandlers) renderKPICards(summary models.MetricsSummary) (string, error) {
	var buf strings.Builder
	err := kpiCardsTemplate.Execute(&buf, summary)
	return buf.String(), err
}

func (h *SSEHandlers) renderProductTable(products []models.ProductSales) (string, error) {
	var buf strings.Builder
	err := productTableTemplate.Execute(&buf, products)
	return buf.String(), err
}

func (h *SSEHandlers) filterOrEmpty(r *http.Request) dataset.Filter {
	f, err := parseFilter(r, "")
	if err != nil {
		h.logger.Warn("ignoring bad filter params", "error", err)
		return dataset.Filter{}
	}
	return f
}

func (h *SSEHandlers) HandleKPIs(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	summary := h.analytics.KPIs(h.filterOrEmpty(r))
	html, err := h.renderKPICards(summary)
	if err != nil {
		h.logger.Error("render kpi cards", "error", err)
		return
	}

	sse.PatchElements(html)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleTopProducts(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	data := h.analytics.TopProducts(h.filterOrEmpty(r), maxProductRows)
	html, err := h.renderProductTable(data)
	if err != nil {
		h.logger.Error("render product table", "error", err)
		return
	}

	sse.PatchElements(html)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleDailyTrend(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	data := h.analytics.DailyTrend(h.filterOrEmpty(r))
	jsonData, err := json.Marshal(map[string]any{
		"dailyData": data,
		"dailyMean": services.DailyTrendMean(data),
	})
	if err != nil {
		h.logger.Error("marshal daily data", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	sse.PatchElements(`<div id="daily-content">Daily trend data loaded</div>`)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleCategories(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	data := h.analytics.RevenueByCategory(h.filterOrEmpty(r))
	jsonData, err := json.Marshal(map[string]any{
		"categoryData": data,
	})
	if err != nil {
		h.logger.Error("marshal category data", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	sse.PatchElements(`<div id="categories-content">Category chart data loaded</div>`)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleHeatmap(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	data := h.analytics.HourWeekdayHeatmap(h.filterOrEmpty(r))
	jsonData, err := json.Marshal(map[string]any{
		"heatmapData": data,
	})
	if err != nil {
		h.logger.Error("marshal heatmap data", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	sse.PatchElements(`<div id="heatmap-content">Heatmap data loaded</div>`)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	filter := h.filterOrEmpty(r)

	html, err := h.renderKPICards(h.analytics.KPIs(filter))
	if err != nil {
		h.logger.Error("render kpi cards", "error", err)
		return
	}
	sse.PatchElements(html)

	productsHTML, err := h.renderProductTable(h.analytics.TopProducts(filter, maxProductRows))
	if err != nil {
		h.logger.Error("render product table", "error", err)
		return
	}
	sse.PatchElements(productsHTML)

	daily := h.analytics.DailyTrend(filter)
	allSignals, err := json.Marshal(map[string]any{
		"dailyData":    daily,
		"dailyMean":    services.DailyTrendMean(daily),
		"categoryData": h.analytics.RevenueByCategory(filter),
		"storeData":    h.analytics.RevenueByStore(filter),
		"heatmapData":  h.analytics.HourWeekdayHeatmap(filter),
	})
	if err != nil {
		h.logger.Error("marshal all signals data", "error", err)
		return
	}
	sse.PatchSignals(allSignals)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
