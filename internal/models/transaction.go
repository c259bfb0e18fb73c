package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one point-of-sale line item. The fields below the break are
// derived once at load time and are pure functions of the base fields.
type Transaction struct {
	TransactionID   string
	DateTime        time.Time
	StoreID         string
	StoreLocation   string
	ProductID       string
	ProductCategory string
	ProductType     string
	ProductDetail   string
	Size            string
	UnitPrice       decimal.Decimal
	Quantity        int

	TotalBill  decimal.Decimal
	Hour       int
	DayOfWeek  int // Monday=0 .. Sunday=6
	DayName    string
	MonthName  string
	WeekOfYear int
	Quarter    int
	IsWeekend  bool
	TimePeriod string
}

// Date returns the calendar date of the transaction at midnight UTC.
func (t Transaction) Date() time.Time {
	y, m, d := t.DateTime.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type MetricsSummary struct {
	TotalRevenue           float64  `json:"total_revenue"`
	TotalTransactions      int      `json:"total_transactions"`
	TotalQuantity          int      `json:"total_quantity"`
	AvgTransactionValue    float64  `json:"avg_transaction_value"`
	AvgItemsPerTransaction float64  `json:"avg_items_per_transaction"`
	UniqueProducts         int      `json:"unique_products"`
	RevenueGrowthPct       *float64 `json:"revenue_growth_pct"`
	TransactionGrowthPct   *float64 `json:"transaction_growth_pct"`
}

type CategoryRevenue struct {
	Category     string  `json:"category"`
	Revenue      float64 `json:"revenue"`
	Quantity     int     `json:"quantity"`
	Transactions int     `json:"transactions"`
}

type CategorySummary struct {
	Category     string  `json:"category"`
	Revenue      float64 `json:"revenue"`
	AvgUnitPrice float64 `json:"avg_unit_price"`
	Quantity     int     `json:"quantity"`
	SalesPct     float64 `json:"sales_pct"`
}

type CategoryComparison struct {
	Category        string  `json:"category"`
	CurrentRevenue  float64 `json:"current_revenue"`
	PreviousRevenue float64 `json:"previous_revenue"`
}

type StoreRevenue struct {
	StoreID      string  `json:"store_id"`
	Location     string  `json:"location"`
	Revenue      float64 `json:"revenue"`
	Quantity     int     `json:"quantity"`
	Transactions int     `json:"transactions"`
}

type DailyRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type HourlyRevenue struct {
	Hour    int     `json:"hour"`
	Revenue float64 `json:"revenue"`
}

type WeekdayRevenue struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
}

type ProductSales struct {
	Category     string  `json:"category"`
	Type         string  `json:"type"`
	Detail       string  `json:"detail"`
	Revenue      float64 `json:"revenue"`
	Quantity     int     `json:"quantity"`
	Transactions int     `json:"transactions"`
}

type TimePeriodShare struct {
	Period       string  `json:"period"`
	Revenue      float64 `json:"revenue"`
	Transactions int     `json:"transactions"`
}

// PriceQuantityPoint positions a category on the price-vs-volume matrix.
type PriceQuantityPoint struct {
	Category     string  `json:"category"`
	AvgUnitPrice float64 `json:"avg_unit_price"`
	AvgQuantity  float64 `json:"avg_quantity"`
	Revenue      float64 `json:"revenue"`
}

// PriceQuantityMatrix carries the per-category points plus the overall means
// that draw the quadrant lines.
type PriceQuantityMatrix struct {
	Points       []PriceQuantityPoint `json:"points"`
	AvgUnitPrice float64              `json:"avg_unit_price"`
	AvgQuantity  float64              `json:"avg_quantity"`
}

// FilterOptions lists the values the dashboard filter controls can offer.
type FilterOptions struct {
	Stores     []string `json:"stores"`
	Locations  []string `json:"locations"`
	Categories []string `json:"categories"`
	Products   []string `json:"products"`
	DateMin    string   `json:"date_min,omitempty"`
	DateMax    string   `json:"date_max,omitempty"`
}

// Heatmap is a two-dimensional aggregation with totals appended by summing
// the already-aggregated cells, so displayed totals always match the cells.
type Heatmap struct {
	RowLabels  []string    `json:"row_labels"`
	ColLabels  []string    `json:"col_labels"`
	Cells      [][]float64 `json:"cells"`
	RowTotals  []float64   `json:"row_totals"`
	ColTotals  []float64   `json:"col_totals"`
	GrandTotal float64     `json:"grand_total"`
}
