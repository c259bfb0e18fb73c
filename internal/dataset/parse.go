package dataset

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"cafe-dashboard/internal/models"
)

const (
	dayFirstDateLayout = "02/01/2006"
	isoDateLayout      = "2006-01-02"
	timeLayout         = "15:04:05"
)

// RequiredColumns is the header contract for the sales CSV.
var RequiredColumns = []string{
	"transaction_id",
	"transaction_date",
	"transaction_time",
	"transaction_qty",
	"unit_price",
	"store_id",
	"store_location",
	"product_id",
	"product_category",
	"product_type",
	"product_detail",
	"Size",
}

// ParseDate parses a calendar date under a fixed format policy. The policy is
// chosen per load, not per row: the source data has ambiguous dates and
// guessing row by row would silently misread them. time.Parse rejects
// out-of-range components rather than clamping them.
func ParseDate(value string, dayFirst bool) (time.Time, error) {
	layout := isoDateLayout
	if dayFirst {
		layout = dayFirstDateLayout
	}
	return time.Parse(layout, strings.TrimSpace(value))
}

// FormatDate is the inverse of ParseDate under the same policy.
func FormatDate(date time.Time, dayFirst bool) string {
	if dayFirst {
		return date.Format(dayFirstDateLayout)
	}
	return date.Format(isoDateLayout)
}

func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	for _, name := range RequiredColumns {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return idx, nil
}

// parseRecord turns one raw CSV row into a typed transaction with all derived
// fields populated. It is a pure transform: no logging, no shared state.
func parseRecord(fields []string, colIdx map[string]int, dayFirst bool) (models.Transaction, error) {
	field := func(name string) (string, error) {
		i := colIdx[name]
		if i >= len(fields) {
			return "", fmt.Errorf("row has %d fields, column %q needs %d", len(fields), name, i+1)
		}
		return strings.TrimSpace(fields[i]), nil
	}

	var tx models.Transaction
	var err error

	if tx.TransactionID, err = field("transaction_id"); err != nil {
		return models.Transaction{}, err
	}
	if tx.TransactionID == "" {
		return models.Transaction{}, fmt.Errorf("empty transaction_id")
	}

	rawDate, err := field("transaction_date")
	if err != nil {
		return models.Transaction{}, err
	}
	date, err := ParseDate(rawDate, dayFirst)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction_date: %w", err)
	}

	rawTime, err := field("transaction_time")
	if err != nil {
		return models.Transaction{}, err
	}
	tod, err := time.Parse(timeLayout, rawTime)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("transaction_time: %w", err)
	}
	tx.DateTime = time.Date(date.Year(), date.Month(), date.Day(),
		tod.Hour(), tod.Minute(), tod.Second(), 0, time.UTC)

	rawQty, err := field("transaction_qty")
	if err != nil {
		return models.Transaction{}, err
	}
	if tx.Quantity, err = strconv.Atoi(rawQty); err != nil {
		return models.Transaction{}, fmt.Errorf("transaction_qty: %w", err)
	}
	if tx.Quantity < 0 {
		return models.Transaction{}, fmt.Errorf("transaction_qty: negative quantity %d", tx.Quantity)
	}

	rawPrice, err := field("unit_price")
	if err != nil {
		return models.Transaction{}, err
	}
	if tx.UnitPrice, err = decimal.NewFromString(rawPrice); err != nil {
		return models.Transaction{}, fmt.Errorf("unit_price: %w", err)
	}
	if tx.UnitPrice.IsNegative() {
		return models.Transaction{}, fmt.Errorf("unit_price: negative price %s", tx.UnitPrice)
	}

	for name, dst := range map[string]*string{
		"store_id":         &tx.StoreID,
		"store_location":   &tx.StoreLocation,
		"product_id":       &tx.ProductID,
		"product_category": &tx.ProductCategory,
		"product_type":     &tx.ProductType,
		"product_detail":   &tx.ProductDetail,
		"Size":             &tx.Size,
	} {
		if *dst, err = field(name); err != nil {
			return models.Transaction{}, err
		}
	}

	return Derive(tx), nil
}
