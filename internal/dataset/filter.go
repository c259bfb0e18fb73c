package dataset

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"cafe-dashboard/internal/models"
)

// Filter is a conjunctive predicate set over transactions. A nil or empty
// field means that dimension is unconstrained, never "match nothing" — there
// are no "All" sentinel strings anywhere.
type Filter struct {
	DateStart  *time.Time
	DateEnd    *time.Time
	Stores     []string
	Categories []string
	Products   []string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

// IsZero reports whether the filter constrains nothing.
func (f Filter) IsZero() bool {
	return f.DateStart == nil && f.DateEnd == nil &&
		len(f.Stores) == 0 && len(f.Categories) == 0 && len(f.Products) == 0 &&
		f.MinPrice == nil && f.MaxPrice == nil
}

// Matches applies every present predicate; date bounds are inclusive and
// compare calendar dates, prices compare the unit price.
func (f Filter) Matches(tx models.Transaction) bool {
	date := tx.Date()
	if f.DateStart != nil && date.Before(*f.DateStart) {
		return false
	}
	if f.DateEnd != nil && date.After(*f.DateEnd) {
		return false
	}
	if len(f.Stores) > 0 && !slices.Contains(f.Stores, tx.StoreID) {
		return false
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, tx.ProductCategory) {
		return false
	}
	if len(f.Products) > 0 && !slices.Contains(f.Products, tx.ProductType) {
		return false
	}
	if f.MinPrice != nil && tx.UnitPrice.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && tx.UnitPrice.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

// Apply narrows s to the matching transactions, returning a new set in the
// same order. The input set is never mutated. An empty result is a valid
// set and flows through aggregation unchanged.
func (f Filter) Apply(s *TransactionSet) *TransactionSet {
	if f.IsZero() {
		return NewTransactionSet(s.Transactions())
	}
	matched := make([]models.Transaction, 0, s.Len())
	for _, tx := range s.Transactions() {
		if f.Matches(tx) {
			matched = append(matched, tx)
		}
	}
	return &TransactionSet{txs: matched}
}
