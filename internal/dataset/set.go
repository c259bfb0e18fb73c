package dataset

import (
	"slices"
	"sort"
	"time"

	"cafe-dashboard/internal/models"
)

// TransactionSet is an immutable ordered collection of transactions. It is
// built once (from the CSV or from a filter) and never mutated afterwards;
// every deriving operation returns a new set.
type TransactionSet struct {
	txs []models.Transaction
}

// NewTransactionSet copies txs into a fresh set, preserving order.
func NewTransactionSet(txs []models.Transaction) *TransactionSet {
	return &TransactionSet{txs: slices.Clone(txs)}
}

// Empty returns a set with no transactions.
func Empty() *TransactionSet {
	return &TransactionSet{}
}

func (s *TransactionSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.txs)
}

// Transactions exposes the underlying records for iteration. Callers must
// treat the slice as read-only.
func (s *TransactionSet) Transactions() []models.Transaction {
	if s == nil {
		return nil
	}
	return s.txs
}

// SortByDateTime returns a new set ordered by transaction datetime. Sorting
// is deliberately separate from loading: the loader preserves row order.
func (s *TransactionSet) SortByDateTime() *TransactionSet {
	sorted := slices.Clone(s.Transactions())
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DateTime.Before(sorted[j].DateTime)
	})
	return &TransactionSet{txs: sorted}
}

// Slice returns a new set over rows [from, to).
func (s *TransactionSet) Slice(from, to int) *TransactionSet {
	return NewTransactionSet(s.Transactions()[from:to])
}

// DateRange reports the earliest and latest transaction dates. ok is false
// for an empty set.
func (s *TransactionSet) DateRange() (min, max time.Time, ok bool) {
	if s.Len() == 0 {
		return time.Time{}, time.Time{}, false
	}
	min, max = s.txs[0].Date(), s.txs[0].Date()
	for _, tx := range s.txs[1:] {
		d := tx.Date()
		if d.Before(min) {
			min = d
		}
		if d.After(max) {
			max = d
		}
	}
	return min, max, true
}

// Distinct returns the sorted distinct values of key across the set.
func (s *TransactionSet) Distinct(key func(models.Transaction) string) []string {
	seen := make(map[string]struct{})
	for _, tx := range s.Transactions() {
		seen[key(tx)] = struct{}{}
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
