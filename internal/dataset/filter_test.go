package dataset

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"cafe-dashboard/internal/models"
)

func testSet(t *testing.T) *TransactionSet {
	t.Helper()
	txs := []models.Transaction{
		{
			TransactionID:   "T001",
			DateTime:        time.Date(2023, 1, 5, 8, 30, 0, 0, time.UTC),
			StoreID:         "A",
			StoreLocation:   "Astoria",
			ProductCategory: "Coffee",
			ProductType:     "Brewed coffee",
			UnitPrice:       decimal.RequireFromString("3.50"),
			Quantity:        2,
		},
		{
			TransactionID:   "T002",
			DateTime:        time.Date(2023, 1, 5, 12, 0, 0, 0, time.UTC),
			StoreID:         "B",
			StoreLocation:   "Lower Manhattan",
			ProductCategory: "Tea",
			ProductType:     "Brewed herbal tea",
			UnitPrice:       decimal.RequireFromString("2.00"),
			Quantity:        1,
		},
		{
			TransactionID:   "T003",
			DateTime:        time.Date(2023, 2, 10, 18, 0, 0, 0, time.UTC),
			StoreID:         "A",
			StoreLocation:   "Astoria",
			ProductCategory: "Bakery",
			ProductType:     "Scone",
			UnitPrice:       decimal.RequireFromString("4.75"),
			Quantity:        1,
		},
	}
	for i := range txs {
		txs[i] = Derive(txs[i])
	}
	return NewTransactionSet(txs)
}

func TestFilter_EmptyIsIdentity(t *testing.T) {
	set := testSet(t)

	got := Filter{}.Apply(set)

	if got.Len() != set.Len() {
		t.Fatalf("empty filter changed size: %d -> %d", set.Len(), got.Len())
	}
	for i, tx := range got.Transactions() {
		if tx.TransactionID != set.Transactions()[i].TransactionID {
			t.Errorf("row %d: got %q, want %q", i, tx.TransactionID, set.Transactions()[i].TransactionID)
		}
	}
}

func TestFilter_DateRangeInclusive(t *testing.T) {
	set := testSet(t)
	start := time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC)

	got := Filter{DateStart: &start, DateEnd: &end}.Apply(set)

	if got.Len() != 2 {
		t.Errorf("single-day range matched %d rows, want 2", got.Len())
	}
}

func TestFilter_Dimensions(t *testing.T) {
	set := testSet(t)
	minPrice := decimal.RequireFromString("3.00")

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"stores", Filter{Stores: []string{"A"}}, []string{"T001", "T003"}},
		{"categories", Filter{Categories: []string{"Tea", "Bakery"}}, []string{"T002", "T003"}},
		{"products", Filter{Products: []string{"Scone"}}, []string{"T003"}},
		{"min price", Filter{MinPrice: &minPrice}, []string{"T001", "T003"}},
		{"conjunction", Filter{Stores: []string{"A"}, Categories: []string{"Coffee"}}, []string{"T001"}},
		{"no match", Filter{Stores: []string{"Z"}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(set)
			if got.Len() != len(tt.want) {
				t.Fatalf("matched %d rows, want %d", got.Len(), len(tt.want))
			}
			for i, tx := range got.Transactions() {
				if tx.TransactionID != tt.want[i] {
					t.Errorf("row %d: got %q, want %q", i, tx.TransactionID, tt.want[i])
				}
			}
		})
	}
}

func TestFilter_CompositionIsConjunction(t *testing.T) {
	set := testSet(t)
	p1 := Filter{Stores: []string{"A"}}
	p2 := Filter{Categories: []string{"Coffee"}}
	combined := Filter{Stores: []string{"A"}, Categories: []string{"Coffee"}}

	sequential := p2.Apply(p1.Apply(set))
	direct := combined.Apply(set)

	if sequential.Len() != direct.Len() {
		t.Fatalf("sequential filters matched %d rows, combined %d", sequential.Len(), direct.Len())
	}
	for i := range sequential.Transactions() {
		if sequential.Transactions()[i].TransactionID != direct.Transactions()[i].TransactionID {
			t.Errorf("row %d differs between sequential and combined filters", i)
		}
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	set := testSet(t)
	before := set.Len()

	Filter{Stores: []string{"A"}}.Apply(set)

	if set.Len() != before {
		t.Errorf("input set length changed: %d -> %d", before, set.Len())
	}
	if set.Transactions()[0].TransactionID != "T001" {
		t.Error("input set order changed")
	}
}

func TestFilter_EmptyResultIsValid(t *testing.T) {
	set := testSet(t)

	got := Filter{Stores: []string{"missing"}}.Apply(set)

	if got == nil {
		t.Fatal("filter returned nil set")
	}
	if got.Len() != 0 {
		t.Errorf("expected empty set, got %d rows", got.Len())
	}
	if _, _, ok := got.DateRange(); ok {
		t.Error("empty set should report no date range")
	}
}
