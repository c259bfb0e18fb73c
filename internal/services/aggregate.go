package services

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"cafe-dashboard/internal/dataset"
	apperrors "cafe-dashboard/internal/errors"
	"cafe-dashboard/internal/models"
)

// Field names a column of the transaction table that aggregation can group
// by or reduce over. Unknown names are rejected up front with a typed error
// instead of surfacing as a runtime key miss.
type Field string

const (
	FieldTransactionID Field = "transaction_id"
	FieldDate          Field = "date"
	FieldHour          Field = "hour"
	FieldDayName       Field = "day_name"
	FieldMonthName     Field = "month_name"
	FieldWeek          Field = "week_of_year"
	FieldQuarter       Field = "quarter"
	FieldTimePeriod    Field = "time_period"
	FieldStoreID       Field = "store_id"
	FieldStoreLocation Field = "store_location"
	FieldCategory      Field = "product_category"
	FieldProductType   Field = "product_type"
	FieldProductDetail Field = "product_detail"
	FieldSize          Field = "size"
	FieldUnitPrice     Field = "unit_price"
	FieldQuantity      Field = "transaction_qty"
	FieldTotalBill     Field = "total_bill"
)

type Reduction string

const (
	ReduceSum     Reduction = "sum"
	ReduceMean    Reduction = "mean"
	ReduceCount   Reduction = "count"
	ReduceNUnique Reduction = "nunique"
)

// Measure maps an output column to a source field and a reduction.
type Measure struct {
	Name   string
	Field  Field
	Reduce Reduction
}

// Row is one output group: key values in group-key order plus the computed
// measures.
type Row struct {
	Keys   []string           `json:"keys"`
	Values map[string]float64 `json:"values"`
}

var dimensionOf = map[Field]func(models.Transaction) string{
	FieldTransactionID: func(t models.Transaction) string { return t.TransactionID },
	FieldDate:          func(t models.Transaction) string { return t.Date().Format("2006-01-02") },
	FieldHour:          func(t models.Transaction) string { return strconv.Itoa(t.Hour) },
	FieldDayName:       func(t models.Transaction) string { return t.DayName },
	FieldMonthName:     func(t models.Transaction) string { return t.MonthName },
	FieldWeek:          func(t models.Transaction) string { return strconv.Itoa(t.WeekOfYear) },
	FieldQuarter:       func(t models.Transaction) string { return strconv.Itoa(t.Quarter) },
	FieldTimePeriod:    func(t models.Transaction) string { return t.TimePeriod },
	FieldStoreID:       func(t models.Transaction) string { return t.StoreID },
	FieldStoreLocation: func(t models.Transaction) string { return t.StoreLocation },
	FieldCategory:      func(t models.Transaction) string { return t.ProductCategory },
	FieldProductType:   func(t models.Transaction) string { return t.ProductType },
	FieldProductDetail: func(t models.Transaction) string { return t.ProductDetail },
	FieldSize:          func(t models.Transaction) string { return t.Size },
	FieldUnitPrice:     func(t models.Transaction) string { return t.UnitPrice.String() },
}

var numericOf = map[Field]func(models.Transaction) decimal.Decimal{
	FieldUnitPrice: func(t models.Transaction) decimal.Decimal { return t.UnitPrice },
	FieldQuantity:  func(t models.Transaction) decimal.Decimal { return decimal.NewFromInt(int64(t.Quantity)) },
	FieldTotalBill: func(t models.Transaction) decimal.Decimal { return t.TotalBill },
	FieldHour:      func(t models.Transaction) decimal.Decimal { return decimal.NewFromInt(int64(t.Hour)) },
}

func validateMeasure(m Measure) error {
	switch m.Reduce {
	case ReduceSum, ReduceMean:
		if _, ok := numericOf[m.Field]; !ok {
			return apperrors.UnknownField(string(m.Field))
		}
	case ReduceNUnique:
		if _, ok := dimensionOf[m.Field]; !ok {
			return apperrors.UnknownField(string(m.Field))
		}
	case ReduceCount:
		// Count ignores the field.
	default:
		return apperrors.Validation("unknown reduction " + string(m.Reduce))
	}
	return nil
}

type accumulator struct {
	sum    decimal.Decimal
	count  int
	unique map[string]struct{}
}

// Aggregate groups the set by groupKeys and computes measures per group.
// Groups appear in first-seen order; callers wanting a canonical categorical
// order apply Reindex afterwards. With no group keys, the whole set is one
// group. Total over any valid set, including the empty one.
func Aggregate(set *dataset.TransactionSet, groupKeys []Field, measures []Measure) ([]Row, error) {
	for _, key := range groupKeys {
		if _, ok := dimensionOf[key]; !ok {
			return nil, apperrors.UnknownField(string(key))
		}
	}
	for _, m := range measures {
		if err := validateMeasure(m); err != nil {
			return nil, err
		}
	}

	if set.Len() == 0 && len(groupKeys) > 0 {
		return []Row{}, nil
	}

	type group struct {
		keys []string
		accs []accumulator
	}
	groups := make(map[string]*group)
	order := make([]string, 0)

	for _, tx := range set.Transactions() {
		keys := make([]string, len(groupKeys))
		for i, k := range groupKeys {
			keys[i] = dimensionOf[k](tx)
		}
		id := strings.Join(keys, "\x1f")

		g, ok := groups[id]
		if !ok {
			g = &group{keys: keys, accs: make([]accumulator, len(measures))}
			for i := range g.accs {
				g.accs[i].unique = make(map[string]struct{})
			}
			groups[id] = g
			order = append(order, id)
		}

		for i, m := range measures {
			acc := &g.accs[i]
			acc.count++
			switch m.Reduce {
			case ReduceSum, ReduceMean:
				acc.sum = acc.sum.Add(numericOf[m.Field](tx))
			case ReduceNUnique:
				acc.unique[dimensionOf[m.Field](tx)] = struct{}{}
			}
		}
	}

	// Grouping by nothing still yields a single row of zeros for an empty
	// set, so ungrouped totals are always defined.
	if len(groupKeys) == 0 && len(order) == 0 {
		row := Row{Keys: []string{}, Values: make(map[string]float64, len(measures))}
		for _, m := range measures {
			row.Values[m.Name] = 0
		}
		return []Row{row}, nil
	}

	rows := make([]Row, 0, len(order))
	for _, id := range order {
		g := groups[id]
		row := Row{Keys: g.keys, Values: make(map[string]float64, len(measures))}
		for i, m := range measures {
			acc := g.accs[i]
			switch m.Reduce {
			case ReduceSum:
				row.Values[m.Name] = acc.sum.InexactFloat64()
			case ReduceMean:
				row.Values[m.Name] = acc.sum.Div(decimal.NewFromInt(int64(acc.count))).InexactFloat64()
			case ReduceCount:
				row.Values[m.Name] = float64(acc.count)
			case ReduceNUnique:
				row.Values[m.Name] = float64(len(acc.unique))
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Reindex reorders single-key rows into the supplied canonical ordering
// (weekday names, month names). Keys outside the ordering are dropped.
// Missing groups are omitted by default, matching the dataset's sparse
// reality; fillMissing adds them with zero values.
func Reindex(rows []Row, ordering []string, fillMissing bool) []Row {
	byKey := make(map[string]Row, len(rows))
	var measureNames []string
	for _, r := range rows {
		if len(r.Keys) != 1 {
			continue
		}
		byKey[r.Keys[0]] = r
		if measureNames == nil {
			for name := range r.Values {
				measureNames = append(measureNames, name)
			}
		}
	}

	out := make([]Row, 0, len(ordering))
	for _, key := range ordering {
		if row, ok := byKey[key]; ok {
			out = append(out, row)
			continue
		}
		if !fillMissing {
			continue
		}
		zero := Row{Keys: []string{key}, Values: make(map[string]float64, len(measureNames))}
		for _, name := range measureNames {
			zero.Values[name] = 0
		}
		out = append(out, zero)
	}
	return out
}
