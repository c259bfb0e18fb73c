package services

import (
	"sort"
	"strconv"

	"cafe-dashboard/internal/dataset"
	"cafe-dashboard/internal/models"
)

// Pivot aggregates the set across two dimensions and lays the result out as
// a table with zero-filled cells. Row, column and grand totals are summed
// from the aggregated cells, not recomputed from the raw transactions, so
// they are consistent with the displayed values by construction.
//
// rowOrder and colOrder supply canonical label orderings; pass nil to use
// the observed labels in sorted order (numerically when they are numbers).
func Pivot(set *dataset.TransactionSet, rowKey, colKey Field, measure Measure, rowOrder, colOrder []string) (models.Heatmap, error) {
	rows, err := Aggregate(set, []Field{rowKey, colKey}, []Measure{measure})
	if err != nil {
		return models.Heatmap{}, err
	}

	rowLabels := resolveLabels(rows, 0, rowOrder)
	colLabels := resolveLabels(rows, 1, colOrder)

	rowIdx := indexOf(rowLabels)
	colIdx := indexOf(colLabels)

	cells := make([][]float64, len(rowLabels))
	for i := range cells {
		cells[i] = make([]float64, len(colLabels))
	}
	for _, r := range rows {
		i, ok := rowIdx[r.Keys[0]]
		if !ok {
			continue
		}
		j, ok := colIdx[r.Keys[1]]
		if !ok {
			continue
		}
		cells[i][j] = r.Values[measure.Name]
	}

	hm := models.Heatmap{
		RowLabels: rowLabels,
		ColLabels: colLabels,
		Cells:     cells,
		RowTotals: make([]float64, len(rowLabels)),
		ColTotals: make([]float64, len(colLabels)),
	}
	for i := range cells {
		for j, v := range cells[i] {
			hm.RowTotals[i] += v
			hm.ColTotals[j] += v
			hm.GrandTotal += v
		}
	}
	return hm, nil
}

func resolveLabels(rows []Row, keyPos int, order []string) []string {
	if order != nil {
		return order
	}
	seen := make(map[string]struct{})
	var labels []string
	for _, r := range rows {
		if _, ok := seen[r.Keys[keyPos]]; !ok {
			seen[r.Keys[keyPos]] = struct{}{}
			labels = append(labels, r.Keys[keyPos])
		}
	}
	sort.Slice(labels, func(i, j int) bool {
		a, aerr := strconv.Atoi(labels[i])
		b, berr := strconv.Atoi(labels[j])
		if aerr == nil && berr == nil {
			return a < b
		}
		return labels[i] < labels[j]
	})
	return labels
}

func indexOf(labels []string) map[string]int {
	idx := make(map[string]int, len(labels))
	for i, l := range labels {
		idx[l] = i
	}
	return idx
}
