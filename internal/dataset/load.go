package dataset

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	apperrors "cafe-dashboard/internal/errors"
	"cafe-dashboard/internal/models"
)

const (
	batchSize  = 10000
	maxWorkers = 10
)

// Options control a single load. One date policy applies to the whole file.
type Options struct {
	DayFirst bool
}

// LoadStats reports what a load did. Skipped rows are counted, never
// silently dropped.
type LoadStats struct {
	Records int `json:"records"`
	Skipped int `json:"skipped"`
}

// LoadCSV reads the sales CSV into a TransactionSet, preserving input row
// order. Malformed rows are skipped and counted; a missing file is fatal.
func LoadCSV(ctx context.Context, filename string, opts Options, logger *slog.Logger) (*TransactionSet, LoadStats, error) {
	file, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, LoadStats{}, apperrors.DataSourceNotFound(err, filename)
		}
		return nil, LoadStats{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 1024*1024), 10*1024*1024) // 10MB buffer

	if !scanner.Scan() {
		return nil, LoadStats{}, apperrors.MalformedRecord(scanner.Err(), "empty file")
	}
	colIdx, err := columnIndex(strings.Split(scanner.Text(), ","))
	if err != nil {
		return nil, LoadStats{}, apperrors.MalformedRecord(err, "bad header")
	}

	var (
		txs   []models.Transaction
		stats LoadStats
		batch = make([]string, 0, batchSize)
	)

	flush := func() error {
		parsed, skipped, err := parseBatch(ctx, batch, colIdx, opts.DayFirst)
		if err != nil {
			return err
		}
		txs = append(txs, parsed...)
		stats.Skipped += skipped
		batch = batch[:0]
		return nil
	}

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, LoadStats{}, ctx.Err()
		default:
		}

		batch = append(batch, scanner.Text())
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return nil, LoadStats{}, err
			}
		}
	}
	if len(batch) > 0 {
		if err := flush(); err != nil {
			return nil, LoadStats{}, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, LoadStats{}, fmt.Errorf("scan error: %w", err)
	}

	stats.Records = len(txs)
	if stats.Skipped > 0 {
		logger.Warn("skipped malformed rows",
			"filename", filename,
			"skipped", stats.Skipped,
			"records", stats.Records,
		)
	}

	return &TransactionSet{txs: txs}, stats, nil
}

// parseBatch parses lines in parallel but keeps results in input order by
// assigning each worker its own slot.
func parseBatch(ctx context.Context, batch []string, colIdx map[string]int, dayFirst bool) ([]models.Transaction, int, error) {
	type slot struct {
		tx    models.Transaction
		valid bool
	}
	slots := make([]slot, len(batch))

	var wg errgroup.Group
	wg.SetLimit(maxWorkers)

	for i, line := range batch {
		wg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			tx, err := parseRecord(strings.Split(line, ","), colIdx, dayFirst)
			if err != nil {
				return nil // skip malformed rows, counted below
			}
			slots[i] = slot{tx: tx, valid: true}
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return nil, 0, err
	}

	txs := make([]models.Transaction, 0, len(batch))
	skipped := 0
	for _, s := range slots {
		if s.valid {
			txs = append(txs, s.tx)
		} else {
			skipped++
		}
	}
	return txs, skipped, nil
}
