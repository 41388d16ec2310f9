// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tomtom215/marquee/internal/logging"
	"github.com/tomtom215/marquee/internal/models"
	"github.com/tomtom215/marquee/internal/store"
)

// DefaultBatchSize is the number of titles written per upsert.
const DefaultBatchSize = 500

const fieldReleaseYear = "release_year"

// Result summarizes a load.
type Result struct {
	Rows     int           // data rows read
	Written  int           // titles upserted
	Skipped  int           // rows without a show_id
	Duration time.Duration // wall time
}

// Loader writes CSV rows into a title store.
type Loader struct {
	titles    store.Titles
	batchSize int
}

// NewLoader creates a loader. A non-positive batchSize uses DefaultBatchSize.
func NewLoader(titles store.Titles, batchSize int) *Loader {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Loader{titles: titles, batchSize: batchSize}
}

// LoadFile loads the CSV file at path.
func (l *Loader) LoadFile(ctx context.Context, path string) (Result, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return Result{}, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	res, err := l.Load(ctx, f)
	if err != nil {
		return res, fmt.Errorf("load %s: %w", path, err)
	}
	return res, nil
}

// Load reads a catalog CSV from r and upserts every row with a show_id.
// Titles written before an error stay written.
func (l *Loader) Load(ctx context.Context, r io.Reader) (Result, error) {
	start := time.Now()
	var res Result

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return res, fmt.Errorf("catalog csv is empty")
		}
		return res, fmt.Errorf("read header: %w", err)
	}
	columns, err := parseHeader(header)
	if err != nil {
		return res, err
	}

	logger := logging.Ctx(ctx).With().Str("component", "ingest").Logger()
	batch := make([]models.Title, 0, l.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := l.titles.UpsertTitles(ctx, batch)
		res.Written += n
		if err != nil {
			return fmt.Errorf("upsert batch: %w", err)
		}
		logger.Debug().Int("batch", len(batch)).Int("written", res.Written).Msg("Catalog batch written")
		batch = batch[:0]
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read row %d: %w", res.Rows+1, err)
		}
		res.Rows++

		title := rowToTitle(columns, record)
		if title.ID() == "" {
			res.Skipped++
			logger.Warn().Int("row", res.Rows).Msg("Skipping catalog row without show_id")
			continue
		}

		batch = append(batch, title)
		if len(batch) >= l.batchSize {
			if err := flush(); err != nil {
				return res, err
			}
		}
	}

	if err := flush(); err != nil {
		return res, err
	}

	res.Duration = time.Since(start)
	logger.Info().
		Int("rows", res.Rows).
		Int("written", res.Written).
		Int("skipped", res.Skipped).
		Dur("duration", res.Duration).
		Msg("Catalog load complete")
	return res, nil
}

func parseHeader(header []string) ([]string, error) {
	columns := make([]string, len(header))
	hasID := false
	for i, h := range header {
		// Exports written by spreadsheet tools often carry a BOM.
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		columns[i] = strings.ToLower(name)
		if columns[i] == models.FieldShowID {
			hasID = true
		}
	}
	if !hasID {
		return nil, fmt.Errorf("catalog csv header has no %s column", models.FieldShowID)
	}
	return columns, nil
}

// rowToTitle builds a title document. Empty cells are omitted.
func rowToTitle(columns, record []string) models.Title {
	title := make(models.Title, len(columns))
	for i, col := range columns {
		if i >= len(record) || col == "" {
			continue
		}
		value := strings.TrimSpace(record[i])
		if value == "" {
			continue
		}

		switch col {
		case models.FieldCast:
			title[col] = models.SplitCast(value)
		case fieldReleaseYear:
			if year, err := strconv.Atoi(value); err == nil {
				title[col] = year
			} else {
				title[col] = value
			}
		default:
			title[col] = value
		}
	}
	return title
}
