// Package csvfile loads the cleaned startup-funding dataset from a CSV file.
//
// The loader is strict: a missing file, missing column, unparseable date or
// non-numeric amount aborts the load with the offending row and column. The
// cleaning step is expected to have produced a fully well-formed file, so a
// bad row means the file is not the one we were promised.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/core"
	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/dataset"
)

type Source struct {
	path string
}

var _ dataset.Source = (*Source)(nil)

func New(path string) *Source {
	return &Source{path: path}
}

// Load reads and validates every row of the CSV file.
func (s *Source) Load(ctx context.Context) ([]core.Investment, error) {
	slog.InfoContext(ctx, "Loading dataset from CSV", "path", s.path)

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", s.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("dataset %s: empty file", s.path)
		}
		return nil, fmt.Errorf("read header of %s: %w", s.path, err)
	}

	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range dataset.Columns {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("dataset %s: %w: %s", s.path, dataset.ErrMissingColumn, col)
		}
	}

	var records []core.Investment
	row := 0
	for {
		fields, readErr := reader.Read()
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read %s: %w", s.path, readErr)
		}
		row++

		raw := dataset.RawRecord{
			Row:         row,
			Date:        field(fields, colIndex, "date"),
			Startup:     field(fields, colIndex, "startup"),
			Vertical:    field(fields, colIndex, "vertical"),
			SubVertical: field(fields, colIndex, "subvertical"),
			City:        field(fields, colIndex, "city"),
			Investors:   field(fields, colIndex, "investors"),
			Round:       field(fields, colIndex, "round"),
			Amount:      field(fields, colIndex, "amount"),
		}

		inv, convErr := raw.Investment()
		if convErr != nil {
			return nil, fmt.Errorf("dataset %s: %w", s.path, convErr)
		}
		records = append(records, inv)
	}

	slog.InfoContext(ctx, "Dataset loaded", "path", s.path, "rows", len(records))
	return records, nil
}

func field(fields []string, colIndex map[string]int, name string) string {
	i := colIndex[name]
	if i < 0 || i >= len(fields) {
		return ""
	}
	return fields[i]
}
