// Package backend selects and constructs the dataset source the dashboard
// loads from: a CSV export, the SQLite mirror, or a Google Sheet.
package backend

import (
	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/dataset"
)

// Type identifies a dataset backend.
type Type string

const (
	CSVBackend    Type = "csv"
	SQLiteBackend Type = "sqlite"
	SheetsBackend Type = "sheets"
)

// IsValid reports whether t names a supported backend.
func (t Type) IsValid() bool {
	switch t {
	case CSVBackend, SQLiteBackend, SheetsBackend:
		return true
	}
	return false
}

// Config carries the settings each backend needs. Only the fields for the
// selected Type are read.
type Config struct {
	Type          Type
	CSVPath       string
	SQLiteDBPath  string
	SpreadsheetID string
	SheetName     string
}

// Result pairs a constructed source with its cleanup, nil when the backend
// holds no resources.
type Result struct {
	Source  dataset.Source
	Cleanup func() error
}
