package backend

import (
	"context"
	"fmt"

	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/dataset/csvfile"
	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/dataset/google"
	applog "github.com/hbarsaiyan/indian-startup-funding-analysis/internal/log"
	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/storage"
)

// Factory constructs dataset sources from a backend Config.
type Factory struct {
	logger *applog.Logger
}

// NewFactory creates a backend factory.
func NewFactory(logger *applog.Logger) *Factory {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	return &Factory{logger: logger.WithComponent(applog.ComponentDataset)}
}

// Create builds the source for the configured backend type.
func (f *Factory) Create(ctx context.Context, config Config) (*Result, error) {
	switch config.Type {
	case CSVBackend:
		return f.createCSV(config)
	case SQLiteBackend:
		return f.createSQLite(config)
	case SheetsBackend:
		return f.createSheets(ctx, config)
	default:
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}
}

func (f *Factory) createCSV(config Config) (*Result, error) {
	src := csvfile.New(config.CSVPath)
	f.logger.Info("Initialized CSV backend", "path", config.CSVPath)
	return &Result{Source: src}, nil
}

func (f *Factory) createSQLite(config Config) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}
	f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
	return &Result{Source: repo, Cleanup: repo.Close}, nil
}

func (f *Factory) createSheets(ctx context.Context, config Config) (*Result, error) {
	src, err := google.New(ctx, config.SpreadsheetID, config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}
	f.logger.Info("Initialized Google Sheets backend", "spreadsheet_id", config.SpreadsheetID)
	return &Result{Source: src}, nil
}
