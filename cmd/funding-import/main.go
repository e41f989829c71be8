// funding-import mirrors the CSV dataset into SQLite so the dashboard can
// serve from a local database instead of re-parsing the CSV on every start.
package main

import (
	"context"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/cli"
	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/core"
	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/dataset/csvfile"
	applog "github.com/hbarsaiyan/indian-startup-funding-analysis/internal/log"
	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/storage"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger().WithComponent(applog.ComponentImport)
	cfg := cli.LoadAndValidateConfig(logger)

	start := time.Now()
	ctx := context.Background()

	src := csvfile.New(cfg.DatasetCSVPath)
	records, err := src.Load(ctx)
	if err != nil {
		logger.Error("Failed to load CSV dataset", "error", err, "path", cfg.DatasetCSVPath)
		os.Exit(1)
	}
	logger.Info("CSV dataset loaded", "records", len(records), "path", cfg.DatasetCSVPath)

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	// The import replaces the previous mirror wholesale. The table is cleared
	// first, then batches flow through a small two-stage pipeline: one
	// goroutine slices the records, the other writes each batch in its own
	// transaction.
	if err := repo.Reset(ctx); err != nil {
		logger.Error("Failed to reset investments table", "error", err)
		os.Exit(1)
	}

	batchSize := cfg.ImportBatchSize
	batches := make(chan []core.Investment)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(batches)
		for begin := 0; begin < len(records); begin += batchSize {
			end := begin + batchSize
			if end > len(records) {
				end = len(records)
			}
			select {
			case batches <- records[begin:end]:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	var imported int
	g.Go(func() error {
		for batch := range batches {
			n, err := repo.InsertBatch(gctx, batch)
			if err != nil {
				return err
			}
			imported += n
			logger.Info("Batch imported", "batch_size", n, "total", imported)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		fields := applog.NewFields().WithError(err).WithOperation(applog.OpImport)
		fields[applog.FieldRows] = imported
		logger.Error("Import failed", fields.ToSlice()...)
		os.Exit(1)
	}

	logger.Info("Import complete",
		applog.FieldRows, imported,
		"db_path", cfg.SQLiteDBPath,
		applog.FieldDuration, time.Since(start).Milliseconds())
}
