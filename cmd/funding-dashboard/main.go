package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/analysis"
	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/backend"
	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/cli"
	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/dataset"
	apphttp "github.com/hbarsaiyan/indian-startup-funding-analysis/internal/http"
	applog "github.com/hbarsaiyan/indian-startup-funding-analysis/internal/log"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx := context.Background()

	factory := backend.NewFactory(logger)
	result, err := factory.Create(ctx, backend.Config{
		Type:          backend.Type(cfg.DatasetBackend),
		CSVPath:       cfg.DatasetCSVPath,
		SQLiteDBPath:  cfg.SQLiteDBPath,
		SpreadsheetID: cfg.GoogleSpreadsheetID,
		SheetName:     cfg.GoogleSheetName,
	})
	if err != nil {
		logger.Error("Failed to initialize dataset backend", applog.FieldError, err, applog.FieldBackend, cfg.DatasetBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", "error", err)
			}
		}()
	}

	// The dataset is loaded once at startup; a bad row is fatal so the served
	// numbers are never computed from a partial load.
	records, err := result.Source.Load(ctx)
	if err != nil {
		fields := applog.NewFields().WithError(err).WithOperation(applog.OpLoad)
		fields[applog.FieldBackend] = cfg.DatasetBackend
		var rowErr *dataset.RowError
		if errors.As(err, &rowErr) {
			fields = fields.WithRow(rowErr.Row, rowErr.Column)
		}
		logger.Error("Failed to load dataset", fields.ToSlice()...)
		os.Exit(1)
	}
	logger.Info("Dataset loaded", applog.FieldRows, len(records), applog.FieldBackend, cfg.DatasetBackend)

	snapshot := analysis.NewSnapshot(records, analysis.Options{
		ZeroFillMissingPeriods: cfg.ZeroFillMissingPeriods,
	})

	srv := apphttp.NewServer(cfg, snapshot)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	runCtx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	})

	logger.Info("Starting funding dashboard", "port", cfg.Port, "backend", cfg.DatasetBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(runCtx, done)
	logger.Info("Server stopped gracefully")
}
