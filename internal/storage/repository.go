// Package storage persists the cleaned dataset in SQLite. The import tool
// writes it once; the dashboard's sqlite backend reads it back at startup.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/core"
	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/dataset"
	applog "github.com/hbarsaiyan/indian-startup-funding-analysis/internal/log"
)

// isoDate is how funded_on is stored; lexicographic order equals
// chronological order.
const isoDate = "2006-01-02"

type SQLiteRepository struct {
	db *sql.DB
}

var _ dataset.Source = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Reset clears the stored dataset ahead of a fresh import. Used by the
// import tool; the dashboard never writes.
func (r *SQLiteRepository) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM investments"); err != nil {
		return fmt.Errorf("clear investments: %w", err)
	}
	return nil
}

// InsertBatch stores one batch of records in a single transaction.
func (r *SQLiteRepository) InsertBatch(ctx context.Context, records []core.Investment) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin import transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO investments (funded_on, startup, vertical, subvertical, city, investors, round, amount_lakhs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, inv := range records {
		if err := inv.Validate(); err != nil {
			fields := applog.NewFields().
				WithInvestment(inv.Startup, inv.Vertical, inv.City, inv.Amount.Lakhs).
				WithComponent(applog.ComponentStorage).
				WithOperation(applog.OpValidate).
				WithError(err)
			slog.ErrorContext(ctx, "Rejecting invalid record", fields.ToSlice()...)
			return inserted, fmt.Errorf("invalid record for %q: %w", inv.Startup, err)
		}
		_, err := stmt.ExecContext(ctx,
			inv.Date.Format(isoDate),
			inv.Startup,
			inv.Vertical,
			inv.SubVertical,
			inv.City,
			dataset.JoinInvestors(inv.Investors),
			inv.Round,
			inv.Amount.Lakhs,
		)
		if err != nil {
			return inserted, fmt.Errorf("insert record for %q: %w", inv.Startup, err)
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return inserted, fmt.Errorf("commit import batch: %w", err)
	}

	slog.DebugContext(ctx, "Import batch committed", applog.FieldRows, inserted)
	return inserted, nil
}

// Load implements dataset.Source; it returns records in insertion order so
// first-appearance tie-breaking matches the original CSV.
func (r *SQLiteRepository) Load(ctx context.Context) ([]core.Investment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT funded_on, startup, vertical, subvertical, city, investors, round, amount_lakhs
		FROM investments ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query investments: %w", err)
	}
	defer rows.Close()

	var records []core.Investment
	for rows.Next() {
		var (
			fundedOn  string
			investors string
			inv       core.Investment
		)
		if err := rows.Scan(&fundedOn, &inv.Startup, &inv.Vertical, &inv.SubVertical,
			&inv.City, &investors, &inv.Round, &inv.Amount.Lakhs); err != nil {
			return nil, fmt.Errorf("scan investment: %w", err)
		}
		t, err := time.Parse(isoDate, fundedOn)
		if err != nil {
			return nil, fmt.Errorf("stored date %q for %q: %w", fundedOn, inv.Startup, core.ErrInvalidDate)
		}
		inv.Date = core.Date{Time: t}
		inv.Investors = dataset.FanOutInvestors(investors)
		records = append(records, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate investments: %w", err)
	}

	return records, nil
}

// Count returns the number of stored records.
func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM investments").Scan(&n); err != nil {
		return 0, fmt.Errorf("count investments: %w", err)
	}
	return n, nil
}
