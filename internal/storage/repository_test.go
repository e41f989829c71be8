package storage

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/core"
)

func testRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "funding.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRoundTrip(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	records := []core.Investment{
		{
			Date:        core.NewDate(2015, 1, 5),
			Startup:     "Flipkart",
			Vertical:    "E-Commerce",
			SubVertical: "Online Marketplace",
			City:        "Bangalore",
			Investors:   []string{"Tiger Global", "Accel Partners"},
			Round:       "Private Equity",
			Amount:      core.Amount{Lakhs: 10000},
		},
		{
			Date:      core.NewDate(2016, 12, 20),
			Startup:   "Byju's",
			Vertical:  "EdTech",
			City:      "Bangalore",
			Investors: []string{"Sequoia Capital"},
			Round:     "Series D",
			Amount:    core.Amount{Lakhs: 3966},
		},
	}

	n, err := repo.InsertBatch(ctx, records)
	if err != nil {
		t.Fatalf("InsertBatch: %v", err)
	}
	if n != 2 {
		t.Fatalf("InsertBatch inserted %d, want 2", n)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded, records) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, records)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 2 {
		t.Errorf("Count = %d, want 2", count)
	}
}

func TestReset(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if _, err := repo.InsertBatch(ctx, []core.Investment{{
		Date:      core.NewDate(2015, 1, 5),
		Startup:   "Ola",
		Investors: []string{"SoftBank Group"},
		Amount:    core.Amount{Lakhs: 25050},
	}}); err != nil {
		t.Fatalf("InsertBatch: %v", err)
	}

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Errorf("Count after Reset = %d, want 0", count)
	}
}

func TestInsertBatchRejectsInvalid(t *testing.T) {
	repo := testRepo(t)

	_, err := repo.InsertBatch(context.Background(), []core.Investment{{
		Date:      core.NewDate(2015, 1, 5),
		Startup:   "",
		Investors: []string{"Someone"},
	}})
	if err == nil {
		t.Fatal("InsertBatch should reject an invalid record")
	}
}
