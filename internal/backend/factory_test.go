package backend

import (
	"context"
	"strings"
	"testing"
)

func TestCreateCSV(t *testing.T) {
	f := NewFactory(nil)

	result, err := f.Create(context.Background(), Config{Type: CSVBackend, CSVPath: "data.csv"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if result.Source == nil {
		t.Error("Create() returned nil source")
	}
	if result.Cleanup != nil {
		t.Error("csv backend should not carry a cleanup")
	}
}

func TestCreateUnknownType(t *testing.T) {
	f := NewFactory(nil)

	if _, err := f.Create(context.Background(), Config{Type: Type("ftp")}); err == nil {
		t.Fatal("Create() accepted an unknown backend type")
	}
}

func TestCreateSheetsUsesConfigValues(t *testing.T) {
	// The sheets backend is built from the Config fields, not from the
	// environment; a spreadsheet id in the environment must not stand in for
	// a missing config value.
	t.Setenv("GOOGLE_SPREADSHEET_ID", "sheet-id-from-env")
	f := NewFactory(nil)

	_, err := f.Create(context.Background(), Config{Type: SheetsBackend})
	if err == nil {
		t.Fatal("Create() accepted a sheets config without a spreadsheet id")
	}
	if !strings.Contains(err.Error(), "spreadsheet") {
		t.Errorf("error = %v, want missing spreadsheet id", err)
	}
}
