// Package google loads the cleaned dataset from a Google Sheet. The sheet is
// read-only from the dashboard's point of view; it mirrors the CSV layout
// with a header row followed by one row per funding record.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/core"
	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/dataset"
)

type Source struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ dataset.Source = (*Source)(nil)

// defaultSheetName is the tab read when the caller does not name one.
const defaultSheetName = "Funding"

// New creates a Sheets-backed dataset source for the given spreadsheet. The
// spreadsheet id and sheet name come from the caller's configuration; only
// service account credentials are read from the environment, via one of
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func New(ctx context.Context, spreadsheetID, sheetName string) (*Source, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}

	sheetName = strings.TrimSpace(sheetName)
	if sheetName == "" {
		sheetName = defaultSheetName
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Source{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account
// credentials from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE,
// or GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// Load fetches the whole sheet and converts it to investment records.
func (s *Source) Load(ctx context.Context) ([]core.Investment, error) {
	if s.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:H", s.sheetName)
	slog.InfoContext(ctx, "Loading dataset from Google Sheets",
		"spreadsheet_id", s.spreadsheetID, "range", rng)

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}

	records, err := parseRows(resp.Values)
	if err != nil {
		return nil, fmt.Errorf("sheet %s: %w", s.sheetName, err)
	}

	slog.InfoContext(ctx, "Dataset loaded", "sheet", s.sheetName, "rows", len(records))
	return records, nil
}

// parseRows converts a values matrix (as returned by the Sheets API) into
// investment records. The first row must be the header naming the canonical
// dataset columns.
func parseRows(values [][]interface{}) ([]core.Investment, error) {
	if len(values) == 0 {
		return nil, errors.New("empty sheet")
	}

	headers := toStrings(values[0])
	colIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		colIndex[strings.ToLower(h)] = i
	}
	for _, col := range dataset.Columns {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("%w: %s", dataset.ErrMissingColumn, col)
		}
	}

	var records []core.Investment
	for i := 1; i < len(values); i++ {
		row := toStrings(values[i])

		raw := dataset.RawRecord{
			Row:         i,
			Date:        safeGet(row, colIndex["date"]),
			Startup:     safeGet(row, colIndex["startup"]),
			Vertical:    safeGet(row, colIndex["vertical"]),
			SubVertical: safeGet(row, colIndex["subvertical"]),
			City:        safeGet(row, colIndex["city"]),
			Investors:   safeGet(row, colIndex["investors"]),
			Round:       safeGet(row, colIndex["round"]),
			Amount:      safeGet(row, colIndex["amount"]),
		}

		inv, err := raw.Investment()
		if err != nil {
			return nil, err
		}
		records = append(records, inv)
	}
	return records, nil
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func safeGet(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
