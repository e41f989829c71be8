package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Dataset backend selection
	DatasetBackend string // csv | sqlite | sheets

	// CSV backend
	DatasetCSVPath string

	// SQLite backend (also the import tool target)
	SQLiteDBPath    string
	ImportBatchSize int

	// Google Sheets backend
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Aggregation policy
	TopNDefault            int
	ZeroFillMissingPeriods bool

	// View-model caching
	CacheSize int
	CacheTTL  time.Duration
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8081"),

		DatasetBackend: getEnv("DATASET_BACKEND", "csv"),
		DatasetCSVPath: getEnv("DATASET_CSV_PATH", "./data/startup_cleaned.csv"),

		SQLiteDBPath:    getEnv("SQLITE_DB_PATH", "./data/funding.db"),
		ImportBatchSize: getEnvInt("IMPORT_BATCH_SIZE", 200),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", ""),

		TopNDefault:            getEnvInt("TOP_N_DEFAULT", 10),
		ZeroFillMissingPeriods: getEnvBool("ZERO_FILL_MISSING_PERIODS", false),

		CacheSize: getEnvInt("CACHE_SIZE", 200),
		CacheTTL:  getEnvDuration("CACHE_TTL", 10*time.Minute),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	// Validate dataset backend
	validBackends := []string{"csv", "sqlite", "sheets"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DatasetBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid dataset backend '%s': must be one of %v", c.DatasetBackend, validBackends))
	}

	if c.DatasetBackend == "csv" && strings.TrimSpace(c.DatasetCSVPath) == "" {
		errors = append(errors, "dataset CSV path cannot be empty when using csv backend")
	}

	if c.DatasetBackend == "sqlite" && strings.TrimSpace(c.SQLiteDBPath) == "" {
		errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
	}

	if c.DatasetBackend == "sheets" {
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets backend")
		}
		if c.GoogleSheetName == "" {
			errors = append(errors, "Google Sheet name is required when using sheets backend")
		}
	}

	if c.ImportBatchSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid import batch size %d: must be at least 1", c.ImportBatchSize))
	} else if c.ImportBatchSize > 10000 {
		errors = append(errors, fmt.Sprintf("invalid import batch size %d: must be at most 10000", c.ImportBatchSize))
	}

	// Top-N must stay positive; a non-positive ranking size has no meaning.
	if c.TopNDefault < 1 {
		errors = append(errors, fmt.Sprintf("invalid top-n default %d: must be at least 1", c.TopNDefault))
	} else if c.TopNDefault > 100 {
		errors = append(errors, fmt.Sprintf("invalid top-n default %d: must be at most 100", c.TopNDefault))
	}

	if c.CacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid cache size %d: must be at least 1", c.CacheSize))
	}
	if c.CacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid cache TTL %v: must be at least 1 second", c.CacheTTL))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
