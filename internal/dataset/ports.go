package dataset

import (
	"context"

	"github.com/hbarsaiyan/indian-startup-funding-analysis/internal/core"
)

// Source loads the cleaned dataset into memory. Implementations are
// read-only; Load runs once at process start and a failure is fatal.
type Source interface {
	Load(ctx context.Context) ([]core.Investment, error)
}
