package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn reports a required column absent from the header row.
	ErrMissingColumn = errors.New("missing required column")
)

// RowError identifies the dataset row and column that made a load fail. The
// loader stops at the first bad row; the dashboard never serves partial data.
type RowError struct {
	Row    int // 1-based position in the source, header excluded
	Column string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d, column %q: %v", e.Row, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
