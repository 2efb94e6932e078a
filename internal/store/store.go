// Package store defines the narrow tabular-store contract the engine
// depends on. Implementations adapt a concrete backend (Google Sheets,
// a local workbook, an in-memory grid) to four primitives; nothing else
// about the backend leaks into the engine.
package store

import "context"

// Tabular is a key-addressed 2-D table. Rows and columns are 1-based,
// matching the remote document's native addressing. Empty cells read as
// empty strings.
type Tabular interface {
	// ReadColumn returns the column's values starting at row 1. Trailing
	// empty cells may be omitted by the backend; callers must not rely on
	// the slice length matching the sheet's row count.
	ReadColumn(ctx context.Context, col int) ([]string, error)

	// ReadCell returns the cell's raw entered value.
	ReadCell(ctx context.Context, row, col int) (string, error)

	// WriteCell overwrites a single cell.
	WriteCell(ctx context.Context, row, col int, value string) error

	// AppendRow appends values as a new row after the last occupied row.
	AppendRow(ctx context.Context, values []string) error
}
