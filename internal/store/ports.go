// Package store defines the tabular record store the engine reads and
// writes. Addressing is 1-based row/column, matching spreadsheet
// conventions; any backend that can model named grids of string cells
// qualifies.
package store

import "context"

// Tabular is the outbound port for the record store.
type Tabular interface {
	// Rows returns the used range of the table, row-major. Trailing cells a
	// backend never wrote may be absent, so rows can be ragged. An empty or
	// missing table yields no rows and no error.
	Rows(ctx context.Context, table string) ([][]string, error)

	// SetCell writes one cell. Values starting with "=" are formulas where
	// the backend supports them; otherwise they are stored literally.
	SetCell(ctx context.Context, table string, row, col int, value string) error

	// Append adds rows after the current last row of the table.
	Append(ctx context.Context, table string, rows [][]string) error

	// Clear removes every value from the table, keeping the table itself.
	Clear(ctx context.Context, table string) error

	// RowCount returns the number of used rows.
	RowCount(ctx context.Context, table string) (int, error)

	// ColumnCount returns the widest used row.
	ColumnCount(ctx context.Context, table string) (int, error)
}
