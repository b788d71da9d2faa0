// Package sqlite implements the Tabular port on a local SQLite database.
// Tables are stored as a sparse cell grid, which keeps the backend faithful
// to the 1-based row/column addressing of the spreadsheet layout.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"kakeibo/internal/store"
)

type Store struct {
	db *sql.DB
}

var _ store.Tabular = (*Store)(nil)

func New(dbPath string) (*Store, error) {
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
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) Rows(ctx context.Context, table string) ([][]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT row, col, value FROM cells WHERE table_name = ? ORDER BY row, col`, table)
	if err != nil {
		return nil, fmt.Errorf("query cells of %s: %w", table, err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var r, c int
		var v string
		if err := rows.Scan(&r, &c, &v); err != nil {
			return nil, fmt.Errorf("scan cell: %w", err)
		}
		for len(out) < r {
			out = append(out, nil)
		}
		for len(out[r-1]) < c {
			out[r-1] = append(out[r-1], "")
		}
		out[r-1][c-1] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cells of %s: %w", table, err)
	}
	return out, nil
}

func (s *Store) SetCell(ctx context.Context, table string, row, col int, value string) error {
	if row < 1 || col < 1 {
		return fmt.Errorf("invalid cell address %d,%d", row, col)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cells (table_name, row, col, value) VALUES (?, ?, ?, ?)
		 ON CONFLICT (table_name, row, col) DO UPDATE SET value = excluded.value`,
		table, row, col, value)
	if err != nil {
		return fmt.Errorf("set cell %s[%d,%d]: %w", table, row, col, err)
	}
	return nil
}

func (s *Store) Append(ctx context.Context, table string, rows [][]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append: %w", err)
	}
	defer tx.Rollback()

	var last sql.NullInt64
	if err := tx.QueryRowContext(ctx,
		`SELECT MAX(row) FROM cells WHERE table_name = ?`, table).Scan(&last); err != nil {
		return fmt.Errorf("max row of %s: %w", table, err)
	}
	next := int(last.Int64) + 1
	for _, r := range rows {
		for j, v := range r {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO cells (table_name, row, col, value) VALUES (?, ?, ?, ?)`,
				table, next, j+1, v); err != nil {
				return fmt.Errorf("append cell %s[%d,%d]: %w", table, next, j+1, err)
			}
		}
		next++
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context, table string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM cells WHERE table_name = ?`, table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	return nil
}

func (s *Store) RowCount(ctx context.Context, table string) (int, error) {
	var last sql.NullInt64
	if err := s.db.QueryRowContext(ctx,
		`SELECT MAX(row) FROM cells WHERE table_name = ?`, table).Scan(&last); err != nil {
		return 0, fmt.Errorf("max row of %s: %w", table, err)
	}
	return int(last.Int64), nil
}

func (s *Store) ColumnCount(ctx context.Context, table string) (int, error) {
	var widest sql.NullInt64
	if err := s.db.QueryRowContext(ctx,
		`SELECT MAX(col) FROM cells WHERE table_name = ?`, table).Scan(&widest); err != nil {
		return 0, fmt.Errorf("max col of %s: %w", table, err)
	}
	return int(widest.Int64), nil
}
