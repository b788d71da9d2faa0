// Package memory provides an in-process Tabular backend. It backs tests and
// local development, where wiring real spreadsheet credentials is overkill.
package memory

import (
	"context"
	"sync"
)

type Store struct {
	mu     sync.Mutex
	tables map[string][][]string
}

func New() *Store {
	return &Store{tables: make(map[string][][]string)}
}

// Seed replaces the named table's contents, for test setup.
func (s *Store) Seed(table string, rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([][]string, len(rows))
	for i, r := range rows {
		cp[i] = append([]string(nil), r...)
	}
	s.tables[table] = cp
}

func (s *Store) Rows(_ context.Context, table string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.tables[table]
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out, nil
}

func (s *Store) SetCell(_ context.Context, table string, row, col int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.tables[table]
	for len(rows) < row {
		rows = append(rows, nil)
	}
	for len(rows[row-1]) < col {
		rows[row-1] = append(rows[row-1], "")
	}
	rows[row-1][col-1] = value
	s.tables[table] = rows
	return nil
}

func (s *Store) Append(_ context.Context, table string, rows [][]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rows {
		s.tables[table] = append(s.tables[table], append([]string(nil), r...))
	}
	return nil
}

func (s *Store) Clear(_ context.Context, table string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = nil
	return nil
}

func (s *Store) RowCount(_ context.Context, table string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tables[table]), nil
}

func (s *Store) ColumnCount(_ context.Context, table string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	widest := 0
	for _, r := range s.tables[table] {
		if len(r) > widest {
			widest = len(r)
		}
	}
	return widest, nil
}
