// Package shopping maintains the household shopping list. Removal is a
// soft delete: rows get a deleted flag and stay in the table, consistent
// with the rest of the system never destroying source rows.
package shopping

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kakeibo/internal/store"
)

// DeletedFlag marks a soft-deleted row, using the same done-marker literal
// as the chore log.
const DeletedFlag = "済"

// Column layout: [item, addedAt, flag].
const (
	colItem = iota
	colAddedAt
	colFlag
)

// Item is one live shopping-list entry with its 1-based source row.
type Item struct {
	Name    string
	AddedAt string
	Row     int
}

type List struct {
	store store.Tabular
	table string
}

func NewList(st store.Tabular, table string) *List {
	return &List{store: st, table: table}
}

// Add appends an item with an empty flag cell.
func (l *List) Add(ctx context.Context, name string, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("empty shopping item")
	}
	row := []string{name, now.Format("2006/01/02 15:04:05"), ""}
	if err := l.store.Append(ctx, l.table, [][]string{row}); err != nil {
		return fmt.Errorf("append shopping item: %w", err)
	}
	return nil
}

// Items returns the list without soft-deleted rows.
func (l *List) Items(ctx context.Context) ([]Item, error) {
	rows, err := l.store.Rows(ctx, l.table)
	if err != nil {
		return nil, fmt.Errorf("load shopping list: %w", err)
	}
	items := make([]Item, 0, len(rows))
	for i, row := range rows {
		if len(row) <= colItem || strings.TrimSpace(row[colItem]) == "" {
			continue
		}
		if len(row) > colFlag && strings.TrimSpace(row[colFlag]) == DeletedFlag {
			continue
		}
		item := Item{Name: strings.TrimSpace(row[colItem]), Row: i + 1}
		if len(row) > colAddedAt {
			item.AddedAt = strings.TrimSpace(row[colAddedAt])
		}
		items = append(items, item)
	}
	return items, nil
}

// Remove soft-deletes the first live row whose item matches name.
func (l *List) Remove(ctx context.Context, name string) error {
	items, err := l.Items(ctx)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	for _, item := range items {
		if item.Name != name {
			continue
		}
		if err := l.store.SetCell(ctx, l.table, item.Row, colFlag+1, DeletedFlag); err != nil {
			return fmt.Errorf("flag shopping item: %w", err)
		}
		return nil
	}
	return fmt.Errorf("shopping item %q not found", name)
}
