package shopping

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kakeibo/internal/store/memory"
)

func TestAddListRemove(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	l := NewList(st, "shopping_list")
	now := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)

	require.NoError(t, l.Add(ctx, "milk", now))
	require.NoError(t, l.Add(ctx, "eggs", now))

	items, err := l.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "milk", items[0].Name)

	require.NoError(t, l.Remove(ctx, "milk"))

	items, err = l.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "eggs", items[0].Name)

	// The row survives as an audit record, only hidden.
	rows, err := st.Rows(ctx, "shopping_list")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, DeletedFlag, rows[0][2])
}

func TestRemoveMissing(t *testing.T) {
	l := NewList(memory.New(), "shopping_list")
	err := l.Remove(context.Background(), "caviar")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestAddEmptyItem(t *testing.T) {
	l := NewList(memory.New(), "shopping_list")
	require.Error(t, l.Add(context.Background(), "  ", time.Now()))
}
