package task

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskledger/internal/model"
	"taskledger/internal/telemetry"
)

func newSQLStoreForTest(t *testing.T) (*SQLStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tasks.db")
	store, err := NewSQLStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestSQLStore_EmptyDatabase(t *testing.T) {
	store, _ := newSQLStoreForTest(t)

	tasks, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestSQLStore_RoundTripKeepsOrder(t *testing.T) {
	store, path := newSQLStoreForTest(t)
	ctx := context.Background()

	want := sampleTasks()
	// Insert order must win over id order.
	want[0], want[1] = want[1], want[0]
	require.NoError(t, store.Save(ctx, want))
	require.NoError(t, store.Close())

	reopened, err := NewSQLStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSQLStore_SaveReplacesAllRows(t *testing.T) {
	store, _ := newSQLStoreForTest(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleTasks()))
	require.NoError(t, store.Save(ctx, sampleTasks()[1:]))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleTasks()[1:], got)

	require.NoError(t, store.Save(ctx, nil))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLStore_WithManager(t *testing.T) {
	store, _ := newSQLStoreForTest(t)
	m, err := NewManager(Options{Store: store, Events: telemetry.Discard{}})
	require.NoError(t, err)
	ctx := context.Background()

	study, err := m.AddTask(ctx, "Study", "Exam review", "2025-07-16", "High")
	require.NoError(t, err)
	_, err = m.AddTask(ctx, "Study", "Exam review", "2025-07-16", "High")
	assert.ErrorIs(t, err, ErrDuplicateTask)
	gym, err := m.AddTask(ctx, "Gym", "Morning workout", "2025-07-17", "Medium")
	require.NoError(t, err)

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Task{study, gym}, got)
}
