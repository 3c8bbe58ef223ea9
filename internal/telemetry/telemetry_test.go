package telemetry

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepository_RecordAndFilter(t *testing.T) {
	r := NewMemoryRepository()

	require.NoError(t, r.RecordEvent(EventTaskAdded, "added task \"Study\"", EventMetadata{"priority": "High"}))
	require.NoError(t, r.RecordEvent(EventDuplicateRejected, "duplicate", nil))

	all, err := r.GetEvents(time.Time{}, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[0].ID)
	assert.Equal(t, `{"priority":"High"}`, all[0].Metadata)

	dups, err := r.GetEvents(time.Time{}, []EventType{EventDuplicateRejected})
	require.NoError(t, err)
	require.Len(t, dups, 1)
	assert.Equal(t, "duplicate", dups[0].Message)

	later, err := r.GetEvents(time.Now().Add(time.Hour), nil)
	require.NoError(t, err)
	assert.Empty(t, later)

	require.NoError(t, r.Clear())
	assert.Empty(t, r.Types())
}

func TestLogRecorder(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	r := NewLogRecorder(logger)

	require.NoError(t, r.RecordEvent(EventStoreSaveFailed, "could not save tasks", EventMetadata{"error": "disk full"}))

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, `msg="could not save tasks"`)
	assert.Contains(t, out, "event=store_save_failed")
	assert.Contains(t, out, `error="disk full"`)
}

func TestLogRecorder_SortsMetadata(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
	r := NewLogRecorder(logger)

	meta := EventMetadata{"title": "Study", "due_date": "2025-07-16", "priority": "High", "count": 1, "id": "x"}
	for i := 0; i < 5; i++ {
		require.NoError(t, r.RecordEvent(EventTaskAdded, "added", meta))
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "level=INFO msg=added event=task_added count=1 due_date=2025-07-16 id=x priority=High title=Study", lines[0])
	for _, l := range lines[1:] {
		assert.Equal(t, lines[0], l)
	}
}

type brokenRecorder struct{}

func (brokenRecorder) RecordEvent(EventType, string, EventMetadata) error {
	return errors.New("broken")
}

func TestMulti(t *testing.T) {
	a, b := NewMemoryRepository(), NewMemoryRepository()
	m := Multi{a, brokenRecorder{}, nil, b}

	err := m.RecordEvent(EventTaskAdded, "added", nil)
	assert.EqualError(t, err, "broken")
	assert.Equal(t, []EventType{EventTaskAdded}, a.Types())
	assert.Equal(t, []EventType{EventTaskAdded}, b.Types())
}

func TestCalculateStats(t *testing.T) {
	r := NewMemoryRepository()
	_ = r.RecordEvent(EventTaskAdded, "added", EventMetadata{"priority": "High"})
	_ = r.RecordEvent(EventDuplicateRejected, "dup", nil)
	_ = r.RecordEvent(EventValidationFailed, "bad title", EventMetadata{"field": "title"})
	_ = r.RecordEvent(EventTaskAdded, "added", EventMetadata{"priority": "Medium"})
	_ = r.RecordEvent(EventStoreLoadFailed, "load", nil)

	events, _ := r.GetEvents(time.Time{}, nil)
	stats, err := CalculateStats(events, time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "2025-07-15", stats.Period)
	assert.Equal(t, 2, stats.TasksAdded)
	assert.Equal(t, 2, stats.Rejected)
	assert.Equal(t, 1, stats.Duplicates)
	assert.Equal(t, 1, stats.StorageFailures)
	assert.Equal(t, map[string]int{"title": 1}, stats.RejectedByField)
	assert.Equal(t, map[string]int{"High": 1, "Medium": 1}, stats.TasksByPriority)
	assert.InDelta(t, 0.5, stats.AcceptanceRate, 1e-9)
	assert.NotNil(t, stats.LastTaskAddedTime)
}
