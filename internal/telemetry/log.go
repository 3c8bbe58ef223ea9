package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"slices"
)

// LogRecorder writes every event as a single structured log record.
// Failures are logged at warn level, everything else at info.
type LogRecorder struct {
	Logger *slog.Logger
}

func NewLogRecorder(logger *slog.Logger) *LogRecorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogRecorder{Logger: logger}
}

func (r *LogRecorder) RecordEvent(eventType EventType, message string, metadata EventMetadata) error {
	level := slog.LevelInfo
	if eventType != EventTaskAdded {
		level = slog.LevelWarn
	}

	attrs := make([]slog.Attr, 0, len(metadata)+1)
	attrs = append(attrs, slog.String("event", string(eventType)))
	for _, k := range slices.Sorted(maps.Keys(metadata)) {
		attrs = append(attrs, slog.Any(k, metadata[k]))
	}
	r.Logger.LogAttrs(context.Background(), level, message, attrs...)
	return nil
}

// Multi fans an event out to every recorder. All recorders are called even
// if one fails; the errors are joined.
type Multi []Recorder

func (m Multi) RecordEvent(eventType EventType, message string, metadata EventMetadata) error {
	var errs []error
	for _, r := range m {
		if r == nil {
			continue
		}
		if err := r.RecordEvent(eventType, message, metadata); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every event.
type Discard struct{}

func (Discard) RecordEvent(EventType, string, EventMetadata) error { return nil }
