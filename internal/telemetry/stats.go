package telemetry

import (
	"encoding/json"
	"time"
)

type Stats struct {
	Period            string            `json:"period"`
	EventCounts       map[EventType]int `json:"event_counts"`
	TasksAdded        int               `json:"tasks_added"`
	Rejected          int               `json:"rejected"`
	RejectedByField   map[string]int    `json:"rejected_by_field"`
	Duplicates        int               `json:"duplicates"`
	StorageFailures   int               `json:"storage_failures"`
	AcceptanceRate    float64           `json:"acceptance_rate"`
	TasksByPriority   map[string]int    `json:"tasks_by_priority"`
	LastTaskAddedTime *time.Time        `json:"last_task_added_time,omitempty"`
}

// CalculateStats summarizes a run of add attempts from its events.
func CalculateStats(events []Event, since time.Time) (Stats, error) {
	stats := Stats{
		Period:          since.Format("2006-01-02"),
		EventCounts:     make(map[EventType]int),
		RejectedByField: make(map[string]int),
		TasksByPriority: make(map[string]int),
	}

	for _, event := range events {
		stats.EventCounts[event.Type]++

		var metadata EventMetadata
		if err := json.Unmarshal([]byte(event.Metadata), &metadata); err != nil {
			metadata = EventMetadata{}
		}

		switch event.Type {
		case EventTaskAdded:
			stats.TasksAdded++
			if p, ok := metadata["priority"].(string); ok {
				stats.TasksByPriority[p]++
			}
			ts := event.Timestamp
			stats.LastTaskAddedTime = &ts
		case EventValidationFailed:
			stats.Rejected++
			if field, ok := metadata["field"].(string); ok {
				stats.RejectedByField[field]++
			}
		case EventDuplicateRejected:
			stats.Rejected++
			stats.Duplicates++
		case EventStoreLoadFailed, EventStoreSaveFailed:
			stats.StorageFailures++
		}
	}

	attempts := stats.TasksAdded + stats.Rejected + stats.EventCounts[EventStoreSaveFailed]
	if attempts > 0 {
		stats.AcceptanceRate = float64(stats.TasksAdded) / float64(attempts)
	}

	return stats, nil
}
