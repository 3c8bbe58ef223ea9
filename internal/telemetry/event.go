package telemetry

import "time"

type EventType string

const (
	EventTaskAdded         EventType = "task_added"
	EventValidationFailed  EventType = "validation_failed"
	EventDuplicateRejected EventType = "duplicate_rejected"
	EventStoreLoadFailed   EventType = "store_load_failed"
	EventStoreSaveFailed   EventType = "store_save_failed"
)

// Event is one message on the observability channel. Message is meant for
// humans; Metadata is the JSON encoding of the structured fields.
type Event struct {
	ID        int       `json:"id"`
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	Metadata  string    `json:"metadata"`
}

type EventMetadata map[string]interface{}
