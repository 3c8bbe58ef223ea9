package task

import (
	"time"

	"github.com/google/uuid"

	"taskledger/internal/model"
)

func newID() model.TaskID {
	return model.TaskID(uuid.NewString())
}

// newTask builds a fresh record. Both timestamps are the same UTC instant so
// that CreatedAt == LastUpdatedAt holds and survives a store round trip.
func newTask(id model.TaskID, now time.Time, status model.Status, title, description, dueDate, priority string) model.Task {
	now = now.UTC()
	return model.Task{
		ID:            id,
		Title:         title,
		Description:   description,
		DueDate:       dueDate,
		Priority:      model.Priority(priority),
		Status:        status,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
}
