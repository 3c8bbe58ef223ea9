package model

import (
	"time"
)

type TaskID string

// DueDateLayout is the only accepted due date format.
const DueDateLayout = "2006-01-02"

type Status string

const StatusIncomplete Status = "incomplete"

type Task struct {
	ID          TaskID   `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	DueDate     string   `json:"due_date" yaml:"due_date"`
	Priority    Priority `json:"priority" yaml:"priority"`
	Status      Status   `json:"status" yaml:"status"`

	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
	LastUpdatedAt time.Time `json:"last_updated_at" yaml:"last_updated_at"`
}

// DuplicateOf reports whether t and other share the duplicate key.
// Comparison is exact: no trimming, no case folding.
func (t Task) DuplicateOf(other Task) bool {
	return t.Title == other.Title && t.DueDate == other.DueDate
}

// FindDuplicate returns the index of the first task in tasks sharing
// (title, dueDate), or -1.
func FindDuplicate(tasks []Task, title, dueDate string) int {
	probe := Task{Title: title, DueDate: dueDate}
	for i, t := range tasks {
		if t.DuplicateOf(probe) {
			return i
		}
	}
	return -1
}
