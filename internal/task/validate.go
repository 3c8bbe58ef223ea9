package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"taskledger/internal/model"
)

var (
	ErrEmptyTitle      = errors.New("title must not be empty")
	ErrInvalidDueDate  = errors.New("due date is not a valid YYYY-MM-DD date")
	ErrInvalidPriority = errors.New("priority is not one of the allowed levels")
	ErrInvalidText     = errors.New("text is not valid UTF-8")
	ErrDuplicateTask   = errors.New("a task with the same title and due date already exists")
	ErrStorageWrite    = errors.New("tasks could not be saved")
)

const (
	FieldTitle       = "title"
	FieldDueDate     = "due_date"
	FieldPriority    = "priority"
	FieldDescription = "description"
)

// ValidationError reports the first field that failed validation.
// errors.Is matches it against ErrEmptyTitle, ErrInvalidText,
// ErrInvalidDueDate or ErrInvalidPriority.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// validate checks title, then due date, then priority, and stops at the
// first failure.
func validate(scale model.PriorityScale, title, dueDate, priority string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: FieldTitle, Value: title, Err: ErrEmptyTitle}
	}
	if err := validateText(FieldTitle, title); err != nil {
		return err
	}
	if !validDueDate(dueDate) {
		return &ValidationError{Field: FieldDueDate, Value: dueDate, Err: ErrInvalidDueDate}
	}
	if !scale.Contains(priority) {
		return &ValidationError{Field: FieldPriority, Value: priority, Err: ErrInvalidPriority}
	}
	return nil
}

// validateText rejects text that is not valid UTF-8. Stored text must read
// back byte for byte, and encoding/json rewrites invalid bytes as U+FFFD.
func validateText(field, value string) error {
	if !utf8.ValidString(value) {
		return &ValidationError{Field: field, Value: value, Err: ErrInvalidText}
	}
	return nil
}

// validDueDate rejects anything time.Parse would not round-trip exactly,
// including impossible dates such as 2025-02-30.
func validDueDate(s string) bool {
	d, err := time.Parse(model.DueDateLayout, s)
	if err != nil {
		return false
	}
	return d.Format(model.DueDateLayout) == s
}
