package model

import (
	"fmt"
	"slices"
)

// Priority is the stored label of a priority level. Labels are localized;
// PriorityScale maps them back to their rank.
type Priority string

type Level int

const (
	LevelLow Level = iota + 1
	LevelMedium
	LevelHigh
)

func (l Level) String() string {
	switch l {
	case LevelLow:
		return "low"
	case LevelMedium:
		return "medium"
	case LevelHigh:
		return "high"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// PriorityScale is the ordered set of allowed priority labels, lowest first.
type PriorityScale struct {
	labels [3]Priority
}

func NewPriorityScale(low, medium, high string) (PriorityScale, error) {
	labels := []string{low, medium, high}
	for i, l := range labels {
		if l == "" {
			return PriorityScale{}, fmt.Errorf("priority label for %s is empty", Level(i+1))
		}
		if slices.Index(labels, l) != i {
			return PriorityScale{}, fmt.Errorf("priority label %q is repeated", l)
		}
	}
	return PriorityScale{labels: [3]Priority{Priority(low), Priority(medium), Priority(high)}}, nil
}

// Labels returns the allowed labels in ascending order.
func (s PriorityScale) Labels() []Priority {
	return s.labels[:]
}

func (s PriorityScale) Label(l Level) Priority {
	if l < LevelLow || l > LevelHigh {
		return ""
	}
	return s.labels[l-1]
}

// Level resolves an exact label. Matching is case sensitive.
func (s PriorityScale) Level(label string) (Level, bool) {
	for i, p := range s.labels {
		if string(p) == label {
			return Level(i + 1), true
		}
	}
	return 0, false
}

func (s PriorityScale) Contains(label string) bool {
	_, ok := s.Level(label)
	return ok
}
