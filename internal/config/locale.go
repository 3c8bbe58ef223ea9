package config

import (
	"fmt"

	"taskledger/internal/model"
)

const (
	LocaleEN = "en"
	LocaleVI = "vi"
)

// Labels holds the localized priority and status labels.
type Labels struct {
	Priorities    model.PriorityScale
	InitialStatus model.Status
}

// English returns the default labels.
func English() Labels {
	scale, _ := model.NewPriorityScale("Low", "Medium", "High")
	return Labels{
		Priorities:    scale,
		InitialStatus: model.StatusIncomplete,
	}
}

// Vietnamese returns the labels used by the original Vietnamese data files.
func Vietnamese() Labels {
	scale, _ := model.NewPriorityScale("Thấp", "Trung bình", "Cao")
	return Labels{
		Priorities:    scale,
		InitialStatus: model.Status("Chưa hoàn thành"),
	}
}

// Labels resolves the locale preset and applies explicit overrides.
func (t Tasks) Labels() (Labels, error) {
	var l Labels
	switch t.Locale {
	case "", LocaleEN:
		l = English()
	case LocaleVI:
		l = Vietnamese()
	default:
		return Labels{}, fmt.Errorf("unknown locale %q", t.Locale)
	}

	if len(t.Priorities) > 0 {
		if len(t.Priorities) != 3 {
			return Labels{}, fmt.Errorf("priorities: want 3 labels (low, medium, high), got %d", len(t.Priorities))
		}
		scale, err := model.NewPriorityScale(t.Priorities[0], t.Priorities[1], t.Priorities[2])
		if err != nil {
			return Labels{}, fmt.Errorf("priorities: %w", err)
		}
		l.Priorities = scale
	}
	if t.InitialStatus != "" {
		l.InitialStatus = model.Status(t.InitialStatus)
	}
	return l, nil
}
