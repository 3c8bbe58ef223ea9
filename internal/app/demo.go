package app

import (
	"context"
	"time"

	"taskledger/internal/config"
	"taskledger/internal/model"
	"taskledger/internal/telemetry"
)

// Attempt is one AddTask call of the demo and its outcome.
type Attempt struct {
	Title, Description, DueDate string
	Priority                    model.Priority

	Task model.Task
	Err  error
}

// DemoAttempts returns the four calls of the demo: a new task, the same
// task again, a task without a title, and a second new task. Titles follow
// the configured locale.
func DemoAttempts(cfg *config.Config, labels config.Labels) []Attempt {
	low := labels.Priorities.Label(model.LevelLow)
	medium := labels.Priorities.Label(model.LevelMedium)
	high := labels.Priorities.Label(model.LevelHigh)

	if cfg.Tasks.Locale == config.LocaleVI {
		return []Attempt{
			{Title: "Học bài", Description: "Ôn thi công nghệ phần mềm", DueDate: "2025-07-16", Priority: high},
			{Title: "Học bài", Description: "Ôn thi công nghệ phần mềm", DueDate: "2025-07-16", Priority: high},
			{Title: "", Description: "Thiếu tiêu đề", DueDate: "2025-07-18", Priority: low},
			{Title: "Tập gym", Description: "Tập thể dục mỗi sáng", DueDate: "2025-07-17", Priority: medium},
		}
	}
	return []Attempt{
		{Title: "Study", Description: "Exam review", DueDate: "2025-07-16", Priority: high},
		{Title: "Study", Description: "Exam review", DueDate: "2025-07-16", Priority: high},
		{Title: "", Description: "Missing title", DueDate: "2025-07-18", Priority: low},
		{Title: "Gym", Description: "Morning workout", DueDate: "2025-07-17", Priority: medium},
	}
}

// RunDemo replays DemoAttempts and summarizes the events they produced.
func (a *App) RunDemo(ctx context.Context) ([]Attempt, telemetry.Stats, error) {
	start := time.Now()
	attempts := DemoAttempts(a.Config, a.Labels)
	for i := range attempts {
		at := &attempts[i]
		at.Task, at.Err = a.Manager.AddTask(ctx, at.Title, at.Description, at.DueDate, string(at.Priority))
		if ctx.Err() != nil {
			return attempts[:i+1], telemetry.Stats{}, ctx.Err()
		}
	}

	events, err := a.Events.GetEvents(start, nil)
	if err != nil {
		return attempts, telemetry.Stats{}, err
	}
	stats, err := telemetry.CalculateStats(events, start)
	return attempts, stats, err
}
