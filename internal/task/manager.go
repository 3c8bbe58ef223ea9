package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"taskledger/internal/config"
	"taskledger/internal/model"
	"taskledger/internal/telemetry"
)

type Options struct {
	Store Store

	// Labels defaults to config.English().
	Labels *config.Labels

	// Events receives every observability event. Defaults to a
	// telemetry.LogRecorder on Logger.
	Events telemetry.Recorder
	Logger *slog.Logger
	Clock  Clock
	NewID  func() model.TaskID
}

// Manager validates, de-duplicates and persists new tasks. Every AddTask
// reloads the whole collection and writes the whole collection back.
type Manager struct {
	// mu serializes load-check-save within this process only.
	mu sync.Mutex

	store         Store
	priorities    model.PriorityScale
	initialStatus model.Status
	events        telemetry.Recorder
	logger        *slog.Logger
	clock         Clock
	newID         func() model.TaskID
}

func NewManager(opts Options) (*Manager, error) {
	if opts.Store == nil {
		return nil, errors.New("store is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Events == nil {
		opts.Events = telemetry.NewLogRecorder(opts.Logger)
	}
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.NewID == nil {
		opts.NewID = newID
	}
	labels := config.English()
	if opts.Labels != nil {
		labels = *opts.Labels
	}
	if labels.Priorities.Label(model.LevelLow) == "" {
		labels.Priorities = config.English().Priorities
	}
	if labels.InitialStatus == "" {
		labels.InitialStatus = model.StatusIncomplete
	}

	return &Manager{
		store:         opts.Store,
		priorities:    labels.Priorities,
		initialStatus: labels.InitialStatus,
		events:        opts.Events,
		logger:        opts.Logger,
		clock:         opts.Clock,
		newID:         opts.NewID,
	}, nil
}

// Priorities returns the accepted priority labels, lowest first.
func (m *Manager) Priorities() []model.Priority {
	return m.priorities.Labels()
}

// Validate returns nil or a *ValidationError for the first failing field.
// Title is checked first, then due date, then priority.
func (m *Manager) Validate(title, dueDate, priority string) error {
	return validate(m.priorities, title, dueDate, priority)
}

func (m *Manager) IsValid(title, dueDate, priority string) bool {
	return m.Validate(title, dueDate, priority) == nil
}

// AddTask validates the input, rejects duplicates of (title, dueDate), and
// appends a new incomplete task to the store.
//
// Invalid input returns a *ValidationError and a duplicate returns
// ErrDuplicateTask; neither touches storage. The description is free text but
// must be valid UTF-8. A failed save returns an error
// wrapping ErrStorageWrite and the zero Task. A failed load is not an error:
// the collection is treated as empty and the failure is reported as a
// store_load_failed event.
func (m *Manager) AddTask(ctx context.Context, title, description, dueDate, priority string) (model.Task, error) {
	err := m.Validate(title, dueDate, priority)
	if err == nil {
		err = validateText(FieldDescription, description)
	}
	if err != nil {
		m.reportInvalid(err, title, dueDate, priority)
		return model.Task{}, err
	}
	if err := ctx.Err(); err != nil {
		return model.Task{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	tasks := m.load(ctx)
	if err := ctx.Err(); err != nil {
		return model.Task{}, err
	}

	if i := model.FindDuplicate(tasks, title, dueDate); i >= 0 {
		m.emit(telemetry.EventDuplicateRejected,
			fmt.Sprintf("duplicate task: %q is already due on %s", title, dueDate),
			telemetry.EventMetadata{
				"title":       title,
				"due_date":    dueDate,
				"existing_id": string(tasks[i].ID),
			})
		return model.Task{}, ErrDuplicateTask
	}

	t := newTask(m.newID(), m.clock.Now(), m.initialStatus, title, description, dueDate, priority)
	tasks = append(tasks, t)

	if err := m.store.Save(ctx, tasks); err != nil {
		m.emit(telemetry.EventStoreSaveFailed,
			fmt.Sprintf("could not save tasks: %v", err),
			telemetry.EventMetadata{
				"title":    title,
				"due_date": dueDate,
				"error":    err.Error(),
			})
		return model.Task{}, fmt.Errorf("%w: %w", ErrStorageWrite, err)
	}

	m.emit(telemetry.EventTaskAdded,
		fmt.Sprintf("added task %q", title),
		telemetry.EventMetadata{
			"id":       string(t.ID),
			"title":    t.Title,
			"due_date": t.DueDate,
			"priority": string(t.Priority),
			"count":    len(tasks),
		})
	return t, nil
}

// load returns the stored collection, or an empty one if it cannot be read.
// A read failure is reported as store_load_failed, never returned.
func (m *Manager) load(ctx context.Context) []model.Task {
	tasks, err := m.store.Load(ctx)
	if err != nil {
		m.emit(telemetry.EventStoreLoadFailed,
			fmt.Sprintf("could not read tasks, starting from an empty list: %v", err),
			telemetry.EventMetadata{"error": err.Error()})
		return []model.Task{}
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks
}

func (m *Manager) reportInvalid(err error, title, dueDate, priority string) {
	meta := telemetry.EventMetadata{
		"title":    title,
		"due_date": dueDate,
		"priority": priority,
		"error":    err.Error(),
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		meta["field"] = verr.Field
	}

	var msg string
	switch {
	case errors.Is(err, ErrEmptyTitle):
		msg = "rejected task: title must not be empty"
	case errors.Is(err, ErrInvalidText):
		msg = fmt.Sprintf("rejected task: %s is not valid UTF-8", verr.Field)
	case errors.Is(err, ErrInvalidDueDate):
		msg = fmt.Sprintf("rejected task: due date %q is not a valid YYYY-MM-DD date", dueDate)
	case errors.Is(err, ErrInvalidPriority):
		msg = fmt.Sprintf("rejected task: priority %q is not one of %v", priority, m.priorities.Labels())
	default:
		msg = "rejected task: " + err.Error()
	}
	m.emit(telemetry.EventValidationFailed, msg, meta)
}

func (m *Manager) emit(eventType telemetry.EventType, message string, meta telemetry.EventMetadata) {
	if err := m.events.RecordEvent(eventType, message, meta); err != nil {
		m.logger.Debug("record event", "event", string(eventType), "err", err)
	}
}
