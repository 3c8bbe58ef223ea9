package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"taskledger/internal/config"
	"taskledger/internal/task"
	"taskledger/internal/telemetry"
)

type Options struct {
	Config *config.Config
	Logger *slog.Logger
	// Store overrides the store built from Config.Store.
	Store task.Store
}

// App bundles a Manager with the store it writes to and an in-memory copy
// of every event it emitted.
type App struct {
	Config  *config.Config
	Labels  config.Labels
	Manager *task.Manager
	Store   task.Store
	Events  telemetry.Repository
	Logger  *slog.Logger
}

func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, errors.New("config is required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	labels, err := opts.Config.Tasks.Labels()
	if err != nil {
		return nil, err
	}

	store := opts.Store
	if store == nil {
		store, err = task.OpenStore(opts.Config.Store)
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", opts.Config.Store.Driver, err)
		}
	}

	events := telemetry.NewMemoryRepository()
	m, err := task.NewManager(task.Options{
		Store:  store,
		Labels: &labels,
		Events: telemetry.Multi{telemetry.NewLogRecorder(opts.Logger), events},
		Logger: opts.Logger,
	})
	if err != nil {
		closeStore(store)
		return nil, err
	}

	attrs := []any{"driver", opts.Config.Store.Driver, "locale", opts.Config.Tasks.Locale}
	if fs, ok := store.(*task.FileStore); ok {
		attrs = append(attrs, "path", fs.Path(), "format", fs.Format())
	}
	opts.Logger.Debug("store ready", attrs...)

	return &App{
		Config:  opts.Config,
		Labels:  labels,
		Manager: m,
		Store:   store,
		Events:  events,
		Logger:  opts.Logger,
	}, nil
}

func (a *App) Close() error {
	if c, ok := a.Store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func closeStore(s task.Store) {
	if c, ok := s.(io.Closer); ok {
		_ = c.Close()
	}
}

// NewLogger builds the text logger used by the commands.
func NewLogger(w io.Writer, level string) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}
