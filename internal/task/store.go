package task

import (
	"context"
	"fmt"

	"taskledger/internal/config"
	"taskledger/internal/model"
)

// Store loads and saves the whole task collection at once. Load on a store
// that has never been written returns an empty collection and no error.
type Store interface {
	Load(ctx context.Context) ([]model.Task, error)
	Save(ctx context.Context, tasks []model.Task) error
}

// OpenStore builds the Store selected by cfg. Stores that hold resources
// implement io.Closer.
func OpenStore(cfg config.Store) (Store, error) {
	switch cfg.Driver {
	case config.DriverFile, "":
		return NewFileStore(cfg.Path, cfg.Format)
	case config.DriverSQLite:
		return NewSQLStore(cfg.Path)
	case config.DriverMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
