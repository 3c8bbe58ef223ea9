package task

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taskledger/internal/model"
)

// taskRow is the SQLite shape of a task. Timestamps are stored as RFC 3339
// text so they read back exactly as written.
type taskRow struct {
	ID           string `gorm:"primarykey;size:36"`
	Position     int    `gorm:"not null;index"`
	Title        string `gorm:"not null"`
	Description  string
	DueDate      string `gorm:"size:10;not null"`
	Priority     string `gorm:"size:50;not null"`
	Status       string `gorm:"size:50;not null"`
	CreatedStamp string `gorm:"column:created_at;not null"`
	UpdatedStamp string `gorm:"column:last_updated_at;not null"`
}

func (taskRow) TableName() string {
	return "tasks"
}

// SQLStore keeps the collection in a SQLite table. Save replaces every row
// in one transaction, so it has the same whole-collection semantics as
// FileStore.
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(path string) (*SQLStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("store path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return NewSQLStoreFromDB(db)
}

// NewSQLStoreFromDB migrates the tasks table on an existing connection.
func NewSQLStoreFromDB(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&taskRow{}); err != nil {
		return nil, fmt.Errorf("migrate tasks table: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Load(ctx context.Context) ([]model.Task, error) {
	var rows []taskRow
	if err := s.db.WithContext(ctx).Order("position").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	out := make([]model.Task, 0, len(rows))
	for _, r := range rows {
		t, err := r.toTask()
		if err != nil {
			return nil, fmt.Errorf("task %s: %w", r.ID, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *SQLStore) Save(ctx context.Context, tasks []model.Task) error {
	rows := make([]taskRow, 0, len(tasks))
	for i, t := range tasks {
		rows = append(rows, fromTask(i+1, t))
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&taskRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(&rows, 100).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save tasks: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func fromTask(pos int, t model.Task) taskRow {
	return taskRow{
		ID:           string(t.ID),
		Position:     pos,
		Title:        t.Title,
		Description:  t.Description,
		DueDate:      t.DueDate,
		Priority:     string(t.Priority),
		Status:       string(t.Status),
		CreatedStamp: t.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedStamp: t.LastUpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (r taskRow) toTask() (model.Task, error) {
	created, err := time.Parse(time.RFC3339Nano, r.CreatedStamp)
	if err != nil {
		return model.Task{}, fmt.Errorf("created_at: %w", err)
	}
	updated, err := time.Parse(time.RFC3339Nano, r.UpdatedStamp)
	if err != nil {
		return model.Task{}, fmt.Errorf("last_updated_at: %w", err)
	}
	return model.Task{
		ID:            model.TaskID(r.ID),
		Title:         r.Title,
		Description:   r.Description,
		DueDate:       r.DueDate,
		Priority:      model.Priority(r.Priority),
		Status:        model.Status(r.Status),
		CreatedAt:     created,
		LastUpdatedAt: updated,
	}, nil
}
