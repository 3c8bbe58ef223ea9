package task

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"taskledger/internal/model"
)

// FileStore keeps the collection in a single JSON or YAML file. Save writes
// a temp file next to the target and renames it into place.
type FileStore struct {
	mu    sync.Mutex
	path  string
	codec Codec
}

func NewFileStore(path, format string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("store path is required")
	}
	codec, err := CodecFor(path, format)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return &FileStore{path: path, codec: codec}, nil
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Format() string { return s.codec.Name() }

func (s *FileStore) Load(ctx context.Context) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Task{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return []model.Task{}, nil
	}

	tasks, err := s.codec.Decode(b)
	if err != nil {
		return nil, fmt.Errorf("decode %s as %s: %w", s.path, s.codec.Name(), err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

func (s *FileStore) Save(ctx context.Context, tasks []model.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.codec.Encode(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks as %s: %w", s.codec.Name(), err)
	}
	if err := writeFileAtomic(s.path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	return nil
}
