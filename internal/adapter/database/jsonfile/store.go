package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"jsontodos/internal/core/domain"
	"jsontodos/internal/core/port"
	"jsontodos/internal/core/telemetry"
)

// Store persists the whole collection as one pretty-printed JSON array.
//
// Mutate serializes load-modify-save within this process only. Another
// process writing the same file is not coordinated with: last writer wins.
type Store struct {
	path  string
	probe port.Telemetry
	mu    sync.Mutex
}

func NewStore(path string, probe port.Telemetry) *Store {
	return &Store{
		path:  path,
		probe: probe,
	}
}

var _ port.TodoStore = (*Store)(nil)

func (s *Store) Path() string {
	return s.path
}

// EnsureExists writes an empty array when the file is absent.
func (s *Store) EnsureExists(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.ensureExists(ctx)
}

func (s *Store) LoadAll(ctx context.Context) ([]domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadAll(ctx)
}

func (s *Store) SaveAll(ctx context.Context, todos []domain.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveAll(ctx, todos)
}

func (s *Store) Mutate(ctx context.Context, fn port.MutateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos, err := s.loadAll(ctx)

	if err != nil {
		return err
	}

	todos, err = fn(todos)

	if err != nil {
		return err
	}

	return s.saveAll(ctx, todos)
}

func (s *Store) ensureExists(ctx context.Context) error {
	_, err := os.Stat(s.path)

	if err == nil {
		return nil
	}

	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat todo store: %w", err)
	}

	ctx, op := telemetry.StartStoreOperation(s.probe, ctx, "init", attribute.String("store.path", s.path))

	err = s.write([]domain.Todo{})
	op.End(0, err)

	return err
}

func (s *Store) loadAll(ctx context.Context) ([]domain.Todo, error) {
	if err := s.ensureExists(ctx); err != nil {
		return nil, err
	}

	_, op := telemetry.StartStoreOperation(s.probe, ctx, "load", attribute.String("store.path", s.path))

	data, err := os.ReadFile(s.path)

	if err != nil {
		err = fmt.Errorf("read todo store: %w", err)
		op.End(-1, err)
		return nil, err
	}

	var todos []domain.Todo

	if err := json.Unmarshal(data, &todos); err != nil {
		err = fmt.Errorf("parse todo store: %w", err)
		op.End(-1, err)
		return nil, err
	}

	if todos == nil {
		todos = []domain.Todo{}
	}

	op.End(len(todos), nil)

	return todos, nil
}

func (s *Store) saveAll(ctx context.Context, todos []domain.Todo) error {
	_, op := telemetry.StartStoreOperation(s.probe, ctx, "save", attribute.String("store.path", s.path))

	if todos == nil {
		todos = []domain.Todo{}
	}

	err := s.write(todos)
	op.End(len(todos), err)

	return err
}

func (s *Store) write(todos []domain.Todo) error {
	data, err := json.MarshalIndent(todos, "", "  ")

	if err != nil {
		return fmt.Errorf("marshal todo store: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create todo store dir: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write todo store: %w", err)
	}

	return nil
}
