package memory

import (
	"context"
	"sync"

	"jsontodos/internal/core/domain"
	"jsontodos/internal/core/port"
)

// Store keeps the collection in memory. It copies on every read and write so
// callers never share the backing slice.
type Store struct {
	mu    sync.Mutex
	todos []domain.Todo
	saves int
}

func NewStore(seed ...domain.Todo) *Store {
	return &Store{todos: clone(seed)}
}

var _ port.TodoStore = (*Store)(nil)

func (s *Store) EnsureExists(ctx context.Context) error {
	return nil
}

func (s *Store) LoadAll(ctx context.Context) ([]domain.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return clone(s.todos), nil
}

func (s *Store) SaveAll(ctx context.Context, todos []domain.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.save(todos)
	return nil
}

func (s *Store) Mutate(ctx context.Context, fn port.MutateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	todos, err := fn(clone(s.todos))

	if err != nil {
		return err
	}

	s.save(todos)
	return nil
}

// Saves reports how many times the collection has been written.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saves
}

func (s *Store) save(todos []domain.Todo) {
	s.todos = clone(todos)
	s.saves++
}

func clone(todos []domain.Todo) []domain.Todo {
	out := make([]domain.Todo, len(todos))
	copy(out, todos)

	return out
}
