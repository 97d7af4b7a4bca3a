package port

import (
	"context"

	"jsontodos/internal/core/domain"
)

// MutateFunc receives the loaded collection and returns the one to persist.
// Returning an error aborts the write.
type MutateFunc func(todos []domain.Todo) ([]domain.Todo, error)

type TodoStore interface {
	EnsureExists(ctx context.Context) error
	LoadAll(ctx context.Context) ([]domain.Todo, error)
	SaveAll(ctx context.Context, todos []domain.Todo) error
	Mutate(ctx context.Context, fn MutateFunc) error
}

type TodoService interface {
	List(ctx context.Context) ([]domain.Todo, error)
	Create(ctx context.Context, text string) (domain.Todo, error)
	Toggle(ctx context.Context, id int64) (domain.Todo, error)
	UpdateText(ctx context.Context, id int64, text string) (domain.Todo, error)
	Delete(ctx context.Context, id int64) error
}

type IDGenerator interface {
	NextID() int64
}
