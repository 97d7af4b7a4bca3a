package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"jsontodos/internal/core/domain"
	"jsontodos/internal/core/port"
	"jsontodos/internal/core/telemetry"
)

type TodoService struct {
	store port.TodoStore
	ids   port.IDGenerator
	probe port.Telemetry
	now   func() time.Time
}

func NewTodoService(store port.TodoStore, ids port.IDGenerator, probe port.Telemetry) *TodoService {
	return &TodoService{
		store: store,
		ids:   ids,
		probe: probe,
		now:   time.Now,
	}
}

func (ts *TodoService) List(ctx context.Context) ([]domain.Todo, error) {
	ctx, op := telemetry.StartServiceOperation(ts.probe, ctx, "list")

	todos, err := ts.store.LoadAll(ctx)
	op.End(len(todos), err)

	if err != nil {
		return nil, err
	}

	return todos, nil
}

func (ts *TodoService) Create(ctx context.Context, text string) (domain.Todo, error) {
	ctx, op := telemetry.StartServiceOperation(ts.probe, ctx, "create")

	todo, err := domain.NewTodo(ts.ids.NextID(), text, ts.now())

	if err != nil {
		op.End(0, err)
		return domain.Todo{}, err
	}

	err = ts.store.Mutate(ctx, func(todos []domain.Todo) ([]domain.Todo, error) {
		// ids from an earlier process may sit ahead of this one's clock
		for domain.IndexOf(todos, todo.ID) >= 0 {
			todo.ID++
		}

		return append(todos, todo), nil
	})
	op.End(0, err)

	if err != nil {
		return domain.Todo{}, err
	}

	ts.probe.RecordBusinessEvent(ctx, "todo.created", todo.ID, map[string]interface{}{
		"text_length": len(todo.Text),
	})

	return todo, nil
}

func (ts *TodoService) Toggle(ctx context.Context, id int64) (domain.Todo, error) {
	ctx, op := telemetry.StartServiceOperation(ts.probe, ctx, "toggle", attribute.Int64("todo.id", id))

	var toggled domain.Todo

	err := ts.store.Mutate(ctx, func(todos []domain.Todo) ([]domain.Todo, error) {
		i := domain.IndexOf(todos, id)

		if i < 0 {
			return nil, domain.ErrTodoNotFound
		}

		todos[i].Toggle()
		toggled = todos[i]

		return todos, nil
	})
	op.End(0, err)

	if err != nil {
		return domain.Todo{}, err
	}

	ts.probe.RecordBusinessEvent(ctx, "todo.toggled", id, map[string]interface{}{
		"completed": toggled.Completed,
	})

	return toggled, nil
}

func (ts *TodoService) UpdateText(ctx context.Context, id int64, text string) (domain.Todo, error) {
	ctx, op := telemetry.StartServiceOperation(ts.probe, ctx, "update_text", attribute.Int64("todo.id", id))

	text, err := domain.NormalizeText(text)

	if err != nil {
		op.End(0, err)
		return domain.Todo{}, err
	}

	var updated domain.Todo

	err = ts.store.Mutate(ctx, func(todos []domain.Todo) ([]domain.Todo, error) {
		i := domain.IndexOf(todos, id)

		if i < 0 {
			return nil, domain.ErrTodoNotFound
		}

		if err := todos[i].Rename(text); err != nil {
			return nil, err
		}

		updated = todos[i]

		return todos, nil
	})
	op.End(0, err)

	if err != nil {
		return domain.Todo{}, err
	}

	ts.probe.RecordBusinessEvent(ctx, "todo.text_updated", id, map[string]interface{}{
		"text_length": len(updated.Text),
	})

	return updated, nil
}

func (ts *TodoService) Delete(ctx context.Context, id int64) error {
	ctx, op := telemetry.StartServiceOperation(ts.probe, ctx, "delete", attribute.Int64("todo.id", id))

	err := ts.store.Mutate(ctx, func(todos []domain.Todo) ([]domain.Todo, error) {
		filtered := domain.Without(todos, id)

		if len(filtered) == len(todos) {
			return nil, domain.ErrTodoNotFound
		}

		return filtered, nil
	})
	op.End(0, err)

	if err != nil {
		return err
	}

	ts.probe.RecordBusinessEvent(ctx, "todo.deleted", id, nil)

	return nil
}
