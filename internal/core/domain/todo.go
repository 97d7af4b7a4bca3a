package domain

import (
	"errors"
	"strings"
	"time"
)

// CreatedAtLayout renders timestamps as ISO-8601 UTC with millisecond precision.
const CreatedAtLayout = "2006-01-02T15:04:05.000Z07:00"

var (
	ErrTodoNotFound     = errors.New("todo not found")
	ErrTodoTextRequired = errors.New("todo text is required")
)

type Todo struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
}

// NewTodo builds an incomplete todo from raw user input.
func NewTodo(id int64, text string, now time.Time) (Todo, error) {
	text, err := NormalizeText(text)

	if err != nil {
		return Todo{}, err
	}

	return Todo{
		ID:        id,
		Text:      text,
		Completed: false,
		CreatedAt: now.UTC().Format(CreatedAtLayout),
	}, nil
}

// NormalizeText trims the text and rejects it when nothing is left.
func NormalizeText(text string) (string, error) {
	text = strings.TrimSpace(text)

	if text == "" {
		return "", ErrTodoTextRequired
	}

	return text, nil
}

func (t *Todo) Toggle() {
	t.Completed = !t.Completed
}

func (t *Todo) Rename(text string) error {
	text, err := NormalizeText(text)

	if err != nil {
		return err
	}

	t.Text = text
	return nil
}

// IndexOf returns the position of the todo with id, or -1.
func IndexOf(todos []Todo, id int64) int {
	for i := range todos {
		if todos[i].ID == id {
			return i
		}
	}

	return -1
}

// Without returns a new sequence excluding the todo with id, preserving order.
func Without(todos []Todo, id int64) []Todo {
	filtered := make([]Todo, 0, len(todos))

	for _, todo := range todos {
		if todo.ID != id {
			filtered = append(filtered, todo)
		}
	}

	return filtered
}
