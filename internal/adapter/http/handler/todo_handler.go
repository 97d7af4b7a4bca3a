package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	. "jsontodos/internal/adapter/http/helper"
	. "jsontodos/internal/adapter/http/validation"
	"jsontodos/internal/core/domain"
	"jsontodos/internal/core/model/request"
	"jsontodos/internal/core/port"
	"jsontodos/pkg/config"
	. "jsontodos/pkg/tracing"
)

type TodoHandler struct {
	svc    port.TodoService
	Logger *config.LokiLogger
}

func NewTodoHandler(todoService port.TodoService, logger *config.LokiLogger) *TodoHandler {
	return &TodoHandler{
		svc:    todoService,
		Logger: logger,
	}
}

func (t *TodoHandler) GetAllTodos(c *gin.Context) {
	ctx, span := startHandlerSpan(c, "GetAllTodos")
	defer span.End()

	todos, err := t.svc.List(ctx)

	if err != nil {
		t.sendServiceError(c, span, err)
		return
	}

	span.SetAttributes(attribute.Int("todo.count", len(todos)))

	SendSuccess(c, http.StatusOK, todos)
}

func (t *TodoHandler) CreateTodo(c *gin.Context) {
	ctx, span := startHandlerSpan(c, "CreateTodo")
	defer span.End()

	text, ok := bindText(c)

	if !ok {
		return
	}

	todo, err := t.svc.Create(ctx, text)

	if err != nil {
		t.sendServiceError(c, span, err)
		return
	}

	span.SetAttributes(attribute.Int64("todo.id", todo.ID))

	SendSuccess(c, http.StatusCreated, todo)
}

func (t *TodoHandler) ToggleTodo(c *gin.Context) {
	ctx, span := startHandlerSpan(c, "ToggleTodo")
	defer span.End()

	id, ok := parseID(c, span)

	if !ok {
		return
	}

	todo, err := t.svc.Toggle(ctx, id)

	if err != nil {
		t.sendServiceError(c, span, err)
		return
	}

	SendSuccess(c, http.StatusOK, todo)
}

func (t *TodoHandler) UpdateTodoText(c *gin.Context) {
	ctx, span := startHandlerSpan(c, "UpdateTodoText")
	defer span.End()

	text, ok := bindText(c)

	if !ok {
		return
	}

	id, ok := parseID(c, span)

	if !ok {
		return
	}

	todo, err := t.svc.UpdateText(ctx, id, text)

	if err != nil {
		t.sendServiceError(c, span, err)
		return
	}

	SendSuccess(c, http.StatusOK, todo)
}

func (t *TodoHandler) DeleteTodo(c *gin.Context) {
	ctx, span := startHandlerSpan(c, "DeleteTodo")
	defer span.End()

	id, ok := parseID(c, span)

	if !ok {
		return
	}

	if err := t.svc.Delete(ctx, id); err != nil {
		t.sendServiceError(c, span, err)
		return
	}

	SendMessage(c, http.StatusOK, MessageTodoDeleted)
}

func (t *TodoHandler) sendServiceError(c *gin.Context, span trace.Span, err error) {
	switch {
	case errors.Is(err, domain.ErrTodoTextRequired):
		SendValidationError(c, MessageTodoTextRequired)
	case errors.Is(err, domain.ErrTodoNotFound):
		SendNotFoundError(c)
	default:
		AddSpanError(span, err)

		t.Logger.Logger.Ctx(c.Request.Context()).Error("Todo request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)

		SendInternalError(c)
	}
}

func startHandlerSpan(c *gin.Context, operation string) (context.Context, trace.Span) {
	return CreateChildSpan(c.Request.Context(), "handler.todo."+operation, []attribute.KeyValue{
		attribute.String("handler.operation", operation),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})
}

// bindText decodes {"text": ...}, trims it and validates presence. It answers
// 400 itself and reports false when the text is unusable.
func bindText(c *gin.Context) (string, bool) {
	var params request.TodoRequest

	if err := c.ShouldBindJSON(&params); err != nil {
		SendValidationError(c, MessageTodoTextRequired)
		return "", false
	}

	params.Text = strings.TrimSpace(params.Text)

	if err := Validator.Struct(params); err != nil {
		message := FirstMessage(err)

		if message == "" {
			message = MessageTodoTextRequired
		}

		SendValidationError(c, message)
		return "", false
	}

	return params.Text, true
}

// parseID answers 404 for ids that cannot match any todo.
func parseID(c *gin.Context, span trace.Span) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)

	if err != nil {
		SendNotFoundError(c)
		return 0, false
	}

	span.SetAttributes(attribute.Int64("todo.id", id))

	return id, true
}
