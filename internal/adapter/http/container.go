package http

import (
	"jsontodos/internal/adapter/database/jsonfile"
	"jsontodos/internal/adapter/http/handler"
	"jsontodos/internal/core/port"
	"jsontodos/internal/core/service"
	"jsontodos/pkg/config"
)

type Container struct {
	TodoStore   port.TodoStore
	TodoService port.TodoService
	TodoHandler *handler.TodoHandler
}

func NewContainer(appConfig *config.AppConfig, logger *config.LokiLogger, probe port.Telemetry) *Container {
	todoStore := jsonfile.NewStore(appConfig.DataFile, probe)
	todoSvc := service.NewTodoService(todoStore, service.NewTimestampIDGenerator(), probe)
	todoHandler := handler.NewTodoHandler(todoSvc, logger)

	return &Container{
		TodoStore:   todoStore,
		TodoService: todoSvc,
		TodoHandler: todoHandler,
	}
}
