package routes

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"jsontodos/internal/adapter/http/handler"
	"jsontodos/internal/core/telemetry"
	"jsontodos/pkg/config"
	. "jsontodos/pkg/middlewares"
)

type HandlersConfig struct {
	TodoHandler *handler.TodoHandler
	StaticDir   string
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *telemetry.AppMetrics, logger *config.LokiLogger, appConfig *config.AppConfig) *gin.Engine {
	router := gin.New()

	SetupGinMiddlewareWithConfig(router, metrics, logger, appConfig)

	router.Use(gin.Recovery())
	router.Use(CORSMiddleware())

	setupTodoRoutes(router, handlers.TodoHandler)
	setupStatic(router, handlers.StaticDir)

	return router
}

func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(CORSMiddleware())

	setupTodoRoutes(router, handlers.TodoHandler)
	setupStatic(router, handlers.StaticDir)

	return router
}

func setupTodoRoutes(router *gin.Engine, todoHandler *handler.TodoHandler) {
	todos := router.Group("/api/todos")
	{
		todos.GET("", todoHandler.GetAllTodos)
		todos.POST("", todoHandler.CreateTodo)
		todos.PUT("/:id", todoHandler.ToggleTodo)
		todos.PATCH("/:id", todoHandler.UpdateTodoText)
		todos.DELETE("/:id", todoHandler.DeleteTodo)
	}
}

// setupStatic serves dir for every path the API does not claim.
func setupStatic(router *gin.Engine, dir string) {
	if dir == "" {
		return
	}

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return
	}

	files := http.FileServer(gin.Dir(dir, false))

	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Status(http.StatusNotFound)
			return
		}

		files.ServeHTTP(c.Writer, c.Request)
	})
}
