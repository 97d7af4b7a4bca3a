package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	. "jsontodos/pkg/test"

	"jsontodos/internal/adapter/database/jsonfile"
	"jsontodos/internal/core/domain"
	"jsontodos/internal/core/model/response"
	"jsontodos/internal/core/service"
	"jsontodos/internal/core/telemetry"
	"jsontodos/pkg/config"

	factory "jsontodos/pkg/test/factory"
)

type TodoHandlerSuite struct {
	suite.Suite
	Store  *jsonfile.Store
	Router *gin.Engine
}

var ctx = context.Background()

func (s *TodoHandlerSuite) SetupTest() {
	s.Store = InitTestStore(s.T())
	probe := telemetry.NewNoOpProbe()

	todoService := service.NewTodoService(s.Store, service.NewTimestampIDGenerator(), probe)
	todoHandler := NewTodoHandler(todoService, config.NewNopLogger())

	// Setup router directly to avoid import cycle
	s.Router = setupTodoTestRouter(todoHandler)
}

func TestTodoHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TodoHandlerSuite))
}

func setupTodoTestRouter(todoHandler *TodoHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.Use(gin.Recovery())

	todos := router.Group("/api/todos")
	{
		todos.GET("", todoHandler.GetAllTodos)
		todos.POST("", todoHandler.CreateTodo)
		todos.PUT("/:id", todoHandler.ToggleTodo)
		todos.PATCH("/:id", todoHandler.UpdateTodoText)
		todos.DELETE("/:id", todoHandler.DeleteTodo)
	}

	return router
}

func (s *TodoHandlerSuite) seed(todos ...domain.Todo) {
	s.Require().NoError(s.Store.SaveAll(ctx, todos))
}

func (s *TodoHandlerSuite) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader

	if body != "" {
		reader = strings.NewReader(body)
	}

	rr := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, reader)

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	s.Router.ServeHTTP(rr, req)

	return rr
}

func decode[T any](rr *httptest.ResponseRecorder) T {
	var out T
	json.Unmarshal(rr.Body.Bytes(), &out)

	return out
}

func buildTodo(data map[string]any) domain.Todo {
	return factory.NewTodo[domain.Todo](data)
}

func (s *TodoHandlerSuite) TestGetAllTodosEmpty() {
	rr := s.do("GET", "/api/todos", "")

	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(rr.Header().Get("Content-Type")).To(ContainSubstring("application/json"))
	Expect(rr.Body.String()).To(Equal("[]"))
}

func (s *TodoHandlerSuite) TestGetAllTodosKeepsStoredOrder() {
	s.seed(
		buildTodo(map[string]any{"ID": int64(2), "Text": "second", "CreatedAt": "2024-01-01T00:00:00.000Z"}),
		buildTodo(map[string]any{"ID": int64(1), "Text": "first", "Completed": true, "CreatedAt": "2024-01-01T00:00:01.000Z"}),
	)

	rr := s.do("GET", "/api/todos", "")

	Expect(rr.Code).To(Equal(http.StatusOK))

	todos := decode[[]domain.Todo](rr)
	Expect(todos).To(HaveLen(2))
	Expect(todos[0].Text).To(Equal("second"))
	Expect(todos[1].Text).To(Equal("first"))
	Expect(todos[1].Completed).To(BeTrue())
}

func (s *TodoHandlerSuite) TestCreateTodo() {
	rr := s.do("POST", "/api/todos", `{"text": "  Buy milk  "}`)

	Expect(rr.Code).To(Equal(http.StatusCreated))

	todo := decode[domain.Todo](rr)
	Expect(todo.ID).To(BeNumerically(">", 0))
	Expect(todo.Text).To(Equal("Buy milk"))
	Expect(todo.Completed).To(BeFalse())
	Expect(todo.CreatedAt).To(MatchRegexp(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`))

	stored, err := s.Store.LoadAll(ctx)
	Expect(err).To(BeNil())
	Expect(stored).To(Equal([]domain.Todo{todo}))
}

func (s *TodoHandlerSuite) TestCreateTodoAppendsAtEnd() {
	s.seed(buildTodo(map[string]any{"ID": int64(1), "Text": "existing", "CreatedAt": "2024-01-01T00:00:00.000Z"}))

	rr := s.do("POST", "/api/todos", `{"text": "new"}`)
	Expect(rr.Code).To(Equal(http.StatusCreated))

	stored, _ := s.Store.LoadAll(ctx)
	Expect(stored).To(HaveLen(2))
	Expect(stored[0].Text).To(Equal("existing"))
	Expect(stored[1].Text).To(Equal("new"))
	Expect(stored[1].ID).ToNot(Equal(stored[0].ID))
}

func (s *TodoHandlerSuite) TestCreateTodoValidationError() {
	cases := []string{
		`{"text": ""}`,
		`{"text": "   "}`,
		`{}`,
		`{"text": 42}`,
		`not json`,
	}

	for _, body := range cases {
		rr := s.do("POST", "/api/todos", body)

		Expect(rr.Code).To(Equal(http.StatusBadRequest), body)
		Expect(decode[response.ErrorResponse](rr).Error).To(Equal("Todo text is required"), body)
	}

	stored, _ := s.Store.LoadAll(ctx)
	Expect(stored).To(BeEmpty())
}

func (s *TodoHandlerSuite) TestToggleTodo() {
	s.seed(buildTodo(map[string]any{"ID": int64(7), "Text": "flip me", "CreatedAt": "2024-01-01T00:00:00.000Z"}))

	rr := s.do("PUT", "/api/todos/7", "")
	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(decode[domain.Todo](rr).Completed).To(BeTrue())

	rr = s.do("PUT", "/api/todos/7", "")
	Expect(rr.Code).To(Equal(http.StatusOK))

	todo := decode[domain.Todo](rr)
	Expect(todo.Completed).To(BeFalse())
	Expect(todo.Text).To(Equal("flip me"))
	Expect(todo.CreatedAt).To(Equal("2024-01-01T00:00:00.000Z"))
}

func (s *TodoHandlerSuite) TestToggleTodoNotFound() {
	for _, path := range []string{"/api/todos/999", "/api/todos/abc"} {
		rr := s.do("PUT", path, "")

		Expect(rr.Code).To(Equal(http.StatusNotFound), path)
		Expect(decode[response.ErrorResponse](rr).Error).To(Equal("Todo not found"), path)
	}
}

func (s *TodoHandlerSuite) TestUpdateTodoText() {
	s.seed(buildTodo(map[string]any{"ID": int64(3), "Text": "old", "Completed": true, "CreatedAt": "2024-01-01T00:00:00.000Z"}))

	rr := s.do("PATCH", "/api/todos/3", `{"text": "  new text "}`)

	Expect(rr.Code).To(Equal(http.StatusOK))

	todo := decode[domain.Todo](rr)
	Expect(todo.Text).To(Equal("new text"))
	Expect(todo.Completed).To(BeTrue())
	Expect(todo.ID).To(Equal(int64(3)))
}

func (s *TodoHandlerSuite) TestUpdateTodoTextValidatesBeforeLookup() {
	rr := s.do("PATCH", "/api/todos/999", `{"text": " "}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
	Expect(decode[response.ErrorResponse](rr).Error).To(Equal("Todo text is required"))
}

func (s *TodoHandlerSuite) TestUpdateTodoTextNotFoundLeavesStoreUntouched() {
	original := buildTodo(map[string]any{"ID": int64(1), "Text": "keep", "CreatedAt": "2024-01-01T00:00:00.000Z"})
	s.seed(original)
	before := ReadDataFile(s.T(), s.Store.Path())

	rr := s.do("PATCH", "/api/todos/2", `{"text": "x"}`)

	Expect(rr.Code).To(Equal(http.StatusNotFound))
	Expect(decode[response.ErrorResponse](rr).Error).To(Equal("Todo not found"))
	Expect(ReadDataFile(s.T(), s.Store.Path())).To(Equal(before))
}

func (s *TodoHandlerSuite) TestDeleteTodo() {
	s.seed(
		buildTodo(map[string]any{"ID": int64(1), "Text": "a", "CreatedAt": "2024-01-01T00:00:00.000Z"}),
		buildTodo(map[string]any{"ID": int64(2), "Text": "b", "CreatedAt": "2024-01-01T00:00:00.000Z"}),
	)

	rr := s.do("DELETE", "/api/todos/1", "")

	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(decode[response.MessageResponse](rr).Message).To(Equal("Todo deleted successfully"))

	stored, _ := s.Store.LoadAll(ctx)
	Expect(stored).To(HaveLen(1))
	Expect(stored[0].ID).To(Equal(int64(2)))
}

func (s *TodoHandlerSuite) TestDeleteTodoNotFound() {
	rr := s.do("DELETE", "/api/todos/1", "")

	Expect(rr.Code).To(Equal(http.StatusNotFound))
	Expect(decode[response.ErrorResponse](rr).Error).To(Equal("Todo not found"))
}

func (s *TodoHandlerSuite) TestMalformedStoreAnswersInternalError() {
	WriteDataFile(s.T(), s.Store.Path(), "{broken")

	rr := s.do("GET", "/api/todos", "")

	Expect(rr.Code).To(Equal(http.StatusInternalServerError))
	Expect(decode[response.ErrorResponse](rr).Error).To(Equal("Internal Server Error"))
}

func (s *TodoHandlerSuite) TestFullLifecycle() {
	rr := s.do("POST", "/api/todos", `{"text": "Buy milk"}`)
	Expect(rr.Code).To(Equal(http.StatusCreated))
	created := decode[domain.Todo](rr)

	path := "/api/todos/" + jsonNumber(created.ID)

	Expect(s.do("PUT", path, "").Code).To(Equal(http.StatusOK))
	Expect(s.do("PATCH", path, `{"text": "Buy oat milk"}`).Code).To(Equal(http.StatusOK))

	list := decode[[]domain.Todo](s.do("GET", "/api/todos", ""))
	Expect(list).To(HaveLen(1))
	Expect(list[0].Text).To(Equal("Buy oat milk"))
	Expect(list[0].Completed).To(BeTrue())

	Expect(s.do("DELETE", path, "").Code).To(Equal(http.StatusOK))
	Expect(s.do("GET", "/api/todos", "").Body.String()).To(Equal("[]"))
}

func jsonNumber(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
