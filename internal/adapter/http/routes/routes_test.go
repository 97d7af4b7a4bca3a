package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	"jsontodos/internal/adapter/http/handler"
	"jsontodos/internal/core/service"
	"jsontodos/internal/core/telemetry"
	"jsontodos/pkg/config"
	. "jsontodos/pkg/test"
)

func newTestRouter(t *testing.T, staticDir string) http.Handler {
	probe := telemetry.NewNoOpProbe()
	todoService := service.NewTodoService(InitTestStore(t), service.NewTimestampIDGenerator(), probe)

	return SetupRouterForTests(HandlersConfig{
		TodoHandler: handler.NewTodoHandler(todoService, config.NewNopLogger()),
		StaticDir:   staticDir,
	})
}

func serve(router http.Handler, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)

	return w
}

func TestRoutes_ServesStaticAssets(t *testing.T) {
	RegisterTestingT(t)

	dir := t.TempDir()
	Expect(os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>todos</h1>"), 0644)).To(Succeed())
	Expect(os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0644)).To(Succeed())

	srv := newTestRouter(t, dir)

	w := serve(srv, "GET", "/")
	Expect(w.Code).To(Equal(http.StatusOK))
	Expect(w.Body.String()).To(ContainSubstring("<h1>todos</h1>"))

	w = serve(srv, "GET", "/app.js")
	Expect(w.Code).To(Equal(http.StatusOK))
	Expect(w.Body.String()).To(Equal("console.log(1)"))

	Expect(serve(srv, "GET", "/missing.css").Code).To(Equal(http.StatusNotFound))
	Expect(serve(srv, "POST", "/index.html").Code).To(Equal(http.StatusNotFound))
}

func TestRoutes_APITakesPrecedence(t *testing.T) {
	RegisterTestingT(t)

	srv := newTestRouter(t, t.TempDir())

	w := serve(srv, "GET", "/api/todos")
	Expect(w.Code).To(Equal(http.StatusOK))
	Expect(w.Body.String()).To(Equal("[]"))
}

func TestRoutes_MissingStaticDir(t *testing.T) {
	RegisterTestingT(t)

	srv := newTestRouter(t, filepath.Join(t.TempDir(), "absent"))

	Expect(serve(srv, "GET", "/").Code).To(Equal(http.StatusNotFound))
	Expect(serve(srv, "GET", "/api/todos").Code).To(Equal(http.StatusOK))
}
