package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/garnizeh/pybo/api"
	dbfs "github.com/garnizeh/pybo/db"
	"github.com/garnizeh/pybo/internal/db"
	"github.com/garnizeh/pybo/internal/forms"
	"github.com/garnizeh/pybo/pkg/repository/mock"
	"github.com/garnizeh/pybo/web"
)

// setupRouter returns the full router backed by a migrated in-memory database.
func setupRouter(t *testing.T) (http.Handler, *db.DB) {
	t.Helper()
	ctx := context.Background()
	d, err := db.New(ctx, ":memory:", nil)
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	if err := db.Migrate(ctx, d, dbfs.Migrations); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	h, err := api.SetupRoutes("test", "now", d, web.Templates)
	if err != nil {
		t.Fatalf("SetupRoutes: %v", err)
	}
	return h, d
}

// setupMockRouter returns the router backed by in-memory mocks.
func setupMockRouter(t *testing.T) (http.Handler, *mock.Mocks) {
	t.Helper()
	m := mock.NewMocks()
	renderer, err := api.NewRenderer(web.Templates)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	binder := forms.NewBinder()
	board := api.NewBoardHandler(m.QuestionRepo, m.AnswerRepo, binder, renderer)
	jsonAPI, err := api.NewQuestionsAPIHandler(m.QuestionRepo, m.AnswerRepo, binder)
	if err != nil {
		t.Fatalf("NewQuestionsAPIHandler: %v", err)
	}
	return api.NewRouter("test", "now", board, jsonAPI), m
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func postForm(h http.Handler, target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func postJSON(h http.Handler, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func count(t *testing.T, d *db.DB, table string) int {
	t.Helper()
	var n int
	if err := d.QueryRow(context.Background(), `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
