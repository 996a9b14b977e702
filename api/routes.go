package api

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/garnizeh/pybo/internal/db"
	"github.com/garnizeh/pybo/internal/forms"
	"github.com/garnizeh/pybo/internal/repository/sqlite"
	"github.com/gorilla/mux"
)

// SetupRoutes wires the page and JSON handlers onto a router. templates must
// contain templates/*.html.
func SetupRoutes(version, buildTime string, db *db.DB, templates fs.FS) (http.Handler, error) {
	renderer, err := NewRenderer(templates)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	// Repository
	repo := sqlite.New(db, logger)
	binder := forms.NewBinder()

	board := NewBoardHandler(repo, repo, binder, renderer)
	jsonAPI, err := NewQuestionsAPIHandler(repo, repo, binder)
	if err != nil {
		return nil, err
	}

	return NewRouter(version, buildTime, board, jsonAPI), nil
}

// NewRouter registers every route on a fresh router and wraps it in the
// middleware chain, so unmatched paths and 405s get it too.
func NewRouter(version, buildTime string, board *BoardHandler, jsonAPI *QuestionsAPIHandler) http.Handler {
	r := mux.NewRouter()

	// Form posts without the trailing slash are served in place. These are
	// registered before StrictSlash so they match exactly; a 301 would be
	// replayed as a GET and drop the submission.
	r.HandleFunc("/question/create", board.CreateQuestion).Methods("POST")
	r.HandleFunc("/{question_id:[0-9]+}/answer/create", board.CreateAnswer).Methods("POST")

	r.StrictSlash(true)

	systemHandler := &SystemHandler{}
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")

	// JSON API
	apiV1 := r.PathPrefix("/api/v1").Subrouter()
	apiV1.HandleFunc("/questions", jsonAPI.ListQuestions).Methods("GET")
	apiV1.HandleFunc("/questions", jsonAPI.CreateQuestion).Methods("POST")
	apiV1.HandleFunc("/questions/{question_id:[0-9]+}", jsonAPI.GetQuestion).Methods("GET")
	apiV1.HandleFunc("/questions/{question_id:[0-9]+}/answers", jsonAPI.CreateAnswer).Methods("POST")

	// Pages
	r.HandleFunc("/", board.ListQuestions).Methods("GET")
	r.HandleFunc("/question/create/", board.CreateQuestion).Methods("GET", "POST")
	r.HandleFunc("/{question_id:[0-9]+}/", board.ShowQuestionDetail).Methods("GET")
	r.HandleFunc("/{question_id:[0-9]+}/answer/create/", board.CreateAnswer).Methods("GET", "POST")

	r.NotFoundHandler = http.HandlerFunc(board.NotFound)

	// Middleware chain
	return LoggingMiddleware(SecurityHeadersMiddleware(RecoveryMiddleware(r)))
}
