package api

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"
)

// Page templates, each parsed together with templates/base.html.
const (
	PageQuestionList   = "question_list.html"
	PageQuestionDetail = "question_detail.html"
	PageQuestionForm   = "question_form.html"
	PageError          = "error.html"
)

const msgNotFound = "The page you requested does not exist."

var pages = []string{PageQuestionList, PageQuestionDetail, PageQuestionForm, PageError}

var (
	// ErrNotFound is returned by handlers when the requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrBadRequest marks a request body that could not be parsed at all.
	ErrBadRequest = errors.New("bad request")
)

// Renderer executes the page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page from fsys, which must contain templates/*.html.
func NewRenderer(fsys fs.FS) (*Renderer, error) {
	funcs := template.FuncMap{
		"datetime": func(t time.Time) string { return t.Format("2006-01-02 15:04") },
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, p := range pages {
		tmpl, err := template.New("base.html").Funcs(funcs).ParseFS(fsys, "templates/base.html", "templates/"+p)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", p, err)
		}
		r.pages[p] = tmpl
	}

	return r, nil
}

// Render writes page with data into a buffer first so a failing template
// never leaves a half written response.
func (rd *Renderer) Render(page string, data any) ([]byte, error) {
	tmpl, ok := rd.pages[page]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return nil, fmt.Errorf("render %s: %w", page, err)
	}

	return buf.Bytes(), nil
}

// Response is what a page handler produces: either a page to render or a
// location to redirect to.
type Response struct {
	Status   int
	Page     string
	Data     any
	Location string
}

// Rendered builds a page response.
func Rendered(status int, page string, data any) Response {
	return Response{Status: status, Page: page, Data: data}
}

// Redirect builds a redirect response.
func Redirect(location string) Response {
	return Response{Status: http.StatusFound, Location: location}
}

// IsRedirect reports whether the response is a redirect.
func (r Response) IsRedirect() bool {
	return r.Location != ""
}

type pageFunc func(r *http.Request) (Response, error)

type errorPage struct {
	Status  int
	Message string
}

// serve runs fn and turns its result into the wire response.
func (rd *Renderer) serve(w http.ResponseWriter, r *http.Request, fn pageFunc) {
	resp, err := fn(r)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			rd.writeError(w, r, http.StatusNotFound, msgNotFound)
			return
		}
		if errors.Is(err, ErrBadRequest) {
			rd.writeError(w, r, http.StatusBadRequest, "The request could not be read.")
			return
		}

		logger.Error("handler failed", slog.String("path", r.URL.Path), slog.Any("err", err))
		rd.writeError(w, r, http.StatusInternalServerError, "Something went wrong.")
		return
	}

	if resp.IsRedirect() {
		http.Redirect(w, r, resp.Location, resp.Status)
		return
	}

	body, err := rd.Render(resp.Page, resp.Data)
	if err != nil {
		logger.Error("render failed", slog.String("path", r.URL.Path), slog.Any("err", err))
		rd.writeError(w, r, http.StatusInternalServerError, "Something went wrong.")
		return
	}

	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (rd *Renderer) writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	body, err := rd.Render(PageError, errorPage{Status: status, Message: msg})
	if err != nil {
		logger.Error("render error page", slog.String("path", r.URL.Path), slog.Any("err", err))
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
