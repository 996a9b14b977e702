package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/garnizeh/pybo/internal/forms"
	"github.com/garnizeh/pybo/pkg/models"
	"github.com/garnizeh/pybo/pkg/repository"
	"github.com/gorilla/mux"
)

// BoardHandler serves the HTML pages of the board.
type BoardHandler struct {
	questionRepo repository.QuestionRepo
	answerRepo   repository.AnswerRepo
	binder       *forms.Binder
	renderer     *Renderer
	now          func() time.Time
}

// NewBoardHandler creates a BoardHandler with required dependencies.
func NewBoardHandler(qr repository.QuestionRepo, ar repository.AnswerRepo, binder *forms.Binder, renderer *Renderer) *BoardHandler {
	return &BoardHandler{
		questionRepo: qr,
		answerRepo:   ar,
		binder:       binder,
		renderer:     renderer,
		now:          time.Now,
	}
}

type listPage struct {
	Questions []models.QuestionSummary
}

type detailPage struct {
	Question *models.Question
	Answers  []models.Answer
	Form     forms.Result[forms.AnswerForm]
}

type questionFormPage struct {
	Form forms.Result[forms.QuestionForm]
}

func (h *BoardHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	h.renderer.serve(w, r, h.listQuestions)
}

func (h *BoardHandler) ShowQuestionDetail(w http.ResponseWriter, r *http.Request) {
	h.renderer.serve(w, r, h.showQuestionDetail)
}

func (h *BoardHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	h.renderer.serve(w, r, h.createQuestion)
}

// NotFound renders the 404 page for paths no route matches.
func (h *BoardHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.renderer.writeError(w, r, http.StatusNotFound, msgNotFound)
}

func (h *BoardHandler) listQuestions(r *http.Request) (Response, error) {
	qs, err := h.questionRepo.ListQuestions(r.Context())
	if err != nil {
		return Response{}, fmt.Errorf("list questions: %w", err)
	}

	return Rendered(http.StatusOK, PageQuestionList, listPage{Questions: qs}), nil
}

func (h *BoardHandler) showQuestionDetail(r *http.Request) (Response, error) {
	q, err := h.lookupQuestion(r)
	if err != nil {
		return Response{}, err
	}

	return h.detail(r, q, forms.Result[forms.AnswerForm]{}, http.StatusOK)
}

func (h *BoardHandler) createQuestion(r *http.Request) (Response, error) {
	if r.Method != http.MethodPost {
		return Rendered(http.StatusOK, PageQuestionForm, questionFormPage{}), nil
	}

	if err := r.ParseForm(); err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	res := h.binder.BindQuestion(r.PostForm)
	if !res.Valid() {
		return Rendered(http.StatusOK, PageQuestionForm, questionFormPage{Form: res}), nil
	}

	q := &models.Question{
		Subject: res.Value.Subject,
		Content: res.Value.Content,
		Created: h.now().UTC().UnixMilli(),
	}
	if _, err := h.questionRepo.CreateQuestion(r.Context(), q); err != nil {
		return Response{}, fmt.Errorf("create question: %w", err)
	}

	return Redirect("/"), nil
}

// detail renders the question page with its answers and the answer form.
func (h *BoardHandler) detail(r *http.Request, q *models.Question, form forms.Result[forms.AnswerForm], status int) (Response, error) {
	answers, err := h.answerRepo.ListAnswersByQuestion(r.Context(), q.ID)
	if err != nil {
		return Response{}, fmt.Errorf("list answers: %w", err)
	}

	return Rendered(status, PageQuestionDetail, detailPage{Question: q, Answers: answers, Form: form}), nil
}

// lookupQuestion resolves the question_id path variable, returning
// ErrNotFound when it is malformed or unknown.
func (h *BoardHandler) lookupQuestion(r *http.Request) (*models.Question, error) {
	id, ok := questionID(r)
	if !ok {
		return nil, ErrNotFound
	}

	q, err := h.questionRepo.GetQuestion(r.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("get question %d: %w", id, err)
	}
	if q == nil {
		return nil, ErrNotFound
	}

	return q, nil
}

func questionID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["question_id"], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}
