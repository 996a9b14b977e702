package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/garnizeh/pybo/internal/forms"
	"github.com/garnizeh/pybo/pkg/models"
	"github.com/garnizeh/pybo/pkg/repository"
	"github.com/qri-io/jsonschema"
)

const maxBodyBytes = 1 << 20

const questionSchemaJSON = `{
	"type": "object",
	"required": ["subject", "content"],
	"properties": {
		"subject": {"type": "string", "maxLength": 200},
		"content": {"type": "string"}
	},
	"additionalProperties": false
}`

const answerSchemaJSON = `{
	"type": "object",
	"required": ["content"],
	"properties": {
		"content": {"type": "string"}
	},
	"additionalProperties": false
}`

// QuestionsAPIHandler exposes the board as JSON under /api/v1.
type QuestionsAPIHandler struct {
	questionRepo   repository.QuestionRepo
	answerRepo     repository.AnswerRepo
	binder         *forms.Binder
	questionSchema *jsonschema.Schema
	answerSchema   *jsonschema.Schema
	now            func() time.Time
}

func NewQuestionsAPIHandler(qr repository.QuestionRepo, ar repository.AnswerRepo, binder *forms.Binder) (*QuestionsAPIHandler, error) {
	qs := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(questionSchemaJSON), qs); err != nil {
		return nil, fmt.Errorf("compile question schema: %w", err)
	}
	as := &jsonschema.Schema{}
	if err := json.Unmarshal([]byte(answerSchemaJSON), as); err != nil {
		return nil, fmt.Errorf("compile answer schema: %w", err)
	}

	return &QuestionsAPIHandler{
		questionRepo:   qr,
		answerRepo:     ar,
		binder:         binder,
		questionSchema: qs,
		answerSchema:   as,
		now:            time.Now,
	}, nil
}

type questionDetailResponse struct {
	Question *models.Question `json:"question"`
	Answers  []models.Answer  `json:"answers"`
}

type createdResponse struct {
	ID int64 `json:"id"`
}

func (h *QuestionsAPIHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	qs, err := h.questionRepo.ListQuestions(r.Context())
	if err != nil {
		logger.Error("list questions", slog.Any("err", err))
		writeJSONError(w, http.StatusInternalServerError, "failed to list questions", nil)
		return
	}

	if qs == nil {
		qs = []models.QuestionSummary{}
	}

	writeJSON(w, qs, http.StatusOK)
}

func (h *QuestionsAPIHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	q, ok := h.lookup(w, r)
	if !ok {
		return
	}

	answers, err := h.answerRepo.ListAnswersByQuestion(r.Context(), q.ID)
	if err != nil {
		logger.Error("list answers", slog.Int64("question_id", q.ID), slog.Any("err", err))
		writeJSONError(w, http.StatusInternalServerError, "failed to list answers", nil)
		return
	}
	if answers == nil {
		answers = []models.Answer{}
	}

	writeJSON(w, questionDetailResponse{Question: q, Answers: answers}, http.StatusOK)
}

func (h *QuestionsAPIHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var f forms.QuestionForm
	if !h.decode(w, r, h.questionSchema, &f) {
		return
	}

	res := h.binder.ValidateQuestion(f)
	if !res.Valid() {
		writeJSONError(w, http.StatusBadRequest, "validation failed", res.Errors)
		return
	}

	q := &models.Question{Subject: res.Value.Subject, Content: res.Value.Content, Created: h.now().UTC().UnixMilli()}
	id, err := h.questionRepo.CreateQuestion(r.Context(), q)
	if err != nil {
		logger.Error("create question", slog.Any("err", err))
		writeJSONError(w, http.StatusInternalServerError, "failed to store question", nil)
		return
	}

	writeJSON(w, createdResponse{ID: id}, http.StatusCreated)
}

func (h *QuestionsAPIHandler) CreateAnswer(w http.ResponseWriter, r *http.Request) {
	q, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var f forms.AnswerForm
	if !h.decode(w, r, h.answerSchema, &f) {
		return
	}

	res := h.binder.ValidateAnswer(f)
	if !res.Valid() {
		writeJSONError(w, http.StatusBadRequest, "validation failed", res.Errors)
		return
	}

	a := &models.Answer{QuestionID: q.ID, Content: res.Value.Content, Created: h.now().UTC().UnixMilli()}
	id, err := h.answerRepo.CreateAnswer(r.Context(), a)
	if err != nil {
		logger.Error("create answer", slog.Int64("question_id", q.ID), slog.Any("err", err))
		writeJSONError(w, http.StatusInternalServerError, "failed to store answer", nil)
		return
	}

	writeJSON(w, createdResponse{ID: id}, http.StatusCreated)
}

// lookup writes the error response itself and reports false when the
// question cannot be served.
func (h *QuestionsAPIHandler) lookup(w http.ResponseWriter, r *http.Request) (*models.Question, bool) {
	id, ok := questionID(r)
	if !ok {
		writeJSONError(w, http.StatusNotFound, "question not found", nil)
		return nil, false
	}

	q, err := h.questionRepo.GetQuestion(r.Context(), id)
	if err != nil {
		logger.Error("get question", slog.Int64("id", id), slog.Any("err", err))
		writeJSONError(w, http.StatusInternalServerError, "failed to load question", nil)
		return nil, false
	}
	if q == nil {
		writeJSONError(w, http.StatusNotFound, "question not found", nil)
		return nil, false
	}

	return q, true
}

// decode checks the body against schema and unmarshals it into dst.
func (h *QuestionsAPIHandler) decode(w http.ResponseWriter, r *http.Request, schema *jsonschema.Schema, dst any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request", nil)
		return false
	}
	if !json.Valid(body) {
		writeJSONError(w, http.StatusBadRequest, "invalid json", nil)
		return false
	}

	kerrs, err := validateBody(r.Context(), schema, body)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid json", nil)
		return false
	}
	if len(kerrs) > 0 {
		writeJSONError(w, http.StatusBadRequest, "request does not match schema", kerrs)
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request", nil)
		return false
	}

	return true
}

func validateBody(ctx context.Context, schema *jsonschema.Schema, body []byte) (map[string]string, error) {
	verrs, err := schema.ValidateBytes(ctx, body)
	if err != nil {
		return nil, err
	}
	if len(verrs) == 0 {
		return nil, nil
	}

	out := make(map[string]string, len(verrs))
	for _, v := range verrs {
		key := v.PropertyPath
		if key == "" || key == "/" {
			key = "body"
		}
		if _, seen := out[key]; !seen {
			out[key] = v.Message
		}
	}

	return out, nil
}
