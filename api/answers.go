package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/garnizeh/pybo/internal/forms"
	"github.com/garnizeh/pybo/pkg/models"
)

// CreateAnswer posts an answer to the question in the path. The question is
// looked up before anything else, so an unknown id is a 404 for any method.
// GET and invalid submissions show the question page with the answer form.
func (h *BoardHandler) CreateAnswer(w http.ResponseWriter, r *http.Request) {
	h.renderer.serve(w, r, h.createAnswer)
}

func (h *BoardHandler) createAnswer(r *http.Request) (Response, error) {
	q, err := h.lookupQuestion(r)
	if err != nil {
		return Response{}, err
	}

	if r.Method != http.MethodPost {
		return h.detail(r, q, forms.Result[forms.AnswerForm]{}, http.StatusOK)
	}

	if err := r.ParseForm(); err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	res := h.binder.BindAnswer(r.PostForm)
	if !res.Valid() {
		return h.detail(r, q, res, http.StatusOK)
	}

	a := &models.Answer{
		QuestionID: q.ID,
		Content:    res.Value.Content,
		Created:    h.now().UTC().UnixMilli(),
	}
	if _, err := h.answerRepo.CreateAnswer(r.Context(), a); err != nil {
		return Response{}, fmt.Errorf("create answer: %w", err)
	}

	return Redirect(detailURL(q.ID)), nil
}

func detailURL(id int64) string {
	return "/" + strconv.FormatInt(id, 10) + "/"
}
