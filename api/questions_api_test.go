package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestQuestionsAPI_CreateListGet(t *testing.T) {
	h, _ := setupRouter(t)

	// empty list is an array, not null
	w := get(h, "/api/v1/questions")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if body := w.Body.String(); body != "[]\n" {
		t.Fatalf("expected empty array got %q", body)
	}

	for _, s := range []string{"first", "second"} {
		res := postJSON(h, "/api/v1/questions", `{"subject":"`+s+`","content":"c"}`)
		if res.Code != http.StatusCreated {
			t.Fatalf("create %s: expected 201 got %d body %s", s, res.Code, res.Body.String())
		}
	}

	var list []map[string]any
	if err := json.NewDecoder(get(h, "/api/v1/questions").Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 2 || list[0]["subject"] != "second" || list[1]["subject"] != "first" {
		t.Fatalf("unexpected list: %v", list)
	}

	res := postJSON(h, "/api/v1/questions/1/answers", `{"content":"A1"}`)
	if res.Code != http.StatusCreated {
		t.Fatalf("create answer: expected 201 got %d body %s", res.Code, res.Body.String())
	}

	var detail struct {
		Question map[string]any   `json:"question"`
		Answers  []map[string]any `json:"answers"`
	}
	w = get(h, "/api/v1/questions/1")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if err := json.NewDecoder(w.Body).Decode(&detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if detail.Question["subject"] != "first" || len(detail.Answers) != 1 || detail.Answers[0]["content"] != "A1" {
		t.Fatalf("unexpected detail: %+v", detail)
	}
}

func TestQuestionsAPI_Errors(t *testing.T) {
	h, d := setupRouter(t)
	postJSON(h, "/api/v1/questions", `{"subject":"S","content":"C"}`)

	cases := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
	}{
		{name: "UnknownQuestion", method: http.MethodGet, target: "/api/v1/questions/99", wantStatus: http.StatusNotFound},
		{name: "AnswerUnknownQuestion", method: http.MethodPost, target: "/api/v1/questions/99/answers", body: `{"content":"A"}`, wantStatus: http.StatusNotFound},
		{name: "AnswerUnknownQuestionBadBody", method: http.MethodPost, target: "/api/v1/questions/99/answers", body: `nope`, wantStatus: http.StatusNotFound},
		{name: "MalformedJSON", method: http.MethodPost, target: "/api/v1/questions", body: `{"subject":`, wantStatus: http.StatusBadRequest},
		{name: "MissingField", method: http.MethodPost, target: "/api/v1/questions", body: `{"subject":"S"}`, wantStatus: http.StatusBadRequest},
		{name: "WrongType", method: http.MethodPost, target: "/api/v1/questions", body: `{"subject":1,"content":"C"}`, wantStatus: http.StatusBadRequest},
		{name: "ExtraField", method: http.MethodPost, target: "/api/v1/questions", body: `{"subject":"S","content":"C","x":1}`, wantStatus: http.StatusBadRequest},
		{name: "BlankSubject", method: http.MethodPost, target: "/api/v1/questions", body: `{"subject":"  ","content":"C"}`, wantStatus: http.StatusBadRequest},
		{name: "BlankAnswer", method: http.MethodPost, target: "/api/v1/questions/1/answers", body: `{"content":""}`, wantStatus: http.StatusBadRequest},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var code int
			var body []byte
			if c.method == http.MethodGet {
				w := get(h, c.target)
				code, body = w.Code, w.Body.Bytes()
			} else {
				w := postJSON(h, c.target, c.body)
				code, body = w.Code, w.Body.Bytes()
			}
			if code != c.wantStatus {
				t.Fatalf("want %d got %d body %s", c.wantStatus, code, body)
			}
			var e map[string]any
			if err := json.Unmarshal(body, &e); err != nil || e["error"] == nil {
				t.Fatalf("expected json error body, got %s", body)
			}
		})
	}

	if n := count(t, d, "questions"); n != 1 {
		t.Fatalf("expected only the seeded question, got %d", n)
	}
	if n := count(t, d, "answers"); n != 0 {
		t.Fatalf("expected no answers, got %d", n)
	}
}

func TestQuestionsAPI_ValidationFieldsReported(t *testing.T) {
	h, _ := setupRouter(t)

	w := postJSON(h, "/api/v1/questions", `{"subject":"","content":""}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	var e struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(w.Body).Decode(&e); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if e.Fields["subject"] == "" || e.Fields["content"] == "" {
		t.Fatalf("expected subject and content errors, got %+v", e)
	}
}

func TestQuestionsAPI_StorageErrors(t *testing.T) {
	h, m := setupMockRouter(t)
	boom := errors.New("boom")

	m.QuestionRepo.ListErr = boom
	if w := get(h, "/api/v1/questions"); w.Code != http.StatusInternalServerError {
		t.Fatalf("list: expected 500 got %d", w.Code)
	}

	m.QuestionRepo.CreateErr = boom
	if w := postJSON(h, "/api/v1/questions", `{"subject":"S","content":"C"}`); w.Code != http.StatusInternalServerError {
		t.Fatalf("create: expected 500 got %d", w.Code)
	}

	m.QuestionRepo.GetErr = boom
	if w := get(h, "/api/v1/questions/1"); w.Code != http.StatusInternalServerError {
		t.Fatalf("get: expected 500 got %d", w.Code)
	}
}
