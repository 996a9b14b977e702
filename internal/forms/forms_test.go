package forms_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/garnizeh/pybo/internal/forms"
)

func TestBindQuestion(t *testing.T) {
	b := forms.NewBinder()

	cases := []struct {
		name      string
		values    url.Values
		wantValid bool
		wantErrs  []string
	}{
		{name: "Valid", values: url.Values{"subject": {"S"}, "content": {"C"}}, wantValid: true},
		{name: "EmptySubject", values: url.Values{"subject": {""}, "content": {"C"}}, wantErrs: []string{"subject"}},
		{name: "BlankSubject", values: url.Values{"subject": {"   "}, "content": {"C"}}, wantErrs: []string{"subject"}},
		{name: "MissingBoth", values: url.Values{}, wantErrs: []string{"subject", "content"}},
		{name: "SubjectTooLong", values: url.Values{"subject": {strings.Repeat("x", 201)}, "content": {"C"}}, wantErrs: []string{"subject"}},
		{name: "SubjectAtLimit", values: url.Values{"subject": {strings.Repeat("가", 200)}, "content": {"C"}}, wantValid: true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			res := b.BindQuestion(c.values)
			if res.Valid() != c.wantValid {
				t.Fatalf("Valid() = %v want %v (errors %v)", res.Valid(), c.wantValid, res.Errors)
			}
			if c.wantValid && res.Err() != nil {
				t.Fatalf("expected nil Err for valid form, got %v", res.Err())
			}
			for _, f := range c.wantErrs {
				if !res.Has(f) {
					t.Fatalf("expected error on %q, got %v", f, res.Errors)
				}
			}
			if len(res.Errors) != len(c.wantErrs) {
				t.Fatalf("expected %d errors got %v", len(c.wantErrs), res.Errors)
			}
		})
	}
}

func TestBindQuestion_TrimsAndKeepsSubmittedValues(t *testing.T) {
	b := forms.NewBinder()

	res := b.BindQuestion(url.Values{"subject": {"  hello  "}, "content": {" world\n"}})
	if !res.Valid() {
		t.Fatalf("expected valid, got %v", res.Errors)
	}
	if res.Value.Subject != "hello" || res.Value.Content != "world" {
		t.Fatalf("unexpected cleaned values: %#v", res.Value)
	}

	bad := b.BindQuestion(url.Values{"subject": {""}, "content": {"keep me"}})
	if bad.Valid() {
		t.Fatalf("expected invalid")
	}
	if bad.Value.Content != "keep me" {
		t.Fatalf("submitted content must be preserved, got %q", bad.Value.Content)
	}
	if msg := bad.Errors["subject"]; msg != "This field is required." {
		t.Fatalf("unexpected message %q", msg)
	}
	if err := bad.Err(); err == nil || !strings.Contains(err.Error(), "subject") {
		t.Fatalf("expected error mentioning subject, got %v", err)
	}
}

func TestBindAnswer(t *testing.T) {
	b := forms.NewBinder()

	if res := b.BindAnswer(url.Values{"content": {"A1"}}); !res.Valid() || res.Value.Content != "A1" {
		t.Fatalf("expected valid answer, got %#v", res)
	}

	res := b.BindAnswer(url.Values{"content": {"  "}})
	if res.Valid() || !res.Has("content") {
		t.Fatalf("expected content error, got %#v", res)
	}
}

func TestValidateDecodedForms(t *testing.T) {
	b := forms.NewBinder()

	q := b.ValidateQuestion(forms.QuestionForm{Subject: " S ", Content: "C"})
	if !q.Valid() || q.Value.Subject != "S" {
		t.Fatalf("unexpected result %#v", q)
	}
	if b.ValidateQuestion(forms.QuestionForm{}).Valid() {
		t.Fatalf("expected empty question form to be invalid")
	}
	if b.ValidateAnswer(forms.AnswerForm{}).Valid() {
		t.Fatalf("expected empty answer form to be invalid")
	}
}

func TestFieldErrors_Error(t *testing.T) {
	fe := forms.FieldErrors{"subject": "a", "content": "b"}
	if got := fe.Error(); got != "validation failed: content: b; subject: a" {
		t.Fatalf("unexpected message %q", got)
	}
	if got := (forms.FieldErrors{}).Error(); got != "validation failed" {
		t.Fatalf("unexpected empty message %q", got)
	}
}
