// Package forms binds submitted fields to typed forms and validates them.
package forms

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// QuestionForm holds the fields of the question input page.
type QuestionForm struct {
	Subject string `form:"subject" json:"subject" validate:"required,max=200"`
	Content string `form:"content" json:"content" validate:"required"`
}

// AnswerForm holds the fields of the answer input.
type AnswerForm struct {
	Content string `form:"content" json:"content" validate:"required"`
}

// FieldErrors maps a form field name to its error message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Result is the outcome of binding a form: either Valid with Value holding
// the cleaned fields, or invalid with Errors per field. Value always carries
// what was submitted so a page can redisplay it.
type Result[T any] struct {
	Value  T
	Errors FieldErrors
}

// Valid reports whether the form passed validation.
func (r Result[T]) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns Errors as an error, or nil when valid.
func (r Result[T]) Err() error {
	if r.Valid() {
		return nil
	}
	return r.Errors
}

// Has reports whether field has an error. Used by templates.
func (r Result[T]) Has(field string) bool {
	_, ok := r.Errors[field]
	return ok
}

// Binder binds and validates forms. It is safe for concurrent use.
type Binder struct {
	validate *validator.Validate
}

func NewBinder() *Binder {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Binder{validate: v}
}

// BindQuestion reads subject and content from values.
func (b *Binder) BindQuestion(values url.Values) Result[QuestionForm] {
	f := QuestionForm{
		Subject: strings.TrimSpace(values.Get("subject")),
		Content: strings.TrimSpace(values.Get("content")),
	}
	return Result[QuestionForm]{Value: f, Errors: b.check(f)}
}

// BindAnswer reads content from values.
func (b *Binder) BindAnswer(values url.Values) Result[AnswerForm] {
	f := AnswerForm{Content: strings.TrimSpace(values.Get("content"))}
	return Result[AnswerForm]{Value: f, Errors: b.check(f)}
}

// ValidateQuestion validates an already decoded form, e.g. from JSON.
func (b *Binder) ValidateQuestion(f QuestionForm) Result[QuestionForm] {
	f.Subject = strings.TrimSpace(f.Subject)
	f.Content = strings.TrimSpace(f.Content)
	return Result[QuestionForm]{Value: f, Errors: b.check(f)}
}

func (b *Binder) ValidateAnswer(f AnswerForm) Result[AnswerForm] {
	f.Content = strings.TrimSpace(f.Content)
	return Result[AnswerForm]{Value: f, Errors: b.check(f)}
}

func (b *Binder) check(form any) FieldErrors {
	err := b.validate.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"": err.Error()}
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	}
	return fmt.Sprintf("Invalid value (%s).", fe.Tag())
}
