package repository

import (
	"context"

	"github.com/garnizeh/pybo/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.
//
// Lookups return (nil, nil) when the row does not exist.

type QuestionRepo interface {
	CreateQuestion(ctx context.Context, q *models.Question) (int64, error)
	GetQuestion(ctx context.Context, id int64) (*models.Question, error)
	// ListQuestions returns every question, newest first.
	ListQuestions(ctx context.Context) ([]models.QuestionSummary, error)
}

type AnswerRepo interface {
	CreateAnswer(ctx context.Context, a *models.Answer) (int64, error)
	// ListAnswersByQuestion returns the answers of a question in creation order.
	ListAnswersByQuestion(ctx context.Context, questionID int64) ([]models.Answer, error)
}
