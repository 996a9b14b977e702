package mock

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/garnizeh/pybo/pkg/models"
)

var errUnknownQuestion = errors.New("mock: unknown question")

// Test helpers and mocks
type Mocks struct {
	QuestionRepo *mockQuestionRepo
	AnswerRepo   *mockAnswerRepo
}

// NewMocks returns in-memory repositories sharing one store, so answers can
// only be attached to questions that were created through QuestionRepo.
func NewMocks() *Mocks {
	s := &store{}
	return &Mocks{
		QuestionRepo: &mockQuestionRepo{store: s},
		AnswerRepo:   &mockAnswerRepo{store: s},
	}
}

type store struct {
	mu        sync.Mutex
	questions []models.Question
	answers   []models.Answer
}

func (s *store) questionExists(id int64) bool {
	for _, q := range s.questions {
		if q.ID == id {
			return true
		}
	}
	return false
}

type mockQuestionRepo struct {
	*store
	CreateErr error
	GetErr    error
	ListErr   error
	Creates   int
}

func (m *mockQuestionRepo) CreateQuestion(ctx context.Context, q *models.Question) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Creates++
	q.ID = int64(len(m.questions) + 1)
	m.questions = append(m.questions, *q)
	return q.ID, nil
}

func (m *mockQuestionRepo) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, q := range m.questions {
		if q.ID == id {
			out := q
			return &out, nil
		}
	}
	return nil, nil
}

func (m *mockQuestionRepo) ListQuestions(ctx context.Context) ([]models.QuestionSummary, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.QuestionSummary
	for _, q := range m.questions {
		s := models.QuestionSummary{Question: q}
		for _, a := range m.answers {
			if a.QuestionID == q.ID {
				s.AnswerCount++
			}
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Created != out[j].Created {
			return out[i].Created > out[j].Created
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

type mockAnswerRepo struct {
	*store
	CreateErr error
	ListErr   error
	Creates   int
}

func (m *mockAnswerRepo) CreateAnswer(ctx context.Context, a *models.Answer) (int64, error) {
	if m.CreateErr != nil {
		return 0, m.CreateErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.questionExists(a.QuestionID) {
		return 0, errUnknownQuestion
	}
	m.Creates++
	a.ID = int64(len(m.answers) + 1)
	m.answers = append(m.answers, *a)
	return a.ID, nil
}

func (m *mockAnswerRepo) ListAnswersByQuestion(ctx context.Context, questionID int64) ([]models.Answer, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Answer
	for _, a := range m.answers {
		if a.QuestionID == questionID {
			out = append(out, a)
		}
	}
	return out, nil
}
