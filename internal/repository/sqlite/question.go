package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/garnizeh/pybo/pkg/models"
)

// CreateQuestion inserts q and fills in its ID. A zero Created is set to now.
func (r *SQLiteRepo) CreateQuestion(ctx context.Context, q *models.Question) (int64, error) {
	if q == nil {
		return 0, fmt.Errorf("question is nil")
	}
	if q.Created <= 0 {
		q.Created = now()
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO questions (subject, content, created) VALUES (?, ?, ?)`, q.Subject, q.Content, q.Created)
	if err != nil {
		return 0, fmt.Errorf("insert question: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	q.ID = id
	r.logger.Debug("question created", slog.Int64("id", id))

	return id, nil
}

func (r *SQLiteRepo) GetQuestion(ctx context.Context, id int64) (*models.Question, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, subject, content, created FROM questions WHERE id = ?`, id)
	var q models.Question
	if err := row.Scan(&q.ID, &q.Subject, &q.Content, &q.Created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return &q, nil
}

func (r *SQLiteRepo) ListQuestions(ctx context.Context) ([]models.QuestionSummary, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT q.id, q.subject, q.content, q.created, COUNT(a.id)
		FROM questions q LEFT JOIN answers a ON a.question_id = q.id
		GROUP BY q.id
		ORDER BY q.created DESC, q.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.QuestionSummary
	for rows.Next() {
		var s models.QuestionSummary
		if err := rows.Scan(&s.ID, &s.Subject, &s.Content, &s.Created, &s.AnswerCount); err != nil {
			return nil, err
		}

		out = append(out, s)
	}

	return out, rows.Err()
}
