package sqlite

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/garnizeh/pybo/pkg/models"
)

// CreateAnswer inserts a and fills in its ID. The referenced question must
// exist; the foreign key, enforced on every connection, rejects the
// insert otherwise.
func (r *SQLiteRepo) CreateAnswer(ctx context.Context, a *models.Answer) (int64, error) {
	if a == nil {
		return 0, fmt.Errorf("answer is nil")
	}
	if a.QuestionID <= 0 {
		return 0, fmt.Errorf("answer has no question")
	}
	if a.Created <= 0 {
		a.Created = now()
	}

	res, err := r.conn.Exec(ctx, `INSERT INTO answers (question_id, content, created) VALUES (?, ?, ?)`, a.QuestionID, a.Content, a.Created)
	if err != nil {
		return 0, fmt.Errorf("insert answer: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	a.ID = id
	r.logger.Debug("answer created", slog.Int64("id", id), slog.Int64("question_id", a.QuestionID))

	return id, nil
}

func (r *SQLiteRepo) ListAnswersByQuestion(ctx context.Context, questionID int64) ([]models.Answer, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, question_id, content, created FROM answers WHERE question_id = ? ORDER BY created ASC, id ASC`, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Answer
	for rows.Next() {
		var a models.Answer
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.Content, &a.Created); err != nil {
			return nil, err
		}

		out = append(out, a)
	}

	return out, rows.Err()
}
