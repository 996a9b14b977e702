package models

import "time"

// Domain models matching the database schema in db/migrations/0001_init.sql.
// Timestamps are Unix milliseconds in UTC.

type Question struct {
	ID      int64  `json:"id" db:"id"`
	Subject string `json:"subject" db:"subject"`
	Content string `json:"content" db:"content"`
	Created int64  `json:"create_date" db:"created"`
}

// CreatedAt returns Created as a time.Time.
func (q Question) CreatedAt() time.Time {
	return time.UnixMilli(q.Created).UTC()
}

type Answer struct {
	ID         int64  `json:"id" db:"id"`
	QuestionID int64  `json:"question_id" db:"question_id"`
	Content    string `json:"content" db:"content"`
	Created    int64  `json:"create_date" db:"created"`
}

func (a Answer) CreatedAt() time.Time {
	return time.UnixMilli(a.Created).UTC()
}

// QuestionSummary is a Question row on the listing page.
type QuestionSummary struct {
	Question
	AnswerCount int64 `json:"answer_count" db:"answer_count"`
}
