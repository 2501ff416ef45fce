package models

import (
	"database/sql"
	"time"
)

// Question is one row of the question bank: a prompt together with the curated
// reference answer it is scored against. Questions are immutable once loaded.
type Question struct {
	Category        string
	Prompt          string
	ReferenceAnswer string
}

// Round is one question/answer/score cycle within an interview session.
// It is created when an answer is submitted and never mutated afterwards.
type Round struct {
	Question        string
	UserAnswer      string
	ReferenceAnswer string
	Score           int
	Matched         []string
	Missing         []string
	TimeTaken       time.Duration
}

// FollowUpExchange is one free-text question asked after the scored rounds,
// together with the generated answer.
type FollowUpExchange struct {
	Question string
	Answer   string
}

// Interview is the persisted record of one interview attempt.
type Interview struct {
	ID             string          `db:"id"`
	UserID         int64           `db:"user_id"`
	Category       string          `db:"category"`
	Score          sql.NullFloat64 `db:"score"`
	TotalQuestions sql.NullInt64   `db:"total_questions"`
	CompletedAt    sql.NullTime    `db:"completed_at"`
	CreatedAt      time.Time       `db:"created_at"`
}

// RoundResponse is the persisted form of a Round, ordered by insertion time.
type RoundResponse struct {
	ID          int64     `db:"id"`
	InterviewID string    `db:"interview_id"`
	Question    string    `db:"question"`
	UserAnswer  string    `db:"user_answer"`
	ModelAnswer string    `db:"model_answer"`
	Score       float64   `db:"score"`
	Feedback    string    `db:"feedback"`
	TimeTaken   int64     `db:"time_taken"`
	CreatedAt   time.Time `db:"created_at"`
}
