package repositories

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"interviewsim/internal/errors"
	"interviewsim/internal/models"
	"interviewsim/internal/sqlite"
)

var ErrInterviewNotFound = errors.NewSentinel("interview not found")

type InterviewRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func NewInterviewRepository(db *sqlite.Database, logger *slog.Logger) *InterviewRepository {
	return &InterviewRepository{
		db:     db,
		logger: logger.With("source", "InterviewRepository"),
	}
}

// CreateInterview records the start of an interview attempt and returns its id.
func (r *InterviewRepository) CreateInterview(ctx context.Context, userID int64, category string) (string, error) {
	id := uuid.NewString()
	stmt := `INSERT INTO interviews (id, user_id, category) VALUES (?, ?, ?)`
	if _, err := r.db.ReadWrite.ExecContext(ctx, stmt, id, userID, category); err != nil {
		return "", errors.Wrap(err, "insert interview", slog.Int64("user_id", userID))
	}
	return id, nil
}

// SaveRoundResponse appends one scored round to the interview. Rounds are
// ordered by insertion, matching the in-memory session order.
func (r *InterviewRepository) SaveRoundResponse(
	ctx context.Context,
	interviewID string,
	question string,
	userAnswer string,
	modelAnswer string,
	score float64,
	feedback string,
	timeTaken time.Duration,
) error {
	stmt := `INSERT INTO question_responses (interview_id, question, user_answer, model_answer, score, feedback, time_taken)
	VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ReadWrite.ExecContext(ctx, stmt,
		interviewID, question, userAnswer, modelAnswer, score, feedback, int64(timeTaken.Seconds()))
	if err != nil {
		return errors.Wrap(err, "insert question response", slog.String("interview_id", interviewID))
	}
	return nil
}

// UpdateInterviewScore finalises the interview with its aggregate score and round count.
func (r *InterviewRepository) UpdateInterviewScore(
	ctx context.Context,
	interviewID string,
	avgScore float64,
	roundCount int,
) error {
	stmt := `UPDATE interviews SET score = ?, total_questions = ?, completed_at = CURRENT_TIMESTAMP WHERE id = ?`
	if _, err := r.db.ReadWrite.ExecContext(ctx, stmt, avgScore, roundCount, interviewID); err != nil {
		return errors.Wrap(err, "update interview score", slog.String("interview_id", interviewID))
	}
	return nil
}

// ListInterviews returns the user's interviews, newest first.
func (r *InterviewRepository) ListInterviews(ctx context.Context, userID int64) ([]models.Interview, error) {
	var interviews []models.Interview
	stmt := `SELECT id, user_id, category, score, total_questions, completed_at, created_at
	FROM interviews
	WHERE user_id = ?
	ORDER BY created_at DESC, id DESC`
	if err := r.db.ReadOnly.SelectContext(ctx, &interviews, stmt, userID); err != nil {
		return nil, errors.Wrap(err, "list interviews", slog.Int64("user_id", userID))
	}
	return interviews, nil
}

// GetInterview fetches one interview, scoped to the owning user.
func (r *InterviewRepository) GetInterview(ctx context.Context, interviewID string, userID int64) (*models.Interview, error) {
	var interview models.Interview
	stmt := `SELECT id, user_id, category, score, total_questions, completed_at, created_at
	FROM interviews
	WHERE id = ? AND user_id = ?`
	if err := r.db.ReadOnly.GetContext(ctx, &interview, stmt, interviewID, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInterviewNotFound
		}
		return nil, errors.Wrap(err, "read interview", slog.String("interview_id", interviewID))
	}
	return &interview, nil
}

// ListRoundResponses returns the responses of an interview in insertion order.
func (r *InterviewRepository) ListRoundResponses(ctx context.Context, interviewID string) ([]models.RoundResponse, error) {
	var responses []models.RoundResponse
	stmt := `SELECT id, interview_id, question, user_answer, model_answer, score, feedback, time_taken, created_at
	FROM question_responses
	WHERE interview_id = ?
	ORDER BY created_at ASC, id ASC`
	if err := r.db.ReadOnly.SelectContext(ctx, &responses, stmt, interviewID); err != nil {
		return nil, errors.Wrap(err, "list question responses", slog.String("interview_id", interviewID))
	}
	return responses, nil
}

// Stats aggregates the user's completed interviews for the dashboard.
func (r *InterviewRepository) Stats(ctx context.Context, userID int64) (models.UserStats, error) {
	var stats models.UserStats
	stmt := `SELECT COUNT(*)                  AS total_interviews,
	       COALESCE(AVG(score), 0) AS average_score,
	       COALESCE(MAX(score), 0) AS best_score,
	       COALESCE(MIN(score), 0) AS worst_score
	FROM interviews
	WHERE user_id = ? AND score IS NOT NULL`
	if err := r.db.ReadOnly.GetContext(ctx, &stats, stmt, userID); err != nil {
		return models.UserStats{}, errors.Wrap(err, "read user stats", slog.Int64("user_id", userID))
	}
	return stats, nil
}
