package interview

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"interviewsim/internal/errors"
	"interviewsim/internal/models"
	"interviewsim/internal/scoring"
)

var (
	// ErrValidation means an explicit submission was empty. Only the timeout
	// path may record an empty answer.
	ErrValidation = errors.NewSentinel("submission must not be empty")
	// ErrFollowUpLimit means the follow-up cap was reached; the external call
	// is never attempted for a rejected question.
	ErrFollowUpLimit = errors.NewSentinel("follow-up question limit reached")
	// ErrInvalidState means the operation does not apply to the session's
	// current state.
	ErrInvalidState = errors.NewSentinel("operation not valid in current session state")
	// ErrRoundExpired means the round budget ran out before the submission
	// arrived; the round was finalised as unanswered.
	ErrRoundExpired = errors.NewSentinel("round time budget expired")
)

const (
	rephrasePromptFormat = "Convert this technical question into a natural, conversational interview style " +
		"while maintaining its professional tone:\nOriginal: %s\n" +
		"Make it sound like a senior data scientist asking a candidate during an interview."
	followUpPromptFormat = "As an expert data scientist, provide a detailed answer to this interview question: %s"

	// followUpErrorAnswer is rendered in place of an answer when the external
	// call fails. The exchange slot is still consumed.
	followUpErrorAnswer = "Error getting response. Please try again."

	rephraseTemperature = 0.7
	rephraseMaxTokens   = 150
	followUpTemperature = 0.7
	followUpMaxTokens   = 500
)

// Sampler serves random questions, optionally filtered by category.
type Sampler interface {
	Sample(category string) (models.Question, error)
}

// Completer is the external text-generation capability. Calls are single
// attempts with no SLA; every caller handles failure at the call site.
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float32, maxTokens int) (string, error)
}

// Store persists interview progress. All operations are best-effort from the
// controller's point of view.
type Store interface {
	CreateInterview(ctx context.Context, userID int64, category string) (string, error)
	SaveRoundResponse(ctx context.Context, interviewID, question, userAnswer, modelAnswer string,
		score float64, feedback string, timeTaken time.Duration) error
	UpdateInterviewScore(ctx context.Context, interviewID string, avgScore float64, roundCount int) error
}

// Controller runs the interview state machine:
// NotStarted → InProgress(1..5) → AwaitingFollowUp → Completed.
type Controller struct {
	bank   Sampler
	ai     Completer
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

func NewController(bank Sampler, ai Completer, store Store, logger *slog.Logger) *Controller {
	return &Controller{
		bank:   bank,
		ai:     ai,
		store:  store,
		logger: logger.With("source", "interview.Controller"),
		now:    time.Now,
	}
}

// Start begins a fresh session for the user. Sampling failures abort the
// start; the persisted interview row is created best-effort.
func (c *Controller) Start(ctx context.Context, userID int64, category string) (*Session, error) {
	question, err := c.nextQuestion(ctx, category)
	if err != nil {
		return nil, err
	}

	session := &Session{
		UserID:          userID,
		Category:        category,
		State:           StateInProgress,
		CurrentQuestion: question,
		StartedAt:       c.now(),
	}

	interviewID, err := c.store.CreateInterview(ctx, userID, category)
	if err != nil {
		c.logger.Warn("could not create interview record, continuing without persistence",
			errors.SlogError(err), slog.Int64("user_id", userID))
	} else {
		session.InterviewID = interviewID
	}

	return session, nil
}

// Remaining reports the time left in the active round. It never mutates state.
func (c *Controller) Remaining(s *Session) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.remaining(s)
}

func (c *Controller) remaining(s *Session) time.Duration {
	if s.State != StateInProgress || s.CurrentEvaluation != nil {
		return 0
	}
	return RoundBudget - c.now().Sub(s.StartedAt)
}

// Tick checks the round clock. When the budget is spent it finalises the
// active round exactly as an empty submission would have and advances,
// reporting true. Evaluated on every render pass while in progress; the
// countdown is recomputed from the wall clock, there is no background timer.
func (c *Controller) Tick(ctx context.Context, s *Session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	// A recorded round's clock stopped at submission; only an explicit
	// Advance moves past it.
	if s.State != StateInProgress || s.CurrentEvaluation != nil || c.remaining(s) > 0 {
		return false
	}
	c.expireRound(ctx, s)
	return true
}

// expireRound finalises the active round as an empty submission and advances.
// Callers hold the session mutex and have checked the budget is spent.
func (c *Controller) expireRound(ctx context.Context, s *Session) {
	if err := c.recordRound(ctx, s, ""); err != nil {
		// An empty answer against a reference with vocabulary cannot fail
		// vectorisation; an error here means the question itself is
		// degenerate. Skip the round rather than wedge the session.
		c.logger.Error("could not score timed-out round", errors.SlogError(err))
	}
	c.advance(ctx, s)
}

// SubmitAnswer scores the explicit answer and records the round. The session
// then waits for an Advance; the evaluation stays available for rendering.
// Validation failures never consume a round. A submission arriving after the
// budget ran out finalises the round as unanswered and reports
// ErrRoundExpired.
func (c *Controller) SubmitAnswer(ctx context.Context, s *Session, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.State != StateInProgress {
		return ErrInvalidState
	}
	if s.CurrentEvaluation != nil {
		return errors.Wrap(ErrInvalidState, "active round already submitted")
	}
	if c.remaining(s) <= 0 {
		// The budget ran out first; the round is finalised as unanswered under
		// the same lock so the submission cannot land on it.
		c.expireRound(ctx, s)
		return ErrRoundExpired
	}
	if strings.TrimSpace(text) == "" {
		return ErrValidation
	}
	return c.recordRound(ctx, s, text)
}

// Advance moves past a recorded round: to the next question while rounds
// remain, otherwise finalising the aggregate and opening the follow-up phase.
func (c *Controller) Advance(ctx context.Context, s *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.State != StateInProgress || s.CurrentEvaluation == nil {
		return ErrInvalidState
	}
	c.advance(ctx, s)
	return nil
}

// AskFollowUp runs one bounded free-text exchange with the text-generation
// capability. A failure surfaces as an inline error string in place of the
// answer; the exchange is appended either way.
func (c *Controller) AskFollowUp(ctx context.Context, s *Session, text string) (models.FollowUpExchange, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.State != StateAwaitingFollowUp {
		return models.FollowUpExchange{}, ErrInvalidState
	}
	if len(s.FollowUps) >= FollowUpLimit {
		return models.FollowUpExchange{}, ErrFollowUpLimit
	}
	if strings.TrimSpace(text) == "" {
		return models.FollowUpExchange{}, ErrValidation
	}

	answer, err := c.ai.Complete(ctx, fmt.Sprintf(followUpPromptFormat, text), followUpTemperature, followUpMaxTokens)
	if err != nil {
		c.logger.Warn("follow-up completion failed", errors.SlogError(err))
		answer = followUpErrorAnswer
	}

	exchange := models.FollowUpExchange{Question: text, Answer: answer}
	s.FollowUps = append(s.FollowUps, exchange)
	return exchange, nil
}

// FinishAndView closes the session once at least one follow-up was asked.
func (c *Controller) FinishAndView(s *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.State != StateAwaitingFollowUp || len(s.FollowUps) == 0 {
		return ErrInvalidState
	}
	s.State = StateCompleted
	return nil
}

// View snapshots the session for rendering. The copy decouples template
// execution from concurrent operations on the same session.
func (c *Controller) View(s *Session) View {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := View{
		State:          s.State,
		Category:       s.Category,
		RoundNumber:    s.RoundNumber(),
		Question:       s.CurrentQuestion.Prompt,
		Rounds:         append([]models.Round(nil), s.Rounds...),
		FollowUps:      append([]models.FollowUpExchange(nil), s.FollowUps...),
		AggregateScore: s.AggregateScore(),
		FollowUpsLeft:  s.FollowUpsRemaining(),
	}
	if s.CurrentEvaluation != nil {
		evaluation := *s.CurrentEvaluation
		view.Evaluation = &evaluation
	}
	if remaining := c.remaining(s); remaining > 0 {
		view.Remaining = remaining
	}
	return view
}

// recordRound scores the answer, appends the round, and persists it
// best-effort. The caller has already validated the submission.
func (c *Controller) recordRound(ctx context.Context, s *Session, text string) error {
	evaluation, err := scoring.Score(text, s.CurrentQuestion.ReferenceAnswer)
	if err != nil {
		return err
	}

	timeTaken := c.now().Sub(s.StartedAt)
	if timeTaken > RoundBudget {
		timeTaken = RoundBudget
	}

	s.Rounds = append(s.Rounds, models.Round{
		Question:        s.CurrentQuestion.Prompt,
		UserAnswer:      text,
		ReferenceAnswer: s.CurrentQuestion.ReferenceAnswer,
		Score:           evaluation.Score,
		Matched:         evaluation.Matched,
		Missing:         evaluation.Missing,
		TimeTaken:       timeTaken,
	})
	s.CurrentEvaluation = &evaluation

	if s.InterviewID != "" {
		err = c.store.SaveRoundResponse(ctx, s.InterviewID,
			s.CurrentQuestion.Prompt, text, s.CurrentQuestion.ReferenceAnswer,
			float64(evaluation.Score), evaluation.Render(), timeTaken)
		if err != nil {
			c.logger.Warn("could not persist round response, session continues",
				errors.SlogError(err), slog.String("interview_id", s.InterviewID))
		}
	}
	return nil
}

// advance transitions past the recorded round. With rounds left it issues the
// next question and resets the clock; after the last round it stores the
// aggregate and opens the follow-up phase.
func (c *Controller) advance(ctx context.Context, s *Session) {
	s.CurrentEvaluation = nil

	if len(s.Rounds) < RoundLimit {
		question, err := c.nextQuestion(ctx, s.Category)
		if err != nil {
			// The bank already served this category once at Start; a failure
			// now is transient. Keep the previous question rather than abort.
			c.logger.Error("could not sample next question, repeating current",
				errors.SlogError(err), slog.String("category", s.Category))
		} else {
			s.CurrentQuestion = question
		}
		s.StartedAt = c.now()
		return
	}

	aggregate := s.AggregateScore()
	if s.InterviewID != "" {
		err := c.store.UpdateInterviewScore(ctx, s.InterviewID, aggregate, len(s.Rounds))
		if err != nil {
			c.logger.Warn("could not persist aggregate score, session continues",
				errors.SlogError(err), slog.String("interview_id", s.InterviewID))
		}
	}
	s.State = StateAwaitingFollowUp
}

// nextQuestion samples a question and rephrases it best-effort: any failure of
// the external call leaves the original wording untouched. Rephrasing is
// advisory, never blocking.
func (c *Controller) nextQuestion(ctx context.Context, category string) (models.Question, error) {
	question, err := c.bank.Sample(category)
	if err != nil {
		return models.Question{}, err
	}

	rephrased, err := c.ai.Complete(ctx,
		fmt.Sprintf(rephrasePromptFormat, question.Prompt), rephraseTemperature, rephraseMaxTokens)
	if err != nil {
		c.logger.Debug("rephrase failed, using original wording", errors.SlogError(err))
		return question, nil
	}
	if rephrased = strings.TrimSpace(rephrased); rephrased != "" {
		question.Prompt = rephrased
	}
	return question, nil
}
