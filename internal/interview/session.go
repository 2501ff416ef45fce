// Package interview drives one user's interview attempt from the first
// question through the scored rounds and the bounded follow-up exchange.
//
// The in-memory session is authoritative: persistence is best-effort telemetry
// and a storage fault never blocks the user-facing flow.
package interview

import (
	"sync"
	"time"

	"interviewsim/internal/models"
	"interviewsim/internal/scoring"
)

// State is the progression phase of a session.
type State string

const (
	StateNotStarted       State = "not_started"
	StateInProgress       State = "in_progress"
	StateAwaitingFollowUp State = "awaiting_follow_up"
	StateCompleted        State = "completed"
)

const (
	// RoundLimit caps the number of scored rounds per session.
	RoundLimit = 5
	// FollowUpLimit caps the free-text exchanges after the scored rounds.
	FollowUpLimit = 3
	// RoundBudget is the fixed time allowance per question.
	RoundBudget = 5 * time.Minute
)

// Session is one user's interview attempt. Only the Controller mutates it,
// under the session mutex: the same session is driven by concurrent requests,
// e.g. a countdown poll racing an answer submission. Starting a new interview
// replaces the session wholesale, so earlier attempts survive only in the
// persisted store.
type Session struct {
	// mu serialises every controller operation and snapshot on this session.
	mu sync.Mutex

	UserID   int64
	Category string
	// InterviewID refers to the persisted interview row. Empty when the
	// initial insert failed; persistence stays best-effort either way.
	InterviewID string
	State       State

	// CurrentQuestion is the active question, possibly rephrased.
	CurrentQuestion models.Question
	// StartedAt is when the active round's clock started.
	StartedAt time.Time
	// CurrentEvaluation holds the feedback for the just-submitted answer until
	// the user advances, so a render pass needs no side effect to show it.
	CurrentEvaluation *scoring.Evaluation

	Rounds    []models.Round
	FollowUps []models.FollowUpExchange
}

// RoundNumber is the 1-based number of the active round.
func (s *Session) RoundNumber() int {
	n := len(s.Rounds) + 1
	if s.CurrentEvaluation != nil {
		// The active round was already recorded and awaits an advance.
		n = len(s.Rounds)
	}
	if n > RoundLimit {
		n = RoundLimit
	}
	return n
}

// AggregateScore is the arithmetic mean over the rounds that exist. The round
// limit is a cap, never an assumed denominator.
func (s *Session) AggregateScore() float64 {
	if len(s.Rounds) == 0 {
		return 0
	}
	var total float64
	for _, round := range s.Rounds {
		total += float64(round.Score)
	}
	return total / float64(len(s.Rounds))
}

// FollowUpsRemaining reports how many follow-up questions may still be asked.
func (s *Session) FollowUpsRemaining() int {
	return FollowUpLimit - len(s.FollowUps)
}

// View is a point-in-time copy of a session taken under the session mutex.
// Renderers read the view so no field access races a concurrent operation.
type View struct {
	State          State
	Category       string
	RoundNumber    int
	Question       string
	Remaining      time.Duration
	Evaluation     *scoring.Evaluation
	Rounds         []models.Round
	FollowUps      []models.FollowUpExchange
	AggregateScore float64
	FollowUpsLeft  int
}
