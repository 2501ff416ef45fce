package repositories

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"interviewsim/internal/testhelpers"
)

func TestInterviewRepository(t *testing.T) {
	db := newTestDB(t)
	logger := testhelpers.NewLogger(io.Discard)
	users := NewUserRepository(db, logger)
	repo := NewInterviewRepository(db, logger)
	ctx := context.Background()

	userID, err := users.Create(ctx, "Grace Hopper", "grace@example.com", "$2a$10$fakehash")
	require.NoError(t, err)

	interviewID, err := repo.CreateInterview(ctx, userID, "Statistics")
	require.NoError(t, err)
	_, err = uuid.Parse(interviewID)
	require.NoError(t, err, "interview id should be a uuid")

	t.Run("responses keep insertion order", func(t *testing.T) {
		for i, question := range []string{"What is variance?", "What is bias?", "What is a p-value?"} {
			err := repo.SaveRoundResponse(ctx, interviewID,
				question, "an answer", "the model answer", float64(i), "Score: 0/10", 42*time.Second)
			require.NoError(t, err)
		}

		responses, err := repo.ListRoundResponses(ctx, interviewID)
		require.NoError(t, err)
		require.Len(t, responses, 3)
		require.Equal(t, "What is variance?", responses[0].Question)
		require.Equal(t, "What is bias?", responses[1].Question)
		require.Equal(t, "What is a p-value?", responses[2].Question)
		require.Equal(t, int64(42), responses[0].TimeTaken)
	})

	t.Run("score update completes the interview", func(t *testing.T) {
		err := repo.UpdateInterviewScore(ctx, interviewID, 6.4, 5)
		require.NoError(t, err)

		interview, err := repo.GetInterview(ctx, interviewID, userID)
		require.NoError(t, err)
		require.True(t, interview.Score.Valid)
		require.InDelta(t, 6.4, interview.Score.Float64, 1e-9)
		require.True(t, interview.TotalQuestions.Valid)
		require.EqualValues(t, 5, interview.TotalQuestions.Int64)
		require.True(t, interview.CompletedAt.Valid)
	})

	t.Run("list interviews newest first", func(t *testing.T) {
		secondID, err := repo.CreateInterview(ctx, userID, "Machine Learning")
		require.NoError(t, err)

		interviews, err := repo.ListInterviews(ctx, userID)
		require.NoError(t, err)
		require.Len(t, interviews, 2)
		ids := []string{interviews[0].ID, interviews[1].ID}
		require.Contains(t, ids, secondID)
		require.Contains(t, ids, interviewID)
	})

	t.Run("stats over completed interviews", func(t *testing.T) {
		stats, err := repo.Stats(ctx, userID)
		require.NoError(t, err)
		require.EqualValues(t, 1, stats.TotalInterviews)
		require.InDelta(t, 6.4, stats.AverageScore, 1e-9)
		require.InDelta(t, 6.4, stats.BestScore, 1e-9)
	})

	t.Run("stats for user without interviews", func(t *testing.T) {
		otherID, err := users.Create(ctx, "Alan Turing", "alan@example.com", "$2a$10$fakehash")
		require.NoError(t, err)

		stats, err := repo.Stats(ctx, otherID)
		require.NoError(t, err)
		require.Zero(t, stats.TotalInterviews)
		require.Zero(t, stats.AverageScore)
	})
}
