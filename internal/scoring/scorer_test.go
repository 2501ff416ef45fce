package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreIdenticalAnswers(t *testing.T) {
	answer := "Variance measures the spread of data points around the mean"
	eval, err := Score(answer, answer)
	require.NoError(t, err)

	assert.Equal(t, 10, eval.Score)
	assert.Empty(t, eval.Missing)
	assert.NotEmpty(t, eval.Matched)
	assert.Equal(t, answer, eval.ReferenceAnswer)
}

func TestScoreEmptyAnswer(t *testing.T) {
	eval, err := Score("", "Variance measures the spread of data points")
	require.NoError(t, err)

	assert.Equal(t, 0, eval.Score)
	assert.Empty(t, eval.Matched)
	assert.Equal(t, []string{"data", "measures", "of", "points", "spread", "the", "variance"}, eval.Missing)
}

func TestScorePartialOverlap(t *testing.T) {
	eval, err := Score("variance measures spread", "Variance measures the spread of data points")
	require.NoError(t, err)

	assert.Greater(t, eval.Score, 0)
	assert.Equal(t, []string{"measures", "spread", "variance"}, eval.Matched)
	assert.Contains(t, eval.Missing, "points")
}

func TestScoreSimilarityIsSymmetric(t *testing.T) {
	a := "gradient descent minimises the loss function"
	b := "the loss function is minimised iteratively"

	forward, err := Score(a, b)
	require.NoError(t, err)
	backward, err := Score(b, a)
	require.NoError(t, err)

	// Cosine similarity is symmetric, so the numeric score matches while the
	// matched/missing sets swap roles.
	assert.Equal(t, forward.Score, backward.Score)
	assert.Equal(t, forward.Matched, backward.Matched)
	assert.NotEqual(t, forward.Missing, backward.Missing)
}

func TestScoreDegenerateInputs(t *testing.T) {
	tests := []struct {
		name      string
		user      string
		reference string
	}{
		{name: "both empty", user: "", reference: ""},
		{name: "punctuation only", user: "?!", reference: "... - ..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Score(tt.user, tt.reference)
			require.ErrorIs(t, err, ErrEvaluation)
		})
	}
}

func TestScoreNoOverlap(t *testing.T) {
	eval, err := Score("bananas apples oranges", "gradient descent convergence")
	require.NoError(t, err)
	assert.Equal(t, 0, eval.Score)
	assert.Empty(t, eval.Matched)
}

func TestEvaluationRender(t *testing.T) {
	eval := Evaluation{
		Score:           7,
		Matched:         []string{"mean", "spread", "variance", "zzz"},
		Missing:         []string{"data", "points"},
		ReferenceAnswer: "Variance measures the spread around the mean",
	}

	want := "Score: 7/10\n\n" +
		"Key Points Covered:\n✓ 'mean'\n✓ 'spread'\n✓ 'variance'\n\n" +
		"Missing Key Points:\n• 'data'\n• 'points'\n\n" +
		"Ideal Response:\nVariance measures the spread around the mean"
	assert.Equal(t, want, eval.Render())
}

func TestTopListsAreCapped(t *testing.T) {
	eval := Evaluation{
		Matched: []string{"a", "b", "c", "d", "e"},
		Missing: []string{"x"},
	}
	assert.Equal(t, []string{"a", "b", "c"}, eval.TopMatched())
	assert.Equal(t, []string{"x"}, eval.TopMissing())
}
