package bank

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"interviewsim/internal/testhelpers"
)

func newTestBank(t *testing.T, file string) *Bank {
	t.Helper()
	b := New(filepath.Join("testdata", file), testhelpers.NewLogger(io.Discard))
	require.NoError(t, b.Load())
	return b
}

func TestBankLoadCSV(t *testing.T) {
	b := newTestBank(t, "questions.csv")
	require.Equal(t, 4, b.Size())
	require.Equal(t, []string{"All", "Machine Learning", "SQL", "Statistics"}, b.Categories())
}

func TestBankLoadYAML(t *testing.T) {
	b := newTestBank(t, "questions.yaml")
	require.Equal(t, 2, b.Size())
	require.Equal(t, []string{"All", "Python", "Statistics"}, b.Categories())
}

func TestBankLoadFailures(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{name: "missing file", file: "does-not-exist.csv"},
		{name: "empty file", file: "empty.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(filepath.Join("testdata", tt.file), testhelpers.NewLogger(io.Discard))
			require.ErrorIs(t, b.Load(), ErrDataUnavailable)
		})
	}
}

func TestBankSample(t *testing.T) {
	b := newTestBank(t, "questions.csv")

	t.Run("category filter", func(t *testing.T) {
		for range 20 {
			q, err := b.Sample("Statistics")
			require.NoError(t, err)
			require.Equal(t, "Statistics", q.Category)
			require.NotEmpty(t, q.Prompt)
			require.NotEmpty(t, q.ReferenceAnswer)
		}
	})

	t.Run("all categories", func(t *testing.T) {
		q, err := b.Sample(CategoryAll)
		require.NoError(t, err)
		require.NotEmpty(t, q.Prompt)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := b.Sample("Quantum Computing")
		require.ErrorIs(t, err, ErrNoQuestionsInCategory)
	})
}
