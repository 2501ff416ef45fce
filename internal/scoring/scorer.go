// Package scoring evaluates a submitted answer against the curated reference
// answer. The score comes from TF-IDF cosine similarity over the two texts;
// the structured feedback comes from plain lexical overlap.
package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"interviewsim/internal/errors"
)

// ErrEvaluation means the answer pair could not be vectorised, e.g. neither
// text contains a single scoreable term.
var ErrEvaluation = errors.NewSentinel("answer evaluation failed")

// maxListedPoints caps how many matched or missing terms a rendering shows.
const maxListedPoints = 3

// Evaluation is the structured result of scoring one answer. Downstream code
// consumes these fields directly instead of re-parsing rendered feedback text.
type Evaluation struct {
	// Score is the similarity mapped to an integer 0..10.
	Score int
	// Matched lists terms present in both answers, sorted lexicographically.
	Matched []string
	// Missing lists reference-answer terms the user did not use, sorted.
	Missing []string
	// ReferenceAnswer is the curated ideal answer, verbatim.
	ReferenceAnswer string
}

// Score evaluates userAnswer against referenceAnswer.
//
// An empty user answer scores 0 with no matched terms. When neither text has a
// single scoreable term, Score fails with ErrEvaluation; callers surface the
// error inline and must not consume the round.
func Score(userAnswer, referenceAnswer string) (Evaluation, error) {
	userVec, refVec := tfidfVectors(userAnswer, referenceAnswer)
	if len(userVec) == 0 && len(refVec) == 0 {
		return Evaluation{}, errors.Wrap(ErrEvaluation, "empty vocabulary")
	}

	similarity := cosineSimilarity(userVec, refVec)
	score := int(math.Round(similarity * 10))

	matched, missing := lexicalOverlap(userAnswer, referenceAnswer)

	return Evaluation{
		Score:           score,
		Matched:         matched,
		Missing:         missing,
		ReferenceAnswer: referenceAnswer,
	}, nil
}

// lexicalOverlap compares the whitespace-separated lower-cased token sets of
// both answers. This deliberately differs from the scoring tokenisation: the
// feedback mirrors the words the user actually typed.
func lexicalOverlap(userAnswer, referenceAnswer string) (matched, missing []string) {
	userTokens := tokenSet(userAnswer)
	refTokens := tokenSet(referenceAnswer)

	for token := range refTokens {
		if _, ok := userTokens[token]; ok {
			matched = append(matched, token)
		} else {
			missing = append(missing, token)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)
	return matched, missing
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, token := range strings.Fields(text) {
		set[strings.ToLower(token)] = struct{}{}
	}
	return set
}

// Render composes the canonical feedback text: score line, covered and missing
// key points capped at three each, and the reference answer as the ideal
// response.
func (e Evaluation) Render() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Score: %d/10\n\n", e.Score)

	sb.WriteString("Key Points Covered:\n")
	sb.WriteString(bulletList("✓", e.Matched))
	sb.WriteString("\n\nMissing Key Points:\n")
	sb.WriteString(bulletList("•", e.Missing))

	sb.WriteString("\n\nIdeal Response:\n")
	sb.WriteString(e.ReferenceAnswer)
	return sb.String()
}

// TopMatched returns at most three matched terms for display.
func (e Evaluation) TopMatched() []string {
	return capList(e.Matched)
}

// TopMissing returns at most three missing terms for display.
func (e Evaluation) TopMissing() []string {
	return capList(e.Missing)
}

func capList(terms []string) []string {
	if len(terms) > maxListedPoints {
		return terms[:maxListedPoints]
	}
	return terms
}

func bulletList(bullet string, terms []string) string {
	lines := make([]string, 0, maxListedPoints)
	for _, term := range capList(terms) {
		lines = append(lines, fmt.Sprintf("%s '%s'", bullet, term))
	}
	return strings.Join(lines, "\n")
}
