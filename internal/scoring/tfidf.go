package scoring

import (
	"math"
	"regexp"
	"strings"
)

// termPattern matches word-character runs of at least two characters, the same
// tokenisation a default TfidfVectorizer applies.
var termPattern = regexp.MustCompile(`\w\w+`)

func terms(text string) []string {
	return termPattern.FindAllString(strings.ToLower(text), -1)
}

// tfidfVectors builds term-frequency/inverse-document-frequency vectors for
// the two-document corpus formed by the given texts. The vectors share one
// vocabulary and are L2-normalised; a document with no vocabulary overlap
// stays a zero vector.
func tfidfVectors(a, b string) (map[string]float64, map[string]float64) {
	termsA := terms(a)
	termsB := terms(b)

	countsA := termCounts(termsA)
	countsB := termCounts(termsB)

	// Smoothed idf over n=2 documents: ln((1+n)/(1+df)) + 1.
	idf := func(term string) float64 {
		df := 0
		if countsA[term] > 0 {
			df++
		}
		if countsB[term] > 0 {
			df++
		}
		return math.Log(3.0/(1.0+float64(df))) + 1.0
	}

	vecA := make(map[string]float64, len(countsA))
	for term, count := range countsA {
		vecA[term] = float64(count) * idf(term)
	}
	vecB := make(map[string]float64, len(countsB))
	for term, count := range countsB {
		vecB[term] = float64(count) * idf(term)
	}
	normalise(vecA)
	normalise(vecB)

	return vecA, vecB
}

func termCounts(terms []string) map[string]int {
	counts := make(map[string]int, len(terms))
	for _, term := range terms {
		counts[term]++
	}
	return counts
}

func normalise(vec map[string]float64) {
	var sumSquares float64
	for _, weight := range vec {
		sumSquares += weight * weight
	}
	if sumSquares == 0 {
		return
	}
	norm := math.Sqrt(sumSquares)
	for term, weight := range vec {
		vec[term] = weight / norm
	}
}

// cosineSimilarity of two L2-normalised sparse vectors. Zero vectors yield 0.
func cosineSimilarity(a, b map[string]float64) float64 {
	// Iterate over the smaller vector.
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for term, weight := range a {
		dot += weight * b[term]
	}
	// Clamp rounding noise so identical texts are exactly 1.
	return math.Min(dot, 1.0)
}
