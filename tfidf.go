package facultysearch

import (
	"math"
	"strings"
)

// Vector is a sparse term-weight vector.
type Vector map[string]float64

// TFIDFVectors fits a TF-IDF space over docs and returns one L2-normalized
// vector per doc. Each doc is whitespace-tokenized and its 1..n grams are
// the features. Weights are raw count times smoothed idf:
//
//	idf(t) = ln((1+len(docs)) / (1+df(t))) + 1
func TFIDFVectors(docs []string, n int) []Vector {
	counts := make([]map[string]int, len(docs))
	df := make(map[string]int)
	for i, d := range docs {
		c := make(map[string]int)
		for _, term := range ExpandTerms(strings.Fields(d), n) {
			c[term]++
		}
		for term := range c {
			df[term]++
		}
		counts[i] = c
	}

	total := float64(len(docs))
	out := make([]Vector, len(docs))
	for i, c := range counts {
		v := make(Vector, len(c))
		var norm float64
		for term, tf := range c {
			w := float64(tf) * (math.Log((1+total)/(1+float64(df[term]))) + 1)
			v[term] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for term := range v {
				v[term] /= norm
			}
		}
		out[i] = v
	}
	return out
}

// Cosine returns the cosine similarity of a and b, or 0 if either is empty.
func Cosine(a, b Vector) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	var dot, na, nb float64
	for term, w := range a {
		dot += w * b[term]
		na += w * w
	}
	for _, w := range b {
		nb += w * w
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
