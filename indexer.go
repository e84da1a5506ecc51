package facultysearch

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// DefaultNGram is the default upper gram bound for indexing and querying.
const DefaultNGram = 3

// Indexer builds the n-gram inverted index over stored target pages.
type Indexer struct {
	Store      Store
	Normalizer *Normalizer
	// N is the largest gram size indexed; DefaultNGram if zero.
	N   int
	Log *zap.Logger
}

// Build reads up to numTargets target pages, indexes every 1..N gram of
// their normalized text and persists the postings. It returns the number
// of distinct terms.
func (ix *Indexer) Build(ctx context.Context, numTargets int) (int, error) {
	if numTargets <= 0 {
		return 0, fmt.Errorf("%w: target count must be positive, got %d", ErrInvalidConfig, numTargets)
	}
	n := ix.N
	if n <= 0 {
		n = DefaultNGram
	}
	norm := ix.Normalizer
	if norm == nil {
		norm = NewNormalizer(nil)
	}
	log := ix.Log
	if log == nil {
		log = zap.NewNop()
	}

	targets, err := ix.Store.Targets(ctx, numTargets)
	if err != nil {
		return 0, err
	}

	// term -> URL set
	inverted := make(map[string]map[string]struct{})
	for _, p := range targets {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		tokens := norm.Normalize(DocumentText([]byte(p.HTML)))
		for _, term := range ExpandTerms(tokens, n) {
			set, ok := inverted[term]
			if !ok {
				set = make(map[string]struct{})
				inverted[term] = set
			}
			set[p.URL] = struct{}{}
		}
		log.Debug("page indexed", zap.String("url", p.URL), zap.Int("tokens", len(tokens)))
	}

	postings := make(map[string][]string, len(inverted))
	for term, set := range inverted {
		urls := make([]string, 0, len(set))
		for u := range set {
			urls = append(urls, u)
		}
		postings[term] = urls
	}
	if err := ix.Store.PutPostings(ctx, postings); err != nil {
		return 0, err
	}

	log.Info("index built",
		zap.Int("pages", len(targets)),
		zap.Int("terms", len(postings)),
		zap.Int("ngram", n))
	return len(postings), nil
}

// Grams returns every contiguous k-token window of tokens, joined by a
// single space. k larger than len(tokens) gives no grams.
func Grams(tokens []string, k int) []string {
	if k <= 0 || k > len(tokens) {
		return nil
	}
	out := make([]string, 0, len(tokens)-k+1)
	for i := 0; i+k <= len(tokens); i++ {
		out = append(out, strings.Join(tokens[i:i+k], " "))
	}
	return out
}

// ExpandTerms returns the 1-grams, then the 2-grams, up to the n-grams of
// tokens. Duplicates are kept.
func ExpandTerms(tokens []string, n int) []string {
	var out []string
	for k := 1; k <= n; k++ {
		out = append(out, Grams(tokens, k)...)
	}
	return out
}
