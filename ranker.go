package facultysearch

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Ranker answers free-text queries against the inverted index.
type Ranker struct {
	Store      Store
	Normalizer *Normalizer
	// N is the largest query gram size; DefaultNGram if zero.
	N   int
	Log *zap.Logger
}

// Rank returns every document sharing at least one term with query,
// ordered by TF-IDF cosine similarity (ties by URL). A query that matches
// nothing gives an empty slice and a nil error.
//
// The query joins the vector space as its normalized tokens, not as its
// expanded gram list: the vectorizer builds the 1..N grams itself, so
// feeding it pre-expanded grams would count every unigram again and
// add spurious grams spanning gram boundaries.
func (r *Ranker) Rank(ctx context.Context, query string) ([]Hit, error) {
	n := r.N
	if n <= 0 {
		n = DefaultNGram
	}
	norm := r.Normalizer
	if norm == nil {
		norm = NewNormalizer(nil)
	}
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	tokens := norm.Normalize(query)
	urls, err := r.candidates(ctx, ExpandTerms(tokens, n))
	if err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return []Hit{}, nil
	}

	docs := make([]string, 0, len(urls)+1)
	kept := make([]string, 0, len(urls))
	for _, u := range urls {
		p, found, err := r.Store.Page(ctx, u)
		if err != nil {
			return nil, err
		}
		if !found {
			log.Warn("indexed page missing from store", zap.String("url", u))
			continue
		}
		docs = append(docs, norm.NormalizeJoined(DocumentText([]byte(p.HTML))))
		kept = append(kept, u)
	}
	if len(kept) == 0 {
		return []Hit{}, nil
	}

	// the query is the last document of the space
	vecs := TFIDFVectors(append(docs, strings.Join(tokens, " ")), n)
	q := vecs[len(vecs)-1]

	hits := make([]Hit, len(kept))
	for i, u := range kept {
		hits[i] = Hit{URL: u, Score: Cosine(q, vecs[i])}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return lessHit(hits[i], hits[j])
	})

	log.Debug("query ranked",
		zap.String("query", query),
		zap.Int("terms", len(tokens)),
		zap.Int("candidates", len(hits)))
	return hits, nil
}

// candidates returns the sorted union of the postings of terms.
func (r *Ranker) candidates(ctx context.Context, terms []string) ([]string, error) {
	set := make(map[string]struct{})
	for _, term := range terms {
		urls, err := r.Store.Posting(ctx, term)
		if err != nil {
			return nil, err
		}
		for _, u := range urls {
			set[u] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for u := range set {
		out = append(out, u)
	}
	sort.Strings(out)
	return out, nil
}
