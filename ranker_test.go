package facultysearch

import (
	"context"
	"math"
	"reflect"
	"testing"
)

func buildTestIndex(t *testing.T, pages map[string]string, n int) *MemStore {
	t.Helper()
	ctx := context.Background()
	store := NewMemStore()
	for u, html := range pages {
		if err := store.PutPage(ctx, Page{URL: u, HTML: html, IsTarget: true}); err != nil {
			t.Fatalf("PutPage error: %v", err)
		}
	}
	ix := &Indexer{Store: store, N: n}
	if _, err := ix.Build(ctx, len(pages)); err != nil {
		t.Fatalf("Build error: %v", err)
	}
	return store
}

func hitURLs(hits []Hit) []string {
	var out []string
	for _, h := range hits {
		out = append(out, h.URL)
	}
	return out
}

func TestRankerORSemantics(t *testing.T) {
	store := buildTestIndex(t, map[string]string{
		"http://x/whale": "<p>whale</p>",
		"http://x/ship":  "<p>ship</p>",
		"http://x/bird":  "<p>bird</p>",
	}, 3)

	r := &Ranker{Store: store, N: 3}
	hits, err := r.Rank(context.Background(), "Whales and ships")
	if err != nil {
		t.Fatalf("Rank error: %v", err)
	}
	got := hitURLs(hits)
	want := []string{"http://x/ship", "http://x/whale"} // equal scores, URL order
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Rank URLs=%v; want %v", got, want)
	}
}

func TestRankerOrdersBySimilarity(t *testing.T) {
	store := buildTestIndex(t, map[string]string{
		"http://x/a": "<p>whale ship voyage</p>",
		"http://x/b": "<p>ship harbor</p>",
	}, 2)

	r := &Ranker{Store: store, N: 2}
	hits, err := r.Rank(context.Background(), "whale ship")
	if err != nil {
		t.Fatalf("Rank error: %v", err)
	}
	if len(hits) != 2 || hits[0].URL != "http://x/a" {
		t.Fatalf("Rank=%+v; want http://x/a first", hits)
	}
	if !(hits[0].Score > hits[1].Score) || hits[1].Score <= 0 {
		t.Fatalf("scores not strictly ordered: %+v", hits)
	}
}

func TestRankerEmpty(t *testing.T) {
	store := buildTestIndex(t, map[string]string{"http://x/a": "<p>whale</p>"}, 3)
	r := &Ranker{Store: store}

	for _, q := range []string{"kraken", "", "the and of"} {
		hits, err := r.Rank(context.Background(), q)
		if err != nil {
			t.Fatalf("Rank(%q) error: %v", q, err)
		}
		if hits == nil || len(hits) != 0 {
			t.Fatalf("Rank(%q)=%#v; want empty non-nil slice", q, hits)
		}
	}
}

func TestRankerSkipsMissingPages(t *testing.T) {
	ctx := context.Background()
	store := NewMemStore()
	store.PutPage(ctx, Page{URL: "http://x/a", HTML: "<p>whale</p>", IsTarget: true})
	store.PutPostings(ctx, map[string][]string{stem("whale"): {"http://x/a", "http://x/gone"}})

	hits, err := (&Ranker{Store: store}).Rank(ctx, "whale")
	if err != nil {
		t.Fatalf("Rank error: %v", err)
	}
	if !reflect.DeepEqual(hitURLs(hits), []string{"http://x/a"}) {
		t.Fatalf("Rank=%+v", hits)
	}
}

func TestCosine(t *testing.T) {
	vecs := TFIDFVectors([]string{"a b", "a b", "c"}, 1)
	if got := Cosine(vecs[0], vecs[1]); math.Abs(got-1) > 1e-9 {
		t.Fatalf("identical docs cosine=%v; want 1", got)
	}
	if got := Cosine(vecs[0], vecs[2]); got != 0 {
		t.Fatalf("disjoint docs cosine=%v; want 0", got)
	}
	if got := Cosine(vecs[0], Vector{}); got != 0 {
		t.Fatalf("empty vector cosine=%v; want 0", got)
	}
}

func TestPaginate(t *testing.T) {
	hits := []Hit{{"u1", 5}, {"u2", 4}, {"u3", 3}, {"u4", 2}, {"u5", 1}}
	pages := Paginate(hits, 2)
	var sizes []int
	for _, p := range pages {
		sizes = append(sizes, len(p))
	}
	if !reflect.DeepEqual(sizes, []int{2, 2, 1}) {
		t.Fatalf("page sizes=%v; want [2 2 1]", sizes)
	}
	if pages[0][0].URL != "u1" || pages[2][0].URL != "u5" {
		t.Fatalf("pages out of score order: %+v", pages)
	}

	if got := Paginate(nil, 2); got != nil {
		t.Fatalf("Paginate(nil)=%v; want nil", got)
	}
	if got := Paginate(hits, 0); len(got) != 1 || len(got[0]) != 5 {
		t.Fatalf("Paginate(perPage=0)=%v; want one page", got)
	}
}

func TestRankerQueryDocumentIsNormalizedTokens(t *testing.T) {
	pages := map[string]string{
		"http://x/a": "<p>whale ship voyage</p>",
		"http://x/b": "<p>ship harbor whale whale</p>",
	}
	store := buildTestIndex(t, pages, 2)
	norm := NewNormalizer(nil)

	hits, err := (&Ranker{Store: store, Normalizer: norm, N: 2}).Rank(context.Background(), "Whales, ships")
	if err != nil {
		t.Fatalf("Rank error: %v", err)
	}

	// candidates are scored in URL order; the query is "whale ship", not
	// "whale ship whale ship"
	vecs := TFIDFVectors([]string{
		norm.NormalizeJoined(DocumentText([]byte(pages["http://x/a"]))),
		norm.NormalizeJoined(DocumentText([]byte(pages["http://x/b"]))),
		"whale ship",
	}, 2)
	want := map[string]float64{
		"http://x/a": Cosine(vecs[2], vecs[0]),
		"http://x/b": Cosine(vecs[2], vecs[1]),
	}
	if len(hits) != 2 {
		t.Fatalf("Rank=%+v; want 2 hits", hits)
	}
	for _, h := range hits {
		if math.Abs(h.Score-want[h.URL]) > 1e-12 {
			t.Fatalf("score(%s)=%v; want %v", h.URL, h.Score, want[h.URL])
		}
	}
}
