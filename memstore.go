package facultysearch

import (
	"context"
	"sort"
	"sync"
)

// MemStore keeps pages and postings in memory. Safe for concurrent use.
type MemStore struct {
	mu       sync.RWMutex
	pages    map[string]Page
	order    []string                       // URLs in first-stored order
	postings map[string]map[string]struct{} // term -> URL set
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		pages:    make(map[string]Page),
		postings: make(map[string]map[string]struct{}),
	}
}

func (m *MemStore) PutPage(_ context.Context, p Page) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, dup := m.pages[p.URL]; !dup {
		m.order = append(m.order, p.URL)
	}
	m.pages[p.URL] = p
	return nil
}

func (m *MemStore) Page(_ context.Context, url string) (Page, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.pages[url]
	return p, ok, nil
}

func (m *MemStore) Targets(_ context.Context, limit int) ([]Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Page
	for _, u := range m.order {
		if limit > 0 && len(out) >= limit {
			break
		}
		if p := m.pages[u]; p.IsTarget {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MemStore) PutPostings(_ context.Context, postings map[string][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for term, urls := range postings {
		set, ok := m.postings[term]
		if !ok {
			set = make(map[string]struct{}, len(urls))
			m.postings[term] = set
		}
		for _, u := range urls {
			set[u] = struct{}{}
		}
	}
	return nil
}

func (m *MemStore) Posting(_ context.Context, term string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set := m.postings[term]
	urls := make([]string, 0, len(set))
	for u := range set {
		urls = append(urls, u)
	}
	sort.Strings(urls)
	return urls, nil
}

func (m *MemStore) ClearPostings(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.postings = make(map[string]map[string]struct{})
	return nil
}

// Close is a no-op; there are no resources to release.
func (m *MemStore) Close() error { return nil }
