package facultysearch

import "errors"

// ErrEmptyFrontier is returned by Next when no URL is pending.
var ErrEmptyFrontier = errors.New("frontier is empty")

// Frontier is the FIFO request queue of a crawl session.
//
// It never deduplicates: Add appends unconditionally. Callers check Contains
// (and their own visited set) before adding, which is what the Crawler does.
type Frontier struct {
	pending []string
}

// NewFrontier returns an empty frontier.
func NewFrontier() *Frontier {
	return &Frontier{}
}

// IsDone reports whether no URL is pending.
func (f *Frontier) IsDone() bool { return len(f.pending) == 0 }

// Len returns the number of pending URLs.
func (f *Frontier) Len() int { return len(f.pending) }

// Next removes and returns the oldest pending URL.
func (f *Frontier) Next() (string, error) {
	if f.IsDone() {
		return "", ErrEmptyFrontier
	}
	u := f.pending[0]
	f.pending[0] = ""
	f.pending = f.pending[1:]
	return u, nil
}

// Add appends u to the tail of the queue.
func (f *Frontier) Add(u string) {
	f.pending = append(f.pending, u)
}

// Contains reports whether u is currently pending.
func (f *Frontier) Contains(u string) bool {
	for _, p := range f.pending {
		if p == u {
			return true
		}
	}
	return false
}

// Clear drops every pending URL. The next IsDone call returns true.
func (f *Frontier) Clear() {
	f.pending = nil
}
