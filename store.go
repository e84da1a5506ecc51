package facultysearch

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Page is one fetched document as persisted by the crawler.
type Page struct {
	URL       string
	HTML      string
	Title     string
	Summary   string
	IsTarget  bool
	CrawlID   string
	CrawledAt time.Time
}

// Store persists crawled pages and the inverted index. The caller owns
// its lifecycle and must Close it.
type Store interface {
	// PutPage inserts p, or replaces the page already stored under p.URL.
	PutPage(ctx context.Context, p Page) error
	// Page looks up a page by URL. A miss is reported through found, not err.
	Page(ctx context.Context, url string) (p Page, found bool, err error)
	// Targets returns up to limit target pages in the order they were first stored.
	Targets(ctx context.Context, limit int) ([]Page, error)
	// PutPostings merges postings (term -> URLs) into the index.
	PutPostings(ctx context.Context, postings map[string][]string) error
	// Posting returns the URLs indexed under term, sorted. A miss is an empty slice.
	Posting(ctx context.Context, term string) ([]string, error)
	// ClearPostings drops the whole inverted index. Pages are kept.
	ClearPostings(ctx context.Context) error
	Close() error
}

// OpenStore picks a Store implementation from databaseURL:
//
//	mem://                     in-process MemStore
//	postgres://, postgresql:// PostgresStore
//	sqlite://path, path        SQLiteStore (":memory:" works too)
func OpenStore(ctx context.Context, databaseURL string, log *zap.Logger) (Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	switch {
	case databaseURL == "mem://":
		log.Info("using in-memory store")
		return NewMemStore(), nil
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		log.Info("using postgres store")
		pg, err := NewPostgresStore(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		return pg, nil
	default:
		path := strings.TrimPrefix(databaseURL, "sqlite://")
		if path == "" {
			path = defaultSQLitePath
		}
		log.Info("using sqlite store", zap.String("path", path))
		sq, err := NewSQLiteStore(path)
		if err != nil {
			return nil, err
		}
		return sq, nil
	}
}
