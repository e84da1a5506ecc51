package facultysearch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSeedUnreachable is returned by Crawler.Run when the seed itself could
// not be fetched or stored, so nothing was crawled.
var ErrSeedUnreachable = errors.New("seed unreachable")

// Crawler runs a breadth-first crawl from one seed until NumTargets target
// pages have been stored or the link graph is exhausted.
type Crawler struct {
	Fetcher    Fetcher
	Store      Store
	Classifier *Classifier
	// BaseOrigin resolves root-relative links. Derived from the seed if empty.
	BaseOrigin string
	NumTargets int
	// SameSite drops links whose origin differs from BaseOrigin.
	SameSite bool
	Log      *zap.Logger

	now func() time.Time
}

// CrawlStats summarizes one Run.
type CrawlStats struct {
	CrawlID      string
	Visited int
	Fetched int
	// Failed counts pages that could not be fetched, parsed or stored. A
	// page fetched but not stored counts in both Fetched and Failed.
	Failed       int
	TargetsFound int
}

// Run crawls from seed. A page that fails to fetch, parse or store is
// logged, counted in Failed and skipped; only invalid configuration, an
// unusable seed or ctx cancellation end the crawl early.
func (c *Crawler) Run(ctx context.Context, seed string) (CrawlStats, error) {
	stats := CrawlStats{CrawlID: uuid.NewString()}

	if c.NumTargets <= 0 {
		return stats, fmt.Errorf("%w: target count must be positive, got %d", ErrInvalidConfig, c.NumTargets)
	}
	if c.Fetcher == nil || c.Store == nil {
		return stats, fmt.Errorf("%w: crawler needs a fetcher and a store", ErrInvalidConfig)
	}
	base := c.BaseOrigin
	if base == "" {
		b, err := BaseOrigin(seed)
		if err != nil {
			return stats, fmt.Errorf("%w: seed: %v", ErrInvalidConfig, err)
		}
		base = b
	}
	classifier := c.Classifier
	if classifier == nil {
		classifier = NewClassifier("")
	}
	log := c.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("crawl_id", stats.CrawlID))
	now := c.now
	if now == nil {
		now = time.Now
	}

	frontier := NewFrontier()
	frontier.Add(seed)
	visited := make(map[string]struct{})
	var seedErr error

	log.Info("crawl started",
		zap.String("seed", seed),
		zap.String("base_origin", base),
		zap.Int("num_targets", c.NumTargets))

	for !frontier.IsDone() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		url, err := frontier.Next()
		if err != nil {
			return stats, err
		}
		visited[url] = struct{}{}
		stats.Visited++

		body, doc, err := fetchDocument(ctx, c.Fetcher, url)
		if err != nil {
			var fe *FetchError
			if errors.As(err, &fe) {
				log.Warn("fetch failed", zap.String("url", fe.URL), zap.Error(fe.Err))
			}
			stats.Failed++
			if url == seed && stats.Visited == 1 {
				seedErr = err
			}
			continue
		}
		stats.Fetched++

		target := classifier.IsTarget(doc)
		page := Page{
			URL:       url,
			HTML:      string(body),
			Title:     DocumentTitle(doc),
			IsTarget:  target,
			CrawlID:   stats.CrawlID,
			CrawledAt: now().UTC(),
		}
		if target {
			page.Summary = classifier.Summary(doc)
		}
		if err := c.Store.PutPage(ctx, page); err != nil {
			log.Warn("store page failed", zap.String("url", url), zap.Error(err))
			stats.Failed++
			if url == seed && stats.Visited == 1 {
				seedErr = err
			}
			continue
		}

		if target {
			stats.TargetsFound++
			log.Info("target found",
				zap.String("url", url),
				zap.String("title", page.Title),
				zap.String("summary", page.Summary),
				zap.Int("targets_found", stats.TargetsFound))
		} else {
			log.Debug("page stored", zap.String("url", url))
		}

		if stats.TargetsFound == c.NumTargets {
			frontier.Clear()
			log.Info("target count reached", zap.Int("targets_found", stats.TargetsFound))
			continue
		}

		for _, l := range classifier.ExtractLinks(doc, base) {
			if c.SameSite && !sameOrigin(base, l) {
				continue
			}
			if _, seen := visited[l]; seen || frontier.Contains(l) {
				continue
			}
			frontier.Add(l)
		}
	}

	log.Info("crawl finished",
		zap.Int("visited", stats.Visited),
		zap.Int("fetched", stats.Fetched),
		zap.Int("failed", stats.Failed),
		zap.Int("targets_found", stats.TargetsFound))

	if seedErr != nil {
		return stats, fmt.Errorf("%w: %w", ErrSeedUnreachable, seedErr)
	}
	return stats, nil
}

// sameOrigin reports whether link lives under base (scheme://host).
func sameOrigin(base, link string) bool {
	o, err := BaseOrigin(link)
	if err != nil {
		return false
	}
	return strings.EqualFold(o, base)
}
