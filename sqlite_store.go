package facultysearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const (
	defaultSQLitePath = "facultysearch.db"
	postingBatchSize  = 500
)

type pageRecord struct {
	ID        uint   `gorm:"primaryKey"`
	URL       string `gorm:"uniqueIndex;not null"`
	HTML      string
	Title     string
	Summary   string
	IsTarget  bool   `gorm:"index"`
	CrawlID   string `gorm:"index"`
	CrawledAt time.Time
}

func (pageRecord) TableName() string { return "pages" }

type postingRecord struct {
	Term string `gorm:"primaryKey"`
	URL  string `gorm:"primaryKey"`
}

func (postingRecord) TableName() string { return "postings" }

// SQLiteStore is a Store on an embedded SQLite database (pure Go driver).
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (or creates) the database at path and migrates the
// schema. Use ":memory:" for a throwaway database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// one connection: SQLite serializes writers, and ":memory:" is per-connection
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&pageRecord{}, &postingRecord{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate sqlite schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) PutPage(ctx context.Context, p Page) error {
	rec := pageRecord{
		URL:       p.URL,
		HTML:      p.HTML,
		Title:     p.Title,
		Summary:   p.Summary,
		IsTarget:  p.IsTarget,
		CrawlID:   p.CrawlID,
		CrawledAt: p.CrawledAt,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "url"}},
		DoUpdates: clause.AssignmentColumns([]string{"html", "title", "summary", "is_target", "crawl_id", "crawled_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("store page %s: %w", p.URL, err)
	}
	return nil
}

func (s *SQLiteStore) Page(ctx context.Context, url string) (Page, bool, error) {
	var rec pageRecord
	err := s.db.WithContext(ctx).Where("url = ?", url).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Page{}, false, nil
	}
	if err != nil {
		return Page{}, false, fmt.Errorf("load page %s: %w", url, err)
	}
	return rec.page(), true, nil
}

func (s *SQLiteStore) Targets(ctx context.Context, limit int) ([]Page, error) {
	q := s.db.WithContext(ctx).Where("is_target = ?", true).Order("id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var recs []pageRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("load targets: %w", err)
	}
	out := make([]Page, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.page())
	}
	return out, nil
}

func (s *SQLiteStore) PutPostings(ctx context.Context, postings map[string][]string) error {
	var recs []postingRecord
	for term, urls := range postings {
		for _, u := range urls {
			recs = append(recs, postingRecord{Term: term, URL: u})
		}
	}
	if len(recs) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			CreateInBatches(recs, postingBatchSize).Error
	})
	if err != nil {
		return fmt.Errorf("store postings: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Posting(ctx context.Context, term string) ([]string, error) {
	urls := []string{}
	err := s.db.WithContext(ctx).Model(&postingRecord{}).
		Where("term = ?", term).Order("url").Pluck("url", &urls).Error
	if err != nil {
		return nil, fmt.Errorf("load posting %q: %w", term, err)
	}
	return urls, nil
}

func (s *SQLiteStore) ClearPostings(ctx context.Context) error {
	err := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&postingRecord{}).Error
	if err != nil {
		return fmt.Errorf("clear postings: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r pageRecord) page() Page {
	return Page{
		URL:       r.URL,
		HTML:      r.HTML,
		Title:     r.Title,
		Summary:   r.Summary,
		IsTarget:  r.IsTarget,
		CrawlID:   r.CrawlID,
		CrawledAt: r.CrawledAt,
	}
}
