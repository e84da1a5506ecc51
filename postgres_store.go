package facultysearch

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/lib/pq"
)

// PostgresStore is a Store on PostgreSQL. Postings are kept one row per
// term with the URL set in a TEXT[] column.
type PostgresStore struct {
	DB *sql.DB
}

// NewPostgresStore connects to databaseURL and creates the tables.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	pg := &PostgresStore{DB: db}
	if err := pg.createTables(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return pg, nil
}

func (p *PostgresStore) createTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS pages (
			id SERIAL PRIMARY KEY,
			url TEXT UNIQUE NOT NULL,
			html TEXT,
			title TEXT,
			summary TEXT,
			is_target BOOLEAN NOT NULL DEFAULT FALSE,
			crawl_id TEXT,
			crawled_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS postings (
			term TEXT PRIMARY KEY,
			doc_list TEXT[] NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pages_is_target ON pages(is_target)`,
	}

	for _, query := range queries {
		if _, err := p.DB.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query %s: %w", query, err)
		}
	}
	return nil
}

func (p *PostgresStore) PutPage(ctx context.Context, page Page) error {
	query := `
		INSERT INTO pages (url, html, title, summary, is_target, crawl_id, crawled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (url) DO UPDATE SET
			html = EXCLUDED.html,
			title = EXCLUDED.title,
			summary = EXCLUDED.summary,
			is_target = EXCLUDED.is_target,
			crawl_id = EXCLUDED.crawl_id,
			crawled_at = EXCLUDED.crawled_at`

	_, err := p.DB.ExecContext(ctx, query,
		page.URL, page.HTML, page.Title, page.Summary, page.IsTarget, page.CrawlID, page.CrawledAt)
	if err != nil {
		return fmt.Errorf("store page %s: %w", page.URL, err)
	}
	return nil
}

func (p *PostgresStore) Page(ctx context.Context, url string) (Page, bool, error) {
	var page Page
	err := p.DB.QueryRowContext(ctx, `
		SELECT url, html, title, summary, is_target, crawl_id, crawled_at
		FROM pages WHERE url = $1`, url,
	).Scan(&page.URL, &page.HTML, &page.Title, &page.Summary, &page.IsTarget, &page.CrawlID, &page.CrawledAt)
	if err == sql.ErrNoRows {
		return Page{}, false, nil
	}
	if err != nil {
		return Page{}, false, fmt.Errorf("load page %s: %w", url, err)
	}
	return page, true, nil
}

func (p *PostgresStore) Targets(ctx context.Context, limit int) ([]Page, error) {
	query := `
		SELECT url, html, title, summary, is_target, crawl_id, crawled_at
		FROM pages WHERE is_target ORDER BY id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load targets: %w", err)
	}
	defer rows.Close()

	var out []Page
	for rows.Next() {
		var page Page
		if err := rows.Scan(&page.URL, &page.HTML, &page.Title, &page.Summary, &page.IsTarget, &page.CrawlID, &page.CrawledAt); err != nil {
			return nil, err
		}
		out = append(out, page)
	}
	return out, rows.Err()
}

func (p *PostgresStore) PutPostings(ctx context.Context, postings map[string][]string) error {
	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO postings (term, doc_list)
		VALUES ($1, $2)
		ON CONFLICT (term) DO UPDATE SET
			doc_list = ARRAY(SELECT DISTINCT unnest(postings.doc_list || EXCLUDED.doc_list))
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for term, urls := range postings {
		if _, err := stmt.ExecContext(ctx, term, pq.Array(urls)); err != nil {
			return fmt.Errorf("store posting %q: %w", term, err)
		}
	}
	return tx.Commit()
}

func (p *PostgresStore) Posting(ctx context.Context, term string) ([]string, error) {
	var urls []string
	err := p.DB.QueryRowContext(ctx, `SELECT doc_list FROM postings WHERE term = $1`, term).
		Scan(pq.Array(&urls))
	if err == sql.ErrNoRows {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load posting %q: %w", term, err)
	}
	sort.Strings(urls)
	return urls, nil
}

func (p *PostgresStore) ClearPostings(ctx context.Context) error {
	if _, err := p.DB.ExecContext(ctx, `TRUNCATE postings`); err != nil {
		return fmt.Errorf("clear postings: %w", err)
	}
	return nil
}

func (p *PostgresStore) Close() error {
	return p.DB.Close()
}
