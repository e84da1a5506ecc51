package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"facultysearch"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "facultysearch:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		envFile    = flag.String("env", ".env", "optional .env file")
		mode       = flag.String("mode", "search", "crawl | index | search | serve")
		dept       = flag.String("dept", "", "department preset: "+strings.Join(facultysearch.DepartmentNames(), ", "))
		seed       = flag.String("seed", "", "seed URL (overrides FACULTY_SEED_URL)")
		targets    = flag.Int("targets", 0, "number of target pages (overrides FACULTY_NUM_TARGETS)")
		ngram      = flag.Int("ngram", 0, "index gram size (overrides FACULTY_INDEX_NGRAM)")
		queryNGram = flag.Int("query-ngram", 0, "query gram size (overrides FACULTY_QUERY_NGRAM)")
		perPage    = flag.Int("per-page", 0, "results per page (overrides FACULTY_RESULTS_PER_PAGE)")
		dbURL      = flag.String("db", "", "database URL (overrides DATABASE_URL)")
		fresh      = flag.Bool("fresh", true, "index mode: clear existing postings first")
		addr       = flag.String("addr", "", "serve mode listen address (overrides HTTP_ADDR)")
	)
	flag.Parse()

	cfg, err := facultysearch.LoadConfig(*envFile)
	if err != nil {
		return err
	}
	if *dept != "" {
		if err := cfg.ApplyDepartment(*dept); err != nil {
			return err
		}
	}
	if *seed != "" {
		cfg.SeedURL = *seed
	}
	if *targets != 0 {
		cfg.NumTargets = *targets
	}
	if *ngram != 0 {
		cfg.IndexNGram = *ngram
	}
	if *queryNGram != 0 {
		cfg.QueryNGram = *queryNGram
	}
	if *perPage != 0 {
		cfg.ResultsPerPage = *perPage
	}
	if *dbURL != "" {
		cfg.DatabaseURL = *dbURL
	}
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := facultysearch.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer log.Sync()

	if cfg.IndexNGram != cfg.QueryNGram {
		log.Warn("index and query gram sizes differ; longer query grams will never match",
			zap.Int("index_ngram", cfg.IndexNGram),
			zap.Int("query_ngram", cfg.QueryNGram))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := facultysearch.OpenStore(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	defer store.Close()

	norm := facultysearch.NewNormalizer(nil)

	switch *mode {
	case "crawl":
		if d, ok := facultysearch.Departments[strings.ToLower(*dept)]; ok {
			log.Info("department preset",
				zap.String("dept", *dept),
				zap.Int("num_targets", d.NumTargets),
				zap.Int("total_targets", d.TotalTargets))
		}
		c := &facultysearch.Crawler{
			Fetcher:    facultysearch.NewHTTPFetcher(cfg.RequestTimeout, cfg.UserAgent),
			Store:      store,
			Classifier: facultysearch.NewClassifier(cfg.TargetSelector),
			BaseOrigin: cfg.BaseOrigin,
			NumTargets: cfg.NumTargets,
			SameSite:   cfg.SameSite,
			Log:        log,
		}
		stats, err := c.Run(ctx, cfg.SeedURL)
		if err != nil {
			return err
		}
		fmt.Printf("%d/%d targets found (%d pages visited, %d failed)\n",
			stats.TargetsFound, cfg.NumTargets, stats.Visited, stats.Failed)

	case "index":
		if *fresh {
			if err := store.ClearPostings(ctx); err != nil {
				return err
			}
		}
		ix := &facultysearch.Indexer{Store: store, Normalizer: norm, N: cfg.IndexNGram, Log: log}
		n, err := ix.Build(ctx, cfg.NumTargets)
		if err != nil {
			return err
		}
		fmt.Printf("%d terms indexed.\n", n)

	case "search":
		r := &facultysearch.Ranker{Store: store, Normalizer: norm, N: cfg.QueryNGram, Log: log}
		sess := &facultysearch.Session{Searcher: r, PerPage: cfg.ResultsPerPage, Log: log}
		return sess.Run(ctx, os.Stdin, os.Stdout)

	case "serve":
		r := &facultysearch.Ranker{Store: store, Normalizer: norm, N: cfg.QueryNGram, Log: log}
		srv := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           facultysearch.NewMux(r, cfg.ResultsPerPage, log),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
		log.Info("serving", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

	default:
		return fmt.Errorf("%w: unknown mode %q", facultysearch.ErrInvalidConfig, *mode)
	}
	return nil
}
