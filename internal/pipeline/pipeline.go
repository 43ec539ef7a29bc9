// Package pipeline runs listing → extraction → CSV one URL at a time.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"tsn-scraper/internal/article"
	"tsn-scraper/internal/config"
	"tsn-scraper/internal/crawler"
	"tsn-scraper/internal/ioformats"
	"tsn-scraper/internal/listing"
	"tsn-scraper/internal/models"
	"tsn-scraper/pkg/logger"
)

// URLSource yields the article URLs for a run.
type URLSource interface {
	ArticleURLs(ctx context.Context, target time.Time) ([]string, error)
}

// RecordExtractor turns one URL into a record.
type RecordExtractor interface {
	Extract(ctx context.Context, url string) (models.ArticleRecord, error)
}

type Stats struct {
	Seen    int
	Written int
	Skipped int
}

type Runner struct {
	cfg       *config.Config
	source    URLSource
	extractor RecordExtractor
	log       *logger.Logger
	now       func() time.Time
}

// New wires the HTTP clients, listing fetcher and extractor from cfg. The
// listing and article clients carry their own timeouts.
func New(cfg *config.Config, l *logger.Logger) *Runner {
	opts := []crawler.Option{crawler.WithUserAgent(cfg.UserAgent), crawler.WithAccept(cfg.Accept)}
	articleClient := crawler.NewHTTPClient(cfg.FetchTimeout(), 5*time.Second, cfg.MaxBodyBytes, opts...)

	var src URLSource
	if cfg.Mode == config.ModeStatic {
		src = &staticSource{urls: cfg.URLs, file: cfg.URLsFile}
	} else {
		listingClient := crawler.NewHTTPClient(cfg.ListingTimeout(), 5*time.Second, cfg.MaxBodyBytes, opts...)
		src = listing.New(listingClient, cfg.ListingURL, l)
	}
	return NewWith(cfg, src, article.New(articleClient, nil, l), l)
}

// NewWith builds a Runner from explicit components.
func NewWith(cfg *config.Config, src URLSource, ex RecordExtractor, l *logger.Logger) *Runner {
	if l == nil {
		l = logger.Discard()
	}
	return &Runner{cfg: cfg, source: src, extractor: ex, log: l, now: time.Now}
}

// Run writes one CSV row per successfully extracted article. Failing to get
// the URL list is fatal; a failing article is logged and skipped.
func (r *Runner) Run(ctx context.Context) (stats Stats, err error) {
	target := r.cfg.Target(r.now())
	urls, err := r.source.ArticleURLs(ctx, target)
	if err != nil {
		return stats, err
	}

	f, err := os.Create(r.cfg.OutputPath)
	if err != nil {
		return stats, fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	w := ioformats.NewCSVWriter(f, r.cfg.WithCategory())
	if err := w.WriteHeader(); err != nil {
		return stats, fmt.Errorf("write header: %w", err)
	}

	for _, u := range urls {
		stats.Seen++
		rec, err := r.extractor.Extract(ctx, u)
		if err != nil {
			stats.Skipped++
			r.log.WithField("url", u).WithError(err).Warnf("skipping article")
			continue
		}
		if err := w.Write(rec); err != nil {
			return stats, fmt.Errorf("write row: %w", err)
		}
		stats.Written++
	}

	if err := w.Flush(); err != nil {
		return stats, fmt.Errorf("flush output: %w", err)
	}
	r.log.Infof("wrote %d of %d articles to %s (%d skipped)", stats.Written, stats.Seen, r.cfg.OutputPath, stats.Skipped)
	return stats, nil
}

// staticSource serves the fixed URL list, ignoring the target date.
type staticSource struct {
	urls []string
	file string
}

func (s *staticSource) ArticleURLs(ctx context.Context, _ time.Time) ([]string, error) {
	urls := append([]string(nil), s.urls...)
	if s.file != "" {
		more, err := ioformats.ReadURLs(s.file)
		if err != nil {
			return nil, fmt.Errorf("read urls file: %w", err)
		}
		urls = append(urls, more...)
	}
	return urls, nil
}
