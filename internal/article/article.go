package article

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"tsn-scraper/internal/models"
	"tsn-scraper/internal/parser"
	"tsn-scraper/internal/resolver"
	"tsn-scraper/pkg/logger"
)

// ErrEmptyArticle is returned when a page parsed but carried neither a title nor body text.
var ErrEmptyArticle = errors.New("article has no title and no body")

// Fetcher is satisfied by *crawler.HTTPClient.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (io.ReadCloser, string, string, time.Duration, error)
}

type Extractor struct {
	client Fetcher
	parser *parser.Parser
	log    *logger.Logger
}

func New(client Fetcher, p *parser.Parser, l *logger.Logger) *Extractor {
	if p == nil {
		p = parser.New()
	}
	if l == nil {
		l = logger.Discard()
	}
	return &Extractor{client: client, parser: p, log: l}
}

// Page downloads and parses url without resolving author or category.
func (e *Extractor) Page(ctx context.Context, url string) (models.Page, error) {
	body, finalURL, ct, elapsed, err := e.client.Fetch(ctx, url)
	if err != nil {
		return models.Page{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer body.Close()

	page, err := e.parser.Extract(body, ct, finalURL)
	if err != nil {
		return models.Page{}, fmt.Errorf("parse %s: %w", url, err)
	}
	e.log.WithField("url", url).Debugf("fetched in %s (%d meta keys)", elapsed, len(page.Meta))
	return page, nil
}

// Extract produces the output record for url. Link is the URL as requested,
// not the post-redirect one.
func (e *Extractor) Extract(ctx context.Context, url string) (models.ArticleRecord, error) {
	page, err := e.Page(ctx, url)
	if err != nil {
		return models.ArticleRecord{}, err
	}
	if page.Title == "" && page.Body == "" {
		return models.ArticleRecord{}, fmt.Errorf("%s: %w", url, ErrEmptyArticle)
	}
	return Record(page, url), nil
}

// Record combines a parsed page with the resolved author and category.
func Record(page models.Page, link string) models.ArticleRecord {
	author, _ := resolver.ResolveAuthor(page.Meta, page.RawHTML)
	category, _ := resolver.ResolveCategory(page.Meta)
	return models.ArticleRecord{
		Title:    page.Title,
		Date:     page.Published,
		Author:   author,
		Body:     page.Body,
		Link:     link,
		Category: category,
	}
}
