// Package listing reads the publisher's homepage and picks the article links
// published on a given day.
package listing

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"tsn-scraper/internal/parser"
	"tsn-scraper/pkg/logger"
)

type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (io.ReadCloser, string, string, time.Duration, error)
}

type Listing struct {
	client     Fetcher
	listingURL string
	log        *logger.Logger
}

func New(client Fetcher, listingURL string, l *logger.Logger) *Listing {
	if l == nil {
		l = logger.Discard()
	}
	return &Listing{client: client, listingURL: listingURL, log: l}
}

// ArticleURLs returns, in page order, the links of <article> entries whose
// <time datetime> falls on target's calendar date. The entry's own UTC offset
// decides which day it belongs to.
func (l *Listing) ArticleURLs(ctx context.Context, target time.Time) ([]string, error) {
	body, finalURL, ct, _, err := l.client.Fetch(ctx, l.listingURL)
	if err != nil {
		return nil, fmt.Errorf("fetch listing %s: %w", l.listingURL, err)
	}
	defer body.Close()

	r, err := charset.NewReader(body, ct)
	if err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse listing: %w", err)
	}
	base, err := url.Parse(finalURL)
	if err != nil {
		return nil, fmt.Errorf("listing url: %w", err)
	}
	return l.collect(doc, base, target), nil
}

func (l *Listing) collect(doc *goquery.Document, base *url.URL, target time.Time) []string {
	var out []string
	seen := map[string]struct{}{}
	entries := doc.Find("article")
	entries.Each(func(i int, s *goquery.Selection) {
		stamp, ok := s.Find("time[datetime]").First().Attr("datetime")
		if !ok {
			return
		}
		published, err := parser.ParseTimestamp(stamp)
		if err != nil {
			l.log.Debugf("listing entry %d: bad datetime %q: %v", i, stamp, err)
			return
		}
		if !SameDay(published, target) {
			return
		}
		href := strings.TrimSpace(s.Find("a[href]").First().AttrOr("href", ""))
		if href == "" {
			return
		}
		link, err := base.Parse(href)
		if err != nil {
			return
		}
		u := link.String()
		if _, dup := seen[u]; dup {
			return
		}
		seen[u] = struct{}{}
		out = append(out, u)
	})
	l.log.Infof("listing: %d of %d entries published on %s", len(out), entries.Length(), target.Format(time.DateOnly))
	return out
}

// SameDay compares calendar dates, each in its own location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
