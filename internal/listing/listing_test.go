package listing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tsn-scraper/internal/crawler"
)

const listingHTML = `<html><body>
<article><a href="/news/today.html">Today</a><time datetime="2023-07-21T10:00:00+00:00">10:00</time></article>
<article><a href="/news/yesterday.html">Yesterday</a><time datetime="2023-07-20T10:00:00+00:00">10:00</time></article>
</body></html>`

func serve(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func client() *crawler.HTTPClient {
	return crawler.NewHTTPClient(5*time.Second, 2*time.Second, 1<<20)
}

func TestArticleURLsFiltersByDate(t *testing.T) {
	ts := serve(t, listingHTML, http.StatusOK)
	target := time.Date(2023, 7, 21, 0, 0, 0, 0, time.UTC)

	urls, err := New(client(), ts.URL+"/", nil).ArticleURLs(context.Background(), target)
	if err != nil {
		t.Fatalf("article urls: %v", err)
	}
	if len(urls) != 1 || urls[0] != ts.URL+"/news/today.html" {
		t.Fatalf("unexpected urls %v", urls)
	}
}

func TestArticleURLsUsesEntryOffset(t *testing.T) {
	// 23:30 on the 20th in UTC-05:00 is already the 21st in UTC; the entry's
	// own offset decides.
	html := `<article><a href="https://tsn.ua/a.html">a</a><time datetime="2023-07-20T23:30:00-05:00"></time></article>
<article><a href="https://tsn.ua/b.html">b</a><time datetime="2023-07-21T00:30:00+03:00"></time></article>`
	ts := serve(t, html, http.StatusOK)
	target := time.Date(2023, 7, 21, 0, 0, 0, 0, time.UTC)

	urls, err := New(client(), ts.URL, nil).ArticleURLs(context.Background(), target)
	if err != nil {
		t.Fatalf("article urls: %v", err)
	}
	if len(urls) != 1 || urls[0] != "https://tsn.ua/b.html" {
		t.Fatalf("unexpected urls %v", urls)
	}
}

func TestArticleURLsSkipsIncompleteEntriesAndDuplicates(t *testing.T) {
	html := `<article><a href="/x.html">no time</a></article>
<article><time datetime="2023-07-21T09:00:00+00:00"></time>no link</article>
<article><a href="/y.html">bad time</a><time datetime="soon"></time></article>
<article><a href="/z.html">z</a><time datetime="2023-07-21T08:00:00+00:00"></time></article>
<article><a href="/z.html">z again</a><time datetime="2023-07-21T09:00:00+00:00"></time></article>`
	ts := serve(t, html, http.StatusOK)
	target := time.Date(2023, 7, 21, 0, 0, 0, 0, time.UTC)

	urls, err := New(client(), ts.URL, nil).ArticleURLs(context.Background(), target)
	if err != nil {
		t.Fatalf("article urls: %v", err)
	}
	if len(urls) != 1 || urls[0] != ts.URL+"/z.html" {
		t.Fatalf("unexpected urls %v", urls)
	}
}

func TestArticleURLsEmptyListing(t *testing.T) {
	ts := serve(t, "<html><body><p>nothing</p></body></html>", http.StatusOK)
	urls, err := New(client(), ts.URL, nil).ArticleURLs(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("article urls: %v", err)
	}
	if len(urls) != 0 {
		t.Fatalf("expected no urls, got %v", urls)
	}
}

func TestArticleURLsFetchFailure(t *testing.T) {
	ts := serve(t, "down", http.StatusServiceUnavailable)
	if _, err := New(client(), ts.URL, nil).ArticleURLs(context.Background(), time.Now()); err == nil {
		t.Fatal("expected listing fetch error")
	}
}

func TestSameDay(t *testing.T) {
	kyiv := time.FixedZone("EEST", 3*3600)
	a := time.Date(2023, 7, 21, 1, 0, 0, 0, kyiv)
	if !SameDay(a, time.Date(2023, 7, 21, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("same calendar date expected")
	}
	if SameDay(a.UTC(), time.Date(2023, 7, 21, 0, 0, 0, 0, time.UTC)) {
		t.Fatal("in UTC the entry falls on the 20th")
	}
}
