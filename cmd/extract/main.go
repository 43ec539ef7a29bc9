package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"tsn-scraper/internal/article"
	"tsn-scraper/internal/config"
	"tsn-scraper/internal/crawler"
	"tsn-scraper/internal/resolver"
	"tsn-scraper/pkg/logger"
)

// extract runs the article extractor on the URLs given as arguments and
// prints one JSON object per URL, including which keys fed author and category.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: extract URL [URL...]")
		os.Exit(2)
	}

	cfg, err := config.FromEnvironment()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	l := logger.New(cfg.LogLevel)
	client := crawler.NewHTTPClient(cfg.FetchTimeout(), 5*time.Second, cfg.MaxBodyBytes,
		crawler.WithUserAgent(cfg.UserAgent), crawler.WithAccept(cfg.Accept))
	ex := article.New(client, nil, l)

	type outRec struct {
		URL        string            `json:"url"`
		Record     any               `json:"record,omitempty"`
		MetaHits   map[string]string `json:"metaHits,omitempty"`
		Error      string            `json:"error,omitempty"`
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	failed := false
	for _, u := range os.Args[1:] {
		page, err := ex.Page(context.Background(), u)
		if err != nil {
			failed = true
			_ = enc.Encode(outRec{URL: u, Error: err.Error()})
			continue
		}
		seen := map[string]string{}
		for _, k := range append(append([]string{}, resolver.AuthorKeys...), resolver.CategoryKeys...) {
			if v, ok := page.Meta.Lookup(k); ok {
				seen[k] = v
			}
		}
		_ = enc.Encode(outRec{URL: u, Record: article.Record(page, u), MetaHits: seen})
	}
	if failed {
		os.Exit(1)
	}
}
