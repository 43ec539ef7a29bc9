// Package resolver recovers an article's author and category from page
// metadata that different templates fill in inconsistently.
//
// Each field is resolved by an ordered chain of probes; the first probe that
// finds a value wins. Missing or malformed data never produces an error, it
// just yields no value.
package resolver

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"tsn-scraper/internal/models"
)

// AuthorKeys lists the metadata keys checked for the author, highest priority first.
var AuthorKeys = []string{"author", "byline", "dc.creator", "byl"}

// CategoryKeys lists the metadata keys checked for the category, highest priority first.
var CategoryKeys = []string{"category", "news_keywords", "og:section", "article:section"}

type probe func() (string, bool)

func first(probes []probe) (string, bool) {
	for _, p := range probes {
		if v, ok := p(); ok {
			return v, true
		}
	}
	return "", false
}

func keyProbes(meta models.Metadata, keys []string) []probe {
	probes := make([]probe, 0, len(keys))
	for _, k := range keys {
		k := k
		probes = append(probes, func() (string, bool) { return meta.Lookup(k) })
	}
	return probes
}

// ResolveAuthor returns the article author. Metadata keys are tried first,
// values are returned verbatim. Then the first JSON-LD block is consulted
// for author.name.
func ResolveAuthor(meta models.Metadata, rawHTML string) (string, bool) {
	probes := keyProbes(meta, AuthorKeys)
	probes = append(probes, func() (string, bool) { return jsonLDAuthor(rawHTML) })
	return first(probes)
}

// ResolveCategory returns the article category from metadata only.
func ResolveCategory(meta models.Metadata) (string, bool) {
	return first(keyProbes(meta, CategoryKeys))
}

// jsonLDAuthor reads author.name from the first application/ld+json script.
// Invalid JSON or any other shape counts as not found.
func jsonLDAuthor(rawHTML string) (string, bool) {
	if strings.TrimSpace(rawHTML) == "" {
		return "", false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return "", false
	}
	script := doc.Find(`script[type="application/ld+json"]`).First()
	if script.Length() == 0 {
		return "", false
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(script.Text()), &data); err != nil {
		return "", false
	}
	author, ok := data["author"].(map[string]any)
	if !ok {
		return "", false
	}
	name, ok := author["name"].(string)
	return name, ok
}
