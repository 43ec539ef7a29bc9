package resolver

import (
	"testing"

	"tsn-scraper/internal/models"
)

func ldPage(script string) string {
	return `<html><head><script type="application/ld+json">` + script + `</script></head><body></body></html>`
}

func TestResolveAuthorPriority(t *testing.T) {
	html := ldPage(`{"author": {"name": "From JSON-LD"}}`)
	cases := []struct {
		name string
		meta models.Metadata
		want string
	}{
		{"author beats all", models.Metadata{"author": "A", "byline": "B", "dc.creator": "C", "byl": "D"}, "A"},
		{"byline beats dc.creator", models.Metadata{"byline": "B", "dc.creator": "C", "byl": "D"}, "B"},
		{"dc.creator beats byl", models.Metadata{"dc.creator": "C", "byl": "D"}, "C"},
		{"byl only", models.Metadata{"byl": "By D", "category": "news"}, "By D"},
		{"value kept verbatim", models.Metadata{"author": "  Jane, John "}, "  Jane, John "},
		{"json fragment kept verbatim", models.Metadata{"author": `{"name":"x"}`}, `{"name":"x"}`},
	}
	for _, tc := range cases {
		got, ok := ResolveAuthor(tc.meta, html)
		if !ok || got != tc.want {
			t.Errorf("%s: want %q, got %q (ok=%v)", tc.name, tc.want, got, ok)
		}
	}
}

func TestResolveAuthorEmptyValueStillWins(t *testing.T) {
	got, ok := ResolveAuthor(models.Metadata{"author": ""}, ldPage(`{"author": {"name": "Jane Doe"}}`))
	if !ok || got != "" {
		t.Fatalf("present empty author should win, got %q ok=%v", got, ok)
	}
}

func TestResolveAuthorFromJSONLD(t *testing.T) {
	got, ok := ResolveAuthor(models.Metadata{"category": "x"}, ldPage(`{"author": {"name": "Jane Doe"}}`))
	if !ok || got != "Jane Doe" {
		t.Fatalf("want Jane Doe, got %q ok=%v", got, ok)
	}
}

func TestResolveAuthorUsesFirstJSONLDOnly(t *testing.T) {
	html := `<html><head>
<script type="application/ld+json">{"@type": "WebSite"}</script>
<script type="application/ld+json">{"author": {"name": "Second"}}</script>
</head></html>`
	if got, ok := ResolveAuthor(nil, html); ok {
		t.Fatalf("only the first block is consulted, got %q", got)
	}
}

func TestResolveAuthorAbsent(t *testing.T) {
	cases := map[string]string{
		"truncated json":    ldPage(`{"author": {"name": "Jane`),
		"no script":         `<html><head><title>x</title></head><body><p>text</p></body></html>`,
		"empty script":      ldPage(``),
		"author is string":  ldPage(`{"author": "Jane Doe"}`),
		"author is list":    ldPage(`{"author": [{"name": "Jane Doe"}]}`),
		"name missing":      ldPage(`{"author": {"@type": "Person"}}`),
		"name not a string": ldPage(`{"author": {"name": 42}}`),
		"top-level array":   ldPage(`[{"author": {"name": "Jane Doe"}}]`),
		"other script type": `<script type="text/javascript">{"author": {"name": "Jane Doe"}}</script>`,
		"empty html":        "",
	}
	for name, html := range cases {
		got, ok := ResolveAuthor(models.Metadata{}, html)
		if ok || got != "" {
			t.Errorf("%s: want absent, got %q", name, got)
		}
	}
}

func TestResolveCategoryChain(t *testing.T) {
	cases := []struct {
		meta models.Metadata
		want string
	}{
		{models.Metadata{"category": "C", "news_keywords": "K", "og:section": "O", "article:section": "S"}, "C"},
		{models.Metadata{"news_keywords": "K1, K2", "og:section": "O", "article:section": "S"}, "K1, K2"},
		{models.Metadata{"og:section": "O", "article:section": "S"}, "O"},
		{models.Metadata{"article:section": "S"}, "S"},
	}
	for _, tc := range cases {
		got, ok := ResolveCategory(tc.meta)
		if !ok || got != tc.want {
			t.Errorf("meta %v: want %q, got %q", tc.meta, tc.want, got)
		}
	}
}

func TestResolveCategoryAbsent(t *testing.T) {
	for _, meta := range []models.Metadata{nil, {}, {"author": "A", "section": "not probed"}} {
		if got, ok := ResolveCategory(meta); ok {
			t.Errorf("meta %v: want absent, got %q", meta, got)
		}
	}
}

func TestResolveIdempotent(t *testing.T) {
	meta := models.Metadata{"byl": "B"}
	html := ldPage(`{"author": {"name": "Jane Doe"}}`)
	a1, ok1 := ResolveAuthor(meta, html)
	a2, ok2 := ResolveAuthor(meta, html)
	if a1 != a2 || ok1 != ok2 {
		t.Fatal("author resolution should be stable")
	}
	c1, _ := ResolveCategory(models.Metadata{"og:section": "O"})
	c2, _ := ResolveCategory(models.Metadata{"og:section": "O"})
	if c1 != c2 {
		t.Fatal("category resolution should be stable")
	}
}
