
package parser

import (
	"bytes"
	"io"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	readability "github.com/go-shiori/go-readability"
	"golang.org/x/net/html/charset"

	"tsn-scraper/internal/models"
)

type Parser struct{}

func New() *Parser { return &Parser{} }

var whitespaceRe = regexp.MustCompile(`[ \t\f\r]+`)

// keys probed in order for the publish timestamp
var dateKeys = []string{
	"article:published_time",
	"og:published_time",
	"published_time",
	"datepublished",
	"pubdate",
	"publishdate",
	"dc.date",
	"date",
}

// meta attributes that can carry the key, first non-empty wins
var metaKeyAttrs = []string{"name", "property", "itemprop", "http-equiv"}

// Extract parses a downloaded page. pageURL is used to resolve relative
// links inside the readability pass and may be empty.
func (p *Parser) Extract(r io.Reader, contentType, pageURL string) (models.Page, error) {
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, r); err != nil {
		return models.Page{}, err
	}
	data := buf.Bytes()

	enc, _, _ := charset.DetermineEncoding(data, contentType)
	utf8data, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		if !utf8.Valid(data) {
			return models.Page{}, err
		}
		utf8data = data
	}
	raw := string(utf8data)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return models.Page{}, err
	}

	meta := MetaTags(doc)
	page := models.Page{
		Meta:    meta,
		RawHTML: raw,
	}

	article, ok := readArticle(raw, pageURL)

	page.Title = strings.TrimSpace(meta["og:title"])
	if page.Title == "" && ok {
		page.Title = strings.TrimSpace(article.Title)
	}
	if page.Title == "" {
		page.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	if ok {
		page.Body = cleanText(article.TextContent)
	}
	if page.Body == "" {
		page.Body = paragraphText(doc)
	}

	page.Published = publishedAt(doc, meta)
	return page, nil
}

// readArticle runs the readability pass; false means no article could be found
// and callers should fall back to plain paragraph text.
func readArticle(raw, pageURL string) (readability.Article, bool) {
	if strings.TrimSpace(raw) == "" {
		return readability.Article{}, false
	}
	base, err := url.Parse(pageURL)
	if err != nil || base == nil {
		base = &url.URL{}
	}
	article, err := readability.FromReader(strings.NewReader(raw), base)
	if err != nil {
		return readability.Article{}, false
	}
	return article, true
}

// MetaTags collects <meta> key/content pairs with lowercase keys. Tags with
// an empty key or empty content are skipped and the first occurrence wins.
func MetaTags(doc *goquery.Document) models.Metadata {
	meta := models.Metadata{}
	doc.Find("meta").Each(func(i int, s *goquery.Selection) {
		var key string
		for _, attr := range metaKeyAttrs {
			if v := strings.TrimSpace(s.AttrOr(attr, "")); v != "" {
				key = strings.ToLower(v)
				break
			}
		}
		if key == "" {
			return
		}
		value := strings.TrimSpace(s.AttrOr("content", ""))
		if value == "" {
			value = strings.TrimSpace(s.AttrOr("value", ""))
		}
		if value == "" {
			return
		}
		if _, seen := meta[key]; !seen {
			meta[key] = value
		}
	})
	return meta
}

func publishedAt(doc *goquery.Document, meta models.Metadata) time.Time {
	for _, k := range dateKeys {
		if v, ok := meta.Lookup(k); ok {
			if t, err := ParseTimestamp(v); err == nil {
				return t
			}
		}
	}
	if v, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok {
		if t, err := ParseTimestamp(v); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ParseTimestamp accepts RFC 3339 and falls back to dateparse for the
// looser formats publishers put into meta tags.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return dateparse.ParseAny(s)
}

func paragraphText(doc *goquery.Document) string {
	var parts []string
	doc.Find("p").Each(func(i int, s *goquery.Selection) {
		t := strings.TrimSpace(s.Text())
		if t != "" {
			parts = append(parts, t)
		}
	})
	return cleanText(strings.Join(parts, "\n"))
}

// cleanText collapses runs of horizontal whitespace and drops blank lines,
// keeping paragraph breaks.
func cleanText(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(whitespaceRe.ReplaceAllString(line, " "))
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
