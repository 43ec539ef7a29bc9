
package models

import "time"

// Metadata maps lowercase <meta> keys (name, property, itemprop) to their content.
type Metadata map[string]string

// Lookup reports the value stored at key and whether the key was present.
func (m Metadata) Lookup(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m[key]
	return v, ok
}

// Page is the parsed form of a single downloaded article page.
type Page struct {
	Title     string    `json:"title,omitempty"`
	Published time.Time `json:"published,omitempty"`
	Body      string    `json:"body,omitempty"`
	Meta      Metadata  `json:"meta,omitempty"`
	RawHTML   string    `json:"-"`
}

// ArticleRecord is one output row. Author and Category are empty when
// they could not be resolved.
type ArticleRecord struct {
	Title    string    `json:"title"`
	Date     time.Time `json:"date"`
	Author   string    `json:"author,omitempty"`
	Body     string    `json:"body"`
	Link     string    `json:"link"`
	Category string    `json:"category,omitempty"`
}
