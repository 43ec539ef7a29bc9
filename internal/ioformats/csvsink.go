
package ioformats

import (
	"encoding/csv"
	"io"
	"time"

	"tsn-scraper/internal/models"
)

var (
	columns      = []string{"Title", "Date", "Author", "Body", "Link", "Category"}
	basicColumns = columns[:5]
)

// CSVWriter writes ArticleRecords as rows under a fixed header. Without the
// category column it produces the five-column layout of the static URL list.
type CSVWriter struct {
	w               *csv.Writer
	includeCategory bool
}

func NewCSVWriter(w io.Writer, includeCategory bool) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w), includeCategory: includeCategory}
}

func (c *CSVWriter) Columns() []string {
	if c.includeCategory {
		return columns
	}
	return basicColumns
}

func (c *CSVWriter) WriteHeader() error {
	return c.w.Write(c.Columns())
}

func (c *CSVWriter) Write(rec models.ArticleRecord) error {
	row := []string{rec.Title, formatDate(rec.Date), rec.Author, rec.Body, rec.Link}
	if c.includeCategory {
		row = append(row, rec.Category)
	}
	return c.w.Write(row)
}

// Flush pushes buffered rows to the underlying writer and reports any write error.
func (c *CSVWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
