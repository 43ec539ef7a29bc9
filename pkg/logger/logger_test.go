
package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput("warn", &buf)
	l.Infof("hidden %d", 1)
	l.Warnf("shown %d", 2)
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "shown 2") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput("verbose", &buf)
	l.Debugf("debug line")
	l.Infof("info line")
	if strings.Contains(buf.String(), "debug line") {
		t.Fatal("debug should be filtered at info level")
	}
	if !strings.Contains(buf.String(), "info line") {
		t.Fatal("info line missing")
	}
}

func TestFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithOutput("info", &buf).WithField("url", "https://example.com/a").WithError(errors.New("boom"))
	l.Errorf("failed")
	out := buf.String()
	if !strings.Contains(out, "url=") || !strings.Contains(out, "error=boom") {
		t.Fatalf("fields missing: %q", out)
	}
}
