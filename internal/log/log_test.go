package log

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"
)

func TestRedactURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "noQuery", in: "https://example.com/a", want: "https://example.com/a"},
		{name: "plainQuery", in: "https://example.com/?q=1", want: "https://example.com/?q=1"},
		{name: "token", in: "https://example.com/cb?access_token=abc&q=1", want: "https://example.com/cb?access_token=%5BREDACTED%5D&q=1"},
		{name: "upperKey", in: "https://example.com/?Password=hunter2", want: "https://example.com/?Password=%5BREDACTED%5D"},
		{name: "malformed", in: "http://[::1", want: "http://[::1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RedactURL(tt.in); got != tt.want {
				t.Fatalf("RedactURL(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoggerRedacts(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)
	logger.Debug("hop", "url", "https://example.com/?token=s3cr3t", "api_key", "k-123", "status", 302)

	out := buf.String()
	if strings.Contains(out, "s3cr3t") || strings.Contains(out, "k-123") {
		t.Fatalf("secret leaked into log: %s", out)
	}
	if !strings.Contains(out, "status=302") {
		t.Fatalf("non-sensitive attribute missing: %s", out)
	}
}

func TestRedactText(t *testing.T) {
	in := `Head "https://example.com/cb?token=abc": dial tcp; next https://b.example/?q=1`
	want := `Head "https://example.com/cb?token=%5BREDACTED%5D": dial tcp; next https://b.example/?q=1`
	if got := RedactText(in); got != want {
		t.Fatalf("RedactText = %q, want %q", got, want)
	}
}

func TestLoggerRedactsErrors(t *testing.T) {
	var buf bytes.Buffer
	urlErr := &url.Error{
		Op:  "Head",
		URL: "https://example.com/cb?access_token=s3cret",
		Err: errors.New("dial tcp: connection refused"),
	}
	New(&buf, false).Warn("resolve failed",
		"url", "https://example.com/cb?access_token=s3cret",
		"error", fmt.Errorf("transport error: %w", urlErr))

	out := buf.String()
	if strings.Contains(out, "s3cret") {
		t.Fatalf("secret leaked into log: %s", out)
	}
	if !strings.Contains(out, "connection refused") {
		t.Fatalf("error text missing: %s", out)
	}
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info logged at default level: %s", buf.String())
	}
	New(&buf, false).Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("warn not logged: %s", buf.String())
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Fatalf("expected discard logger")
	}
	l := New(&bytes.Buffer{}, false)
	if OrDiscard(l) != l {
		t.Fatalf("expected logger to be returned unchanged")
	}
}
