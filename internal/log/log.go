// Package log builds the slog loggers used across safeurl and masks
// credentials carried in logged URLs.
package log

import (
	"io"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
)

// Mask replaces redacted values.
const Mask = "[REDACTED]"

var embeddedURL = regexp.MustCompile(`[A-Za-z][A-Za-z0-9+.-]*://[^\s"'<>]+`)

var sensitiveKeys = map[string]bool{
	"token":         true,
	"access_token":  true,
	"id_token":      true,
	"refresh_token": true,
	"code":          true,
	"session":       true,
	"sid":           true,
	"bearer":        true,
	"password":      true,
	"passwd":        true,
	"secret":        true,
	"api_key":       true,
	"apikey":        true,
	"authorization": true,
}

// New returns a text logger writing to w. The level is Warn, or Debug when
// verbose is set.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: Redact,
	}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OrDiscard returns l, or a discard logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}

// Redact is a slog ReplaceAttr hook. Attributes with a sensitive key are
// masked entirely. URLs found in string and error values have sensitive
// query parameters masked.
func Redact(_ []string, a slog.Attr) slog.Attr {
	if IsSensitiveKey(a.Key) {
		return slog.String(a.Key, Mask)
	}
	switch a.Value.Kind() {
	case slog.KindString:
		if s := a.Value.String(); strings.Contains(s, "://") {
			return slog.String(a.Key, RedactText(s))
		}
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok && err != nil {
			if s := err.Error(); strings.Contains(s, "://") {
				return slog.String(a.Key, RedactText(s))
			}
		}
	}
	return a
}

// RedactText applies RedactURL to every URL embedded in s.
func RedactText(s string) string {
	return embeddedURL.ReplaceAllStringFunc(s, RedactURL)
}

// IsSensitiveKey reports whether key names a credential.
func IsSensitiveKey(key string) bool {
	return sensitiveKeys[strings.ToLower(key)]
}

// RedactURL masks sensitive query parameters of raw. Unparseable input is
// returned unchanged.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.RawQuery == "" {
		return raw
	}
	q := u.Query()
	changed := false
	for key := range q {
		if IsSensitiveKey(key) {
			q.Set(key, Mask)
			changed = true
		}
	}
	if !changed {
		return raw
	}
	u.RawQuery = q.Encode()
	return u.String()
}
