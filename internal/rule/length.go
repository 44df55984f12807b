package rule

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/selimozcann/safeurl/internal/model"
)

// URLLengthID identifies the URL length rule.
const URLLengthID = "URL_LENGTH"

// Default URL length thresholds, in characters.
const (
	DefaultMaxLength      = 100
	DefaultCriticalLength = 200
)

// URLLength flags unusually long URLs, which often hide obfuscated payloads.
type URLLength struct {
	MaxLength      int
	CriticalLength int
}

// NewURLLength returns a URLLength rule. Non-positive thresholds fall back to
// the defaults.
func NewURLLength(maxLength, criticalLength int) *URLLength {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	if criticalLength <= 0 {
		criticalLength = DefaultCriticalLength
	}
	return &URLLength{MaxLength: maxLength, CriticalLength: criticalLength}
}

func (r *URLLength) ID() string { return URLLengthID }
func (r *URLLength) Name() string { return "URL Length Check" }
func (r *URLLength) Description() string {
	return "Checks for excessively long URLs that may indicate obfuscation attempts"
}

func (r *URLLength) Check(_ context.Context, rawURL string) ([]model.Finding, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, nil
	}
	n := utf8.RuneCountInString(rawURL)
	switch {
	case n > r.CriticalLength:
		return []model.Finding{finding(URLLengthID, model.SeverityHigh, rawURL,
			"URL is excessively long (%d characters), which may indicate obfuscation", n)}, nil
	case n > r.MaxLength:
		return []model.Finding{finding(URLLengthID, model.SeverityLow, rawURL,
			"URL is unusually long (%d characters)", n)}, nil
	}
	return nil, nil
}
