package rule

import (
	"context"
	"net/url"
	"strings"

	"github.com/selimozcann/safeurl/internal/model"
)

// TokenLeakID identifies the token leak rule.
const TokenLeakID = "TOKEN_LEAK"

var tokenKeys = map[string]bool{
	"token":        true,
	"access_token": true,
	"id_token":     true,
	"code":         true,
	"session":      true,
	"bearer":       true,
}

// TokenLeak detects credentials carried in the query string or fragment.
type TokenLeak struct{}

func (r *TokenLeak) ID() string { return TokenLeakID }
func (r *TokenLeak) Name() string { return "Token Leak Check" }
func (r *TokenLeak) Description() string {
	return "Checks for session or access tokens exposed in the URL"
}

func (r *TokenLeak) Check(_ context.Context, rawURL string) ([]model.Finding, error) {
	u, ok := parseAbsolute(rawURL)
	if !ok {
		return nil, nil
	}
	if key, ok := tokenKey(u.RawQuery); ok {
		return []model.Finding{finding(TokenLeakID, model.SeverityMedium, rawURL, "URL exposes '%s' in query", key)}, nil
	}
	if key, ok := tokenKey(u.EscapedFragment()); ok {
		return []model.Finding{finding(TokenLeakID, model.SeverityHigh, rawURL, "URL exposes '%s' in fragment", key)}, nil
	}
	return nil, nil
}

// tokenKey returns the first credential key in an escaped key=value list.
func tokenKey(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	for _, part := range strings.Split(raw, "&") {
		key, _, _ := strings.Cut(part, "=")
		if k, err := url.QueryUnescape(key); err == nil {
			key = k
		}
		if tokenKeys[strings.ToLower(key)] {
			return key, true
		}
	}
	return "", false
}
