package rule

import (
	"context"
	"strings"

	"github.com/selimozcann/safeurl/internal/model"
)

// HTTPSID identifies the HTTPS rule.
const HTTPSID = "HTTPS_CHECK"

// HTTPS flags URLs that use plain http.
type HTTPS struct{}

func (r *HTTPS) ID() string { return HTTPSID }
func (r *HTTPS) Name() string { return "HTTPS Check" }
func (r *HTTPS) Description() string { return "Checks if the URL uses secure HTTPS protocol" }

func (r *HTTPS) Check(_ context.Context, rawURL string) ([]model.Finding, error) {
	u, ok := parseAbsolute(rawURL)
	if !ok {
		return nil, nil
	}
	if strings.EqualFold(u.Scheme, "http") {
		return []model.Finding{finding(HTTPSID, model.SeverityMedium, rawURL, "URL uses insecure HTTP instead of HTTPS")}, nil
	}
	return nil, nil
}
