package rule

import (
	"context"

	"github.com/selimozcann/safeurl/internal/model"
	"github.com/selimozcann/safeurl/internal/util"
)

// InternalHostID identifies the internal host rule.
const InternalHostID = "INTERNAL_HOST"

// InternalHost flags URLs that point at loopback, private or link-local
// addresses. A short link landing there is a classic SSRF lure.
type InternalHost struct{}

func (r *InternalHost) ID() string { return InternalHostID }
func (r *InternalHost) Name() string { return "Internal Host Check" }
func (r *InternalHost) Description() string { return "Checks whether the URL points to an internal or loopback host" }

func (r *InternalHost) Check(_ context.Context, rawURL string) ([]model.Finding, error) {
	h, ok := host(rawURL)
	if !ok || h == "" {
		return nil, nil
	}
	if util.IsInternalHost(h) {
		return []model.Finding{finding(InternalHostID, model.SeverityHigh, rawURL, "URL points to an internal host (%s)", h)}, nil
	}
	return nil, nil
}
