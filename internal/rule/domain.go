package rule

import (
	"context"
	"regexp"
	"strings"

	"github.com/selimozcann/safeurl/internal/model"
)

// SuspiciousDomainID identifies the suspicious domain pattern rule.
const SuspiciousDomainID = "SUSPICIOUS_DOMAIN"

var (
	ipv4Re = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)

	phishingKeywords = []string{"login", "signin", "secure", "account", "verify", "update", "confirm"}

	// Hosts under these domains may legitimately use the keywords above.
	legitDomains = []string{
		"google.com", "microsoft.com", "apple.com", "amazon.com",
		"github.com", "facebook.com", "twitter.com", "linkedin.com",
	}
)

// SuspiciousDomain applies three independent heuristics to the host:
// excessive hyphens, a raw IPv4 address, and phishing keywords outside
// well-known domains.
type SuspiciousDomain struct{}

func (r *SuspiciousDomain) ID() string { return SuspiciousDomainID }
func (r *SuspiciousDomain) Name() string { return "Suspicious Domain Pattern Check" }
func (r *SuspiciousDomain) Description() string {
	return "Checks for domain patterns commonly associated with phishing"
}

func (r *SuspiciousDomain) Check(_ context.Context, rawURL string) ([]model.Finding, error) {
	h, ok := host(rawURL)
	if !ok {
		return nil, nil
	}

	var out []model.Finding
	if n := strings.Count(h, "-"); n >= 3 {
		out = append(out, finding(SuspiciousDomainID, model.SeverityMedium, rawURL,
			"Domain contains %d hyphens, which is common in phishing URLs", n))
	}
	if ipv4Re.MatchString(h) {
		out = append(out, finding(SuspiciousDomainID, model.SeverityHigh, rawURL,
			"URL uses IP address instead of domain name"))
	}
	for _, kw := range phishingKeywords {
		if strings.Contains(h, kw) && !isKnownLegitDomain(h) {
			out = append(out, finding(SuspiciousDomainID, model.SeverityMedium, rawURL,
				"Domain contains '%s' which may indicate a phishing attempt", kw))
			break
		}
	}
	return out, nil
}

// isKnownLegitDomain is a plain suffix match, so "evilgoogle.com" passes too.
func isKnownLegitDomain(h string) bool {
	h = strings.ToLower(h)
	for _, d := range legitDomains {
		if strings.HasSuffix(h, d) {
			return true
		}
	}
	return false
}
