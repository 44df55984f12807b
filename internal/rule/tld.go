package rule

import (
	"context"
	"strings"

	"github.com/selimozcann/safeurl/internal/model"
)

// SuspiciousTLDID identifies the suspicious TLD rule.
const SuspiciousTLDID = "SUSPICIOUS_TLD"

// suspiciousTLDs is checked in order; the first match wins.
var suspiciousTLDs = []string{
	".tk", ".ml", ".ga", ".cf", ".gq", // free TLDs
	".xyz", ".top", ".work", ".click",
	".zip", ".mov", // look like file extensions
}

// SuspiciousTLD flags hosts under top-level domains often abused for malware
// and phishing.
type SuspiciousTLD struct{}

func (r *SuspiciousTLD) ID() string { return SuspiciousTLDID }
func (r *SuspiciousTLD) Name() string { return "Suspicious TLD Check" }
func (r *SuspiciousTLD) Description() string {
	return "Checks for top-level domains commonly associated with malicious sites"
}

func (r *SuspiciousTLD) Check(_ context.Context, rawURL string) ([]model.Finding, error) {
	h, ok := host(rawURL)
	if !ok {
		return nil, nil
	}
	for _, tld := range suspiciousTLDs {
		if strings.HasSuffix(h, tld) {
			return []model.Finding{finding(SuspiciousTLDID, model.SeverityMedium, rawURL,
				"URL uses suspicious TLD '%s' commonly associated with malicious sites", tld)}, nil
		}
	}
	return nil, nil
}
