package rule

import (
	"context"
	"strings"

	"golang.org/x/net/idna"

	"github.com/selimozcann/safeurl/internal/model"
)

// HomographID identifies the homograph rule.
const HomographID = "HOMOGRAPH"

// Homograph flags internationalized hosts, which can imitate well known
// domains with lookalike characters.
type Homograph struct{}

func (r *Homograph) ID() string { return HomographID }
func (r *Homograph) Name() string { return "Homograph Check" }
func (r *Homograph) Description() string {
	return "Checks for internationalized domain names that may imitate other domains"
}

func (r *Homograph) Check(_ context.Context, rawURL string) ([]model.Finding, error) {
	h, ok := host(rawURL)
	if !ok || h == "" {
		return nil, nil
	}

	if !isASCII(h) {
		ascii, err := idna.Lookup.ToASCII(h)
		if err != nil {
			return []model.Finding{finding(HomographID, model.SeverityHigh, rawURL,
				"Domain contains invalid internationalized characters")}, nil
		}
		return []model.Finding{finding(HomographID, model.SeverityMedium, rawURL,
			"Domain uses internationalized characters (punycode: %s)", ascii)}, nil
	}

	for _, label := range strings.Split(h, ".") {
		if strings.HasPrefix(label, "xn--") {
			display, err := idna.Lookup.ToUnicode(h)
			if err != nil {
				display = h
			}
			return []model.Finding{finding(HomographID, model.SeverityMedium, rawURL,
				"Domain is punycode encoded (displays as %s)", display)}, nil
		}
	}
	return nil, nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
