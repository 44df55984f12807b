package rule

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/selimozcann/safeurl/internal/model"
)

// ErrUnknownRule is returned when an optional rule id is not recognised.
var ErrUnknownRule = errors.New("unknown rule")

// Rule inspects a single URL and returns zero or more findings.
// Implementations carry only static configuration, so checking the same URL
// twice yields the same findings. Malformed URLs yield no findings.
type Rule interface {
	ID() string
	Name() string
	Description() string
	Check(ctx context.Context, rawURL string) ([]model.Finding, error)
}

// Default returns the built-in rules in registration order.
func Default() []Rule {
	return []Rule{&HTTPS{}, &SuspiciousTLD{}, NewURLLength(0, 0), &SuspiciousDomain{}}
}

// Optional returns one instance of every rule that Lookup can build.
func Optional() []Rule {
	return []Rule{&InternalHost{}, &TokenLeak{}, &Homograph{}}
}

// Lookup builds an optional rule by id. THREAT_LIST needs a source and is
// created with NewThreatList or LoadThreatList instead.
func Lookup(id string) (Rule, error) {
	switch strings.ToUpper(strings.TrimSpace(id)) {
	case InternalHostID:
		return &InternalHost{}, nil
	case TokenLeakID:
		return &TokenLeak{}, nil
	case HomographID:
		return &Homograph{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRule, id)
}

// LoadWithWarnings parses a comma separated list of rule ids and returns the
// rules it knows about plus the ids it could not resolve.
func LoadWithWarnings(list string) ([]Rule, []string) {
	var (
		rules   []Rule
		unknown []string
	)
	seen := make(map[string]bool)
	for _, name := range strings.Split(list, ",") {
		name = strings.ToUpper(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		r, err := Lookup(name)
		if err != nil {
			unknown = append(unknown, name)
			continue
		}
		rules = append(rules, r)
	}
	return rules, unknown
}

// parseAbsolute parses rawURL and requires a scheme.
func parseAbsolute(rawURL string) (*url.URL, bool) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, false
	}
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() {
		return nil, false
	}
	return u, true
}

// host returns the lower-cased host of an absolute URL.
func host(rawURL string) (string, bool) {
	u, ok := parseAbsolute(rawURL)
	if !ok {
		return "", false
	}
	return strings.ToLower(u.Hostname()), true
}

func finding(id string, sev model.Severity, rawURL, format string, args ...any) model.Finding {
	return model.Finding{
		RuleID:      id,
		Description: fmt.Sprintf(format, args...),
		Severity:    sev,
		AffectedURL: rawURL,
	}
}
