package config

import (
	"fmt"
	"strings"

	"github.com/selimozcann/safeurl/internal/rule"
)

// BuildRules returns the rule set described by the config: the built-ins
// with the configured length thresholds, then the optional rules listed in
// Rules, then THREAT_LIST when a threat list path is set. Unknown ids are
// returned separately.
func (c *Config) BuildRules() ([]rule.Rule, []string, error) {
	rules := rule.Default()
	for i, r := range rules {
		if r.ID() == rule.URLLengthID {
			rules[i] = rule.NewURLLength(c.URLLength.Max, c.URLLength.Critical)
		}
	}

	optional, unknown := rule.LoadWithWarnings(strings.Join(c.Rules, ","))
	rules = append(rules, optional...)

	if c.ThreatList != "" {
		tl, err := rule.LoadThreatList(c.ThreatList)
		if err != nil {
			return nil, nil, fmt.Errorf("load threat list: %w", err)
		}
		rules = append(rules, tl)
	}
	return rules, unknown, nil
}
