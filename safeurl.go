// Package safeurl resolves the redirect chain of a URL and judges how safe
// its destination looks.
//
// A Client couples a redirect resolver with a rule engine:
//
//	client, err := safeurl.NewClient(safeurl.WithMaxRedirects(5))
//	if err != nil {
//		return err
//	}
//	a := client.Analyze(ctx, "https://bit.ly/example")
//	fmt.Println(a.FinalURL(), a.Evaluation.Score, a.Evaluation.Status)
//
// Failures are reported on the returned values, never as Go errors. The only
// error surfaced by the API is ErrDuplicateRule from AddRule.
package safeurl

import (
	"context"
	"log/slog"

	"github.com/selimozcann/safeurl/internal/analyzer"
	"github.com/selimozcann/safeurl/internal/engine"
	"github.com/selimozcann/safeurl/internal/model"
	"github.com/selimozcann/safeurl/internal/resolver"
	"github.com/selimozcann/safeurl/internal/rule"
)

// Result types.
type (
	Hop        = model.Hop
	Resolution = model.Resolution
	Finding    = model.Finding
	Evaluation = model.Evaluation
	Analysis   = model.Analysis
	Severity   = model.Severity
	Status     = model.Status
	Rule       = rule.Rule
	Transport  = resolver.Transport
)

// Severity and status values.
const (
	SeverityInfo     = model.SeverityInfo
	SeverityLow      = model.SeverityLow
	SeverityMedium   = model.SeverityMedium
	SeverityHigh     = model.SeverityHigh
	SeverityCritical = model.SeverityCritical

	StatusUnknown    = model.StatusUnknown
	StatusSafe       = model.StatusSafe
	StatusSuspicious = model.StatusSuspicious
	StatusUnsafe     = model.StatusUnsafe
	StatusMalicious  = model.StatusMalicious
)

// ErrDuplicateRule is returned when a rule id is registered twice.
var ErrDuplicateRule = engine.ErrDuplicateRule

// Client resolves and evaluates URLs. Configure it before sharing it between
// goroutines; Analyze, Resolve and Evaluate are safe for concurrent use once
// no more rules are added or removed.
type Client struct {
	resolver *resolver.Resolver
	engine   *engine.Engine
	analyzer *analyzer.Analyzer
	logger   *slog.Logger
}

// NewClient builds a Client. Without options it follows up to 10 redirects
// with a 10 second per-request timeout and registers the four built-in rules.
func NewClient(opts ...Option) (*Client, error) {
	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	res := resolver.New(cfg.transport(), cfg.resolver, cfg.logger)

	eng := engine.New(cfg.logger)
	if cfg.defaultRules {
		for _, r := range rule.Default() {
			if err := eng.AddRule(r); err != nil {
				return nil, err
			}
		}
	}
	for _, r := range cfg.rules {
		if err := eng.AddRule(r); err != nil {
			return nil, err
		}
	}

	return &Client{
		resolver: res,
		engine:   eng,
		analyzer: analyzer.New(res, eng, cfg.logger),
		logger:   cfg.logger,
	}, nil
}

// Analyze resolves rawURL and evaluates the URL it lands on.
func (c *Client) Analyze(ctx context.Context, rawURL string) Analysis {
	return c.analyzer.Analyze(ctx, rawURL)
}

// Resolve follows the redirects of rawURL.
func (c *Client) Resolve(ctx context.Context, rawURL string) Resolution {
	return c.resolver.Resolve(ctx, rawURL)
}

// Evaluate runs the registered rules against rawURL without any network
// access.
func (c *Client) Evaluate(ctx context.Context, rawURL string) Evaluation {
	return c.engine.Evaluate(ctx, rawURL)
}

// AddRule registers r after the existing rules.
func (c *Client) AddRule(r Rule) error { return c.engine.AddRule(r) }

// RemoveRule unregisters the rule with the given id.
func (c *Client) RemoveRule(id string) bool { return c.engine.RemoveRule(id) }

// Rules returns the registered rules in evaluation order.
func (c *Client) Rules() []Rule { return c.engine.Rules() }
