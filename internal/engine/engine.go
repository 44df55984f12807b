package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/selimozcann/safeurl/internal/log"
	"github.com/selimozcann/safeurl/internal/model"
	"github.com/selimozcann/safeurl/internal/rule"
	"github.com/selimozcann/safeurl/internal/score"
)

// Engine runs an ordered registry of rules against a URL.
//
// The registry is not locked. Add and remove rules during setup, before
// evaluations run concurrently; Evaluate itself only reads the registry.
type Engine struct {
	rules  []rule.Rule
	logger *slog.Logger
	now    func() time.Time
}

// New returns an engine with an empty registry.
func New(logger *slog.Logger) *Engine {
	logger = log.OrDiscard(logger)
	return &Engine{logger: logger, now: time.Now}
}

// NewDefault returns an engine with the built-in rules registered in order:
// HTTPS, suspicious TLD, URL length, suspicious domain.
func NewDefault(logger *slog.Logger) *Engine {
	e := New(logger)
	for _, r := range rule.Default() {
		// ids of the built-ins are unique
		_ = e.AddRule(r)
	}
	return e
}

// AddRule appends r to the registry.
func (e *Engine) AddRule(r rule.Rule) error {
	if r == nil {
		return errors.New("rule must not be nil")
	}
	for _, existing := range e.rules {
		if existing.ID() == r.ID() {
			return fmt.Errorf("%w: rule with ID '%s' already exists", ErrDuplicateRule, r.ID())
		}
	}
	e.rules = append(e.rules, r)
	return nil
}

// RemoveRule removes the first rule with the given id and reports whether
// one was found. The order of the remaining rules is preserved.
func (e *Engine) RemoveRule(id string) bool {
	for i, r := range e.rules {
		if r.ID() == id {
			e.rules = append(e.rules[:i:i], e.rules[i+1:]...)
			return true
		}
	}
	return false
}

// Rules returns a copy of the registry in registration order.
func (e *Engine) Rules() []rule.Rule {
	return append([]rule.Rule(nil), e.rules...)
}

// Evaluate runs every registered rule against rawURL in registration order
// and scores the combined findings. Failures are reported on the result:
// a rule error or panic discards all findings gathered so far.
func (e *Engine) Evaluate(ctx context.Context, rawURL string) model.Evaluation {
	res := model.Evaluation{URL: rawURL, CheckedAt: e.now().UTC(), Status: model.StatusUnknown}
	if strings.TrimSpace(rawURL) == "" {
		res.Error = ReasonEmptyURL
		return res
	}

	var findings []model.Finding
	for _, r := range e.rules {
		if ctx.Err() != nil {
			res.Error = ReasonCancelled
			e.logger.Debug("evaluation cancelled", "url", rawURL, "rule", r.ID())
			return res
		}
		got, err := runRule(ctx, r, rawURL)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				res.Error = ReasonCancelled
				return res
			}
			res.Error = fmt.Sprintf("Error during safety check: %v", err)
			e.logger.Warn("rule failed", "url", rawURL, "rule", r.ID(), "error", err)
			return res
		}
		findings = append(findings, got...)
	}

	res.Findings = findings
	res.Score = score.Score(findings)
	res.Status = score.Status(findings, res.Score)
	res.Succeeded = true
	e.logger.Debug("evaluated", "url", rawURL, "findings", len(findings), "score", res.Score, "status", res.Status)
	return res
}

// runRule calls r.Check, turning a panic into an error.
func runRule(ctx context.Context, r rule.Rule, rawURL string) (findings []model.Finding, err error) {
	defer func() {
		if p := recover(); p != nil {
			findings = nil
			err = fmt.Errorf("rule %s panicked: %v", r.ID(), p)
		}
	}()
	findings, err = r.Check(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("rule %s: %w", r.ID(), err)
	}
	return findings, nil
}
