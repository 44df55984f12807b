package analyzer

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/selimozcann/safeurl/internal/log"
	"github.com/selimozcann/safeurl/internal/model"
)

// Resolver follows the redirects of a URL.
type Resolver interface {
	Resolve(ctx context.Context, rawURL string) model.Resolution
}

// Evaluator runs safety rules against a URL.
type Evaluator interface {
	Evaluate(ctx context.Context, rawURL string) model.Evaluation
}

// Analyzer resolves a URL and evaluates where it leads.
type Analyzer struct {
	resolver  Resolver
	evaluator Evaluator
	logger    *slog.Logger
	newID     func() string
}

// New creates an Analyzer.
func New(r Resolver, e Evaluator, logger *slog.Logger) *Analyzer {
	logger = log.OrDiscard(logger)
	return &Analyzer{resolver: r, evaluator: e, logger: logger, newID: uuid.NewString}
}

// Analyze resolves rawURL and evaluates the final URL. When resolution
// fails the original input is evaluated instead; evaluation always runs.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) model.Analysis {
	res := a.resolver.Resolve(ctx, rawURL)

	target := rawURL
	if res.Succeeded {
		target = res.FinalURL
	} else {
		a.logger.Info("resolution failed, evaluating original url", "url", rawURL, "error", res.Error)
	}

	ev := a.evaluator.Evaluate(ctx, target)
	return model.Analysis{ID: a.newID(), Resolution: res, Evaluation: ev}
}
