package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/selimozcann/safeurl/internal/httpclient"
	"github.com/selimozcann/safeurl/internal/log"
	"github.com/selimozcann/safeurl/internal/model"
)

// Failure reasons recorded on model.Resolution.Error.
const (
	ReasonEmptyURL  = "URL cannot be null or empty"
	ReasonTimeout   = "Request timed out"
	ReasonCancelled = "Request was cancelled"
)

// Defaults applied by DefaultOptions.
const (
	DefaultMaxRedirects = 10
	DefaultTimeout      = 10 * time.Second
)

// Transport issues a single request for a URL without following redirects.
type Transport interface {
	Send(ctx context.Context, rawURL string) (httpclient.Response, error)
}

// Options configures a Resolver. They are fixed at construction.
type Options struct {
	// MaxRedirects caps the requests issued per resolution. Values below 1
	// select DefaultMaxRedirects.
	MaxRedirects int
	Timeout      time.Duration
	UserAgent    string
}

// DefaultOptions returns the stock resolver settings.
func DefaultOptions() Options {
	return Options{
		MaxRedirects: DefaultMaxRedirects,
		Timeout:      DefaultTimeout,
		UserAgent:    httpclient.DefaultUserAgent,
	}
}

// Resolver follows HTTP redirects hop by hop.
type Resolver struct {
	transport Transport
	opts      Options
	logger    *slog.Logger
}

// New creates a Resolver. A nil transport is replaced by an httpclient
// transport built from opts; a nil logger discards output.
func New(t Transport, opts Options, logger *slog.Logger) *Resolver {
	if opts.MaxRedirects <= 0 {
		opts.MaxRedirects = DefaultMaxRedirects
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if t == nil {
		t = httpclient.NewTransport(httpclient.Config{Timeout: opts.Timeout, UserAgent: opts.UserAgent})
	}
	logger = log.OrDiscard(logger)
	return &Resolver{transport: t, opts: opts, logger: logger}
}

// Options returns the settings the resolver was built with.
func (r *Resolver) Options() Options { return r.opts }

// Resolve follows redirects starting from target. At most MaxRedirects
// requests are issued; a redirect loop simply consumes the budget.
// Failures never escape as errors: they are reported on the result.
func (r *Resolver) Resolve(ctx context.Context, target string) (res model.Resolution) {
	start := time.Now()
	res = model.Resolution{OriginalURL: target, FinalURL: target}
	defer func() { res.Elapsed = time.Since(start) }()

	if strings.TrimSpace(target) == "" {
		res.Error = ReasonEmptyURL
		return res
	}

	current := target
	defer func() {
		if p := recover(); p != nil {
			res.Succeeded = false
			res.FinalURL = current
			res.Error = fmt.Sprintf("Unexpected error: %v", p)
			r.logger.Warn("resolve panicked", "url", target, "panic", p)
		}
	}()

	for hop := 0; hop < r.opts.MaxRedirects; {
		if err := ctx.Err(); err != nil {
			return r.fail(res, current, err)
		}

		resp, err := r.transport.Send(ctx, current)
		if err != nil {
			return r.fail(res, current, err)
		}
		res.Chain = append(res.Chain, model.Hop{Step: hop, URL: current, StatusCode: resp.StatusCode})
		r.logger.Debug("hop", "step", hop, "url", current, "status", resp.StatusCode)

		if !IsRedirect(resp.StatusCode) || resp.Location == "" {
			break
		}
		next, err := resolveLocation(current, resp.Location)
		if err != nil {
			return r.fail(res, current, err)
		}
		current = next
		hop++
	}

	res.FinalURL = current
	res.Succeeded = true
	return res
}

func (r *Resolver) fail(res model.Resolution, current string, err error) model.Resolution {
	res.FinalURL = current
	res.Succeeded = false
	switch {
	case errors.Is(err, context.Canceled):
		res.Error = ReasonCancelled
	case errors.Is(err, httpclient.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		res.Error = ReasonTimeout
	case errors.Is(err, httpclient.ErrTransport):
		res.Error = "HTTP error: " + err.Error()
	default:
		res.Error = "Unexpected error: " + err.Error()
	}
	r.logger.Warn("resolve failed", "url", current, "hops", len(res.Chain), "error", err)
	return res
}

// IsRedirect reports whether status is one of 301, 302, 303, 307 or 308.
func IsRedirect(status int) bool {
	switch status {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

// resolveLocation resolves an absolute or relative Location against base.
func resolveLocation(base, location string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", base, err)
	}
	l, err := url.Parse(strings.TrimSpace(location))
	if err != nil {
		return "", fmt.Errorf("invalid location %q: %w", location, err)
	}
	return b.ResolveReference(l).String(), nil
}
