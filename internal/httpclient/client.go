package httpclient

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// DefaultUserAgent identifies outbound requests.
const DefaultUserAgent = "SafeUrl/1.0 (URL Safety Checker)"

// Config holds settings for the HTTP client.
type Config struct {
	Timeout   time.Duration
	UserAgent string
	Proxy     func(*http.Request) (*url.URL, error)
	Headers   http.Header
	Insecure  bool
	// RateLimit caps outbound requests per second, 0 = unlimited.
	RateLimit float64
}

// headerRoundTripper wraps a base RoundTripper to inject headers and the
// user agent, and to throttle requests when a limiter is configured.
type headerRoundTripper struct {
	base      http.RoundTripper
	headers   http.Header
	userAgent string
	limiter   *rate.Limiter
}

func (h *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if h.base == nil {
		h.base = http.DefaultTransport
	}
	if h.limiter != nil {
		if err := h.limiter.Wait(req.Context()); err != nil {
			ctx := req.Context()
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// Wait fails early when the next token would arrive after the deadline.
			if _, ok := ctx.Deadline(); ok {
				return nil, fmt.Errorf("%w: %w", ErrTimeout, err)
			}
			return nil, err
		}
	}

	r := req.Clone(req.Context())
	for k, vs := range h.headers {
		r.Header.Del(k)
		for _, v := range vs {
			r.Header.Add(k, v)
		}
	}
	if h.userAgent != "" {
		r.Header.Set("User-Agent", h.userAgent)
	}
	return h.base.RoundTrip(r)
}

// New returns a configured HTTP client with manual redirect handling.
func New(cfg Config) *http.Client {
	transport := &http.Transport{
		Proxy:           cfg.Proxy,
		TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.Insecure}, //nolint:gosec // opt-in via --insecure
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2: true,
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &http.Client{
		Transport: &headerRoundTripper{
			base:      transport,
			headers:   cfg.Headers,
			userAgent: userAgent,
			limiter:   limiter,
		},
		Timeout: cfg.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// prevent automatic redirects
			return http.ErrUseLastResponse
		},
	}
}
