package safeurl

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/selimozcann/safeurl/internal/httpclient"
	"github.com/selimozcann/safeurl/internal/log"
	"github.com/selimozcann/safeurl/internal/resolver"
)

// Option configures a Client.
type Option func(*clientConfig)

type clientConfig struct {
	resolver     resolver.Options
	http         httpclient.Config
	custom       Transport
	logger       *slog.Logger
	defaultRules bool
	rules        []Rule
}

func defaultClientConfig() clientConfig {
	opts := resolver.DefaultOptions()
	return clientConfig{
		resolver:     opts,
		http:         httpclient.Config{Timeout: opts.Timeout, UserAgent: opts.UserAgent},
		logger:       log.Discard(),
		defaultRules: true,
	}
}

func (c *clientConfig) transport() Transport {
	if c.custom != nil {
		return c.custom
	}
	c.http.Timeout = c.resolver.Timeout
	c.http.UserAgent = c.resolver.UserAgent
	return httpclient.NewTransport(c.http)
}

// WithMaxRedirects caps the number of requests issued per resolution.
// Values below 1 keep the default.
func WithMaxRedirects(n int) Option {
	return func(c *clientConfig) {
		if n > 0 {
			c.resolver.MaxRedirects = n
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		if d > 0 {
			c.resolver.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header of outbound requests.
func WithUserAgent(ua string) Option {
	return func(c *clientConfig) {
		if ua != "" {
			c.resolver.UserAgent = ua
		}
	}
}

// WithProxy routes requests through the given proxy URL.
func WithProxy(proxy *url.URL) Option {
	return func(c *clientConfig) {
		if proxy != nil {
			c.http.Proxy = http.ProxyURL(proxy)
		}
	}
}

// WithHeaders adds headers to every outbound request.
func WithHeaders(h http.Header) Option {
	return func(c *clientConfig) {
		c.http.Headers = h.Clone()
	}
}

// WithInsecureTLS disables certificate verification.
func WithInsecureTLS() Option {
	return func(c *clientConfig) {
		c.http.Insecure = true
	}
}

// WithRateLimit throttles outbound requests to rps per second.
func WithRateLimit(rps float64) Option {
	return func(c *clientConfig) {
		c.http.RateLimit = rps
	}
}

// WithTransport replaces the HTTP transport. Transport settings such as
// WithProxy are ignored when it is set.
func WithTransport(t Transport) Option {
	return func(c *clientConfig) {
		c.custom = t
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = log.OrDiscard(l)
	}
}

// WithRules registers extra rules after the built-in ones.
func WithRules(rules ...Rule) Option {
	return func(c *clientConfig) {
		c.rules = append(c.rules, rules...)
	}
}

// WithoutDefaultRules starts the Client with an empty rule registry.
func WithoutDefaultRules() Option {
	return func(c *clientConfig) {
		c.defaultRules = false
	}
}
