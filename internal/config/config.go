package config

import (
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/selimozcann/safeurl/internal/httpclient"
	"github.com/selimozcann/safeurl/internal/resolver"
	"github.com/selimozcann/safeurl/internal/rule"
)

// AppName is used for XDG directory paths.
const AppName = "safeurl"

// URLLength holds the thresholds of the URL length rule.
type URLLength struct {
	Max      int `yaml:"max"`
	Critical int `yaml:"critical"`
}

// Config holds every option of the resolver, the rule engine and the CLI.
// Values come from defaults, then the config file, then CLI flags.
type Config struct {
	MaxRedirects int           `yaml:"max_redirects"`
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	// Headers are added to every outbound request.
	Headers  map[string]string `yaml:"headers"`
	Proxy    string            `yaml:"proxy"`
	Insecure bool              `yaml:"insecure"`
	// RateLimit is in requests per second; 0 disables throttling.
	RateLimit float64   `yaml:"rate_limit"`
	URLLength URLLength `yaml:"url_length"`
	// Rules lists optional rule ids to register after the built-ins.
	Rules []string `yaml:"rules"`
	// ThreatList is a path to a threat list file; empty disables THREAT_LIST.
	ThreatList string `yaml:"threat_list"`

	Verbose bool `yaml:"-"`
}

// Default returns a Config with stock values.
func Default() *Config {
	return &Config{
		MaxRedirects: resolver.DefaultMaxRedirects,
		Timeout:      resolver.DefaultTimeout,
		UserAgent:    httpclient.DefaultUserAgent,
		URLLength: URLLength{
			Max:      rule.DefaultMaxLength,
			Critical: rule.DefaultCriticalLength,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.MaxRedirects <= 0 {
		return ErrInvalidMaxRedirects
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.URLLength.Max <= 0 || c.URLLength.Critical <= c.URLLength.Max {
		return ErrInvalidLengthThresholds
	}
	if c.RateLimit < 0 {
		return ErrInvalidRateLimit
	}
	if c.Proxy != "" {
		u, err := url.Parse(c.Proxy)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidProxy, c.Proxy)
		}
	}
	return nil
}

// ResolverOptions converts the config into resolver settings.
func (c *Config) ResolverOptions() resolver.Options {
	return resolver.Options{MaxRedirects: c.MaxRedirects, Timeout: c.Timeout, UserAgent: c.UserAgent}
}

// HTTPClientConfig converts the config into transport settings.
// Validate must have succeeded first.
func (c *Config) HTTPClientConfig() httpclient.Config {
	hc := httpclient.Config{
		Timeout:   c.Timeout,
		UserAgent: c.UserAgent,
		Insecure:  c.Insecure,
		RateLimit: c.RateLimit,
	}
	if len(c.Headers) > 0 {
		hc.Headers = make(http.Header, len(c.Headers))
		for k, v := range c.Headers {
			hc.Headers.Set(k, v)
		}
	}
	if c.Proxy != "" {
		if u, err := url.Parse(c.Proxy); err == nil {
			hc.Proxy = func(*http.Request) (*url.URL, error) { return u, nil }
		}
	}
	return hc
}

// ConfigDir returns the XDG configuration directory for safeurl.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
