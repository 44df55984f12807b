package config

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.MaxRedirects != 10 || cfg.Timeout != 10*time.Second {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.URLLength.Max != 100 || cfg.URLLength.Critical != 200 {
		t.Fatalf("unexpected length defaults %+v", cfg.URLLength)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{name: "zeroRedirects", mutate: func(c *Config) { c.MaxRedirects = 0 }, want: ErrInvalidMaxRedirects},
		{name: "negativeTimeout", mutate: func(c *Config) { c.Timeout = -time.Second }, want: ErrInvalidTimeout},
		{name: "criticalBelowMax", mutate: func(c *Config) { c.URLLength.Critical = 50 }, want: ErrInvalidLengthThresholds},
		{name: "zeroMax", mutate: func(c *Config) { c.URLLength.Max = 0 }, want: ErrInvalidLengthThresholds},
		{name: "negativeRate", mutate: func(c *Config) { c.RateLimit = -1 }, want: ErrInvalidRateLimit},
		{name: "badProxy", mutate: func(c *Config) { c.Proxy = "not a proxy" }, want: ErrInvalidProxy},
		{name: "goodProxy", mutate: func(c *Config) { c.Proxy = "http://127.0.0.1:8080" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `max_redirects: 4
timeout: 3s
user_agent: tester/1.0
headers:
  Cookie: a=b
rate_limit: 2.5
url_length:
  max: 60
  critical: 120
rules:
  - TOKEN_LEAK
threat_list: /tmp/list.txt
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.MaxRedirects != 4 || cfg.Timeout != 3*time.Second || cfg.UserAgent != "tester/1.0" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.RateLimit != 2.5 || cfg.URLLength.Max != 60 || cfg.URLLength.Critical != 120 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Headers["Cookie"] != "a=b" {
		t.Fatalf("headers = %v", cfg.Headers)
	}
	if len(cfg.Rules) != 1 || cfg.Rules[0] != "TOKEN_LEAK" || cfg.ThreatList != "/tmp/list.txt" {
		t.Fatalf("unexpected rules %+v", cfg)
	}
}

func TestLoadFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("insecure: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !cfg.Insecure || cfg.MaxRedirects != 10 || cfg.UserAgent == "" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("max_redirects: [\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(bad); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	explicit := filepath.Join(dir, "explicit.yaml")
	if err := os.WriteFile(explicit, []byte("{}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := FindConfigFile(explicit); got != explicit {
		t.Fatalf("explicit path = %q", got)
	}
	if got := FindConfigFile(filepath.Join(dir, "nope.yaml")); got != "" {
		t.Fatalf("missing explicit path returned %q", got)
	}

	if err := os.WriteFile(filepath.Join(dir, LocalConfigFile), []byte("{}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := FindConfigFile(""); filepath.Base(got) != LocalConfigFile {
		t.Fatalf("local lookup = %q", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("expected ErrConfigNotFound, got %v", err)
	}
}

func TestHTTPClientConfig(t *testing.T) {
	cfg := Default()
	cfg.Proxy = "http://127.0.0.1:3128"
	cfg.Insecure = true
	cfg.RateLimit = 5
	cfg.Headers = map[string]string{"x-probe": "1"}

	hc := cfg.HTTPClientConfig()
	if !hc.Insecure || hc.RateLimit != 5 || hc.Timeout != cfg.Timeout || hc.UserAgent != cfg.UserAgent {
		t.Fatalf("unexpected client config %+v", hc)
	}
	if hc.Headers.Get("X-Probe") != "1" {
		t.Fatalf("headers not converted: %v", hc.Headers)
	}
	if hc.Proxy == nil {
		t.Fatalf("proxy not configured")
	}
	u, err := hc.Proxy(&http.Request{})
	if err != nil || u.Host != "127.0.0.1:3128" {
		t.Fatalf("proxy = %v, %v", u, err)
	}

	opts := cfg.ResolverOptions()
	if opts.MaxRedirects != cfg.MaxRedirects || opts.Timeout != cfg.Timeout {
		t.Fatalf("unexpected resolver options %+v", opts)
	}
}

func TestBuildRules(t *testing.T) {
	dir := t.TempDir()
	list := filepath.Join(dir, "threats.txt")
	if err := os.WriteFile(list, []byte("evil.example\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	cfg.URLLength = URLLength{Max: 10, Critical: 20}
	cfg.Rules = []string{"token_leak", "nope"}
	cfg.ThreatList = list

	rules, unknown, err := cfg.BuildRules()
	if err != nil {
		t.Fatalf("BuildRules: %v", err)
	}
	var ids []string
	for _, r := range rules {
		ids = append(ids, r.ID())
	}
	want := "HTTPS_CHECK,SUSPICIOUS_TLD,URL_LENGTH,SUSPICIOUS_DOMAIN,TOKEN_LEAK,THREAT_LIST"
	if got := strings.Join(ids, ","); got != want {
		t.Fatalf("rules = %s, want %s", got, want)
	}
	if len(unknown) != 1 || unknown[0] != "NOPE" {
		t.Fatalf("unknown = %v", unknown)
	}

	findings, err := rules[2].Check(context.Background(), "https://a.io/xyz")
	if err != nil || len(findings) != 1 {
		t.Fatalf("length thresholds not applied: %v %v", findings, err)
	}

	cfg.ThreatList = filepath.Join(dir, "missing.txt")
	if _, _, err := cfg.BuildRules(); err == nil {
		t.Fatalf("expected error for missing threat list")
	}
}
