package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/selimozcann/safeurl/internal/config"
	"github.com/selimozcann/safeurl/internal/model"
	"github.com/selimozcann/safeurl/internal/output"
	"github.com/selimozcann/safeurl/internal/rule"
)

// writeConfig writes an empty config file so tests never pick up a user's.
func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("timeout: 2s\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func redirectServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/go", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/landing", http.StatusFound)
	})
	mux.HandleFunc("/landing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewRootCmd(t *testing.T) {
	t.Parallel()
	cmd := NewRootCmd()
	if cmd.Use != "safeurl" || cmd.Short == "" || cmd.Version == "" {
		t.Fatalf("unexpected root command %+v", cmd)
	}
	for _, name := range []string{"config", "verbose", "no-banner", "no-color"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag %q", name)
		}
	}
	want := map[string]bool{"analyze": false, "resolve": false, "check": false, "rules": false, "version": false}
	for _, sub := range cmd.Commands() {
		want[sub.Name()] = true
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestAnalyzeJSON(t *testing.T) {
	t.Parallel()
	srv := redirectServer(t)
	stdout, _, err := run(t, "analyze", "--config", writeConfig(t), "--no-banner", "-f", "json", srv.URL+"/go")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var records []output.Record
	if err := json.Unmarshal([]byte(stdout), &records); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	if len(records) != 1 {
		t.Fatalf("expected one record, got %d", len(records))
	}
	rec := records[0]
	if rec.FinalURL != srv.URL+"/landing" || rec.HopCount != 2 || rec.Type != output.RedirectTypeSameDomain {
		t.Fatalf("unexpected record %+v", rec)
	}
	if rec.Score != 55 || rec.Status != model.StatusUnsafe || rec.ID == "" {
		t.Fatalf("unexpected verdict %+v", rec)
	}
}

func TestAnalyzeToFile(t *testing.T) {
	t.Parallel()
	srv := redirectServer(t)
	out := filepath.Join(t.TempDir(), "reports", "report.md")
	stdout, _, err := run(t, "analyze", "--config", writeConfig(t), "--no-banner", "-f", "markdown", "-o", out, srv.URL+"/go")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if stdout != "" {
		t.Fatalf("report leaked to stdout: %s", stdout)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(data), "# SafeUrl Report") {
		t.Fatalf("unexpected report:\n%s", data)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	t.Parallel()
	cfg := writeConfig(t)
	tests := []struct {
		name string
		args []string
		want error
	}{
		{name: "unknownFormat", args: []string{"analyze", "--config", cfg, "-f", "xml", "https://a.example"}, want: output.ErrUnknownFormat},
		{name: "unknownRule", args: []string{"analyze", "--config", cfg, "--no-banner", "--rules", "BOGUS", "https://a.example"}, want: rule.ErrUnknownRule},
		{name: "invalidRedirects", args: []string{"analyze", "--config", cfg, "--no-banner", "--max-redirects", "0", "https://a.example"}, want: config.ErrInvalidMaxRedirects},
		{name: "missingConfig", args: []string{"check", "--config", filepath.Join(t.TempDir(), "nope.yaml"), "https://a.example"}, want: config.ErrConfigNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, _, err := run(t, tt.args...); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
	if _, _, err := run(t, "analyze"); err == nil {
		t.Fatalf("expected error without a URL")
	}
}

func TestCheck(t *testing.T) {
	t.Parallel()
	cfg := writeConfig(t)

	stdout, _, err := run(t, "check", "--config", cfg, "--no-banner", "--json", "http://example.com")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	var ev model.Evaluation
	if err := json.Unmarshal([]byte(stdout), &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Score != 85 || ev.Status != model.StatusSafe || len(ev.Findings) != 1 {
		t.Fatalf("unexpected evaluation %+v", ev)
	}

	stdout, _, err = run(t, "check", "--config", cfg, "--no-banner", "--no-color", "--rules", "token_leak", "https://example.com/?access_token=x")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(stdout, "TOKEN_LEAK") || !strings.Contains(stdout, "Status: safe") {
		t.Fatalf("unexpected output:\n%s", stdout)
	}
}

func TestResolveJSON(t *testing.T) {
	t.Parallel()
	srv := redirectServer(t)
	stdout, stderr, err := run(t, "resolve", "--config", writeConfig(t), "--json", srv.URL+"/go")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	var res model.Resolution
	if err := json.Unmarshal([]byte(stdout), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !res.Succeeded || res.FinalURL != srv.URL+"/landing" || len(res.Chain) != 2 {
		t.Fatalf("unexpected resolution %+v", res)
	}
	if !strings.Contains(stderr, "URL redirect resolver") {
		t.Fatalf("banner not printed to stderr: %q", stderr)
	}
}

func TestRulesCmd(t *testing.T) {
	t.Parallel()
	stdout, _, err := run(t, "rules")
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	for _, id := range []string{"HTTPS_CHECK", "SUSPICIOUS_TLD", "URL_LENGTH", "SUSPICIOUS_DOMAIN", "INTERNAL_HOST", "TOKEN_LEAK", "HOMOGRAPH", "THREAT_LIST"} {
		if !strings.Contains(stdout, id) {
			t.Errorf("rules output missing %s", id)
		}
	}
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()
	stdout, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(stdout, "safeurl version") || !strings.Contains(stdout, "commit:") {
		t.Fatalf("unexpected output %q", stdout)
	}
}

func TestParseHeaders(t *testing.T) {
	t.Parallel()
	got, err := parseHeaders([]string{"Cookie: a=b", "X-Test:1"})
	if err != nil {
		t.Fatalf("parseHeaders: %v", err)
	}
	if got["Cookie"] != "a=b" || got["X-Test"] != "1" {
		t.Fatalf("unexpected headers %v", got)
	}
	for _, bad := range []string{"novalue", ": empty"} {
		if _, err := parseHeaders([]string{bad}); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestApplyFlags(t *testing.T) {
	t.Parallel()
	cmd := NewAnalyzeCmd()
	if err := cmd.Flags().Parse([]string{"--timeout", "3s", "--rules", "HOMOGRAPH", "-H", "X-A: 1", "--rate-limit", "2"}); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.UserAgent = "from-file"
	if err := applyFlags(cmd.Flags(), cfg); err != nil {
		t.Fatalf("applyFlags: %v", err)
	}
	if cfg.Timeout.String() != "3s" || cfg.RateLimit != 2 || cfg.Headers["X-A"] != "1" {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if len(cfg.Rules) != 1 || cfg.Rules[0] != "HOMOGRAPH" {
		t.Fatalf("rules = %v", cfg.Rules)
	}
	if cfg.UserAgent != "from-file" {
		t.Fatalf("unset flag overrode config value: %q", cfg.UserAgent)
	}

	bad := pflag.NewFlagSet("bad", pflag.ContinueOnError)
	bad.StringArrayP("header", "H", nil, "")
	if err := bad.Parse([]string{"-H", "broken"}); err != nil {
		t.Fatal(err)
	}
	if err := applyFlags(bad, config.Default()); err == nil {
		t.Fatalf("expected header parse error")
	}
}
