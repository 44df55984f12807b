package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/selimozcann/safeurl/internal/banner"
	"github.com/selimozcann/safeurl/internal/config"
	"github.com/selimozcann/safeurl/internal/engine"
	"github.com/selimozcann/safeurl/internal/httpclient"
	"github.com/selimozcann/safeurl/internal/log"
	"github.com/selimozcann/safeurl/internal/resolver"
	"github.com/selimozcann/safeurl/internal/rule"
)

// addNetworkFlags registers the flags that shape outbound requests.
func addNetworkFlags(cmd *cobra.Command) {
	def := config.Default()
	f := cmd.Flags()
	f.Int("max-redirects", def.MaxRedirects, "Maximum number of requests per resolution")
	f.DurationP("timeout", "t", def.Timeout, "Per-request timeout")
	f.String("user-agent", def.UserAgent, "User-Agent header")
	f.StringArrayP("header", "H", nil, `Extra HTTP header "Key: Value" (repeatable)`)
	f.String("proxy", "", "HTTP(S) proxy URL")
	f.Bool("insecure", false, "Skip TLS certificate verification")
	f.Float64("rate-limit", 0, "Maximum requests per second (0 = unlimited)")
}

// addRuleFlags registers the flags that shape the rule set.
func addRuleFlags(cmd *cobra.Command) {
	def := config.Default()
	f := cmd.Flags()
	f.StringSlice("rules", nil, "Optional rules to enable (see 'safeurl rules')")
	f.String("threat-list", "", "Threat list file (YAML or one domain per line)")
	f.Int("max-length", def.URLLength.Max, "URL length that raises a low finding")
	f.Int("critical-length", def.URLLength.Critical, "URL length that raises a high finding")
}

// applyFlags overrides cfg with every flag the user set explicitly.
func applyFlags(f *pflag.FlagSet, cfg *config.Config) error {
	var err error
	f.Visit(func(fl *pflag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "max-redirects":
			cfg.MaxRedirects, err = f.GetInt(fl.Name)
		case "timeout":
			cfg.Timeout, err = f.GetDuration(fl.Name)
		case "user-agent":
			cfg.UserAgent, err = f.GetString(fl.Name)
		case "proxy":
			cfg.Proxy, err = f.GetString(fl.Name)
		case "insecure":
			cfg.Insecure, err = f.GetBool(fl.Name)
		case "rate-limit":
			cfg.RateLimit, err = f.GetFloat64(fl.Name)
		case "threat-list":
			cfg.ThreatList, err = f.GetString(fl.Name)
		case "max-length":
			cfg.URLLength.Max, err = f.GetInt(fl.Name)
		case "critical-length":
			cfg.URLLength.Critical, err = f.GetInt(fl.Name)
		case "rules":
			var ids []string
			ids, err = f.GetStringSlice(fl.Name)
			cfg.Rules = append(cfg.Rules, ids...)
		case "header":
			err = applyHeaders(f, cfg)
		}
	})
	return err
}

func applyHeaders(f *pflag.FlagSet, cfg *config.Config) error {
	raw, err := f.GetStringArray("header")
	if err != nil {
		return err
	}
	hdr, err := parseHeaders(raw)
	if err != nil {
		return err
	}
	if cfg.Headers == nil {
		cfg.Headers = make(map[string]string, len(hdr))
	}
	for k, v := range hdr {
		cfg.Headers[k] = v
	}
	return nil
}

// parseHeaders turns "Key: Value" strings into a map.
func parseHeaders(raw []string) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for _, h := range raw {
		key, value, ok := strings.Cut(h, ":")
		if !ok {
			return nil, fmt.Errorf("invalid header %q (expected Key: Value)", h)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid header %q (empty key)", h)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}

// app holds what every subcommand needs once flags are parsed.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	noColor bool
}

// newApp loads the configuration, applies flags and prints the banner.
func newApp(cmd *cobra.Command) (*app, error) {
	f := cmd.Flags()
	path, _ := f.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := applyFlags(f, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	cfg.Verbose, _ = f.GetBool("verbose")
	noColor, _ := f.GetBool("no-color")
	noBanner, _ := f.GetBool("no-banner")
	if !noBanner {
		banner.Print(cmd.ErrOrStderr(), getVersion())
	}

	logger := log.New(cmd.ErrOrStderr(), cfg.Verbose)
	logger.Debug("configuration loaded", "file", config.FindConfigFile(path),
		"max_redirects", cfg.MaxRedirects, "timeout", cfg.Timeout, "rate_limit", cfg.RateLimit)
	return &app{cfg: cfg, logger: logger, noColor: noColor}, nil
}

func (a *app) newResolver() *resolver.Resolver {
	tr := httpclient.NewTransport(a.cfg.HTTPClientConfig())
	return resolver.New(tr, a.cfg.ResolverOptions(), a.logger)
}

func (a *app) newEngine() (*engine.Engine, error) {
	rules, unknown, err := a.cfg.BuildRules()
	if err != nil {
		return nil, err
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("%w: %s", rule.ErrUnknownRule, strings.Join(unknown, ", "))
	}
	eng := engine.New(a.logger)
	for _, r := range rules {
		if err := eng.AddRule(r); err != nil {
			return nil, err
		}
	}
	return eng, nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
}

// createOutput opens path for writing, creating parent directories.
func createOutput(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := os.Create(path) //nolint:gosec // user supplied output path
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	return f, nil
}
