package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/selimozcann/safeurl/internal/analyzer"
	"github.com/selimozcann/safeurl/internal/model"
	"github.com/selimozcann/safeurl/internal/output"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Resolve a URL and check where it lands",
		Long: `Analyze follows the redirects of a URL and runs the safety rules against the
final URL. When resolution fails the original URL is checked instead.

Examples:
  # Text report
  safeurl analyze https://bit.ly/example

  # Markdown report written to a file
  safeurl analyze -f markdown -o report.md https://bit.ly/example

  # Enable optional rules
  safeurl analyze --rules TOKEN_LEAK,HOMOGRAPH https://bit.ly/example`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyzeCmd,
	}
	addNetworkFlags(cmd)
	addRuleFlags(cmd)
	cmd.Flags().StringP("format", "f", string(output.FormatText),
		"Output format: text, json, jsonl, markdown, html")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to the given file (creates directories if needed)")
	return cmd
}

func runAnalyzeCmd(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(name)
	if err != nil {
		return err
	}
	outPath, _ := cmd.Flags().GetString("output")

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	eng, err := a.newEngine()
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd)
	defer stop()
	result := analyzer.New(a.newResolver(), eng, a.logger).Analyze(ctx, args[0])

	var w io.Writer = cmd.OutOrStdout()
	noColor := a.noColor
	if outPath != "" {
		f, err := createOutput(outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
		noColor = true
	}

	opts := output.Options{NoColor: noColor, Params: a.params()}
	if err := output.Write(w, format, []model.Analysis{result}, opts); err != nil {
		return fmt.Errorf("write %s report: %w", format, err)
	}
	if outPath != "" {
		a.logger.Info("report written", "format", string(format), "path", outPath)
	}
	return nil
}

// params lists the effective settings shown in HTML reports.
func (a *app) params() map[string]string {
	p := map[string]string{
		"max_redirects": strconv.Itoa(a.cfg.MaxRedirects),
		"timeout":       a.cfg.Timeout.String(),
		"user_agent":    a.cfg.UserAgent,
	}
	if a.cfg.Proxy != "" {
		p["proxy"] = a.cfg.Proxy
	}
	if a.cfg.RateLimit > 0 {
		p["rate_limit"] = strconv.FormatFloat(a.cfg.RateLimit, 'f', -1, 64)
	}
	if a.cfg.ThreatList != "" {
		p["threat_list"] = a.cfg.ThreatList
	}
	return p
}
