package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for safeurl.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "safeurl",
		Short: "Resolve URL redirects and check the destination for safety issues",
		Long: `safeurl follows the redirect chain of a URL with HEAD requests and runs a
set of safety rules against the URL it lands on. Each rule may raise findings
that lower a score of 100; the score and the worst severity decide whether
the URL is safe, suspicious, unsafe or malicious.

Configuration is read from --config, ./.safeurl.yaml or
$XDG_CONFIG_HOME/safeurl/config.yaml, in that order. Flags override it.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringP("config", "c", "", "Configuration file path")
	pf.BoolP("verbose", "v", false, "Enable debug logging")
	pf.Bool("no-banner", false, "Do not print the banner")
	pf.Bool("no-color", false, "Disable coloured output")

	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewResolveCmd())
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewRulesCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
