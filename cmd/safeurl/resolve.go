package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/selimozcann/safeurl/internal/output"
)

// NewResolveCmd creates the resolve command.
func NewResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <url>",
		Short: "Follow the redirect chain of a URL",
		Long: `Resolve issues HEAD requests hop by hop, without running any safety rule,
and prints every intermediate URL with its status code.`,
		Args: cobra.ExactArgs(1),
		RunE: runResolveCmd,
	}
	addNetworkFlags(cmd)
	cmd.Flags().BoolP("json", "j", false, "Print the resolution as JSON")
	return cmd
}

func runResolveCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signalContext(cmd)
	defer stop()
	res := a.newResolver().Resolve(ctx, args[0])

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	output.NewPrinter(cmd.OutOrStdout(), a.noColor).PrintResolution(res)
	return nil
}
