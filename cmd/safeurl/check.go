package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/selimozcann/safeurl/internal/output"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <url>",
		Short: "Run the safety rules against a URL without network access",
		Args:  cobra.ExactArgs(1),
		RunE:  runCheckCmd,
	}
	addRuleFlags(cmd)
	cmd.Flags().BoolP("json", "j", false, "Print the evaluation as JSON")
	return cmd
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
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
	ev := eng.Evaluate(ctx, args[0])

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(ev)
	}
	output.NewPrinter(cmd.OutOrStdout(), a.noColor).PrintEvaluation(ev)
	return nil
}
