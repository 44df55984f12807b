package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/selimozcann/safeurl/internal/rule"
)

// NewRulesCmd creates the rules command.
func NewRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the available safety rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tDEFAULT\tDESCRIPTION")
			for _, r := range rule.Default() {
				fmt.Fprintf(tw, "%s\t%s\tyes\t%s\n", r.ID(), r.Name(), r.Description())
			}
			for _, r := range rule.Optional() {
				fmt.Fprintf(tw, "%s\t%s\tno\t%s\n", r.ID(), r.Name(), r.Description())
			}
			tl := rule.NewThreatList(nil)
			fmt.Fprintf(tw, "%s\t%s\tno\t%s (--threat-list)\n", tl.ID(), tl.Name(), tl.Description())
			return tw.Flush()
		},
	}
}
