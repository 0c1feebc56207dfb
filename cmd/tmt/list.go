package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available encoders",
	RunE: func(cmd *cobra.Command, args []string) error {
		reversibleOnly, _ := cmd.Flags().GetBool("reversible")

		encoders := registry.List()
		if reversibleOnly {
			encoders = registry.ListReversible()
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tREVERSIBLE\tSETTINGS\tDESCRIPTION")
		for _, enc := range encoders {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				enc.ID(), yesNo(enc.Reversible()), yesNo(enc.HasSettings()), enc.Description())
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().Bool("reversible", false, "Only list reversible encoders")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
