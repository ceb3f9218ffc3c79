package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"sketchconsole/pkg/programs"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available programs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range programs.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}
