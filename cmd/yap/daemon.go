package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cenkalti/yap/internal/ui"
)

var daemonCmd = &cobra.Command{
	Use:     "daemon",
	GroupID: "data",
	Short:   "Due date notifications (not implemented)",
	Args:    cobra.NoArgs,
	Hidden:  true,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Notifications are not implemented\n", ui.RenderWarn("⚠"))
	},
}

var versionCmd = &cobra.Command{
	Use:     "version",
	GroupID: "data",
	Short:   "Print the version",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), Version)
	},
}

func init() {
	rootCmd.AddCommand(daemonCmd, versionCmd)
}
