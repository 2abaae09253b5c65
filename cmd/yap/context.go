package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var contextCmd = &cobra.Command{
	Use:     "context [name]",
	GroupID: "views",
	Short:   "Show, set or clear the current context",
	Long: `Show, set or clear the current context.

While a context is set, list and next show only tasks in it and new tasks
are added to it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string, a *app) error {
		reset, _ := cmd.Flags().GetBool("clear")
		switch {
		case reset && len(args) > 0:
			return fmt.Errorf("--clear takes no context name")
		case reset:
			return a.ctxFile.Clear()
		case len(args) == 1:
			return a.ctxFile.Set(args[0])
		}

		name, ok, err := a.ctxFile.Get()
		if err != nil {
			return err
		}
		if ok {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}),
}

func init() {
	contextCmd.Flags().Bool("clear", false, "clear the current context")
	rootCmd.AddCommand(contextCmd)
}
