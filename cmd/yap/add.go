package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cenkalti/yap/internal/task"
)

var addCmd = &cobra.Command{
	Use:     "add <title...>",
	GroupID: "tasks",
	Short:   "Add a new task",
	Long: `Add a new task and print its id.

Without --context the task joins the current context, if one is set.`,
	Example: `  yap add water flowers --due today --recur P3D
  yap add pay rent --on 2026-11-01
  yap add call the bank -d monday -c errands`,
	Args: cobra.MinimumNArgs(1),
	RunE: run(runAdd),
}

func init() {
	addScheduleFlags(addCmd)
	addCmd.Flags().BoolP("shift", "s", false, "schedule the next occurrence from completion time")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string, a *app) error {
	due, wait, err := a.scheduleUpdates(cmd)
	if err != nil {
		return err
	}
	recur, err := a.recurUpdate(cmd)
	if err != nil {
		return err
	}
	shift, _ := cmd.Flags().GetBool("shift")

	label, ok := changed(cmd, "context")
	if !ok {
		if label, _, err = a.ctxFile.Get(); err != nil {
			return err
		}
	}

	db, err := a.store(cmd.Context())
	if err != nil {
		return err
	}
	id, err := db.Add(cmd.Context(), &task.Task{
		Title:    strings.Join(args, " "),
		DueDate:  valuePtr(due),
		WaitDate: valuePtr(wait),
		Context:  label,
		Recur:    valuePtr(recur),
		Shift:    shift,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "id: %d\n", id)
	return nil
}
