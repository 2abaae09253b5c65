package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/cenkalti/yap/internal/task"
	"github.com/cenkalti/yap/internal/ui"
)

var editCmd = &cobra.Command{
	Use:     "edit <id>",
	GroupID: "tasks",
	Short:   "Change fields of a task",
	Long: `Change fields of a task. Fields without a flag are left alone; an
empty value clears a date, the recurrence, the context or shift.`,
	Example: `  yap edit 3 --title "renew passport"
  yap edit 3 --due "" --recur ""
  yap edit 3 --shift true`,
	Args: cobra.ExactArgs(1),
	RunE: run(runEdit),
}

var showCmd = &cobra.Command{
	Use:     "show <id>",
	GroupID: "views",
	Short:   "Show every field of a task",
	Args:    cobra.ExactArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string, a *app) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		db, err := a.store(cmd.Context())
		if err != nil {
			return err
		}
		t, err := db.Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		return ui.WriteFields(cmd.OutOrStdout(), showFields(t, db.Now()))
	}),
}

var appendCmd = &cobra.Command{
	Use:     "append <id> <text...>",
	GroupID: "tasks",
	Short:   "Add text to the end of a title",
	Args:    cobra.MinimumNArgs(2),
	RunE: run(func(cmd *cobra.Command, args []string, a *app) error {
		return retitle(cmd, args, a, false)
	}),
}

var prependCmd = &cobra.Command{
	Use:     "prepend <id> <text...>",
	GroupID: "tasks",
	Short:   "Add text to the start of a title",
	Args:    cobra.MinimumNArgs(2),
	RunE: run(func(cmd *cobra.Command, args []string, a *app) error {
		return retitle(cmd, args, a, true)
	}),
}

func init() {
	editCmd.Flags().StringP("title", "t", "", "new title")
	editCmd.Flags().StringP("append", "a", "", "text to add to the end of the title")
	editCmd.Flags().StringP("prepend", "p", "", "text to add to the start of the title")
	editCmd.MarkFlagsMutuallyExclusive("title", "append", "prepend")
	addScheduleFlags(editCmd)
	editCmd.Flags().StringP("shift", "s", "", "schedule the next occurrence from completion time (true or false)")

	rootCmd.AddCommand(editCmd, showCmd, appendCmd, prependCmd)
}

func runEdit(cmd *cobra.Command, args []string, a *app) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	var p task.Patch
	if s, ok := changed(cmd, "title"); ok {
		p.Title = task.Set(strings.TrimSpace(s))
	}
	p.Append, _ = cmd.Flags().GetString("append")
	p.Prepend, _ = cmd.Flags().GetString("prepend")
	if p.DueDate, p.WaitDate, err = a.scheduleUpdates(cmd); err != nil {
		return err
	}
	if p.Recur, err = a.recurUpdate(cmd); err != nil {
		return err
	}
	if p.Shift, err = shiftUpdate(cmd); err != nil {
		return err
	}
	p.Context = contextUpdate(cmd)

	if p.Empty() {
		return &task.ValidationError{Msg: "nothing to change; see 'yap edit --help'"}
	}

	db, err := a.store(cmd.Context())
	if err != nil {
		return err
	}
	return db.Edit(cmd.Context(), id, p)
}

func retitle(cmd *cobra.Command, args []string, a *app, prepend bool) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	text := strings.Join(args[1:], " ")

	db, err := a.store(cmd.Context())
	if err != nil {
		return err
	}
	if prepend {
		return db.Prepend(cmd.Context(), id, text)
	}
	return db.Append(cmd.Context(), id, text)
}
