package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/cenkalti/yap/internal/store"
	"github.com/cenkalti/yap/internal/task"
	"github.com/cenkalti/yap/internal/ui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	GroupID: "views",
	Short:   "List tasks",
	Long: `List tasks in one of four views.

The default view shows active tasks ordered by due date, then by most
recently added. --waiting shows tasks hidden until a future wait date,
--done the most recently completed tasks and --archived tasks put aside
without completing them.

When a context is set only tasks in that context are listed.`,
	Args: cobra.NoArgs,
	RunE: run(runList),
}

var nextCmd = &cobra.Command{
	Use:     "next",
	GroupID: "views",
	Short:   "Show what needs attention now",
	Long: `Show tasks that are overdue or due within a day, followed by the
first remaining active task. This is the default when yap runs without
a command.`,
	Args: cobra.NoArgs,
	RunE: run(runNext),
}

func init() {
	listCmd.Flags().BoolP("waiting", "w", false, "show waiting tasks")
	listCmd.Flags().BoolP("done", "d", false, "show completed tasks")
	listCmd.Flags().BoolP("archived", "a", false, "show archived tasks")
	listCmd.Flags().StringP("context", "c", "", "only tasks in this context")
	listCmd.MarkFlagsMutuallyExclusive("waiting", "done", "archived")

	nextCmd.Flags().StringP("context", "c", "", "only tasks in this context")

	rootCmd.AddCommand(listCmd, nextCmd)
}

func runList(cmd *cobra.Command, _ []string, a *app) error {
	filter := store.FilterActive
	for _, f := range []store.Filter{store.FilterWaiting, store.FilterDone, store.FilterArchived} {
		if on, _ := cmd.Flags().GetBool(string(f)); on {
			filter = f
		}
	}

	label, err := a.scope(cmd)
	if err != nil {
		return err
	}
	db, err := a.store(cmd.Context())
	if err != nil {
		return err
	}
	tasks, err := db.List(cmd.Context(), store.ListOptions{Filter: filter, Context: label})
	if err != nil {
		return err
	}
	return ui.WriteTable(cmd.OutOrStdout(), tasks, listColumns(filter, label == "", db.Now()))
}

func runNext(cmd *cobra.Command, _ []string, a *app) error {
	label, err := a.scope(cmd)
	if err != nil {
		return err
	}
	db, err := a.store(cmd.Context())
	if err != nil {
		return err
	}
	tasks, err := db.Next(cmd.Context(), label, a.cfg.NextFiller)
	if err != nil {
		return err
	}
	return ui.WriteTable(cmd.OutOrStdout(), tasks, listColumns(store.FilterActive, label == "", db.Now()))
}

// listColumns picks the columns of a view. The context column is shown
// only when the view is not already limited to one context.
func listColumns(filter store.Filter, showContext bool, now time.Time) []ui.Column {
	var cols []ui.Column
	switch filter {
	case store.FilterWaiting:
		cols = []ui.Column{ui.IDColumn(), ui.WaitColumn(), ui.DueColumn(now), ui.TitleColumn()}
	case store.FilterDone:
		cols = []ui.Column{ui.IDColumn(), ui.DoneColumn(), ui.DueColumn(now), ui.TitleColumn()}
	case store.FilterArchived:
		cols = []ui.Column{ui.IDColumn(), ui.CreatedColumn(), ui.TitleColumn()}
	default:
		cols = []ui.Column{ui.IDColumn(), ui.DueColumn(now), ui.TitleColumn()}
		if showContext {
			cols = append(cols, ui.ContextColumn())
		}
	}
	return cols
}

// showFields lists every stored field of t plus its derived state.
func showFields(t *task.Task, now time.Time) []ui.Field {
	fields := make([]ui.Field, 0, len(task.Fields)+1)
	for _, f := range task.Fields {
		fields = append(fields, ui.Field{Name: f.Name, Value: f.Value(t)})
	}
	return append(fields, ui.Field{Name: "state", Value: string(t.State(now))})
}
