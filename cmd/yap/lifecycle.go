package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cenkalti/yap/internal/ui"
)

var doneCmd = &cobra.Command{
	Use:     "done <id...>",
	GroupID: "tasks",
	Short:   "Complete tasks",
	Long: `Complete tasks. A completed task moves to a negative id. A recurring
task is replaced by its next occurrence, which usually keeps the id.`,
	Args: cobra.MinimumNArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string, a *app) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		db, err := a.store(cmd.Context())
		if err != nil {
			return err
		}
		done, err := db.Done(cmd.Context(), ids...)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		for _, c := range done {
			fmt.Fprintf(w, "%s Completed %d %s\n", ui.RenderPass("✓"), c.ID, ui.RenderDim(fmt.Sprintf("(now %d)", c.DoneID)))
			if c.NextID != 0 {
				fmt.Fprintf(w, "  next occurrence: %s\n", ui.RenderAccent(strconv.Itoa(c.NextID)))
			}
		}
		return nil
	}),
}

var undoneCmd = &cobra.Command{
	Use:     "undone <id...>",
	GroupID: "tasks",
	Short:   "Return done or archived tasks to the active list",
	Args:    cobra.MinimumNArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string, a *app) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		db, err := a.store(cmd.Context())
		if err != nil {
			return err
		}
		restored, err := db.Undone(cmd.Context(), ids...)
		if err != nil {
			return err
		}
		printMoves(cmd.OutOrStdout(), "Restored", ids, restored)
		return nil
	}),
}

var deleteCmd = &cobra.Command{
	Use:     "delete <id...>",
	Aliases: []string{"rm"},
	GroupID: "tasks",
	Short:   "Delete tasks permanently",
	Long:    `Delete tasks permanently. Ids that do not exist are ignored.`,
	Args:    cobra.MinimumNArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string, a *app) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		db, err := a.store(cmd.Context())
		if err != nil {
			return err
		}
		n, err := db.Delete(cmd.Context(), ids...)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted %d task(s)\n", ui.RenderPass("✓"), n)
		return nil
	}),
}

var archiveCmd = &cobra.Command{
	Use:     "archive <id...>",
	GroupID: "tasks",
	Short:   "Put tasks aside without completing them",
	Args:    cobra.MinimumNArgs(1),
	RunE: run(func(cmd *cobra.Command, args []string, a *app) error {
		ids, err := parseIDs(args)
		if err != nil {
			return err
		}
		db, err := a.store(cmd.Context())
		if err != nil {
			return err
		}
		return db.Archive(cmd.Context(), ids...)
	}),
}

var waitCmd = &cobra.Command{
	Use:     "wait <date> <id...>",
	GroupID: "tasks",
	Short:   "Hide tasks until a date",
	Long: `Hide tasks until a date. Bare days mean the start of the day. An empty
date makes the tasks visible again.`,
	Example: `  yap wait tomorrow 3 4
  yap wait "" 3`,
	Args: cobra.MinimumNArgs(2),
	RunE: run(func(cmd *cobra.Command, args []string, a *app) error {
		wait, err := a.parser.Wait(args[0])
		if err != nil {
			return err
		}
		ids, err := parseIDs(args[1:])
		if err != nil {
			return err
		}
		db, err := a.store(cmd.Context())
		if err != nil {
			return err
		}
		return db.SetWait(cmd.Context(), wait, ids...)
	}),
}

var postponeCmd = &cobra.Command{
	Use:     "postpone <date> <id...>",
	GroupID: "tasks",
	Short:   "Move the due date of tasks",
	Long: `Move the due date of tasks. Bare days mean the end of the day. An
empty date removes the due date.`,
	Example: `  yap postpone friday 7
  yap postpone P2D 7 8`,
	Args: cobra.MinimumNArgs(2),
	RunE: run(func(cmd *cobra.Command, args []string, a *app) error {
		due, err := a.parser.Due(args[0])
		if err != nil {
			return err
		}
		ids, err := parseIDs(args[1:])
		if err != nil {
			return err
		}
		db, err := a.store(cmd.Context())
		if err != nil {
			return err
		}
		return db.Postpone(cmd.Context(), due, ids...)
	}),
}

func init() {
	rootCmd.AddCommand(doneCmd, undoneCmd, deleteCmd, archiveCmd, waitCmd, postponeCmd)
}

// printMoves reports id changes. from and to are parallel after dedup.
func printMoves(w io.Writer, verb string, from, to []int) {
	seen := make(map[int]bool, len(from))
	i := 0
	for _, id := range from {
		if seen[id] || i >= len(to) {
			continue
		}
		seen[id] = true
		if id == to[i] {
			fmt.Fprintf(w, "%s %d is already active\n", ui.RenderWarn("⚠"), id)
		} else {
			fmt.Fprintf(w, "%s %s %d as %d\n", ui.RenderPass("✓"), verb, id, to[i])
		}
		i++
	}
}
