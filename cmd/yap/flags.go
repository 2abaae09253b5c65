package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cenkalti/yap/internal/task"
)

// addScheduleFlags registers the date, recurrence and context flags shared
// by add and edit.
func addScheduleFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("due", "d", "", "due date")
	cmd.Flags().StringP("wait", "w", "", "hide the task until this date")
	cmd.Flags().StringP("on", "o", "", "due and wait on the same day")
	cmd.Flags().StringP("recur", "r", "", "repeat every ISO 8601 duration after completion, e.g. P1W")
	cmd.Flags().StringP("context", "c", "", "context label")
	cmd.MarkFlagsMutuallyExclusive("on", "due")
	cmd.MarkFlagsMutuallyExclusive("on", "wait")
}

// changed returns the flag's value and whether it was given.
func changed(cmd *cobra.Command, name string) (string, bool) {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return "", false
	}
	return f.Value.String(), true
}

// scheduleUpdates reads --due, --wait and --on into updates.
func (a *app) scheduleUpdates(cmd *cobra.Command) (due, wait task.Update[time.Time], err error) {
	if s, ok := changed(cmd, "on"); ok {
		day, err := a.parser.On(s)
		if err != nil {
			return due, wait, err
		}
		if v, ok := day.Value(); ok {
			return task.Set(task.EndOfDay(v)), task.Set(task.StartOfDay(v)), nil
		}
		return task.Clear[time.Time](), task.Clear[time.Time](), nil
	}
	if s, ok := changed(cmd, "due"); ok {
		if due, err = a.parser.Due(s); err != nil {
			return due, wait, err
		}
	}
	if s, ok := changed(cmd, "wait"); ok {
		if wait, err = a.parser.Wait(s); err != nil {
			return due, wait, err
		}
	}
	return due, wait, nil
}

// recurUpdate reads --recur.
func (a *app) recurUpdate(cmd *cobra.Command) (task.Update[task.Recurrence], error) {
	s, ok := changed(cmd, "recur")
	if !ok {
		return task.Update[task.Recurrence]{}, nil
	}
	return a.parser.Recur(s)
}

// contextUpdate reads --context. Blank clears.
func contextUpdate(cmd *cobra.Command) task.Update[string] {
	s, ok := changed(cmd, "context")
	if !ok {
		return task.Update[string]{}
	}
	if s = strings.TrimSpace(s); s == "" {
		return task.Clear[string]()
	}
	return task.Set(s)
}

// shiftUpdate reads edit's --shift, where blank clears.
func shiftUpdate(cmd *cobra.Command) (task.Update[bool], error) {
	s, ok := changed(cmd, "shift")
	if !ok {
		return task.Update[bool]{}, nil
	}
	if strings.TrimSpace(s) == "" {
		return task.Clear[bool](), nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return task.Update[bool]{}, &task.ValidationError{Field: "shift", Msg: fmt.Sprintf("%q is not a boolean", s)}
	}
	return task.Set(b), nil
}

// valuePtr returns a pointer to the set value, or nil.
func valuePtr[T any](u task.Update[T]) *T {
	v, ok := u.Value()
	if !ok {
		return nil
	}
	return &v
}

// parseIDs converts command arguments to task ids.
func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id == 0 {
		return 0, &task.ValidationError{Field: "id", Msg: fmt.Sprintf("%q is not a task id", s)}
	}
	return id, nil
}
