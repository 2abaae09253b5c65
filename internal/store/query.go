package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/yap/internal/task"
)

// Filter selects one of the list views.
type Filter string

const (
	FilterActive   Filter = "active"
	FilterWaiting  Filter = "waiting"
	FilterDone     Filter = "done"
	FilterArchived Filter = "archived"
)

// ListOptions narrows a list query.
type ListOptions struct {
	Filter Filter
	// Context, when non-empty, keeps only tasks with that context.
	Context string
}

// NextWindow is how close a due date must be for a task to count as next.
const NextWindow = 24 * time.Hour

// List returns the tasks in the requested view, in the view's order.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]*task.Task, error) {
	filter := opts.Filter
	if filter == "" {
		filter = FilterActive
	}
	now := encodeTime(s.Now())

	var (
		where []string
		args  []any
		order string
		limit int
	)
	switch filter {
	case FilterActive:
		where = append(where, "id > 0", "done_at IS NULL", "(wait_date IS NULL OR wait_date <= ?)")
		args = append(args, now)
		order = `due_date IS NULL, due_date, "order" DESC`
	case FilterWaiting:
		where = append(where, "id > 0", "done_at IS NULL", "wait_date > ?")
		args = append(args, now)
		order = "wait_date"
	case FilterDone:
		where = append(where, "done_at IS NOT NULL")
		order = "done_at DESC"
		limit = s.doneLimit
	case FilterArchived:
		where = append(where, "id < 0", "done_at IS NULL")
		order = "created_at DESC"
	default:
		return nil, &task.ValidationError{Field: "filter", Msg: fmt.Sprintf("unknown filter %q", filter)}
	}
	if opts.Context != "" {
		where = append(where, "context = ?")
		args = append(args, opts.Context)
	}

	query := "SELECT " + taskColumns + " FROM task WHERE " + strings.Join(where, " AND ") + " ORDER BY " + order + ", id"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	var tasks []*task.Task
	err := s.inTx(ctx, func(tx *txn) error {
		rows, err := tx.query(ctx, query, args...)
		if err != nil {
			return storeErr("list tasks", err)
		}
		defer rows.Close()
		tasks, err = s.scanTasks(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// IsNext reports whether t is urgent enough for the next view: it has a
// due date less than NextWindow away, or already past. Tasks without a
// due date are never next.
func IsNext(t *task.Task, now time.Time) bool {
	remaining, ok := t.Remaining(now)
	return ok && remaining < NextWindow
}

// Next returns the urgent tasks of the active view followed by at most
// filler of the remaining ones, all in active-view order.
func (s *Store) Next(ctx context.Context, label string, filler int) ([]*task.Task, error) {
	active, err := s.List(ctx, ListOptions{Filter: FilterActive, Context: label})
	if err != nil {
		return nil, err
	}

	now := s.Now()
	var urgent, rest []*task.Task
	for _, t := range active {
		if IsNext(t, now) {
			urgent = append(urgent, t)
		} else {
			rest = append(rest, t)
		}
	}
	if filler < 0 {
		filler = 0
	}
	if len(rest) > filler {
		rest = rest[:filler]
	}
	return append(urgent, rest...), nil
}

// All returns every task in id order, regardless of state.
func (s *Store) All(ctx context.Context) ([]*task.Task, error) {
	var tasks []*task.Task
	err := s.inTx(ctx, func(tx *txn) error {
		rows, err := tx.query(ctx, "SELECT "+taskColumns+" FROM task ORDER BY id")
		if err != nil {
			return storeErr("load tasks", err)
		}
		defer rows.Close()
		tasks, err = s.scanTasks(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Insert stores t exactly as given, id and order included. It fails if
// the id is taken.
func (s *Store) Insert(ctx context.Context, t *task.Task) error {
	if err := t.Validate(); err != nil {
		return err
	}
	return s.inTx(ctx, func(tx *txn) error {
		return insertTask(ctx, tx, t)
	})
}
