package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/yap/internal/task"
)

// Add creates a task and returns its id. The id is the smallest free
// positive integer and the order is one past the highest in use. Only
// Title, DueDate, WaitDate, Context, Recur and Shift are read from t.
func (s *Store) Add(ctx context.Context, t *task.Task) (int, error) {
	n := &task.Task{
		Title:     strings.TrimSpace(t.Title),
		DueDate:   t.DueDate,
		WaitDate:  t.WaitDate,
		CreatedAt: s.Now(),
		Context:   strings.TrimSpace(t.Context),
		Recur:     t.Recur,
		Shift:     t.Shift,
	}
	if err := task.ValidateTitle(n.Title); err != nil {
		return 0, err
	}
	if err := task.ValidateSchedule(n); err != nil {
		return 0, err
	}

	err := s.inTx(ctx, func(tx *txn) error {
		return s.create(ctx, tx, n)
	})
	if err != nil {
		return 0, err
	}
	return n.ID, nil
}

// create assigns id and order to t and inserts it.
func (s *Store) create(ctx context.Context, tx *txn, t *task.Task) error {
	id, err := nextID(ctx, tx)
	if err != nil {
		return err
	}
	order, err := nextOrder(ctx, tx)
	if err != nil {
		return err
	}
	t.ID = id
	t.Order = order
	return insertTask(ctx, tx, t)
}

// Get returns the task with the given id.
func (s *Store) Get(ctx context.Context, id int) (*task.Task, error) {
	var t *task.Task
	err := s.inTx(ctx, func(tx *txn) error {
		var err error
		t, err = s.get(ctx, tx, id)
		return err
	})
	return t, err
}

// Edit applies p to the task with the given id.
func (s *Store) Edit(ctx context.Context, id int, p task.Patch) error {
	return s.EditMany(ctx, p, id)
}

// EditMany applies p to every listed task, or to none if any is missing
// or the patch is rejected for any of them.
func (s *Store) EditMany(ctx context.Context, p task.Patch, ids ...int) error {
	if err := p.Validate(); err != nil {
		return err
	}
	ids = uniqueIDs(ids)

	return s.inTx(ctx, func(tx *txn) error {
		tasks, err := s.getAll(ctx, tx, ids)
		if err != nil {
			return err
		}
		for _, t := range tasks {
			if err := p.Apply(t); err != nil {
				return fmt.Errorf("task %d: %w", t.ID, err)
			}
			if err := updateTask(ctx, tx, t.ID, t); err != nil {
				return err
			}
		}
		return nil
	})
}

// Append adds text to the end of a title.
func (s *Store) Append(ctx context.Context, id int, text string) error {
	if strings.TrimSpace(text) == "" {
		return &task.ValidationError{Field: "text", Msg: "text is required"}
	}
	return s.Edit(ctx, id, task.Patch{Append: text})
}

// Prepend adds text to the start of a title.
func (s *Store) Prepend(ctx context.Context, id int, text string) error {
	if strings.TrimSpace(text) == "" {
		return &task.ValidationError{Field: "text", Msg: "text is required"}
	}
	return s.Edit(ctx, id, task.Patch{Prepend: text})
}

// SetWait sets or clears the wait date of every listed task.
func (s *Store) SetWait(ctx context.Context, wait task.Update[time.Time], ids ...int) error {
	return s.EditMany(ctx, task.Patch{WaitDate: wait}, ids...)
}

// Postpone sets or clears the due date of every listed task.
func (s *Store) Postpone(ctx context.Context, due task.Update[time.Time], ids ...int) error {
	return s.EditMany(ctx, task.Patch{DueDate: due}, ids...)
}

// Completion describes one task completed by Done.
type Completion struct {
	// ID is the id the task had before completion.
	ID int
	// DoneID is the negative id the completed task now holds.
	DoneID int
	// NextID is the id of the spawned next occurrence, or 0.
	NextID int
}

// Done completes every listed task. A recurring task is replaced by its
// next occurrence, which usually takes over the freed id.
func (s *Store) Done(ctx context.Context, ids ...int) ([]Completion, error) {
	ids = uniqueIDs(ids)
	var result []Completion

	err := s.inTx(ctx, func(tx *txn) error {
		tasks, err := s.getAll(ctx, tx, ids)
		if err != nil {
			return err
		}
		now := s.Now()
		for _, t := range tasks {
			if t.Done() {
				return &task.ValidationError{Msg: fmt.Sprintf("task %d is already done", t.ID)}
			}

			c := Completion{ID: t.ID}
			next := task.NextOccurrence(t, now)

			c.DoneID, err = nextNegativeID(ctx, tx)
			if err != nil {
				return err
			}
			done := t.Clone()
			done.ID = c.DoneID
			done.DoneAt = &now
			if err := updateTask(ctx, tx, t.ID, done); err != nil {
				return err
			}

			if t.Recurring() {
				if err := s.create(ctx, tx, next); err != nil {
					return err
				}
				c.NextID = next.ID
			}
			result = append(result, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Undone returns done or archived tasks to the active range with fresh
// positive ids. Tasks that are already active are left alone. The new
// ids are returned in input order.
func (s *Store) Undone(ctx context.Context, ids ...int) ([]int, error) {
	ids = uniqueIDs(ids)
	var result []int

	err := s.inTx(ctx, func(tx *txn) error {
		tasks, err := s.getAll(ctx, tx, ids)
		if err != nil {
			return err
		}
		for _, t := range tasks {
			if t.ID > 0 && !t.Done() {
				result = append(result, t.ID)
				continue
			}
			oldID := t.ID
			if t.ID, err = nextID(ctx, tx); err != nil {
				return err
			}
			t.DoneAt = nil
			if err := updateTask(ctx, tx, oldID, t); err != nil {
				return err
			}
			result = append(result, t.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Archive moves tasks to fresh negative ids without completing them.
// Tasks that are already archived keep their id.
func (s *Store) Archive(ctx context.Context, ids ...int) error {
	ids = uniqueIDs(ids)

	return s.inTx(ctx, func(tx *txn) error {
		tasks, err := s.getAll(ctx, tx, ids)
		if err != nil {
			return err
		}
		for _, t := range tasks {
			if t.Archived() {
				continue
			}
			oldID := t.ID
			if t.ID, err = nextNegativeID(ctx, tx); err != nil {
				return err
			}
			if err := updateTask(ctx, tx, oldID, t); err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the listed tasks. Missing ids are ignored. It returns
// the number of tasks removed.
func (s *Store) Delete(ctx context.Context, ids ...int) (int, error) {
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return 0, nil
	}

	var n int64
	err := s.inTx(ctx, func(tx *txn) error {
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
		args := make([]any, len(ids))
		for i, id := range ids {
			args[i] = id
		}
		res, err := tx.exec(ctx, "DELETE FROM task WHERE id IN ("+placeholders+")", args...)
		if err != nil {
			return storeErr("delete tasks", err)
		}
		n, err = res.RowsAffected()
		if err != nil {
			return storeErr("count deleted tasks", err)
		}
		return nil
	})
	return int(n), err
}

// uniqueIDs drops repeats, keeping first occurrences in order.
func uniqueIDs(ids []int) []int {
	seen := make(map[int]bool, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
