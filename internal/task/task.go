// Package task defines the task record and the rules that act on a single
// task: derived state, edits, and recurrence.
//
// A task lives in exactly one logical collection. Its visible state is
// computed from the stored fields on every read:
//
//	active    id > 0, not done, wait date absent or passed
//	waiting   id > 0, wait date in the future
//	done      id < 0, done_at set
//	archived  id < 0, done_at unset
//
// Identifiers are never zero. Active and waiting tasks hold the smallest
// free positive integers; done and archived tasks are pushed below the
// current minimum so the positive range stays short and reusable.
package task

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MaxTitleLength bounds the title in bytes.
const MaxTitleLength = 500

// Task is the single stored entity.
type Task struct {
	ID        int
	Title     string
	DueDate   *time.Time
	WaitDate  *time.Time
	CreatedAt time.Time
	DoneAt    *time.Time
	Context   string
	Recur     *Recurrence
	Shift     bool
	Order     int
}

// State is the externally visible state of a task.
type State string

const (
	StateActive   State = "active"
	StateWaiting  State = "waiting"
	StateDone     State = "done"
	StateArchived State = "archived"
)

// Validate checks the fields that every stored task must satisfy.
func (t *Task) Validate() error {
	if t.ID == 0 {
		return &ValidationError{Field: "id", Msg: "id must not be zero"}
	}
	return ValidateTitle(t.Title)
}

// ValidateTitle rejects empty and oversized titles.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Msg: "title is required"}
	}
	if len(title) > MaxTitleLength {
		return &ValidationError{
			Field: "title",
			Msg:   fmt.Sprintf("title must be %d characters or less (got %d)", MaxTitleLength, len(title)),
		}
	}
	return nil
}

// Done reports whether the task has been completed.
func (t *Task) Done() bool {
	return t.DoneAt != nil
}

// Archived reports whether the task was archived without being completed.
func (t *Task) Archived() bool {
	return t.ID < 0 && t.DoneAt == nil
}

// Recurring reports whether completing the task spawns a next occurrence.
func (t *Task) Recurring() bool {
	return t.Recur != nil
}

// Overdue reports whether the due date has passed.
func (t *Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now)
}

// Waiting reports whether the task is hidden until a future wait date.
func (t *Task) Waiting(now time.Time) bool {
	return t.WaitDate != nil && t.WaitDate.After(now)
}

// Remaining returns the time left until the due date. ok is false when
// the task has no due date.
func (t *Task) Remaining(now time.Time) (d time.Duration, ok bool) {
	if t.DueDate == nil {
		return 0, false
	}
	return t.DueDate.Sub(now), true
}

// State computes the visible state at now.
func (t *Task) State(now time.Time) State {
	switch {
	case t.Done():
		return StateDone
	case t.Archived():
		return StateArchived
	case t.Waiting(now):
		return StateWaiting
	default:
		return StateActive
	}
}

// Clone returns a deep copy of t.
func (t *Task) Clone() *Task {
	c := *t
	c.DueDate = cloneTime(t.DueDate)
	c.WaitDate = cloneTime(t.WaitDate)
	c.DoneAt = cloneTime(t.DoneAt)
	if t.Recur != nil {
		r := *t.Recur
		c.Recur = &r
	}
	return &c
}

func cloneTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Field is one named, printable attribute of a task.
type Field struct {
	Name  string
	Value func(t *Task) string
}

// Fields lists every stored attribute in display order. Keep in sync with
// the Task struct.
var Fields = []Field{
	{"id", func(t *Task) string { return strconv.Itoa(t.ID) }},
	{"title", func(t *Task) string { return t.Title }},
	{"due_date", func(t *Task) string { return FormatOptional(t.DueDate) }},
	{"wait_date", func(t *Task) string { return FormatOptional(t.WaitDate) }},
	{"created_at", func(t *Task) string { return FormatDateTime(t.CreatedAt) }},
	{"done_at", func(t *Task) string { return FormatOptional(t.DoneAt) }},
	{"context", func(t *Task) string { return t.Context }},
	{"recur", func(t *Task) string {
		if t.Recur == nil {
			return ""
		}
		return t.Recur.String()
	}},
	{"shift", func(t *Task) string { return strconv.FormatBool(t.Shift) }},
	{"order", func(t *Task) string { return strconv.Itoa(t.Order) }},
}
