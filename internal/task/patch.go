package task

import (
	"strings"
	"time"
)

type updateKind uint8

const (
	updateKeep updateKind = iota
	updateSet
	updateClear
)

// Update is an edit request for one optional field: leave it alone, set
// it to a value, or clear it. The zero value leaves the field unchanged.
type Update[T any] struct {
	kind  updateKind
	value T
}

// Set requests the field be set to v.
func Set[T any](v T) Update[T] {
	return Update[T]{kind: updateSet, value: v}
}

// Clear requests the field be unset.
func Clear[T any]() Update[T] {
	return Update[T]{kind: updateClear}
}

// Provided reports whether the update changes anything.
func (u Update[T]) Provided() bool { return u.kind != updateKeep }

// Cleared reports whether the update unsets the field.
func (u Update[T]) Cleared() bool { return u.kind == updateClear }

// Value returns the value to set and whether one was given.
func (u Update[T]) Value() (T, bool) {
	return u.value, u.kind == updateSet
}

func applyPtr[T any](dst **T, u Update[T]) {
	switch u.kind {
	case updateSet:
		v := u.value
		*dst = &v
	case updateClear:
		*dst = nil
	}
}

// Patch describes an edit of one task. At most one of Title, Append and
// Prepend may be used.
type Patch struct {
	Title    Update[string]
	Append   string
	Prepend  string
	DueDate  Update[time.Time]
	WaitDate Update[time.Time]
	Context  Update[string]
	Recur    Update[Recurrence]
	Shift    Update[bool]
}

// Empty reports whether the patch changes nothing.
func (p *Patch) Empty() bool {
	return !p.Title.Provided() && p.Append == "" && p.Prepend == "" &&
		!p.DueDate.Provided() && !p.WaitDate.Provided() && !p.Context.Provided() &&
		!p.Recur.Provided() && !p.Shift.Provided()
}

// Validate checks the patch on its own, before any task is loaded.
func (p *Patch) Validate() error {
	n := 0
	if p.Title.Provided() {
		n++
	}
	if p.Append != "" {
		n++
	}
	if p.Prepend != "" {
		n++
	}
	if n > 1 {
		return &ValidationError{Field: "title", Msg: "title, append and prepend are mutually exclusive"}
	}
	if p.Title.Cleared() {
		return &ValidationError{Field: "title", Msg: "title is required"}
	}
	if v, ok := p.Title.Value(); ok {
		return ValidateTitle(v)
	}
	return nil
}

// Apply mutates t according to the patch.
func (p *Patch) Apply(t *Task) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if v, ok := p.Title.Value(); ok {
		t.Title = v
	}
	if p.Append != "" {
		t.Title = JoinTitle(t.Title, p.Append)
	}
	if p.Prepend != "" {
		t.Title = JoinTitle(p.Prepend, t.Title)
	}
	applyPtr(&t.DueDate, p.DueDate)
	applyPtr(&t.WaitDate, p.WaitDate)
	applyPtr(&t.Recur, p.Recur)
	switch {
	case p.Context.Cleared():
		t.Context = ""
	case p.Context.Provided():
		t.Context, _ = p.Context.Value()
	}
	switch {
	case p.Shift.Cleared():
		t.Shift = false
	case p.Shift.Provided():
		t.Shift, _ = p.Shift.Value()
	}
	if err := ValidateTitle(t.Title); err != nil {
		return err
	}
	return ValidateSchedule(t)
}

// ValidateSchedule rejects a recurrence without a due date to recur from.
func ValidateSchedule(t *Task) error {
	if t.Recur != nil && t.DueDate == nil {
		return &ValidationError{Field: "recur", Msg: "a recurring task needs a due date"}
	}
	return nil
}

// JoinTitle concatenates two title fragments with a single space.
func JoinTitle(a, b string) string {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}
