package task

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)

func ptr(t time.Time) *time.Time { return &t }

func TestTask_State(t *testing.T) {
	tests := []struct {
		name string
		task Task
		want State
	}{
		{
			name: "plain active",
			task: Task{ID: 1, Title: "a"},
			want: StateActive,
		},
		{
			name: "wait date passed",
			task: Task{ID: 1, Title: "a", WaitDate: ptr(now.Add(-time.Hour))},
			want: StateActive,
		},
		{
			name: "wait date in future",
			task: Task{ID: 1, Title: "a", WaitDate: ptr(now.Add(time.Hour))},
			want: StateWaiting,
		},
		{
			name: "done",
			task: Task{ID: -1, Title: "a", DoneAt: ptr(now)},
			want: StateDone,
		},
		{
			name: "archived",
			task: Task{ID: -2, Title: "a"},
			want: StateArchived,
		},
		{
			name: "done wins over waiting",
			task: Task{ID: -1, Title: "a", DoneAt: ptr(now), WaitDate: ptr(now.Add(time.Hour))},
			want: StateDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.task.State(now))
		})
	}
}

func TestTask_DerivedFlags(t *testing.T) {
	overdue := Task{ID: 1, Title: "a", DueDate: ptr(now.Add(-time.Minute))}
	assert.True(t, overdue.Overdue(now))
	rem, ok := overdue.Remaining(now)
	require.True(t, ok)
	assert.Equal(t, -time.Minute, rem)

	noDue := Task{ID: 1, Title: "a"}
	assert.False(t, noDue.Overdue(now))
	_, ok = noDue.Remaining(now)
	assert.False(t, ok)

	recurring := Task{ID: 1, Title: "a", Recur: ptrRecur("P1D")}
	assert.True(t, recurring.Recurring())
	assert.False(t, noDue.Recurring())
}

func TestTask_Validate(t *testing.T) {
	tests := []struct {
		name    string
		task    Task
		wantErr string
	}{
		{name: "valid", task: Task{ID: 3, Title: "water flowers"}},
		{name: "negative id is fine", task: Task{ID: -3, Title: "water flowers"}},
		{name: "zero id", task: Task{Title: "x"}, wantErr: "id must not be zero"},
		{name: "blank title", task: Task{ID: 1, Title: "   "}, wantErr: "title is required"},
		{name: "long title", task: Task{ID: 1, Title: strings.Repeat("x", 501)}, wantErr: "title must be 500 characters or less"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.task.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.Is(err, ErrValidation))
		})
	}
}

func TestTask_Clone(t *testing.T) {
	orig := &Task{ID: 1, Title: "a", DueDate: ptr(now), Recur: ptrRecur("P1D")}
	c := orig.Clone()
	*c.DueDate = now.Add(time.Hour)
	assert.Equal(t, now, *orig.DueDate)
	assert.Equal(t, "P1D", orig.Recur.String())
}

func TestFields_CoverEveryAttribute(t *testing.T) {
	tk := &Task{
		ID:        4,
		Title:     "pay rent",
		DueDate:   ptr(EndOfDay(now.Local())),
		CreatedAt: now,
		Context:   "home",
		Recur:     ptrRecur("P1M"),
		Shift:     true,
		Order:     7,
	}

	got := map[string]string{}
	for _, f := range Fields {
		got[f.Name] = f.Value(tk)
	}

	assert.Equal(t, "4", got["id"])
	assert.Equal(t, "pay rent", got["title"])
	assert.Equal(t, now.Local().Format("2006-01-02"), got["due_date"])
	assert.Equal(t, "", got["wait_date"])
	assert.Equal(t, "", got["done_at"])
	assert.Equal(t, "home", got["context"])
	assert.Equal(t, "P1M", got["recur"])
	assert.Equal(t, "true", got["shift"])
	assert.Equal(t, "7", got["order"])
	assert.Len(t, got, 10)
}

func TestErrors_Is(t *testing.T) {
	assert.ErrorIs(t, &NotFoundError{ID: 9}, ErrTaskNotFound)
	assert.ErrorIs(t, &ImportError{Failed: 1, Total: 2}, ErrImportCompletedWithErrors)
	assert.ErrorIs(t, &StoreError{Op: "insert task", Err: errors.New("boom")}, ErrStore)
	assert.EqualError(t, &NotFoundError{ID: 9}, "task id not found: 9")
}

func ptrRecur(s string) *Recurrence {
	r := MustParseDuration(s)
	return &r
}
