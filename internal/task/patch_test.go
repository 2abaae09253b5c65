package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatch_Apply(t *testing.T) {
	due := EndOfDay(now)
	base := func() *Task {
		return &Task{
			ID:       1,
			Title:    "buy milk",
			DueDate:  &due,
			WaitDate: ptr(StartOfDay(now)),
			Context:  "home",
			Recur:    ptrRecur("P1W"),
			Shift:    true,
		}
	}

	t.Run("zero patch leaves task untouched", func(t *testing.T) {
		tk := base()
		p := Patch{}
		assert.True(t, p.Empty())
		require.NoError(t, p.Apply(tk))
		assert.Equal(t, base(), tk)
	})

	t.Run("set and clear", func(t *testing.T) {
		tk := base()
		newDue := due.AddDate(0, 0, 3)
		p := Patch{
			Title:    Set("buy oat milk"),
			DueDate:  Set(newDue),
			WaitDate: Clear[time.Time](),
			Context:  Clear[string](),
			Shift:    Set(false),
		}
		require.NoError(t, p.Apply(tk))
		assert.Equal(t, "buy oat milk", tk.Title)
		assert.Equal(t, newDue, *tk.DueDate)
		assert.Nil(t, tk.WaitDate)
		assert.Equal(t, "", tk.Context)
		assert.False(t, tk.Shift)
		assert.Equal(t, "P1W", tk.Recur.String())
	})

	t.Run("append and prepend", func(t *testing.T) {
		tk := base()
		require.NoError(t, (&Patch{Append: "and eggs"}).Apply(tk))
		assert.Equal(t, "buy milk and eggs", tk.Title)
		require.NoError(t, (&Patch{Prepend: "today:"}).Apply(tk))
		assert.Equal(t, "today: buy milk and eggs", tk.Title)
	})

	t.Run("title modifiers are exclusive", func(t *testing.T) {
		p := Patch{Title: Set("x"), Append: "y"}
		err := p.Apply(base())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		err := (&Patch{Title: Set("  ")}).Apply(base())
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("recurrence needs a due date", func(t *testing.T) {
		err := (&Patch{DueDate: Clear[time.Time]()}).Apply(base())
		assert.ErrorIs(t, err, ErrValidation)

		tk := base()
		require.NoError(t, (&Patch{DueDate: Clear[time.Time](), Recur: Clear[Recurrence]()}).Apply(tk))
		assert.Nil(t, tk.Recur)
	})
}

func TestJoinTitle(t *testing.T) {
	assert.Equal(t, "a b", JoinTitle("a", "b"))
	assert.Equal(t, "a b", JoinTitle("a ", " b"))
	assert.Equal(t, "b", JoinTitle("", "b"))
	assert.Equal(t, "a", JoinTitle("a", ""))
}

func TestDayHelpers(t *testing.T) {
	d := time.Date(2026, 10, 19, 13, 45, 0, 0, time.UTC)
	assert.True(t, IsEndOfDay(EndOfDay(d)))
	assert.False(t, IsEndOfDay(d))
	assert.True(t, IsStartOfDay(StartOfDay(d)))
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), StartOfDay(d))
	assert.Equal(t, "", FormatOptional(nil))
}
