package dateexpr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cenkalti/yap/internal/task"
)

// 2026-10-19 is a Monday.
var now = time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)

func newParser() *Parser {
	return &Parser{
		Now:      func() time.Time { return now },
		Location: time.UTC,
	}
}

func day(m time.Month, d int) time.Time {
	return time.Date(2026, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParser_Due(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"today", task.EndOfDay(day(10, 19))},
		{"tomorrow", task.EndOfDay(day(10, 20))},
		{"now", now},
		{"monday", task.EndOfDay(day(10, 19))},
		{"Tuesday", task.EndOfDay(day(10, 20))},
		{"SUNDAY", task.EndOfDay(day(10, 25))},
		{"P1D", task.EndOfDay(day(10, 20))},
		{"-P1D", task.EndOfDay(day(10, 18))},
		{"P2W", task.EndOfDay(day(11, 2))},
		{"PT2H", now.Add(2 * time.Hour)},
		{"-PT30M", now.Add(-30 * time.Minute)},
		{"2026-11-01", task.EndOfDay(day(11, 1))},
		{"2026-11-01T10:30", time.Date(2026, 11, 1, 10, 30, 0, 0, time.UTC)},
		{"2026-11-01T10:30:15", time.Date(2026, 11, 1, 10, 30, 15, 0, time.UTC)},
		{"-2026-11-01T10:30", time.Date(2026, 11, 1, 10, 30, 0, 0, time.UTC)},
		{"2026-11-01T10:30:00+03:00", time.Date(2026, 11, 1, 7, 30, 0, 0, time.UTC)},
		{"09:15", time.Date(2026, 10, 19, 9, 15, 0, 0, time.UTC)},
		{"09:15Z", time.Date(2026, 10, 19, 9, 15, 0, 0, time.UTC)},
		{"09:15+03:00", time.Date(2026, 10, 19, 6, 15, 0, 0, time.UTC)},
		{"09:15:30-05:00", time.Date(2026, 10, 19, 14, 15, 30, 0, time.UTC)},
		{"P1M", task.EndOfDay(day(11, 19))},
	}

	p := newParser()
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			u, err := p.Due(tt.in)
			require.NoError(t, err)
			got, ok := u.Value()
			require.True(t, ok)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestParser_Wait(t *testing.T) {
	p := newParser()

	u, err := p.Wait("tomorrow")
	require.NoError(t, err)
	got, _ := u.Value()
	assert.Equal(t, day(10, 20), got)

	u, err = p.Wait("P3D")
	require.NoError(t, err)
	got, _ = u.Value()
	assert.Equal(t, day(10, 22), got)

	u, err = p.Wait("2026-12-24")
	require.NoError(t, err)
	got, _ = u.Value()
	assert.Equal(t, day(12, 24), got)
}

func TestParser_EmptyClears(t *testing.T) {
	p := newParser()

	for name, parse := range map[string]func(string) (task.Update[time.Time], error){
		"due":  p.Due,
		"wait": p.Wait,
		"on":   p.On,
	} {
		u, err := parse("")
		require.NoError(t, err, name)
		assert.True(t, u.Cleared(), name)
	}

	r, err := p.Recur("")
	require.NoError(t, err)
	assert.True(t, r.Cleared())
}

func TestParser_On(t *testing.T) {
	p := newParser()

	u, err := p.On("2026-11-01T10:30")
	require.NoError(t, err)
	got, _ := u.Value()
	assert.Equal(t, day(11, 1), got)

	u, err = p.On("friday")
	require.NoError(t, err)
	got, _ = u.Value()
	assert.Equal(t, day(10, 23), got)
}

func TestParser_Recur(t *testing.T) {
	p := newParser()

	u, err := p.Recur("P1W")
	require.NoError(t, err)
	r, ok := u.Value()
	require.True(t, ok)
	assert.Equal(t, "P1W", r.String())

	_, err = p.Recur("weekly")
	assert.ErrorIs(t, err, task.ErrValidation)
}

func TestParser_Invalid(t *testing.T) {
	p := newParser()

	for _, in := range []string{"garbage", "Today", "P", "2026-13-45", "25:99", "-3", "in 3 days"} {
		t.Run(in, func(t *testing.T) {
			_, err := p.Due(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, task.ErrValidation)
			var de *Error
			assert.ErrorAs(t, err, &de)
		})
	}
}

func TestParser_Natural(t *testing.T) {
	p := newParser()
	p.Natural = true

	u, err := p.Due("in 3 days")
	require.NoError(t, err)
	got, _ := u.Value()
	y, m, d := got.Date()
	assert.Equal(t, 2026, y)
	assert.Equal(t, time.October, m)
	assert.Equal(t, 22, d)

	_, err = p.Due("buy milk")
	assert.ErrorIs(t, err, task.ErrValidation)
}
