package task

import (
	"math"
	"time"

	"github.com/sosodev/duration"
)

// Recurrence is a positive ISO-8601 duration between occurrences of a
// recurring task. Calendar units (years, months, weeks, days) are applied
// on the calendar and keep the wall-clock time. Years and months clamp to
// the end of a shorter month, so "P1M" from Jan 31 lands on Feb 28.
type Recurrence struct {
	d duration.Duration
}

// ParseDuration parses an ISO-8601 duration such as "P1D", "P2W" or
// "PT90M". The sign is rejected; callers handle direction themselves.
func ParseDuration(s string) (Recurrence, error) {
	d, err := duration.Parse(s)
	if err != nil || d.Negative {
		return Recurrence{}, &ValidationError{Field: "duration", Msg: s + " is not an ISO 8601 duration"}
	}
	r := Recurrence{d: *d}
	if r.IsZero() {
		return Recurrence{}, &ValidationError{Field: "duration", Msg: s + " is an empty duration"}
	}
	if frac(d.Years) != 0 || frac(d.Months) != 0 {
		return Recurrence{}, &ValidationError{Field: "duration", Msg: s + ": fractional years and months are not supported"}
	}
	return r, nil
}

// MustParseDuration is ParseDuration for constants and tests.
func MustParseDuration(s string) Recurrence {
	r, err := ParseDuration(s)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Recurrence) String() string {
	return r.d.String()
}

// IsZero reports whether every component is zero.
func (r Recurrence) IsZero() bool {
	d := r.d
	return d.Years == 0 && d.Months == 0 && d.Weeks == 0 && d.Days == 0 &&
		d.Hours == 0 && d.Minutes == 0 && d.Seconds == 0
}

// DayResolution reports whether the duration has no sub-day component.
func (r Recurrence) DayResolution() bool {
	return r.clock() == 0 && frac(r.d.Weeks*7) == 0 && frac(r.d.Days) == 0
}

// AddTo returns t moved forward by r.
func (r Recurrence) AddTo(t time.Time) time.Time {
	return r.apply(t, 1)
}

// SubtractFrom returns t moved backward by r.
func (r Recurrence) SubtractFrom(t time.Time) time.Time {
	return r.apply(t, -1)
}

func (r Recurrence) apply(t time.Time, sign int) time.Time {
	d := r.d
	wholeWeeks, fracWeeks := math.Modf(d.Weeks)
	wholeDays, fracDays := math.Modf(d.Days)
	days := int(wholeWeeks)*7 + int(wholeDays)
	t = addMonths(t, sign*(int(d.Years)*12+int(d.Months)))
	t = t.AddDate(0, 0, sign*days)

	extra := time.Duration((fracWeeks*7 + fracDays) * float64(24*time.Hour))
	return t.Add(time.Duration(sign) * (extra + r.clock()))
}

// addMonths moves t by n calendar months, clamping the day to the length
// of the target month.
func addMonths(t time.Time, n int) time.Time {
	if n == 0 {
		return t
	}
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(first.Year(), first.Month(), t.Location()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// clock is the sub-day part as an exact duration.
func (r Recurrence) clock() time.Duration {
	d := r.d
	return time.Duration(d.Hours*float64(time.Hour)) +
		time.Duration(d.Minutes*float64(time.Minute)) +
		time.Duration(d.Seconds*float64(time.Second))
}

func frac(f float64) float64 {
	_, fr := math.Modf(f)
	return fr
}

// NextOccurrence builds the task that replaces a completed recurring task.
//
// With Shift unset the schedule is fixed: the new due date is the old one
// plus the recurrence. With Shift set the schedule rolls from now, snapped
// to end of today when the old due date was all-day. The wait date, if
// any, keeps its offset to the due date.
//
// The returned task has no id and no order; the store assigns both.
func NextOccurrence(t *Task, now time.Time) *Task {
	next := &Task{
		Title:     t.Title,
		CreatedAt: now,
		Context:   t.Context,
		Shift:     t.Shift,
	}
	if t.Recur == nil {
		return next
	}
	r := *t.Recur
	next.Recur = &r

	var base time.Time
	switch {
	case t.DueDate == nil:
		base = now
	case t.Shift && IsEndOfDay(*t.DueDate):
		base = EndOfDay(now.In(t.DueDate.Location()))
	case t.Shift:
		base = now
	default:
		base = *t.DueDate
	}

	due := r.AddTo(base)
	next.DueDate = &due

	if t.WaitDate != nil {
		var wait time.Time
		if t.DueDate != nil {
			wait = t.WaitDate.Add(due.Sub(*t.DueDate))
		} else {
			wait = r.AddTo(*t.WaitDate)
		}
		next.WaitDate = &wait
	}
	return next
}
