package task

import "time"

// EndOfDayNanos is the sub-second part of an end-of-day timestamp. It is
// microsecond aligned so it survives stores that truncate to microseconds.
const EndOfDayNanos = 999999000

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's calendar day.
// A due date at end of day means "some time that day".
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, EndOfDayNanos, t.Location())
}

// IsEndOfDay reports whether t carries the all-day encoding.
func IsEndOfDay(t time.Time) bool {
	h, m, s := t.Clock()
	return h == 23 && m == 59 && s == 59 && t.Nanosecond() >= EndOfDayNanos
}

// IsStartOfDay reports whether t is exactly midnight.
func IsStartOfDay(t time.Time) bool {
	h, m, s := t.Clock()
	return h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0
}

// FormatDateTime renders all-day timestamps as a bare date and everything
// else with second precision, in local time.
func FormatDateTime(t time.Time) string {
	t = t.Local()
	if IsEndOfDay(t) {
		return t.Format(dateLayout)
	}
	return t.Format(dateTimeLayout)
}

// FormatOptional is FormatDateTime for nullable fields.
func FormatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDateTime(*t)
}
