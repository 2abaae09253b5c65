// Package dateexpr parses the date expressions accepted on the command line.
//
// Rules are tried in order:
//
//	""                      clear the field
//	monday .. sunday        next such weekday, today included
//	now                     the current instant
//	today, tomorrow         that day
//	[-]P<duration>          offset from today (day resolution) or from now
//	<date>T<time>           ISO 8601 date-time, taken literally
//	<date>                  ISO 8601 calendar date
//	<time>                  ISO 8601 time on the reference day
//
// Rules that produce a bare day use a default time of day: end of day for
// due dates, start of day for wait dates. With Natural set, expressions no
// rule matches are offered to an English natural-language parser.
package dateexpr

import (
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/yap/internal/task"
)

// Error reports an expression that no rule accepts.
type Error struct {
	Input string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%q is not an ISO 8601 date, time or datetime", e.Input)
}

func (e *Error) Is(target error) bool {
	return target == task.ErrValidation
}

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var dateTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02T15",
	"20060102T150405",
	"20060102T1504",
}

var zonedDateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"20060102T150405Z0700",
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"20060102",
}

var timeLayouts = []string{
	"15:04:05.999999999",
	"15:04",
}

var zonedTimeLayouts = []string{
	"15:04:05.999999999Z07:00",
	"15:04Z07:00",
}

// Parser turns expressions into instants relative to a clock.
type Parser struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// Location interprets expressions without a zone. Defaults to time.Local.
	Location *time.Location
	// Natural enables the natural-language fallback.
	Natural bool
}

func (p *Parser) now() time.Time {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	return now().In(p.loc())
}

func (p *Parser) loc() *time.Location {
	if p.Location != nil {
		return p.Location
	}
	return time.Local
}

// Due parses a due date. Bare days resolve to end of day.
func (p *Parser) Due(s string) (task.Update[time.Time], error) {
	return p.clearable(s, task.EndOfDay)
}

// Wait parses a wait date. Bare days resolve to start of day.
func (p *Parser) Wait(s string) (task.Update[time.Time], error) {
	return p.clearable(s, task.StartOfDay)
}

// On parses a calendar day and returns its start.
func (p *Parser) On(s string) (task.Update[time.Time], error) {
	u, err := p.clearable(s, task.StartOfDay)
	if err != nil {
		return u, err
	}
	if v, ok := u.Value(); ok {
		return task.Set(task.StartOfDay(v)), nil
	}
	return u, nil
}

// Recur parses an ISO 8601 duration. The empty string clears.
func (p *Parser) Recur(s string) (task.Update[task.Recurrence], error) {
	if s == "" {
		return task.Clear[task.Recurrence](), nil
	}
	r, err := task.ParseDuration(s)
	if err != nil {
		return task.Update[task.Recurrence]{}, err
	}
	return task.Set(r), nil
}

func (p *Parser) clearable(s string, dayClock func(time.Time) time.Time) (task.Update[time.Time], error) {
	if s == "" {
		return task.Clear[time.Time](), nil
	}
	t, err := p.Parse(s, dayClock)
	if err != nil {
		return task.Update[time.Time]{}, err
	}
	return task.Set(t), nil
}

// Parse evaluates s. dayClock places a bare day at a time of day.
func (p *Parser) Parse(s string, dayClock func(time.Time) time.Time) (time.Time, error) {
	now := p.now()
	today := task.StartOfDay(now)

	if d, ok := parseWeekday(s, today); ok {
		return dayClock(d), nil
	}
	switch s {
	case "now":
		return now, nil
	case "today":
		return dayClock(today), nil
	case "tomorrow":
		return dayClock(today.AddDate(0, 0, 1)), nil
	}

	t, err := p.parseISO(s, now, today, dayClock)
	if err == nil {
		return t, nil
	}
	if p.Natural {
		if t, ok := p.parseNatural(s, now, dayClock); ok {
			return t, nil
		}
	}
	return time.Time{}, err
}

func (p *Parser) parseISO(s string, now, today time.Time, dayClock func(time.Time) time.Time) (time.Time, error) {
	in := s
	subtract := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	switch {
	case strings.HasPrefix(s, "P"):
		r, err := task.ParseDuration(s)
		if err != nil {
			return time.Time{}, &Error{Input: in}
		}
		base := now
		if r.DayResolution() {
			base = dayClock(today)
		}
		if subtract {
			return r.SubtractFrom(base), nil
		}
		return r.AddTo(base), nil

	case strings.Contains(s, "T"):
		if t, ok := p.parseLayouts(s, zonedDateTimeLayouts, dateTimeLayouts); ok {
			return t, nil
		}

	case strings.Contains(s, ":"):
		// A zoned time keeps its own offset on today's date.
		if t, ok := p.parseLayouts(s, zonedTimeLayouts, timeLayouts); ok {
			y, m, d := today.Date()
			return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()), nil
		}

	case strings.Contains(s, "-"):
		if d, ok := p.parseLayouts(s, nil, dateLayouts); ok {
			return dayClock(d), nil
		}
	}
	return time.Time{}, &Error{Input: in}
}

func (p *Parser) parseLayouts(s string, zoned, naive []string) (time.Time, bool) {
	for _, layout := range zoned {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range naive {
		if t, err := time.ParseInLocation(layout, s, p.loc()); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseWeekday resolves a weekday name to its next occurrence on or after
// today.
func parseWeekday(s string, today time.Time) (time.Time, bool) {
	name := strings.ToLower(s)
	for i, w := range weekdays {
		if w != name {
			continue
		}
		// time.Weekday counts from Sunday; the table counts from Monday.
		current := (int(today.Weekday()) + 6) % 7
		ahead := ((i-current)%7 + 7) % 7
		return today.AddDate(0, 0, ahead), true
	}
	return time.Time{}, false
}
