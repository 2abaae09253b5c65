package ui

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/cenkalti/yap/internal/task"
)

// Urgency classifies a due date for colouring.
type Urgency int

const (
	UrgencyNone Urgency = iota
	// UrgencySoon: less than a day left, or the wait date already passed
	// that point.
	UrgencySoon
	UrgencyOverdue
)

// DueUrgency reports how pressing t's due date is at now.
func DueUrgency(t *task.Task, now time.Time) Urgency {
	if t.DueDate == nil {
		return UrgencyNone
	}
	if t.Overdue(now) {
		return UrgencyOverdue
	}
	yellowAfter := t.DueDate.AddDate(0, 0, -1)
	if t.WaitDate != nil && t.WaitDate.After(yellowAfter) {
		yellowAfter = *t.WaitDate
	}
	if now.After(yellowAfter) {
		return UrgencySoon
	}
	return UrgencyNone
}

// RenderDue formats the due date, red when overdue and yellow when soon.
func RenderDue(t *task.Task, now time.Time) string {
	s := task.FormatOptional(t.DueDate)
	switch DueUrgency(t, now) {
	case UrgencyOverdue:
		return RenderFail(s)
	case UrgencySoon:
		return RenderWarn(s)
	}
	return s
}

// Column is one column of a task table.
type Column struct {
	Header string
	Cell   func(t *task.Task) string
}

// IDColumn and the constructors below build the list view columns.
func IDColumn() Column {
	return Column{Header: "ID", Cell: func(t *task.Task) string { return strconv.Itoa(t.ID) }}
}

func TitleColumn() Column {
	return Column{Header: "Title", Cell: func(t *task.Task) string { return t.Title }}
}

func ContextColumn() Column {
	return Column{Header: "Context", Cell: func(t *task.Task) string { return t.Context }}
}

func DueColumn(now time.Time) Column {
	return Column{Header: "Due date", Cell: func(t *task.Task) string { return RenderDue(t, now) }}
}

func WaitColumn() Column {
	return Column{Header: "Wait date", Cell: func(t *task.Task) string { return task.FormatOptional(t.WaitDate) }}
}

func DoneColumn() Column {
	return Column{Header: "Done at", Cell: func(t *task.Task) string { return task.FormatOptional(t.DoneAt) }}
}

func CreatedColumn() Column {
	return Column{Header: "Created at", Cell: func(t *task.Task) string { return task.FormatDateTime(t.CreatedAt) }}
}

// WriteTable renders tasks as a table. Nothing is written for an empty
// list.
func WriteTable(w io.Writer, tasks []*task.Task, columns []Column) error {
	if len(tasks) == 0 {
		return nil
	}

	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = c.Header
	}
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderStyle(dimStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := lipgloss.NewStyle().PaddingRight(2)
			if row == table.HeaderRow {
				return s.Inherit(headerStyle)
			}
			return s
		})
	for _, t := range tasks {
		cells := make([]string, len(columns))
		for i, c := range columns {
			cells[i] = c.Cell(t)
		}
		tbl.Row(cells...)
	}

	_, err := fmt.Fprintln(w, tbl.String())
	return err
}

// Field is one line of a detail view.
type Field struct {
	Name  string
	Value string
}

// WriteFields renders name: value lines with the names aligned.
func WriteFields(w io.Writer, fields []Field) error {
	width := 0
	for _, f := range fields {
		width = max(width, lipgloss.Width(f.Name))
	}
	for _, f := range fields {
		label := f.Name + ":" + strings.Repeat(" ", width-lipgloss.Width(f.Name))
		if _, err := fmt.Fprintf(w, "%s %s\n", headerStyle.Render(label), f.Value); err != nil {
			return err
		}
	}
	return nil
}
