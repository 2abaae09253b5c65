package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cenkalti/yap/internal/config"
	"github.com/cenkalti/yap/internal/task"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

var now = time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func TestDueUrgency(t *testing.T) {
	tests := []struct {
		name string
		task task.Task
		want Urgency
	}{
		{name: "no due date", task: task.Task{}, want: UrgencyNone},
		{name: "overdue", task: task.Task{DueDate: at(-time.Minute)}, want: UrgencyOverdue},
		{name: "due within a day", task: task.Task{DueDate: at(20 * time.Hour)}, want: UrgencySoon},
		{name: "due in two days", task: task.Task{DueDate: at(48 * time.Hour)}, want: UrgencyNone},
		{
			name: "wait date pushes threshold",
			task: task.Task{DueDate: at(10 * time.Hour), WaitDate: at(5 * time.Hour)},
			want: UrgencyNone,
		},
		{
			name: "wait date passed",
			task: task.Task{DueDate: at(10 * time.Hour), WaitDate: at(-time.Hour)},
			want: UrgencySoon,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DueUrgency(&tt.task, now))
		})
	}
}

func TestWriteTable(t *testing.T) {
	due := task.EndOfDay(now.Local())
	tasks := []*task.Task{
		{ID: 1, Title: "water flowers", DueDate: &due},
		{ID: 12, Title: "call mom", Context: "home"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, tasks, []Column{IDColumn(), DueColumn(now), TitleColumn(), ContextColumn()}))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, lines[0], "Due date")
	assert.Contains(t, lines[0], "Title")
	assert.Contains(t, lines[2], "water flowers")
	assert.Contains(t, lines[2], due.Format("2006-01-02"))
	assert.Contains(t, lines[3], "call mom")
	assert.Contains(t, lines[3], "home")
}

func TestWriteTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, nil, []Column{IDColumn()}))
	assert.Empty(t, buf.String())
}

func TestWriteFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFields(&buf, []Field{
		{Name: "id", Value: "3"},
		{Name: "title", Value: "read"},
	}))
	assert.Equal(t, "id:    3\ntitle: read\n", buf.String())
}

func TestProfile(t *testing.T) {
	assert.Equal(t, termenv.Ascii, profile(config.ColorNever, os.Stdout))
	assert.NotEqual(t, termenv.Ascii, profile(config.ColorAlways, nil))

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, termenv.Ascii, profile(config.ColorAuto, f))
}
