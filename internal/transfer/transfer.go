// Package transfer moves the whole task set in and out of the store as a
// JSON or YAML document.
//
// The document is a list of records carrying every stored field, ids
// included. Instants are written as RFC 3339 UTC with a trailing Z. On
// import a bare YYYY-MM-DD is also accepted and expands to the end of that
// day for due dates and the start of it for everything else.
package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cenkalti/yap/internal/task"
)

// Format names a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "json", "yaml" or "yml". The empty string is JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", &task.ValidationError{Field: "format", Msg: fmt.Sprintf("unknown format %q", s)}
}

// FormatFor picks a format from a file extension, falling back to def.
func FormatFor(path string, def Format) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	}
	return def
}

const dateLayout = "2006-01-02"

// Record is the serialized form of a task.
type Record struct {
	ID        int    `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	DueDate   string `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	WaitDate  string `json:"wait_date,omitempty" yaml:"wait_date,omitempty"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
	DoneAt    string `json:"done_at,omitempty" yaml:"done_at,omitempty"`
	Context   string `json:"context,omitempty" yaml:"context,omitempty"`
	Recur     string `json:"recur,omitempty" yaml:"recur,omitempty"`
	Shift     bool   `json:"shift,omitempty" yaml:"shift,omitempty"`
	Order     int    `json:"order,omitempty" yaml:"order,omitempty"`
}

// NewRecord converts a task to its serialized form.
func NewRecord(t *task.Task) Record {
	r := Record{
		ID:        t.ID,
		Title:     t.Title,
		DueDate:   formatOptional(t.DueDate),
		WaitDate:  formatOptional(t.WaitDate),
		CreatedAt: formatInstant(t.CreatedAt),
		DoneAt:    formatOptional(t.DoneAt),
		Context:   t.Context,
		Shift:     t.Shift,
		Order:     t.Order,
	}
	if t.Recur != nil {
		r.Recur = t.Recur.String()
	}
	return r
}

// Task converts the record back, interpreting times in loc.
func (r Record) Task(loc *time.Location) (*task.Task, error) {
	t := &task.Task{
		ID:      r.ID,
		Title:   r.Title,
		Context: r.Context,
		Shift:   r.Shift,
		Order:   r.Order,
	}

	var err error
	if t.DueDate, err = parseOptional("due_date", r.DueDate, loc, task.EndOfDay); err != nil {
		return nil, err
	}
	if t.WaitDate, err = parseOptional("wait_date", r.WaitDate, loc, task.StartOfDay); err != nil {
		return nil, err
	}
	if t.DoneAt, err = parseOptional("done_at", r.DoneAt, loc, task.StartOfDay); err != nil {
		return nil, err
	}
	created, err := parseOptional("created_at", r.CreatedAt, loc, task.StartOfDay)
	if err != nil {
		return nil, err
	}
	if created != nil {
		t.CreatedAt = *created
	}
	if r.Recur != "" {
		rec, err := task.ParseDuration(r.Recur)
		if err != nil {
			return nil, err
		}
		t.Recur = &rec
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatInstant(*t)
}

func parseOptional(field, s string, loc *time.Location, day func(time.Time) time.Time) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		t = t.In(loc)
		return &t, nil
	}
	if d, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		t := day(d)
		return &t, nil
	}
	return nil, &task.ValidationError{Field: field, Msg: fmt.Sprintf("%q is not an ISO 8601 date or datetime", s)}
}

// Source provides every stored task.
type Source interface {
	All(ctx context.Context) ([]*task.Task, error)
}

// Sink stores a task exactly as given.
type Sink interface {
	Insert(ctx context.Context, t *task.Task) error
}

// Export writes every task in src to w and returns how many were written.
func Export(ctx context.Context, src Source, w io.Writer, format Format) (int, error) {
	tasks, err := src.All(ctx)
	if err != nil {
		return 0, err
	}
	records := make([]Record, len(tasks))
	for i, t := range tasks {
		records[i] = NewRecord(t)
	}

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return 0, fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return 0, fmt.Errorf("failed to encode yaml: %w", err)
		}
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return 0, fmt.Errorf("failed to encode json: %w", err)
		}
	}
	return len(records), nil
}

// ExportFile writes the export to path atomically.
func ExportFile(ctx context.Context, src Source, path string, format Format) (int, error) {
	var buf bytes.Buffer
	n, err := Export(ctx, src, &buf, format)
	if err != nil {
		return 0, err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return 0, fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	// Write atomically via temp file
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0600); err != nil {
		return 0, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return 0, fmt.Errorf("failed to rename temp file: %w", err)
	}
	return n, nil
}

// ImportOptions configures Import.
type ImportOptions struct {
	Format Format
	// Location is the zone imported times are returned in. Defaults to
	// time.Local.
	Location *time.Location
	// Logger receives one line per failed record. Defaults to discarding.
	Logger *log.Logger
}

// ImportResult counts the outcome of an import.
type ImportResult struct {
	Total    int
	Imported int
	Failed   int
}

// Import reads a document from r and inserts every record into dst with
// its stored id. A record that cannot be decoded or stored is logged and
// skipped; the rest still go in. If any record failed the returned error
// is a *task.ImportError alongside the result.
func Import(ctx context.Context, dst Sink, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}

	records, err := decode(r, opts.Format)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Total: len(records)}
	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		t, err := rec.Task(opts.Location)
		if err == nil {
			err = dst.Insert(ctx, t)
		}
		if err != nil {
			opts.Logger.Printf("record %d (id %d): %v", i+1, rec.ID, err)
			result.Failed++
			continue
		}
		result.Imported++
	}

	if result.Failed > 0 {
		return result, &task.ImportError{Failed: result.Failed, Total: result.Total}
	}
	return result, nil
}

// ImportFile imports the document at path.
func ImportFile(ctx context.Context, dst Sink, path string, opts ImportOptions) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()
	return Import(ctx, dst, f, opts)
}

func decode(r io.Reader, format Format) ([]Record, error) {
	var records []Record
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&records); err != nil && err != io.EOF {
			return nil, fmt.Errorf("invalid yaml: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(&records); err != nil && err != io.EOF {
			return nil, fmt.Errorf("invalid json: %w", err)
		}
	}
	return records, nil
}
