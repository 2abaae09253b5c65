// Package logging builds the loggers handed to the rest of the program.
package logging

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options selects where debug output goes.
type Options struct {
	// Debug enables verbose logging. When false, debug loggers discard.
	Debug bool
	// File, when set, receives debug output instead of stderr and is
	// rotated by size.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Sink is the destination shared by every debug logger. Close it before
// the process exits.
type Sink struct {
	w      io.Writer
	closer io.Closer
}

// Open returns the debug sink for opts.
func Open(opts Options) *Sink {
	switch {
	case !opts.Debug:
		return &Sink{w: io.Discard}
	case opts.File == "":
		return &Sink{w: os.Stderr}
	}
	lj := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}
	return &Sink{w: lj, closer: lj}
}

// Logger returns a logger on the sink with a bracketed prefix.
func (s *Sink) Logger(name string) *log.Logger {
	return log.New(s.w, "["+name+"] ", log.LstdFlags|log.Lmicroseconds)
}

// Enabled reports whether anything written to the sink is kept.
func (s *Sink) Enabled() bool {
	return s.w != io.Discard
}

// Close flushes and closes a file-backed sink.
func (s *Sink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Stderr returns a logger for warnings that are always shown.
func Stderr(name string) *log.Logger {
	return log.New(os.Stderr, "["+name+"] ", log.LstdFlags)
}
