// Package store persists tasks in an embedded SQLite database.
//
// All tasks live in one table. A task's id doubles as its lifecycle
// marker: positive ids are active or waiting, negative ids are done or
// archived, and done_at tells those two apart. Every operation runs in a
// single transaction, including the id scans that feed it, so a failed
// bulk operation leaves nothing half applied.
//
// Times are stored as fixed-width UTC text so that SQL ordering and
// comparison match chronological order.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/cenkalti/yap/internal/task"
)

// DefaultDoneLimit caps the done list.
const DefaultDoneLimit = 20

// Options configures a Store. The zero value is usable.
type Options struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// Location is the zone times are returned in. Defaults to time.Local.
	Location *time.Location
	// Logger receives every statement when set. Nil disables query logging.
	Logger *log.Logger
	// DoneLimit caps the done list. Zero means DefaultDoneLimit.
	DoneLimit int
}

// Store wraps the database connection.
type Store struct {
	conn      *sql.DB
	path      string
	now       func() time.Time
	loc       *time.Location
	log       *log.Logger
	doneLimit int
}

// Open opens (creating if needed) the database at path. Call Migrate
// before using a new database, and Close when done.
func Open(path string, opts Options) (*Store, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	conn, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// One process, one logical operation at a time.
	conn.SetMaxOpenConns(1)

	s := &Store{
		conn:      conn,
		path:      path,
		now:       opts.Now,
		loc:       opts.Location,
		log:       opts.Logger,
		doneLimit: opts.DoneLimit,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.log == nil {
		s.log = log.New(io.Discard, "", 0)
	}
	if s.doneLimit <= 0 {
		s.doneLimit = DefaultDoneLimit
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := s.conn.Exec(p); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("failed to set %q: %w", p, err)
		}
	}

	return s, nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close checkpoints the WAL and closes the connection.
func (s *Store) Close() error {
	if s.conn == nil {
		return nil
	}

	if _, err := s.conn.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to checkpoint WAL: %v\n", err)
	}

	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	s.conn = nil
	return nil
}

// Now returns the store's current time in its location.
func (s *Store) Now() time.Time {
	return s.now().In(s.loc)
}

// txn is a transaction that logs each statement.
type txn struct {
	tx  *sql.Tx
	log *log.Logger
}

func (t *txn) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	t.log.Printf("%s %v", query, args)
	return t.tx.ExecContext(ctx, query, args...)
}

func (t *txn) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	t.log.Printf("%s %v", query, args)
	return t.tx.QueryContext(ctx, query, args...)
}

func (t *txn) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	t.log.Printf("%s %v", query, args)
	return t.tx.QueryRowContext(ctx, query, args...)
}

// inTx runs fn in a transaction and commits if fn succeeds.
func (s *Store) inTx(ctx context.Context, fn func(tx *txn) error) error {
	sqlTx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return storeErr("begin transaction", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&txn{tx: sqlTx, log: s.log}); err != nil {
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return storeErr("commit transaction", err)
	}
	return nil
}

func storeErr(op string, err error) error {
	return &task.StoreError{Op: op, Err: err}
}
