package store

import (
	"context"
	"fmt"
)

// migrations are applied in order, each in its own transaction, and
// recorded in PRAGMA user_version. Only ever append.
var migrations = []string{
	`CREATE TABLE task (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL
	)`,
	`ALTER TABLE task ADD COLUMN due_date TEXT`,
	`ALTER TABLE task ADD COLUMN wait_date TEXT`,
	`ALTER TABLE task ADD COLUMN created_at TEXT`,
	`ALTER TABLE task ADD COLUMN done_at TEXT`,
	`ALTER TABLE task ADD COLUMN context TEXT`,
	`ALTER TABLE task ADD COLUMN recur TEXT`,
	`ALTER TABLE task ADD COLUMN shift INTEGER`,
	`ALTER TABLE task ADD COLUMN "order" INTEGER`,
	`CREATE INDEX idx_task_due_date ON task(due_date)`,
	`CREATE INDEX idx_task_done_at ON task(done_at)`,
}

// SchemaVersion is the version a fully migrated database reports.
var SchemaVersion = len(migrations)

// Version returns the schema version recorded in the database.
func (s *Store) Version(ctx context.Context) (int, error) {
	var v int
	if err := s.conn.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v); err != nil {
		return 0, storeErr("read schema version", err)
	}
	return v, nil
}

// Migrate applies every migration the database has not seen yet. It is
// idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	current, err := s.Version(ctx)
	if err != nil {
		return err
	}
	if current > len(migrations) {
		return fmt.Errorf("database schema version %d is newer than this program supports (%d)", current, len(migrations))
	}

	for i := current; i < len(migrations); i++ {
		err := s.inTx(ctx, func(tx *txn) error {
			if _, err := tx.exec(ctx, migrations[i]); err != nil {
				return storeErr(fmt.Sprintf("apply migration %d", i+1), err)
			}
			if _, err := tx.exec(ctx, fmt.Sprintf("PRAGMA user_version = %d", i+1)); err != nil {
				return storeErr("record schema version", err)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}
