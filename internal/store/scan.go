package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/yap/internal/task"
)

const taskColumns = `id, title, due_date, wait_date, created_at, done_at, context, recur, shift, "order"`

// timeLayout is fixed width so text comparison is chronological.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func encodeTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func encodeNullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: encodeTime(*t), Valid: true}
}

func (s *Store) decodeNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, ns.String)
	if err != nil {
		return nil, fmt.Errorf("invalid stored time %q: %w", ns.String, err)
	}
	t = t.In(s.loc)
	return &t, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func encodeRecur(r *task.Recurrence) sql.NullString {
	if r == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: r.String(), Valid: true}
}

type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) scanTask(row scanner) (*task.Task, error) {
	var (
		t                               task.Task
		due, wait, created, done, recur sql.NullString
		label                           sql.NullString
		shift                           sql.NullBool
		order                           sql.NullInt64
	)
	if err := row.Scan(&t.ID, &t.Title, &due, &wait, &created, &done, &label, &recur, &shift, &order); err != nil {
		return nil, err
	}

	var err error
	if t.DueDate, err = s.decodeNullTime(due); err != nil {
		return nil, err
	}
	if t.WaitDate, err = s.decodeNullTime(wait); err != nil {
		return nil, err
	}
	if t.DoneAt, err = s.decodeNullTime(done); err != nil {
		return nil, err
	}
	createdAt, err := s.decodeNullTime(created)
	if err != nil {
		return nil, err
	}
	if createdAt != nil {
		t.CreatedAt = *createdAt
	}
	if recur.Valid && recur.String != "" {
		r, err := task.ParseDuration(recur.String)
		if err != nil {
			return nil, fmt.Errorf("invalid stored recurrence for task %d: %w", t.ID, err)
		}
		t.Recur = &r
	}
	t.Context = label.String
	t.Shift = shift.Valid && shift.Bool
	t.Order = int(order.Int64)
	return &t, nil
}

func (s *Store) scanTasks(rows *sql.Rows) ([]*task.Task, error) {
	var tasks []*task.Task
	for rows.Next() {
		t, err := s.scanTask(rows)
		if err != nil {
			return nil, storeErr("scan task", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("iterate tasks", err)
	}
	return tasks, nil
}

// get loads one task inside tx.
func (s *Store) get(ctx context.Context, tx *txn, id int) (*task.Task, error) {
	row := tx.queryRow(ctx, "SELECT "+taskColumns+" FROM task WHERE id = ?", id)
	t, err := s.scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &task.NotFoundError{ID: id}
	}
	if err != nil {
		return nil, storeErr(fmt.Sprintf("load task %d", id), err)
	}
	return t, nil
}

// getAll loads every id in ids, failing on the first missing one.
func (s *Store) getAll(ctx context.Context, tx *txn, ids []int) ([]*task.Task, error) {
	tasks := make([]*task.Task, 0, len(ids))
	for _, id := range ids {
		t, err := s.get(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func insertTask(ctx context.Context, tx *txn, t *task.Task) error {
	_, err := tx.exec(ctx, "INSERT INTO task ("+taskColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		t.ID,
		t.Title,
		encodeNullTime(t.DueDate),
		encodeNullTime(t.WaitDate),
		encodeTime(t.CreatedAt),
		encodeNullTime(t.DoneAt),
		nullString(t.Context),
		encodeRecur(t.Recur),
		t.Shift,
		t.Order,
	)
	if err != nil {
		return storeErr(fmt.Sprintf("insert task %d", t.ID), err)
	}
	return nil
}

// updateTask writes every field of t to the row currently at oldID.
func updateTask(ctx context.Context, tx *txn, oldID int, t *task.Task) error {
	_, err := tx.exec(ctx, `UPDATE task SET
		id = ?, title = ?, due_date = ?, wait_date = ?, done_at = ?,
		context = ?, recur = ?, shift = ?
		WHERE id = ?`,
		t.ID,
		t.Title,
		encodeNullTime(t.DueDate),
		encodeNullTime(t.WaitDate),
		encodeNullTime(t.DoneAt),
		nullString(t.Context),
		encodeRecur(t.Recur),
		t.Shift,
		oldID,
	)
	if err != nil {
		return storeErr(fmt.Sprintf("update task %d", oldID), err)
	}
	return nil
}
