package store

import "context"

// nextID returns the smallest positive id not in use.
func nextID(ctx context.Context, tx *txn) (int, error) {
	rows, err := tx.query(ctx, "SELECT id FROM task WHERE id > 0 ORDER BY id")
	if err != nil {
		return 0, storeErr("scan task ids", err)
	}
	defer rows.Close()

	candidate := 1
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return 0, storeErr("scan task id", err)
		}
		if id > candidate {
			break
		}
		candidate = id + 1
	}
	if err := rows.Err(); err != nil {
		return 0, storeErr("scan task ids", err)
	}
	return candidate, nil
}

// nextNegativeID returns an id strictly below every id in use and below
// zero, so done and archived tasks never collide and never take 0.
func nextNegativeID(ctx context.Context, tx *txn) (int, error) {
	var lowest int
	err := tx.queryRow(ctx, "SELECT COALESCE(MIN(id), 0) FROM task").Scan(&lowest)
	if err != nil {
		return 0, storeErr("find lowest task id", err)
	}
	return min(lowest, 0) - 1, nil
}

// nextOrder returns the order value for a newly created task.
func nextOrder(ctx context.Context, tx *txn) (int, error) {
	var highest int
	err := tx.queryRow(ctx, `SELECT COALESCE(MAX("order"), 0) FROM task`).Scan(&highest)
	if err != nil {
		return 0, storeErr("find highest order", err)
	}
	return highest + 1, nil
}
