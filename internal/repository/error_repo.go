package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"telemetry_monitor/internal/models"

	"github.com/google/uuid"
)

// ErrorSQLite persists the error buffer in the error_buffer table.
// Row order (autoincrement seq) is insertion order.
type ErrorSQLite struct {
	db *sql.DB
}

func NewErrorSQLite(db *sql.DB) *ErrorSQLite { return &ErrorSQLite{db: db} }

var _ ErrorBuffer = (*ErrorSQLite)(nil)

const (
	insertErrorSQL = `
		INSERT INTO error_buffer (entry_id, received_at, message)
		VALUES (?, ?, ?)
	`
	selectErrorsSQL = `SELECT message FROM error_buffer ORDER BY seq ASC`
	countErrorsSQL  = `SELECT COUNT(*) FROM error_buffer`
	deleteErrorsSQL = `DELETE FROM error_buffer`
)

// Append inserts a new entry. If EntryID or ReceivedAt are empty, they're set.
func (r *ErrorSQLite) Append(ctx context.Context, e models.ErrorEntry) error {
	if e.EntryID == "" {
		e.EntryID = uuid.NewString()
	}
	if e.ReceivedAt.IsZero() {
		e.ReceivedAt = time.Now().UTC()
	}

	if _, err := r.db.ExecContext(ctx, insertErrorSQL,
		e.EntryID,
		e.ReceivedAt.UTC().Format(time.RFC3339Nano),
		e.Raw,
	); err != nil {
		return fmt.Errorf("insert error entry: %w", err)
	}
	return nil
}

// List returns stored payloads oldest first.
func (r *ErrorSQLite) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, selectErrorsSQL)
	if err != nil {
		return nil, fmt.Errorf("select error entries: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0, 16)
	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			return nil, fmt.Errorf("scan error entry: %w", err)
		}
		out = append(out, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ErrorSQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countErrorsSQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("count error entries: %w", err)
	}
	return n, nil
}

// Clear deletes all rows in one statement; the affected row count is what was removed.
func (r *ErrorSQLite) Clear(ctx context.Context) (int, error) {
	res, err := r.db.ExecContext(ctx, deleteErrorsSQL)
	if err != nil {
		return 0, fmt.Errorf("delete error entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}
