package postgres

import (
	"context"
	"fmt"

	"github.com/kozaktomas/face-attendance/internal/database"
)

// Record appends one attendance row; the timestamp is assigned by the database.
func (r *Repository) Record(ctx context.Context, identityID int64) error {
	_, err := r.db.ExecContext(ctx, "INSERT INTO attendance (identity_id) VALUES ($1)", identityID)
	if err != nil {
		return fmt.Errorf("recording attendance for identity %d: %w", identityID, err)
	}
	return nil
}

// List returns attendance rows joined with identity names, newest first.
func (r *Repository) List(ctx context.Context, limit int) ([]database.AttendanceEntry, error) {
	query := `
		SELECT a.id, a.identity_id, i.name, a.recorded_at
		FROM attendance a
		JOIN identities i ON i.id = a.identity_id
		ORDER BY a.recorded_at DESC, a.id DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying attendance: %w", err)
	}
	defer rows.Close()

	var entries []database.AttendanceEntry
	for rows.Next() {
		var e database.AttendanceEntry
		if err := rows.Scan(&e.ID, &e.IdentityID, &e.Name, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scanning attendance entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the total number of attendance rows.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM attendance").Scan(&count)
	return count, err
}

// Verify interface compliance.
var (
	_ database.EnrollmentStore = (*Repository)(nil)
	_ database.AttendanceStore = (*Repository)(nil)
)
