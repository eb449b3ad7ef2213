package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nnmc-digital/projectboard/internal/domain/activity"
	"github.com/nnmc-digital/projectboard/internal/ports"
)

// Compile-time check that ActivityStore implements ports.ActivityStore.
var _ ports.ActivityStore = (*ActivityStore)(nil)

// ActivityStore is the SQLite append-only audit trail adapter. Metadata is
// stored as a JSON document.
type ActivityStore struct {
	s *Store
}

// Append persists a new audit entry, stamping its ID and creation time.
func (s *ActivityStore) Append(ctx context.Context, e *activity.Entry) (*activity.Entry, error) {
	var metadata any
	if e.Metadata != nil {
		encoded, err := json.Marshal(e.Metadata)
		if err != nil {
			return nil, fmt.Errorf("encoding metadata: %w", err)
		}
		metadata = string(encoded)
	}

	now := s.s.now()
	res, err := s.s.db.ExecContext(ctx, `
		INSERT INTO activity_log (action, description, project_id, user_id, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.Action, e.Description, nullInt64(e.ProjectID), nullInt64(e.UserID),
		metadata, encodeTime(now))
	if err != nil {
		return nil, fmt.Errorf("inserting activity entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	stored := *e
	stored.ID = id
	stored.CreatedAt = now
	return &stored, nil
}

// List returns entries matching the filter, newest first.
func (s *ActivityStore) List(ctx context.Context, f activity.Filter) ([]activity.Entry, error) {
	var (
		where []string
		args  []any
	)
	if f.ProjectID != nil {
		where = append(where, "project_id = ?")
		args = append(args, *f.ProjectID)
	}
	if f.Action != "" {
		where = append(where, "action = ?")
		args = append(args, f.Action)
	}

	query := `SELECT id, action, description, project_id, user_id, metadata, created_at FROM activity_log`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	defer rows.Close()

	entries := make([]activity.Entry, 0)
	for rows.Next() {
		var (
			e                 activity.Entry
			projectID, userID sql.NullInt64
			metadata          sql.NullString
			createdAt         string
		)
		if err := rows.Scan(&e.ID, &e.Action, &e.Description, &projectID, &userID, &metadata, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning activity entry: %w", err)
		}
		e.ProjectID = int64Ptr(projectID)
		e.UserID = int64Ptr(userID)
		if metadata.Valid {
			if err := json.Unmarshal([]byte(metadata.String), &e.Metadata); err != nil {
				return nil, fmt.Errorf("decoding metadata: %w", err)
			}
		}
		if e.CreatedAt, err = decodeTime(createdAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
