package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nnmc-digital/projectboard/internal/domain"
	"github.com/nnmc-digital/projectboard/internal/domain/task"
	"github.com/nnmc-digital/projectboard/internal/ports"
)

// Compile-time check that TaskStore implements ports.TaskStore.
var _ ports.TaskStore = (*TaskStore)(nil)

// TaskStore is the SQLite task persistence adapter.
type TaskStore struct {
	s *Store
}

const taskColumns = `id, document_id, title, description, status,
	start_date, end_date, due_date, board_order, project_id,
	created_at, updated_at`

func scanTask(row rowScanner) (*task.Task, error) {
	var (
		t                           task.Task
		startDate, endDate, dueDate sql.NullString
		projectID                   sql.NullInt64
		createdAt, updatedAt        string
	)
	err := row.Scan(&t.ID, &t.DocumentID, &t.Title, &t.Description, &t.Status,
		&startDate, &endDate, &dueDate, &t.Order, &projectID,
		&createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning task: %w", err)
	}

	t.ProjectID = int64Ptr(projectID)
	if t.StartDate, err = decodeTimePtr(startDate); err != nil {
		return nil, err
	}
	if t.EndDate, err = decodeTimePtr(endDate); err != nil {
		return nil, err
	}
	if t.DueDate, err = decodeTimePtr(dueDate); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func queryTasks(ctx context.Context, q querier, query string, args ...any) ([]task.Task, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]task.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// ListByProject returns a project's tasks in board order.
func (s *TaskStore) ListByProject(ctx context.Context, projectID int64) ([]task.Task, error) {
	return queryTasks(ctx, s.s.db,
		`SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY board_order, id`, projectID)
}

// Get returns a single task by ID.
func (s *TaskStore) Get(ctx context.Context, id int64) (*task.Task, error) {
	return scanTask(s.s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
}

// GetByDocumentID resolves a task through its opaque document identifier.
func (s *TaskStore) GetByDocumentID(ctx context.Context, documentID string) (*task.Task, error) {
	return scanTask(s.s.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE document_id = ?`, documentID))
}

// Create persists a new task, assigning ID, DocumentID, and timestamps.
func (s *TaskStore) Create(ctx context.Context, t *task.Task) (*task.Task, error) {
	documentID := t.DocumentID
	if documentID == "" {
		documentID = newDocumentID()
	}
	now := encodeTime(s.s.now())

	res, err := s.s.db.ExecContext(ctx, `
		INSERT INTO tasks (document_id, title, description, status,
			start_date, end_date, due_date, board_order, project_id,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		documentID, t.Title, t.Description, t.Status,
		encodeTimePtr(t.StartDate), encodeTimePtr(t.EndDate), encodeTimePtr(t.DueDate),
		t.Order, nullInt64(t.ProjectID), now, now)
	if err != nil {
		return nil, fmt.Errorf("inserting task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Update applies the touched fields of ch and returns the updated record.
func (s *TaskStore) Update(ctx context.Context, id int64, ch task.Change) (*task.Task, error) {
	tx, err := s.s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	t, err := scanTask(tx.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}

	ch.Apply(t)
	t.UpdatedAt = s.s.now()

	_, err = tx.ExecContext(ctx, `
		UPDATE tasks SET title = ?, description = ?, status = ?,
			start_date = ?, end_date = ?, due_date = ?, board_order = ?,
			updated_at = ?
		WHERE id = ?`,
		t.Title, t.Description, t.Status,
		encodeTimePtr(t.StartDate), encodeTimePtr(t.EndDate), encodeTimePtr(t.DueDate),
		t.Order, encodeTime(t.UpdatedAt), id)
	if err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes the task.
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	res, err := s.s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
