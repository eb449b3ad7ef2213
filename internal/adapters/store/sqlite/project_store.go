package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nnmc-digital/projectboard/internal/domain"
	"github.com/nnmc-digital/projectboard/internal/domain/project"
	"github.com/nnmc-digital/projectboard/internal/ports"
)

// Compile-time check that ProjectStore implements ports.ProjectStore.
var _ ports.ProjectStore = (*ProjectStore)(nil)

// ProjectStore is the SQLite project persistence adapter.
type ProjectStore struct {
	s *Store
}

const projectColumns = `id, document_id, title, description, department_id,
	start_date, due_date, status, priority, owner_id, stage_id,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*project.Project, error) {
	var (
		p                  project.Project
		startDate, dueDate sql.NullString
		departmentID       sql.NullInt64
		ownerID, stageID   sql.NullInt64
		createdAt, updated string
	)
	err := row.Scan(&p.ID, &p.DocumentID, &p.Title, &p.Description, &departmentID,
		&startDate, &dueDate, &p.Status, &p.Priority, &ownerID, &stageID,
		&createdAt, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.DepartmentID = int64Ptr(departmentID)
	p.OwnerID = int64Ptr(ownerID)
	p.StageID = int64Ptr(stageID)
	if p.StartDate, err = decodeTimePtr(startDate); err != nil {
		return nil, err
	}
	if p.DueDate, err = decodeTimePtr(dueDate); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = decodeTime(updated); err != nil {
		return nil, err
	}
	return &p, nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// loadAssignments populates the ordered user ID slices from the join tables.
func loadAssignments(ctx context.Context, q querier, p *project.Project) error {
	var err error
	p.SupportingSpecialistIDs, err = loadUserIDs(ctx, q, "project_supporting_specialists", p.ID)
	if err != nil {
		return err
	}
	p.ResponsibleUserIDs, err = loadUserIDs(ctx, q, "project_responsible_users", p.ID)
	return err
}

func loadUserIDs(ctx context.Context, q querier, table string, projectID int64) ([]int64, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT user_id FROM `+table+` WHERE project_id = ? ORDER BY position`, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", table, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// saveAssignments replaces the join table rows for a project.
func saveAssignments(ctx context.Context, q querier, table string, projectID int64, userIDs []int64) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM `+table+` WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("clearing %s: %w", table, err)
	}
	for i, userID := range userIDs {
		if _, err := q.ExecContext(ctx,
			`INSERT INTO `+table+` (project_id, user_id, position) VALUES (?, ?, ?)`,
			projectID, userID, i); err != nil {
			return fmt.Errorf("inserting into %s: %w", table, err)
		}
	}
	return nil
}

// populate attaches the requested relations to a loaded project.
func (s *ProjectStore) populate(ctx context.Context, q querier, p *project.Project, inc ports.Include) error {
	if err := loadAssignments(ctx, q, p); err != nil {
		return err
	}
	if inc.Tasks {
		tasks, err := queryTasks(ctx, q,
			`SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY board_order, id`, p.ID)
		if err != nil {
			return err
		}
		p.Tasks = tasks
	}
	if inc.Meetings {
		meetings, err := queryMeetings(ctx, q, p.ID)
		if err != nil {
			return err
		}
		p.Meetings = meetings
	}
	return nil
}

func queryMeetings(ctx context.Context, q querier, projectID int64) ([]project.Meeting, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, title, scheduled_at, author_id FROM meetings WHERE project_id = ? ORDER BY scheduled_at, id`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("loading meetings: %w", err)
	}
	defer rows.Close()

	meetings := make([]project.Meeting, 0)
	for rows.Next() {
		var (
			m           project.Meeting
			scheduledAt string
			authorID    sql.NullInt64
		)
		if err := rows.Scan(&m.ID, &m.Title, &scheduledAt, &authorID); err != nil {
			return nil, err
		}
		if m.ScheduledAt, err = decodeTime(scheduledAt); err != nil {
			return nil, err
		}
		m.AuthorID = int64Ptr(authorID)
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

// List returns projects matching the query, newest first.
func (s *ProjectStore) List(ctx context.Context, q ports.ProjectQuery) ([]project.Project, error) {
	var (
		where []string
		args  []any
	)
	if q.Status != "" {
		where = append(where, "status = ?")
		args = append(args, q.Status)
	}
	if q.DepartmentID != nil {
		where = append(where, "department_id = ?")
		args = append(args, *q.DepartmentID)
	}

	query := `SELECT ` + projectColumns + ` FROM projects`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	} else if q.Offset > 0 {
		// SQLite requires a LIMIT clause before OFFSET; -1 means unbounded.
		query += " LIMIT -1"
	}
	if q.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, q.Offset)
	}

	rows, err := s.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	projects := make([]project.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range projects {
		if err := s.populate(ctx, s.s.db, &projects[i], q.Include); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

// Get returns a single project by ID with the requested relations populated.
func (s *ProjectStore) Get(ctx context.Context, id int64, inc ports.Include) (*project.Project, error) {
	p, err := scanProject(s.s.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}
	if err := s.populate(ctx, s.s.db, p, inc); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByDocumentID resolves a project through its opaque document identifier.
func (s *ProjectStore) GetByDocumentID(ctx context.Context, documentID string, inc ports.Include) (*project.Project, error) {
	p, err := scanProject(s.s.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE document_id = ?`, documentID))
	if err != nil {
		return nil, err
	}
	if err := s.populate(ctx, s.s.db, p, inc); err != nil {
		return nil, err
	}
	return p, nil
}

// Create persists a new project, assigning ID, DocumentID, and timestamps.
func (s *ProjectStore) Create(ctx context.Context, p *project.Project) (*project.Project, error) {
	tx, err := s.s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	documentID := p.DocumentID
	if documentID == "" {
		documentID = newDocumentID()
	}
	now := encodeTime(s.s.now())

	res, err := tx.ExecContext(ctx, `
		INSERT INTO projects (document_id, title, description, department_id,
			start_date, due_date, status, priority, owner_id, stage_id,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		documentID, p.Title, p.Description, nullInt64(p.DepartmentID),
		encodeTimePtr(p.StartDate), encodeTimePtr(p.DueDate),
		p.Status, p.Priority, nullInt64(p.OwnerID), nullInt64(p.StageID),
		now, now)
	if err != nil {
		return nil, fmt.Errorf("inserting project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	if err := saveAssignments(ctx, tx, "project_supporting_specialists", id, p.SupportingSpecialistIDs); err != nil {
		return nil, err
	}
	if err := saveAssignments(ctx, tx, "project_responsible_users", id, p.ResponsibleUserIDs); err != nil {
		return nil, err
	}

	created, err := scanProject(tx.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}
	if err := loadAssignments(ctx, tx, created); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies the touched fields of ch and returns the updated record.
// The partial update is realized by loading the row, applying the change in
// memory, and writing the full row back inside one transaction.
func (s *ProjectStore) Update(ctx context.Context, id int64, ch project.Change) (*project.Project, error) {
	tx, err := s.s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	p, err := scanProject(tx.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id))
	if err != nil {
		return nil, err
	}
	if err := loadAssignments(ctx, tx, p); err != nil {
		return nil, err
	}

	ch.Apply(p)
	p.UpdatedAt = s.s.now()

	_, err = tx.ExecContext(ctx, `
		UPDATE projects SET title = ?, description = ?, department_id = ?,
			start_date = ?, due_date = ?, status = ?, priority = ?,
			owner_id = ?, stage_id = ?, updated_at = ?
		WHERE id = ?`,
		p.Title, p.Description, nullInt64(p.DepartmentID),
		encodeTimePtr(p.StartDate), encodeTimePtr(p.DueDate),
		p.Status, p.Priority, nullInt64(p.OwnerID), nullInt64(p.StageID),
		encodeTime(p.UpdatedAt), id)
	if err != nil {
		return nil, fmt.Errorf("updating project: %w", err)
	}

	if ch.SupportingSpecialistIDs.IsSet() {
		if err := saveAssignments(ctx, tx, "project_supporting_specialists", id, p.SupportingSpecialistIDs); err != nil {
			return nil, err
		}
	}
	if ch.ResponsibleUserIDs.IsSet() {
		if err := saveAssignments(ctx, tx, "project_responsible_users", id, p.ResponsibleUserIDs); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete physically removes the project; tasks, meetings, and assignment
// rows go with it through foreign key cascades.
func (s *ProjectStore) Delete(ctx context.Context, id int64) error {
	res, err := s.s.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting project: %w", err)
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
