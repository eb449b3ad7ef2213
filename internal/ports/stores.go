package ports

import (
	"context"

	"github.com/nnmc-digital/projectboard/internal/domain/activity"
	"github.com/nnmc-digital/projectboard/internal/domain/project"
	"github.com/nnmc-digital/projectboard/internal/domain/stage"
	"github.com/nnmc-digital/projectboard/internal/domain/task"
)

// ProjectQuery holds filter, pagination, and inclusion criteria for listing
// projects. Zero-value fields mean "no filter" for that dimension; a zero
// Limit means no pagination.
type ProjectQuery struct {
	Status       project.Status
	DepartmentID *int64
	Include      Include
	Limit        int
	Offset       int
}

// ProjectStore is the persistence port for project records. The store is an
// external collaborator: it persists what it is told and never evaluates
// lifecycle rules itself. Visibility filtering and enrichment happen in the
// application layer on top of these primitives.
type ProjectStore interface {
	// List returns projects matching the query, newest first, with the
	// requested relations populated.
	List(ctx context.Context, q ProjectQuery) ([]project.Project, error)

	// Get returns a single project by ID with the requested relations
	// populated. A zero Include fetches only the base record.
	// Returns domain.ErrNotFound if the project does not exist.
	Get(ctx context.Context, id int64, inc Include) (*project.Project, error)

	// GetByDocumentID resolves a project through its opaque document
	// identifier. Returns domain.ErrNotFound if absent.
	GetByDocumentID(ctx context.Context, documentID string, inc Include) (*project.Project, error)

	// Create persists a new project and returns it with server-assigned
	// fields (ID, DocumentID, timestamps).
	Create(ctx context.Context, p *project.Project) (*project.Project, error)

	// Update applies the touched fields of ch to the project and returns
	// the updated record. Untouched fields are left unchanged.
	// Returns domain.ErrNotFound if the project does not exist.
	Update(ctx context.Context, id int64, ch project.Change) (*project.Project, error)

	// Delete physically removes the project record and its tasks. This is
	// the hard-delete primitive; soft deletion is a status update.
	// Returns domain.ErrNotFound if the project does not exist.
	Delete(ctx context.Context, id int64) error
}

// TaskStore is the persistence port for task records.
type TaskStore interface {
	// ListByProject returns a project's tasks in board order.
	ListByProject(ctx context.Context, projectID int64) ([]task.Task, error)

	// Get returns a single task by ID.
	// Returns domain.ErrNotFound if the task does not exist.
	Get(ctx context.Context, id int64) (*task.Task, error)

	// GetByDocumentID resolves a task through its opaque document identifier.
	GetByDocumentID(ctx context.Context, documentID string) (*task.Task, error)

	// Create persists a new task and returns it with server-assigned fields.
	Create(ctx context.Context, t *task.Task) (*task.Task, error)

	// Update applies the touched fields of ch to the task and returns the
	// updated record. Returns domain.ErrNotFound if the task does not exist.
	Update(ctx context.Context, id int64, ch task.Change) (*task.Task, error)

	// Delete removes the task. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, id int64) error
}

// StageStore is the read-only persistence port for the board stage catalog.
type StageStore interface {
	// List returns all stages ordered by their board order.
	List(ctx context.Context) ([]stage.Stage, error)

	// Get returns a single stage by ID.
	// Returns domain.ErrNotFound if the stage does not exist.
	Get(ctx context.Context, id int64) (*stage.Stage, error)
}

// ActivityStore is the append-only persistence port for the audit trail.
type ActivityStore interface {
	// Append persists a new entry, stamping CreatedAt, and returns it.
	// Entries are never updated or deleted through this port.
	Append(ctx context.Context, e *activity.Entry) (*activity.Entry, error)

	// List returns entries matching the filter, ordered by creation time
	// descending.
	List(ctx context.Context, f activity.Filter) ([]activity.Entry, error)
}
