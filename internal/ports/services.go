package ports

import (
	"context"

	"github.com/nnmc-digital/projectboard/internal/domain/activity"
	"github.com/nnmc-digital/projectboard/internal/domain/project"
	"github.com/nnmc-digital/projectboard/internal/domain/task"
)

// ProjectService defines the service port for project lifecycle operations.
// Implemented by the application layer; called by inbound adapters.
//
// Every mutation runs the ordered lifecycle chain (authorize -> validate ->
// persist -> post-process); every read runs the visibility gate and attaches
// derived progress. The caller identity is taken from the request context.
type ProjectService interface {
	// ListProjects returns projects visible to the caller, enriched with
	// derived progress. Non-administrators never receive DELETED projects.
	ListProjects(ctx context.Context, q ProjectQuery) ([]project.Project, error)

	// GetProject returns a single visible project with the requested
	// relations populated and progress attached. A DELETED project is
	// domain.ErrNotFound for non-administrators.
	GetProject(ctx context.Context, id int64, inc Include) (*project.Project, error)

	// CreateProject creates a new project. When the payload does not choose
	// a stage, the lowest-order stage is assigned. Yields a CREATE_PROJECT
	// audit entry.
	CreateProject(ctx context.Context, p *project.Project) (*project.Project, error)

	// UpdateProject applies a partial update. Status changes must follow
	// the lifecycle transitions. Yields audit entries derived from the
	// payload.
	UpdateProject(ctx context.Context, id int64, ch project.Change) (*project.Project, error)

	// ArchiveProject moves an ACTIVE project to ARCHIVED.
	ArchiveProject(ctx context.Context, id int64) (*project.Project, error)

	// RestoreProject moves an ARCHIVED project back to ACTIVE.
	RestoreProject(ctx context.Context, id int64) (*project.Project, error)

	// SoftDeleteProject marks the project DELETED without removing it.
	// Reversible only by administrators; hidden from ordinary callers.
	SoftDeleteProject(ctx context.Context, id int64) (*project.Project, error)

	// UpdateProjectStage sets or clears the manual stage override.
	UpdateProjectStage(ctx context.Context, id int64, stageID *int64) (*project.Project, error)

	// HardDeleteProject physically removes the project. Administrators only:
	// anonymous callers get domain.ErrUnauthenticated, everyone else
	// without the role gets domain.ErrForbidden.
	HardDeleteProject(ctx context.Context, id int64) error
}

// TaskService defines the service port for task mutations. Task reads flow
// through the project aggregate.
type TaskService interface {
	// CreateTask creates a task from the payload. The project reference is
	// required and resolved through its polymorphic forms. Date fields are
	// validated against the owning project's deadline before any write.
	CreateTask(ctx context.Context, ch task.Change) (*task.Task, error)

	// UpdateTask applies a partial update. Date validation runs only when
	// the payload touches a date field; the owning project is resolved from
	// the payload or, failing that, from the persisted task.
	UpdateTask(ctx context.Context, id int64, ch task.Change) (*task.Task, error)

	// DeleteTask removes the task, deriving its audit entry from the
	// pre-delete snapshot.
	DeleteTask(ctx context.Context, id int64) error
}

// ActivityService defines the read-only service port for the audit trail.
type ActivityService interface {
	// ListActivity returns audit entries ordered by creation time
	// descending, optionally filtered by project.
	ListActivity(ctx context.Context, f activity.Filter) ([]activity.Entry, error)
}
