package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/nnmc-digital/projectboard/internal/domain"
	"github.com/nnmc-digital/projectboard/internal/domain/task"
	"github.com/nnmc-digital/projectboard/internal/ports"
)

// DateValidator enforces the cross-entity deadline constraint: no task date
// may exceed the owning project's due date. It runs before task creates and
// updates, but only when the payload actually touches a date field; a
// payload without date fields never triggers validation.
type DateValidator struct {
	projects ports.ProjectStore
	tasks    ports.TaskStore
}

// NewDateValidator creates a DateValidator backed by the given stores.
func NewDateValidator(projects ports.ProjectStore, tasks ports.TaskStore) *DateValidator {
	return &DateValidator{projects: projects, tasks: tasks}
}

// ValidateCreate checks a task creation payload. The owning project comes
// from the payload's polymorphic reference.
func (v *DateValidator) ValidateCreate(ctx context.Context, ch task.Change) error {
	return v.validate(ctx, ch, nil)
}

// ValidateUpdate checks a task update payload. When the payload omits the
// project reference, the owning project is resolved from the task's current
// persisted state.
func (v *DateValidator) ValidateUpdate(ctx context.Context, taskID int64, ch task.Change) error {
	return v.validate(ctx, ch, func(ctx context.Context) (*int64, error) {
		current, err := v.tasks.Get(ctx, taskID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return current.ProjectID, nil
	})
}

func (v *DateValidator) validate(ctx context.Context, ch task.Change, fallback func(context.Context) (*int64, error)) error {
	if !ch.TouchesDates() {
		return nil
	}

	projectID, err := v.ResolveProjectID(ctx, ch.Project.Value())
	if err != nil {
		return err
	}
	if projectID == nil && fallback != nil {
		projectID, err = fallback(ctx)
		if err != nil {
			return err
		}
	}
	if projectID == nil {
		return nil
	}

	// Only the due date is needed; a zero Include fetches the base record.
	proj, err := v.projects.Get(ctx, *projectID, ports.Include{})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("fetching project %d for date validation: %w", *projectID, err)
	}

	return task.CheckDeadline(ch, proj.DueDate)
}

// ResolveProjectID resolves the owning project's identity from a
// polymorphic reference, falling through the supported forms in order:
// direct numeric id, opaque document identifier, then a connect descriptor
// pointing at one project. An unresolvable reference yields nil, not an
// error; the caller decides whether that is acceptable.
func (v *DateValidator) ResolveProjectID(ctx context.Context, ref task.ProjectRef) (*int64, error) {
	if ref.ID != 0 {
		id := ref.ID
		return &id, nil
	}
	if ref.DocumentID != "" {
		proj, err := v.projects.GetByDocumentID(ctx, ref.DocumentID, ports.Include{})
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		return &proj.ID, nil
	}
	if len(ref.Connect) > 0 {
		return v.ResolveProjectID(ctx, ref.Connect[0])
	}
	return nil, nil
}
