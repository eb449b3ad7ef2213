package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nnmc-digital/projectboard/internal/domain"
	"github.com/nnmc-digital/projectboard/internal/domain/activity"
	"github.com/nnmc-digital/projectboard/internal/domain/identity"
	"github.com/nnmc-digital/projectboard/internal/domain/project"
	"github.com/nnmc-digital/projectboard/internal/ports"
)

// Compile-time check that ProjectService implements ports.ProjectService.
var _ ports.ProjectService = (*ProjectService)(nil)

// ProjectService implements ports.ProjectService. It sequences the lifecycle
// components around the project store: the assignment gate and visibility
// filter, status transition rules, the default stage resolver, derived
// progress on reads, and best-effort audit recording after mutations.
type ProjectService struct {
	projects ports.ProjectStore
	tasks    ports.TaskStore
	resolver *StageResolver
	recorder *ActivityRecorder
	policy   *Policy
	logger   *slog.Logger

	// now is injectable for deterministic progress computation in tests.
	now func() time.Time
}

// NewProjectService creates a ProjectService wired to the given stores and
// lifecycle components.
func NewProjectService(
	projects ports.ProjectStore,
	tasks ports.TaskStore,
	resolver *StageResolver,
	recorder *ActivityRecorder,
	policy *Policy,
	logger *slog.Logger,
) *ProjectService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ProjectService{
		projects: projects,
		tasks:    tasks,
		resolver: resolver,
		recorder: recorder,
		policy:   policy,
		logger:   logger,
		now:      time.Now,
	}
}

// actorID extracts the nullable acting-user id for audit entries.
func actorID(caller *identity.Caller) *int64 {
	if caller == nil {
		return nil
	}
	id := caller.UserID
	return &id
}

// enrich attaches derived progress to p, loading its tasks first if the
// read path did not include them. The percent-range stage hint comes from
// the catalog.
func (s *ProjectService) enrich(ctx context.Context, p *project.Project) error {
	if p.Tasks == nil {
		tasks, err := s.tasks.ListByProject(ctx, p.ID)
		if err != nil {
			return fmt.Errorf("loading tasks for project %d: %w", p.ID, err)
		}
		p.Tasks = tasks
	}
	catalog, err := s.resolver.Catalog(ctx)
	if err != nil {
		return err
	}
	prog := project.ComputeProgress(p, s.now())
	if st, ok := catalog.ForPercent(prog.Percent); ok {
		prog.StageHintID = &st.ID
	}
	p.Progress = &prog
	return nil
}

// ListProjects returns projects visible to the caller, enriched with
// derived progress. Tasks are always included because progress is computed
// from them on every read path.
func (s *ProjectService) ListProjects(ctx context.Context, q ports.ProjectQuery) ([]project.Project, error) {
	caller := identity.CallerFromContext(ctx)
	s.logger.InfoContext(ctx, "listing projects")

	q.Include.Tasks = true
	projects, err := s.projects.List(ctx, q)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list projects",
			slog.String("operation", "ListProjects"),
			slog.Any("error", err),
		)
		return nil, err
	}

	projects = s.policy.FilterVisible(caller, projects)

	// One catalog load covers the whole page.
	catalog, err := s.resolver.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	for i := range projects {
		prog := project.ComputeProgress(&projects[i], now)
		if st, ok := catalog.ForPercent(prog.Percent); ok {
			prog.StageHintID = &st.ID
		}
		projects[i].Progress = &prog
	}
	return projects, nil
}

// GetProject returns a single visible project with progress attached. For
// non-administrators a DELETED project is reported as not found; callers
// cannot distinguish absence from visibility suppression.
func (s *ProjectService) GetProject(ctx context.Context, id int64, inc ports.Include) (*project.Project, error) {
	caller := identity.CallerFromContext(ctx)
	s.logger.InfoContext(ctx, "fetching project", slog.Int64("id", id))

	inc.Tasks = true
	proj, err := s.projects.Get(ctx, id, inc)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch project",
			slog.String("operation", "GetProject"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}

	if !s.policy.CanSeeProject(caller, proj) {
		return nil, domain.ErrNotFound
	}

	if err := s.enrich(ctx, proj); err != nil {
		return nil, err
	}
	return proj, nil
}

// CreateProject runs the creation lifecycle: assignment gate, entity
// validation, default stage resolution, persistence, then audit recording.
func (s *ProjectService) CreateProject(ctx context.Context, p *project.Project) (*project.Project, error) {
	caller := identity.CallerFromContext(ctx)
	s.logger.InfoContext(ctx, "creating project", slog.String("title", p.Title))

	if p.Status == "" {
		p.Status = project.StatusActive
	}
	if p.Priority == "" {
		p.Priority = project.PriorityGreen
	}

	var created *project.Project
	err := runPipeline(ctx, s.logger, "CreateProject",
		Step{Name: "authorize", Run: func(context.Context) error {
			return s.policy.RequireCreateAccess(caller, p.DepartmentID)
		}},
		Step{Name: "validate", Run: func(context.Context) error {
			return p.Validate()
		}},
		Step{Name: "resolve-stage", Run: func(ctx context.Context) error {
			return s.resolver.Resolve(ctx, p)
		}},
		Step{Name: "persist", Run: func(ctx context.Context) error {
			var err error
			created, err = s.projects.Create(ctx, p)
			return err
		}},
		Step{Name: "post-process", Run: func(ctx context.Context) error {
			s.recorder.Record(ctx, activity.ProjectCreated(created, actorID(caller)))
			return s.enrich(ctx, created)
		}},
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create project",
			slog.String("operation", "CreateProject"),
			slog.Any("error", err),
		)
		return nil, err
	}
	return created, nil
}

// UpdateProject applies a partial update through the full lifecycle chain.
func (s *ProjectService) UpdateProject(ctx context.Context, id int64, ch project.Change) (*project.Project, error) {
	caller := identity.CallerFromContext(ctx)
	s.logger.InfoContext(ctx, "updating project", slog.Int64("id", id))

	var current, updated *project.Project
	err := runPipeline(ctx, s.logger, "UpdateProject",
		Step{Name: "authorize", Run: func(ctx context.Context) error {
			var err error
			current, err = s.projects.Get(ctx, id, ports.Include{})
			if err != nil {
				return err
			}
			if !s.policy.CanSeeProject(caller, current) {
				return domain.ErrNotFound
			}
			return s.policy.RequireProjectAccess(caller, current)
		}},
		Step{Name: "validate", Run: func(ctx context.Context) error {
			if err := ch.Validate(); err != nil {
				return err
			}
			if target, ok := ch.Status.Get(); ok && !current.Status.CanTransitionTo(target) {
				return &domain.ValidationError{Fields: map[string]string{
					"status": fmt.Sprintf("cannot transition from %s to %s", current.Status, target),
				}}
			}
			if stageID, ok := ch.StageID.Get(); ok {
				if err := s.resolver.ValidateOverride(ctx, stageID); err != nil {
					return err
				}
			}
			return nil
		}},
		Step{Name: "persist", Run: func(ctx context.Context) error {
			var err error
			updated, err = s.projects.Update(ctx, id, ch)
			return err
		}},
		Step{Name: "post-process", Run: func(ctx context.Context) error {
			s.recorder.Record(ctx, activity.ProjectUpdated(updated, ch, actorID(caller))...)
			return s.enrich(ctx, updated)
		}},
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update project",
			slog.String("operation", "UpdateProject"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}
	return updated, nil
}

// ArchiveProject moves an ACTIVE project to ARCHIVED.
func (s *ProjectService) ArchiveProject(ctx context.Context, id int64) (*project.Project, error) {
	return s.UpdateProject(ctx, id, project.Change{
		Status: domain.Set(project.StatusArchived),
	})
}

// RestoreProject moves an ARCHIVED project back to ACTIVE.
func (s *ProjectService) RestoreProject(ctx context.Context, id int64) (*project.Project, error) {
	return s.UpdateProject(ctx, id, project.Change{
		Status: domain.Set(project.StatusActive),
	})
}

// SoftDeleteProject marks the project DELETED without removing the record.
// The derived audit classification yields a single DELETE_PROJECT entry.
func (s *ProjectService) SoftDeleteProject(ctx context.Context, id int64) (*project.Project, error) {
	return s.UpdateProject(ctx, id, project.Change{
		Status: domain.Set(project.StatusDeleted),
	})
}

// UpdateProjectStage sets or clears the manual stage override. This is the
// only stage movement after the creation-time default. A non-nil id must
// name a catalog stage; nil clears the override and is always accepted.
func (s *ProjectService) UpdateProjectStage(ctx context.Context, id int64, stageID *int64) (*project.Project, error) {
	return s.UpdateProject(ctx, id, project.Change{
		StageID: domain.Set(stageID),
	})
}

// HardDeleteProject physically removes the project. Administrator only.
func (s *ProjectService) HardDeleteProject(ctx context.Context, id int64) error {
	caller := identity.CallerFromContext(ctx)
	s.logger.InfoContext(ctx, "hard-deleting project", slog.Int64("id", id))

	err := runPipeline(ctx, s.logger, "HardDeleteProject",
		Step{Name: "authorize", Run: func(context.Context) error {
			return s.policy.RequireAdmin(caller)
		}},
		Step{Name: "locate", Run: func(ctx context.Context) error {
			_, err := s.projects.Get(ctx, id, ports.Include{})
			return err
		}},
		Step{Name: "persist", Run: func(ctx context.Context) error {
			return s.projects.Delete(ctx, id)
		}},
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to hard-delete project",
			slog.String("operation", "HardDeleteProject"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}
