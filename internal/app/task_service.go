package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/nnmc-digital/projectboard/internal/domain"
	"github.com/nnmc-digital/projectboard/internal/domain/activity"
	"github.com/nnmc-digital/projectboard/internal/domain/identity"
	"github.com/nnmc-digital/projectboard/internal/domain/project"
	"github.com/nnmc-digital/projectboard/internal/domain/task"
	"github.com/nnmc-digital/projectboard/internal/ports"
)

// Compile-time check that TaskService implements ports.TaskService.
var _ ports.TaskService = (*TaskService)(nil)

// TaskService implements ports.TaskService. Task mutations run the same
// lifecycle chain as project mutations: assignment gate against the owning
// project, payload validation, the cross-entity deadline check, persistence,
// then best-effort audit recording.
type TaskService struct {
	tasks     ports.TaskStore
	projects  ports.ProjectStore
	validator *DateValidator
	recorder  *ActivityRecorder
	policy    *Policy
	logger    *slog.Logger
}

// NewTaskService creates a TaskService wired to the given stores and
// lifecycle components.
func NewTaskService(
	tasks ports.TaskStore,
	projects ports.ProjectStore,
	validator *DateValidator,
	recorder *ActivityRecorder,
	policy *Policy,
	logger *slog.Logger,
) *TaskService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TaskService{
		tasks:     tasks,
		projects:  projects,
		validator: validator,
		recorder:  recorder,
		policy:    policy,
		logger:    logger,
	}
}

// CreateTask creates a task under the project named by the payload's
// polymorphic reference. The reference is mandatory on create.
func (s *TaskService) CreateTask(ctx context.Context, ch task.Change) (*task.Task, error) {
	caller := identity.CallerFromContext(ctx)
	s.logger.InfoContext(ctx, "creating task")

	var owning *project.Project
	var created *task.Task
	err := runPipeline(ctx, s.logger, "CreateTask",
		Step{Name: "authorize", Run: func(ctx context.Context) error {
			projectID, err := s.validator.ResolveProjectID(ctx, ch.Project.Value())
			if err != nil {
				return err
			}
			if projectID == nil {
				return &domain.ValidationError{Fields: map[string]string{
					"project": domain.MsgRequired,
				}}
			}
			owning, err = s.projects.Get(ctx, *projectID, ports.Include{})
			if err != nil {
				return err
			}
			if !s.policy.CanSeeProject(caller, owning) {
				return domain.ErrNotFound
			}
			return s.policy.RequireProjectAccess(caller, owning)
		}},
		Step{Name: "validate", Run: func(ctx context.Context) error {
			if err := ch.Validate(); err != nil {
				return err
			}
			if _, ok := ch.Title.Get(); !ok {
				return &domain.ValidationError{Fields: map[string]string{
					"title": domain.MsgRequired,
				}}
			}
			return s.validator.ValidateCreate(ctx, ch)
		}},
		Step{Name: "persist", Run: func(ctx context.Context) error {
			t := &task.Task{Status: task.StatusTodo}
			ch.Apply(t)
			t.ProjectID = &owning.ID
			var err error
			created, err = s.tasks.Create(ctx, t)
			return err
		}},
		Step{Name: "post-process", Run: func(ctx context.Context) error {
			s.recorder.Record(ctx, activity.TaskCreated(created, owning.Title, actorID(caller)))
			return nil
		}},
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to create task",
			slog.String("operation", "CreateTask"),
			slog.Any("error", err),
		)
		return nil, err
	}
	return created, nil
}

// UpdateTask applies a partial update to a task, gated by access to its
// owning project.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, ch task.Change) (*task.Task, error) {
	caller := identity.CallerFromContext(ctx)
	s.logger.InfoContext(ctx, "updating task", slog.Int64("id", id))

	var owning *project.Project
	var updated *task.Task
	err := runPipeline(ctx, s.logger, "UpdateTask",
		Step{Name: "authorize", Run: func(ctx context.Context) error {
			current, err := s.tasks.Get(ctx, id)
			if err != nil {
				return err
			}
			owning, err = s.owningProject(ctx, current)
			if err != nil {
				return err
			}
			return s.requireTaskAccess(caller, owning)
		}},
		Step{Name: "validate", Run: func(ctx context.Context) error {
			if err := ch.Validate(); err != nil {
				return err
			}
			return s.validator.ValidateUpdate(ctx, id, ch)
		}},
		Step{Name: "persist", Run: func(ctx context.Context) error {
			var err error
			updated, err = s.tasks.Update(ctx, id, ch)
			return err
		}},
		Step{Name: "post-process", Run: func(ctx context.Context) error {
			title := ""
			if owning != nil {
				title = owning.Title
			}
			s.recorder.Record(ctx, activity.TaskUpdated(updated, ch, title, actorID(caller)))
			return nil
		}},
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update task",
			slog.String("operation", "UpdateTask"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return nil, err
	}
	return updated, nil
}

// DeleteTask removes a task. The audit entry is built from the task's state
// before deletion so it names the deleted title and project.
func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	caller := identity.CallerFromContext(ctx)
	s.logger.InfoContext(ctx, "deleting task", slog.Int64("id", id))

	var snapshot *task.Task
	var owning *project.Project
	err := runPipeline(ctx, s.logger, "DeleteTask",
		Step{Name: "authorize", Run: func(ctx context.Context) error {
			var err error
			snapshot, err = s.tasks.Get(ctx, id)
			if err != nil {
				return err
			}
			owning, err = s.owningProject(ctx, snapshot)
			if err != nil {
				return err
			}
			return s.requireTaskAccess(caller, owning)
		}},
		Step{Name: "persist", Run: func(ctx context.Context) error {
			return s.tasks.Delete(ctx, id)
		}},
		Step{Name: "post-process", Run: func(ctx context.Context) error {
			title := ""
			if owning != nil {
				title = owning.Title
			}
			s.recorder.Record(ctx, activity.TaskDeleted(snapshot, title, actorID(caller)))
			return nil
		}},
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to delete task",
			slog.String("operation", "DeleteTask"),
			slog.Int64("id", id),
			slog.Any("error", err),
		)
		return err
	}
	return nil
}

// owningProject loads the task's project. Tasks can outlive their project
// reference, so a dangling reference resolves to nil rather than an error.
func (s *TaskService) owningProject(ctx context.Context, t *task.Task) (*project.Project, error) {
	if t.ProjectID == nil {
		return nil, nil
	}
	proj, err := s.projects.Get(ctx, *t.ProjectID, ports.Include{})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return proj, nil
}

// requireTaskAccess gates a task mutation on its owning project. A task
// without a resolvable project only requires an authenticated caller.
func (s *TaskService) requireTaskAccess(caller *identity.Caller, owning *project.Project) error {
	if owning == nil {
		if caller == nil {
			return domain.ErrUnauthenticated
		}
		return nil
	}
	if !s.policy.CanSeeProject(caller, owning) {
		return domain.ErrNotFound
	}
	return s.policy.RequireProjectAccess(caller, owning)
}
