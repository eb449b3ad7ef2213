package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nnmc-digital/projectboard/internal/domain/activity"
	"github.com/nnmc-digital/projectboard/internal/domain/project"
	"github.com/nnmc-digital/projectboard/internal/domain/task"
	"github.com/nnmc-digital/projectboard/internal/ports"
)

var testTime = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func int64Ptr(v int64) *int64 { return &v }

func withChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func validProject() *project.Project {
	return &project.Project{
		ID:         1,
		DocumentID: "p1doc",
		Title:      "Data platform",
		Status:     project.StatusActive,
		Priority:   project.PriorityGreen,
		StageID:    int64Ptr(1),
		Progress:   &project.Progress{},
		CreatedAt:  testTime,
		UpdatedAt:  testTime,
	}
}

func validTask() *task.Task {
	return &task.Task{
		ID:         10,
		DocumentID: "t10doc",
		Title:      "Ship it",
		Status:     task.StatusTodo,
		ProjectID:  int64Ptr(1),
		CreatedAt:  testTime,
		UpdatedAt:  testTime,
	}
}

// stubProjectService implements ports.ProjectService with overridable
// function fields. Unset operations return an empty success.
type stubProjectService struct {
	listFn       func(ctx context.Context, q ports.ProjectQuery) ([]project.Project, error)
	getFn        func(ctx context.Context, id int64, inc ports.Include) (*project.Project, error)
	createFn     func(ctx context.Context, p *project.Project) (*project.Project, error)
	updateFn     func(ctx context.Context, id int64, ch project.Change) (*project.Project, error)
	archiveFn    func(ctx context.Context, id int64) (*project.Project, error)
	restoreFn    func(ctx context.Context, id int64) (*project.Project, error)
	softDeleteFn func(ctx context.Context, id int64) (*project.Project, error)
	stageFn      func(ctx context.Context, id int64, stageID *int64) (*project.Project, error)
	hardDeleteFn func(ctx context.Context, id int64) error
}

func (s *stubProjectService) ListProjects(ctx context.Context, q ports.ProjectQuery) ([]project.Project, error) {
	if s.listFn != nil {
		return s.listFn(ctx, q)
	}
	return nil, nil
}

func (s *stubProjectService) GetProject(ctx context.Context, id int64, inc ports.Include) (*project.Project, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id, inc)
	}
	return validProject(), nil
}

func (s *stubProjectService) CreateProject(ctx context.Context, p *project.Project) (*project.Project, error) {
	if s.createFn != nil {
		return s.createFn(ctx, p)
	}
	return validProject(), nil
}

func (s *stubProjectService) UpdateProject(ctx context.Context, id int64, ch project.Change) (*project.Project, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, ch)
	}
	return validProject(), nil
}

func (s *stubProjectService) ArchiveProject(ctx context.Context, id int64) (*project.Project, error) {
	if s.archiveFn != nil {
		return s.archiveFn(ctx, id)
	}
	return validProject(), nil
}

func (s *stubProjectService) RestoreProject(ctx context.Context, id int64) (*project.Project, error) {
	if s.restoreFn != nil {
		return s.restoreFn(ctx, id)
	}
	return validProject(), nil
}

func (s *stubProjectService) SoftDeleteProject(ctx context.Context, id int64) (*project.Project, error) {
	if s.softDeleteFn != nil {
		return s.softDeleteFn(ctx, id)
	}
	return validProject(), nil
}

func (s *stubProjectService) UpdateProjectStage(ctx context.Context, id int64, stageID *int64) (*project.Project, error) {
	if s.stageFn != nil {
		return s.stageFn(ctx, id, stageID)
	}
	return validProject(), nil
}

func (s *stubProjectService) HardDeleteProject(ctx context.Context, id int64) error {
	if s.hardDeleteFn != nil {
		return s.hardDeleteFn(ctx, id)
	}
	return nil
}

// stubTaskService implements ports.TaskService with overridable function
// fields.
type stubTaskService struct {
	createFn func(ctx context.Context, ch task.Change) (*task.Task, error)
	updateFn func(ctx context.Context, id int64, ch task.Change) (*task.Task, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubTaskService) CreateTask(ctx context.Context, ch task.Change) (*task.Task, error) {
	if s.createFn != nil {
		return s.createFn(ctx, ch)
	}
	return validTask(), nil
}

func (s *stubTaskService) UpdateTask(ctx context.Context, id int64, ch task.Change) (*task.Task, error) {
	if s.updateFn != nil {
		return s.updateFn(ctx, id, ch)
	}
	return validTask(), nil
}

func (s *stubTaskService) DeleteTask(ctx context.Context, id int64) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return nil
}

// stubActivityService implements ports.ActivityService.
type stubActivityService struct {
	listFn func(ctx context.Context, f activity.Filter) ([]activity.Entry, error)
}

func (s *stubActivityService) ListActivity(ctx context.Context, f activity.Filter) ([]activity.Entry, error) {
	if s.listFn != nil {
		return s.listFn(ctx, f)
	}
	return nil, nil
}
