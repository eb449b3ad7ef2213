package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nnmc-digital/projectboard/internal/domain"
	"github.com/nnmc-digital/projectboard/internal/domain/activity"
	"github.com/nnmc-digital/projectboard/internal/domain/project"
	"github.com/nnmc-digital/projectboard/internal/domain/task"
	"github.com/nnmc-digital/projectboard/internal/ports"
)

func TestNewProjectService_NilLogger(t *testing.T) {
	t.Parallel()
	svc := NewProjectService(nil, nil, nil, nil, NewPolicy(), nil)
	if svc.logger == nil {
		t.Fatal("NewProjectService(nil logger) should create a no-op logger, got nil")
	}
}

// --- CreateProject ---

func TestProjectService_CreateProject(t *testing.T) {
	t.Parallel()

	t.Run("assigns the lowest-order stage by default", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		created, err := f.projects.CreateProject(adminCtx(), &project.Project{Title: "Data platform"})
		if err != nil {
			t.Fatalf("CreateProject() error = %v, want nil", err)
		}
		if created.StageID == nil || *created.StageID != 1 {
			t.Errorf("CreateProject() StageID = %v, want 1 (lowest order)", created.StageID)
		}
	})

	t.Run("keeps an explicitly chosen stage", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		created, err := f.projects.CreateProject(adminCtx(), &project.Project{
			Title:   "Data platform",
			StageID: int64Ptr(3),
		})
		if err != nil {
			t.Fatalf("CreateProject() error = %v, want nil", err)
		}
		if created.StageID == nil || *created.StageID != 3 {
			t.Errorf("CreateProject() StageID = %v, want 3", created.StageID)
		}
	})

	t.Run("leaves the stage unset when the catalog is empty", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.store.SeedStages(nil)

		created, err := f.projects.CreateProject(adminCtx(), &project.Project{Title: "Data platform"})
		if err != nil {
			t.Fatalf("CreateProject() error = %v, want nil", err)
		}
		if created.StageID != nil {
			t.Errorf("CreateProject() StageID = %v, want nil for empty catalog", *created.StageID)
		}
	})

	t.Run("rejects an explicitly chosen stage the catalog does not have", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		_, err := f.projects.CreateProject(adminCtx(), &project.Project{
			Title:   "Data platform",
			StageID: int64Ptr(999),
		})
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("CreateProject() error = %v, want *domain.ValidationError", err)
		}
		if _, ok := verr.Fields["manualStageOverride"]; !ok {
			t.Errorf("validation error missing manualStageOverride field: %v", verr.Fields)
		}
	})

	t.Run("defaults status and priority", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		created, err := f.projects.CreateProject(adminCtx(), &project.Project{Title: "Data platform"})
		if err != nil {
			t.Fatalf("CreateProject() error = %v, want nil", err)
		}
		if created.Status != project.StatusActive {
			t.Errorf("CreateProject() Status = %q, want %q", created.Status, project.StatusActive)
		}
		if created.Priority != project.PriorityGreen {
			t.Errorf("CreateProject() Priority = %q, want %q", created.Priority, project.PriorityGreen)
		}
	})

	t.Run("rejects a missing title", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		_, err := f.projects.CreateProject(adminCtx(), &project.Project{Title: "   "})
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("CreateProject() error = %v, want *domain.ValidationError", err)
		}
		if verr.Fields["title"] != domain.MsgRequired {
			t.Errorf("Fields[title] = %q, want %q", verr.Fields["title"], domain.MsgRequired)
		}
	})

	t.Run("rejects an anonymous caller", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		_, err := f.projects.CreateProject(context.Background(), &project.Project{Title: "Data platform"})
		if !errors.Is(err, domain.ErrUnauthenticated) {
			t.Errorf("CreateProject() error = %v, want ErrUnauthenticated", err)
		}
	})

	t.Run("rejects a member creating outside their department", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		_, err := f.projects.CreateProject(memberCtx(7, int64Ptr(1)), &project.Project{
			Title:        "Data platform",
			DepartmentID: int64Ptr(2),
		})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("CreateProject() error = %v, want ErrForbidden", err)
		}
	})

	t.Run("records a CREATE_PROJECT entry", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		created, err := f.projects.CreateProject(adminCtx(), &project.Project{Title: "Data platform"})
		if err != nil {
			t.Fatalf("CreateProject() error = %v, want nil", err)
		}

		entries, err := f.activity.ListActivity(adminCtx(), activity.Filter{ProjectID: &created.ID})
		if err != nil {
			t.Fatalf("ListActivity() error = %v, want nil", err)
		}
		if len(entries) != 1 {
			t.Fatalf("ListActivity() len = %d, want 1", len(entries))
		}
		if entries[0].Action != activity.ActionCreateProject {
			t.Errorf("entry Action = %q, want %q", entries[0].Action, activity.ActionCreateProject)
		}
		if entries[0].Description != `Created project "Data platform"` {
			t.Errorf("entry Description = %q", entries[0].Description)
		}
	})
}

// --- derived progress ---

func TestProjectService_GetProject_Progress(t *testing.T) {
	t.Parallel()

	seedTasks := func(t *testing.T, f *fixture, projectID int64, statuses ...task.Status) {
		t.Helper()
		for i, st := range statuses {
			_, err := f.store.Tasks.Create(context.Background(), &task.Task{
				Title:     "task",
				Status:    st,
				Order:     i,
				ProjectID: &projectID,
			})
			if err != nil {
				t.Fatalf("seeding task: %v", err)
			}
		}
	}

	t.Run("rounds the done ratio to the nearest whole percent", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		created, err := f.projects.CreateProject(adminCtx(), &project.Project{Title: "P"})
		if err != nil {
			t.Fatalf("CreateProject() error = %v", err)
		}
		seedTasks(t, f, created.ID, task.StatusDone, task.StatusTodo, task.StatusInProgress)

		got, err := f.projects.GetProject(adminCtx(), created.ID, ports.Include{})
		if err != nil {
			t.Fatalf("GetProject() error = %v", err)
		}
		if got.Progress == nil {
			t.Fatal("GetProject() Progress = nil, want computed")
		}
		// 1 of 3 done -> 33, not 33.33.
		if got.Progress.Percent != 33 {
			t.Errorf("Progress.Percent = %d, want 33", got.Progress.Percent)
		}
		if got.Progress.TotalTasks != 3 || got.Progress.DoneTasks != 1 {
			t.Errorf("Progress counts = %d/%d, want 1/3", got.Progress.DoneTasks, got.Progress.TotalTasks)
		}
	})

	t.Run("reports zero percent for a project without tasks", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		created, err := f.projects.CreateProject(adminCtx(), &project.Project{Title: "P"})
		if err != nil {
			t.Fatalf("CreateProject() error = %v", err)
		}

		got, err := f.projects.GetProject(adminCtx(), created.ID, ports.Include{})
		if err != nil {
			t.Fatalf("GetProject() error = %v", err)
		}
		if got.Progress == nil || got.Progress.Percent != 0 {
			t.Errorf("Progress = %+v, want Percent 0", got.Progress)
		}
	})

	t.Run("reports the percent-range stage without moving the override", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		created, err := f.projects.CreateProject(adminCtx(), &project.Project{Title: "P"})
		if err != nil {
			t.Fatalf("CreateProject() error = %v", err)
		}
		seedTasks(t, f, created.ID, task.StatusDone, task.StatusTodo, task.StatusInProgress)

		// 33% falls in Execution's 20-70 range.
		got, err := f.projects.GetProject(adminCtx(), created.ID, ports.Include{})
		if err != nil {
			t.Fatalf("GetProject() error = %v", err)
		}
		if got.Progress.StageHintID == nil || *got.Progress.StageHintID != 3 {
			t.Errorf("Progress.StageHintID = %v, want 3 (Execution)", got.Progress.StageHintID)
		}
		if got.StageID == nil || *got.StageID != 1 {
			t.Errorf("StageID = %v, want 1 (override untouched by the hint)", got.StageID)
		}

		// The list path carries the same hint.
		list, err := f.projects.ListProjects(adminCtx(), ports.ProjectQuery{})
		if err != nil {
			t.Fatalf("ListProjects() error = %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("ListProjects() len = %d, want 1", len(list))
		}
		if list[0].Progress.StageHintID == nil || *list[0].Progress.StageHintID != 3 {
			t.Errorf("list Progress.StageHintID = %v, want 3", list[0].Progress.StageHintID)
		}
	})

	t.Run("leaves the stage hint unset when the catalog is empty", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		f.store.SeedStages(nil)

		created, err := f.projects.CreateProject(adminCtx(), &project.Project{Title: "P"})
		if err != nil {
			t.Fatalf("CreateProject() error = %v", err)
		}
		got, err := f.projects.GetProject(adminCtx(), created.ID, ports.Include{})
		if err != nil {
			t.Fatalf("GetProject() error = %v", err)
		}
		if got.Progress.StageHintID != nil {
			t.Errorf("Progress.StageHintID = %v, want nil for empty catalog", *got.Progress.StageHintID)
		}
	})

	t.Run("flags overdue and due-soon only for active projects", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		// Frozen clock: 2024-06-15.
		overdueP, err := f.projects.CreateProject(adminCtx(), &project.Project{
			Title:   "Late",
			DueDate: timePtr(date(2024, time.June, 10)),
		})
		if err != nil {
			t.Fatalf("CreateProject() error = %v", err)
		}
		dueSoonP, err := f.projects.CreateProject(adminCtx(), &project.Project{
			Title:   "Close",
			DueDate: timePtr(date(2024, time.June, 17)),
		})
		if err != nil {
			t.Fatalf("CreateProject() error = %v", err)
		}

		got, err := f.projects.GetProject(adminCtx(), overdueP.ID, ports.Include{})
		if err != nil {
			t.Fatalf("GetProject() error = %v", err)
		}
		if !got.Progress.Overdue || got.Progress.DueSoon {
			t.Errorf("overdue project flags = overdue %v dueSoon %v, want true/false",
				got.Progress.Overdue, got.Progress.DueSoon)
		}

		got, err = f.projects.GetProject(adminCtx(), dueSoonP.ID, ports.Include{})
		if err != nil {
			t.Fatalf("GetProject() error = %v", err)
		}
		if got.Progress.Overdue || !got.Progress.DueSoon {
			t.Errorf("due-soon project flags = overdue %v dueSoon %v, want false/true",
				got.Progress.Overdue, got.Progress.DueSoon)
		}

		// Archiving clears both flags regardless of dates.
		if _, err := f.projects.ArchiveProject(adminCtx(), overdueP.ID); err != nil {
			t.Fatalf("ArchiveProject() error = %v", err)
		}
		got, err = f.projects.GetProject(adminCtx(), overdueP.ID, ports.Include{})
		if err != nil {
			t.Fatalf("GetProject() error = %v", err)
		}
		if got.Progress.Overdue || got.Progress.DueSoon {
			t.Errorf("archived project flags = overdue %v dueSoon %v, want false/false",
				got.Progress.Overdue, got.Progress.DueSoon)
		}
	})
}

// --- manual stage override ---

func TestProjectService_UpdateProjectStage(t *testing.T) {
	t.Parallel()

	create := func(t *testing.T, f *fixture) *project.Project {
		t.Helper()
		created, err := f.projects.CreateProject(adminCtx(), &project.Project{Title: "P"})
		if err != nil {
			t.Fatalf("CreateProject() error = %v", err)
		}
		return created
	}

	t.Run("moves to a catalog stage", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		p := create(t, f)

		moved, err := f.projects.UpdateProjectStage(adminCtx(), p.ID, int64Ptr(4))
		if err != nil {
			t.Fatalf("UpdateProjectStage() error = %v", err)
		}
		if moved.StageID == nil || *moved.StageID != 4 {
			t.Errorf("StageID = %v, want 4", moved.StageID)
		}
	})

	t.Run("rejects an unknown stage id before anything is written", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		p := create(t, f)

		_, err := f.projects.UpdateProjectStage(adminCtx(), p.ID, int64Ptr(999))
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("UpdateProjectStage() error = %v, want *domain.ValidationError", err)
		}
		if _, ok := verr.Fields["manualStageOverride"]; !ok {
			t.Errorf("validation error missing manualStageOverride field: %v", verr.Fields)
		}

		// The override keeps its creation-time default.
		got, err := f.projects.GetProject(adminCtx(), p.ID, ports.Include{})
		if err != nil {
			t.Fatalf("GetProject() error = %v", err)
		}
		if got.StageID == nil || *got.StageID != 1 {
			t.Errorf("StageID after rejected move = %v, want 1", got.StageID)
		}

		// And no MOVE_STAGE entry was recorded.
		entries, err := f.activity.ListActivity(adminCtx(), activity.Filter{ProjectID: &p.ID})
		if err != nil {
			t.Fatalf("ListActivity() error = %v", err)
		}
		if len(entries) != 1 || entries[0].Action != activity.ActionCreateProject {
			t.Errorf("entries after rejected move = %v, want only CREATE_PROJECT", entries)
		}
	})

	t.Run("nil clears the override", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		p := create(t, f)

		cleared, err := f.projects.UpdateProjectStage(adminCtx(), p.ID, nil)
		if err != nil {
			t.Fatalf("UpdateProjectStage(nil) error = %v", err)
		}
		if cleared.StageID != nil {
			t.Errorf("StageID = %v, want nil after clearing", *cleared.StageID)
		}
	})
}

// --- status lifecycle ---

func TestProjectService_StatusLifecycle(t *testing.T) {
	t.Parallel()

	t.Run("archive and restore round-trip", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		created, err := f.projects.CreateProject(adminCtx(), &project.Project{Title: "P"})
		if err != nil {
			t.Fatalf("CreateProject() error = %v", err)
		}

		archived, err := f.projects.ArchiveProject(adminCtx(), created.ID)
		if err != nil {
			t.Fatalf("ArchiveProject() error = %v", err)
		}
		if archived.Status != project.StatusArchived {
			t.Errorf("Status = %q, want %q", archived.Status, project.StatusArchived)
		}

		restored, err := f.projects.RestoreProject(adminCtx(), created.ID)
		if err != nil {
			t.Fatalf("RestoreProject() error = %v", err)
		}
		if restored.Status != project.StatusActive {
			t.Errorf("Status = %q, want %q", restored.Status, project.StatusActive)
		}
	})

	t.Run("soft-deleted projects cannot transition out", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		created, err := f.projects.CreateProject(adminCtx(), &project.Project{Title: "P"})
		if err != nil {
			t.Fatalf("CreateProject() error = %v", err)
		}
		if _, err := f.projects.SoftDeleteProject(adminCtx(), created.ID); err != nil {
			t.Fatalf("SoftDeleteProject() error = %v", err)
		}

		_, err = f.projects.RestoreProject(adminCtx(), created.ID)
		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("RestoreProject() after delete error = %v, want *domain.ValidationError", err)
		}
		if _, ok := verr.Fields["status"]; !ok {
			t.Errorf("validation error missing status field: %v", verr.Fields)
		}
	})

	t.Run("soft-deleted projects disappear for ordinary callers", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		created, err := f.projects.CreateProject(adminCtx(), &project.Project{
			Title:   "P",
			OwnerID: int64Ptr(7),
		})
		if err != nil {
			t.Fatalf("CreateProject() error = %v", err)
		}
		if _, err := f.projects.SoftDeleteProject(adminCtx(), created.ID); err != nil {
			t.Fatalf("SoftDeleteProject() error = %v", err)
		}

		member := memberCtx(7, nil)
		if _, err := f.projects.GetProject(member, created.ID, ports.Include{}); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("GetProject() as member error = %v, want ErrNotFound", err)
		}
		list, err := f.projects.ListProjects(member, ports.ProjectQuery{})
		if err != nil {
			t.Fatalf("ListProjects() error = %v", err)
		}
		if len(list) != 0 {
			t.Errorf("ListProjects() as member len = %d, want 0", len(list))
		}

		// The administrator still sees it.
		got, err := f.projects.GetProject(adminCtx(), created.ID, ports.Include{})
		if err != nil {
			t.Fatalf("GetProject() as admin error = %v", err)
		}
		if got.Status != project.StatusDeleted {
			t.Errorf("Status = %q, want %q", got.Status, project.StatusDeleted)
		}
	})
}

// --- audit classification ---

func TestProjectService_UpdateProject_AuditClassification(t *testing.T) {
	t.Parallel()

	create := func(t *testing.T, f *fixture) *project.Project {
		t.Helper()
		created, err := f.projects.CreateProject(adminCtx(), &project.Project{Title: "P"})
		if err != nil {
			t.Fatalf("CreateProject() error = %v", err)
		}
		return created
	}

	actionsSince := func(t *testing.T, f *fixture, projectID int64, skip int) []activity.Action {
		t.Helper()
		entries, err := f.activity.ListActivity(adminCtx(), activity.Filter{ProjectID: &projectID})
		if err != nil {
			t.Fatalf("ListActivity() error = %v", err)
		}
		// Entries come newest first; drop the trailing creation entries.
		entries = entries[:len(entries)-skip]
		actions := make([]activity.Action, len(entries))
		for i, e := range entries {
			actions[i] = e.Action
		}
		return actions
	}

	t.Run("stage move yields MOVE_STAGE", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		p := create(t, f)

		if _, err := f.projects.UpdateProjectStage(adminCtx(), p.ID, int64Ptr(2)); err != nil {
			t.Fatalf("UpdateProjectStage() error = %v", err)
		}
		got := actionsSince(t, f, p.ID, 1)
		if len(got) != 1 || got[0] != activity.ActionMoveStage {
			t.Errorf("actions = %v, want [MOVE_STAGE]", got)
		}
	})

	t.Run("assignment-only change yields ASSIGN_USER without UPDATE_PROJECT", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		p := create(t, f)

		_, err := f.projects.UpdateProject(adminCtx(), p.ID, project.Change{
			OwnerID: domain.Set(int64Ptr(42)),
		})
		if err != nil {
			t.Fatalf("UpdateProject() error = %v", err)
		}
		got := actionsSince(t, f, p.ID, 1)
		if len(got) != 1 || got[0] != activity.ActionAssignUser {
			t.Errorf("actions = %v, want [ASSIGN_USER]", got)
		}
	})

	t.Run("soft delete suppresses the generic update entry", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		p := create(t, f)

		_, err := f.projects.UpdateProject(adminCtx(), p.ID, project.Change{
			Status:      domain.Set(project.StatusDeleted),
			Description: domain.Set("closing down"),
		})
		if err != nil {
			t.Fatalf("UpdateProject() error = %v", err)
		}
		got := actionsSince(t, f, p.ID, 1)
		if len(got) != 1 || got[0] != activity.ActionDeleteProject {
			t.Errorf("actions = %v, want [DELETE_PROJECT] only", got)
		}
	})

	t.Run("mixed payload yields one entry per classification", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		p := create(t, f)

		_, err := f.projects.UpdateProject(adminCtx(), p.ID, project.Change{
			Title:   domain.Set("Renamed"),
			OwnerID: domain.Set(int64Ptr(42)),
			StageID: domain.Set(int64Ptr(3)),
		})
		if err != nil {
			t.Fatalf("UpdateProject() error = %v", err)
		}
		got := actionsSince(t, f, p.ID, 1)
		want := map[activity.Action]bool{
			activity.ActionMoveStage:     true,
			activity.ActionAssignUser:    true,
			activity.ActionUpdateProject: true,
		}
		if len(got) != len(want) {
			t.Fatalf("actions = %v, want exactly %d classifications", got, len(want))
		}
		for _, a := range got {
			if !want[a] {
				t.Errorf("unexpected action %q in %v", a, got)
			}
		}
	})

	t.Run("failed update leaves no audit entry", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		p := create(t, f)

		_, err := f.projects.UpdateProject(adminCtx(), p.ID, project.Change{
			Title: domain.Set("  "),
		})
		if err == nil {
			t.Fatal("UpdateProject() with blank title should fail")
		}
		got := actionsSince(t, f, p.ID, 1)
		if len(got) != 0 {
			t.Errorf("actions after failed update = %v, want none", got)
		}
	})
}

// --- access gates ---

func TestProjectService_UpdateProject_Access(t *testing.T) {
	t.Parallel()

	t.Run("assigned member may update", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		created, err := f.projects.CreateProject(adminCtx(), &project.Project{
			Title:              "P",
			ResponsibleUserIDs: []int64{7},
		})
		if err != nil {
			t.Fatalf("CreateProject() error = %v", err)
		}

		_, err = f.projects.UpdateProject(memberCtx(7, nil), created.ID, project.Change{
			Description: domain.Set("from the responsible user"),
		})
		if err != nil {
			t.Errorf("UpdateProject() as responsible user error = %v, want nil", err)
		}
	})

	t.Run("same-department member may update", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		created, err := f.projects.CreateProject(adminCtx(), &project.Project{
			Title:        "P",
			DepartmentID: int64Ptr(4),
		})
		if err != nil {
			t.Fatalf("CreateProject() error = %v", err)
		}

		_, err = f.projects.UpdateProject(memberCtx(99, int64Ptr(4)), created.ID, project.Change{
			Description: domain.Set("from a colleague"),
		})
		if err != nil {
			t.Errorf("UpdateProject() same department error = %v, want nil", err)
		}
	})

	t.Run("unrelated member is forbidden", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		created, err := f.projects.CreateProject(adminCtx(), &project.Project{
			Title:        "P",
			DepartmentID: int64Ptr(4),
			OwnerID:      int64Ptr(1),
		})
		if err != nil {
			t.Fatalf("CreateProject() error = %v", err)
		}

		_, err = f.projects.UpdateProject(memberCtx(99, int64Ptr(5)), created.ID, project.Change{
			Description: domain.Set("not mine"),
		})
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("UpdateProject() unrelated member error = %v, want ErrForbidden", err)
		}
	})
}

// --- hard delete ---

func TestProjectService_HardDeleteProject(t *testing.T) {
	t.Parallel()

	t.Run("admin removes the record and its tasks", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		created, err := f.projects.CreateProject(adminCtx(), &project.Project{Title: "P"})
		if err != nil {
			t.Fatalf("CreateProject() error = %v", err)
		}
		seeded, err := f.store.Tasks.Create(context.Background(), &task.Task{
			Title: "t", Status: task.StatusTodo, ProjectID: &created.ID,
		})
		if err != nil {
			t.Fatalf("seeding task: %v", err)
		}

		if err := f.projects.HardDeleteProject(adminCtx(), created.ID); err != nil {
			t.Fatalf("HardDeleteProject() error = %v", err)
		}
		if _, err := f.projects.GetProject(adminCtx(), created.ID, ports.Include{}); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("GetProject() after hard delete error = %v, want ErrNotFound", err)
		}
		if _, err := f.store.Tasks.Get(context.Background(), seeded.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("task survived hard delete, error = %v, want ErrNotFound", err)
		}
	})

	t.Run("non-admin is forbidden even if assigned", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		created, err := f.projects.CreateProject(adminCtx(), &project.Project{
			Title:   "P",
			OwnerID: int64Ptr(7),
		})
		if err != nil {
			t.Fatalf("CreateProject() error = %v", err)
		}

		err = f.projects.HardDeleteProject(memberCtx(7, nil), created.ID)
		if !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("HardDeleteProject() as owner error = %v, want ErrForbidden", err)
		}
	})

	t.Run("anonymous caller is unauthenticated", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		created, err := f.projects.CreateProject(adminCtx(), &project.Project{Title: "P"})
		if err != nil {
			t.Fatalf("CreateProject() error = %v", err)
		}

		err = f.projects.HardDeleteProject(context.Background(), created.ID)
		if !errors.Is(err, domain.ErrUnauthenticated) {
			t.Errorf("HardDeleteProject() anonymous error = %v, want ErrUnauthenticated", err)
		}
	})

	t.Run("leaves no audit entry", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		created, err := f.projects.CreateProject(adminCtx(), &project.Project{Title: "P"})
		if err != nil {
			t.Fatalf("CreateProject() error = %v", err)
		}
		if err := f.projects.HardDeleteProject(adminCtx(), created.ID); err != nil {
			t.Fatalf("HardDeleteProject() error = %v", err)
		}

		entries, err := f.activity.ListActivity(adminCtx(), activity.Filter{ProjectID: &created.ID})
		if err != nil {
			t.Fatalf("ListActivity() error = %v", err)
		}
		// Only the creation entry remains.
		if len(entries) != 1 || entries[0].Action != activity.ActionCreateProject {
			t.Errorf("entries after hard delete = %v, want only CREATE_PROJECT", entries)
		}
	})
}
