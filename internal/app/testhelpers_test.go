package app

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/nnmc-digital/projectboard/internal/adapters/store/memory"
	"github.com/nnmc-digital/projectboard/internal/domain/identity"
	"github.com/nnmc-digital/projectboard/internal/domain/stage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func int64Ptr(v int64) *int64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// boardStages mirrors the stage catalog the service ships with.
func boardStages() []stage.Stage {
	return []stage.Stage{
		{ID: 1, Order: 1, MinPercent: 0, MaxPercent: 10, Name: "Initiation", Color: "#64748B"},
		{ID: 2, Order: 2, MinPercent: 10, MaxPercent: 20, Name: "Planning", Color: "#0EA5E9"},
		{ID: 3, Order: 3, MinPercent: 20, MaxPercent: 70, Name: "Execution", Color: "#F97316"},
		{ID: 4, Order: 4, MinPercent: 70, MaxPercent: 90, Name: "Monitoring", Color: "#EAB308"},
		{ID: 5, Order: 5, MinPercent: 90, MaxPercent: 101, Name: "Completion", Color: "#22C55E"},
	}
}

// fixture wires the full application layer over one in-memory store with a
// frozen clock.
type fixture struct {
	store    *memory.Store
	projects *ProjectService
	tasks    *TaskService
	activity *ActivityService
	now      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := memory.New()
	st.SeedStages(boardStages())
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	st.SetClock(func() time.Time { return now })

	policy := NewPolicy()
	recorder := NewActivityRecorder(st.Activity, discardLogger(), nil)
	resolver := NewStageResolver(st.Stages)
	validator := NewDateValidator(st.Projects, st.Tasks)

	projects := NewProjectService(st.Projects, st.Tasks, resolver, recorder, policy, discardLogger())
	projects.now = func() time.Time { return now }
	tasks := NewTaskService(st.Tasks, st.Projects, validator, recorder, policy, discardLogger())
	activity := NewActivityService(st.Activity, discardLogger())

	return &fixture{
		store:    st,
		projects: projects,
		tasks:    tasks,
		activity: activity,
		now:      now,
	}
}

func adminCtx() context.Context {
	return identity.WithCaller(context.Background(), &identity.Caller{
		UserID:   100,
		Username: "boardadmin",
		Role:     identity.Role{Name: "SuperAdmin", Kind: identity.RoleAdmin},
	})
}

func memberCtx(userID int64, departmentID *int64) context.Context {
	return identity.WithCaller(context.Background(), &identity.Caller{
		UserID:       userID,
		Username:     "member",
		Role:         identity.Role{Name: "Authenticated", Kind: identity.RoleMember},
		DepartmentID: departmentID,
	})
}
