// Package memory provides in-memory implementations of the persistence
// ports. It backs the local development profile and the application-layer
// tests; the sqlite adapter is the durable counterpart with identical
// semantics.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nnmc-digital/projectboard/internal/domain/activity"
	"github.com/nnmc-digital/projectboard/internal/domain/project"
	"github.com/nnmc-digital/projectboard/internal/domain/stage"
	"github.com/nnmc-digital/projectboard/internal/domain/task"
	"github.com/nnmc-digital/projectboard/internal/ports"
)

// core is the shared in-memory database. One instance holds projects,
// tasks, the stage catalog, and the activity log so cross-entity reads stay
// consistent under a single lock.
type core struct {
	mu sync.RWMutex

	projects map[int64]project.Project
	tasks    map[int64]task.Task
	stages   []stage.Stage
	meetings map[int64][]project.Meeting
	activity []activity.Entry

	nextProjectID  int64
	nextTaskID     int64
	nextActivityID int64

	// now is injectable for deterministic timestamps in tests.
	now func() time.Time
}

// Store bundles the per-port views over one shared database.
type Store struct {
	core *core

	Projects *ProjectStore
	Tasks    *TaskStore
	Stages   *StageStore
	Activity *ActivityStore
}

// New creates an empty Store.
func New() *Store {
	c := &core{
		projects:       make(map[int64]project.Project),
		tasks:          make(map[int64]task.Task),
		meetings:       make(map[int64][]project.Meeting),
		nextProjectID:  1,
		nextTaskID:     1,
		nextActivityID: 1,
		now:            time.Now,
	}
	return &Store{
		core:     c,
		Projects: &ProjectStore{c: c},
		Tasks:    &TaskStore{c: c},
		Stages:   &StageStore{c: c},
		Activity: &ActivityStore{c: c},
	}
}

// SetClock overrides the timestamp source. For tests.
func (s *Store) SetClock(now func() time.Time) {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()
	s.core.now = now
}

// SeedStages replaces the stage catalog. The catalog is read-only through
// the ports, so seeding is the only way content gets in.
func (s *Store) SeedStages(stages []stage.Stage) {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()
	s.core.stages = append([]stage.Stage(nil), stages...)
}

// SeedMeetings attaches meeting records to a project for inclusion on reads.
// Meetings are owned by another service; this store only surfaces them.
func (s *Store) SeedMeetings(projectID int64, meetings []project.Meeting) {
	s.core.mu.Lock()
	defer s.core.mu.Unlock()
	s.core.meetings[projectID] = append([]project.Meeting(nil), meetings...)
}

func newDocumentID() string {
	return uuid.NewString()
}

// cloneProject returns a defensive copy of p with the requested relations
// populated. Callers must hold at least the read lock.
func (c *core) cloneProject(p project.Project, inc ports.Include) project.Project {
	clone := p
	clone.SupportingSpecialistIDs = append([]int64(nil), p.SupportingSpecialistIDs...)
	clone.ResponsibleUserIDs = append([]int64(nil), p.ResponsibleUserIDs...)
	clone.Tasks = nil
	clone.Meetings = nil
	clone.Progress = nil

	if inc.Tasks {
		clone.Tasks = c.tasksOf(p.ID)
	}
	if inc.Meetings {
		clone.Meetings = append([]project.Meeting{}, c.meetings[p.ID]...)
	}
	return clone
}

// tasksOf returns the project's tasks in board order. Callers must hold at
// least the read lock.
func (c *core) tasksOf(projectID int64) []task.Task {
	tasks := make([]task.Task, 0)
	for _, t := range c.tasks {
		if t.ProjectID != nil && *t.ProjectID == projectID {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Order != tasks[j].Order {
			return tasks[i].Order < tasks[j].Order
		}
		return tasks[i].ID < tasks[j].ID
	})
	return tasks
}
