package memory

import (
	"context"

	"github.com/nnmc-digital/projectboard/internal/domain"
	"github.com/nnmc-digital/projectboard/internal/domain/task"
	"github.com/nnmc-digital/projectboard/internal/ports"
)

// Compile-time check that TaskStore implements ports.TaskStore.
var _ ports.TaskStore = (*TaskStore)(nil)

// TaskStore is the in-memory task persistence adapter.
type TaskStore struct {
	c *core
}

// ListByProject returns a project's tasks in board order.
func (s *TaskStore) ListByProject(_ context.Context, projectID int64) ([]task.Task, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()
	return s.c.tasksOf(projectID), nil
}

// Get returns a single task by ID.
func (s *TaskStore) Get(_ context.Context, id int64) (*task.Task, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	t, ok := s.c.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

// GetByDocumentID resolves a task through its opaque document identifier.
func (s *TaskStore) GetByDocumentID(_ context.Context, documentID string) (*task.Task, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	for _, t := range s.c.tasks {
		if t.DocumentID == documentID {
			found := t
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create persists a new task, assigning ID, DocumentID, and timestamps.
func (s *TaskStore) Create(_ context.Context, t *task.Task) (*task.Task, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	stored := *t
	stored.ID = s.c.nextTaskID
	s.c.nextTaskID++
	if stored.DocumentID == "" {
		stored.DocumentID = newDocumentID()
	}
	now := s.c.now()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.c.tasks[stored.ID] = stored
	return &stored, nil
}

// Update applies the touched fields of ch and returns the updated record.
func (s *TaskStore) Update(_ context.Context, id int64, ch task.Change) (*task.Task, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	t, ok := s.c.tasks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	ch.Apply(&t)
	t.UpdatedAt = s.c.now()
	s.c.tasks[id] = t
	return &t, nil
}

// Delete removes the task.
func (s *TaskStore) Delete(_ context.Context, id int64) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	if _, ok := s.c.tasks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.c.tasks, id)
	return nil
}
