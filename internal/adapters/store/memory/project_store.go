package memory

import (
	"context"
	"sort"

	"github.com/nnmc-digital/projectboard/internal/domain"
	"github.com/nnmc-digital/projectboard/internal/domain/project"
	"github.com/nnmc-digital/projectboard/internal/ports"
)

// Compile-time check that ProjectStore implements ports.ProjectStore.
var _ ports.ProjectStore = (*ProjectStore)(nil)

// ProjectStore is the in-memory project persistence adapter.
type ProjectStore struct {
	c *core
}

// List returns projects matching the query, newest first.
func (s *ProjectStore) List(_ context.Context, q ports.ProjectQuery) ([]project.Project, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	matched := make([]project.Project, 0, len(s.c.projects))
	for _, p := range s.c.projects {
		if q.Status != "" && p.Status != q.Status {
			continue
		}
		if q.DepartmentID != nil && (p.DepartmentID == nil || *p.DepartmentID != *q.DepartmentID) {
			continue
		}
		matched = append(matched, p)
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	if q.Offset > 0 {
		if q.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[q.Offset:]
		}
	}
	if q.Limit > 0 && q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}

	out := make([]project.Project, len(matched))
	for i := range matched {
		out[i] = s.c.cloneProject(matched[i], q.Include)
	}
	return out, nil
}

// Get returns a single project by ID.
func (s *ProjectStore) Get(_ context.Context, id int64, inc ports.Include) (*project.Project, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	p, ok := s.c.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := s.c.cloneProject(p, inc)
	return &clone, nil
}

// GetByDocumentID resolves a project through its opaque document identifier.
func (s *ProjectStore) GetByDocumentID(_ context.Context, documentID string, inc ports.Include) (*project.Project, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	for _, p := range s.c.projects {
		if p.DocumentID == documentID {
			clone := s.c.cloneProject(p, inc)
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create persists a new project, assigning ID, DocumentID, and timestamps.
func (s *ProjectStore) Create(_ context.Context, p *project.Project) (*project.Project, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	stored := *p
	stored.ID = s.c.nextProjectID
	s.c.nextProjectID++
	if stored.DocumentID == "" {
		stored.DocumentID = newDocumentID()
	}
	now := s.c.now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	stored.Tasks = nil
	stored.Meetings = nil
	stored.Progress = nil

	s.c.projects[stored.ID] = stored
	clone := s.c.cloneProject(stored, ports.Include{})
	return &clone, nil
}

// Update applies the touched fields of ch and returns the updated record.
func (s *ProjectStore) Update(_ context.Context, id int64, ch project.Change) (*project.Project, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	p, ok := s.c.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	ch.Apply(&p)
	p.UpdatedAt = s.c.now()
	s.c.projects[id] = p

	clone := s.c.cloneProject(p, ports.Include{})
	return &clone, nil
}

// Delete removes the project and its tasks.
func (s *ProjectStore) Delete(_ context.Context, id int64) error {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	if _, ok := s.c.projects[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.c.projects, id)
	delete(s.c.meetings, id)
	for taskID, t := range s.c.tasks {
		if t.ProjectID != nil && *t.ProjectID == id {
			delete(s.c.tasks, taskID)
		}
	}
	return nil
}
