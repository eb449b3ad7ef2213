package memory

import (
	"context"

	"github.com/nnmc-digital/projectboard/internal/domain/activity"
	"github.com/nnmc-digital/projectboard/internal/ports"
)

// Compile-time check that ActivityStore implements ports.ActivityStore.
var _ ports.ActivityStore = (*ActivityStore)(nil)

// ActivityStore is the in-memory append-only audit trail adapter.
type ActivityStore struct {
	c *core
}

// Append persists a new audit entry, stamping its ID and creation time.
func (s *ActivityStore) Append(_ context.Context, e *activity.Entry) (*activity.Entry, error) {
	s.c.mu.Lock()
	defer s.c.mu.Unlock()

	stored := *e
	stored.ID = s.c.nextActivityID
	s.c.nextActivityID++
	stored.CreatedAt = s.c.now()

	s.c.activity = append(s.c.activity, stored)
	return &stored, nil
}

// List returns entries matching the filter, newest first.
func (s *ActivityStore) List(_ context.Context, f activity.Filter) ([]activity.Entry, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	matched := make([]activity.Entry, 0, len(s.c.activity))
	// Entries append in creation order, so a reverse walk yields newest first.
	for i := len(s.c.activity) - 1; i >= 0; i-- {
		e := s.c.activity[i]
		if f.ProjectID != nil && (e.ProjectID == nil || *e.ProjectID != *f.ProjectID) {
			continue
		}
		if f.Action != "" && e.Action != f.Action {
			continue
		}
		matched = append(matched, e)
	}
	return matched, nil
}
