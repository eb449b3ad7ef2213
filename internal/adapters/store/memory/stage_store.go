package memory

import (
	"context"

	"github.com/nnmc-digital/projectboard/internal/domain"
	"github.com/nnmc-digital/projectboard/internal/domain/stage"
	"github.com/nnmc-digital/projectboard/internal/ports"
)

// Compile-time check that StageStore implements ports.StageStore.
var _ ports.StageStore = (*StageStore)(nil)

// StageStore is the in-memory stage catalog adapter.
type StageStore struct {
	c *core
}

// List returns all stages ordered by their board order.
func (s *StageStore) List(_ context.Context) ([]stage.Stage, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()
	return stage.NewCatalog(s.c.stages).All(), nil
}

// Get returns a single stage by ID.
func (s *StageStore) Get(_ context.Context, id int64) (*stage.Stage, error) {
	s.c.mu.RLock()
	defer s.c.mu.RUnlock()

	for _, st := range s.c.stages {
		if st.ID == id {
			found := st
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}
