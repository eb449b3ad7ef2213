package app

import (
	"context"
	"fmt"

	"github.com/nnmc-digital/projectboard/internal/domain"
	"github.com/nnmc-digital/projectboard/internal/domain/project"
	"github.com/nnmc-digital/projectboard/internal/domain/stage"
	"github.com/nnmc-digital/projectboard/internal/ports"
)

// StageResolver owns the board stage catalog on behalf of the project
// lifecycle: it assigns the default stage to newly created projects, checks
// that explicit stage overrides name a stage that exists, and resolves the
// informational percent-range placement on reads. Stage placement beyond the
// creation-time default is manual: nothing re-evaluates stage membership as
// progress changes.
type StageResolver struct {
	stages ports.StageStore
}

// NewStageResolver creates a StageResolver backed by the stage catalog store.
func NewStageResolver(stages ports.StageStore) *StageResolver {
	return &StageResolver{stages: stages}
}

// Catalog loads the configured stages as an ordered catalog.
func (r *StageResolver) Catalog(ctx context.Context) (stage.Catalog, error) {
	stages, err := r.stages.List(ctx)
	if err != nil {
		return stage.Catalog{}, fmt.Errorf("listing board stages: %w", err)
	}
	return stage.NewCatalog(stages), nil
}

// Resolve fills in the stage override on p when the caller did not choose
// one, using the stage with the lowest order. An empty catalog is a
// degenerate configuration, not an error: the override stays unset. An
// explicitly chosen stage is validated against the catalog instead.
//
// Two concurrent creations may both read the lowest-order stage; that is
// acceptable because the result is deterministic and identical.
func (r *StageResolver) Resolve(ctx context.Context, p *project.Project) error {
	catalog, err := r.Catalog(ctx)
	if err != nil {
		return err
	}

	if p.StageID != nil {
		return requireKnownStage(catalog, *p.StageID)
	}

	if first, ok := catalog.First(); ok {
		p.StageID = &first.ID
	}
	return nil
}

// ValidateOverride checks a stage override from an update payload. A nil
// override clears the manual placement and is always valid; a non-nil id
// must name a catalog stage.
func (r *StageResolver) ValidateOverride(ctx context.Context, stageID *int64) error {
	if stageID == nil {
		return nil
	}
	catalog, err := r.Catalog(ctx)
	if err != nil {
		return err
	}
	return requireKnownStage(catalog, *stageID)
}

func requireKnownStage(catalog stage.Catalog, id int64) error {
	if _, ok := catalog.ByID(id); !ok {
		return &domain.ValidationError{Fields: map[string]string{
			"manualStageOverride": fmt.Sprintf("unknown stage %d", id),
		}}
	}
	return nil
}
