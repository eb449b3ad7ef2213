// Package stage defines the board stage reference data and the ordered
// catalog used to resolve default stage placement. Stages are immutable
// input data; this service never creates or modifies them.
package stage

import "sort"

// Stage is a named phase in the fixed delivery progression. Order defines
// the total ordering across the board; MinPercent/MaxPercent describe the
// progress range the stage informally corresponds to. The range informs
// stage placement but never drives automatic transitions.
type Stage struct {
	ID         int64
	Order      int
	MinPercent int
	MaxPercent int
	Name       string
	Color      string
}

// Catalog is an ordered, read-only view over the configured board stages.
// The zero Catalog is valid and empty (a degenerate configuration, not an
// error).
type Catalog struct {
	stages []Stage
}

// NewCatalog builds a Catalog from the given stages, sorted by Order.
// The input slice is copied; later mutation of it does not affect the catalog.
func NewCatalog(stages []Stage) Catalog {
	sorted := make([]Stage, len(stages))
	copy(sorted, stages)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	return Catalog{stages: sorted}
}

// Len returns the number of stages in the catalog.
func (c Catalog) Len() int {
	return len(c.stages)
}

// All returns the stages in board order.
func (c Catalog) All() []Stage {
	out := make([]Stage, len(c.stages))
	copy(out, c.stages)
	return out
}

// First returns the stage with the lowest order, used as the default for
// newly created projects. ok is false when the catalog is empty.
func (c Catalog) First() (Stage, bool) {
	if len(c.stages) == 0 {
		return Stage{}, false
	}
	return c.stages[0], true
}

// ByID looks up a stage by identity.
func (c Catalog) ByID(id int64) (Stage, bool) {
	for _, s := range c.stages {
		if s.ID == id {
			return s, true
		}
	}
	return Stage{}, false
}

// ForPercent returns the stage whose [MinPercent, MaxPercent) range contains
// the given progress percentage. The last stage's range is treated as closed
// at the top so that 100% always resolves. Informational only; never used to
// move a project automatically.
func (c Catalog) ForPercent(percent int) (Stage, bool) {
	for i, s := range c.stages {
		if percent >= s.MinPercent && percent < s.MaxPercent {
			return s, true
		}
		if i == len(c.stages)-1 && percent >= s.MinPercent {
			return s, true
		}
	}
	return Stage{}, false
}
