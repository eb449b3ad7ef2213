package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nnmc-digital/projectboard/internal/domain"
	"github.com/nnmc-digital/projectboard/internal/domain/stage"
	"github.com/nnmc-digital/projectboard/internal/ports"
)

// Compile-time check that StageStore implements ports.StageStore.
var _ ports.StageStore = (*StageStore)(nil)

// StageStore is the SQLite stage catalog adapter. The catalog is seeded by
// migration and read-only through the ports.
type StageStore struct {
	s *Store
}

const stageColumns = `id, board_order, min_percent, max_percent, name, color`

// List returns all stages ordered by their board order.
func (s *StageStore) List(ctx context.Context) ([]stage.Stage, error) {
	rows, err := s.s.db.QueryContext(ctx,
		`SELECT `+stageColumns+` FROM stages ORDER BY board_order`)
	if err != nil {
		return nil, fmt.Errorf("listing stages: %w", err)
	}
	defer rows.Close()

	stages := make([]stage.Stage, 0)
	for rows.Next() {
		var st stage.Stage
		if err := rows.Scan(&st.ID, &st.Order, &st.MinPercent, &st.MaxPercent, &st.Name, &st.Color); err != nil {
			return nil, fmt.Errorf("scanning stage: %w", err)
		}
		stages = append(stages, st)
	}
	return stages, rows.Err()
}

// Get returns a single stage by ID.
func (s *StageStore) Get(ctx context.Context, id int64) (*stage.Stage, error) {
	var st stage.Stage
	err := s.s.db.QueryRowContext(ctx,
		`SELECT `+stageColumns+` FROM stages WHERE id = ?`, id).
		Scan(&st.ID, &st.Order, &st.MinPercent, &st.MaxPercent, &st.Name, &st.Color)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning stage: %w", err)
	}
	return &st, nil
}
