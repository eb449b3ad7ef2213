package handlers

import (
	"net/http"

	"github.com/nnmc-digital/projectboard/internal/adapters/http/dto"
	"github.com/nnmc-digital/projectboard/internal/ports"
)

// StageHandler serves the read-only board stage catalog. Stages are seeded
// reference data; there are no mutation endpoints.
type StageHandler struct {
	store ports.StageStore
}

// NewStageHandler creates a new StageHandler over the given store port.
func NewStageHandler(store ports.StageStore) *StageHandler {
	return &StageHandler{store: store}
}

// ListStages handles GET /api/v1/stages.
func (h *StageHandler) ListStages(w http.ResponseWriter, r *http.Request) {
	stages, err := h.store.List(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToStageListResponse(stages))
}
