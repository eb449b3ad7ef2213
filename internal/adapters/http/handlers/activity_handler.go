package handlers

import (
	"net/http"

	"github.com/nnmc-digital/projectboard/internal/adapters/http/dto"
	"github.com/nnmc-digital/projectboard/internal/domain"
	"github.com/nnmc-digital/projectboard/internal/domain/activity"
	"github.com/nnmc-digital/projectboard/internal/ports"
)

// ActivityHandler handles HTTP requests for the read-only audit trail.
type ActivityHandler struct {
	svc ports.ActivityService
}

// NewActivityHandler creates a new ActivityHandler with the given service port.
func NewActivityHandler(svc ports.ActivityService) *ActivityHandler {
	return &ActivityHandler{svc: svc}
}

// ListActivity handles GET /api/v1/activity.
//
// Query parameters: project (filter by project id), action (filter by
// action tag). Entries come back newest first.
func (h *ActivityHandler) ListActivity(w http.ResponseWriter, r *http.Request) {
	var f activity.Filter

	projectID, err := parseOptionalInt64Ptr(r, "project")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	f.ProjectID = projectID

	if raw := r.URL.Query().Get("action"); raw != "" {
		a := activity.Action(raw)
		if !a.IsValid() {
			dto.WriteErrorResponse(w, r, &domain.ValidationError{
				Fields: map[string]string{"action": "invalid: " + raw},
			})
			return
		}
		f.Action = a
	}

	entries, err := h.svc.ListActivity(r.Context(), f)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToActivityListResponse(entries))
}
