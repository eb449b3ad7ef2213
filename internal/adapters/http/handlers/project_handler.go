// Package handlers provides HTTP request handlers for the service's API endpoints.
package handlers

import (
	"context"
	"net/http"

	"github.com/nnmc-digital/projectboard/internal/adapters/http/dto"
	"github.com/nnmc-digital/projectboard/internal/domain"
	"github.com/nnmc-digital/projectboard/internal/domain/project"
	"github.com/nnmc-digital/projectboard/internal/ports"
)

// ProjectHandler handles HTTP requests for project lifecycle operations.
type ProjectHandler struct {
	svc ports.ProjectService
}

// NewProjectHandler creates a new ProjectHandler with the given service port.
func NewProjectHandler(svc ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// ListProjects handles GET /api/v1/projects.
//
// Query parameters: status, department (filters), include (comma-separated
// relation paths), limit, offset (pagination).
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	q, err := h.parseListQuery(r)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	projects, err := h.svc.ListProjects(r.Context(), q)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProjectListResponse(projects))
}

func (h *ProjectHandler) parseListQuery(r *http.Request) (ports.ProjectQuery, error) {
	var q ports.ProjectQuery

	if raw := r.URL.Query().Get("status"); raw != "" {
		s := project.Status(raw)
		if !s.IsValid() {
			return q, &domain.ValidationError{
				Fields: map[string]string{"status": "invalid: " + raw},
			}
		}
		q.Status = s
	}

	deptID, err := parseOptionalInt64Ptr(r, "department")
	if err != nil {
		return q, err
	}
	q.DepartmentID = deptID

	inc, err := parseInclude(r)
	if err != nil {
		return q, err
	}
	q.Include = inc

	if q.Limit, err = parseOptionalInt(r, "limit", 0); err != nil {
		return q, err
	}
	if q.Offset, err = parseOptionalInt(r, "offset", 0); err != nil {
		return q, err
	}

	return q, nil
}

// GetProject handles GET /api/v1/projects/{id}. Without an include
// parameter all recognized relations are populated.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	inc := ports.FullInclude()
	if r.URL.Query().Get("include") != "" {
		if inc, err = parseInclude(r); err != nil {
			dto.WriteErrorResponse(w, r, err)
			return
		}
	}

	p, err := h.svc.GetProject(r.Context(), id, inc)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProjectResponse(p))
}

// CreateProject handles POST /api/v1/projects.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	created, err := h.svc.CreateProject(r.Context(), req.ToDomain())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.ToProjectResponse(created))
}

// UpdateProject handles PATCH /api/v1/projects/{id}.
func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateProjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.svc.UpdateProject(r.Context(), id, req.ToChange())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProjectResponse(updated))
}

// ArchiveProject handles POST /api/v1/projects/{id}/archive.
func (h *ProjectHandler) ArchiveProject(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.svc.ArchiveProject)
}

// RestoreProject handles POST /api/v1/projects/{id}/restore.
func (h *ProjectHandler) RestoreProject(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.svc.RestoreProject)
}

// SoftDeleteProject handles POST /api/v1/projects/{id}/soft-delete.
func (h *ProjectHandler) SoftDeleteProject(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, h.svc.SoftDeleteProject)
}

// lifecycle runs a named status transition that takes no request body.
func (h *ProjectHandler) lifecycle(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, id int64) (*project.Project, error),
) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	updated, err := op(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProjectResponse(updated))
}

// UpdateProjectStage handles PATCH /api/v1/projects/{id}/stage. A null
// stage in the body clears the manual override.
func (h *ProjectHandler) UpdateProjectStage(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateProjectStageRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	updated, err := h.svc.UpdateProjectStage(r.Context(), id, req.Stage.Value)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToProjectResponse(updated))
}

// DeleteProject handles DELETE /api/v1/projects/{id}. This is the
// irreversible administrator hard delete; ordinary removal goes through
// soft deletion.
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.svc.HardDeleteProject(r.Context(), id); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
