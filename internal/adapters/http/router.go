// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nnmc-digital/projectboard/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given.
func NewRouter(
	projectHandler *handlers.ProjectHandler,
	taskHandler *handlers.TaskHandler,
	activityHandler *handlers.ActivityHandler,
	stageHandler *handlers.StageHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		// Project reads and partial update.
		r.Get("/projects", projectHandler.ListProjects)
		r.Post("/projects", projectHandler.CreateProject)
		r.Get("/projects/{id}", projectHandler.GetProject)
		r.Patch("/projects/{id}", projectHandler.UpdateProject)

		// Named lifecycle transitions.
		r.Post("/projects/{id}/archive", projectHandler.ArchiveProject)
		r.Post("/projects/{id}/restore", projectHandler.RestoreProject)
		r.Post("/projects/{id}/soft-delete", projectHandler.SoftDeleteProject)

		// Manual stage override.
		r.Patch("/projects/{id}/stage", projectHandler.UpdateProjectStage)

		// Administrator hard delete.
		r.Delete("/projects/{id}", projectHandler.DeleteProject)

		// Task mutations; nested create scopes the task to the project in
		// the URL.
		r.Post("/projects/{projectId}/tasks", taskHandler.CreateProjectTask)
		r.Post("/tasks", taskHandler.CreateTask)
		r.Patch("/tasks/{id}", taskHandler.UpdateTask)
		r.Delete("/tasks/{id}", taskHandler.DeleteTask)

		// Reference data and audit trail.
		r.Get("/stages", stageHandler.ListStages)
		r.Get("/activity", activityHandler.ListActivity)
	})

	return r
}
