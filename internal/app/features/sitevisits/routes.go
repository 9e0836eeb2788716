// internal/app/features/sitevisits/routes.go
package sitevisits

import (
	"github.com/dalemusser/flattrack/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted under /api/site-visits. Any
// signed-in user may plan and commit visits.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/candidates", h.ServeCandidates)
	r.Get("/session", h.ServeSession)

	r.Post("/group/begin", h.HandleBeginTagging)
	r.Post("/group/toggle", h.HandleToggleSelection)
	r.Post("/group/commit", h.HandleCommitGroup)
	r.Post("/group/reset", h.HandleResetGroup)
	r.Post("/group/cancel", h.HandleCancelTagging)

	r.Get("/grid", h.ServeGrid)
	r.Post("/grid/place", h.HandlePlace)
	r.Post("/grid/unplace", h.HandleUnplace)

	r.Post("/schedule", h.HandleSchedule)

	return r
}
