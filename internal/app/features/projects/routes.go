// internal/app/features/projects/routes.go
package projects

import (
	"github.com/dalemusser/flattrack/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted under /api/projects. All project
// operations require a signed-in user; import and delete are kept away
// from salespeople.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)
	r.Post("/update-site-visit-scheduled", h.HandleUpdateSiteVisitScheduled)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole("admin", "office"))
		pr.Post("/import", h.HandleImport)
		pr.Delete("/{id}", h.HandleDelete)
	})

	r.Get("/{id}", h.ServeGet)
	r.Put("/{id}", h.HandleUpdate)

	return r
}
