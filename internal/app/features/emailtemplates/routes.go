// internal/app/features/emailtemplates/routes.go
package emailtemplates

import (
	"github.com/dalemusser/flattrack/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted under /api/email-templates.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)

	r.Get("/", h.ServeList)
	r.Get("/by-name/{name}", h.ServeGetByName)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireRole("admin", "office"))
		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)
	})

	return r
}
