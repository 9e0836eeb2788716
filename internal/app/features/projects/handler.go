// internal/app/features/projects/handler.go
package projects

import (
	"context"
	"errors"
	"net/http"

	projectstore "github.com/dalemusser/flattrack/internal/app/store/projects"
	"github.com/dalemusser/flattrack/internal/app/system/httpjson"
	"github.com/dalemusser/flattrack/internal/app/system/timeouts"
	"github.com/dalemusser/flattrack/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the projects feature.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

// NewHandler constructs a projects Handler. It is typically called from
// the bootstrap BuildHandler function.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

// ServeList handles GET /api/projects.
//
// Optional query parameters:
//
//	site_visit_status  filter by site-visit status ("Not Complete" also
//	                   matches records without the field)
//	on_hold            "true" or "false"
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	filter := projectstore.ListFilter{
		SiteVisitStatus: r.URL.Query().Get("site_visit_status"),
	}
	switch r.URL.Query().Get("on_hold") {
	case "true":
		hold := true
		filter.OnHold = &hold
	case "false":
		hold := false
		filter.OnHold = &hold
	}

	list, err := projectstore.New(h.DB).List(ctx, filter)
	if err != nil {
		httpjson.ServerError(h.Log, w, "projects: list", err)
		return
	}
	if list == nil {
		list = []models.Project{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"projects": list})
}

// ServeGet handles GET /api/projects/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid project id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := projectstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "project not found")
			return
		}
		httpjson.ServerError(h.Log, w, "projects: get", err)
		return
	}
	httpjson.Write(w, http.StatusOK, p)
}

// HandleCreate handles POST /api/projects.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var p models.Project
	if err := httpjson.Decode(r, &p); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.Name == "" && p.ClientName == "" {
		httpjson.Error(w, http.StatusBadRequest, "a project needs a name or a client name")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := projectstore.New(h.DB).Create(ctx, p)
	if err != nil {
		httpjson.ServerError(h.Log, w, "projects: create", err)
		return
	}

	h.Log.Info("project created", zap.String("project_id", created.ID.Hex()))
	httpjson.Write(w, http.StatusCreated, created)
}

// HandleUpdate handles PUT /api/projects/{id}. The whole record is
// replaced; CreatedAt is preserved by the store.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid project id")
		return
	}

	var p models.Project
	if err := httpjson.Decode(r, &p); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := projectstore.New(h.DB).Replace(ctx, id, p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "project not found")
			return
		}
		httpjson.ServerError(h.Log, w, "projects: update", err)
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /api/projects/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid project id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := projectstore.New(h.DB).Delete(ctx, id)
	if err != nil {
		httpjson.ServerError(h.Log, w, "projects: delete", err)
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "project not found")
		return
	}

	h.Log.Info("project deleted", zap.String("project_id", id.Hex()))
	httpjson.Write(w, http.StatusOK, map[string]bool{"ok": true})
}
