// internal/app/features/emailtemplates/handler.go
package emailtemplates

import (
	"context"
	"errors"
	"net/http"

	emailtemplatestore "github.com/dalemusser/flattrack/internal/app/store/emailtemplates"
	"github.com/dalemusser/flattrack/internal/app/system/httpjson"
	"github.com/dalemusser/flattrack/internal/app/system/timeouts"
	"github.com/dalemusser/flattrack/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

type templateInput struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ServeList handles GET /api/email-templates.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := emailtemplatestore.New(h.DB).List(ctx)
	if err != nil {
		httpjson.ServerError(h.Log, w, "email templates: list", err)
		return
	}
	if list == nil {
		list = []models.EmailTemplate{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"templates": list})
}

// ServeGetByName handles GET /api/email-templates/by-name/{name}.
// The name match is exact; the scheduler relies on this for the
// "SITE VISIT BOOKING" lookup.
func (h *Handler) ServeGetByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		httpjson.Error(w, http.StatusBadRequest, "template name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	tpl, err := emailtemplatestore.New(h.DB).GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "template not found")
			return
		}
		httpjson.ServerError(h.Log, w, "email templates: get by name", err)
		return
	}
	httpjson.Write(w, http.StatusOK, tpl)
}

// HandleCreate handles POST /api/email-templates.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in templateInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := emailtemplatestore.New(h.DB).Create(ctx, models.EmailTemplate{
		Name:    in.Name,
		Subject: in.Subject,
		Body:    in.Body,
	})
	if err != nil {
		if errors.Is(err, emailtemplatestore.ErrDuplicateName) {
			httpjson.Error(w, http.StatusConflict, err.Error())
			return
		}
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// HandleUpdate handles PUT /api/email-templates/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid template id")
		return
	}

	var in templateInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := emailtemplatestore.New(h.DB).Update(ctx, id, in.Name, in.Subject, in.Body)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			httpjson.Error(w, http.StatusNotFound, "template not found")
		case errors.Is(err, emailtemplatestore.ErrDuplicateName):
			httpjson.Error(w, http.StatusConflict, err.Error())
		default:
			httpjson.Error(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /api/email-templates/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid template id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := emailtemplatestore.New(h.DB).Delete(ctx, id)
	if err != nil {
		httpjson.ServerError(h.Log, w, "email templates: delete", err)
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "template not found")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]bool{"ok": true})
}
