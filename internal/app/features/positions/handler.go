// internal/app/features/positions/handler.go
package positions

import (
	"context"
	"errors"
	"net/http"

	positionstore "github.com/dalemusser/flattrack/internal/app/store/positions"
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

type positionInput struct {
	Name string `json:"name"`
}

// ServeList handles GET /api/positions.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	list, err := positionstore.New(h.DB).List(ctx)
	if err != nil {
		httpjson.ServerError(h.Log, w, "positions: list", err)
		return
	}
	if list == nil {
		list = []models.Position{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"positions": list})
}

// HandleCreate handles POST /api/positions.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in positionInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := positionstore.New(h.DB).Create(ctx, models.Position{Name: in.Name})
	if err != nil {
		if errors.Is(err, positionstore.ErrDuplicateName) {
			httpjson.Error(w, http.StatusConflict, err.Error())
			return
		}
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// HandleUpdate handles PUT /api/positions/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid position id")
		return
	}

	var in positionInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := positionstore.New(h.DB).Rename(ctx, id, in.Name)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			httpjson.Error(w, http.StatusNotFound, "position not found")
		case errors.Is(err, positionstore.ErrDuplicateName):
			httpjson.Error(w, http.StatusConflict, err.Error())
		default:
			httpjson.Error(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /api/positions/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid position id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := positionstore.New(h.DB).Delete(ctx, id)
	if err != nil {
		httpjson.ServerError(h.Log, w, "positions: delete", err)
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "position not found")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]bool{"ok": true})
}
