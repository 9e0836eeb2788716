// internal/app/features/users/handler.go
package users

import (
	"context"
	"errors"
	"net/http"
	"strings"

	userstore "github.com/dalemusser/flattrack/internal/app/store/users"
	"github.com/dalemusser/flattrack/internal/app/system/auth"
	"github.com/dalemusser/flattrack/internal/app/system/httpjson"
	"github.com/dalemusser/flattrack/internal/app/system/timeouts"
	"github.com/dalemusser/flattrack/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// minPasswordLen matches what the account setup screen enforces.
const minPasswordLen = 8

// Handler is the shared dependency container for the users feature.
type Handler struct {
	DB  *mongo.Database
	Log *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{DB: db, Log: logger}
}

type userInput struct {
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	PositionID string `json:"position_id"`
	Role       string `json:"role"`
	Status     string `json:"status"`
	Password   string `json:"password"`
}

// ServeList handles GET /api/users. Optional ?role= filter.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := userstore.New(h.DB).List(ctx, r.URL.Query().Get("role"))
	if err != nil {
		httpjson.ServerError(h.Log, w, "users: list", err)
		return
	}
	if list == nil {
		list = []models.User{}
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"users": list})
}

// ServeGet handles GET /api/users/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := userstore.New(h.DB).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusNotFound, "user not found")
			return
		}
		httpjson.ServerError(h.Log, w, "users: get", err)
		return
	}
	httpjson.Write(w, http.StatusOK, u)
}

// HandleCreate handles POST /api/users.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in userInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.Email) == "" {
		httpjson.Error(w, http.StatusBadRequest, "full_name and email are required")
		return
	}
	if len(in.Password) < minPasswordLen {
		httpjson.Error(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		httpjson.ServerError(h.Log, w, "users: hash password", err)
		return
	}

	u := models.User{
		FullName:     in.FullName,
		Email:        in.Email,
		Phone:        in.Phone,
		Role:         in.Role,
		Status:       in.Status,
		PasswordHash: string(hash),
	}
	if in.PositionID != "" {
		posID, err := primitive.ObjectIDFromHex(in.PositionID)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid position id")
			return
		}
		u.PositionID = &posID
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := userstore.New(h.DB).Create(ctx, u)
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpjson.Error(w, http.StatusConflict, err.Error())
			return
		}
		// Role and status validation errors come back from the store.
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	h.Log.Info("user created",
		zap.String("user_id", created.ID.Hex()),
		zap.String("role", created.Role))
	httpjson.Write(w, http.StatusCreated, created)
}

// HandleUpdate handles PUT /api/users/{id}. Empty fields are left
// unchanged; a non-empty password is re-hashed.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var in userInput
	if err := httpjson.Decode(r, &in); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	upd := userstore.Update{}
	if in.FullName != "" {
		upd.FullName = &in.FullName
	}
	if in.Email != "" {
		upd.Email = &in.Email
	}
	if in.Phone != "" {
		upd.Phone = &in.Phone
	}
	if in.Role != "" {
		upd.Role = &in.Role
	}
	if in.Status != "" {
		upd.Status = &in.Status
	}
	if in.PositionID != "" {
		posID, err := primitive.ObjectIDFromHex(in.PositionID)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid position id")
			return
		}
		upd.PositionID = &posID
	}
	if in.Password != "" {
		if len(in.Password) < minPasswordLen {
			httpjson.Error(w, http.StatusBadRequest, "password must be at least 8 characters")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			httpjson.ServerError(h.Log, w, "users: hash password", err)
			return
		}
		upd.PasswordHash = string(hash)
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := userstore.New(h.DB).Update(ctx, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			httpjson.Error(w, http.StatusNotFound, "user not found")
		case errors.Is(err, userstore.ErrDuplicateEmail):
			httpjson.Error(w, http.StatusConflict, err.Error())
		default:
			httpjson.Error(w, http.StatusBadRequest, err.Error())
		}
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /api/users/{id}. Self-deletion is
// refused so an admin cannot lock themselves out mid-session.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if u, ok := auth.CurrentUser(r); ok && u.ID == id.Hex() {
		httpjson.Error(w, http.StatusBadRequest, "you cannot delete your own account")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := userstore.New(h.DB).Delete(ctx, id)
	if err != nil {
		httpjson.ServerError(h.Log, w, "users: delete", err)
		return
	}
	if n == 0 {
		httpjson.Error(w, http.StatusNotFound, "user not found")
		return
	}

	h.Log.Info("user deleted", zap.String("user_id", id.Hex()))
	httpjson.Write(w, http.StatusOK, map[string]bool{"ok": true})
}
