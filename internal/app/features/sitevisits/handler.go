// internal/app/features/sitevisits/handler.go

// Package sitevisits exposes the site-visit planner over HTTP. The
// office runs one planning session at a time, so the feature holds a
// single Planner/Grid pair and serializes access with a mutex; the
// scheduling core itself stays lock-free.
package sitevisits

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/dalemusser/flattrack/internal/app/scheduling"
	projectstore "github.com/dalemusser/flattrack/internal/app/store/projects"
	"github.com/dalemusser/flattrack/internal/app/system/httpjson"
	"github.com/dalemusser/flattrack/internal/app/system/timeouts"
	"github.com/dalemusser/flattrack/internal/app/system/workers"
	"github.com/dalemusser/flattrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the planner session shared by all sitevisits endpoints.
type Handler struct {
	DB   *mongo.Database
	Log  *zap.Logger
	Mail *workers.MailDispatch

	mu      sync.Mutex
	planner *scheduling.Planner
	grid    *scheduling.Grid
}

// NewHandler constructs the sitevisits Handler with a fresh planner
// session. Mail may be nil when SMTP is not configured; the schedule
// commit then only returns mailto URIs.
func NewHandler(db *mongo.Database, mail *workers.MailDispatch, logger *zap.Logger) *Handler {
	return &Handler{
		DB:      db,
		Log:     logger,
		Mail:    mail,
		planner: scheduling.NewPlanner(),
		grid:    scheduling.NewGrid(),
	}
}

type candidateView struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Client   string `json:"client_name"`
	Street   string `json:"street"`
	Suburb   string `json:"suburb"`
	Selected bool   `json:"selected"`
	Grouped  bool   `json:"grouped"`
}

type groupView struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Color   string   `json:"color"`
	Members []string `json:"members"`
}

type sessionView struct {
	State          string         `json:"state"`
	SelectionCount int            `json:"selection_count"`
	Group          *groupView     `json:"group,omitempty"`
	Placements     map[string]int `json:"placements"`
}

// sessionLocked builds the session view. Callers hold h.mu.
func (h *Handler) sessionLocked() sessionView {
	v := sessionView{
		State:          h.planner.State().String(),
		SelectionCount: h.planner.SelectionCount(),
		Placements:     h.grid.Placements(),
	}
	if g := h.planner.Group(); g != nil {
		v.Group = &groupView{
			ID:      g.ID,
			Name:    g.Name,
			Color:   g.Color,
			Members: g.MemberIDs(),
		}
	}
	return v
}

// loadCandidates reads the schedulable projects: site-visit status
// "Not Complete" and not on hold.
func (h *Handler) loadCandidates(ctx context.Context) ([]models.Project, error) {
	hold := false
	list, err := projectstore.New(h.DB).List(ctx, projectstore.ListFilter{
		SiteVisitStatus: models.SiteVisitNotComplete,
		OnHold:          &hold,
	})
	if err != nil {
		return nil, err
	}
	return h.planner.ListCandidates(list), nil
}

// ServeCandidates handles GET /api/site-visits/candidates.
func (h *Handler) ServeCandidates(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	projects, err := h.loadCandidates(ctx)
	if err != nil {
		httpjson.ServerError(h.Log, w, "site visits: load candidates", err)
		return
	}

	group := h.planner.Group()
	views := make([]candidateView, len(projects))
	for i, p := range projects {
		id := p.ID.Hex()
		views[i] = candidateView{
			ID:       id,
			Label:    p.DisplayLabel(),
			Client:   p.ClientName,
			Street:   p.Street,
			Suburb:   p.Suburb,
			Selected: h.planner.Selected(id),
			Grouped:  group != nil && group.Contains(id),
		}
	}

	httpjson.Write(w, http.StatusOK, map[string]any{
		"candidates": views,
		"session":    h.sessionLocked(),
	})
}

// ServeSession handles GET /api/site-visits/session.
func (h *Handler) ServeSession(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	httpjson.Write(w, http.StatusOK, h.sessionLocked())
}

// HandleBeginTagging handles POST /api/site-visits/group/begin.
// A no-op while a group is active, mirroring the planner semantics.
func (h *Handler) HandleBeginTagging(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.planner.BeginTagging()
	httpjson.Write(w, http.StatusOK, h.sessionLocked())
}

type toggleRequest struct {
	ProjectID string `json:"projectId"`
}

// HandleToggleSelection handles POST /api/site-visits/group/toggle.
func (h *Handler) HandleToggleSelection(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if err := httpjson.Decode(r, &req); err != nil || req.ProjectID == "" {
		httpjson.Error(w, http.StatusBadRequest, "projectId is required")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.planner.State() != scheduling.StateTagging {
		httpjson.Error(w, http.StatusConflict, "not in tagging mode")
		return
	}
	h.planner.ToggleSelection(req.ProjectID)
	httpjson.Write(w, http.StatusOK, h.sessionLocked())
}

// HandleCommitGroup handles POST /api/site-visits/group/commit.
func (h *Handler) HandleCommitGroup(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	group, err := h.planner.CommitGroup()
	if err != nil {
		switch {
		case errors.Is(err, scheduling.ErrGroupLimit):
			httpjson.Error(w, http.StatusConflict, err.Error())
		case errors.Is(err, scheduling.ErrEmptySelection):
			httpjson.Error(w, http.StatusBadRequest, err.Error())
		default:
			httpjson.ServerError(h.Log, w, "site visits: commit group", err)
		}
		return
	}

	h.Log.Info("scheduling group committed",
		zap.String("group_id", group.ID),
		zap.String("name", group.Name),
		zap.Int("members", len(group.MemberIDs())))

	httpjson.Write(w, http.StatusOK, h.sessionLocked())
}

// HandleResetGroup handles POST /api/site-visits/group/reset. The
// group and every placement are discarded; stored projects are not
// touched.
func (h *Handler) HandleResetGroup(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.planner.ResetGroup()
	h.grid.Clear()
	httpjson.Write(w, http.StatusOK, h.sessionLocked())
}

// HandleCancelTagging handles POST /api/site-visits/group/cancel.
func (h *Handler) HandleCancelTagging(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.planner.Cancel()
	httpjson.Write(w, http.StatusOK, h.sessionLocked())
}
