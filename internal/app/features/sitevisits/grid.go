// internal/app/features/sitevisits/grid.go
package sitevisits

import (
	"errors"
	"net/http"
	"sort"

	"github.com/dalemusser/flattrack/internal/app/scheduling"
	"github.com/dalemusser/flattrack/internal/app/system/httpjson"
)

type placementView struct {
	ProjectID    string `json:"project_id"`
	StartMinutes int    `json:"start_minutes"`
	StartLabel   string `json:"start_label"`
	EndLabel     string `json:"end_label"`
}

// gridLocked builds the placement list sorted by start time. Callers
// hold h.mu.
func (h *Handler) gridLocked() []placementView {
	placements := h.grid.Placements()
	views := make([]placementView, 0, len(placements))
	for id, start := range placements {
		startLabel, endLabel := scheduling.FormatRange(start)
		views = append(views, placementView{
			ProjectID:    id,
			StartMinutes: start,
			StartLabel:   startLabel,
			EndLabel:     endLabel,
		})
	}
	// Map order is random; present the day in order.
	sort.Slice(views, func(i, j int) bool {
		return views[i].StartMinutes < views[j].StartMinutes
	})
	return views
}

// ServeGrid handles GET /api/site-visits/grid.
func (h *Handler) ServeGrid(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	httpjson.Write(w, http.StatusOK, map[string]any{"placements": h.gridLocked()})
}

type placeRequest struct {
	ProjectID    string `json:"projectId"`
	StartMinutes int    `json:"startMinutes"`
}

// HandlePlace handles POST /api/site-visits/grid/place. The start must
// be an hour snap inside the day, and the project must belong to the
// committed group. A collision answers 409 and leaves the grid as it
// was.
func (h *Handler) HandlePlace(w http.ResponseWriter, r *http.Request) {
	var req placeRequest
	if err := httpjson.Decode(r, &req); err != nil || req.ProjectID == "" {
		httpjson.Error(w, http.StatusBadRequest, "projectId is required")
		return
	}
	if req.StartMinutes < 0 || req.StartMinutes > scheduling.MaxStartMinutes ||
		req.StartMinutes%scheduling.SlotMinutes != 0 {
		httpjson.Error(w, http.StatusBadRequest, "startMinutes must be an hour snap within the day")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	group := h.planner.Group()
	if group == nil {
		httpjson.Error(w, http.StatusConflict, "no active group")
		return
	}
	if !group.Contains(req.ProjectID) {
		httpjson.Error(w, http.StatusBadRequest, "project is not in the active group")
		return
	}

	if err := h.grid.Place(req.ProjectID, req.StartMinutes); err != nil {
		if errors.Is(err, scheduling.ErrSlotOccupied) {
			httpjson.Error(w, http.StatusConflict, err.Error())
			return
		}
		httpjson.ServerError(h.Log, w, "site visits: place", err)
		return
	}

	httpjson.Write(w, http.StatusOK, map[string]any{"placements": h.gridLocked()})
}

type unplaceRequest struct {
	ProjectID string `json:"projectId"`
}

// HandleUnplace handles POST /api/site-visits/grid/unplace. Removing a
// project that is not placed is a no-op.
func (h *Handler) HandleUnplace(w http.ResponseWriter, r *http.Request) {
	var req unplaceRequest
	if err := httpjson.Decode(r, &req); err != nil || req.ProjectID == "" {
		httpjson.Error(w, http.StatusBadRequest, "projectId is required")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.grid.Unplace(req.ProjectID)
	httpjson.Write(w, http.StatusOK, map[string]any{"placements": h.gridLocked()})
}
