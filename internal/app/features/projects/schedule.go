// internal/app/features/projects/schedule.go
package projects

import (
	"context"
	"fmt"
	"net/http"
	"time"

	projectstore "github.com/dalemusser/flattrack/internal/app/store/projects"
	"github.com/dalemusser/flattrack/internal/app/system/httpjson"
	"github.com/dalemusser/flattrack/internal/app/system/timeouts"
	"github.com/dalemusser/flattrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type scheduledProjectInput struct {
	ProjectID string `json:"projectId"`
	Date      string `json:"date"`
	Period    string `json:"period"`
}

type scheduleRequest struct {
	Projects []scheduledProjectInput `json:"projects"`
}

// HandleUpdateSiteVisitScheduled processes
// POST /api/projects/update-site-visit-scheduled.
//
// Body: { "projects": [ { "projectId": "...", "date": "YYYY-MM-DD",
// "period": "AM"|"PM" }, ... ] }
//
// Every listed project gets its scheduled date and period written and
// its site-visit status moved to "Booked". The whole batch is validated
// before any write.
func (h *Handler) HandleUpdateSiteVisitScheduled(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Projects) == 0 {
		httpjson.Error(w, http.StatusBadRequest, "no projects to schedule")
		return
	}

	visits := make([]projectstore.ScheduledVisit, len(req.Projects))
	for i, in := range req.Projects {
		id, err := primitive.ObjectIDFromHex(in.ProjectID)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, fmt.Sprintf("invalid project id %q", in.ProjectID))
			return
		}
		if _, err := time.Parse("2006-01-02", in.Date); err != nil {
			httpjson.Error(w, http.StatusBadRequest, fmt.Sprintf("invalid date %q, want YYYY-MM-DD", in.Date))
			return
		}
		switch in.Period {
		case "", models.PeriodAM, models.PeriodPM:
		default:
			httpjson.Error(w, http.StatusBadRequest, fmt.Sprintf("invalid period %q, want AM or PM", in.Period))
			return
		}
		visits[i] = projectstore.ScheduledVisit{ProjectID: id, Date: in.Date, Period: in.Period}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	matched, err := projectstore.New(h.DB).UpdateSiteVisitSchedule(ctx, visits)
	if err != nil {
		httpjson.ServerError(h.Log, w, "projects: update site visit schedule", err)
		return
	}

	h.Log.Info("site visits scheduled",
		zap.Int("requested", len(visits)),
		zap.Int64("matched", matched))

	httpjson.Write(w, http.StatusOK, map[string]any{
		"requested": len(visits),
		"updated":   matched,
	})
}
