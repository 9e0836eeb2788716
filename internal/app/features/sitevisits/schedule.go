// internal/app/features/sitevisits/schedule.go
package sitevisits

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/flattrack/internal/app/scheduling"
	emailtemplatestore "github.com/dalemusser/flattrack/internal/app/store/emailtemplates"
	positionstore "github.com/dalemusser/flattrack/internal/app/store/positions"
	projectstore "github.com/dalemusser/flattrack/internal/app/store/projects"
	userstore "github.com/dalemusser/flattrack/internal/app/store/users"
	"github.com/dalemusser/flattrack/internal/app/system/httpjson"
	"github.com/dalemusser/flattrack/internal/app/system/mailer"
	"github.com/dalemusser/flattrack/internal/app/system/timeouts"
	"github.com/dalemusser/flattrack/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type scheduleRequest struct {
	Date string `json:"date"`

	// Optional per-project period overrides, keyed by project id.
	// Absent projects book the AM default. The grid slot is a visual
	// planning aid and never decides the period.
	Periods map[string]string `json:"periods,omitempty"`
}

type scheduledView struct {
	ProjectID    string   `json:"project_id"`
	Label        string   `json:"label"`
	Date         string   `json:"date"`
	Period       string   `json:"period"`
	StartMinutes int      `json:"start_minutes"`
	StartLabel   string   `json:"start_label"`
	EndLabel     string   `json:"end_label"`
	Recipients   []string `json:"recipients"`
	Mailto       string   `json:"mailto,omitempty"`
}

// HandleSchedule handles POST /api/site-visits/schedule, the terminal
// commit of a planning session.
//
// Every placed project of the active group gets the chosen date and its
// requested period (AM unless the request says PM), written in one
// batch that also moves status to "Booked". The booking email is then
// composed per project from the "SITE VISIT BOOKING" template, using
// the records as re-read after the write. Projects without contact
// emails are reported under "skipped" and stay "Booked"; the rest get a
// mailto URI, are queued to the SMTP dispatcher when one is configured,
// and move to "Email Sent". The session is cleared on success.
func (h *Handler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	var req scheduleRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	for id, period := range req.Periods {
		switch period {
		case "", models.PeriodAM, models.PeriodPM:
		default:
			httpjson.Error(w, http.StatusBadRequest,
				"period for project "+id+` must be "AM" or "PM"`)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	h.mu.Lock()
	defer h.mu.Unlock()

	group := h.planner.Group()
	if group == nil {
		httpjson.Error(w, http.StatusConflict, "no active group")
		return
	}
	placements := h.grid.Placements()
	if len(placements) == 0 {
		httpjson.Error(w, http.StatusBadRequest, "no projects placed on the grid")
		return
	}

	// Fail before writing anything if the booking template is missing.
	tpl, err := emailtemplatestore.New(h.DB).GetByName(ctx, models.SiteVisitBookingTemplate)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpjson.Error(w, http.StatusUnprocessableEntity,
				`email template "SITE VISIT BOOKING" not found`)
			return
		}
		httpjson.ServerError(h.Log, w, "site visits: load template", err)
		return
	}

	visits := make([]projectstore.ScheduledVisit, 0, len(placements))
	ids := make([]primitive.ObjectID, 0, len(placements))
	starts := make(map[string]int, len(placements))
	for idHex, start := range placements {
		id, err := primitive.ObjectIDFromHex(idHex)
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "grid contains an invalid project id")
			return
		}
		period := models.PeriodAM
		if req.Periods[idHex] == models.PeriodPM {
			period = models.PeriodPM
		}
		visits = append(visits, projectstore.ScheduledVisit{ProjectID: id, Date: req.Date, Period: period})
		ids = append(ids, id)
		starts[idHex] = start
	}

	store := projectstore.New(h.DB)
	if _, err := store.UpdateSiteVisitSchedule(ctx, visits); err != nil {
		httpjson.ServerError(h.Log, w, "site visits: schedule write", err)
		return
	}

	// Token values must reflect what was persisted, so re-read.
	projects, err := store.GetByIDs(ctx, ids)
	if err != nil {
		httpjson.ServerError(h.Log, w, "site visits: re-read projects", err)
		return
	}

	scheduled := make([]scheduledView, 0, len(projects))
	var skipped []string
	var queued int

	for _, p := range projects {
		idHex := p.ID.Hex()
		view := scheduledView{
			ProjectID:    idHex,
			Label:        p.DisplayLabel(),
			Date:         p.SiteVisitScheduledDate,
			Period:       p.VisitPeriod(),
			StartMinutes: starts[idHex],
			Recipients:   p.ContactEmails(),
		}
		view.StartLabel, view.EndLabel = scheduling.FormatRange(starts[idHex])

		if len(view.Recipients) == 0 {
			skipped = append(skipped, idHex)
			scheduled = append(scheduled, view)
			continue
		}

		email := mailer.BuildSiteVisitEmail(*tpl, h.tokenValues(ctx, p))
		view.Mailto = mailer.BuildMailto(email.To, email.Subject, email.Body)

		if h.Mail != nil {
			h.Mail.Enqueue(email)
			queued++
		}
		if err := store.MarkSiteVisitEmailSent(ctx, p.ID); err != nil {
			h.Log.Error("site visits: mark email sent", zap.Error(err),
				zap.String("project_id", idHex))
		}

		scheduled = append(scheduled, view)
	}

	h.Log.Info("site visits committed",
		zap.String("date", req.Date),
		zap.Int("scheduled", len(scheduled)),
		zap.Int("skipped", len(skipped)),
		zap.Int("queued", queued))

	// Terminal: the session is done.
	h.planner.ResetGroup()
	h.grid.Clear()

	httpjson.Write(w, http.StatusOK, map[string]any{
		"date":      req.Date,
		"scheduled": scheduled,
		"skipped":   skipped,
		"queued":    queued,
	})
}

// tokenValues resolves the salesperson and their position for token
// substitution. Lookup failures degrade to empty tokens; a missing
// salesperson must not block the booking.
func (h *Handler) tokenValues(ctx context.Context, p models.Project) mailer.TokenValues {
	v := mailer.TokenValues{Project: p}
	if p.SalespersonID == nil {
		return v
	}

	user, err := userstore.New(h.DB).GetByID(ctx, *p.SalespersonID)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			h.Log.Warn("site visits: salesperson lookup", zap.Error(err))
		}
		return v
	}
	v.Salesperson = user

	if user.PositionID != nil {
		pos, err := positionstore.New(h.DB).GetByID(ctx, *user.PositionID)
		if err == nil {
			v.SalespersonPosition = pos.Name
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			h.Log.Warn("site visits: position lookup", zap.Error(err))
		}
	}
	return v
}
