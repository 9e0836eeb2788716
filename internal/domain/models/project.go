// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Site-visit status values. An empty/absent status reads as
// SiteVisitNotComplete; use Project.VisitStatus() rather than comparing
// the raw field.
const (
	SiteVisitNotComplete = "Not Complete"
	SiteVisitEmailSent   = "Email Sent"
	SiteVisitBooked      = "Booked"
	SiteVisitComplete    = "Complete"
)

// Scheduled-visit periods.
const (
	PeriodAM = "AM"
	PeriodPM = "PM"
)

// Contact is one of up to three client contacts on a project.
type Contact struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email,omitempty" json:"email,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Project is a granny-flat build tracked through its lifecycle stages.
//
// Stage status fields (drawings, colours, windows, contract, planning)
// are free-form strings edited by the office; the site-visit status is
// the enumerated field the scheduling workflow drives.
type Project struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	ClientName string             `bson:"client_name" json:"client_name"`
	Street     string             `bson:"street" json:"street"`
	Suburb     string             `bson:"suburb" json:"suburb"`

	// Cost in cents to avoid float money.
	CostCents int64 `bson:"cost_cents" json:"cost_cents"`

	SalespersonID *primitive.ObjectID `bson:"salesperson_id,omitempty" json:"salesperson_id,omitempty"`

	DepositPaidCents int64  `bson:"deposit_paid_cents" json:"deposit_paid_cents"`
	DepositStatus    string `bson:"deposit_status,omitempty" json:"deposit_status,omitempty"`

	Contacts []Contact `bson:"contacts,omitempty" json:"contacts,omitempty"`

	DrawingsStatus string `bson:"drawings_status,omitempty" json:"drawings_status,omitempty"`
	ColoursStatus  string `bson:"colours_status,omitempty" json:"colours_status,omitempty"`
	WindowsStatus  string `bson:"windows_status,omitempty" json:"windows_status,omitempty"`
	ContractStatus string `bson:"contract_status,omitempty" json:"contract_status,omitempty"`
	PlanningStatus string `bson:"planning_status,omitempty" json:"planning_status,omitempty"`

	SiteVisitStatus string `bson:"site_visit_status,omitempty" json:"site_visit_status,omitempty"`

	// Scheduled visit, written by the batch site-visit commit.
	// Date is "YYYY-MM-DD"; Period is "AM" or "PM" (default AM).
	SiteVisitScheduledDate   string `bson:"site_visit_scheduled_date,omitempty" json:"site_visit_scheduled_date,omitempty"`
	SiteVisitScheduledPeriod string `bson:"site_visit_scheduled_period,omitempty" json:"site_visit_scheduled_period,omitempty"`

	Notes  string `bson:"notes,omitempty" json:"notes,omitempty"`
	OnHold bool   `bson:"on_hold,omitempty" json:"on_hold"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// VisitStatus returns the site-visit status with the documented default
// applied: an empty field means "Not Complete".
func (p Project) VisitStatus() string {
	if p.SiteVisitStatus == "" {
		return SiteVisitNotComplete
	}
	return p.SiteVisitStatus
}

// VisitPeriod returns the scheduled period with the AM default applied.
func (p Project) VisitPeriod() string {
	if p.SiteVisitScheduledPeriod == "" {
		return PeriodAM
	}
	return p.SiteVisitScheduledPeriod
}

// DisplayLabel is the short label shown on planner cards: suburb plus
// street, falling back to the project name.
func (p Project) DisplayLabel() string {
	switch {
	case p.Suburb != "" && p.Street != "":
		return p.Suburb + " - " + p.Street
	case p.Suburb != "":
		return p.Suburb
	case p.Street != "":
		return p.Street
	default:
		return p.Name
	}
}

// ContactEmails returns the non-empty contact email addresses.
func (p Project) ContactEmails() []string {
	var out []string
	for _, c := range p.Contacts {
		if c.Email != "" {
			out = append(out, c.Email)
		}
	}
	return out
}
