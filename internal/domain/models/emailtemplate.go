// internal/domain/models/emailtemplate.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SiteVisitBookingTemplate is the exact template name the site-visit
// scheduler looks up before composing booking emails.
const SiteVisitBookingTemplate = "SITE VISIT BOOKING"

// EmailTemplate is a named message template. The body may contain
// {Token} placeholders replaced at compose time (see system/mailer).
type EmailTemplate struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name    string             `bson:"name" json:"name"`
	Subject string             `bson:"subject" json:"subject"`
	Body    string             `bson:"body" json:"body"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
