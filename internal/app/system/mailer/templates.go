// internal/app/system/mailer/templates.go
package mailer

import (
	"github.com/dalemusser/flattrack/internal/domain/models"
)

// BuildSiteVisitEmail composes the booking email for one project from
// the stored template: tokens are replaced in both subject and body, and
// the recipients are the project's non-empty contact emails. The caller
// checks Email.To before sending; a project with no contact emails is a
// user-facing validation error, not a compose failure.
func BuildSiteVisitEmail(tmpl models.EmailTemplate, v TokenValues) Email {
	return Email{
		To:      v.Project.ContactEmails(),
		Subject: ReplaceTokens(tmpl.Subject, v),
		Body:    ReplaceTokens(tmpl.Body, v),
	}
}
