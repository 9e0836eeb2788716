// internal/app/system/mailer/tokens.go
package mailer

import (
	"fmt"
	"strings"

	"github.com/dalemusser/flattrack/internal/domain/models"
)

// TokenValues carries everything the template tokens can reference. The
// project fields must come from the record as re-read after the batch
// schedule write, so {SiteVisitScheduledDate}/{SiteVisitScheduledPeriod}
// reflect what was persisted.
type TokenValues struct {
	Project             models.Project
	Salesperson         *models.User
	SalespersonPosition string
}

// ReplaceTokens substitutes every {Token} placeholder by literal
// substring replacement. Token syntax is unambiguous and non-overlapping,
// so replacement order does not matter; unknown braces pass through.
func ReplaceTokens(text string, v TokenValues) string {
	p := v.Project

	contact := func(i int) string {
		if i < len(p.Contacts) {
			return p.Contacts[i].Name
		}
		return ""
	}

	pairs := []string{
		"{ProjectName}", p.Name,
		"{ClientName}", p.ClientName,
		"{ProjectCost}", formatCents(p.CostCents),
		"{Street}", p.Street,
		"{Suburb}", p.Suburb,
		"{DepositPaid}", formatCents(p.DepositPaidCents),
		"{DepositStatus}", p.DepositStatus,
		"{Contact1}", contact(0),
		"{Contact2}", contact(1),
		"{Contact3}", contact(2),
		"{SiteVisitScheduledDate}", p.SiteVisitScheduledDate,
		"{SiteVisitScheduledPeriod}", p.VisitPeriod(),
	}

	var spName, spPhone, spEmail string
	if v.Salesperson != nil {
		spName = v.Salesperson.FullName
		spPhone = v.Salesperson.Phone
		spEmail = v.Salesperson.Email
	}
	pairs = append(pairs,
		"{Salesperson}", spName,
		"{SalespersonPosition}", v.SalespersonPosition,
		"{SalespersonPhone}", spPhone,
		"{SalespersonEmail}", spEmail,
	)

	return strings.NewReplacer(pairs...).Replace(text)
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}
