// internal/app/system/mailer/mailto.go
package mailer

import (
	"net/url"
	"strings"
)

// BuildMailto constructs a mailto: URI for the frontend to open in the
// local mail client. Subject and body are percent-encoded; multiple
// recipients are comma-joined per RFC 6068.
func BuildMailto(to []string, subject, body string) string {
	var b strings.Builder
	b.WriteString("mailto:")
	b.WriteString(strings.Join(to, ","))

	q := url.Values{}
	if subject != "" {
		q.Set("subject", subject)
	}
	if body != "" {
		q.Set("body", body)
	}
	if enc := q.Encode(); enc != "" {
		b.WriteString("?")
		// url.Values encodes spaces as "+", which mail clients do not
		// decode in mailto URIs; use %20 instead.
		b.WriteString(strings.ReplaceAll(enc, "+", "%20"))
	}
	return b.String()
}
