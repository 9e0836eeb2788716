// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips unsafe markup from user-entered HTML
// before it is stored. Email template bodies and project notes pass
// through here on every write.
package htmlsanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	once   sync.Once
	policy *bluemonday.Policy
)

// userHTMLPolicy is the UGC policy plus the table and formatting
// elements the template editor produces.
func userHTMLPolicy() *bluemonday.Policy {
	once.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowElements("u", "s", "sub", "sup", "mark")
		p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
		p.AllowAttrs("class").OnElements("table", "thead", "tbody", "tr", "th", "td")
		policy = p
	})
	return policy
}

// Sanitize returns the input with disallowed elements and attributes
// removed. An empty input stays empty.
func Sanitize(in string) string {
	if in == "" {
		return ""
	}
	return userHTMLPolicy().Sanitize(in)
}
