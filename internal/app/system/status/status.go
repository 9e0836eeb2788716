// internal/app/system/status/status.go

// Package status holds the canonical record-status values shared by the
// stores.
package status

const (
	Active   = "active"
	Disabled = "disabled"
)

// IsValid reports whether s is one of the canonical status values.
func IsValid(s string) bool {
	return s == Active || s == Disabled
}
