// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP ports,
// TLS, logging level, and request limits. AppConfig is everything
// specific to FlatTrack itself.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions (default: flattrack-session)
	SessionDomain string // Cookie domain (blank means current host)

	// Email/SMTP configuration. A blank host disables the dispatcher
	// and the site-visit commit falls back to mailto links only.
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username (empty for unauthenticated relays)
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address
	MailFromName string // From display name
	MailStagger  time.Duration // Delay between queued booking emails

	// Base URL used when composing email links
	BaseURL string // e.g., "https://flattrack.example.com"

	// First-run admin account, created on startup when no user holds
	// the admin role yet.
	AdminEmail    string
	AdminPassword string
}
