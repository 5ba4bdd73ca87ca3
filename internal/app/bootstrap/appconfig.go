// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS, body limits). AppConfig is everything specific to
// StudyHub: the MongoDB connection, the JWT signing secret, SMTP
// delivery for deadline reminders, and the reminder worker's schedule.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Auth configuration
	JWTSecret string // HMAC secret for signing bearer tokens (must be strong in production)

	// Email/SMTP configuration for deadline reminder delivery
	MailSMTPHost string // SMTP server host (e.g., localhost for Mailpit)
	MailSMTPPort int    // SMTP server port (e.g., 1025 for Mailpit, 587 for SES)
	MailSMTPUser string // SMTP username (empty for Mailpit)
	MailSMTPPass string // SMTP password
	MailFrom     string // From email address (e.g., noreply@studyhub.app)
	MailFromName string // From display name (e.g., StudyHub)

	// Links and branding used inside reminder emails
	BaseURL  string // e.g., "https://studyhub.app" or "http://localhost:3000"
	SiteName string // Display name in email subjects and bodies

	// Deadline reminder worker schedule
	ReminderInterval time.Duration // How often the worker sweeps (e.g., 5m)
	ReminderWindow   time.Duration // How far ahead a deadline counts as "due soon" (e.g., 1h)
}
