// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging, CORS); AppConfig is everything specific to this application.
// Values come from config files, MYTRIP_* environment variables, or
// command-line flags, loaded in LoadConfig.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionName   string // Cookie name for sessions
	SessionDomain string // Cookie domain (blank means current host)

	// Email/SMTP configuration
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string

	// URLs: BaseURL is where this API is reachable (used in confirmation
	// links and the OAuth callback); FrontendURL is the SPA origin that
	// receives post-login redirects.
	BaseURL     string
	FrontendURL string
	SiteName    string

	// E-mail confirmation tokens
	ConfirmTokenSecret string
	ConfirmTokenExpiry time.Duration

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string
}
