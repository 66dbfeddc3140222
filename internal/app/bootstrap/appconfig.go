// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers the
// framework-level settings (ports, TLS, logging, CORS, body limits); this
// struct covers everything WorkbookHub itself needs: where the workbook
// backend lives, the draft store, the browser session, and the optional
// reference-data cache.
type AppConfig struct {
	// Workbook backend
	BackendBaseURL string        // e.g. http://localhost:8000/api
	BackendTimeout time.Duration // per-call HTTP timeout

	// MongoDB (draft store)
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management
	SessionKey    string        // signs and encrypts the session cookie
	SessionName   string        // cookie name (default: workbookhub-session)
	SessionDomain string        // cookie domain (blank means current host)
	SessionMaxAge time.Duration // cookie lifetime

	// CSRF protection; blank generates a per-process key
	CSRFKey string

	// Drafts (staged workbooks awaiting publish)
	DraftTTL             time.Duration
	DraftCleanupInterval time.Duration

	// Reference-data cache (Redis); blank address disables it
	RefCacheAddr     string
	RefCachePassword string
	RefCacheDB       int
	RefCacheTTL      time.Duration

	// Request budgets (see system/timeouts)
	TimeoutShort   time.Duration
	TimeoutMedium  time.Duration
	TimeoutPublish time.Duration
	TimeoutExport  time.Duration
}
