// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/workbookhub/internal/app/system/inputval"
	"github.com/dalemusser/workbookhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for WorkbookHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: backend_base_url, mongo_uri, etc.
//   - Environment variables: WORKBOOKHUB_BACKEND_BASE_URL, WORKBOOKHUB_MONGO_URI, etc.
//   - Command-line flags: --backend_base_url, --mongo_uri, etc.
var appConfigKeys = []config.AppKey{
	{Name: "backend_base_url", Default: "http://localhost:8000/api", Desc: "Base URL of the workbook REST backend"},
	{Name: "backend_timeout", Default: "15s", Desc: "Per-call timeout for backend requests"},

	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI (draft store)"},
	{Name: "mongo_database", Default: "workbookhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 50, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 0, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "workbookhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie lifetime"},

	{Name: "csrf_key", Default: "", Desc: "CSRF token key (blank generates one per process)"},

	{Name: "draft_ttl", Default: "24h", Desc: "How long an unpublished draft is kept"},
	{Name: "draft_cleanup_interval", Default: "1h", Desc: "How often expired drafts are purged (0 disables)"},

	{Name: "refcache_addr", Default: "", Desc: "Redis address for the reference-data cache (blank disables)"},
	{Name: "refcache_password", Default: "", Desc: "Redis password"},
	{Name: "refcache_db", Default: 0, Desc: "Redis database number"},
	{Name: "refcache_ttl", Default: "5m", Desc: "Reference-data cache TTL"},

	{Name: "timeout_short", Default: "10s", Desc: "Budget for a single backend call or draft operation"},
	{Name: "timeout_medium", Default: "20s", Desc: "Budget for a page load"},
	{Name: "timeout_publish", Default: "2m", Desc: "Budget for publishing a draft"},
	{Name: "timeout_export", Default: "30s", Desc: "Budget for building an Excel export"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, WORKBOOKHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "WORKBOOKHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		BackendBaseURL: appValues.String("backend_base_url"),
		BackendTimeout: appValues.Duration("backend_timeout", 15*time.Second),

		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		CSRFKey: appValues.String("csrf_key"),

		DraftTTL:             appValues.Duration("draft_ttl", 24*time.Hour),
		DraftCleanupInterval: appValues.Duration("draft_cleanup_interval", time.Hour),

		RefCacheAddr:     appValues.String("refcache_addr"),
		RefCachePassword: appValues.String("refcache_password"),
		RefCacheDB:       appValues.Int("refcache_db"),
		RefCacheTTL:      appValues.Duration("refcache_ttl", 5*time.Minute),

		TimeoutShort:   appValues.Duration("timeout_short", timeouts.DefaultShort),
		TimeoutMedium:  appValues.Duration("timeout_medium", timeouts.DefaultMedium),
		TimeoutPublish: appValues.Duration("timeout_publish", timeouts.DefaultPublish),
		TimeoutExport:  appValues.Duration("timeout_export", timeouts.DefaultExport),
	}

	return coreCfg, appCfg, nil
}

// configInput is the part of AppConfig checked with struct tags.
type configInput struct {
	BackendBaseURL string `validate:"required,url" label:"backend_base_url"`
	MongoDatabase  string `validate:"required" label:"mongo_database"`
	SessionKey     string `validate:"required" label:"session_key"`
}

// ValidateConfig performs app-specific config validation.
//
// WorkbookHub checks the backend URL and the MongoDB URI so configuration
// errors surface before anything tries to connect, and refuses the
// development session key in production.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	in := configInput{
		BackendBaseURL: appCfg.BackendBaseURL,
		MongoDatabase:  appCfg.MongoDatabase,
		SessionKey:     appCfg.SessionKey,
	}
	if res := inputval.Validate(in); res.HasErrors() {
		logger.Error("invalid app config", zap.Strings("problems", res.Messages()))
		return fmt.Errorf("invalid app config: %s", res.All())
	}
	if !inputval.IsValidHTTPURL(appCfg.BackendBaseURL) {
		return fmt.Errorf("backend_base_url must be an http(s) URL, got %q", appCfg.BackendBaseURL)
	}

	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg != nil && coreCfg.Env == "prod" {
		if appCfg.SessionKey == "dev-only-change-me-please-0123456789ABCDEF" {
			return fmt.Errorf("session_key must be set in production")
		}
		if len(appCfg.SessionKey) < 32 {
			return fmt.Errorf("session_key must be at least 32 characters in production")
		}
	}

	if appCfg.DraftTTL <= 0 {
		return fmt.Errorf("draft_ttl must be positive")
	}

	return nil
}
