// internal/app/bootstrap/routes.go
package bootstrap

import (
	"crypto/sha256"
	"net/http"

	draftsfeature "github.com/dalemusser/workbookhub/internal/app/features/drafts"
	errorsfeature "github.com/dalemusser/workbookhub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/workbookhub/internal/app/features/health"
	homefeature "github.com/dalemusser/workbookhub/internal/app/features/home"
	loginfeature "github.com/dalemusser/workbookhub/internal/app/features/login"
	logoutfeature "github.com/dalemusser/workbookhub/internal/app/features/logout"
	workbooknewfeature "github.com/dalemusser/workbookhub/internal/app/features/workbooknew"
	workbooksfeature "github.com/dalemusser/workbookhub/internal/app/features/workbooks"
	workbookviewfeature "github.com/dalemusser/workbookhub/internal/app/features/workbookview"
	"github.com/dalemusser/workbookhub/internal/app/system/auth"
	"github.com/dalemusser/workbookhub/internal/app/system/backend"
	"github.com/dalemusser/workbookhub/internal/app/system/publish"
	"github.com/dalemusser/workbookhub/internal/app/system/ratelimit"
	"github.com/dalemusser/workbookhub/internal/app/system/refdata"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/csrf"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed.
//
// WorkbookHub creates the backend client, wires the session gate to it,
// initializes the template engine, applies session and CSRF middleware, and
// mounts the feature routers: login/logout, the workbook list and search,
// the new-workbook wizard, the draft editor, and the persisted workbook view.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	client, err := backend.New(appCfg.BackendBaseURL, appCfg.BackendTimeout, logger)
	if err != nil {
		logger.Error("backend client init failed", zap.Error(err))
		return nil, err
	}

	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}
	// Every protected request re-checks the session with the backend.
	sessionMgr.UseGate(auth.NewGate(client))

	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler()

	var cache refdata.Cache
	if deps.RefCache != nil {
		cache = deps.RefCache
	}
	ref := refdata.NewLoader(client, cache, logger)
	pub := publish.NewSequencer(client, logger)

	r := chi.NewRouter()

	// Loads SessionUser (and the backend credentials) into the context.
	r.Use(sessionMgr.LoadSessionUser)

	// Health check endpoint for load balancers; outside CSRF protection.
	var draftsPinger healthfeature.Pinger
	if deps.Drafts != nil {
		draftsPinger = deps.Drafts
	}
	healthHandler := healthfeature.NewHandler(draftsPinger, client, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	r.Group(func(pr chi.Router) {
		pr.Use(csrfMiddleware(appCfg, secure, errorsHandler.Forbidden, logger)...)

		homeHandler := homefeature.NewHandler(logger)
		pr.Mount("/", homefeature.Routes(homeHandler))

		// Authentication
		loginHandler := loginfeature.NewHandler(client, sessionMgr, errLog, logger)
		loginHandler.Limiter = ratelimit.NewLoginLimiter()
		pr.Mount("/login", loginfeature.Routes(loginHandler))

		logoutHandler := logoutfeature.NewHandler(client, sessionMgr, logger)
		pr.Mount("/logout", logoutfeature.Routes(logoutHandler))

		// Error pages
		pr.Get("/forbidden", errorsHandler.Forbidden)
		pr.Get("/unauthorized", errorsHandler.Unauthorized)

		// Workbooks: list and search at the root, the wizard at /new, and
		// a single persisted workbook under /{id}.
		listHandler := workbooksfeature.NewHandler(client, ref, errLog, logger)
		wbr := workbooksfeature.Routes(listHandler, sessionMgr)

		newHandler := workbooknewfeature.NewHandler(deps.Drafts, ref, sessionMgr, errLog, logger)
		wbr.Mount("/new", workbooknewfeature.Routes(newHandler, sessionMgr))

		viewHandler := workbookviewfeature.NewHandler(client, ref, errLog, logger)
		wbr.Mount("/{id}", workbookviewfeature.Routes(viewHandler, sessionMgr))

		pr.Mount("/workbooks", wbr)

		// Draft editor and publish
		draftsHandler := draftsfeature.NewHandler(deps.Drafts, ref, pub, sessionMgr, errLog, logger)
		pr.Mount("/drafts", draftsfeature.Routes(draftsHandler, sessionMgr))
	})

	r.NotFound(errorsHandler.NotFound)

	return r, nil
}

// csrfMiddleware returns the CSRF protection chain. A blank csrf_key gets a
// random per-process key, so tokens do not survive a restart.
func csrfMiddleware(appCfg AppConfig, secure bool, onFail http.HandlerFunc, logger *zap.Logger) []func(http.Handler) http.Handler {
	var key []byte
	if appCfg.CSRFKey != "" {
		sum := sha256.Sum256([]byte(appCfg.CSRFKey))
		key = sum[:]
	} else {
		logger.Warn("csrf_key not set; generating a per-process key")
		key = securecookie.GenerateRandomKey(32)
	}

	protect := csrf.Protect(key,
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(onFail),
	)

	// gorilla/csrf assumes HTTPS and checks the Referer against it; plain
	// HTTP requests in development must be marked first.
	plaintext := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.TLS == nil && !secure {
				r = csrf.PlaintextHTTPRequest(r)
			}
			next.ServeHTTP(w, r)
		})
	}

	return []func(http.Handler) http.Handler{plaintext, protect}
}
