package auth

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dalemusser/workbookhub/internal/app/system/backend"
	"github.com/dalemusser/workbookhub/internal/domain/models"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session keys                                                                |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	DefaultSessionName = "workbookhub-session"

	userIDKey        = "user_id"
	userNameKey      = "user_name"
	backendCookieKey = "backend_cookie"
	draftIDKey       = "draft_id"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Current-User helper                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionUser is what we keep in the session and inject into r.Context().
// BackendCookie is the Cookie header value that authenticates calls to the
// workbook backend on this user's behalf.
type SessionUser struct {
	ID            string
	Name          string
	BackendCookie string
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user and a found flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// WithTestUser injects u the same way LoadSessionUser does. Tests use it to
// skip the cookie round trip.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Session manager                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionManager owns the browser session cookie.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	gate  *Gate
	log   *zap.Logger
}

// NewSessionManager builds a cookie store signed with sessionKey and
// encrypted with a key derived from it. The backend cookie rides inside the
// session, so it must not be readable by the browser.
//
// secure=true gives Secure + SameSite=Lax cookies for HTTPS deployments; use
// secure=false for local http://localhost.
func NewSessionManager(sessionKey, name, domain string, ttl time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = DefaultSessionName
	}

	blockKey := sha256.Sum256([]byte("workbookhub-session-enc:" + sessionKey))
	store := sessions.NewCookieStore([]byte(sessionKey), blockKey[:])
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	logger.Info("session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain),
		zap.Duration("ttl", ttl))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// UseGate makes RequireSignedIn confirm every request with the backend.
func (m *SessionManager) UseGate(g *Gate) { m.gate = g }

// Store exposes the cookie store so callers can mirror its options.
func (m *SessionManager) Store() *sessions.CookieStore { return m.store }

// Name is the session cookie name.
func (m *SessionManager) Name() string { return m.name }

// GetSession returns the session for r. On decode failure it still returns
// a fresh, usable session alongside the error.
func (m *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return m.store.Get(r, m.name)
}

// SignIn records u in the session.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, u SessionUser) error {
	sess, err := m.GetSession(r)
	if err != nil {
		m.log.Warn("sign-in: discarding undecodable session", zap.Error(err))
	}
	sess.Values[userIDKey] = u.ID
	sess.Values[userNameKey] = u.Name
	sess.Values[backendCookieKey] = u.BackendCookie
	delete(sess.Values, draftIDKey)
	return sess.Save(r, w)
}

// SignOut deletes the session cookie.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, err := m.GetSession(r)
	if err != nil {
		m.log.Warn("sign-out: session decode failed", zap.Error(err))
	}
	if opts := m.store.Options; opts != nil {
		sess.Options.Domain = opts.Domain
		sess.Options.Path = opts.Path
		sess.Options.Secure = opts.Secure
		sess.Options.HttpOnly = opts.HttpOnly
		sess.Options.SameSite = opts.SameSite
	}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// DraftID returns the id of the draft staged in this browser session.
func (m *SessionManager) DraftID(r *http.Request) string {
	sess, err := m.GetSession(r)
	if err != nil {
		return ""
	}
	return getString(sess, draftIDKey)
}

// SetDraftID stores (or with "" clears) the staged draft id.
func (m *SessionManager) SetDraftID(w http.ResponseWriter, r *http.Request, id string) error {
	sess, err := m.GetSession(r)
	if err != nil {
		return fmt.Errorf("set draft id: %w", err)
	}
	if id == "" {
		delete(sess.Values, draftIDKey)
	} else {
		sess.Values[draftIDKey] = id
	}
	return sess.Save(r, w)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Middleware                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// LoadSessionUser injects the user into context if the session has one, and
// attaches their backend credentials so backend calls made while serving
// the request are authenticated.
func (m *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.GetSession(r)
		if err != nil {
			m.log.Debug("session decode failed", zap.Error(err))
			next.ServeHTTP(w, r)
			return
		}

		if id := getString(sess, userIDKey); id != "" {
			r = withUser(r, &SessionUser{
				ID:            id,
				Name:          getString(sess, userNameKey),
				BackendCookie: getString(sess, backendCookieKey),
			})
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn lets the request through only when there is a session
// user and, with a gate configured, the backend still accepts their
// session. Otherwise:
//   - HTMX: sends HX-Redirect to /login?return=...
//   - HTML: 303 redirect to /login?return=...
//   - API:  401 Unauthorized with a plain error body.
func (m *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := CurrentUser(r)
		if !ok {
			deny(w, r)
			return
		}

		if m.gate != nil {
			st, err := m.gate.Check(r.Context())
			if err != nil {
				m.log.Warn("session check failed",
					zap.String("user_id", u.ID),
					zap.String("path", r.URL.Path),
					zap.Error(err))
			}
			if !st.Authenticated() {
				if err := m.SignOut(w, r); err != nil {
					m.log.Error("clear stale session", zap.Error(err))
				}
				deny(w, r)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func deny(w http.ResponseWriter, r *http.Request) {
	ret := url.QueryEscape(currentURI(r))

	// HTMX: full-page client redirect (no partial swap)
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/login?return="+ret)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if wantsHTML(r) {
		http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
		return
	}

	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Backend session gate                                                        |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionChecker asks the backend who the current session belongs to.
// *backend.Client satisfies it.
type SessionChecker interface {
	GetSession(ctx context.Context) (models.SessionInfo, error)
}

// Status is the outcome of a gate check. The zero value is unauthenticated.
type Status struct {
	UserID string
}

// Unauthenticated is the status of a request with no valid backend session.
var Unauthenticated = Status{}

// Authenticated reports whether the backend recognised the session.
func (s Status) Authenticated() bool { return s.UserID != "" }

// Gate checks the backend session carried in the request context.
type Gate struct {
	backend SessionChecker
}

// NewGate returns a Gate backed by c.
func NewGate(c SessionChecker) *Gate {
	return &Gate{backend: c}
}

// Check returns Authenticated{UserID} or Unauthenticated. A 401/403 from the
// backend is a clean Unauthenticated; any other failure is also
// Unauthenticated but the error is returned for logging.
func (g *Gate) Check(ctx context.Context) (Status, error) {
	if backend.CredentialsFrom(ctx) == "" {
		return Unauthenticated, nil
	}
	info, err := g.backend.GetSession(ctx)
	if err != nil {
		if backend.IsUnauthenticated(err) {
			return Unauthenticated, nil
		}
		return Unauthenticated, err
	}
	if info.UserID == "" {
		return Unauthenticated, errors.New("backend session has no user id")
	}
	return Status{UserID: info.UserID}, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| helpers                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func withUser(r *http.Request, u *SessionUser) *http.Request {
	ctx := context.WithValue(r.Context(), currentUserKey, u)
	if u != nil && u.BackendCookie != "" {
		ctx = backend.WithCredentials(ctx, u.BackendCookie)
	}
	return r.WithContext(ctx)
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func wantsHTML(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func currentURI(r *http.Request) string {
	u := *r.URL
	return u.RequestURI()
}
