package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/workbookhub/internal/app/system/auth"
	"github.com/dalemusser/workbookhub/internal/app/system/backend"
	"github.com/dalemusser/workbookhub/internal/domain/models"
	"go.uber.org/zap"
)

func newTestSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager(
		"test-session-key-must-be-32-chars-long",
		"test-session",
		"",
		24*time.Hour,
		false,
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	return sm
}

type stubChecker struct {
	info   models.SessionInfo
	err    error
	cookie string
}

func (s *stubChecker) GetSession(ctx context.Context) (models.SessionInfo, error) {
	s.cookie = backend.CredentialsFrom(ctx)
	return s.info, s.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("protected content"))
	})
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	if _, err := auth.NewSessionManager("", "s", "", time.Hour, false, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty session key")
	}
}

func TestRequireSignedIn_NoUser_RedirectsToLogin(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.RequireSignedIn(okHandler())

	req := httptest.NewRequest("GET", "/workbooks?name=bio", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	want := "/login?return=" + "%2Fworkbooks%3Fname%3Dbio"
	if got := rec.Header().Get("Location"); got != want {
		t.Errorf("Location = %q, want %q", got, want)
	}
}

func TestRequireSignedIn_NoUser_API_Returns401(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.RequireSignedIn(okHandler())

	req := httptest.NewRequest("GET", "/workbooks/1/export.xlsx", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireSignedIn_NoUser_HTMX_ReturnsHXRedirect(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.RequireSignedIn(okHandler())

	req := httptest.NewRequest("POST", "/drafts/edit/weeks", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if hx := rec.Header().Get("HX-Redirect"); !strings.HasPrefix(hx, "/login") {
		t.Errorf("expected HX-Redirect to /login, got %q", hx)
	}
}

func TestRequireSignedIn_GateAuthenticated_Proceeds(t *testing.T) {
	sm := newTestSessionManager(t)
	checker := &stubChecker{info: models.SessionInfo{UserID: "u-1"}}
	sm.UseGate(auth.NewGate(checker))
	handler := sm.RequireSignedIn(okHandler())

	req := httptest.NewRequest("GET", "/workbooks", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "u-1", Name: "Ada", BackendCookie: "session=abc"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if checker.cookie != "session=abc" {
		t.Errorf("gate saw cookie %q, want %q", checker.cookie, "session=abc")
	}
}

func TestRequireSignedIn_GateRejects_RedirectsAndClearsCookie(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"forbidden", &backend.APIError{StatusCode: http.StatusForbidden}},
		{"unauthorized", &backend.APIError{StatusCode: http.StatusUnauthorized}},
		{"backend down", errors.New("connection refused")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := newTestSessionManager(t)
			sm.UseGate(auth.NewGate(&stubChecker{err: tt.err}))
			handler := sm.RequireSignedIn(okHandler())

			req := httptest.NewRequest("GET", "/workbooks", nil)
			req.Header.Set("Accept", "text/html")
			req = auth.WithTestUser(req, &auth.SessionUser{ID: "u-1", BackendCookie: "session=expired"})
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusSeeOther {
				t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
			}
			cleared := false
			for _, c := range rec.Result().Cookies() {
				if c.Name == "test-session" && c.MaxAge < 0 {
					cleared = true
				}
			}
			if !cleared {
				t.Error("stale session cookie was not cleared")
			}
		})
	}
}

func TestGate_NoCredentials_Unauthenticated(t *testing.T) {
	checker := &stubChecker{info: models.SessionInfo{UserID: "u-1"}}
	st, err := auth.NewGate(checker).Check(context.Background())
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if st.Authenticated() {
		t.Error("expected Unauthenticated without credentials")
	}
}

func TestGate_Authenticated(t *testing.T) {
	checker := &stubChecker{info: models.SessionInfo{UserID: "u-9"}}
	ctx := backend.WithCredentials(context.Background(), "session=x")
	st, err := auth.NewGate(checker).Check(ctx)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !st.Authenticated() || st.UserID != "u-9" {
		t.Errorf("status = %+v", st)
	}
}

func TestSignIn_LoadSessionUser_RoundTrip(t *testing.T) {
	sm := newTestSessionManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/login", nil)
	err := sm.SignIn(rec, req, auth.SessionUser{ID: "u-1", Name: "Ada", BackendCookie: "session=abc"})
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("SignIn set no cookie")
	}

	next := httptest.NewRequest("GET", "/workbooks", nil)
	for _, c := range cookies {
		next.AddCookie(c)
	}

	var got *auth.SessionUser
	var creds string
	sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
		creds = backend.CredentialsFrom(r.Context())
	})).ServeHTTP(httptest.NewRecorder(), next)

	if got == nil || got.ID != "u-1" || got.Name != "Ada" {
		t.Fatalf("CurrentUser = %+v", got)
	}
	if creds != "session=abc" {
		t.Errorf("credentials = %q", creds)
	}
	if strings.Contains(cookies[0].Value, "session=abc") {
		t.Error("backend cookie visible in browser cookie")
	}
}

func TestSignIn_BackendCookieSize(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"typical backend cookie", 1024, false},
		{"larger than a browser cookie", 5000, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm := newTestSessionManager(t)
			backendCookie := "session=" + strings.Repeat("a", tt.size)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest("POST", "/login", nil)
			err := sm.SignIn(rec, req, auth.SessionUser{ID: "u-1", Name: "Ada", BackendCookie: backendCookie})
			if (err != nil) != tt.wantErr {
				t.Fatalf("SignIn error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			next := httptest.NewRequest("GET", "/workbooks", nil)
			for _, c := range rec.Result().Cookies() {
				next.AddCookie(c)
			}
			var creds string
			sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				creds = backend.CredentialsFrom(r.Context())
			})).ServeHTTP(httptest.NewRecorder(), next)
			if creds != backendCookie {
				t.Errorf("credentials length = %d, want %d", len(creds), len(backendCookie))
			}
		})
	}
}

func TestDraftID_RoundTrip(t *testing.T) {
	sm := newTestSessionManager(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/workbooks/new", nil)
	if err := sm.SetDraftID(rec, req, "d-42"); err != nil {
		t.Fatalf("SetDraftID: %v", err)
	}

	next := httptest.NewRequest("GET", "/drafts/edit", nil)
	for _, c := range rec.Result().Cookies() {
		next.AddCookie(c)
	}
	if got := sm.DraftID(next); got != "d-42" {
		t.Errorf("DraftID = %q, want %q", got, "d-42")
	}
	if got := sm.DraftID(httptest.NewRequest("GET", "/", nil)); got != "" {
		t.Errorf("DraftID without cookie = %q", got)
	}
}

func TestCurrentUser_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if u, ok := auth.CurrentUser(req); ok || u != nil {
		t.Errorf("expected no user, got %+v", u)
	}
}
