package login_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	uierrors "github.com/dalemusser/workbookhub/internal/app/features/errors"
	"github.com/dalemusser/workbookhub/internal/app/features/login"
	"github.com/dalemusser/workbookhub/internal/app/system/auth"
	"github.com/dalemusser/workbookhub/internal/app/system/ratelimit"
	"github.com/dalemusser/workbookhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*login.Handler, *testutil.FakeBackend) {
	t.Helper()
	logger := zap.NewNop()
	fb := testutil.NewFakeBackend(t)

	sessionMgr, err := auth.NewSessionManager("test-session-key-for-testing-only-32", "test-session", "", 24*time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	return login.NewHandler(fb.Client(t), sessionMgr, uierrors.NewErrorLogger(logger), logger), fb
}

func postLogin(h *login.Handler, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	func() {
		defer func() { _ = recover() }()
		h.HandleLoginPost(rec, req)
	}()
	return rec
}

func TestHandleLoginPost_Success(t *testing.T) {
	h, fb := newTestHandler(t)
	lead := testutil.LeadUser()

	fb.Handle(http.MethodPost, "/session/ada", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "backend-abc", Path: "/"})
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"session_id":"backend-abc"}`))
	})
	fb.Handle(http.MethodGet, "/session/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Cookie") != "session=backend-abc" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"user_id":"` + lead.ID + `"}`))
	})
	testutil.SeedReference(fb, testutil.DefaultReference())

	rec := postLogin(h, url.Values{"username": {"  ada "}, "return": {"/workbooks/wb-1"}})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/workbooks/wb-1" {
		t.Errorf("Location: got %q, want %q", loc, "/workbooks/wb-1")
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("expected a session cookie")
	}
}

func TestHandleLoginPost_RejectsOffsiteReturn(t *testing.T) {
	h, fb := newTestHandler(t)
	fb.Handle(http.MethodPost, "/session/ada", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "x"})
		w.Write([]byte(`{"ok":true}`))
	})
	fb.JSON(http.MethodGet, "/session/", http.StatusOK, map[string]string{"user_id": "u-1"})
	fb.JSON(http.MethodGet, "/users/", http.StatusOK, []any{})

	rec := postLogin(h, url.Values{"username": {"ada"}, "return": {"https://evil.example.com/"}})

	if loc := rec.Header().Get("Location"); loc != "/workbooks" {
		t.Errorf("Location: got %q, want %q", loc, "/workbooks")
	}
}

func TestHandleLoginPost_UnknownUser(t *testing.T) {
	h, fb := newTestHandler(t)
	fb.JSON(http.MethodPost, "/session/nobody", http.StatusUnprocessableEntity, map[string]string{"detail": "User not found"})

	rec := postLogin(h, url.Values{"username": {"nobody"}})

	if rec.Code == http.StatusSeeOther {
		t.Fatal("unknown user was signed in")
	}
	if n := len(fb.CallsTo(http.MethodGet, "/session/")); n != 0 {
		t.Errorf("session confirmed %d times after a rejected login", n)
	}
}

func TestHandleLoginPost_EmptyUsername_NoBackendCall(t *testing.T) {
	h, fb := newTestHandler(t)

	rec := postLogin(h, url.Values{"username": {"   "}})

	if rec.Code == http.StatusSeeOther {
		t.Fatal("empty username redirected")
	}
	if n := len(fb.Calls()); n != 0 {
		t.Errorf("backend called %d times for invalid input", n)
	}
}

func TestServeLogin_SignedInRedirects(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest("GET", "/login", testutil.LeadUser())
	rec := httptest.NewRecorder()
	h.ServeLogin(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
}

func TestHandleLoginPost_Throttled_NoBackendCall(t *testing.T) {
	h, fb := newTestHandler(t)
	h.Limiter = ratelimit.NewLoginLimiterWithConfig(100, time.Minute, 1, time.Minute)
	defer h.Limiter.Stop()
	fb.JSON(http.MethodPost, "/session/nobody", http.StatusUnprocessableEntity, map[string]string{"detail": "User not found"})

	postLogin(h, url.Values{"username": {"nobody"}})
	before := len(fb.Calls())

	rec := postLogin(h, url.Values{"username": {"nobody"}})

	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if n := len(fb.Calls()) - before; n != 0 {
		t.Errorf("backend called %d times for a throttled attempt", n)
	}
}
