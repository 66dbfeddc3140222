package workbooks_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/workbookhub/internal/app/features/errors"
	"github.com/dalemusser/workbookhub/internal/app/features/workbooks"
	"github.com/dalemusser/workbookhub/internal/app/system/refdata"
	"github.com/dalemusser/workbookhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*workbooks.Handler, *testutil.FakeBackend) {
	t.Helper()
	logger := zap.NewNop()
	fb := testutil.NewFakeBackend(t)
	client := fb.Client(t)
	h := workbooks.NewHandler(client, refdata.NewLoader(client, nil, logger), uierrors.NewErrorLogger(logger), logger)
	return h, fb
}

// serve runs fn, swallowing the panic template rendering raises when no
// engine is booted in tests.
func serve(fn http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	func() {
		defer func() { _ = recover() }()
		fn(rec, req)
	}()
	return rec
}

func TestServeList_FetchesWorkbooks(t *testing.T) {
	h, fb := newTestHandler(t)
	fb.JSON(http.MethodGet, "/workbooks/", http.StatusOK, []map[string]any{
		{"id": "wb-1", "course_name": "Biology 101", "start_date": "2025-01-06", "end_date": "2025-01-12",
			"course_lead_id": "u-lead", "learning_platform_id": "p-moodle", "course_lead": "Ada Lead", "learning_platform": "Moodle"},
	})

	serve(h.ServeList, testutil.NewAuthenticatedRequest("GET", "/workbooks", testutil.LeadUser()))

	calls := fb.CallsTo(http.MethodGet, "/workbooks/")
	if len(calls) != 1 {
		t.Fatalf("GET /workbooks/ called %d times, want 1", len(calls))
	}
	if calls[0].Cookie != testutil.LeadUser().BackendCookie {
		t.Errorf("cookie: got %q, want %q", calls[0].Cookie, testutil.LeadUser().BackendCookie)
	}
}

func TestServeList_ExpiredBackendSessionRedirectsToLogin(t *testing.T) {
	h, fb := newTestHandler(t)
	fb.JSON(http.MethodGet, "/workbooks/", http.StatusForbidden, map[string]string{"detail": "Not authenticated"})

	req := testutil.NewAuthenticatedRequest("GET", "/workbooks", testutil.LeadUser())
	req.Header.Set("Accept", "text/html")
	rec := serve(h.ServeList, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login") {
		t.Errorf("Location: got %q, want /login…", loc)
	}
}

func TestServeSearch_NoFiltersSkipsBackendSearch(t *testing.T) {
	h, fb := newTestHandler(t)
	testutil.SeedReference(fb, testutil.DefaultReference())

	serve(h.ServeSearch, testutil.NewAuthenticatedRequest("GET", "/workbooks/search", testutil.LeadUser()))

	if n := len(fb.CallsTo(http.MethodGet, "/workbooks/search/")); n != 0 {
		t.Errorf("search called %d times without filters", n)
	}
	if n := len(fb.CallsTo(http.MethodGet, "/learning-platforms/")); n != 1 {
		t.Errorf("learning platforms fetched %d times, want 1", n)
	}
}

func TestServeSearch_SendsOnlySetFilters(t *testing.T) {
	h, fb := newTestHandler(t)
	testutil.SeedReference(fb, testutil.DefaultReference())
	fb.JSON(http.MethodGet, "/workbooks/search/", http.StatusOK, []any{})

	target := "/workbooks/search?name=Bio&starts_after=2025-01-01&led_by=all&learning_platform=p-moodle&area_id="
	serve(h.ServeSearch, testutil.NewAuthenticatedRequest("GET", target, testutil.LeadUser()))

	calls := fb.CallsTo(http.MethodGet, "/workbooks/search/")
	if len(calls) != 1 {
		t.Fatalf("search called %d times, want 1", len(calls))
	}
	q := calls[0].Query
	for _, want := range []string{"name=Bio", "starts_after=2025-01-01", "learning_platform=p-moodle"} {
		if !strings.Contains(q, want) {
			t.Errorf("query %q missing %q", q, want)
		}
	}
	for _, absent := range []string{"led_by", "area_id", "ends_before"} {
		if strings.Contains(q, absent) {
			t.Errorf("query %q should not contain %q", q, absent)
		}
	}
}

func TestServeSearch_InvalidDateSkipsBackendSearch(t *testing.T) {
	h, fb := newTestHandler(t)
	testutil.SeedReference(fb, testutil.DefaultReference())

	serve(h.ServeSearch, testutil.NewAuthenticatedRequest("GET", "/workbooks/search?starts_after=06/01/2025", testutil.LeadUser()))

	if n := len(fb.CallsTo(http.MethodGet, "/workbooks/search/")); n != 0 {
		t.Errorf("search called %d times with an invalid date", n)
	}
}

func TestServeSearch_ReferenceFailureSkipsSearch(t *testing.T) {
	h, fb := newTestHandler(t)
	// No reference routes: every collection answers 404.

	serve(h.ServeSearch, testutil.NewAuthenticatedRequest("GET", "/workbooks/search?name=Bio", testutil.LeadUser()))

	if n := len(fb.CallsTo(http.MethodGet, "/workbooks/search/")); n != 0 {
		t.Errorf("search called %d times after a reference failure", n)
	}
}
