package errors_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	uierrors "github.com/dalemusser/workbookhub/internal/app/features/errors"
	"github.com/dalemusser/workbookhub/internal/app/system/backend"
	"go.uber.org/zap"
)

// render calls fn, tolerating a panic from the template engine not being
// booted in unit tests.
func render(fn func()) {
	defer func() { _ = recover() }()
	fn()
}

func TestLogBackendError_Unauthenticated_RedirectsToLogin(t *testing.T) {
	el := uierrors.NewErrorLogger(zap.NewNop())

	req := httptest.NewRequest("GET", "/workbooks/wb-1", nil)
	rec := httptest.NewRecorder()
	el.LogBackendError(rec, req, "load workbook", &backend.APIError{StatusCode: http.StatusForbidden}, "/workbooks")

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?return=%2Fworkbooks%2Fwb-1" {
		t.Errorf("Location = %q", loc)
	}
}

func TestHTMXLogBackendError_Unauthenticated_SetsHXRedirect(t *testing.T) {
	el := uierrors.NewErrorLogger(zap.NewNop())

	req := httptest.NewRequest("POST", "/drafts/edit/weeks", nil)
	req.Header.Set("HX-Request", "true")
	rec := httptest.NewRecorder()
	el.HTMXLogBackendError(rec, req, "add week", &backend.APIError{StatusCode: http.StatusUnauthorized})

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", rec.Code)
	}
	if hx := rec.Header().Get("HX-Redirect"); !strings.HasPrefix(hx, "/login?return=") {
		t.Errorf("HX-Redirect = %q", hx)
	}
}

func TestLogBackendError_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", &backend.APIError{StatusCode: http.StatusNotFound}, http.StatusNotFound},
		{"validation", &backend.APIError{StatusCode: http.StatusUnprocessableEntity, Detail: "bad"}, http.StatusBadRequest},
		{"server", &backend.APIError{StatusCode: http.StatusInternalServerError}, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := uierrors.NewErrorLogger(zap.NewNop())
			req := httptest.NewRequest("GET", "/workbooks/x", nil)
			rec := httptest.NewRecorder()
			render(func() { el.LogBackendError(rec, req, "load", tt.err, "/workbooks") })
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
