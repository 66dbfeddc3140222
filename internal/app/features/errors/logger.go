// internal/app/features/errors/logger.go
package errors

import (
	"net/http"
	"net/url"

	"github.com/dalemusser/workbookhub/internal/app/system/backend"
	"github.com/dalemusser/workbookhub/internal/app/system/errmsg"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ErrorLogger logs a handler failure and answers the browser with a
// friendly page (or, for HTMX requests, an inline snippet).
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorLogger{Log: logger}
}

func (e *ErrorLogger) fields(r *http.Request, err error) []zap.Field {
	f := []zap.Field{
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	}
	if err != nil {
		f = append(f, zap.Error(err))
	}
	if code := backend.StatusCode(err); code != 0 {
		f = append(f, zap.Int("backend_status", code))
	}
	return f
}

// LogServerError logs at error level and renders a 500 page with userMsg.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Error(msg, e.fields(r, err)...)
	RenderPage(w, r, http.StatusInternalServerError, "Something went wrong", userMsg, backURL)
}

// LogBadRequest logs at warn level and renders a 400 page with userMsg.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg, backURL string) {
	e.Log.Warn(msg, e.fields(r, err)...)
	RenderPage(w, r, http.StatusBadRequest, "Bad request", userMsg, backURL)
}

// LogForbidden logs at warn level and renders the access denied page.
func (e *ErrorLogger) LogForbidden(w http.ResponseWriter, r *http.Request, msg string, err error, backURL string) {
	e.Log.Warn(msg, e.fields(r, err)...)
	RenderPage(w, r, http.StatusForbidden, "Access denied", "You don't have permission to do that.", backURL)
}

// LogBackendError maps a failed backend call onto the error taxonomy:
//   - session rejected: back to the login page
//   - not found: 404 page
//   - validation (422): 400 page with the backend detail
//   - anything else: 502 page with errmsg.Message
func (e *ErrorLogger) LogBackendError(w http.ResponseWriter, r *http.Request, msg string, err error, backURL string) {
	switch {
	case backend.IsUnauthenticated(err):
		e.Log.Info(msg+": backend session rejected", e.fields(r, err)...)
		redirectToLogin(w, r)
	case backend.IsNotFound(err):
		e.Log.Info(msg, e.fields(r, err)...)
		RenderPage(w, r, http.StatusNotFound, "Not found", "That item no longer exists.", backURL)
	case backend.StatusCode(err) == http.StatusUnprocessableEntity:
		e.Log.Warn(msg, e.fields(r, err)...)
		RenderPage(w, r, http.StatusBadRequest, "Could not save", errmsg.Message(err), backURL)
	default:
		e.Log.Error(msg, e.fields(r, err)...)
		RenderPage(w, r, http.StatusBadGateway, "Workbook service error", errmsg.Message(err), backURL)
	}
}

// HTMXLogServerError is LogServerError for HTMX partial requests.
func (e *ErrorLogger) HTMXLogServerError(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.Log.Error(msg, e.fields(r, err)...)
	renderInline(w, http.StatusInternalServerError, userMsg)
}

// HTMXLogBadRequest is LogBadRequest for HTMX partial requests.
func (e *ErrorLogger) HTMXLogBadRequest(w http.ResponseWriter, r *http.Request, msg string, err error, userMsg string) {
	e.Log.Warn(msg, e.fields(r, err)...)
	renderInline(w, http.StatusBadRequest, userMsg)
}

// HTMXLogBackendError is LogBackendError for HTMX partial requests.
func (e *ErrorLogger) HTMXLogBackendError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if backend.IsUnauthenticated(err) {
		e.Log.Info(msg+": backend session rejected", e.fields(r, err)...)
		redirectToLogin(w, r)
		return
	}
	e.Log.Error(msg, e.fields(r, err)...)
	renderInline(w, http.StatusBadGateway, errmsg.Message(err))
}

type inlineData struct {
	Message string
}

func renderInline(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	templates.RenderSnippet(w, "error_inline", inlineData{Message: msg})
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	dest := "/login?return=" + url.QueryEscape(r.URL.RequestURI())
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", dest)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
