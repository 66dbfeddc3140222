// internal/app/features/logout/handler.go
package logout

import (
	"context"
	"net/http"

	"github.com/dalemusser/workbookhub/internal/app/system/auth"
	"github.com/dalemusser/workbookhub/internal/app/system/backend"
	"github.com/dalemusser/workbookhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	Backend    *backend.Client
	SessionMgr *auth.SessionManager
}

func NewHandler(client *backend.Client, sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		Backend:    client,
		SessionMgr: sessionMgr,
	}
}

// HandleLogout handles POST /logout. The backend session is ended first; a
// failure there is logged and the local session is cleared regardless.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok && u.BackendCookie != "" && h.Backend != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		err := h.Backend.DeleteSession(backend.WithCredentials(ctx, u.BackendCookie))
		cancel()
		if err != nil {
			h.Log.Warn("logout: backend session delete failed", zap.String("user_id", u.ID), zap.Error(err))
		}
	}

	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("logout: save session", zap.Error(err))
	}

	// HTMX: force a full navigation.
	if r.Header.Get("HX-Request") != "" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusOK)
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
