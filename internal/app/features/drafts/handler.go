// internal/app/features/drafts/handler.go
package drafts

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	uierrors "github.com/dalemusser/workbookhub/internal/app/features/errors"
	draftstore "github.com/dalemusser/workbookhub/internal/app/store/drafts"
	"github.com/dalemusser/workbookhub/internal/app/system/auth"
	"github.com/dalemusser/workbookhub/internal/app/system/publish"
	"github.com/dalemusser/workbookhub/internal/app/system/refdata"
	"github.com/dalemusser/workbookhub/internal/app/system/staging"
	"github.com/dalemusser/workbookhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DraftStore is the part of the draft store the edit screen needs.
// *drafts.Store satisfies it.
type DraftStore interface {
	Get(ctx context.Context, id, userID string) (*staging.Draft, error)
	Save(ctx context.Context, id, userID string, d *staging.Draft) error
	Delete(ctx context.Context, id string) error
}

// Publisher writes a draft to the backend. *publish.Sequencer satisfies it.
type Publisher interface {
	Publish(ctx context.Context, d *staging.Draft) (publish.Result, error)
}

// Handler serves the edit-then-publish screen of a staged workbook.
type Handler struct {
	Drafts     DraftStore
	Ref        *refdata.Loader
	Publisher  Publisher
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Log        *zap.Logger
}

func NewHandler(drafts DraftStore, ref *refdata.Loader, pub Publisher, sessionMgr *auth.SessionManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Drafts:     drafts,
		Ref:        ref,
		Publisher:  pub,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Log:        logger,
	}
}

// staged is the draft being edited by the current request.
type staged struct {
	ID     string
	UserID string
	Draft  *staging.Draft
}

// load fetches the session's draft. When there is none (never staged,
// expired or already published) it redirects to the create screen and
// reports false.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*staged, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return nil, false
	}

	id := h.SessionMgr.DraftID(r)
	if id == "" {
		http.Redirect(w, r, "/workbooks/new", http.StatusSeeOther)
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Drafts.Get(ctx, id, u.ID)
	if errors.Is(err, draftstore.ErrNotFound) {
		h.Log.Info("draft missing or expired", zap.String("draft_id", id), zap.String("user_id", u.ID))
		http.Redirect(w, r, "/workbooks/new", http.StatusSeeOther)
		return nil, false
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load draft", err, "Could not load the workbook in progress.", "/workbooks")
		return nil, false
	}
	return &staged{ID: id, UserID: u.ID, Draft: d}, true
}

// save stores s and redirects back to the edit screen.
func (h *Handler) save(w http.ResponseWriter, r *http.Request, s *staged, anchor string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Drafts.Save(ctx, s.ID, s.UserID, s.Draft); err != nil {
		h.ErrLog.LogServerError(w, r, "save draft", err, "Could not save your change.", "/drafts/edit")
		return
	}
	dest := "/drafts/edit"
	if anchor != "" {
		dest += "#" + anchor
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// intParam reads a positive chi URL parameter.
func intParam(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func weekAnchor(n int) string { return "week-" + strconv.Itoa(n) }
