// internal/app/features/drafts/publish.go
package drafts

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/dalemusser/workbookhub/internal/app/system/backend"
	"github.com/dalemusser/workbookhub/internal/app/system/errmsg"
	"github.com/dalemusser/workbookhub/internal/app/system/publish"
	"github.com/dalemusser/workbookhub/internal/app/system/timeouts"
	"github.com/dalemusser/workbookhub/internal/app/system/validation"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| POST /drafts/edit/validate                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleValidate runs every workbook rule and shows the outcome in a dialog.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	if msgs := validation.WorkbookThorough(s.Draft.Workbook, s.Draft.Weeks); len(msgs) > 0 {
		h.renderEdit(w, r, s, invalidDialog(msgs))
		return
	}
	h.renderEdit(w, r, s, &dialog{Title: "Workbook is valid", Intro: "Everything is ready to publish.", OK: true})
}

func invalidDialog(msgs []string) *dialog {
	return &dialog{
		Title:    "Workbook is not ready",
		Intro:    "Fix the following before publishing:",
		Messages: msgs,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /drafts/edit/publish                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

// HandlePublish validates the draft and, only if it is valid, writes it to
// the backend step by step. On success the draft is dropped and the browser
// goes to the new workbook. A failed publish keeps the draft so the user
// can fix it and try again.
func (h *Handler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}

	if msgs := validation.WorkbookThorough(s.Draft.Workbook, s.Draft.Weeks); len(msgs) > 0 {
		h.renderEdit(w, r, s, invalidDialog(msgs))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Publish())
	defer cancel()

	res, err := h.Publisher.Publish(ctx, s.Draft)
	if err != nil {
		h.publishFailed(w, r, s, err)
		return
	}

	if err := h.Drafts.Delete(ctx, s.ID); err != nil {
		h.Log.Warn("publish: could not delete draft", zap.String("draft_id", s.ID), zap.Error(err))
	}
	if err := h.SessionMgr.SetDraftID(w, r, ""); err != nil {
		h.Log.Warn("publish: could not clear draft id", zap.Error(err))
	}

	h.Log.Info("draft published",
		zap.String("draft_id", s.ID),
		zap.String("workbook_id", res.WorkbookID),
		zap.String("user_id", s.UserID))
	http.Redirect(w, r, "/workbooks/"+url.PathEscape(res.WorkbookID), http.StatusSeeOther)
}

func (h *Handler) publishFailed(w http.ResponseWriter, r *http.Request, s *staged, err error) {
	var pe *publish.Error
	if !errors.As(err, &pe) {
		h.Log.Error("publish: unexpected failure", zap.String("draft_id", s.ID), zap.Error(err))
		h.renderEdit(w, r, s, &dialog{Title: "Publish failed", Messages: []string{errmsg.Message(err)}})
		return
	}

	// Nothing was written yet: a rejected session goes back to sign in and
	// the draft survives for the next attempt.
	if pe.WorkbookID == "" && backend.IsUnauthenticated(pe.Err) {
		http.Redirect(w, r, "/login?return="+url.QueryEscape("/drafts/edit"), http.StatusSeeOther)
		return
	}

	dlg := &dialog{Title: "Publish failed", Messages: []string{pe.Message()}}
	if pe.WorkbookID != "" {
		dlg.Intro = "Part of the workbook was saved before the error. Publishing again creates a new copy."
		dlg.PartialID = pe.WorkbookID
	}
	h.renderEdit(w, r, s, dlg)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /drafts/edit/discard                                                   |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleDiscard(w http.ResponseWriter, r *http.Request) {
	id := h.SessionMgr.DraftID(r)
	if id != "" {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		err := h.Drafts.Delete(ctx, id)
		cancel()
		if err != nil {
			h.ErrLog.LogServerError(w, r, "discard draft", err, "Could not discard the workbook in progress.", "/drafts/edit")
			return
		}
	}
	if err := h.SessionMgr.SetDraftID(w, r, ""); err != nil {
		h.Log.Warn("discard: could not clear draft id", zap.Error(err))
	}
	http.Redirect(w, r, "/workbooks", http.StatusSeeOther)
}
