// internal/app/features/workbookview/handler.go
package workbookview

import (
	"net/http"
	"strconv"

	uierrors "github.com/dalemusser/workbookhub/internal/app/features/errors"
	"github.com/dalemusser/workbookhub/internal/app/system/backend"
	"github.com/dalemusser/workbookhub/internal/app/system/refdata"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves a persisted workbook: details, dashboard, export and the
// edits that go straight to the backend.
type Handler struct {
	Backend *backend.Client
	Ref     *refdata.Loader
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(client *backend.Client, ref *refdata.Loader, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Backend: client,
		Ref:     ref,
		ErrLog:  errLog,
		Log:     logger,
	}
}

// workbookID returns the {id} URL parameter, rejecting an empty one.
func (h *Handler) workbookID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if id == "" {
		h.ErrLog.LogBadRequest(w, r, "workbook: missing id", nil, "Invalid workbook.", "/workbooks")
		return "", false
	}
	return id, true
}

// weekParam reads the {week} URL parameter.
func (h *Handler) weekParam(w http.ResponseWriter, r *http.Request, id string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil || n < 1 {
		h.ErrLog.LogBadRequest(w, r, "workbook: bad week number", err, "Invalid week.", viewURL(id))
		return 0, false
	}
	return n, true
}

func viewURL(id string) string { return "/workbooks/" + id }

func weekAnchor(n int) string { return "week-" + strconv.Itoa(n) }

// back redirects to the workbook page, optionally at an anchor.
func back(w http.ResponseWriter, r *http.Request, id, anchor string) {
	dest := viewURL(id)
	if anchor != "" {
		dest += "#" + anchor
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
