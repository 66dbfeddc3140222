// internal/app/features/workbookview/contributors.go
package workbookview

import (
	"context"
	"net/http"

	"github.com/dalemusser/workbookhub/internal/app/system/normalize"
	"github.com/dalemusser/workbookhub/internal/app/system/timeouts"
	"github.com/dalemusser/workbookhub/internal/domain/models"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| POST /workbooks/{id}/contributors/{add,remove}                              |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleAddContributor links a user to the workbook. The course lead is
// never added as a contributor.
func (h *Handler) HandleAddContributor(w http.ResponseWriter, r *http.Request) {
	id, ok := h.workbookID(w, r)
	if !ok {
		return
	}
	uid := normalize.FilterID(r.FormValue("user_id"))
	if uid == "" {
		back(w, r, id, "contributors")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	details, err := h.Backend.WorkbookDetails(ctx, id)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "add contributor: load workbook", err, viewURL(id))
		return
	}
	if uid == details.Workbook.CourseLeadID {
		back(w, r, id, "contributors")
		return
	}

	link := models.WorkbookContributor{WorkbookID: id, ContributorID: uid}
	if _, err := h.Backend.CreateWorkbookContributor(ctx, link); err != nil {
		h.ErrLog.LogBackendError(w, r, "add contributor", err, viewURL(id))
		return
	}
	h.Log.Info("contributor added", zap.String("workbook_id", id), zap.String("user_id", uid))
	back(w, r, id, "contributors")
}

func (h *Handler) HandleRemoveContributor(w http.ResponseWriter, r *http.Request) {
	id, ok := h.workbookID(w, r)
	if !ok {
		return
	}
	uid := normalize.FilterID(r.FormValue("user_id"))
	if uid == "" {
		back(w, r, id, "contributors")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	link := models.WorkbookContributor{WorkbookID: id, ContributorID: uid}
	if err := h.Backend.DeleteWorkbookContributor(ctx, link); err != nil {
		h.ErrLog.LogBackendError(w, r, "remove contributor", err, viewURL(id))
		return
	}
	h.Log.Info("contributor removed", zap.String("workbook_id", id), zap.String("user_id", uid))
	back(w, r, id, "contributors")
}
