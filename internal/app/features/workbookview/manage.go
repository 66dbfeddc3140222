// internal/app/features/workbookview/manage.go
package workbookview

import (
	"context"
	"net/http"

	"github.com/dalemusser/workbookhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| POST /workbooks/{id}/duplicate                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleDuplicate copies the workbook with everything in it and opens the
// copy. The current user becomes the copy's course lead.
func (h *Handler) HandleDuplicate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.workbookID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Publish())
	defer cancel()

	dup, err := h.Backend.DuplicateWorkbook(ctx, id)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "duplicate workbook", err, viewURL(id))
		return
	}
	h.Log.Info("workbook duplicated", zap.String("workbook_id", id), zap.String("copy_id", dup.ID))

	if dup.ID == "" {
		http.Redirect(w, r, "/workbooks", http.StatusSeeOther)
		return
	}
	back(w, r, dup.ID, "")
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /workbooks/{id}/delete                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.workbookID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Backend.DeleteWorkbook(ctx, id); err != nil {
		h.ErrLog.LogBackendError(w, r, "delete workbook", err, viewURL(id))
		return
	}
	h.Log.Info("workbook deleted", zap.String("workbook_id", id))
	http.Redirect(w, r, "/workbooks", http.StatusSeeOther)
}
