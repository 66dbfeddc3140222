// internal/app/features/workbookview/validate.go
package workbookview

import (
	"context"
	"net/http"

	"github.com/dalemusser/workbookhub/internal/app/system/staging"
	"github.com/dalemusser/workbookhub/internal/app/system/timeouts"
	"github.com/dalemusser/workbookhub/internal/app/system/validation"
	"github.com/dalemusser/workbookhub/internal/domain/models"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| POST /workbooks/{id}/validate                                               |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleValidate checks the persisted workbook with the rules applied
// before a draft is published and shows the result.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.workbookID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, err := h.load(ctx, id)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "validate: load workbook", err, viewURL(id))
		return
	}
	acts, err := h.Backend.Activities(ctx, id, 0)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "validate: load activities", err, viewURL(id))
		return
	}

	msgs := validatePersisted(p, acts)
	h.Log.Info("workbook validated", zap.String("workbook_id", id), zap.Int("problems", len(msgs)))

	dlg := &dialog{Title: "Validation", Messages: msgs, OK: len(msgs) == 0}
	if dlg.OK {
		dlg.Intro = "No problems found."
	} else {
		dlg.Intro = "Fix the following before sharing this workbook:"
	}
	h.render(w, r, id, dlg)
}

// validatePersisted runs the thorough workbook rules over backend records.
// Activity staff come from the resolved details, since the activity list
// carries none.
func validatePersisted(p *persisted, acts []models.Activity) []string {
	staff := make(map[string][]string, len(p.Details.Activities))
	for _, a := range p.Details.Activities {
		for _, s := range a.Staff {
			staff[a.ID] = append(staff[a.ID], s.ID)
		}
	}
	for i := range acts {
		if len(acts[i].StaffIDs) == 0 {
			acts[i].StaffIDs = staff[acts[i].ID]
		}
	}

	ids := make([]string, 0, len(p.Contributors))
	for _, u := range p.Contributors {
		ids = append(ids, u.ID)
	}
	d := staging.FromPersisted(p.Details.Workbook, p.Weeks, acts, ids)
	return validation.WorkbookThorough(d.Workbook, d.Weeks)
}
