// internal/app/features/workbookview/attributes.go
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
| POST /workbooks/{id}/weeks/{week}/attributes                                |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleGraduateAttributes sets the week's graduate-attribute slots from
// the "slot" form values. Empty slots and repeats are ignored; at most
// models.MaxWeekGraduateAttributes are kept.
func (h *Handler) HandleGraduateAttributes(w http.ResponseWriter, r *http.Request) {
	id, ok := h.workbookID(w, r)
	if !ok {
		return
	}
	week, ok := h.weekParam(w, r, id)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "attributes: parse form", err, "Invalid form data.", viewURL(id))
		return
	}
	want := slotIDs(r.Form["slot"])

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	links, err := h.Backend.WeekGraduateAttributes(ctx, id, week)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "attributes: load", err, viewURL(id))
		return
	}
	have := make([]string, 0, len(links))
	for _, l := range links {
		have = append(have, l.GraduateAttributeID)
	}

	add, remove := diffIDs(have, want)
	for _, gid := range remove {
		link := models.WeekGraduateAttribute{WeekWorkbookID: id, WeekNumber: week, GraduateAttributeID: gid}
		if err := h.Backend.DeleteWeekGraduateAttribute(ctx, link); err != nil {
			h.ErrLog.LogBackendError(w, r, "attributes: unlink", err, viewURL(id))
			return
		}
	}
	for _, gid := range add {
		link := models.WeekGraduateAttribute{WeekWorkbookID: id, WeekNumber: week, GraduateAttributeID: gid}
		if _, err := h.Backend.CreateWeekGraduateAttribute(ctx, link); err != nil {
			h.ErrLog.LogBackendError(w, r, "attributes: link", err, viewURL(id))
			return
		}
	}

	h.Log.Info("week attributes set", zap.String("workbook_id", id), zap.Int("week", week), zap.Strings("attributes", want))
	back(w, r, id, weekAnchor(week))
}

// slotIDs cleans the submitted slot values.
func slotIDs(raw []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, v := range raw {
		v = normalize.FilterID(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
		if len(out) == models.MaxWeekGraduateAttributes {
			break
		}
	}
	return out
}
