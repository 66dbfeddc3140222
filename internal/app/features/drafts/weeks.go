// internal/app/features/drafts/weeks.go
package drafts

import (
	"net/http"

	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| POST /drafts/edit/weeks/add                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleAddWeek(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	wk := s.Draft.AddWeek()
	h.save(w, r, s, weekAnchor(wk.Number))
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /drafts/edit/weeks/{week}/delete                                       |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleDeleteWeek removes a week with its activities. Later weeks move up
// one place and every range is re-derived from the start date.
func (h *Handler) HandleDeleteWeek(w http.ResponseWriter, r *http.Request) {
	n, ok := intParam(r, "week")
	if !ok {
		h.ErrLog.LogBadRequest(w, r, "delete week: bad week number", nil, "Invalid week.", "/drafts/edit")
		return
	}
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := s.Draft.DeleteWeek(n); err != nil {
		h.Log.Info("delete week: no such week", zap.Int("week", n), zap.String("draft_id", s.ID))
		http.Redirect(w, r, "/drafts/edit", http.StatusSeeOther)
		return
	}
	h.save(w, r, s, "")
}
