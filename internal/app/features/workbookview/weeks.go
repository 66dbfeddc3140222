// internal/app/features/workbookview/weeks.go
package workbookview

import (
	"context"
	"net/http"
	"slices"

	"github.com/dalemusser/workbookhub/internal/app/system/staging"
	"github.com/dalemusser/workbookhub/internal/app/system/timeouts"
	"github.com/dalemusser/workbookhub/internal/domain/models"
	"go.uber.org/zap"
)

func sortWeeks(ws []models.Week) {
	slices.SortFunc(ws, func(a, b models.Week) int { return a.Number - b.Number })
}

// endAfter returns the end date of a workbook starting at start with n
// weeks.
func endAfter(start models.Date, n int) models.Date {
	return start.AddDays(staging.DaysPerWeek*n - 1)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /workbooks/{id}/weeks/add                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleAddWeek appends a week after the last one and moves the workbook
// end date to the new week's last day.
func (h *Handler) HandleAddWeek(w http.ResponseWriter, r *http.Request) {
	id, ok := h.workbookID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	details, err := h.Backend.WorkbookDetails(ctx, id)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "add week: load workbook", err, viewURL(id))
		return
	}
	weeks, err := h.Backend.Weeks(ctx, id)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "add week: load weeks", err, viewURL(id))
		return
	}

	start := details.Workbook.StartDate
	n := len(weeks) + 1
	next := staging.DeriveWeekDates(start, n)[n-1]

	created, err := h.Backend.CreateWeek(ctx, id, models.Week{StartDate: next.StartDate, EndDate: next.EndDate})
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "add week: create", err, viewURL(id))
		return
	}

	end := next.EndDate
	if _, err := h.Backend.UpdateWorkbook(ctx, id, models.WorkbookUpdate{EndDate: &end}); err != nil {
		h.ErrLog.LogBackendError(w, r, "add week: update end date", err, viewURL(id))
		return
	}

	if created.Number > 0 {
		n = created.Number
	}
	h.Log.Info("week added", zap.String("workbook_id", id), zap.Int("week", n))
	back(w, r, id, weekAnchor(n))
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /workbooks/{id}/weeks/{week}/delete                                    |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleDeleteWeek removes a week with its activities. The backend
// renumbers later weeks; the workbook end date is pulled in by a week.
func (h *Handler) HandleDeleteWeek(w http.ResponseWriter, r *http.Request) {
	id, ok := h.workbookID(w, r)
	if !ok {
		return
	}
	week, ok := h.weekParam(w, r, id)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	details, err := h.Backend.WorkbookDetails(ctx, id)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "delete week: load workbook", err, viewURL(id))
		return
	}
	weeks, err := h.Backend.Weeks(ctx, id)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "delete week: load weeks", err, viewURL(id))
		return
	}
	if !slices.ContainsFunc(weeks, func(wk models.Week) bool { return wk.Number == week }) {
		back(w, r, id, "weeks")
		return
	}

	if err := h.Backend.DeleteWeek(ctx, id, week); err != nil {
		h.ErrLog.LogBackendError(w, r, "delete week", err, viewURL(id))
		return
	}

	if remaining := len(weeks) - 1; remaining > 0 {
		end := endAfter(details.Workbook.StartDate, remaining)
		if _, err := h.Backend.UpdateWorkbook(ctx, id, models.WorkbookUpdate{EndDate: &end}); err != nil {
			h.ErrLog.LogBackendError(w, r, "delete week: update end date", err, viewURL(id))
			return
		}
	}

	h.Log.Info("week deleted", zap.String("workbook_id", id), zap.Int("week", week))
	back(w, r, id, "weeks")
}
