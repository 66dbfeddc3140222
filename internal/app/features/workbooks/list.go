// internal/app/features/workbooks/list.go
package workbooks

import (
	"context"
	"net/http"
	"sort"
	"strings"

	"github.com/dalemusser/workbookhub/internal/app/system/auth"
	"github.com/dalemusser/workbookhub/internal/app/system/formutil"
	"github.com/dalemusser/workbookhub/internal/app/system/normalize"
	"github.com/dalemusser/workbookhub/internal/app/system/timeouts"
	"github.com/dalemusser/workbookhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/text"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /workbooks                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeList renders every workbook the backend returns, sorted by course
// name. ?q= narrows the list by a case- and accent-insensitive substring.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	all, err := h.Backend.Workbooks(ctx)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "list workbooks", err, "/")
		return
	}

	var uid string
	if u, ok := auth.CurrentUser(r); ok {
		uid = u.ID
	}

	q := normalize.QueryParam(r.URL.Query().Get("q"))
	rows := listRows(all, uid, q)

	data := listData{Query: q, Rows: rows, Total: len(all)}
	formutil.SetBase(&data.Base, r, "Workbooks", "/")
	templates.Render(w, r, "workbooks_list", data)
}

func listRows(all []models.WorkbookSummary, uid, q string) []workbookRow {
	fq := text.Fold(q)
	rows := make([]workbookRow, 0, len(all))
	for _, wb := range all {
		if fq != "" && !strings.Contains(text.Fold(wb.CourseName), fq) {
			continue
		}
		rows = append(rows, workbookRow{
			ID:               wb.ID,
			CourseName:       wb.CourseName,
			StartDate:        wb.StartDate.Display(),
			EndDate:          wb.EndDate.Display(),
			CourseLead:       wb.CourseLead,
			LearningPlatform: wb.LearningPlatform,
			Weeks:            wb.NumberOfWeeks,
			Mine:             uid != "" && wb.CourseLeadID == uid,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return text.Fold(rows[i].CourseName) < text.Fold(rows[j].CourseName)
	})
	return rows
}
