// internal/app/features/workbooks/search.go
package workbooks

import (
	"context"
	"net/http"

	"github.com/dalemusser/workbookhub/internal/app/system/formutil"
	"github.com/dalemusser/workbookhub/internal/app/system/inputval"
	"github.com/dalemusser/workbookhub/internal/app/system/normalize"
	"github.com/dalemusser/workbookhub/internal/app/system/refdata"
	"github.com/dalemusser/workbookhub/internal/app/system/timeouts"
	"github.com/dalemusser/workbookhub/internal/app/system/workload"
	"github.com/dalemusser/workbookhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| GET /workbooks/search                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

// ServeSearch renders the filter form and, when any filter is set, the
// matching workbooks. Only non-empty filters reach the backend.
func (h *Handler) ServeSearch(w http.ResponseWriter, r *http.Request) {
	qv := r.URL.Query()
	data := searchData{
		Name:             normalize.QueryParam(qv.Get("name")),
		StartsAfter:      normalize.QueryParam(qv.Get("starts_after")),
		EndsBefore:       normalize.QueryParam(qv.Get("ends_before")),
		LedBy:            normalize.FilterID(qv.Get("led_by")),
		ContributedBy:    normalize.FilterID(qv.Get("contributed_by")),
		LearningPlatform: normalize.FilterID(qv.Get("learning_platform")),
		AreaID:           normalize.FilterID(qv.Get("area_id")),
		SchoolID:         normalize.FilterID(qv.Get("school_id")),
	}
	formutil.SetBase(&data.Base, r, "Search workbooks", "/workbooks")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	set, err := h.Ref.Load(ctx, "", refdata.WorkbookForm...)
	if err != nil {
		h.Log.Warn("search: reference data unavailable", zap.Error(err))
		data.SetError("Could not load the search filters. Please try again.")
		templates.Render(w, r, "workbooks_search", data)
		return
	}
	data.Users = set.Users
	data.Platforms = set.LearningPlatforms
	data.Areas = set.Areas
	data.Schools = set.SchoolsInArea(data.AreaID)

	in := searchInput{Name: data.Name, StartsAfter: data.StartsAfter, EndsBefore: data.EndsBefore}
	if res := inputval.Validate(in); res.HasErrors() {
		data.SetErrors(res.Messages())
		templates.Render(w, r, "workbooks_search", data)
		return
	}

	filter := models.WorkbookSearch{
		Name:             data.Name,
		LedBy:            data.LedBy,
		ContributedBy:    data.ContributedBy,
		LearningPlatform: data.LearningPlatform,
		AreaID:           data.AreaID,
		SchoolID:         data.SchoolID,
	}
	// Shapes were validated above.
	if data.StartsAfter != "" {
		filter.StartsAfter, _ = models.ParseDate(data.StartsAfter)
	}
	if data.EndsBefore != "" {
		filter.EndsBefore, _ = models.ParseDate(data.EndsBefore)
	}

	if filter.IsEmpty() {
		templates.Render(w, r, "workbooks_search", data)
		return
	}

	found, err := h.Backend.SearchWorkbooks(ctx, filter)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "search workbooks", err, "/workbooks")
		return
	}

	data.Searched = true
	data.Rows = searchRows(found)
	templates.Render(w, r, "workbooks_search", data)
}

func searchRows(found []models.WorkbookDetails) []workbookRow {
	rows := make([]workbookRow, 0, len(found))
	for _, d := range found {
		total := workload.CalculateTotalMinutes(workload.RowsFromDetails(d.Activities))
		rows = append(rows, workbookRow{
			ID:               d.Workbook.ID,
			CourseName:       d.Workbook.CourseName,
			StartDate:        d.Workbook.StartDate.Display(),
			EndDate:          d.Workbook.EndDate.Display(),
			CourseLead:       d.CourseLeadName(),
			LearningPlatform: d.LearningPlatformName(),
			Weeks:            d.Workbook.NumberOfWeeks,
			Workload:         workload.FormatMinutes(total),
		})
	}
	return rows
}
