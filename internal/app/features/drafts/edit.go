// internal/app/features/drafts/edit.go
package drafts

import (
	"context"
	"net/http"

	"github.com/dalemusser/workbookhub/internal/app/features/shared"
	"github.com/dalemusser/workbookhub/internal/app/system/formutil"
	"github.com/dalemusser/workbookhub/internal/app/system/refdata"
	"github.com/dalemusser/workbookhub/internal/app/system/staging"
	"github.com/dalemusser/workbookhub/internal/app/system/timeouts"
	"github.com/dalemusser/workbookhub/internal/app/system/workload"
	"github.com/dalemusser/workbookhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// editCollections is everything the edit screen resolves or offers.
var editCollections = []refdata.Collection{
	refdata.Users, refdata.LearningPlatforms, refdata.LearningActivities,
	refdata.LearningTypes, refdata.TaskStatuses, refdata.Locations,
	refdata.Areas, refdata.Schools,
}

type activityView struct {
	Index int
	workload.Row
}

type weekView struct {
	Number     int
	StartDate  string
	EndDate    string
	Activities []activityView
	TotalTime  string
}

// dialog is the blocking message box shown after validate or publish.
type dialog struct {
	Title    string
	Intro    string
	Messages []string
	OK       bool

	// PartialID is the workbook a failed publish left behind.
	PartialID string
}

type editData struct {
	formutil.Base

	CourseName   string
	StartDate    string // YYYY-MM-DD for the date input
	EndDate      string
	PlatformID   string
	PlatformName string
	AreaID       string
	AreaName     string
	SchoolID     string
	SchoolName   string

	Weeks     []weekView
	TotalTime string
	ChartJSON string

	Contributors []models.User
	Candidates   []models.User
	Platforms    []models.LearningPlatform
	Areas        []models.Area
	Schools      []models.School

	Dialog *dialog
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /drafts/edit                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	h.renderEdit(w, r, s, nil)
}

func (h *Handler) renderEdit(w http.ResponseWriter, r *http.Request, s *staged, dlg *dialog) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	d := s.Draft
	set, err := h.Ref.Load(ctx, d.Workbook.LearningPlatformID, editCollections...)
	if err != nil {
		h.Log.Warn("edit: reference data unavailable", zap.String("draft_id", s.ID), zap.Error(err))
	}

	data := buildEditData(d, set)
	formutil.SetBase(&data.Base, r, "Edit workbook", "/workbooks")
	if err != nil {
		data.SetError("Could not load reference data. Names and options may be missing; reload to try again.")
	}
	data.Dialog = dlg

	templates.Render(w, r, "draft_edit", data)
}

// buildEditData resolves the draft for display. set may be nil after a
// failed reference load; ids then resolve to empty names.
func buildEditData(d *staging.Draft, set *refdata.Set) editData {
	wb := d.Workbook
	data := editData{
		CourseName:   wb.CourseName,
		StartDate:    wb.StartDate.String(),
		EndDate:      wb.EndDate.Display(),
		PlatformID:   wb.LearningPlatformID,
		PlatformName: set.PlatformName(wb.LearningPlatformID),
		AreaID:       wb.AreaID,
		AreaName:     set.AreaName(wb.AreaID),
		SchoolID:     wb.SchoolID,
		SchoolName:   set.SchoolName(wb.SchoolID),
	}

	var rows []workload.Row
	total := 0
	for _, wk := range d.Weeks {
		wv := weekView{
			Number:    wk.Number,
			StartDate: wk.StartDate.Display(),
			EndDate:   wk.EndDate.Display(),
		}
		weekTotal := 0
		for i, a := range wk.Activities {
			a.WeekNumber = wk.Number
			row := shared.ActivityRow(set, a)
			wv.Activities = append(wv.Activities, activityView{Index: i, Row: row})
			rows = append(rows, row)
			weekTotal += a.TimeEstimateMinutes
		}
		wv.TotalTime = workload.FormatMinutes(weekTotal)
		total += weekTotal
		data.Weeks = append(data.Weeks, wv)
	}
	data.TotalTime = workload.FormatMinutes(total)

	if len(rows) > 0 {
		if b, err := workload.ChartConfig(workload.PrepareDashboardData(rows, workload.LearningTypeCatalog)); err == nil {
			data.ChartJSON = string(b)
		}
	}

	for _, id := range d.ContributorIDs {
		data.Contributors = append(data.Contributors, models.User{ID: id, Name: set.UserName(id)})
	}

	if set != nil {
		data.Platforms = set.LearningPlatforms
		data.Areas = set.Areas
		data.Schools = set.SchoolsInArea(wb.AreaID)
		taken := map[string]bool{wb.CourseLeadID: true}
		for _, id := range d.ContributorIDs {
			taken[id] = true
		}
		for _, u := range set.Users {
			if !taken[u.ID] {
				data.Candidates = append(data.Candidates, u)
			}
		}
	}
	return data
}
