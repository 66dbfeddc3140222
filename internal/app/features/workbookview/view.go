// internal/app/features/workbookview/view.go
package workbookview

import (
	"context"
	"net/http"

	"github.com/dalemusser/workbookhub/internal/app/system/auth"
	"github.com/dalemusser/workbookhub/internal/app/system/formutil"
	"github.com/dalemusser/workbookhub/internal/app/system/refdata"
	"github.com/dalemusser/workbookhub/internal/app/system/staging"
	"github.com/dalemusser/workbookhub/internal/app/system/timeouts"
	"github.com/dalemusser/workbookhub/internal/app/system/workload"
	"github.com/dalemusser/workbookhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// viewCollections is everything the workbook page resolves or offers.
var viewCollections = []refdata.Collection{
	refdata.Users, refdata.LearningPlatforms, refdata.Areas,
	refdata.Schools, refdata.GraduateAttributes,
}

// persisted is one workbook as the backend holds it.
type persisted struct {
	Details      models.WorkbookDetails
	Weeks        []models.Week
	Links        []models.WeekGraduateAttribute
	Contributors []models.User
}

// load fetches the workbook and its related records concurrently. Any
// failure fails the whole load.
func (h *Handler) load(ctx context.Context, id string) (*persisted, error) {
	var p persisted
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := h.Backend.WorkbookDetails(gctx, id)
		p.Details = d
		return err
	})
	g.Go(func() error {
		ws, err := h.Backend.Weeks(gctx, id)
		p.Weeks = ws
		return err
	})
	g.Go(func() error {
		ls, err := h.Backend.WeekGraduateAttributes(gctx, id, 0)
		p.Links = ls
		return err
	})
	g.Go(func() error {
		cs, err := h.Backend.WorkbookContributors(gctx, id)
		p.Contributors = cs
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sortWeeks(p.Weeks)
	return &p, nil
}

type weekView struct {
	Number     int
	StartDate  string
	EndDate    string
	Rows       []workload.Row
	TotalTime  string
	Attributes []string
	// Slots holds the ids of the week's graduate attributes, padded to
	// models.MaxWeekGraduateAttributes entries.
	Slots []string
}

type dashboardRow struct {
	Week  int
	Cells []string
	Total string
}

// dialog is the message box shown after validate or a rejected edit.
type dialog struct {
	Title     string
	Intro     string
	Messages  []string
	OK        bool
	PartialID string
}

type viewData struct {
	formutil.Base

	ID           string
	CourseName   string
	CourseLead   string
	IsLead       bool
	StartDate    string
	EndDate      string
	PlatformID   string
	PlatformName string
	AreaID       string
	AreaName     string
	SchoolID     string
	SchoolName   string

	Weeks     []weekView
	TotalTime string

	ChartJSON     string
	LearningTypes []workload.LearningType
	DashboardRows []dashboardRow
	Attributes    []workload.AttributeUsage

	Contributors []models.User
	Candidates   []models.User

	Platforms          []models.LearningPlatform
	Areas              []models.Area
	Schools            []models.School
	GraduateAttributes []models.GraduateAttribute

	// FormsEnabled is false when reference data failed to load; the edit
	// forms on the page depend on it.
	FormsEnabled bool

	Dialog *dialog
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /workbooks/{id}                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, ok := h.workbookID(w, r)
	if !ok {
		return
	}
	h.render(w, r, id, nil)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, id string, dlg *dialog) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	data, leadID, err := h.viewModel(ctx, id)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "load workbook", err, "/workbooks")
		return
	}

	if u, ok := auth.CurrentUser(r); ok {
		data.IsLead = u.ID == leadID
	}
	formutil.SetBase(&data.Base, r, data.CourseName, "/workbooks")
	if !data.FormsEnabled {
		data.SetError("Could not load reference data, so the edit forms are unavailable. Reload to try again.")
	}
	data.Dialog = dlg

	templates.Render(w, r, "workbook_view", data)
}

// viewModel loads workbook id and shapes it for display, returning the
// course lead's id alongside. A reference-data failure is logged and leaves
// FormsEnabled false; only a workbook load failure is returned.
func (h *Handler) viewModel(ctx context.Context, id string) (viewData, string, error) {
	p, err := h.load(ctx, id)
	if err != nil {
		return viewData{}, "", err
	}

	set, err := h.Ref.Load(ctx, "", viewCollections...)
	if err != nil {
		h.Log.Warn("workbook view: reference data unavailable", zap.String("workbook_id", id), zap.Error(err))
		set = nil
	}
	return buildViewData(p, set), p.Details.Workbook.CourseLeadID, nil
}

// buildViewData shapes p for display. set may be nil after a failed
// reference load.
func buildViewData(p *persisted, set *refdata.Set) viewData {
	wb := p.Details.Workbook
	data := viewData{
		ID:           wb.ID,
		CourseName:   wb.CourseName,
		CourseLead:   p.Details.CourseLeadName(),
		StartDate:    wb.StartDate.Display(),
		EndDate:      wb.EndDate.Display(),
		PlatformID:   wb.LearningPlatformID,
		PlatformName: p.Details.LearningPlatformName(),
		AreaID:       wb.AreaID,
		AreaName:     set.AreaName(wb.AreaID),
		SchoolID:     wb.SchoolID,
		SchoolName:   set.SchoolName(wb.SchoolID),
		Contributors: p.Contributors,
	}
	if data.ID == "" && len(p.Weeks) > 0 {
		data.ID = p.Weeks[0].WorkbookID
	}

	rows := workload.RowsFromDetails(p.Details.Activities)
	byWeek := workload.RowsByWeek(rows)
	linksByWeek := make(map[int][]models.WeekGraduateAttribute)
	for _, l := range p.Links {
		linksByWeek[l.WeekNumber] = append(linksByWeek[l.WeekNumber], l)
	}

	// Week records carry no dates; ranges follow from the start date.
	ranges := staging.DeriveWeekDates(wb.StartDate, len(p.Weeks))
	for i, wk := range p.Weeks {
		wr := byWeek[wk.Number]
		wv := weekView{
			Number:    wk.Number,
			StartDate: ranges[i].StartDate.Display(),
			EndDate:   ranges[i].EndDate.Display(),
			Rows:      wr,
			TotalTime: workload.FormatMinutes(workload.CalculateTotalMinutes(wr)),
			Slots:     make([]string, models.MaxWeekGraduateAttributes),
		}
		for i, l := range linksByWeek[wk.Number] {
			if i < len(wv.Slots) {
				wv.Slots[i] = l.GraduateAttributeID
			}
			wv.Attributes = append(wv.Attributes, set.Name(refdata.GraduateAttributes, l.GraduateAttributeID))
		}
		data.Weeks = append(data.Weeks, wv)
	}

	dash := workload.PrepareDashboardData(rows, workload.LearningTypeCatalog)
	data.TotalTime = workload.FormatMinutes(dash.TotalMinutes)
	data.LearningTypes = dash.AllLearningTypes
	data.DashboardRows = dashboardRows(dash)
	if len(rows) > 0 {
		if b, err := workload.ChartConfig(dash); err == nil {
			data.ChartJSON = string(b)
		}
	}

	if set != nil {
		data.FormsEnabled = true
		data.Platforms = set.LearningPlatforms
		data.Areas = set.Areas
		data.Schools = set.SchoolsInArea(wb.AreaID)
		data.GraduateAttributes = set.GraduateAttributes
		data.Attributes = workload.GraduateAttributeUsage(p.Links, set.GraduateAttributes)
		data.Candidates = candidates(set.Users, wb.CourseLeadID, p.Contributors)
	}
	return data
}

func dashboardRows(d workload.Dashboard) []dashboardRow {
	out := make([]dashboardRow, 0, len(d.Weeks))
	for _, wk := range d.Weeks {
		row := dashboardRow{Week: wk.Week, Total: workload.FormatMinutes(wk.Total)}
		for _, lt := range d.AllLearningTypes {
			row.Cells = append(row.Cells, workload.FormatMinutes(wk.MinutesFor(lt.Key)))
		}
		out = append(out, row)
	}
	return out
}

// candidates lists the users who can still be added as contributors.
func candidates(users []models.User, leadID string, current []models.User) []models.User {
	taken := map[string]bool{leadID: true}
	for _, u := range current {
		taken[u.ID] = true
	}
	var out []models.User
	for _, u := range users {
		if !taken[u.ID] {
			out = append(out, u)
		}
	}
	return out
}
