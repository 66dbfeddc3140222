// internal/app/features/workbooknew/new.go
package workbooknew

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/workbookhub/internal/app/system/auth"
	"github.com/dalemusser/workbookhub/internal/app/system/formutil"
	"github.com/dalemusser/workbookhub/internal/app/system/inputval"
	"github.com/dalemusser/workbookhub/internal/app/system/normalize"
	"github.com/dalemusser/workbookhub/internal/app/system/refdata"
	"github.com/dalemusser/workbookhub/internal/app/system/staging"
	"github.com/dalemusser/workbookhub/internal/app/system/timeouts"
	"github.com/dalemusser/workbookhub/internal/app/system/validation"
	"github.com/dalemusser/workbookhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// DefaultWeeks is the week count the form starts with.
const DefaultWeeks = 12

// MaxWeeks bounds the week count a new workbook can start with.
const MaxWeeks = 52

// MsgSchoolNotInArea is shown when the chosen school belongs to another area.
const MsgSchoolNotInArea = "School is not in the selected area"

// MsgSchoolCheckFailed is shown when the schools could not be loaded to check
// the choice.
const MsgSchoolCheckFailed = "Could not check the school against the area. Please try again."

type newData struct {
	formutil.Base

	CourseName         string
	StartDate          string
	Weeks              int
	LearningPlatformID string
	AreaID             string
	SchoolID           string
	ContributorIDs     []string

	Users     []models.User
	Platforms []models.LearningPlatform
	Areas     []models.Area
	Schools   []models.School
}

// IsContributor is used by the template to pre-select contributors.
func (d newData) IsContributor(id string) bool {
	for _, c := range d.ContributorIDs {
		if c == id {
			return true
		}
	}
	return false
}

type newInput struct {
	CourseName string `validate:"max=200" label:"Course name"`
	StartDate  string `validate:"omitempty,isodate" label:"Start date"`
	Weeks      int    `validate:"min=1,max=52" label:"Number of weeks"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /workbooks/new                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	data := newData{Weeks: DefaultWeeks}
	h.render(w, r, &data)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /workbooks/new                                                         |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleCreate validates the metadata, stages a fresh draft (replacing any
// draft already staged in this session) and continues to the edit screen.
// Nothing is sent to the backend until the draft is published.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/workbooks/new")
		return
	}

	weeks, _ := strconv.Atoi(strings.TrimSpace(r.FormValue("weeks")))
	data := newData{
		CourseName:         normalize.Name(r.FormValue("course_name")),
		StartDate:          strings.TrimSpace(r.FormValue("start_date")),
		Weeks:              weeks,
		LearningPlatformID: normalize.FilterID(r.FormValue("learning_platform_id")),
		AreaID:             normalize.FilterID(r.FormValue("area_id")),
		SchoolID:           normalize.FilterID(r.FormValue("school_id")),
		ContributorIDs:     normalize.IDs(r.Form["contributor_ids"]),
	}

	in := newInput{CourseName: data.CourseName, StartDate: data.StartDate, Weeks: data.Weeks}
	if res := inputval.Validate(in); res.HasErrors() {
		data.SetErrors(res.Messages())
		h.render(w, r, &data)
		return
	}

	wb := models.Workbook{
		CourseName:         data.CourseName,
		CourseLeadID:       u.ID,
		LearningPlatformID: data.LearningPlatformID,
		AreaID:             data.AreaID,
		SchoolID:           data.SchoolID,
	}
	if data.StartDate != "" {
		wb.StartDate, _ = models.ParseDate(data.StartDate)
	}
	draft := staging.New(wb, data.Weeks)
	for _, id := range data.ContributorIDs {
		draft.AddContributor(id)
	}

	msgs := validation.Workbook(draft.Workbook, draft.Weeks)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if data.SchoolID != "" && data.AreaID != "" {
		set, err := h.Ref.Load(ctx, "", refdata.Schools)
		switch {
		case err != nil:
			h.Log.Warn("create: schools unavailable", zap.Error(err))
			msgs = append(msgs, MsgSchoolCheckFailed)
		case !schoolIn(set.SchoolsInArea(data.AreaID), data.SchoolID):
			msgs = append(msgs, MsgSchoolNotInArea)
		}
	}
	if len(msgs) > 0 {
		data.SetErrors(msgs)
		h.render(w, r, &data)
		return
	}

	if old := h.SessionMgr.DraftID(r); old != "" {
		if err := h.Drafts.Delete(ctx, old); err != nil {
			h.Log.Warn("create: could not drop previous draft", zap.String("draft_id", old), zap.Error(err))
		}
	}

	id, err := h.Drafts.Create(ctx, u.ID, draft)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create: stage draft", err, "Could not start the workbook. Please try again.", "/workbooks/new")
		return
	}
	if err := h.SessionMgr.SetDraftID(w, r, id); err != nil {
		h.ErrLog.LogServerError(w, r, "create: remember draft", err, "Could not start the workbook. Please try again.", "/workbooks/new")
		return
	}

	h.Log.Info("workbook draft staged",
		zap.String("draft_id", id),
		zap.String("user_id", u.ID),
		zap.Int("weeks", draft.WeekCount()))
	http.Redirect(w, r, "/drafts/edit", http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, data *newData) {
	formutil.SetBase(&data.Base, r, "New workbook", "/workbooks")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	set, err := h.Ref.Load(ctx, "", refdata.WorkbookForm...)
	if err != nil {
		h.Log.Warn("create: reference data unavailable", zap.Error(err))
		data.SetErrors(append(data.Errors, "Could not load the form options. Please try again."))
	} else {
		data.Users = set.Users
		data.Platforms = set.LearningPlatforms
		data.Areas = set.Areas
		data.Schools = set.SchoolsInArea(data.AreaID)
	}

	templates.Render(w, r, "workbook_new", data)
}

func schoolIn(schools []models.School, id string) bool {
	for _, s := range schools {
		if s.ID == id {
			return true
		}
	}
	return false
}
