// internal/app/features/drafts/activities.go
package drafts

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dalemusser/workbookhub/internal/app/features/shared"
	"github.com/dalemusser/workbookhub/internal/app/system/formutil"
	"github.com/dalemusser/workbookhub/internal/app/system/refdata"
	"github.com/dalemusser/workbookhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

func activityBase(week int) string {
	return fmt.Sprintf("/drafts/edit/weeks/%d/activities", week)
}

// weekAndIndex reads {week} and, when withIndex is set, {index}.
func (h *Handler) weekAndIndex(w http.ResponseWriter, r *http.Request, withIndex bool) (int, int, bool) {
	week, ok := intParam(r, "week")
	if !ok || week < 1 {
		h.ErrLog.LogBadRequest(w, r, "activity: bad week number", nil, "Invalid week.", "/drafts/edit")
		return 0, 0, false
	}
	if !withIndex {
		return week, -1, true
	}
	idx, ok := intParam(r, "index")
	if !ok {
		h.ErrLog.LogBadRequest(w, r, "activity: bad activity index", nil, "Invalid activity.", "/drafts/edit")
		return 0, 0, false
	}
	return week, idx, true
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /drafts/edit/weeks/{week}/activities/new                                |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeNewActivity(w http.ResponseWriter, r *http.Request) {
	week, _, ok := h.weekAndIndex(w, r, false)
	if !ok {
		return
	}
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	if _, err := s.Draft.Week(week); err != nil {
		http.Redirect(w, r, "/drafts/edit", http.StatusSeeOther)
		return
	}

	form := shared.ActivityForm{}
	h.renderActivityForm(w, r, s, week, -1, &form)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /drafts/edit/weeks/{week}/activities                                   |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleAddActivity appends an activity to a week. Every required-field
// rule must pass before the activity is staged.
func (h *Handler) HandleAddActivity(w http.ResponseWriter, r *http.Request) {
	week, _, ok := h.weekAndIndex(w, r, false)
	if !ok {
		return
	}
	s, ok := h.load(w, r)
	if !ok {
		return
	}

	form, a, msgs := shared.ParseActivityForm(r)
	if len(msgs) > 0 {
		form.SetErrors(msgs)
		h.renderActivityForm(w, r, s, week, -1, &form)
		return
	}
	if _, err := s.Draft.AddActivity(week, a); err != nil {
		http.Redirect(w, r, "/drafts/edit", http.StatusSeeOther)
		return
	}
	h.save(w, r, s, weekAnchor(week))
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /drafts/edit/weeks/{week}/activities/{index}/edit                       |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeEditActivity(w http.ResponseWriter, r *http.Request) {
	week, idx, ok := h.weekAndIndex(w, r, true)
	if !ok {
		return
	}
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	a, err := s.Draft.Activity(week, idx)
	if err != nil {
		http.Redirect(w, r, "/drafts/edit", http.StatusSeeOther)
		return
	}

	form := shared.ActivityFormFrom(a)
	h.renderActivityForm(w, r, s, week, idx, &form)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /drafts/edit/weeks/{week}/activities/{index}                           |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleEditActivity(w http.ResponseWriter, r *http.Request) {
	week, idx, ok := h.weekAndIndex(w, r, true)
	if !ok {
		return
	}
	s, ok := h.load(w, r)
	if !ok {
		return
	}

	form, a, msgs := shared.ParseActivityForm(r)
	if len(msgs) > 0 {
		form.SetErrors(msgs)
		h.renderActivityForm(w, r, s, week, idx, &form)
		return
	}
	if err := s.Draft.EditActivity(week, idx, a); err != nil {
		http.Redirect(w, r, "/drafts/edit", http.StatusSeeOther)
		return
	}
	h.save(w, r, s, weekAnchor(week))
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /drafts/edit/weeks/{week}/activities/{index}/delete                    |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	week, idx, ok := h.weekAndIndex(w, r, true)
	if !ok {
		return
	}
	s, ok := h.load(w, r)
	if !ok {
		return
	}
	if err := s.Draft.DeleteActivity(week, idx); err != nil {
		h.Log.Info("delete activity: not found", zap.Int("week", week), zap.Int("index", idx))
		http.Redirect(w, r, "/drafts/edit", http.StatusSeeOther)
		return
	}
	h.save(w, r, s, weekAnchor(week))
}

func (h *Handler) renderActivityForm(w http.ResponseWriter, r *http.Request, s *staged, week, idx int, form *shared.ActivityForm) {
	title := fmt.Sprintf("Week %d: new activity", week)
	form.Action = activityBase(week)
	if idx >= 0 {
		title = fmt.Sprintf("Week %d: activity %d", week, idx+1)
		form.Action = fmt.Sprintf("%s/%d", activityBase(week), idx)
	}
	form.Heading = title
	form.CancelURL = "/drafts/edit#" + weekAnchor(week)

	errs := form.Errors
	formutil.SetBase(&form.Base, r, title, "/drafts/edit")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	set, err := h.Ref.Load(ctx, s.Draft.Workbook.LearningPlatformID, refdata.ActivityForm...)
	if err != nil {
		h.Log.Warn("activity form: reference data unavailable", zap.Error(err))
		errs = append(errs, "Could not load the form options. Please try again.")
	}
	form.SetOptions(set)
	if len(errs) > 0 {
		form.SetErrors(errs)
	}

	templates.Render(w, r, "activity_form", form)
}
