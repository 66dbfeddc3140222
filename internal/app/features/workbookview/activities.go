// internal/app/features/workbookview/activities.go
package workbookview

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/dalemusser/workbookhub/internal/app/features/shared"
	"github.com/dalemusser/workbookhub/internal/app/system/formutil"
	"github.com/dalemusser/workbookhub/internal/app/system/refdata"
	"github.com/dalemusser/workbookhub/internal/app/system/timeouts"
	"github.com/dalemusser/workbookhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// findActivity returns the persisted activity with its staff ids filled in.
func (h *Handler) findActivity(ctx context.Context, workbookID, activityID string) (models.Activity, bool, error) {
	acts, err := h.Backend.Activities(ctx, workbookID, 0)
	if err != nil {
		return models.Activity{}, false, err
	}
	i := slices.IndexFunc(acts, func(a models.Activity) bool { return a.ID == activityID })
	if i < 0 {
		return models.Activity{}, false, nil
	}
	a := acts[i]

	links, err := h.Backend.ActivityStaff(ctx, activityID)
	if err != nil {
		return models.Activity{}, false, err
	}
	a.StaffIDs = nil
	for _, l := range links {
		a.StaffIDs = append(a.StaffIDs, l.StaffID)
	}
	return a, true, nil
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /workbooks/{id}/weeks/{week}/activities/new                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeNewActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := h.workbookID(w, r)
	if !ok {
		return
	}
	week, ok := h.weekParam(w, r, id)
	if !ok {
		return
	}

	form := shared.ActivityForm{}
	h.renderActivityForm(w, r, id, week, "", &form)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /workbooks/{id}/weeks/{week}/activities                                |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleAddActivity creates the activity and then links each staff member.
func (h *Handler) HandleAddActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := h.workbookID(w, r)
	if !ok {
		return
	}
	week, ok := h.weekParam(w, r, id)
	if !ok {
		return
	}

	form, a, msgs := shared.ParseActivityForm(r)
	if len(msgs) > 0 {
		form.SetErrors(msgs)
		h.renderActivityForm(w, r, id, week, "", &form)
		return
	}
	a.WeekNumber = week

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Backend.CreateActivity(ctx, id, a)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "add activity", err, viewURL(id))
		return
	}
	for _, sid := range a.StaffIDs {
		if _, err := h.Backend.CreateActivityStaff(ctx, models.ActivityStaff{ActivityID: created.ID, StaffID: sid}); err != nil {
			h.ErrLog.LogBackendError(w, r, "add activity: link staff", err, viewURL(id))
			return
		}
	}

	h.Log.Info("activity added", zap.String("workbook_id", id), zap.Int("week", week), zap.String("activity_id", created.ID))
	back(w, r, id, weekAnchor(week))
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /workbooks/{id}/activities/{activityID}/edit                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeEditActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := h.workbookID(w, r)
	if !ok {
		return
	}
	activityID := chi.URLParam(r, "activityID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	a, found, err := h.findActivity(ctx, id, activityID)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "edit activity: load", err, viewURL(id))
		return
	}
	if !found {
		back(w, r, id, "weeks")
		return
	}

	form := shared.ActivityFormFrom(a)
	h.renderActivityForm(w, r, id, a.WeekNumber, activityID, &form)
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /workbooks/{id}/activities/{activityID}                                |
*─────────────────────────────────────────────────────────────────────────────*/

// HandleEditActivity patches the activity fields and reconciles its first
// staff link with the submitted staff. Further staff links are kept.
func (h *Handler) HandleEditActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := h.workbookID(w, r)
	if !ok {
		return
	}
	activityID := chi.URLParam(r, "activityID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	current, found, err := h.findActivity(ctx, id, activityID)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "edit activity: load", err, viewURL(id))
		return
	}
	if !found {
		back(w, r, id, "weeks")
		return
	}

	form, a, msgs := shared.ParseActivityForm(r)
	if len(msgs) > 0 {
		form.OtherStaffIDs = shared.ActivityFormFrom(current).OtherStaffIDs
		form.SetErrors(msgs)
		h.renderActivityForm(w, r, id, current.WeekNumber, activityID, &form)
		return
	}

	upd := models.ActivityUpdate{
		Name:                &a.Name,
		TimeEstimateMinutes: &a.TimeEstimateMinutes,
		LocationID:          &a.LocationID,
		LearningActivityID:  &a.LearningActivityID,
		LearningTypeID:      &a.LearningTypeID,
		TaskStatusID:        &a.TaskStatusID,
	}
	if _, err := h.Backend.UpdateActivity(ctx, activityID, upd); err != nil {
		h.ErrLog.LogBackendError(w, r, "edit activity", err, viewURL(id))
		return
	}

	add, remove := diffIDs(current.StaffIDs, withUnshownStaff(current.StaffIDs, a.StaffIDs))
	for _, sid := range remove {
		if err := h.Backend.DeleteActivityStaff(ctx, models.ActivityStaff{ActivityID: activityID, StaffID: sid}); err != nil {
			h.ErrLog.LogBackendError(w, r, "edit activity: unlink staff", err, viewURL(id))
			return
		}
	}
	for _, sid := range add {
		if _, err := h.Backend.CreateActivityStaff(ctx, models.ActivityStaff{ActivityID: activityID, StaffID: sid}); err != nil {
			h.ErrLog.LogBackendError(w, r, "edit activity: link staff", err, viewURL(id))
			return
		}
	}

	back(w, r, id, weekAnchor(current.WeekNumber))
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /workbooks/{id}/activities/{activityID}/delete                         |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleDeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := h.workbookID(w, r)
	if !ok {
		return
	}
	activityID := chi.URLParam(r, "activityID")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Backend.DeleteActivity(ctx, activityID); err != nil {
		h.ErrLog.LogBackendError(w, r, "delete activity", err, viewURL(id))
		return
	}
	h.Log.Info("activity deleted", zap.String("workbook_id", id), zap.String("activity_id", activityID))
	back(w, r, id, "weeks")
}

func (h *Handler) renderActivityForm(w http.ResponseWriter, r *http.Request, id string, week int, activityID string, form *shared.ActivityForm) {
	title := fmt.Sprintf("Week %d: new activity", week)
	form.Action = fmt.Sprintf("%s/weeks/%d/activities", viewURL(id), week)
	if activityID != "" {
		title = fmt.Sprintf("Week %d: edit activity", week)
		form.Action = fmt.Sprintf("%s/activities/%s", viewURL(id), activityID)
	}
	form.Heading = title
	form.CancelURL = viewURL(id) + "#" + weekAnchor(week)

	errs := form.Errors
	formutil.SetBase(&form.Base, r, title, viewURL(id))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	details, err := h.Backend.WorkbookDetails(ctx, id)
	if err != nil {
		h.ErrLog.LogBackendError(w, r, "activity form: load workbook", err, viewURL(id))
		return
	}

	set, err := h.Ref.Load(ctx, details.Workbook.LearningPlatformID, refdata.ActivityForm...)
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

// withUnshownStaff returns chosen plus the staff in have that the form did
// not show. The form edits only the first staff link.
func withUnshownStaff(have, chosen []string) []string {
	out := slices.Clone(chosen)
	if len(have) > 1 {
		for _, id := range have[1:] {
			if !slices.Contains(out, id) {
				out = append(out, id)
			}
		}
	}
	return out
}

// diffIDs returns the ids to add and to remove to turn have into want.
func diffIDs(have, want []string) (add, remove []string) {
	for _, id := range want {
		if !slices.Contains(have, id) && !slices.Contains(add, id) {
			add = append(add, id)
		}
	}
	for _, id := range have {
		if !slices.Contains(want, id) {
			remove = append(remove, id)
		}
	}
	return add, remove
}
