// Package shared holds form plumbing used by more than one feature.
package shared

import (
	"net/http"
	"slices"
	"strings"

	"github.com/dalemusser/workbookhub/internal/app/system/formutil"
	"github.com/dalemusser/workbookhub/internal/app/system/inputval"
	"github.com/dalemusser/workbookhub/internal/app/system/normalize"
	"github.com/dalemusser/workbookhub/internal/app/system/refdata"
	"github.com/dalemusser/workbookhub/internal/app/system/validation"
	"github.com/dalemusser/workbookhub/internal/app/system/workload"
	"github.com/dalemusser/workbookhub/internal/domain/models"
)

// ActivityForm is the view model of the "activity_form" template, used for
// both staged and persisted activities.
type ActivityForm struct {
	formutil.Base

	Heading   string
	Action    string
	CancelURL string

	Name               string
	Time               string // HH:MM
	LocationID         string
	LearningActivityID string
	LearningTypeID     string
	TaskStatusID       string
	StaffID            string

	// OtherStaffIDs are staff linked to a persisted activity beyond the one
	// the form edits. They are listed read-only and left linked on save.
	OtherStaffIDs []string
	OtherStaff    []string

	LearningActivities []models.LearningActivity
	LearningTypes      []models.LearningType
	TaskStatuses       []models.TaskStatus
	Locations          []models.Location
	Users              []models.User
}

type activityInput struct {
	Name string `validate:"max=200" label:"Name"`
	Time string `validate:"omitempty,hhmm" label:"Time estimate"`
}

// ActivityFormFrom fills the form fields from a.
func ActivityFormFrom(a models.Activity) ActivityForm {
	f := ActivityForm{
		Name:               a.Name,
		LocationID:         a.LocationID,
		LearningActivityID: a.LearningActivityID,
		LearningTypeID:     a.LearningTypeID,
		TaskStatusID:       a.TaskStatusID,
		StaffID:            a.StaffID(),
	}
	if len(a.StaffIDs) > 1 {
		f.OtherStaffIDs = slices.Clone(a.StaffIDs[1:])
	}
	if a.TimeEstimateMinutes > 0 {
		f.Time = workload.FormatMinutes(a.TimeEstimateMinutes)
	}
	return f
}

// ParseActivityForm reads the posted activity. The returned messages are
// the input-shape errors if any, otherwise every required-field rule the
// activity breaks; none means the activity may be stored.
func ParseActivityForm(r *http.Request) (ActivityForm, models.Activity, []string) {
	f := ActivityForm{
		Name:               normalize.Name(r.FormValue("name")),
		Time:               strings.TrimSpace(r.FormValue("time")),
		LocationID:         normalize.FilterID(r.FormValue("location_id")),
		LearningActivityID: normalize.FilterID(r.FormValue("learning_activity_id")),
		LearningTypeID:     normalize.FilterID(r.FormValue("learning_type_id")),
		TaskStatusID:       normalize.FilterID(r.FormValue("task_status_id")),
		StaffID:            normalize.FilterID(r.FormValue("staff_id")),
	}

	if res := inputval.Validate(activityInput{Name: f.Name, Time: f.Time}); res.HasErrors() {
		return f, models.Activity{}, res.Messages()
	}

	a := models.Activity{
		Name:                f.Name,
		TimeEstimateMinutes: workload.TimeToMinutes(f.Time),
		LocationID:          f.LocationID,
		LearningActivityID:  f.LearningActivityID,
		LearningTypeID:      f.LearningTypeID,
		TaskStatusID:        f.TaskStatusID,
	}.WithStaff(f.StaffID)

	return f, a, validation.Activity(a)
}

// SetOptions copies the dropdown collections from set.
func (f *ActivityForm) SetOptions(set *refdata.Set) {
	if set == nil {
		return
	}
	f.LearningActivities = set.LearningActivities
	f.LearningTypes = set.LearningTypes
	f.TaskStatuses = set.TaskStatuses
	f.Locations = set.Locations
	f.Users = set.Users
	f.OtherStaff = set.UserNames(f.OtherStaffIDs)
}

// ActivityRow resolves a's ids for display with set.
func ActivityRow(set *refdata.Set, a models.Activity) workload.Row {
	return workload.Row{
		ID:               a.ID,
		WeekNumber:       a.WeekNumber,
		Name:             a.Name,
		Time:             workload.FormatMinutes(a.TimeEstimateMinutes),
		LearningActivity: set.LearningActivityName(a.LearningActivityID),
		LearningType:     set.LearningTypeName(a.LearningTypeID),
		Location:         set.LocationName(a.LocationID),
		TaskStatus:       set.TaskStatusName(a.TaskStatusID),
		Staff:            set.UserNames(a.StaffIDs),
	}
}
