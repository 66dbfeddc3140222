// Package validation checks staged activities and workbooks before anything
// is sent to the backend. Checks return every problem found, in a fixed
// order, as user-facing strings; an empty result means valid.
package validation

import (
	"fmt"

	"github.com/dalemusser/workbookhub/internal/domain/models"
)

// Activity messages, in the order they are checked.
const (
	MsgNameRequired             = "Name is required"
	MsgTimeEstimateRequired     = "Time estimate is required"
	MsgLocationRequired         = "Location is required"
	MsgLearningActivityRequired = "Learning activity is required"
	MsgLearningTypeRequired     = "Learning type is required"
	MsgTaskStatusRequired       = "Task status is required"
	MsgStaffRequired            = "Staff is required"
)

// Workbook messages.
const (
	MsgCourseNameRequired       = "Course name is required"
	MsgLearningPlatformRequired = "Learning platform is required"
	MsgWeekRequired             = "At least one week is required"
	MsgStartDateInvalid         = "Start date is invalid"
	MsgEndDateInvalid           = "End date is invalid"
	MsgStartBeforeEnd           = "Start date must be before end date"
)

// Activity checks the required fields of a. A zero time estimate counts as
// missing.
func Activity(a models.Activity) []string {
	var errs []string
	if a.Name == "" {
		errs = append(errs, MsgNameRequired)
	}
	if a.TimeEstimateMinutes == 0 {
		errs = append(errs, MsgTimeEstimateRequired)
	}
	if a.LocationID == "" {
		errs = append(errs, MsgLocationRequired)
	}
	if a.LearningActivityID == "" {
		errs = append(errs, MsgLearningActivityRequired)
	}
	if a.LearningTypeID == "" {
		errs = append(errs, MsgLearningTypeRequired)
	}
	if a.TaskStatusID == "" {
		errs = append(errs, MsgTaskStatusRequired)
	}
	if a.StaffID() == "" {
		errs = append(errs, MsgStaffRequired)
	}
	return errs
}

// Workbook runs the basic aggregate checks: course name, platform, at least
// one week, both dates set and start strictly before end.
func Workbook(wb models.Workbook, weeks []models.Week) []string {
	var errs []string
	if wb.CourseName == "" {
		errs = append(errs, MsgCourseNameRequired)
	}
	if wb.LearningPlatformID == "" {
		errs = append(errs, MsgLearningPlatformRequired)
	}
	if len(weeks) == 0 {
		errs = append(errs, MsgWeekRequired)
	}
	if wb.StartDate.IsZero() {
		errs = append(errs, MsgStartDateInvalid)
	}
	if wb.EndDate.IsZero() {
		errs = append(errs, MsgEndDateInvalid)
	}
	if !wb.StartDate.IsZero() && !wb.EndDate.IsZero() && !wb.StartDate.Before(wb.EndDate) {
		errs = append(errs, MsgStartBeforeEnd)
	}
	return errs
}

// WorkbookThorough runs Workbook and then checks every week's range, that
// every week has at least one activity, and every activity's fields.
// Messages are prefixed "Week N: " and "Week N, Activity M: " (1-based).
func WorkbookThorough(wb models.Workbook, weeks []models.Week) []string {
	errs := Workbook(wb, weeks)
	for _, w := range weeks {
		if !w.StartDate.Before(w.EndDate) {
			errs = append(errs, fmt.Sprintf("Week %d: start date must be before end date", w.Number))
		}
		if len(w.Activities) == 0 {
			errs = append(errs, fmt.Sprintf("Week %d: at least one activity is required", w.Number))
			continue
		}
		for i, a := range w.Activities {
			for _, msg := range Activity(a) {
				errs = append(errs, fmt.Sprintf("Week %d, Activity %d: %s", w.Number, i+1, msg))
			}
		}
	}
	return errs
}
