// internal/domain/models/activity.go
package models

// Activity is a single scheduled learning task within a week.
//
// Staff is a list: an activity may have several responsible staff members.
// The create/edit form is a single-select editor for the common case and
// writes a one-element list.
type Activity struct {
	ID                  string   `json:"id,omitempty"`
	WorkbookID          string   `json:"workbook_id,omitempty"`
	WeekNumber          int      `json:"week_number"`
	Number              int      `json:"number,omitempty"`
	Name                string   `json:"name"`
	TimeEstimateMinutes int      `json:"time_estimate_minutes"`
	LocationID          string   `json:"location_id"`
	LearningActivityID  string   `json:"learning_activity_id"`
	LearningTypeID      string   `json:"learning_type_id"`
	TaskStatusID        string   `json:"task_status_id"`
	StaffIDs            []string `json:"staff_ids,omitempty"`
}

// StaffID returns the first responsible staff id, or "".
func (a Activity) StaffID() string {
	if len(a.StaffIDs) == 0 {
		return ""
	}
	return a.StaffIDs[0]
}

// WithStaff returns a copy of a whose staff list is exactly id (or empty).
func (a Activity) WithStaff(id string) Activity {
	if id == "" {
		a.StaffIDs = nil
		return a
	}
	a.StaffIDs = []string{id}
	return a
}

// ActivityCreate is the POST /activities/ body. Staff are linked
// separately through /activity-staff/.
type ActivityCreate struct {
	WorkbookID          string `json:"workbook_id"`
	WeekNumber          int    `json:"week_number"`
	Name                string `json:"name"`
	TimeEstimateMinutes int    `json:"time_estimate_minutes"`
	LocationID          string `json:"location_id"`
	LearningActivityID  string `json:"learning_activity_id"`
	LearningTypeID      string `json:"learning_type_id"`
	TaskStatusID        string `json:"task_status_id"`
}

// CreateBody returns the create payload for a within workbookID.
func (a Activity) CreateBody(workbookID string) ActivityCreate {
	return ActivityCreate{
		WorkbookID:          workbookID,
		WeekNumber:          a.WeekNumber,
		Name:                a.Name,
		TimeEstimateMinutes: a.TimeEstimateMinutes,
		LocationID:          a.LocationID,
		LearningActivityID:  a.LearningActivityID,
		LearningTypeID:      a.LearningTypeID,
		TaskStatusID:        a.TaskStatusID,
	}
}

// ActivityUpdate is the PATCH /activities/{id} body. Nil fields are kept.
type ActivityUpdate struct {
	Name                *string `json:"name,omitempty"`
	Number              *int    `json:"number,omitempty"`
	TimeEstimateMinutes *int    `json:"time_estimate_minutes,omitempty"`
	LocationID          *string `json:"location_id,omitempty"`
	LearningActivityID  *string `json:"learning_activity_id,omitempty"`
	LearningTypeID      *string `json:"learning_type_id,omitempty"`
	TaskStatusID        *string `json:"task_status_id,omitempty"`
}

// ActivityDetail is the resolved, display-level activity returned inside
// WorkbookDetails. Names replace foreign keys.
type ActivityDetail struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	TimeEstimateMinutes int    `json:"time_estimate_minutes"`
	WeekNumber          int    `json:"week_number"`
	Location            string `json:"location"`
	LearningActivity    string `json:"learning_activity"`
	LearningType        string `json:"learning_type"`
	TaskStatus          string `json:"task_status"`
	Staff               []Ref  `json:"staff"`
}

// StaffNames returns the staff display names in order.
func (a ActivityDetail) StaffNames() []string {
	out := make([]string, 0, len(a.Staff))
	for _, s := range a.Staff {
		out = append(out, s.Name)
	}
	return out
}
