// internal/domain/models/workbook.go
package models

// Workbook is a course's term-long plan of weekly learning activities.
//
// NOTE:
//   - CourseLeadID is assigned by the backend from the session on create;
//     the client never sends someone else's id as lead.
//   - NumberOfWeeks is maintained by the backend as weeks are created.
type Workbook struct {
	ID                 string `json:"id,omitempty"`
	CourseName         string `json:"course_name"`
	StartDate          Date   `json:"start_date"`
	EndDate            Date   `json:"end_date"`
	CourseLeadID       string `json:"course_lead_id,omitempty"`
	LearningPlatformID string `json:"learning_platform_id"`
	AreaID             string `json:"area_id,omitempty"`
	SchoolID           string `json:"school_id,omitempty"`
	NumberOfWeeks      int    `json:"number_of_weeks,omitempty"`
}

// WorkbookDetails is the aggregated payload of GET /workbooks/{id}/details
// and of each search result.
type WorkbookDetails struct {
	Workbook         Workbook         `json:"workbook"`
	CourseLead       *Ref             `json:"course_lead"`
	LearningPlatform *Ref             `json:"learning_platform"`
	Activities       []ActivityDetail `json:"activities"`
}

// CourseLeadName returns the lead's name or "" if the backend returned none.
func (d WorkbookDetails) CourseLeadName() string {
	if d.CourseLead == nil {
		return ""
	}
	return d.CourseLead.Name
}

// LearningPlatformName returns the platform's name or "".
func (d WorkbookDetails) LearningPlatformName() string {
	if d.LearningPlatform == nil {
		return ""
	}
	return d.LearningPlatform.Name
}

// WorkbookUpdate is the PATCH body for a workbook. Nil fields are left alone.
type WorkbookUpdate struct {
	CourseName         *string `json:"course_name,omitempty"`
	StartDate          *Date   `json:"start_date,omitempty"`
	EndDate            *Date   `json:"end_date,omitempty"`
	CourseLeadID       *string `json:"course_lead_id,omitempty"`
	LearningPlatformID *string `json:"learning_platform_id,omitempty"`
	AreaID             *string `json:"area_id,omitempty"`
	SchoolID           *string `json:"school_id,omitempty"`
}

// WorkbookSearch holds the filters accepted by /workbooks/search/.
type WorkbookSearch struct {
	Name             string
	StartsAfter      Date
	EndsBefore       Date
	LedBy            string
	ContributedBy    string
	LearningPlatform string
	AreaID           string
	SchoolID         string
}

// IsEmpty reports whether no filter is set.
func (s WorkbookSearch) IsEmpty() bool {
	return s.Name == "" && s.StartsAfter.IsZero() && s.EndsBefore.IsZero() &&
		s.LedBy == "" && s.ContributedBy == "" && s.LearningPlatform == "" &&
		s.AreaID == "" && s.SchoolID == ""
}

// WorkbookSummary is one row of GET /workbooks/: the workbook plus the lead
// and platform names inlined.
type WorkbookSummary struct {
	Workbook
	CourseLead       string `json:"course_lead"`
	LearningPlatform string `json:"learning_platform"`
}
