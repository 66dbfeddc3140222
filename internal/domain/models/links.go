// internal/domain/models/links.go
package models

// WorkbookContributor links a workbook to a contributing user. Contributors
// are distinct from the course lead.
type WorkbookContributor struct {
	WorkbookID    string `json:"workbook_id"`
	ContributorID string `json:"contributor_id"`
}

// ActivityStaff links an activity to a responsible staff member.
type ActivityStaff struct {
	ActivityID string `json:"activity_id"`
	StaffID    string `json:"staff_id"`
}

// MaxWeekGraduateAttributes is the number of attribute slots per week.
const MaxWeekGraduateAttributes = 2

// WeekGraduateAttribute associates a graduate attribute with one week.
type WeekGraduateAttribute struct {
	WeekWorkbookID      string `json:"week_workbook_id"`
	WeekNumber          int    `json:"week_number"`
	GraduateAttributeID string `json:"graduate_attribute_id"`
}
