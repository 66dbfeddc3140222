// internal/domain/models/week.go
package models

// Week is one 7-day slice of a workbook.
//
// Number is a dense 1-based sequence within the workbook. StartDate and
// EndDate are always derived from the workbook start date and Number.
type Week struct {
	WorkbookID string     `json:"workbook_id,omitempty"`
	Number     int        `json:"number"`
	StartDate  Date       `json:"start_date"`
	EndDate    Date       `json:"end_date"`
	Activities []Activity `json:"activities,omitempty"`
}

// WeekKey identifies a persisted week (DELETE /weeks/ body).
type WeekKey struct {
	WorkbookID string `json:"workbook_id"`
	Number     int    `json:"number"`
}
