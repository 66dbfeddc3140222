package workload

import (
	"strings"

	"github.com/dalemusser/workbookhub/internal/domain/models"
)

// Row is one activity as displayed: names instead of ids and the duration
// as "HH:MM".
type Row struct {
	ID               string
	WeekNumber       int
	Name             string
	Time             string
	LearningActivity string
	LearningType     string
	Location         string
	TaskStatus       string
	Staff            []string
}

// StaffList joins the staff names for display.
func (r Row) StaffList() string { return strings.Join(r.Staff, ", ") }

// Minutes returns the row's duration in minutes.
func (r Row) Minutes() int { return TimeToMinutes(r.Time) }

// RowsFromDetails converts the backend's resolved activities to rows.
func RowsFromDetails(acts []models.ActivityDetail) []Row {
	rows := make([]Row, 0, len(acts))
	for _, a := range acts {
		rows = append(rows, Row{
			ID:               a.ID,
			WeekNumber:       a.WeekNumber,
			Name:             a.Name,
			Time:             FormatMinutes(a.TimeEstimateMinutes),
			LearningActivity: a.LearningActivity,
			LearningType:     a.LearningType,
			Location:         a.Location,
			TaskStatus:       a.TaskStatus,
			Staff:            a.StaffNames(),
		})
	}
	return rows
}

// RowsByWeek groups rows by week number, keeping their relative order.
func RowsByWeek(rows []Row) map[int][]Row {
	out := make(map[int][]Row)
	for _, r := range rows {
		out[r.WeekNumber] = append(out[r.WeekNumber], r)
	}
	return out
}
