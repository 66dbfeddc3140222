// internal/app/features/workbooks/types.go
package workbooks

import (
	"github.com/dalemusser/workbookhub/internal/app/system/formutil"
	"github.com/dalemusser/workbookhub/internal/domain/models"
)

// workbookRow is one line of the list and of the search results.
type workbookRow struct {
	ID               string
	CourseName       string
	StartDate        string
	EndDate          string
	CourseLead       string
	LearningPlatform string
	Weeks            int
	Workload         string // HH:MM, search results only
	Mine             bool
}

type listData struct {
	formutil.Base

	Query string
	Rows  []workbookRow
	Total int
}

type searchData struct {
	formutil.Base

	// echoed filters
	Name             string
	StartsAfter      string
	EndsBefore       string
	LedBy            string
	ContributedBy    string
	LearningPlatform string
	AreaID           string
	SchoolID         string

	Users     []models.User
	Platforms []models.LearningPlatform
	Areas     []models.Area
	Schools   []models.School

	Searched bool
	Rows     []workbookRow
}

// searchInput carries the raw query values for shape validation.
type searchInput struct {
	Name        string `validate:"max=200" label:"Course name"`
	StartsAfter string `validate:"omitempty,isodate" label:"Starts after"`
	EndsBefore  string `validate:"omitempty,isodate" label:"Ends before"`
}
