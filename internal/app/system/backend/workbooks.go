package backend

import (
	"context"
	"net/url"

	"github.com/dalemusser/workbookhub/internal/domain/models"
)

// Workbooks lists every workbook with lead and platform names inlined.
func (c *Client) Workbooks(ctx context.Context) ([]models.WorkbookSummary, error) {
	var out []models.WorkbookSummary
	err := c.get(ctx, "/workbooks/", nil, &out)
	return out, err
}

// workbookCreate is the POST /workbooks/ body.
type workbookCreate struct {
	CourseName         string      `json:"course_name"`
	StartDate          models.Date `json:"start_date"`
	EndDate            models.Date `json:"end_date"`
	CourseLeadID       string      `json:"course_lead_id,omitempty"`
	LearningPlatformID string      `json:"learning_platform_id"`
	AreaID             string      `json:"area_id,omitempty"`
	SchoolID           string      `json:"school_id,omitempty"`
}

// CreateWorkbook persists the scalar workbook fields and returns the
// backend's copy, including the generated id.
func (c *Client) CreateWorkbook(ctx context.Context, wb models.Workbook) (models.Workbook, error) {
	in := workbookCreate{
		CourseName:         wb.CourseName,
		StartDate:          wb.StartDate,
		EndDate:            wb.EndDate,
		CourseLeadID:       wb.CourseLeadID,
		LearningPlatformID: wb.LearningPlatformID,
		AreaID:             wb.AreaID,
		SchoolID:           wb.SchoolID,
	}
	var out models.Workbook
	err := c.post(ctx, "/workbooks/", in, &out)
	return out, err
}

// WorkbookDetails fetches a workbook with its lead, platform and resolved
// activities in one call.
func (c *Client) WorkbookDetails(ctx context.Context, id string) (models.WorkbookDetails, error) {
	var out models.WorkbookDetails
	err := c.get(ctx, "/workbooks/"+url.PathEscape(id)+"/details", nil, &out)
	return out, err
}

// SearchWorkbooks applies the non-empty filters of s.
func (c *Client) SearchWorkbooks(ctx context.Context, s models.WorkbookSearch) ([]models.WorkbookDetails, error) {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("name", s.Name)
	set("starts_after", s.StartsAfter.String())
	set("ends_before", s.EndsBefore.String())
	set("led_by", s.LedBy)
	set("contributed_by", s.ContributedBy)
	set("learning_platform", s.LearningPlatform)
	set("area_id", s.AreaID)
	set("school_id", s.SchoolID)

	var out []models.WorkbookDetails
	err := c.get(ctx, "/workbooks/search/", q, &out)
	return out, err
}

// UpdateWorkbook patches the non-nil fields of u.
func (c *Client) UpdateWorkbook(ctx context.Context, id string, u models.WorkbookUpdate) (models.Workbook, error) {
	var out models.Workbook
	err := c.patch(ctx, "/workbooks/"+url.PathEscape(id), u, &out)
	return out, err
}

// DeleteWorkbook removes a workbook together with its weeks, activities and
// links.
func (c *Client) DeleteWorkbook(ctx context.Context, id string) error {
	return c.delete(ctx, "/workbooks/", url.Values{"workbook_id": {id}}, nil)
}

// DuplicateWorkbook deep-copies a workbook; the caller becomes the lead of
// the copy.
func (c *Client) DuplicateWorkbook(ctx context.Context, id string) (models.Workbook, error) {
	var out models.Workbook
	err := c.post(ctx, "/workbooks/"+url.PathEscape(id)+"/duplicate", nil, &out)
	return out, err
}
