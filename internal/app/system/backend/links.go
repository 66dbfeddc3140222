package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dalemusser/workbookhub/internal/domain/models"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Activity staff                                                              |
*─────────────────────────────────────────────────────────────────────────────*/

// ActivityStaff lists the staff links of one activity.
func (c *Client) ActivityStaff(ctx context.Context, activityID string) ([]models.ActivityStaff, error) {
	var out []models.ActivityStaff
	err := c.get(ctx, "/activity-staff/", url.Values{"activity_id": {activityID}}, &out)
	return out, err
}

func (c *Client) CreateActivityStaff(ctx context.Context, link models.ActivityStaff) (models.ActivityStaff, error) {
	var out models.ActivityStaff
	err := c.post(ctx, "/activity-staff/", link, &out)
	return out, err
}

func (c *Client) DeleteActivityStaff(ctx context.Context, link models.ActivityStaff) error {
	return c.delete(ctx, "/activity-staff/", nil, link)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Workbook contributors                                                       |
*─────────────────────────────────────────────────────────────────────────────*/

// WorkbookContributors returns the users contributing to a workbook. With
// only workbook_id set the backend answers with user records directly.
func (c *Client) WorkbookContributors(ctx context.Context, workbookID string) ([]models.User, error) {
	var out []models.User
	err := c.get(ctx, "/workbook-contributors/", url.Values{"workbook_id": {workbookID}}, &out)
	return out, err
}

func (c *Client) CreateWorkbookContributor(ctx context.Context, link models.WorkbookContributor) (models.WorkbookContributor, error) {
	var out models.WorkbookContributor
	err := c.post(ctx, "/workbook-contributors/", link, &out)
	return out, err
}

func (c *Client) DeleteWorkbookContributor(ctx context.Context, link models.WorkbookContributor) error {
	return c.delete(ctx, "/workbook-contributors/", nil, link)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Week graduate attributes                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

// WeekGraduateAttributes lists attribute links filtered by workbook and,
// when weekNumber > 0, by week.
func (c *Client) WeekGraduateAttributes(ctx context.Context, workbookID string, weekNumber int) ([]models.WeekGraduateAttribute, error) {
	q := url.Values{}
	if workbookID != "" {
		q.Set("week_workbook_id", workbookID)
	}
	if weekNumber > 0 {
		q.Set("week_number", strconv.Itoa(weekNumber))
	}
	var out []models.WeekGraduateAttribute
	err := c.get(ctx, "/week-graduate-attributes/", q, &out)
	return out, err
}

func (c *Client) CreateWeekGraduateAttribute(ctx context.Context, link models.WeekGraduateAttribute) (models.WeekGraduateAttribute, error) {
	var out models.WeekGraduateAttribute
	err := c.post(ctx, "/week-graduate-attributes/", link, &out)
	return out, err
}

func (c *Client) DeleteWeekGraduateAttribute(ctx context.Context, link models.WeekGraduateAttribute) error {
	return c.delete(ctx, "/week-graduate-attributes/", nil, link)
}
