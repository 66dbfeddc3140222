package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dalemusser/workbookhub/internal/domain/models"
)

// Activities lists a workbook's activities, optionally narrowed to a week
// (weekNumber > 0).
func (c *Client) Activities(ctx context.Context, workbookID string, weekNumber int) ([]models.Activity, error) {
	q := url.Values{"workbook_id": {workbookID}}
	if weekNumber > 0 {
		q.Set("week_number", strconv.Itoa(weekNumber))
	}
	var out []models.Activity
	err := c.get(ctx, "/activities/", q, &out)
	return out, err
}

// CreateActivity persists a within workbookID. Staff links are created
// separately with CreateActivityStaff.
func (c *Client) CreateActivity(ctx context.Context, workbookID string, a models.Activity) (models.Activity, error) {
	var out models.Activity
	err := c.post(ctx, "/activities/", a.CreateBody(workbookID), &out)
	return out, err
}

// UpdateActivity patches the non-nil fields of u.
func (c *Client) UpdateActivity(ctx context.Context, id string, u models.ActivityUpdate) (models.Activity, error) {
	var out models.Activity
	err := c.patch(ctx, "/activities/"+url.PathEscape(id), u, &out)
	return out, err
}

// DeleteActivity removes an activity and its staff links.
func (c *Client) DeleteActivity(ctx context.Context, id string) error {
	return c.delete(ctx, "/activities/", url.Values{"activity_id": {id}}, nil)
}
