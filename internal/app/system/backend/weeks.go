package backend

import (
	"context"
	"net/url"

	"github.com/dalemusser/workbookhub/internal/domain/models"
)

// Weeks lists the weeks of one workbook.
func (c *Client) Weeks(ctx context.Context, workbookID string) ([]models.Week, error) {
	var out []models.Week
	err := c.get(ctx, "/weeks/", url.Values{"workbook_id": {workbookID}}, &out)
	return out, err
}

// weekCreate is the POST /weeks/ body.
type weekCreate struct {
	WorkbookID string      `json:"workbook_id"`
	Number     int         `json:"number,omitempty"`
	StartDate  models.Date `json:"start_date"`
	EndDate    models.Date `json:"end_date"`
}

// CreateWeek appends a week to workbookID. The backend assigns the number
// when w.Number is zero.
func (c *Client) CreateWeek(ctx context.Context, workbookID string, w models.Week) (models.Week, error) {
	in := weekCreate{
		WorkbookID: workbookID,
		Number:     w.Number,
		StartDate:  w.StartDate,
		EndDate:    w.EndDate,
	}
	var out models.Week
	err := c.post(ctx, "/weeks/", in, &out)
	return out, err
}

// DeleteWeek removes a week and its activities; later weeks are renumbered
// by the backend.
func (c *Client) DeleteWeek(ctx context.Context, workbookID string, number int) error {
	return c.delete(ctx, "/weeks/", nil, models.WeekKey{WorkbookID: workbookID, Number: number})
}
