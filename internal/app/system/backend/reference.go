package backend

import (
	"context"
	"net/url"

	"github.com/dalemusser/workbookhub/internal/domain/models"
)

// Reference collections. All are small, read-only lookup lists.

func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := c.get(ctx, "/users/", nil, &out)
	return out, err
}

func (c *Client) LearningPlatforms(ctx context.Context) ([]models.LearningPlatform, error) {
	var out []models.LearningPlatform
	err := c.get(ctx, "/learning-platforms/", nil, &out)
	return out, err
}

// LearningActivities returns the learning activities of one platform. An
// empty platformID returns every platform's activities.
func (c *Client) LearningActivities(ctx context.Context, platformID string) ([]models.LearningActivity, error) {
	var q url.Values
	if platformID != "" {
		q = url.Values{"learning_platform_id": {platformID}}
	}
	var out []models.LearningActivity
	err := c.get(ctx, "/learning-activities/", q, &out)
	return out, err
}

func (c *Client) LearningTypes(ctx context.Context) ([]models.LearningType, error) {
	var out []models.LearningType
	err := c.get(ctx, "/learning-types/", nil, &out)
	return out, err
}

func (c *Client) TaskStatuses(ctx context.Context) ([]models.TaskStatus, error) {
	var out []models.TaskStatus
	err := c.get(ctx, "/task-statuses/", nil, &out)
	return out, err
}

func (c *Client) Locations(ctx context.Context) ([]models.Location, error) {
	var out []models.Location
	err := c.get(ctx, "/locations/", nil, &out)
	return out, err
}

func (c *Client) Areas(ctx context.Context) ([]models.Area, error) {
	var out []models.Area
	err := c.get(ctx, "/area/", nil, &out)
	return out, err
}

func (c *Client) Schools(ctx context.Context) ([]models.School, error) {
	var out []models.School
	err := c.get(ctx, "/schools/", nil, &out)
	return out, err
}

func (c *Client) GraduateAttributes(ctx context.Context) ([]models.GraduateAttribute, error) {
	var out []models.GraduateAttribute
	err := c.get(ctx, "/graduate_attributes/", nil, &out)
	return out, err
}
