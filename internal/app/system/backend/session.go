package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/workbookhub/internal/domain/models"
)

// GetSession resolves the session cookie in ctx to the signed-in user.
func (c *Client) GetSession(ctx context.Context) (models.SessionInfo, error) {
	var info models.SessionInfo
	err := c.get(ctx, "/session/", nil, &info)
	return info, err
}

// CreateSession signs username in and returns the Cookie header value the
// backend issued. Callers store it and pass it back through WithCredentials.
func (c *Client) CreateSession(ctx context.Context, username string) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "/session/"+url.PathEscape(username), nil, nil, nil)
	if err != nil {
		return "", err
	}
	cookie := cookieHeader(resp.Cookies())
	if cookie == "" {
		return "", fmt.Errorf("POST /session/: backend issued no session cookie")
	}
	return cookie, nil
}

// DeleteSession ends the backend session carried in ctx.
func (c *Client) DeleteSession(ctx context.Context) error {
	return c.delete(ctx, "/session/", nil, nil)
}

func cookieHeader(cookies []*http.Cookie) string {
	parts := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		if ck.Value == "" || ck.MaxAge < 0 {
			continue
		}
		parts = append(parts, ck.Name+"="+ck.Value)
	}
	return strings.Join(parts, "; ")
}

// Ping reports whether the backend answers at all. Any HTTP response counts,
// including the 403 an anonymous session lookup gets.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.GetSession(WithCredentials(ctx, ""))
	if err != nil && StatusCode(err) == 0 {
		return err
	}
	return nil
}
