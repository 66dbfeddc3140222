// Package backend is the JSON-over-HTTP client for the workbook REST API.
//
// Every call is made on behalf of the signed-in browser: the backend's
// session cookie is carried in the request context (see WithCredentials)
// and attached to the outgoing request. Calls are never retried.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultTimeout bounds a single backend call when none is configured.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of a failed response is kept on APIError.
const maxErrorBody = 64 << 10

// Client talks to the workbook backend.
type Client struct {
	base    *url.URL
	http    *http.Client
	timeout time.Duration
	log     *zap.Logger
}

// New builds a Client for baseURL (e.g. http://localhost:8000/api).
func New(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend base url must be http or https, got %q", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		base:    u,
		http:    &http.Client{},
		timeout: timeout,
		log:     logger,
	}, nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.base.String() }

/*─────────────────────────────────────────────────────────────────────────────*
| Credentials                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const credentialsKey ctxKey = "backendCredentials"

// WithCredentials returns a context that carries the backend session cookie
// header ("session=…") for every call made with it.
func WithCredentials(ctx context.Context, cookieHeader string) context.Context {
	return context.WithValue(ctx, credentialsKey, cookieHeader)
}

// CredentialsFrom returns the cookie header stored by WithCredentials.
func CredentialsFrom(ctx context.Context) string {
	v, _ := ctx.Value(credentialsKey).(string)
	return v
}

/*─────────────────────────────────────────────────────────────────────────────*
| Request plumbing                                                            |
*─────────────────────────────────────────────────────────────────────────────*/

func (c *Client) endpoint(path string, q url.Values) string {
	s := c.base.String() + path
	if len(q) > 0 {
		s += "?" + q.Encode()
	}
	return s
}

// do performs one call. in (if non-nil) is sent as the JSON body and out (if
// non-nil) receives the decoded JSON response.
func (c *Client) do(ctx context.Context, method, path string, q url.Values, in, out any) (*http.Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, q), body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie := CredentialsFrom(ctx); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("backend call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("backend call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp, newAPIError(method, path, resp.StatusCode, raw)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return resp, fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	} else {
		_, _ = io.Copy(io.Discard, resp.Body)
	}
	return resp, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	_, err := c.do(ctx, http.MethodGet, path, q, nil, out)
	return err
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	_, err := c.do(ctx, http.MethodPost, path, nil, in, out)
	return err
}

func (c *Client) patch(ctx context.Context, path string, in, out any) error {
	_, err := c.do(ctx, http.MethodPatch, path, nil, in, out)
	return err
}

func (c *Client) delete(ctx context.Context, path string, q url.Values, in any) error {
	_, err := c.do(ctx, http.MethodDelete, path, q, in, nil)
	return err
}
