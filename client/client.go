// Package client is the Go SDK for the reminder service HTTP API.
//
// *Client satisfies the same repository contract as the in-process
// ReminderService, so a viewstate.Synchronizer can run against either.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	rc     *resty.Client
	userID string
}

// New constructs a Client for the service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("baseURL cannot be empty")
	}
	c := &Client{
		rc: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetHeader("Accept", "application/json").
			SetTimeout(30 * time.Second),
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// UserID returns the owner tag the client was configured with.
func (c *Client) UserID() string { return c.userID }

// Create stores a reminder and returns its id. A non-empty userID overrides
// the one set with WithUserID.
func (c *Client) Create(ctx context.Context, form ReminderFormData, userID string) (string, error) {
	if userID == "" {
		userID = c.userID
	}
	var out createResponse
	if err := c.do(ctx, "create reminder", http.MethodPost, "/api/reminders", createRequest{ReminderFormData: form, UserID: userID}, &out, http.StatusCreated); err != nil {
		return "", err
	}
	return out.ID, nil
}

// List returns reminders newest first. The service runs a cleanup pass first.
func (c *Client) List(ctx context.Context, userID string) ([]Reminder, error) {
	if userID == "" {
		userID = c.userID
	}
	path := "/api/reminders"
	if userID != "" {
		path += "?userId=" + url.QueryEscape(userID)
	}
	var out listResponse
	if err := c.do(ctx, "list reminders", http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Reminders, nil
}

// Update writes only the fields set in patch. An empty patch is a no-op.
func (c *Client) Update(ctx context.Context, id string, patch ReminderPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	return c.do(ctx, "update reminder", http.MethodPatch, "/api/reminders/"+url.PathEscape(id), patch, nil, http.StatusNoContent)
}

// Delete removes a reminder. Unknown ids are not an error.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, "delete reminder", http.MethodDelete, "/api/reminders/"+url.PathEscape(id), nil, nil, http.StatusNoContent)
}

func (c *Client) SetCompleted(ctx context.Context, id string, completed bool) error {
	body := map[string]bool{"completed": completed}
	return c.do(ctx, "set completed", http.MethodPut, "/api/reminders/"+url.PathEscape(id)+"/completed", body, nil, http.StatusNoContent)
}

// Cleanup asks the service to run a cleanup pass now.
func (c *Client) Cleanup(ctx context.Context) (CleanupResult, error) {
	var out CleanupResult
	err := c.do(ctx, "cleanup", http.MethodPost, "/api/cleanup", nil, &out, http.StatusOK)
	return out, err
}

// Texts fetches the display strings for lang ("en" or "hi").
func (c *Client) Texts(ctx context.Context, lang string) (Texts, error) {
	var out Texts
	err := c.do(ctx, "get texts", http.MethodGet, "/api/texts?lang="+url.QueryEscape(lang), nil, &out, http.StatusOK)
	return out, err
}

// Health fetches the service health report.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var out HealthStatus
	err := c.do(ctx, "health", http.MethodGet, "/api/health", nil, &out, http.StatusOK)
	return out, err
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any, want int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	req := c.rc.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	requestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(op, statusClass(0)).Inc()
		return fmt.Errorf("%s: %w", op, err)
	}
	requestsTotal.WithLabelValues(op, statusClass(resp.StatusCode())).Inc()

	if resp.StatusCode() != want {
		apiErr := &APIError{Op: op, StatusCode: resp.StatusCode()}
		var eb errorBody
		if json.Unmarshal(resp.Body(), &eb) == nil {
			apiErr.Message = eb.Message
		}
		return apiErr
	}
	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
	}
	return nil
}
