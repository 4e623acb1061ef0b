// Package client is the HTTP client for the directory API. The submission
// workflow talks to the API exclusively through it, so the same workflow
// runs against the local instance or a remote one.
package client

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

	"mapdex/internal/models"
)

// Client calls the directory API rooted at a base URL.
type Client struct {
	base string
	http *http.Client
}

// New creates a client for the API at base.
func New(base string) *Client {
	return &Client{
		base: strings.TrimRight(base, "/"),
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// envelope is the standard API response wrapper.
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

// APIError is a non-2xx API response surfaced to the caller.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}

// CreateEntry posts a transformed entry payload and returns the new id.
func (c *Client) CreateEntry(ctx context.Context, payload map[string]any) (string, error) {
	var id string
	if err := c.do(ctx, http.MethodPost, "/entries", payload, &id); err != nil {
		return "", err
	}
	return id, nil
}

// UpdateEntry puts a transformed entry payload to an existing id.
func (c *Client) UpdateEntry(ctx context.Context, id string, payload map[string]any) error {
	return c.do(ctx, http.MethodPut, "/entries/"+url.PathEscape(id), payload, nil)
}

// CheckDuplicates submits the reduced entry projection and returns the
// near-duplicate candidates, possibly none.
func (c *Client) CheckDuplicates(ctx context.Context, p models.DuplicatePayload) ([]models.DuplicatePayload, error) {
	var candidates []models.DuplicatePayload
	if err := c.do(ctx, http.MethodPost, "/entries/duplicates", p, &candidates); err != nil {
		return nil, err
	}
	return candidates, nil
}

// GetEntry fetches an entry for editing, optionally scoped to an org tag.
func (c *Client) GetEntry(ctx context.Context, id, orgTag string) (*models.Entry, error) {
	path := "/entries/" + url.PathEscape(id)
	if orgTag != "" {
		path += "?org_tag=" + url.QueryEscape(orgTag)
	}
	var entry models.Entry
	if err := c.do(ctx, http.MethodGet, path, nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetRatings fetches ratings by id list (comma-joined on the wire).
func (c *Client) GetRatings(ctx context.Context, ids []string) ([]models.Rating, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rs []models.Rating
	if err := c.do(ctx, http.MethodGet, "/ratings/"+url.PathEscape(strings.Join(ids, ",")), nil, &rs); err != nil {
		return nil, err
	}
	return rs, nil
}
