package pixelfed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const DefaultInstance = "https://pixelfed.social"

// maxErrorBody caps how much of a failed response is kept for diagnostics.
const maxErrorBody = 512

// APIError is a non-2xx answer from the statuses endpoint.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Body)
}

// Client looks up statuses on a Pixelfed instance with a personal access
// token.
type Client struct {
	instance   string
	token      string
	httpClient *http.Client
}

func NewClient(instance, token string, httpClient *http.Client) *Client {
	if instance == "" {
		instance = DefaultInstance
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		instance:   strings.TrimRight(instance, "/"),
		token:      token,
		httpClient: httpClient,
	}
}

// GetStatus fetches /api/v1/statuses/{id}.
func (c *Client) GetStatus(ctx context.Context, id string) (*Status, error) {
	endpoint := c.instance + "/api/v1/statuses/" + url.PathEscape(id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(errBody)}
	}

	var status Status
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("bad json syntax: %w", err)
	}
	return &status, nil
}
