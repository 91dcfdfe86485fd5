package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"netlink-server/internal/models"
)

// Read-side calls used by the dashboard pollers. Each is one
// independent request with the client's bounded timeout; a failed poll
// never blocks the next one.

func (c *Client) FetchCount(ctx context.Context) (int64, error) {
	var out models.CountResponse
	if err := c.getJSON(ctx, "/api/reports/count", &out); err != nil {
		return 0, err
	}
	return out.Total, nil
}

func (c *Client) FetchCountByNetwork(ctx context.Context) (*models.NetworkCountResponse, error) {
	var out models.NetworkCountResponse
	if err := c.getJSON(ctx, "/api/reports/count-by-network", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchLocations(ctx context.Context, limit int) ([]models.LocationRecord, error) {
	path := "/api/map/locations"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}
	out := make([]models.LocationRecord, 0)
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ping probes the server health endpoint; the connectivity watcher uses
// it to detect offline/online transitions.
func (c *Client) Ping(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/healthz", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &SubmissionError{Kind: NetworkUnreachable, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &SubmissionError{
			Kind:       ServerError,
			HTTPStatus: resp.StatusCode,
			Message:    decodeErrorMessage(resp, "unexpected response"),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
