package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/theirongolddev/nestegg/internal/model"
)

const (
	requestTimeout = 2 * time.Second
	maxBodySize    = 4 << 20 // 4 MB
)

var (
	// ErrNotReady indicates the daemon has not finished its first poll.
	ErrNotReady = errors.New("daemon: no report yet")
	// ErrGoalNotFound indicates the daemon's snapshot has no goal with that id.
	ErrGoalNotFound = errors.New("daemon: goal not found")
)

// Client reads a running daemon's HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for a daemon listening on addr
// ("127.0.0.1:8787" or a full http:// URL).
func NewClient(addr string) *Client {
	addr = strings.TrimRight(strings.TrimSpace(addr), "/")
	if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
		addr = "http://" + addr
	}
	return &Client{
		baseURL: addr,
		http:    &http.Client{},
	}
}

// Status fetches /v1/status.
func (c *Client) Status(ctx context.Context) (Status, error) {
	var st Status
	err := c.getJSON(ctx, "/v1/status", &st)
	return st, err
}

// Report fetches the latest full report.
func (c *Client) Report(ctx context.Context) (model.Report, error) {
	var r model.Report
	err := c.getJSON(ctx, "/v1/report", &r)
	return r, err
}

// GoalHealth fetches the quick health check of one goal.
func (c *Client) GoalHealth(ctx context.Context, id string) (model.HealthCheck, error) {
	var hc model.HealthCheck
	err := c.getJSON(ctx, "/v1/goals/"+url.PathEscape(id)+"/health", &hc)
	return hc, err
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	body, err := c.get(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("daemon: parsing %s: %w", path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("daemon: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("daemon: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusServiceUnavailable:
		return nil, ErrNotReady
	case http.StatusNotFound:
		return nil, ErrGoalNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("daemon: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("daemon: reading response: %w", err)
	}
	return body, nil
}
