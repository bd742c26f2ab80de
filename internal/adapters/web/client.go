package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/corey/roost/internal/ports"
)

// Client talks to a running dashboard server. Used by the CLI.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for baseURL (e.g. "http://localhost:9280").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 2 * time.Second},
	}
}

// ClientFromPortFile reads the port written by Server.Start.
func ClientFromPortFile(path string) (*Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	port, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parse port file %s: %w", path, err)
	}
	return NewClient(fmt.Sprintf("http://127.0.0.1:%d", port)), nil
}

// BaseURL returns the server address this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping returns true if the server answers its health check.
func (c *Client) Ping() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	var h HealthResult
	return c.do(ctx, http.MethodGet, "/api/health", nil, &h) == nil && h.Status == "ok"
}

// Status lists apps matching the raw query; the server normalizes it.
func (c *Client) Status(ctx context.Context, query string) ([]ports.AppStatus, error) {
	path := "/api/status"
	if query != "" {
		path += "?q=" + url.QueryEscape(query)
	}
	var apps []ports.AppStatus
	if err := c.do(ctx, http.MethodGet, path, nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// Filter returns the persisted dashboard filter.
func (c *Client) Filter(ctx context.Context) (*ports.FilterState, error) {
	var state ports.FilterState
	if err := c.do(ctx, http.MethodGet, "/api/filter", nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SaveFilter sets the persisted dashboard filter.
func (c *Client) SaveFilter(ctx context.Context, query string) (*ports.FilterState, error) {
	var state ports.FilterState
	if err := c.do(ctx, http.MethodPut, "/api/filter", FilterRequest{Query: query}, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// ClearFilter drops the persisted filter and its history.
func (c *Client) ClearFilter(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/filter", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
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

	if resp.StatusCode >= 300 {
		var e ErrorResult
		if json.NewDecoder(resp.Body).Decode(&e) == nil && e.Error != "" {
			return fmt.Errorf("%s %s: %s (%d)", method, path, e.Error, resp.StatusCode)
		}
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
