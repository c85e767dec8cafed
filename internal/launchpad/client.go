package launchpad

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the production Launchpad web service
const DefaultBaseURL = "https://api.launchpad.net/1.0"

// HTTPClient interface for HTTP operations (allows mocking in tests).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError is returned when the API answers with a non-2xx status
type StatusError struct {
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("launchpad API returned status %d for %s: %s", e.Status, e.URL, e.Body)
}

// Client queries the anonymous Launchpad web service
type Client struct {
	baseURL    string
	httpClient HTTPClient
}

// ClientOptions configures a Client
type ClientOptions struct {
	BaseURL    string        // default: DefaultBaseURL
	Timeout    time.Duration // used when HTTPClient is nil (default: 30s)
	HTTPClient HTTPClient
}

// NewClient creates a Launchpad client.
func NewClient(opts ClientOptions) *Client {
	baseURL := strings.TrimSuffix(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}

		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{baseURL: baseURL, httpClient: httpClient}
}

type collectionResponse struct {
	TotalSize     *int   `json:"total_size"`
	TotalSizeLink string `json:"total_size_link"`
}

// CountTasks returns the number of bug tasks of project in status.
func (c *Client) CountTasks(ctx context.Context, project string, status Status) (int, error) {
	query := url.Values{}
	query.Set("ws.op", "searchTasks")
	query.Set("status", status.String())
	query.Set("ws.size", "1")

	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, url.PathEscape(project), query.Encode())

	var collection collectionResponse
	if err := c.doRequest(ctx, endpoint, &collection); err != nil {
		return 0, fmt.Errorf("failed to search %s tasks of %s: %w", status, project, err)
	}

	if collection.TotalSize != nil {
		return *collection.TotalSize, nil
	}

	if collection.TotalSizeLink == "" {
		return 0, fmt.Errorf("search %s tasks of %s: response has no total size", status, project)
	}

	var total int
	if err := c.doRequest(ctx, collection.TotalSizeLink, &total); err != nil {
		return 0, fmt.Errorf("failed to get %s task count of %s: %w", status, project, err)
	}

	return total, nil
}

func (c *Client) doRequest(ctx context.Context, endpoint string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{URL: endpoint, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
