// Package httpclient provides the thin HTTP client used to talk to the
// external player data provider.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "player-catalog-server/1.0"

	// maxErrorBodyBytes caps how much of an error response body ends up in
	// the returned error.
	maxErrorBodyBytes = 512
)

// Client issues GET requests against the provider API.
//
//go:generate mockgen -destination=mocks/mock_client.go -package=mocks -source=client.go Client
type Client interface {
	// Get fetches the URL and returns the response body. Non-2xx
	// responses are returned as an *HTTPError.
	Get(ctx context.Context, url string) ([]byte, error)
}

// DefaultClient is the standard Client implementation.
type DefaultClient struct {
	client *http.Client
}

// NewDefaultClient creates a Client with the given request timeout. A
// non-positive timeout selects the default of 30 seconds.
func NewDefaultClient(timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &DefaultClient{
		client: &http.Client{Timeout: timeout},
	}
}

// Get fetches the URL and returns the response body.
func (c *DefaultClient) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return nil, NewHTTPError(resp.StatusCode, url, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}
