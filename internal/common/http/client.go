// internal/common/http/client.go
package http

import (
	"context"
	"io"
	"net/http"
	"time"
)

// MaxBodyBytes bounds how much of an upstream body is read.
const MaxBodyBytes = 8 << 20

type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient builds a client. A zero timeout means requests never time out.
func NewClient(timeout time.Duration, userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// Get issues a GET asking for JSON and returns status and the body.
func (c *Client) Get(ctx context.Context, url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}
