package adapter

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"
)

// HTTPPostResult holds the outcome of a POST delivery
type HTTPPostResult struct {
	StatusCode int
	Body       []byte
}

// HTTPClient defines an interface for HTTP client operations to enable mocking
//
//go:generate mockgen -source=http.go -destination=../mocks/http.go -package=mocks -mock_names=HTTPClient=MockHTTPClient
type HTTPClient interface {
	// Post performs a POST request with the given headers and returns the
	// response status and body (body capped at 4KB)
	Post(ctx context.Context, url string, headers map[string]string, body []byte) (*HTTPPostResult, error)
}

// maxResponseBody caps how much of a webhook response is retained
const maxResponseBody = 4 * 1024

// RealHTTPClient implements HTTPClient using the standard http package
type RealHTTPClient struct {
	client *http.Client
}

// NewHTTPClient creates a new real HTTP client
func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &RealHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Post performs a POST request with the given headers
func (c *RealHTTPClient) Post(ctx context.Context, url string, headers map[string]string, body []byte) (*HTTPPostResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, err
	}

	return &HTTPPostResult{
		StatusCode: resp.StatusCode,
		Body:       respBody,
	}, nil
}
