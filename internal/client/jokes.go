// Package client holds outbound HTTP facades. Everything rides on a
// retrying client so transient upstream hiccups never surface as errors.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Jokes fetches a one-liner to decorate the hello probe with.
type Jokes interface {
	RandomJoke(ctx context.Context) (string, error)
}

type jokesClient struct {
	url        string
	httpClient *http.Client
}

// NewJokesClient builds a client for a chucknorris.io style endpoint
// that answers GET with {"value": "<joke>"}.
func NewJokesClient(url string) Jokes {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.HTTPClient.Timeout = 10 * time.Second
	rc.Logger = nil

	return &jokesClient{
		url:        url,
		httpClient: rc.StandardClient(),
	}
}

func (c *jokesClient) RandomJoke(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("jokes client: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("jokes client: http do: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("jokes client: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("jokes client: unexpected status %d: %s", resp.StatusCode, string(raw))
	}

	var joke struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &joke); err != nil {
		return "", fmt.Errorf("jokes client: unmarshal response: %w", err)
	}
	return joke.Value, nil
}
