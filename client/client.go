// Package client talks to the Responses API over HTTP and websocket,
// returning streamed responses through the stream package.
package client

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultTimeout = 5 * time.Minute
)

// APIKeyProvider resolves the API key per request, allowing rotation.
type APIKeyProvider func(ctx context.Context) (string, error)

// Client is a Responses API client. Use NewClient to construct it.
type Client struct {
	baseURL        string
	apiKey         string
	apiKeyProvider APIKeyProvider
	httpClient     *http.Client
	headers        map[string]string
	enableLogging  bool
}

// NewClient creates a client. With no explicit key it falls back to the
// OPENAI_API_KEY environment variable.
func NewClient(options ...ClientOption) *Client {
	result := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		headers:    map[string]string{},
	}
	for _, option := range options {
		option(result)
	}
	if result.apiKey == "" && result.apiKeyProvider == nil {
		result.apiKey = os.Getenv("OPENAI_API_KEY")
	}
	return result
}

func (c *Client) key(ctx context.Context) (string, error) {
	if c.apiKeyProvider != nil {
		return c.apiKeyProvider(ctx)
	}
	return c.apiKey, nil
}

func (c *Client) logf(format string, args ...interface{}) {
	if !c.enableLogging {
		return
	}
	log.Printf(format, args...)
}
