package client

import (
	"net/http"
	"time"
)

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithAPIKey sets a static API key.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithAPIKeyProvider sets a per-request key resolver, taking precedence
// over a static key.
func WithAPIKeyProvider(provider APIKeyProvider) ClientOption {
	return func(c *Client) {
		c.apiKeyProvider = provider
	}
}

// WithBaseURL overrides the API endpoint, e.g. for a proxy or a test server.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient supplies a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(name, value string) ClientOption {
	return func(c *Client) {
		c.headers[name] = value
	}
}

// WithLogging enables request and anomaly logging via the standard logger.
func WithLogging(enabled bool) ClientOption {
	return func(c *Client) {
		c.enableLogging = enabled
	}
}
