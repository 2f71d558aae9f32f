package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/viant/respond/responses"
	"github.com/viant/respond/stream"
)

// Request is a response creation request. Input is either a plain string
// prompt or a structured input list marshalled as-is.
type Request struct {
	Model              string            `json:"model"`
	Input              interface{}       `json:"input"`
	Instructions       string            `json:"instructions,omitempty"`
	MaxOutputTokens    *int              `json:"max_output_tokens,omitempty"`
	Temperature        *float64          `json:"temperature,omitempty"`
	TopP               *float64          `json:"top_p,omitempty"`
	PreviousResponseID string            `json:"previous_response_id,omitempty"`
	Store              *bool             `json:"store,omitempty"`
	Metadata           map[string]string `json:"metadata,omitempty"`
	Tools              []json.RawMessage `json:"tools,omitempty"`
	Stream             bool              `json:"stream,omitempty"`
}

// Create runs a non-streaming request and returns the final response.
func (c *Client) Create(ctx context.Context, request *Request) (*responses.Response, error) {
	payload := *request
	payload.Stream = false
	httpResponse, err := c.post(ctx, c.baseURL+"/responses", &payload, "application/json")
	if err != nil {
		return nil, err
	}
	defer httpResponse.Body.Close()
	body, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	var result responses.Response
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &result, nil
}

// CreateStream runs a streaming request. The caller owns the returned
// stream and must Close it.
func (c *Client) CreateStream(ctx context.Context, request *Request) (*stream.Stream, error) {
	payload := *request
	payload.Stream = true
	ctx, cancel := context.WithCancel(ctx)
	httpResponse, err := c.post(ctx, c.baseURL+"/responses", &payload, "text/event-stream")
	if err != nil {
		cancel()
		return nil, err
	}
	return c.newStream(httpResponse.Body, cancel), nil
}

// RetrieveStream resumes streaming an existing response, replaying events
// after startingAfter when it is >= 0.
func (c *Client) RetrieveStream(ctx context.Context, responseID string, startingAfter int) (*stream.Stream, error) {
	values := url.Values{}
	values.Set("stream", "true")
	if startingAfter >= 0 {
		values.Set("starting_after", fmt.Sprintf("%v", startingAfter))
	}
	endpoint := fmt.Sprintf("%v/responses/%v?%v", c.baseURL, url.PathEscape(responseID), values.Encode())
	ctx, cancel := context.WithCancel(ctx)
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpResponse, err := c.send(httpRequest, "text/event-stream")
	if err != nil {
		cancel()
		return nil, err
	}
	return c.newStream(httpResponse.Body, cancel), nil
}

func (c *Client) newStream(body io.ReadCloser, cancel func()) *stream.Stream {
	options := []stream.Option{stream.WithCloser(body), stream.WithCancel(cancel)}
	if c.enableLogging {
		options = append(options, stream.WithLogf(c.logf))
	}
	return stream.New(body, options...)
}

func (c *Client) post(ctx context.Context, endpoint string, payload interface{}, accept string) (*http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	c.logf("POST %v: %s", endpoint, data)
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	return c.send(httpRequest, accept)
}

func (c *Client) send(httpRequest *http.Request, accept string) (*http.Response, error) {
	key, err := c.key(httpRequest.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve API key: %w", err)
	}
	if key != "" {
		httpRequest.Header.Set("Authorization", "Bearer "+key)
	}
	if accept != "" {
		httpRequest.Header.Set("Accept", accept)
	}
	for name, value := range c.headers {
		httpRequest.Header.Set(name, value)
	}
	httpResponse, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if httpResponse.StatusCode < 200 || httpResponse.StatusCode >= 300 {
		defer httpResponse.Body.Close()
		body, _ := io.ReadAll(httpResponse.Body)
		return nil, apiError(httpResponse.StatusCode, httpResponse.Status, body)
	}
	return httpResponse, nil
}
