package client

import (
	"encoding/json"
	"fmt"

	"github.com/viant/respond/responses"
)

// HTTPError reports a non-2xx status from the API.
type HTTPError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected status %v: %s", e.Status, e.Body)
}

// apiError extracts the structured API error from an error response body,
// falling back to HTTPError when the body is not in the expected envelope.
func apiError(statusCode int, status string, body []byte) error {
	var envelope struct {
		Error *responses.Error `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil && envelope.Error.Message != "" {
		return envelope.Error
	}
	return &HTTPError{StatusCode: statusCode, Status: status, Body: body}
}
