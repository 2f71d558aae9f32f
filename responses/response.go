// Package responses defines the payload shapes of the Responses API that the
// streaming core decodes into. The structs are deliberately flat: one
// OutputItem covers every item kind (message, function_call, reasoning, tool
// calls) with optional fields, so callers and the aggregator share a single
// shape regardless of how the result was produced.
package responses

import "encoding/json"

// Response status values reported by the service.
const (
	StatusInProgress = "in_progress"
	StatusQueued     = "queued"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusIncomplete = "incomplete"
)

// Output item and content part type values this library recognizes.
const (
	ItemTypeMessage        = "message"
	ItemTypeFunctionCall   = "function_call"
	ItemTypeReasoning      = "reasoning"
	ItemTypeCustomToolCall = "custom_tool_call"

	ContentTypeOutputText    = "output_text"
	ContentTypeReasoningText = "reasoning_text"
	ContentTypeRefusal       = "refusal"

	SummaryTypeText = "summary_text"
)

// Response represents a model response, either returned by a non-streaming
// call or materialized from a completed event stream.
type Response struct {
	ID                string             `json:"id"`
	Object            string             `json:"object,omitempty"`
	CreatedAt         int64              `json:"created_at,omitempty"`
	Status            string             `json:"status,omitempty"`
	Model             string             `json:"model,omitempty"`
	Output            []OutputItem       `json:"output,omitempty"`
	Error             *Error             `json:"error,omitempty"`
	IncompleteDetails *IncompleteDetails `json:"incomplete_details,omitempty"`
	Usage             *Usage             `json:"usage,omitempty"`
	Metadata          map[string]string  `json:"metadata,omitempty"`
}

// OutputText concatenates the text of all output_text content parts, in
// output order. Convenience for callers that only need the assistant text.
func (r *Response) OutputText() string {
	if r == nil {
		return ""
	}
	var out string
	for _, item := range r.Output {
		if item.Type != ItemTypeMessage {
			continue
		}
		for _, part := range item.Content {
			if part.Type == ContentTypeOutputText {
				out += part.Text
			}
		}
	}
	return out
}

// OutputItem is one entry of a response's output. Which fields are populated
// depends on Type.
type OutputItem struct {
	ID     string `json:"id,omitempty"`
	Type   string `json:"type"`
	Status string `json:"status,omitempty"`

	// Message items
	Role    string        `json:"role,omitempty"`
	Content []ContentPart `json:"content,omitempty"`

	// Reasoning items
	Summary []SummaryPart `json:"summary,omitempty"`

	// Function, MCP and custom tool call items
	CallID    string `json:"call_id,omitempty"`
	Name      string `json:"name,omitempty"`
	Arguments string `json:"arguments,omitempty"`
	Input     string `json:"input,omitempty"`

	// Code interpreter items
	Code string `json:"code,omitempty"`

	// Image generation items (base64 image payload)
	Result string `json:"result,omitempty"`
}

// ContentPart is one content entry within a message output item.
type ContentPart struct {
	Type        string            `json:"type"`
	Text        string            `json:"text,omitempty"`
	Refusal     string            `json:"refusal,omitempty"`
	Annotations []json.RawMessage `json:"annotations,omitempty"`
	Logprobs    []Logprob         `json:"logprobs,omitempty"`
}

// SummaryPart is one entry of a reasoning item's summary.
type SummaryPart struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Logprob carries token log-probability data attached to text events.
type Logprob struct {
	Token       string       `json:"token"`
	Logprob     float64      `json:"logprob"`
	TopLogprobs []TopLogprob `json:"top_logprobs,omitempty"`
}

// TopLogprob is one alternative token candidate.
type TopLogprob struct {
	Token   string  `json:"token"`
	Logprob float64 `json:"logprob"`
}

// Usage holds the token statistics reported with the terminal event.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// IncompleteDetails explains why a response finished as incomplete.
type IncompleteDetails struct {
	Reason string `json:"reason,omitempty"`
}
