// Package stream decodes the Responses API event protocol and folds it into
// a final response. The event catalog mirrors the service's streaming
// contract one struct per discriminator; kinds this library does not know
// decode to Unknown instead of failing, so newer server events never break
// older clients.
package stream

import (
	"encoding/json"

	"github.com/viant/respond/responses"
)

// Event discriminator values.
const (
	KindResponseCreated    = "response.created"
	KindResponseInProgress = "response.in_progress"
	KindResponseCompleted  = "response.completed"
	KindResponseFailed     = "response.failed"
	KindResponseIncomplete = "response.incomplete"
	KindResponseQueued     = "response.queued"

	KindOutputItemAdded = "response.output_item.added"
	KindOutputItemDone  = "response.output_item.done"

	KindContentPartAdded = "response.content_part.added"
	KindContentPartDone  = "response.content_part.done"

	KindOutputTextDelta           = "response.output_text.delta"
	KindOutputTextDone            = "response.output_text.done"
	KindOutputTextAnnotationAdded = "response.output_text.annotation.added"

	KindRefusalDelta = "response.refusal.delta"
	KindRefusalDone  = "response.refusal.done"

	KindFunctionCallArgumentsDelta = "response.function_call_arguments.delta"
	KindFunctionCallArgumentsDone  = "response.function_call_arguments.done"

	KindFileSearchCallInProgress = "response.file_search_call.in_progress"
	KindFileSearchCallSearching  = "response.file_search_call.searching"
	KindFileSearchCallCompleted  = "response.file_search_call.completed"

	KindWebSearchCallInProgress = "response.web_search_call.in_progress"
	KindWebSearchCallSearching  = "response.web_search_call.searching"
	KindWebSearchCallCompleted  = "response.web_search_call.completed"

	KindReasoningSummaryPartAdded = "response.reasoning_summary_part.added"
	KindReasoningSummaryPartDone  = "response.reasoning_summary_part.done"
	KindReasoningSummaryTextDelta = "response.reasoning_summary_text.delta"
	KindReasoningSummaryTextDone  = "response.reasoning_summary_text.done"

	KindReasoningTextDelta = "response.reasoning_text.delta"
	KindReasoningTextDone  = "response.reasoning_text.done"

	KindImageGenerationCallCompleted    = "response.image_generation_call.completed"
	KindImageGenerationCallGenerating   = "response.image_generation_call.generating"
	KindImageGenerationCallInProgress   = "response.image_generation_call.in_progress"
	KindImageGenerationCallPartialImage = "response.image_generation_call.partial_image"

	KindMCPCallArgumentsDelta = "response.mcp_call_arguments.delta"
	KindMCPCallArgumentsDone  = "response.mcp_call_arguments.done"
	KindMCPCallCompleted      = "response.mcp_call.completed"
	KindMCPCallFailed         = "response.mcp_call.failed"
	KindMCPCallInProgress     = "response.mcp_call.in_progress"

	KindMCPListToolsCompleted  = "response.mcp_list_tools.completed"
	KindMCPListToolsFailed     = "response.mcp_list_tools.failed"
	KindMCPListToolsInProgress = "response.mcp_list_tools.in_progress"

	KindCodeInterpreterCallInProgress   = "response.code_interpreter_call.in_progress"
	KindCodeInterpreterCallInterpreting = "response.code_interpreter_call.interpreting"
	KindCodeInterpreterCallCompleted    = "response.code_interpreter_call.completed"
	KindCodeInterpreterCallCodeDelta    = "response.code_interpreter_call_code.delta"
	KindCodeInterpreterCallCodeDone     = "response.code_interpreter_call_code.done"

	KindCustomToolCallInputDelta = "response.custom_tool_call_input.delta"
	KindCustomToolCallInputDone  = "response.custom_tool_call_input.done"

	KindError = "error"
)

// Event is one decoded stream event. The concrete type identifies the kind;
// the interface is sealed so the set of variants stays closed.
type Event interface {
	Kind() string
	Seq() uint64
	event()
}

// Meta carries the fields shared by every stream event.
type Meta struct {
	SequenceNumber uint64 `json:"sequence_number"`
}

// Seq returns the server-assigned, strictly increasing sequence number.
func (m Meta) Seq() uint64 { return m.SequenceNumber }

func (Meta) event() {}

// ResponseCreated is emitted once when the response is created.
type ResponseCreated struct {
	Meta
	Response *responses.Response `json:"response"`
}

// ResponseInProgress is emitted while the response is being generated.
type ResponseInProgress struct {
	Meta
	Response *responses.Response `json:"response"`
}

// ResponseCompleted is the terminal event of a successful stream; its
// embedded response is the authoritative final object.
type ResponseCompleted struct {
	Meta
	Response *responses.Response `json:"response"`
}

// ResponseFailed is the terminal event of a failed response.
type ResponseFailed struct {
	Meta
	Response *responses.Response `json:"response"`
}

// ResponseIncomplete is the terminal event of a response that stopped early.
type ResponseIncomplete struct {
	Meta
	Response *responses.Response `json:"response"`
}

// ResponseQueued is emitted while the response waits to be processed.
type ResponseQueued struct {
	Meta
	Response *responses.Response `json:"response"`
}

// OutputItemAdded opens a new output item at OutputIndex.
type OutputItemAdded struct {
	Meta
	OutputIndex int                  `json:"output_index"`
	Item        responses.OutputItem `json:"item"`
}

// OutputItemDone closes an output item; Item is the authoritative value.
type OutputItemDone struct {
	Meta
	OutputIndex int                  `json:"output_index"`
	Item        responses.OutputItem `json:"item"`
}

// ContentPartAdded opens a content part within an output item.
type ContentPartAdded struct {
	Meta
	ItemID       string                `json:"item_id"`
	OutputIndex  int                   `json:"output_index"`
	ContentIndex int                   `json:"content_index"`
	Part         responses.ContentPart `json:"part"`
}

// ContentPartDone closes a content part; Part is the authoritative value.
type ContentPartDone struct {
	Meta
	ItemID       string                `json:"item_id"`
	OutputIndex  int                   `json:"output_index"`
	ContentIndex int                   `json:"content_index"`
	Part         responses.ContentPart `json:"part"`
}

// OutputTextDelta carries an incremental text fragment.
type OutputTextDelta struct {
	Meta
	ItemID       string              `json:"item_id"`
	OutputIndex  int                 `json:"output_index"`
	ContentIndex int                 `json:"content_index"`
	Delta        string              `json:"delta"`
	Logprobs     []responses.Logprob `json:"logprobs,omitempty"`
}

// OutputTextDone carries the final text for a slot, superseding deltas.
type OutputTextDone struct {
	Meta
	ItemID       string              `json:"item_id"`
	OutputIndex  int                 `json:"output_index"`
	ContentIndex int                 `json:"content_index"`
	Text         string              `json:"text"`
	Logprobs     []responses.Logprob `json:"logprobs,omitempty"`
}

// OutputTextAnnotationAdded attaches an annotation to a text content part.
type OutputTextAnnotationAdded struct {
	Meta
	ItemID          string          `json:"item_id"`
	OutputIndex     int             `json:"output_index"`
	ContentIndex    int             `json:"content_index"`
	AnnotationIndex int             `json:"annotation_index"`
	Annotation      json.RawMessage `json:"annotation"`
}

// RefusalDelta carries an incremental refusal fragment.
type RefusalDelta struct {
	Meta
	ItemID       string `json:"item_id"`
	OutputIndex  int    `json:"output_index"`
	ContentIndex int    `json:"content_index"`
	Delta        string `json:"delta"`
}

// RefusalDone carries the final refusal text for a slot.
type RefusalDone struct {
	Meta
	ItemID       string `json:"item_id"`
	OutputIndex  int    `json:"output_index"`
	ContentIndex int    `json:"content_index"`
	Refusal      string `json:"refusal"`
}

// FunctionCallArgumentsDelta carries an incremental arguments fragment,
// keyed by item rather than content index.
type FunctionCallArgumentsDelta struct {
	Meta
	ItemID      string `json:"item_id"`
	OutputIndex int    `json:"output_index"`
	Delta       string `json:"delta"`
}

// FunctionCallArgumentsDone carries the final call arguments.
type FunctionCallArgumentsDone struct {
	Meta
	Name        string `json:"name"`
	ItemID      string `json:"item_id"`
	OutputIndex int    `json:"output_index"`
	Arguments   string `json:"arguments"`
}

// FileSearchCallInProgress reports a file search call starting.
type FileSearchCallInProgress struct {
	Meta
	OutputIndex int    `json:"output_index"`
	ItemID      string `json:"item_id"`
}

// FileSearchCallSearching reports a file search call running.
type FileSearchCallSearching struct {
	Meta
	OutputIndex int    `json:"output_index"`
	ItemID      string `json:"item_id"`
}

// FileSearchCallCompleted reports a file search call finishing.
type FileSearchCallCompleted struct {
	Meta
	OutputIndex int    `json:"output_index"`
	ItemID      string `json:"item_id"`
}

// WebSearchCallInProgress reports a web search call starting.
type WebSearchCallInProgress struct {
	Meta
	OutputIndex int    `json:"output_index"`
	ItemID      string `json:"item_id"`
}

// WebSearchCallSearching reports a web search call running.
type WebSearchCallSearching struct {
	Meta
	OutputIndex int    `json:"output_index"`
	ItemID      string `json:"item_id"`
}

// WebSearchCallCompleted reports a web search call finishing.
type WebSearchCallCompleted struct {
	Meta
	OutputIndex int    `json:"output_index"`
	ItemID      string `json:"item_id"`
}

// ReasoningSummaryPartAdded opens a reasoning summary part.
type ReasoningSummaryPartAdded struct {
	Meta
	ItemID       string                `json:"item_id"`
	OutputIndex  int                   `json:"output_index"`
	SummaryIndex int                   `json:"summary_index"`
	Part         responses.SummaryPart `json:"part"`
}

// ReasoningSummaryPartDone closes a reasoning summary part. Summary parts
// may emit done without any preceding deltas.
type ReasoningSummaryPartDone struct {
	Meta
	ItemID       string                `json:"item_id"`
	OutputIndex  int                   `json:"output_index"`
	SummaryIndex int                   `json:"summary_index"`
	Part         responses.SummaryPart `json:"part"`
}

// ReasoningSummaryTextDelta carries an incremental summary text fragment.
type ReasoningSummaryTextDelta struct {
	Meta
	ItemID       string `json:"item_id"`
	OutputIndex  int    `json:"output_index"`
	SummaryIndex int    `json:"summary_index"`
	Delta        string `json:"delta"`
}

// ReasoningSummaryTextDone carries the final summary text for a slot.
type ReasoningSummaryTextDone struct {
	Meta
	ItemID       string `json:"item_id"`
	OutputIndex  int    `json:"output_index"`
	SummaryIndex int    `json:"summary_index"`
	Text         string `json:"text"`
}

// ReasoningTextDelta carries an incremental reasoning text fragment.
type ReasoningTextDelta struct {
	Meta
	ItemID       string `json:"item_id"`
	OutputIndex  int    `json:"output_index"`
	ContentIndex int    `json:"content_index"`
	Delta        string `json:"delta"`
}

// ReasoningTextDone carries the final reasoning text for a slot.
type ReasoningTextDone struct {
	Meta
	ItemID       string `json:"item_id"`
	OutputIndex  int    `json:"output_index"`
	ContentIndex int    `json:"content_index"`
	Text         string `json:"text"`
}

// ImageGenerationCallCompleted reports image generation finishing.
type ImageGenerationCallCompleted struct {
	Meta
	OutputIndex int    `json:"output_index"`
	ItemID      string `json:"item_id"`
}

// ImageGenerationCallGenerating reports image generation running.
type ImageGenerationCallGenerating struct {
	Meta
	OutputIndex int    `json:"output_index"`
	ItemID      string `json:"item_id"`
}

// ImageGenerationCallInProgress reports image generation starting.
type ImageGenerationCallInProgress struct {
	Meta
	OutputIndex int    `json:"output_index"`
	ItemID      string `json:"item_id"`
}

// ImageGenerationCallPartialImage carries an intermediate partial image.
type ImageGenerationCallPartialImage struct {
	Meta
	OutputIndex       int    `json:"output_index"`
	ItemID            string `json:"item_id"`
	PartialImageIndex int    `json:"partial_image_index"`
	PartialImageB64   string `json:"partial_image_b64"`
}

// MCPCallArgumentsDelta carries an incremental MCP call arguments fragment.
type MCPCallArgumentsDelta struct {
	Meta
	OutputIndex int    `json:"output_index"`
	ItemID      string `json:"item_id"`
	Delta       string `json:"delta"`
}

// MCPCallArgumentsDone carries the final MCP call arguments.
type MCPCallArgumentsDone struct {
	Meta
	OutputIndex int    `json:"output_index"`
	ItemID      string `json:"item_id"`
	Arguments   string `json:"arguments"`
}

// MCPCallCompleted reports an MCP tool call finishing.
type MCPCallCompleted struct {
	Meta
	OutputIndex int    `json:"output_index"`
	ItemID      string `json:"item_id"`
}

// MCPCallFailed reports an MCP tool call failing.
type MCPCallFailed struct {
	Meta
	OutputIndex int    `json:"output_index"`
	ItemID      string `json:"item_id"`
}

// MCPCallInProgress reports an MCP tool call starting.
type MCPCallInProgress struct {
	Meta
	OutputIndex int    `json:"output_index"`
	ItemID      string `json:"item_id"`
}

// MCPListToolsCompleted reports the MCP tool listing finishing.
type MCPListToolsCompleted struct {
	Meta
	OutputIndex int    `json:"output_index"`
	ItemID      string `json:"item_id"`
}

// MCPListToolsFailed reports the MCP tool listing failing.
type MCPListToolsFailed struct {
	Meta
	OutputIndex int    `json:"output_index"`
	ItemID      string `json:"item_id"`
}

// MCPListToolsInProgress reports the MCP tool listing starting.
type MCPListToolsInProgress struct {
	Meta
	OutputIndex int    `json:"output_index"`
	ItemID      string `json:"item_id"`
}

// CodeInterpreterCallInProgress reports a code interpreter call starting.
type CodeInterpreterCallInProgress struct {
	Meta
	OutputIndex int    `json:"output_index"`
	ItemID      string `json:"item_id"`
}

// CodeInterpreterCallInterpreting reports the interpreter running.
type CodeInterpreterCallInterpreting struct {
	Meta
	OutputIndex int    `json:"output_index"`
	ItemID      string `json:"item_id"`
}

// CodeInterpreterCallCompleted reports a code interpreter call finishing.
type CodeInterpreterCallCompleted struct {
	Meta
	OutputIndex int    `json:"output_index"`
	ItemID      string `json:"item_id"`
}

// CodeInterpreterCallCodeDelta carries an incremental code fragment.
type CodeInterpreterCallCodeDelta struct {
	Meta
	OutputIndex int    `json:"output_index"`
	ItemID      string `json:"item_id"`
	Delta       string `json:"delta"`
}

// CodeInterpreterCallCodeDone carries the final code snippet.
type CodeInterpreterCallCodeDone struct {
	Meta
	OutputIndex int    `json:"output_index"`
	ItemID      string `json:"item_id"`
	Code        string `json:"code"`
}

// CustomToolCallInputDelta carries an incremental custom tool input fragment.
type CustomToolCallInputDelta struct {
	Meta
	OutputIndex int    `json:"output_index"`
	ItemID      string `json:"item_id"`
	Delta       string `json:"delta"`
}

// CustomToolCallInputDone carries the final custom tool input.
type CustomToolCallInputDone struct {
	Meta
	OutputIndex int    `json:"output_index"`
	ItemID      string `json:"item_id"`
	Input       string `json:"input"`
}

// ErrorEvent is the terminal event the service emits when the stream fails.
type ErrorEvent struct {
	Meta
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}

// Unknown wraps an event whose discriminator this library does not model.
// Raw preserves the original payload for forward compatibility.
type Unknown struct {
	Meta
	Type string
	Raw  json.RawMessage
}

func (e *ResponseCreated) Kind() string    { return KindResponseCreated }
func (e *ResponseInProgress) Kind() string { return KindResponseInProgress }
func (e *ResponseCompleted) Kind() string  { return KindResponseCompleted }
func (e *ResponseFailed) Kind() string     { return KindResponseFailed }
func (e *ResponseIncomplete) Kind() string { return KindResponseIncomplete }
func (e *ResponseQueued) Kind() string     { return KindResponseQueued }

func (e *OutputItemAdded) Kind() string  { return KindOutputItemAdded }
func (e *OutputItemDone) Kind() string   { return KindOutputItemDone }
func (e *ContentPartAdded) Kind() string { return KindContentPartAdded }
func (e *ContentPartDone) Kind() string  { return KindContentPartDone }

func (e *OutputTextDelta) Kind() string           { return KindOutputTextDelta }
func (e *OutputTextDone) Kind() string            { return KindOutputTextDone }
func (e *OutputTextAnnotationAdded) Kind() string { return KindOutputTextAnnotationAdded }
func (e *RefusalDelta) Kind() string              { return KindRefusalDelta }
func (e *RefusalDone) Kind() string               { return KindRefusalDone }

func (e *FunctionCallArgumentsDelta) Kind() string { return KindFunctionCallArgumentsDelta }
func (e *FunctionCallArgumentsDone) Kind() string  { return KindFunctionCallArgumentsDone }

func (e *FileSearchCallInProgress) Kind() string { return KindFileSearchCallInProgress }
func (e *FileSearchCallSearching) Kind() string  { return KindFileSearchCallSearching }
func (e *FileSearchCallCompleted) Kind() string  { return KindFileSearchCallCompleted }
func (e *WebSearchCallInProgress) Kind() string  { return KindWebSearchCallInProgress }
func (e *WebSearchCallSearching) Kind() string   { return KindWebSearchCallSearching }
func (e *WebSearchCallCompleted) Kind() string   { return KindWebSearchCallCompleted }

func (e *ReasoningSummaryPartAdded) Kind() string { return KindReasoningSummaryPartAdded }
func (e *ReasoningSummaryPartDone) Kind() string  { return KindReasoningSummaryPartDone }
func (e *ReasoningSummaryTextDelta) Kind() string { return KindReasoningSummaryTextDelta }
func (e *ReasoningSummaryTextDone) Kind() string  { return KindReasoningSummaryTextDone }
func (e *ReasoningTextDelta) Kind() string        { return KindReasoningTextDelta }
func (e *ReasoningTextDone) Kind() string         { return KindReasoningTextDone }

func (e *ImageGenerationCallCompleted) Kind() string    { return KindImageGenerationCallCompleted }
func (e *ImageGenerationCallGenerating) Kind() string   { return KindImageGenerationCallGenerating }
func (e *ImageGenerationCallInProgress) Kind() string   { return KindImageGenerationCallInProgress }
func (e *ImageGenerationCallPartialImage) Kind() string { return KindImageGenerationCallPartialImage }

func (e *MCPCallArgumentsDelta) Kind() string  { return KindMCPCallArgumentsDelta }
func (e *MCPCallArgumentsDone) Kind() string   { return KindMCPCallArgumentsDone }
func (e *MCPCallCompleted) Kind() string       { return KindMCPCallCompleted }
func (e *MCPCallFailed) Kind() string          { return KindMCPCallFailed }
func (e *MCPCallInProgress) Kind() string      { return KindMCPCallInProgress }
func (e *MCPListToolsCompleted) Kind() string  { return KindMCPListToolsCompleted }
func (e *MCPListToolsFailed) Kind() string     { return KindMCPListToolsFailed }
func (e *MCPListToolsInProgress) Kind() string { return KindMCPListToolsInProgress }

func (e *CodeInterpreterCallInProgress) Kind() string   { return KindCodeInterpreterCallInProgress }
func (e *CodeInterpreterCallInterpreting) Kind() string { return KindCodeInterpreterCallInterpreting }
func (e *CodeInterpreterCallCompleted) Kind() string    { return KindCodeInterpreterCallCompleted }
func (e *CodeInterpreterCallCodeDelta) Kind() string    { return KindCodeInterpreterCallCodeDelta }
func (e *CodeInterpreterCallCodeDone) Kind() string     { return KindCodeInterpreterCallCodeDone }

func (e *CustomToolCallInputDelta) Kind() string { return KindCustomToolCallInputDelta }
func (e *CustomToolCallInputDone) Kind() string  { return KindCustomToolCallInputDone }

func (e *ErrorEvent) Kind() string { return KindError }
func (e *Unknown) Kind() string    { return e.Type }
