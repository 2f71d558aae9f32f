package stream

import (
	"encoding/json"
	"fmt"
)

// DecodeError reports a record that could not be decoded. It is recoverable:
// the stream skips the record and continues.
type DecodeError struct {
	EventType string
	Data      []byte
	Err       error
}

func (e *DecodeError) Error() string {
	if e.EventType != "" {
		return fmt.Sprintf("decode %v event: %v", e.EventType, e.Err)
	}
	return fmt.Sprintf("decode event: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

var decoders = map[string]func() Event{
	KindResponseCreated:    func() Event { return &ResponseCreated{} },
	KindResponseInProgress: func() Event { return &ResponseInProgress{} },
	KindResponseCompleted:  func() Event { return &ResponseCompleted{} },
	KindResponseFailed:     func() Event { return &ResponseFailed{} },
	KindResponseIncomplete: func() Event { return &ResponseIncomplete{} },
	KindResponseQueued:     func() Event { return &ResponseQueued{} },

	KindOutputItemAdded:  func() Event { return &OutputItemAdded{} },
	KindOutputItemDone:   func() Event { return &OutputItemDone{} },
	KindContentPartAdded: func() Event { return &ContentPartAdded{} },
	KindContentPartDone:  func() Event { return &ContentPartDone{} },

	KindOutputTextDelta:           func() Event { return &OutputTextDelta{} },
	KindOutputTextDone:            func() Event { return &OutputTextDone{} },
	KindOutputTextAnnotationAdded: func() Event { return &OutputTextAnnotationAdded{} },
	KindRefusalDelta:              func() Event { return &RefusalDelta{} },
	KindRefusalDone:               func() Event { return &RefusalDone{} },

	KindFunctionCallArgumentsDelta: func() Event { return &FunctionCallArgumentsDelta{} },
	KindFunctionCallArgumentsDone:  func() Event { return &FunctionCallArgumentsDone{} },

	KindFileSearchCallInProgress: func() Event { return &FileSearchCallInProgress{} },
	KindFileSearchCallSearching:  func() Event { return &FileSearchCallSearching{} },
	KindFileSearchCallCompleted:  func() Event { return &FileSearchCallCompleted{} },
	KindWebSearchCallInProgress:  func() Event { return &WebSearchCallInProgress{} },
	KindWebSearchCallSearching:   func() Event { return &WebSearchCallSearching{} },
	KindWebSearchCallCompleted:   func() Event { return &WebSearchCallCompleted{} },

	KindReasoningSummaryPartAdded: func() Event { return &ReasoningSummaryPartAdded{} },
	KindReasoningSummaryPartDone:  func() Event { return &ReasoningSummaryPartDone{} },
	KindReasoningSummaryTextDelta: func() Event { return &ReasoningSummaryTextDelta{} },
	KindReasoningSummaryTextDone:  func() Event { return &ReasoningSummaryTextDone{} },
	KindReasoningTextDelta:        func() Event { return &ReasoningTextDelta{} },
	KindReasoningTextDone:         func() Event { return &ReasoningTextDone{} },

	KindImageGenerationCallCompleted:    func() Event { return &ImageGenerationCallCompleted{} },
	KindImageGenerationCallGenerating:   func() Event { return &ImageGenerationCallGenerating{} },
	KindImageGenerationCallInProgress:   func() Event { return &ImageGenerationCallInProgress{} },
	KindImageGenerationCallPartialImage: func() Event { return &ImageGenerationCallPartialImage{} },

	KindMCPCallArgumentsDelta:  func() Event { return &MCPCallArgumentsDelta{} },
	KindMCPCallArgumentsDone:   func() Event { return &MCPCallArgumentsDone{} },
	KindMCPCallCompleted:       func() Event { return &MCPCallCompleted{} },
	KindMCPCallFailed:          func() Event { return &MCPCallFailed{} },
	KindMCPCallInProgress:      func() Event { return &MCPCallInProgress{} },
	KindMCPListToolsCompleted:  func() Event { return &MCPListToolsCompleted{} },
	KindMCPListToolsFailed:     func() Event { return &MCPListToolsFailed{} },
	KindMCPListToolsInProgress: func() Event { return &MCPListToolsInProgress{} },

	KindCodeInterpreterCallInProgress:   func() Event { return &CodeInterpreterCallInProgress{} },
	KindCodeInterpreterCallInterpreting: func() Event { return &CodeInterpreterCallInterpreting{} },
	KindCodeInterpreterCallCompleted:    func() Event { return &CodeInterpreterCallCompleted{} },
	KindCodeInterpreterCallCodeDelta:    func() Event { return &CodeInterpreterCallCodeDelta{} },
	KindCodeInterpreterCallCodeDone:     func() Event { return &CodeInterpreterCallCodeDone{} },

	KindCustomToolCallInputDelta: func() Event { return &CustomToolCallInputDelta{} },
	KindCustomToolCallInputDone:  func() Event { return &CustomToolCallInputDone{} },

	KindError: func() Event { return &ErrorEvent{} },
}

// Decode decodes one event record. An unrecognized type decodes to *Unknown
// with the payload preserved; a payload that is not valid JSON, lacks a type,
// or fails to unmarshal into its known shape returns *DecodeError.
func Decode(data []byte) (Event, error) {
	var probe struct {
		Type           string `json:"type"`
		SequenceNumber uint64 `json:"sequence_number"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &DecodeError{Data: data, Err: err}
	}
	if probe.Type == "" {
		return nil, &DecodeError{Data: data, Err: fmt.Errorf("missing event type")}
	}
	factory, ok := decoders[probe.Type]
	if !ok {
		raw := make(json.RawMessage, len(data))
		copy(raw, data)
		return &Unknown{
			Meta: Meta{SequenceNumber: probe.SequenceNumber},
			Type: probe.Type,
			Raw:  raw,
		}, nil
	}
	event := factory()
	if err := json.Unmarshal(data, event); err != nil {
		return nil, &DecodeError{EventType: probe.Type, Data: data, Err: err}
	}
	return event, nil
}
