package stream

import (
	"errors"
	"sort"
	"strings"

	"github.com/viant/respond/responses"
)

// ErrAbnormalTermination reports a stream that ended without a terminal
// event, so no final response can be trusted.
var ErrAbnormalTermination = errors.New("stream ended without terminal event")

// Aggregator folds a stream of events into a response. Delta events
// accumulate incrementally; done events are authoritative and replace
// whatever the deltas built. Apply tolerates out-of-order anomalies by
// logging and ignoring rather than failing.
type Aggregator struct {
	logf     func(format string, args ...interface{})
	snapshot *responses.Response
	final    *responses.Response
	errEvent *responses.Error
	items    map[int]*itemState
	lastSeq  uint64
	seen     bool
	done     bool
}

// fieldAgg accumulates one streamed string field. A done value freezes it.
type fieldAgg struct {
	builder strings.Builder
	final   string
	frozen  bool
}

func (f *fieldAgg) append(delta string) {
	if f.frozen {
		return
	}
	f.builder.WriteString(delta)
}

func (f *fieldAgg) finish(value string) {
	f.final = value
	f.frozen = true
}

func (f *fieldAgg) value() string {
	if f.frozen {
		return f.final
	}
	return f.builder.String()
}

type partState struct {
	part   responses.ContentPart
	text   fieldAgg
	frozen bool
}

type summaryState struct {
	part   responses.SummaryPart
	text   fieldAgg
	frozen bool
}

type itemState struct {
	item      responses.OutputItem
	frozen    bool
	content   map[int]*partState
	summaries map[int]*summaryState
	arguments fieldAgg
	input     fieldAgg
	code      fieldAgg
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{items: map[int]*itemState{}}
}

// SetLogf installs a sink for anomaly diagnostics; nil keeps them silent.
func (a *Aggregator) SetLogf(logf func(format string, args ...interface{})) {
	a.logf = logf
}

func (a *Aggregator) logAnomaly(format string, args ...interface{}) {
	if a.logf != nil {
		a.logf(format, args...)
	}
}

func (a *Aggregator) item(index int) *itemState {
	state, ok := a.items[index]
	if !ok {
		state = &itemState{
			content:   map[int]*partState{},
			summaries: map[int]*summaryState{},
		}
		a.items[index] = state
	}
	return state
}

// identify fills in the item type and ID implied by a streamed event when
// no output_item.added announced them first.
func (s *itemState) identify(itemType, itemID string) {
	if s.frozen {
		return
	}
	if s.item.Type == "" {
		s.item.Type = itemType
	}
	if s.item.ID == "" {
		s.item.ID = itemID
	}
}

func (s *itemState) part(index int) *partState {
	state, ok := s.content[index]
	if !ok {
		state = &partState{}
		s.content[index] = state
	}
	return state
}

func (s *itemState) summary(index int) *summaryState {
	state, ok := s.summaries[index]
	if !ok {
		state = &summaryState{}
		s.summaries[index] = state
	}
	return state
}

// Done reports whether a terminal event has been applied.
func (a *Aggregator) Done() bool { return a.done }

// Apply folds one event into the aggregate. Events whose sequence number
// regresses are ignored, and once a terminal event has been applied every
// later event is a no-op, so duplicate terminals cannot change the outcome.
func (a *Aggregator) Apply(event Event) {
	if a.done {
		a.logAnomaly("ignoring event %v after terminal event", event.Kind())
		return
	}
	seq := event.Seq()
	if a.seen && seq < a.lastSeq {
		a.logAnomaly("ignoring stale event %v: sequence %v after %v", event.Kind(), seq, a.lastSeq)
		return
	}
	a.lastSeq = seq
	a.seen = true

	switch actual := event.(type) {
	case *ResponseCreated:
		a.snapshot = actual.Response
	case *ResponseInProgress:
		a.snapshot = actual.Response
	case *ResponseQueued:
		a.snapshot = actual.Response
	case *ResponseCompleted:
		a.snapshot = actual.Response
		a.final = actual.Response
		a.done = true
	case *ResponseFailed:
		a.snapshot = actual.Response
		a.final = actual.Response
		a.done = true
	case *ResponseIncomplete:
		a.snapshot = actual.Response
		a.final = actual.Response
		a.done = true
	case *ErrorEvent:
		a.errEvent = &responses.Error{
			Code:    actual.Code,
			Message: actual.Message,
			Param:   actual.Param,
		}
		a.done = true

	case *OutputItemAdded:
		state := a.item(actual.OutputIndex)
		if !state.frozen {
			state.item = actual.Item
		}
	case *OutputItemDone:
		state := a.item(actual.OutputIndex)
		state.item = actual.Item
		state.frozen = true

	case *ContentPartAdded:
		part := a.item(actual.OutputIndex).part(actual.ContentIndex)
		if !part.frozen {
			part.part = actual.Part
		}
	case *ContentPartDone:
		part := a.item(actual.OutputIndex).part(actual.ContentIndex)
		part.part = actual.Part
		part.frozen = true

	case *OutputTextDelta:
		state := a.item(actual.OutputIndex)
		state.identify(responses.ItemTypeMessage, actual.ItemID)
		part := state.part(actual.ContentIndex)
		if part.part.Type == "" {
			part.part.Type = responses.ContentTypeOutputText
		}
		part.text.append(actual.Delta)
		part.part.Logprobs = append(part.part.Logprobs, actual.Logprobs...)
	case *OutputTextDone:
		state := a.item(actual.OutputIndex)
		state.identify(responses.ItemTypeMessage, actual.ItemID)
		part := state.part(actual.ContentIndex)
		if part.part.Type == "" {
			part.part.Type = responses.ContentTypeOutputText
		}
		part.text.finish(actual.Text)
	case *OutputTextAnnotationAdded:
		part := a.item(actual.OutputIndex).part(actual.ContentIndex)
		part.part.Annotations = append(part.part.Annotations, actual.Annotation)

	case *RefusalDelta:
		state := a.item(actual.OutputIndex)
		state.identify(responses.ItemTypeMessage, actual.ItemID)
		part := state.part(actual.ContentIndex)
		if part.part.Type == "" {
			part.part.Type = responses.ContentTypeRefusal
		}
		part.text.append(actual.Delta)
	case *RefusalDone:
		state := a.item(actual.OutputIndex)
		state.identify(responses.ItemTypeMessage, actual.ItemID)
		part := state.part(actual.ContentIndex)
		if part.part.Type == "" {
			part.part.Type = responses.ContentTypeRefusal
		}
		part.text.finish(actual.Refusal)

	case *ReasoningTextDelta:
		state := a.item(actual.OutputIndex)
		state.identify(responses.ItemTypeReasoning, actual.ItemID)
		part := state.part(actual.ContentIndex)
		if part.part.Type == "" {
			part.part.Type = responses.ContentTypeReasoningText
		}
		part.text.append(actual.Delta)
	case *ReasoningTextDone:
		state := a.item(actual.OutputIndex)
		state.identify(responses.ItemTypeReasoning, actual.ItemID)
		part := state.part(actual.ContentIndex)
		if part.part.Type == "" {
			part.part.Type = responses.ContentTypeReasoningText
		}
		part.text.finish(actual.Text)

	case *ReasoningSummaryPartAdded:
		a.item(actual.OutputIndex).identify(responses.ItemTypeReasoning, actual.ItemID)
		summary := a.item(actual.OutputIndex).summary(actual.SummaryIndex)
		if !summary.frozen {
			summary.part = actual.Part
		}
	case *ReasoningSummaryPartDone:
		summary := a.item(actual.OutputIndex).summary(actual.SummaryIndex)
		summary.part = actual.Part
		summary.frozen = true
	case *ReasoningSummaryTextDelta:
		summary := a.item(actual.OutputIndex).summary(actual.SummaryIndex)
		if summary.part.Type == "" {
			summary.part.Type = responses.SummaryTypeText
		}
		summary.text.append(actual.Delta)
	case *ReasoningSummaryTextDone:
		summary := a.item(actual.OutputIndex).summary(actual.SummaryIndex)
		if summary.part.Type == "" {
			summary.part.Type = responses.SummaryTypeText
		}
		summary.text.finish(actual.Text)

	case *FunctionCallArgumentsDelta:
		state := a.item(actual.OutputIndex)
		state.identify(responses.ItemTypeFunctionCall, actual.ItemID)
		state.arguments.append(actual.Delta)
	case *FunctionCallArgumentsDone:
		state := a.item(actual.OutputIndex)
		state.identify(responses.ItemTypeFunctionCall, actual.ItemID)
		state.arguments.finish(actual.Arguments)
		if state.item.Name == "" {
			state.item.Name = actual.Name
		}
	case *MCPCallArgumentsDelta:
		a.item(actual.OutputIndex).arguments.append(actual.Delta)
	case *MCPCallArgumentsDone:
		a.item(actual.OutputIndex).arguments.finish(actual.Arguments)

	case *CustomToolCallInputDelta:
		state := a.item(actual.OutputIndex)
		state.identify(responses.ItemTypeCustomToolCall, actual.ItemID)
		state.input.append(actual.Delta)
	case *CustomToolCallInputDone:
		state := a.item(actual.OutputIndex)
		state.identify(responses.ItemTypeCustomToolCall, actual.ItemID)
		state.input.finish(actual.Input)

	case *CodeInterpreterCallCodeDelta:
		a.item(actual.OutputIndex).code.append(actual.Delta)
	case *CodeInterpreterCallCodeDone:
		a.item(actual.OutputIndex).code.finish(actual.Code)

	case *ImageGenerationCallPartialImage:
		// Intermediate frames; the final image arrives with output_item.done.

	case *Unknown:
		a.logAnomaly("skipping unrecognized event %v", actual.Type)
	}
}

// Response returns the current aggregate: the terminal response when one
// arrived, otherwise the latest snapshot with the accumulated output merged
// in. The returned value is safe to read but shares item payloads with the
// aggregator; keep applying events only through Apply.
func (a *Aggregator) Response() *responses.Response {
	if a.final != nil {
		return a.final
	}
	var result responses.Response
	if a.snapshot != nil {
		result = *a.snapshot
	}
	result.Output = a.assembleOutput()
	return &result
}

// Final returns the terminal response and classifies how the stream ended.
// A failed response surfaces its embedded error; an error event surfaces as
// *responses.Error alongside the partial aggregate; a stream that never
// reached a terminal event yields ErrAbnormalTermination.
func (a *Aggregator) Final() (*responses.Response, error) {
	if a.final != nil {
		if a.final.Status == responses.StatusFailed && a.final.Error != nil {
			return a.final, a.final.Error
		}
		return a.final, nil
	}
	result := a.Response()
	if a.errEvent != nil {
		return result, a.errEvent
	}
	if !a.done {
		return result, ErrAbnormalTermination
	}
	return result, nil
}

func (a *Aggregator) assembleOutput() []responses.OutputItem {
	if len(a.items) == 0 {
		return nil
	}
	indexes := make([]int, 0, len(a.items))
	for index := range a.items {
		indexes = append(indexes, index)
	}
	sort.Ints(indexes)
	output := make([]responses.OutputItem, 0, len(indexes))
	for _, index := range indexes {
		output = append(output, a.items[index].assemble())
	}
	return output
}

func (s *itemState) assemble() responses.OutputItem {
	if s.frozen {
		return s.item
	}
	item := s.item
	if len(s.content) > 0 {
		indexes := make([]int, 0, len(s.content))
		for index := range s.content {
			indexes = append(indexes, index)
		}
		sort.Ints(indexes)
		item.Content = make([]responses.ContentPart, 0, len(indexes))
		for _, index := range indexes {
			item.Content = append(item.Content, s.content[index].assemble())
		}
	}
	if len(s.summaries) > 0 {
		indexes := make([]int, 0, len(s.summaries))
		for index := range s.summaries {
			indexes = append(indexes, index)
		}
		sort.Ints(indexes)
		item.Summary = make([]responses.SummaryPart, 0, len(indexes))
		for _, index := range indexes {
			summary := s.summaries[index]
			part := summary.part
			if !summary.frozen {
				part.Text = summary.text.value()
			}
			item.Summary = append(item.Summary, part)
		}
	}
	if value := s.arguments.value(); value != "" {
		item.Arguments = value
	}
	if value := s.input.value(); value != "" {
		item.Input = value
	}
	if value := s.code.value(); value != "" {
		item.Code = value
	}
	return item
}

func (s *partState) assemble() responses.ContentPart {
	if s.frozen {
		return s.part
	}
	part := s.part
	switch part.Type {
	case responses.ContentTypeRefusal:
		part.Refusal = s.text.value()
	default:
		part.Text = s.text.value()
	}
	return part
}
