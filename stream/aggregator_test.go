package stream

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/respond/responses"
)

func TestAggregator_TextAccumulation(t *testing.T) {
	agg := NewAggregator()
	seq := uint64(0)
	next := func() uint64 { seq++; return seq }

	agg.Apply(&ResponseCreated{
		Meta:     Meta{SequenceNumber: next()},
		Response: &responses.Response{ID: "resp_1", Status: responses.StatusInProgress, Model: "gpt-test"},
	})
	agg.Apply(&OutputItemAdded{
		Meta: Meta{SequenceNumber: next()},
		Item: responses.OutputItem{ID: "msg_1", Type: responses.ItemTypeMessage, Role: "assistant"},
	})
	agg.Apply(&ContentPartAdded{
		Meta: Meta{SequenceNumber: next()},
		Part: responses.ContentPart{Type: responses.ContentTypeOutputText},
	})
	for _, delta := range []string{"Hel", "lo ", "world"} {
		agg.Apply(&OutputTextDelta{Meta: Meta{SequenceNumber: next()}, Delta: delta})
	}
	assert.False(t, agg.Done())
	assert.Equal(t, "Hello world", agg.Response().OutputText())

	agg.Apply(&OutputTextDone{Meta: Meta{SequenceNumber: next()}, Text: "Hello world"})
	agg.Apply(&ContentPartDone{
		Meta: Meta{SequenceNumber: next()},
		Part: responses.ContentPart{Type: responses.ContentTypeOutputText, Text: "Hello world"},
	})
	agg.Apply(&OutputItemDone{
		Meta: Meta{SequenceNumber: next()},
		Item: responses.OutputItem{
			ID: "msg_1", Type: responses.ItemTypeMessage, Role: "assistant", Status: "completed",
			Content: []responses.ContentPart{{Type: responses.ContentTypeOutputText, Text: "Hello world"}},
		},
	})
	final := &responses.Response{
		ID: "resp_1", Status: responses.StatusCompleted, Model: "gpt-test",
		Output: []responses.OutputItem{{
			ID: "msg_1", Type: responses.ItemTypeMessage, Role: "assistant", Status: "completed",
			Content: []responses.ContentPart{{Type: responses.ContentTypeOutputText, Text: "Hello world"}},
		}},
		Usage: &responses.Usage{InputTokens: 4, OutputTokens: 3, TotalTokens: 7},
	}
	agg.Apply(&ResponseCompleted{Meta: Meta{SequenceNumber: next()}, Response: final})

	require.True(t, agg.Done())
	actual, err := agg.Final()
	require.NoError(t, err)
	assert.Same(t, final, actual)
	assert.Equal(t, "Hello world", actual.OutputText())
}

func TestAggregator_DoneOverridesDeltas(t *testing.T) {
	agg := NewAggregator()
	agg.Apply(&OutputTextDelta{Meta: Meta{SequenceNumber: 1}, Delta: "partial gar"})
	agg.Apply(&OutputTextDone{Meta: Meta{SequenceNumber: 2}, Text: "authoritative"})
	// Late delta after done must not reopen the slot.
	agg.Apply(&OutputTextDelta{Meta: Meta{SequenceNumber: 3}, Delta: "bage"})

	assert.Equal(t, "authoritative", agg.Response().OutputText())
}

func TestAggregator_ImplicitSlots(t *testing.T) {
	// Deltas may arrive for indexes never announced by added events.
	agg := NewAggregator()
	agg.Apply(&OutputTextDelta{Meta: Meta{SequenceNumber: 1}, OutputIndex: 2, ContentIndex: 1, Delta: "late"})
	agg.Apply(&OutputTextDelta{Meta: Meta{SequenceNumber: 2}, OutputIndex: 0, ContentIndex: 0, Delta: "early"})

	output := agg.Response().Output
	require.Len(t, output, 2)
	assert.Equal(t, "early", output[0].Content[0].Text)
	assert.Equal(t, "late", output[1].Content[0].Text)
}

func TestAggregator_FunctionCallArguments(t *testing.T) {
	agg := NewAggregator()
	agg.Apply(&OutputItemAdded{
		Meta:        Meta{SequenceNumber: 1},
		OutputIndex: 0,
		Item:        responses.OutputItem{ID: "fc_1", Type: responses.ItemTypeFunctionCall, CallID: "call_1"},
	})
	for i, delta := range []string{`{"city"`, `:"Paris"`, `}`} {
		agg.Apply(&FunctionCallArgumentsDelta{
			Meta:   Meta{SequenceNumber: uint64(2 + i)},
			ItemID: "fc_1",
			Delta:  delta,
		})
	}
	agg.Apply(&FunctionCallArgumentsDone{
		Meta:      Meta{SequenceNumber: 5},
		ItemID:    "fc_1",
		Name:      "get_weather",
		Arguments: `{"city":"Paris"}`,
	})

	output := agg.Response().Output
	require.Len(t, output, 1)
	assert.Equal(t, `{"city":"Paris"}`, output[0].Arguments)
	assert.Equal(t, "get_weather", output[0].Name)
	assert.Equal(t, "call_1", output[0].CallID)
}

func TestAggregator_SummaryDoneWithoutDeltas(t *testing.T) {
	agg := NewAggregator()
	agg.Apply(&OutputItemAdded{
		Meta: Meta{SequenceNumber: 1},
		Item: responses.OutputItem{ID: "rs_1", Type: responses.ItemTypeReasoning},
	})
	agg.Apply(&ReasoningSummaryPartDone{
		Meta:         Meta{SequenceNumber: 2},
		SummaryIndex: 0,
		Part:         responses.SummaryPart{Type: responses.SummaryTypeText, Text: "thought about it"},
	})
	agg.Apply(&ReasoningSummaryTextDelta{Meta: Meta{SequenceNumber: 3}, SummaryIndex: 1, Delta: "then "})
	agg.Apply(&ReasoningSummaryTextDone{Meta: Meta{SequenceNumber: 4}, SummaryIndex: 1, Text: "then acted"})

	output := agg.Response().Output
	require.Len(t, output, 1)
	require.Len(t, output[0].Summary, 2)
	assert.Equal(t, "thought about it", output[0].Summary[0].Text)
	assert.Equal(t, "then acted", output[0].Summary[1].Text)
}

func TestAggregator_RefusalAndReasoningText(t *testing.T) {
	agg := NewAggregator()
	agg.Apply(&RefusalDelta{Meta: Meta{SequenceNumber: 1}, OutputIndex: 0, Delta: "I can"})
	agg.Apply(&RefusalDone{Meta: Meta{SequenceNumber: 2}, OutputIndex: 0, Refusal: "I cannot help with that"})
	agg.Apply(&ReasoningTextDelta{Meta: Meta{SequenceNumber: 3}, OutputIndex: 1, Delta: "hmm"})

	output := agg.Response().Output
	require.Len(t, output, 2)
	assert.Equal(t, responses.ContentTypeRefusal, output[0].Content[0].Type)
	assert.Equal(t, "I cannot help with that", output[0].Content[0].Refusal)
	assert.Equal(t, responses.ContentTypeReasoningText, output[1].Content[0].Type)
	assert.Equal(t, "hmm", output[1].Content[0].Text)
}

func TestAggregator_CodeAndCustomToolInput(t *testing.T) {
	agg := NewAggregator()
	agg.Apply(&CodeInterpreterCallCodeDelta{Meta: Meta{SequenceNumber: 1}, OutputIndex: 0, Delta: "print("})
	agg.Apply(&CodeInterpreterCallCodeDone{Meta: Meta{SequenceNumber: 2}, OutputIndex: 0, Code: `print("hi")`})
	agg.Apply(&CustomToolCallInputDelta{Meta: Meta{SequenceNumber: 3}, OutputIndex: 1, Delta: "lint "})
	agg.Apply(&CustomToolCallInputDelta{Meta: Meta{SequenceNumber: 4}, OutputIndex: 1, Delta: "--fix"})

	output := agg.Response().Output
	require.Len(t, output, 2)
	assert.Equal(t, `print("hi")`, output[0].Code)
	assert.Equal(t, "lint --fix", output[1].Input)
}

func TestAggregator_StaleSequenceIgnored(t *testing.T) {
	var logged []string
	agg := NewAggregator()
	agg.SetLogf(func(format string, args ...interface{}) {
		logged = append(logged, fmt.Sprintf(format, args...))
	})
	agg.Apply(&OutputTextDelta{Meta: Meta{SequenceNumber: 5}, Delta: "keep"})
	agg.Apply(&OutputTextDelta{Meta: Meta{SequenceNumber: 3}, Delta: " drop"})
	agg.Apply(&OutputTextDelta{Meta: Meta{SequenceNumber: 6}, Delta: " keep"})

	assert.Equal(t, "keep keep", agg.Response().OutputText())
	require.Len(t, logged, 1)
	assert.Contains(t, logged[0], "stale")
}

func TestAggregator_Final(t *testing.T) {
	t.Run("failed response surfaces embedded error", func(t *testing.T) {
		agg := NewAggregator()
		failed := &responses.Response{
			ID:     "resp_1",
			Status: responses.StatusFailed,
			Error:  &responses.Error{Code: "model_not_found", Message: "no such model"},
		}
		agg.Apply(&ResponseFailed{Meta: Meta{SequenceNumber: 1}, Response: failed})

		actual, err := agg.Final()
		assert.Same(t, failed, actual)
		require.Error(t, err)
		assert.Equal(t, failed.Error, err)
	})

	t.Run("incomplete response is not an error", func(t *testing.T) {
		agg := NewAggregator()
		incomplete := &responses.Response{
			ID:                "resp_1",
			Status:            responses.StatusIncomplete,
			IncompleteDetails: &responses.IncompleteDetails{Reason: "max_output_tokens"},
		}
		agg.Apply(&ResponseIncomplete{Meta: Meta{SequenceNumber: 1}, Response: incomplete})

		actual, err := agg.Final()
		assert.NoError(t, err)
		assert.Same(t, incomplete, actual)
	})

	t.Run("error event returns partial aggregate", func(t *testing.T) {
		agg := NewAggregator()
		agg.Apply(&OutputTextDelta{Meta: Meta{SequenceNumber: 1}, Delta: "par"})
		agg.Apply(&ErrorEvent{Meta: Meta{SequenceNumber: 2}, Code: "server_error", Message: "boom"})

		actual, err := agg.Final()
		assert.Equal(t, "par", actual.OutputText())
		var apiErr *responses.Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "server_error", apiErr.Code)
	})

	t.Run("no terminal event", func(t *testing.T) {
		agg := NewAggregator()
		agg.Apply(&OutputTextDelta{Meta: Meta{SequenceNumber: 1}, Delta: "par"})

		actual, err := agg.Final()
		assert.Equal(t, "par", actual.OutputText())
		assert.Equal(t, ErrAbnormalTermination, err)
	})

	t.Run("terminal is idempotent", func(t *testing.T) {
		agg := NewAggregator()
		final := &responses.Response{ID: "resp_1", Status: responses.StatusCompleted}
		agg.Apply(&ResponseCompleted{Meta: Meta{SequenceNumber: 1}, Response: final})
		agg.Apply(&ResponseCompleted{Meta: Meta{SequenceNumber: 1}, Response: final})

		actual, err := agg.Final()
		assert.NoError(t, err)
		assert.Same(t, final, actual)
	})

	t.Run("events after terminal are ignored", func(t *testing.T) {
		agg := NewAggregator()
		agg.Apply(&OutputTextDelta{Meta: Meta{SequenceNumber: 1}, Delta: "par"})
		agg.Apply(&ErrorEvent{Meta: Meta{SequenceNumber: 2}, Code: "server_error", Message: "boom"})
		agg.Apply(&OutputTextDelta{Meta: Meta{SequenceNumber: 3}, Delta: "tial-GARBAGE"})

		actual, err := agg.Final()
		assert.Equal(t, "par", actual.OutputText())
		var apiErr *responses.Error
		require.ErrorAs(t, err, &apiErr)
	})

	t.Run("second distinct terminal is a no-op", func(t *testing.T) {
		agg := NewAggregator()
		completed := &responses.Response{ID: "resp_1", Status: responses.StatusCompleted}
		agg.Apply(&ResponseCompleted{Meta: Meta{SequenceNumber: 1}, Response: completed})
		agg.Apply(&ResponseFailed{
			Meta: Meta{SequenceNumber: 2},
			Response: &responses.Response{
				ID:     "resp_1",
				Status: responses.StatusFailed,
				Error:  &responses.Error{Code: "x", Message: "late failure"},
			},
		})

		actual, err := agg.Final()
		assert.NoError(t, err)
		assert.Same(t, completed, actual)
	})
}
