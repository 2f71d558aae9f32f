package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	testCases := []struct {
		description string
		data        string
		expected    Event
	}{
		{
			description: "output_text delta",
			data:        `{"type":"response.output_text.delta","sequence_number":7,"item_id":"msg_1","output_index":0,"content_index":0,"delta":"Hel"}`,
			expected: &OutputTextDelta{
				Meta:   Meta{SequenceNumber: 7},
				ItemID: "msg_1",
				Delta:  "Hel",
			},
		},
		{
			description: "function_call_arguments done carries name",
			data:        `{"type":"response.function_call_arguments.done","sequence_number":12,"item_id":"fc_1","output_index":1,"name":"get_weather","arguments":"{\"city\":\"Paris\"}"}`,
			expected: &FunctionCallArgumentsDone{
				Meta:        Meta{SequenceNumber: 12},
				ItemID:      "fc_1",
				OutputIndex: 1,
				Name:        "get_weather",
				Arguments:   `{"city":"Paris"}`,
			},
		},
		{
			description: "partial image frame",
			data:        `{"type":"response.image_generation_call.partial_image","sequence_number":3,"output_index":0,"item_id":"img_1","partial_image_index":1,"partial_image_b64":"aW1n"}`,
			expected: &ImageGenerationCallPartialImage{
				Meta:              Meta{SequenceNumber: 3},
				ItemID:            "img_1",
				PartialImageIndex: 1,
				PartialImageB64:   "aW1n",
			},
		},
		{
			description: "error event",
			data:        `{"type":"error","sequence_number":9,"code":"rate_limit_exceeded","message":"slow down","param":null}`,
			expected: &ErrorEvent{
				Meta:    Meta{SequenceNumber: 9},
				Code:    "rate_limit_exceeded",
				Message: "slow down",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			actual, err := Decode([]byte(tc.data))
			require.NoError(t, err, tc.description)
			assert.EqualValues(t, tc.expected, actual, tc.description)
		})
	}
}

func TestDecode_Unknown(t *testing.T) {
	data := `{"type":"response.audio.delta","sequence_number":4,"delta":"UklGR"}`
	actual, err := Decode([]byte(data))
	require.NoError(t, err)

	unknown, ok := actual.(*Unknown)
	require.True(t, ok)
	assert.Equal(t, "response.audio.delta", unknown.Kind())
	assert.Equal(t, uint64(4), unknown.Seq())
	assert.JSONEq(t, data, string(unknown.Raw))
}

func TestDecode_Errors(t *testing.T) {
	testCases := []struct {
		description string
		data        string
	}{
		{
			description: "not json",
			data:        `{"type": "resp`,
		},
		{
			description: "missing type",
			data:        `{"sequence_number":1}`,
		},
		{
			description: "known type with mismatched shape",
			data:        `{"type":"response.output_text.delta","output_index":"zero"}`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			actual, err := Decode([]byte(tc.data))
			assert.Nil(t, actual, tc.description)
			var decodeErr *DecodeError
			require.ErrorAs(t, err, &decodeErr, tc.description)
			assert.Equal(t, tc.data, string(decodeErr.Data), tc.description)
		})
	}
}
