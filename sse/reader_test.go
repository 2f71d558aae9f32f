package sse

import (
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_Next(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		oneByte     bool
		expected    []*Frame
		expectedErr error
	}{
		{
			description: "frames with event hint and sentinel",
			input: "event: response.created\n" +
				`data: {"type":"response.created"}` + "\n\n" +
				"event: response.completed\n" +
				`data: {"type":"response.completed"}` + "\n\n" +
				"data: [DONE]\n\n",
			expected: []*Frame{
				{Event: "response.created", Data: []byte(`{"type":"response.created"}`)},
				{Event: "response.completed", Data: []byte(`{"type":"response.completed"}`)},
			},
			expectedErr: io.EOF,
		},
		{
			description: "multi-line data joined with newline",
			input:       "data: first\ndata: second\n\ndata: [DONE]\n\n",
			expected: []*Frame{
				{Data: []byte("first\nsecond")},
			},
			expectedErr: io.EOF,
		},
		{
			description: "crlf line endings",
			input:       "event: ping\r\ndata: {}\r\n\r\ndata: [DONE]\r\n\r\n",
			expected: []*Frame{
				{Event: "ping", Data: []byte("{}")},
			},
			expectedErr: io.EOF,
		},
		{
			description: "comments and unknown fields ignored",
			input:       ": keep-alive\nid: 42\nretry: 1000\ndata: payload\n\ndata: [DONE]\n\n",
			expected: []*Frame{
				{Data: []byte("payload")},
			},
			expectedErr: io.EOF,
		},
		{
			description: "blank record without data produces no frame",
			input:       "event: noop\n\ndata: later\n\ndata: [DONE]\n\n",
			expected: []*Frame{
				{Data: []byte("later")},
			},
			expectedErr: io.EOF,
		},
		{
			description: "single byte chunking preserves framing",
			input:       "event: delta\ndata: abc\n\ndata: [DONE]\n\n",
			oneByte:     true,
			expected: []*Frame{
				{Event: "delta", Data: []byte("abc")},
			},
			expectedErr: io.EOF,
		},
		{
			description: "transport close without sentinel",
			input:       "data: one\n\n",
			expected: []*Frame{
				{Data: []byte("one")},
			},
			expectedErr: io.ErrUnexpectedEOF,
		},
		{
			description: "trailing frame without terminator is flushed",
			input:       "data: one\n\ndata: two",
			expected: []*Frame{
				{Data: []byte("one")},
				{Data: []byte("two")},
			},
			expectedErr: io.ErrUnexpectedEOF,
		},
		{
			description: "trailing sentinel without terminator ends cleanly",
			input:       "data: one\n\ndata: [DONE]",
			expected: []*Frame{
				{Data: []byte("one")},
			},
			expectedErr: io.EOF,
		},
		{
			description: "data without space after colon",
			input:       "data:tight\n\ndata: [DONE]\n\n",
			expected: []*Frame{
				{Data: []byte("tight")},
			},
			expectedErr: io.EOF,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			var src io.Reader = strings.NewReader(tc.input)
			if tc.oneByte {
				src = iotest.OneByteReader(src)
			}
			reader := NewReader(src)
			var actual []*Frame
			var err error
			for {
				var frame *Frame
				frame, err = reader.Next()
				if err != nil {
					break
				}
				actual = append(actual, frame)
			}
			assert.EqualValues(t, tc.expected, actual, tc.description)
			assert.Equal(t, tc.expectedErr, err, tc.description)
		})
	}
}

func TestReader_SentinelStopsFurtherReads(t *testing.T) {
	reader := NewReader(strings.NewReader("data: [DONE]\n\ndata: after\n\n"))
	frame, err := reader.Next()
	require.Nil(t, frame)
	require.Equal(t, io.EOF, err)
	assert.True(t, reader.Done())

	frame, err = reader.Next()
	assert.Nil(t, frame)
	assert.Equal(t, io.EOF, err)
}

func TestReader_TransportError(t *testing.T) {
	broken := io.MultiReader(
		strings.NewReader("data: one\n\n"),
		iotest.ErrReader(assert.AnError),
	)
	reader := NewReader(broken)
	frame, err := reader.Next()
	require.NoError(t, err)
	assert.Equal(t, "one", string(frame.Data))

	_, err = reader.Next()
	assert.Equal(t, assert.AnError, err)
	_, err = reader.Next()
	assert.Equal(t, assert.AnError, err)
}
