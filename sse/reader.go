// Package sse splits a server-sent-event byte stream into discrete frames,
// independent of how the transport chunked the bytes.
package sse

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// doneSentinel is the data payload that marks normal end of stream.
const doneSentinel = "[DONE]"

// MaxFrameSize caps how many bytes a single frame may buffer before the
// reader gives up on the stream.
const MaxFrameSize = 1 << 20

// ErrFrameTooLarge reports a frame exceeding MaxFrameSize.
var ErrFrameTooLarge = errors.New("sse: frame exceeds size limit")

// Frame is one delimited wire record: the optional event-type hint and the
// payload joined from its data lines.
type Frame struct {
	Event string
	Data  []byte
}

// Reader incrementally parses frames out of an io.Reader. It is not
// restartable; a fresh connection requires a fresh Reader.
type Reader struct {
	src io.Reader
	buf []byte
	tmp []byte

	event string
	data  []byte

	done bool
	err  error
}

// NewReader returns a Reader over the transport byte stream.
func NewReader(src io.Reader) *Reader {
	return &Reader{src: src, tmp: make([]byte, 4096)}
}

// Done reports whether the end-of-stream sentinel has been observed.
func (r *Reader) Done() bool { return r.done }

// Next returns the next complete frame. It returns io.EOF once the sentinel
// payload has been seen and produces no further frames even if more bytes
// arrive. A transport close without the sentinel yields io.ErrUnexpectedEOF
// so callers can tell "server said done" from "connection broke"; any other
// transport error is returned as-is.
func (r *Reader) Next() (*Frame, error) {
	if r.done {
		return nil, io.EOF
	}
	if r.err != nil {
		return nil, r.err
	}
	for {
		if frame, ok := r.scan(); ok {
			if frame == nil {
				return nil, io.EOF
			}
			return frame, nil
		}
		if len(r.buf)+len(r.data) > MaxFrameSize {
			r.err = ErrFrameTooLarge
			return nil, r.err
		}
		n, err := r.src.Read(r.tmp)
		if n > 0 {
			r.buf = append(r.buf, r.tmp[:n]...)
			continue
		}
		if err == nil {
			continue
		}
		if err == io.EOF {
			// Flush a trailing frame that was never blank-line terminated.
			if frame := r.flush(); frame != nil {
				r.err = io.ErrUnexpectedEOF
				return frame, nil
			}
			if r.done {
				return nil, io.EOF
			}
			r.err = io.ErrUnexpectedEOF
			return nil, r.err
		}
		r.err = err
		return nil, r.err
	}
}

// scan consumes complete lines from the buffer. It reports true when a frame
// boundary was reached; a nil frame with ok=true means the sentinel was seen.
func (r *Reader) scan() (*Frame, bool) {
	for {
		idx := bytes.IndexByte(r.buf, '\n')
		if idx == -1 {
			return nil, false
		}
		line := string(bytes.TrimRight(r.buf[:idx], "\r"))
		r.buf = r.buf[idx+1:]

		if line == "" {
			if len(r.data) == 0 {
				r.event = ""
				continue
			}
			frame := r.take()
			if string(frame.Data) == doneSentinel {
				r.done = true
				return nil, true
			}
			return frame, true
		}
		r.field(line)
	}
}

// field applies one non-blank line to the in-progress frame.
func (r *Reader) field(line string) {
	switch {
	case strings.HasPrefix(line, ":"):
		// comment
	case strings.HasPrefix(line, "event:"):
		r.event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
	case strings.HasPrefix(line, "data:"):
		payload := strings.TrimPrefix(line, "data:")
		payload = strings.TrimPrefix(payload, " ")
		if len(r.data) > 0 {
			r.data = append(r.data, '\n')
		}
		r.data = append(r.data, payload...)
	default:
		// id:, retry: and unknown fields are ignored
	}
}

func (r *Reader) take() *Frame {
	frame := &Frame{Event: r.event, Data: r.data}
	r.event = ""
	r.data = nil
	return frame
}

func (r *Reader) flush() *Frame {
	if len(r.data) == 0 {
		return nil
	}
	frame := r.take()
	if string(frame.Data) == doneSentinel {
		frame = nil
		r.done = true
	}
	return frame
}

func (f *Frame) String() string {
	if f == nil {
		return "<nil>"
	}
	return fmt.Sprintf("event=%s data=%s", f.Event, f.Data)
}
