package stream

import (
	"errors"
	"io"

	"github.com/viant/respond/responses"
	"github.com/viant/respond/sse"
)

// Source supplies raw event frames. sse.Reader is the HTTP source; other
// transports plug in by yielding the same frames.
type Source interface {
	Next() (*sse.Frame, error)
}

// Option customizes a stream.
type Option func(*Stream)

// WithCloser attaches the underlying transport so Close releases it.
func WithCloser(closer io.Closer) Option {
	return func(s *Stream) {
		s.closer = closer
	}
}

// WithCancel attaches a cancel func invoked on Close.
func WithCancel(cancel func()) Option {
	return func(s *Stream) {
		s.cancel = cancel
	}
}

// WithLogf installs a diagnostics sink for skipped records and anomalies.
func WithLogf(logf func(format string, args ...interface{})) Option {
	return func(s *Stream) {
		s.logf = logf
		s.agg.SetLogf(logf)
	}
}

// Stream decodes events from a source and folds them into a response as
// they arrive. It is not safe for concurrent use.
type Stream struct {
	source Source
	agg    *Aggregator
	closer io.Closer
	cancel func()
	logf   func(format string, args ...interface{})
	err    error
	ended  bool
}

// NewStream wraps a frame source.
func NewStream(source Source, options ...Option) *Stream {
	result := &Stream{source: source, agg: NewAggregator()}
	for _, option := range options {
		option(result)
	}
	return result
}

// New wraps a raw event stream, typically an HTTP response body.
func New(reader io.Reader, options ...Option) *Stream {
	return NewStream(sse.NewReader(reader), options...)
}

func (s *Stream) logAnomaly(format string, args ...interface{}) {
	if s.logf != nil {
		s.logf(format, args...)
	}
}

// Next returns the next decoded event, folding it into the aggregate.
// io.EOF marks orderly end of stream. A *DecodeError is recoverable: the
// offending record has been skipped and Next may be called again. A
// transport failure after the terminal event was seen is downgraded to
// io.EOF since the final response is already complete.
func (s *Stream) Next() (Event, error) {
	if s.ended {
		return nil, s.err
	}
	for {
		frame, err := s.source.Next()
		if err != nil {
			if err != io.EOF && s.agg.Done() {
				s.logAnomaly("stream closed after terminal event: %v", err)
				err = io.EOF
			}
			s.ended = true
			s.err = err
			return nil, err
		}
		if len(frame.Data) == 0 {
			continue
		}
		event, err := Decode(frame.Data)
		if err != nil {
			s.logAnomaly("skipping malformed record: %v", err)
			return nil, err
		}
		s.agg.Apply(event)
		return event, nil
	}
}

// Response returns the response aggregated so far.
func (s *Stream) Response() *responses.Response {
	return s.agg.Response()
}

// Final returns the terminal response once the stream has ended.
func (s *Stream) Final() (*responses.Response, error) {
	return s.agg.Final()
}

// Collect drains the stream and returns the final response. Malformed
// records are skipped. A transport failure before the terminal event
// returns the partial aggregate alongside the error; a stream that ends
// without a terminal event returns ErrAbnormalTermination.
func (s *Stream) Collect() (*responses.Response, error) {
	for {
		_, err := s.Next()
		if err == nil {
			continue
		}
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			continue
		}
		if err == io.EOF {
			return s.agg.Final()
		}
		if result, finalErr := s.agg.Final(); finalErr != nil && finalErr != ErrAbnormalTermination {
			return result, finalErr
		}
		return s.agg.Response(), err
	}
}

// Close releases the underlying transport.
func (s *Stream) Close() error {
	if s.cancel != nil {
		s.cancel()
	}
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}
