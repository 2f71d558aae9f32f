package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/viant/respond/sse"
	"github.com/viant/respond/stream"
)

type wsCreateRequest struct {
	Type string `json:"type"`
	*Request
}

// wsSource adapts a websocket connection to the stream source contract.
// Each text message carries one event payload; the stream ends when a
// terminal event has been delivered.
type wsSource struct {
	conn     *websocket.Conn
	terminal bool
}

func wsTerminalKind(kind string) bool {
	switch kind {
	case stream.KindResponseCompleted, stream.KindResponseFailed,
		stream.KindResponseIncomplete, stream.KindError:
		return true
	}
	return false
}

func (s *wsSource) Next() (*sse.Frame, error) {
	if s.terminal {
		return nil, io.EOF
	}
	for {
		messageType, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		if messageType != websocket.TextMessage && messageType != websocket.BinaryMessage {
			continue
		}
		var probe struct {
			Type string `json:"type"`
		}
		if json.Unmarshal(raw, &probe) == nil && wsTerminalKind(probe.Type) {
			s.terminal = true
		}
		return &sse.Frame{Event: probe.Type, Data: raw}, nil
	}
}

func wsEndpoint(baseURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/") + "/responses")
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	switch strings.ToLower(parsed.Scheme) {
	case "https":
		parsed.Scheme = "wss"
	case "http":
		parsed.Scheme = "ws"
	}
	return parsed.String(), nil
}

// CreateStreamSocket runs a streaming request over a websocket instead of
// HTTP. The caller owns the returned stream and must Close it.
func (c *Client) CreateStreamSocket(ctx context.Context, request *Request) (*stream.Stream, error) {
	key, err := c.key(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve API key: %w", err)
	}
	endpoint, err := wsEndpoint(c.baseURL)
	if err != nil {
		return nil, err
	}
	header := http.Header{}
	if key != "" {
		header.Set("Authorization", "Bearer "+key)
	}
	header.Set("session_id", uuid.NewString())
	for name, value := range c.headers {
		header.Set(name, value)
	}
	dialer := websocket.Dialer{HandshakeTimeout: 30 * time.Second, EnableCompression: true}
	c.logf("dialing %v", endpoint)
	conn, _, err := dialer.DialContext(ctx, endpoint, header)
	if err != nil {
		return nil, fmt.Errorf("websocket dial failed: %w", err)
	}
	_ = conn.SetReadDeadline(time.Time{})

	payload := *request
	payload.Stream = true
	create := wsCreateRequest{Type: "response.create", Request: &payload}
	body, err := json.Marshal(create)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, body); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	options := []stream.Option{stream.WithCloser(conn)}
	if c.enableLogging {
		options = append(options, stream.WithLogf(c.logf))
	}
	return stream.NewStream(&wsSource{conn: conn}, options...), nil
}
