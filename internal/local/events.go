package local

import (
	"crypto/tls"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// JSON-API WAMP-style message codes used by the local WebSocket.
const (
	eventSubscribe = 5
	eventMessage   = 8
)

const presenceEvent = "OnJsonApiEvent_chat_v4_presences"

// PresenceHandler is invoked whenever the chat service reports a
// presence change.
type PresenceHandler func()

// PresenceStream subscribes to presence-change events on the local
// client's WebSocket so the app can refresh without polling.
type PresenceStream struct {
	conn      *websocket.Conn
	mu        sync.Mutex
	connected bool
	stop      chan struct{}
	handler   PresenceHandler
}

// NewPresenceStream creates an unconnected stream.
func NewPresenceStream() *PresenceStream {
	return &PresenceStream{stop: make(chan struct{})}
}

// SetHandler sets the callback for presence events. Must be called
// before Connect.
func (s *PresenceStream) SetHandler(handler PresenceHandler) {
	s.handler = handler
}

// Connect dials the local WebSocket with the lockfile credentials and
// subscribes to presence events.
func (s *PresenceStream) Connect(lockfile Lockfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.connected {
		return nil
	}

	dialer := websocket.Dialer{
		TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
	}

	url := fmt.Sprintf("wss://127.0.0.1:%d", lockfile.Port)
	header := http.Header{}
	auth := base64.StdEncoding.EncodeToString([]byte("riot:" + lockfile.Password))
	header.Set("Authorization", "Basic "+auth)

	conn, _, err := dialer.Dial(url, header)
	if err != nil {
		return fmt.Errorf("dial local websocket: %w", err)
	}

	if err := conn.WriteJSON([]interface{}{eventSubscribe, presenceEvent}); err != nil {
		conn.Close()
		return fmt.Errorf("subscribe to presences: %w", err)
	}

	s.conn = conn
	s.connected = true

	go s.listen()
	return nil
}

func (s *PresenceStream) listen() {
	defer func() {
		s.mu.Lock()
		s.connected = false
		if s.conn != nil {
			s.conn.Close()
		}
		s.mu.Unlock()
	}()

	for {
		select {
		case <-s.stop:
			return
		default:
			_, message, err := s.conn.ReadMessage()
			if err != nil {
				return
			}
			s.handleMessage(message)
		}
	}
}

func (s *PresenceStream) handleMessage(data []byte) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || len(raw) < 3 {
		return
	}

	var code int
	if err := json.Unmarshal(raw[0], &code); err != nil || code != eventMessage {
		return
	}

	var event string
	if err := json.Unmarshal(raw[1], &event); err != nil || event != presenceEvent {
		return
	}

	if s.handler != nil {
		s.handler()
	}
}

// Disconnect closes the stream. The stream can be reconnected afterward.
func (s *PresenceStream) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()

	close(s.stop)
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
	s.connected = false
	s.stop = make(chan struct{})
}

// IsConnected reports whether the stream is live.
func (s *PresenceStream) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}
