package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/commitgraph/pkg/errors"
	"github.com/matzehuels/commitgraph/pkg/observability"
)

const writeTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// MessageType tags live messages.
type MessageType string

const (
	MessageRender MessageType = "render"
	MessageError  MessageType = "error"
)

// Message is one live update. Data holds render data JSON for render
// messages.
type Message struct {
	Type  MessageType     `json:"type"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error *errorResponse  `json:"error,omitempty"`
}

func renderMessage(data []byte) Message {
	return Message{Type: MessageRender, Data: data}
}

func errorMessage(err error) Message {
	return Message{Type: MessageError, Error: &errorResponse{Code: errors.GetCode(err), Message: err.Error()}}
}

// hub fans live messages out to websocket clients and remembers the
// latest one for late joiners.
type hub struct {
	logger *log.Logger

	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	last    *Message
}

func newHub(logger *log.Logger) *hub {
	return &hub{logger: logger, clients: make(map[*websocket.Conn]struct{})}
}

func (h *hub) current() (Message, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.last == nil {
		return Message{}, false
	}
	return *h.last, true
}

// publish stores msg and sends it to every client. Clients that fail to
// receive it are dropped.
func (h *hub) publish(ctx context.Context, msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = &msg
	for conn := range h.clients {
		if err := send(conn, msg); err != nil {
			h.logger.Debug("dropping live client", "err", err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
	observability.HTTP().OnLiveClients(ctx, len(h.clients))
}

// add registers conn and sends it the latest message.
func (h *hub) add(ctx context.Context, conn *websocket.Conn) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.last != nil {
		if err := send(conn, *h.last); err != nil {
			return err
		}
	}
	h.clients[conn] = struct{}{}
	observability.HTTP().OnLiveClients(ctx, len(h.clients))
	return nil
}

func (h *hub) remove(ctx context.Context, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
		observability.HTTP().OnLiveClients(ctx, len(h.clients))
	}
}

func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
	}
	h.clients = make(map[*websocket.Conn]struct{})
}

func send(conn *websocket.Conn, msg Message) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(msg)
}

// handleLive upgrades to a websocket and streams live messages until the
// client goes away.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Watch == "" {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no script is being watched"))
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.cfg.Logger.Debug("websocket upgrade", "err", err)
		return
	}
	ctx := context.WithoutCancel(r.Context())
	if err := s.live.add(ctx, conn); err != nil {
		conn.Close()
		return
	}
	defer s.live.remove(ctx, conn)

	// Clients only listen; reading detects disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
