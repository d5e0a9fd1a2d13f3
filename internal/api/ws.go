package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/MikeSquared-Agency/synthpanel/internal/chat"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 8 * 1024
)

// Envelope types on the chat socket.
const (
	wsMessage = "message"
	wsTyping  = "typing"
	wsReply   = "reply"
	wsError   = "error"
	wsClosed  = "closed"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are enforced by the CORS configuration and the bearer token.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type wsEnvelope struct {
	Type    string          `json:"type"`
	Text    string          `json:"text,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// chatSocket handles GET /api/v1/chat/sessions/{id}/ws. The client sends
// {"type":"message","text":"..."}; the server answers with a typing
// envelope followed by a reply (or error) envelope.
func (s *Server) chatSocket(w http.ResponseWriter, r *http.Request) {
	sess, err := s.chats.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.chatError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "session_id", sess.ID(), "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	// Closing the session ends the socket.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-sess.Done():
			conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, wsClosed),
				time.Now().Add(writeWait))
			conn.Close()
		case <-stop:
		}
	}()

	for {
		var in wsEnvelope
		if err := conn.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read failed", "session_id", sess.ID(), "error", err)
			}
			return
		}
		if in.Type != wsMessage {
			if err := send(conn, wsError, map[string]string{"error": "unsupported message type"}); err != nil {
				return
			}
			continue
		}

		if err := send(conn, wsTyping, nil); err != nil {
			return
		}
		reply, err := s.chats.Send(r.Context(), sess.ID(), in.Text)
		if err != nil {
			if errors.Is(err, chat.ErrSessionClosed) {
				return
			}
			if err := send(conn, wsError, map[string]string{"error": err.Error()}); err != nil {
				return
			}
			continue
		}
		if err := send(conn, wsReply, reply); err != nil {
			return
		}
	}
}

func send(conn *websocket.Conn, typ string, payload any) error {
	env := wsEnvelope{Type: typ}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		env.Payload = raw
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}
