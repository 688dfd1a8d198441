package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/poe2genie/internal/assistant"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// chatRequest is the incoming WebSocket message format.
type chatRequest struct {
	Type    string `json:"type"` // "ask"
	Content string `json:"content"`
}

// chatResponse is the outgoing WebSocket message format.
type chatResponse struct {
	Type      string `json:"type"` // "session", "response" or "error"
	SessionID string `json:"session_id"`
	Content   string `json:"content"`
	HTML      string `json:"html,omitempty"`
}

// chatConn serialises writes to one socket. Answers are dropped once the
// connection context is done.
type chatConn struct {
	conn      *websocket.Conn
	ctx       context.Context
	sessionID string
	logger    *zap.Logger

	mu sync.Mutex
}

func (c *chatConn) send(resp chatResponse) {
	if c.ctx.Err() != nil {
		c.logger.Debug("dropping answer for closed chat", zap.String("session_id", c.sessionID))
		return
	}
	resp.SessionID = c.sessionID
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(resp); err != nil {
		c.logger.Warn("websocket write failed", zap.String("session_id", c.sessionID), zap.Error(err))
	}
}

func (c *chatConn) sendError(message string) {
	c.send(chatResponse{Type: "error", Content: message})
}

func (w *Web) handleWebSocket(rw http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(rw, r, nil)
	if err != nil {
		w.Logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	c := &chatConn{
		conn:      conn,
		ctx:       ctx,
		sessionID: uuid.NewString(),
		logger:    w.Logger,
	}
	var inflight sync.WaitGroup
	defer inflight.Wait()
	defer cancel()

	w.Logger.Debug("chat session opened", zap.String("session_id", c.sessionID))
	c.send(chatResponse{Type: "session"})

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				w.Logger.Warn("websocket read failed", zap.String("session_id", c.sessionID), zap.Error(err))
			}
			return
		}

		var req chatRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			c.sendError("invalid message format")
			continue
		}
		if req.Type != "ask" {
			c.sendError("unknown message type: " + req.Type)
			continue
		}
		question := strings.TrimSpace(req.Content)
		if question == "" {
			c.sendError("Question is required")
			continue
		}

		inflight.Add(1)
		go func() {
			defer inflight.Done()
			w.answer(c, question)
		}()
	}
}

func (w *Web) answer(c *chatConn, question string) {
	answer, err := w.Gateway.Ask(c.ctx, question, assistant.QuestionSystemPrompt)
	if err != nil {
		c.sendError(err.Error())
		return
	}
	c.send(chatResponse{
		Type:    "response",
		Content: answer,
		HTML:    string(w.renderMarkdown(answer)),
	})
}
