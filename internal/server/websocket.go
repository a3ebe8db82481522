package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/MeKo-Tech/langid/internal/textutil"
	"github.com/gorilla/websocket"
)

// WebSocket upgrader with reasonable defaults.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin in development
		// In production, you should check against allowed origins
		return true
	},
}

// WebSocketIdentifyRequest is an identification request sent over WebSocket.
type WebSocketIdentifyRequest struct {
	Type      string `json:"type"` // "identify"
	Text      string `json:"text,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// WebSocketIdentifyResponse is the reply for one request.
type WebSocketIdentifyResponse struct {
	Type      string            `json:"type"`
	Status    string            `json:"status"` // "completed", "error"
	Result    *IdentifyResponse `json:"result,omitempty"`
	Error     string            `json:"error,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// identifyWebSocketHandler handles WebSocket connections for interactive
// identification, one request message per reply.
func (s *Server) identifyWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("WebSocket connection established", "remote_addr", r.RemoteAddr)

	s.handleWebSocketConnection(conn)
}

// handleWebSocketConnection processes messages from a WebSocket connection.
func (s *Server) handleWebSocketConnection(conn *websocket.Conn) {
	// Read deadline prevents hanging connections; pongs extend it.
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
				return
			}
		}
	}()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("WebSocket error", "error", err)
			}
			break
		}

		websocketMessagesTotal.WithLabelValues("received").Inc()

		if messageType == websocket.TextMessage {
			s.handleWebSocketMessage(conn, data)
		}
	}
}

// handleWebSocketMessage processes a single identify request message.
func (s *Server) handleWebSocketMessage(conn *websocket.Conn, data []byte) {
	var req WebSocketIdentifyRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.writeWebSocketError(conn, "", "invalid request: "+err.Error())
		return
	}

	if req.Type != "identify" {
		s.writeWebSocketError(conn, req.RequestID, "unsupported message type: "+req.Type)
		return
	}
	if req.Text == "" {
		s.writeWebSocketError(conn, req.RequestID, "empty text")
		return
	}

	result := s.identify(textutil.FromString(req.Text), "websocket", len(req.Text))

	s.writeWebSocketResponse(conn, WebSocketIdentifyResponse{
		Type:      "identify",
		Status:    "completed",
		Result:    &result,
		RequestID: req.RequestID,
	})
}

func (s *Server) writeWebSocketError(conn *websocket.Conn, requestID, message string) {
	s.writeWebSocketResponse(conn, WebSocketIdentifyResponse{
		Type:      "identify",
		Status:    "error",
		Error:     message,
		RequestID: requestID,
	})
}

func (s *Server) writeWebSocketResponse(conn *websocket.Conn, response WebSocketIdentifyResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		slog.Error("Failed to marshal WebSocket response", "error", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("Failed to write WebSocket message", "error", err)
		return
	}
	websocketMessagesTotal.WithLabelValues("sent").Inc()
}
