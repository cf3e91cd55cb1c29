package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"gizindir-panel/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // panel is served without auth on an internal network
	},
}

// wsRequest is a message sent by a dashboard client
type wsRequest struct {
	Type string `json:"type"`
}

// WebSocketHandler streams live dashboard updates
type WebSocketHandler struct {
	hub *services.WSHub
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(hub *services.WSHub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// HandleWebSocket handles GET /api/dashboard/ws
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	// the server's ReadTimeout still applies to the hijacked connection
	conn.SetReadDeadline(time.Time{})

	clientID := h.hub.Register(conn)
	defer h.hub.Unregister(clientID)

	ctx := r.Context()
	if err := h.hub.SendCounts(ctx, clientID); err != nil {
		log.Error().Err(err).Str("client_id", clientID).Msg("Failed to send initial counts")
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error().Err(err).Str("client_id", clientID).Msg("WebSocket error")
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(data, &req); err != nil {
			log.Warn().Err(err).Str("client_id", clientID).Msg("Failed to parse WebSocket message")
			continue
		}

		switch req.Type {
		case "refresh":
			if err := h.hub.SendCounts(ctx, clientID); err != nil {
				log.Error().Err(err).Str("client_id", clientID).Msg("Failed to send counts")
			}
		default:
			log.Debug().Str("client_id", clientID).Str("type", req.Type).Msg("Ignoring WebSocket message")
		}
	}
}
