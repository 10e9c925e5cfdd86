package handlers

import (
	"log"
	"net/http"

	"github.com/harlowdev/imposter-arena/internal/room"
	"github.com/harlowdev/imposter-arena/internal/service"
	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// WebSocketHandler upgrades the connection and registers a new room.Client
// with the Hub. The handshake token is optional: the auth collaborator
// treats a null userId as a guest, still allowed to play, so a
// missing or invalid token yields an anonymous session rather than a
// rejected connection.
type WebSocketHandler struct {
	hub         *room.Hub
	authService *service.AuthService
}

func NewWebSocketHandler(hub *room.Hub, authService *service.AuthService) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		authService: authService,
	}
}

func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, isAnonymous := h.resolveIdentity(r.URL.Query().Get("token"))
	sessionID := uuid.NewString()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ERROR [handlers.WebSocketHandler] upgrade failed: %v", err)
		return
	}

	client := room.NewClient(h.hub, conn, sessionID, userID, isAnonymous)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

func (h *WebSocketHandler) resolveIdentity(token string) (userID string, isAnonymous bool) {
	if token == "" {
		return "", true
	}

	claims, err := h.authService.ValidateToken(token)
	if err != nil {
		return "", true
	}

	sub, ok := (*claims)["sub"].(string)
	if !ok {
		return "", true
	}
	return sub, false
}
