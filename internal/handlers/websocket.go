package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Justraymond99/headcrackbot/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		return true
	},
}

// WSHandler upgrades dashboard connections and attaches them to the hub.
type WSHandler struct {
	hub *ws.Hub
	ctx context.Context
}

// NewWSHandler creates a WebSocket handler bound to the service context.
func NewWSHandler(hub *ws.Hub, ctx context.Context) *WSHandler {
	return &WSHandler{
		hub: hub,
		ctx: ctx,
	}
}

// HandleWebSocket upgrades HTTP connections to WebSocket.
func (h *WSHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		fmt.Printf("⚠️  WebSocket upgrade error: %v\n", err)
		return
	}

	clientID := uuid.New().String()
	c := ws.NewClient(clientID, conn, h.hub)

	h.hub.Register(c)

	// Pumps run on the service context, not the upgrade request's
	go c.WritePump(h.ctx)
	go c.ReadPump(h.ctx)

	fmt.Printf("✓ WebSocket connection established: %s\n", clientID)
}

// HandleMetrics returns hub metrics.
func (h *WSHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.hub.GetMetrics())
}
