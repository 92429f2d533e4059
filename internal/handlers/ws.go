package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/pkjoshua/boltstheover/internal/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The dashboard is served from this process; same-origin in practice
		return true
	},
}

// SocketHandler upgrades dashboard connections that watch a report job
type SocketHandler struct {
	hub *hub.Hub
	ctx context.Context
}

// NewSocketHandler creates a WebSocket handler bound to the hub
func NewSocketHandler(h *hub.Hub, ctx context.Context) *SocketHandler {
	return &SocketHandler{hub: h, ctx: ctx}
}

// HandleJobSocket streams status transitions for one job over WebSocket
func (s *SocketHandler) HandleJobSocket(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	if jobID == "" {
		http.Error(w, "job id is required", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		fmt.Printf("⚠️  WebSocket upgrade error: %v\n", err)
		return
	}

	c := hub.NewClient(uuid.New().String(), jobID, conn, s.hub)
	s.hub.Register(c)

	// Use the service context, not the request context, so the pumps
	// outlive the upgrade request
	go c.WritePump(s.ctx)
	go c.ReadPump(s.ctx)
}
