package hub

import (
	"context"
	"fmt"
	"sync"

	"github.com/pkjoshua/boltstheover/internal/jobs"
)

// Hub maintains the set of connected dashboard clients and fans job status
// updates out to the clients watching each job.
type Hub struct {
	clients   map[*Client]bool
	clientsMu sync.RWMutex

	// Inbound updates from the job runner
	broadcast chan jobs.Update

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan jobs.Update, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run(ctx context.Context) {
	fmt.Println("✓ Job status hub started")

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)

		case update := <-h.broadcast:
			h.broadcastUpdate(update)
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(c *Client) {
	h.unregister <- c
}

// NotifyJob queues a job update for broadcast. Implements jobs.Notifier.
func (h *Hub) NotifyJob(update jobs.Update) {
	select {
	case h.broadcast <- update:
	default:
		// Broadcast buffer full - drop update; clients can still poll
		fmt.Println("⚠️  Job update buffer full, dropping update")
	}
}

func (h *Hub) registerClient(c *Client) {
	h.clientsMu.Lock()
	h.clients[c] = true
	h.clientsMu.Unlock()

	fmt.Printf("✓ Dashboard client connected: %s (job=%s)\n", c.ID, c.JobID)
}

func (h *Hub) unregisterClient(c *Client) {
	h.clientsMu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.Send)
	}
	h.clientsMu.Unlock()
}

// broadcastUpdate delivers an update to every client watching that job.
func (h *Hub) broadcastUpdate(update jobs.Update) {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()

	for c := range h.clients {
		if c.JobID != update.JobID {
			continue
		}
		select {
		case c.Send <- update:
		default:
			// Slow client - skip this update rather than block the hub
		}
	}
}

func (h *Hub) shutdown() {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()

	for c := range h.clients {
		close(c.Send)
		delete(h.clients, c)
	}

	fmt.Println("✓ Job status hub stopped")
}
