package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"gizindir-panel/internal/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	wsWriteTimeout  = 10 * time.Second
	countsRefreshIn = 5 * time.Second
	eventQueueSize  = 256
)

// CountsFunc loads a fresh counts snapshot
type CountsFunc func(ctx context.Context) (*models.Counts, error)

// wsClient serialises writes to one connection
type wsClient struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsClient) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// WSHub fans entity change events out to connected dashboards
type WSHub struct {
	mu      sync.RWMutex
	clients map[string]*wsClient
	counts  CountsFunc
	events  chan Event
}

// NewWSHub creates a new WebSocket hub and starts its delivery loop
func NewWSHub(counts CountsFunc) *WSHub {
	h := &WSHub{
		clients: make(map[string]*wsClient),
		counts:  counts,
		events:  make(chan Event, eventQueueSize),
	}
	go h.run()
	return h
}

// Register adds a dashboard connection and returns its id
func (h *WSHub) Register(conn *websocket.Conn) string {
	id := uuid.New().String()

	h.mu.Lock()
	h.clients[id] = &wsClient{conn: conn}
	h.mu.Unlock()

	log.Info().Str("client_id", id).Msg("WebSocket connection registered")
	return id
}

// Unregister removes and closes a dashboard connection
func (h *WSHub) Unregister(id string) {
	h.mu.Lock()
	client, exists := h.clients[id]
	delete(h.clients, id)
	h.mu.Unlock()

	if exists {
		client.conn.Close()
		log.Info().Str("client_id", id).Msg("WebSocket connection unregistered")
	}
}

// ClientCount returns the number of connected dashboards
func (h *WSHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Send writes an event to one connection
func (h *WSHub) Send(id string, evt Event) error {
	h.mu.RLock()
	client, exists := h.clients[id]
	h.mu.RUnlock()

	if !exists {
		return fmt.Errorf("client %s is not connected", id)
	}

	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := client.write(data); err != nil {
		h.Unregister(id)
		return fmt.Errorf("failed to send event: %w", err)
	}
	return nil
}

// Broadcast writes an event to every connection
func (h *WSHub) Broadcast(evt Event) {
	h.mu.RLock()
	ids := make([]string, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	h.mu.RUnlock()

	for _, id := range ids {
		if err := h.Send(id, evt); err != nil {
			log.Warn().Err(err).Str("client_id", id).Msg("Failed to deliver dashboard event")
		}
	}
}

// SendCounts pushes a fresh counts snapshot to one connection
func (h *WSHub) SendCounts(ctx context.Context, id string) error {
	counts, err := h.counts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load counts: %w", err)
	}
	return h.Send(id, Event{Type: "counts", Counts: counts})
}

// Publish implements Publisher. Events are queued for the delivery loop so
// the mutating request never waits on slow dashboards.
func (h *WSHub) Publish(evt Event) {
	if h.ClientCount() == 0 {
		return
	}

	select {
	case h.events <- evt:
	default:
		// the loop is behind and refreshes counts after draining the queue
		log.Warn().Str("entity", evt.Entity).Int64("id", evt.ID).Msg("Dashboard event queue full, dropping event")
	}
}

// run delivers queued events in order. Events that piled up while counts were
// loading share one refresh, taken after all of them.
func (h *WSHub) run() {
	for evt := range h.events {
		h.Broadcast(evt)

	drain:
		for {
			select {
			case next := <-h.events:
				h.Broadcast(next)
			default:
				break drain
			}
		}

		h.refreshCounts()
	}
}

func (h *WSHub) refreshCounts() {
	ctx, cancel := context.WithTimeout(context.Background(), countsRefreshIn)
	defer cancel()

	counts, err := h.counts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to refresh dashboard counts")
		return
	}
	h.Broadcast(Event{Type: "counts", Counts: counts})
}
