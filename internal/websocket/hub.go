// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

// Package websocket pushes live dashboard updates: camera and DVR
// mutations, status transitions, and coverage changes. One hub fans
// every event out to all connected map views.
package websocket

import (
	"context"
	"net/http"
	"sort"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/coff33ninja/cam-control/internal/logging"
	"github.com/coff33ninja/cam-control/internal/metrics"
	"github.com/coff33ninja/cam-control/internal/models"
)

// Message types pushed to dashboard clients.
const (
	MessageTypeCameraCreated   = "camera_created"
	MessageTypeCameraUpdated   = "camera_updated"
	MessageTypeCameraDeleted   = "camera_deleted"
	MessageTypeCameraMoved     = "camera_moved"
	MessageTypeStatusChanged   = "status_changed"
	MessageTypeDVRUpdated      = "dvr_updated"
	MessageTypeMapUpdated      = "map_updated"
	MessageTypeCoverageUpdated = "coverage_updated"
	MessageTypePing            = "ping"
	MessageTypePong            = "pong"
)

// Message is the envelope for all WebSocket traffic.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// StatusChange is the payload for status_changed messages.
type StatusChange struct {
	EntityType string `json:"entity_type"`
	EntityID   int64  `json:"entity_id"`
	Name       string `json:"name"`
	From       string `json:"from"`
	To         string `json:"to"`
}

// Hub maintains the set of active clients and broadcasts messages.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan Message, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// RunWithContext runs the hub until the context is canceled, then
// closes every client. Designed for suture supervision.
//
// Lifecycle events are drained before broadcasts so client state is
// consistent when a message fans out; Go's select picks randomly when
// several channels are ready.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return ctx.Err()
		default:
		}

		select {
		case client := <-h.Register:
			h.registerClient(client)
			continue
		case client := <-h.Unregister:
			h.unregisterClient(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.shutdown()
			return ctx.Err()
		case client := <-h.Register:
			h.registerClient(client)
		case client := <-h.Unregister:
			h.unregisterClient(client)
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

// String implements fmt.Stringer for supervisor logging.
func (h *Hub) String() string {
	return "websocket-hub"
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Set(float64(total))
	logging.Info().Int("total_clients", total).Msg("websocket client connected")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()

	metrics.WSConnections.Set(float64(total))
	logging.Info().Int("total_clients", total).Msg("websocket client disconnected")
}

// broadcastToClients fans a message out to all clients in ID order.
// Clients whose send buffer is full are dropped; a stalled browser tab
// must not block updates to everyone else.
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})

	var toRemove []*Client
	for _, client := range clients {
		select {
		case client.send <- message:
			metrics.WSMessagesSent.Inc()
		default:
			toRemove = append(toRemove, client)
		}
	}

	for _, client := range toRemove {
		close(client.send)
		delete(h.clients, client)
		metrics.WSErrors.WithLabelValues("send_buffer_full").Inc()
	}
	if len(toRemove) > 0 {
		metrics.WSConnections.Set(float64(len(h.clients)))
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	clientCount := len(h.clients)
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
	h.mu.Unlock()

	metrics.WSConnections.Set(0)
	logging.Info().
		Str("component", "websocket-hub").
		Int("clients_closed", clientCount).
		Msg("websocket hub stopped")
}

// GetClientCount returns the number of connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast queues a message for delivery to all clients. Drops the
// message when the hub queue is full rather than blocking the caller.
func (h *Hub) Broadcast(messageType string, data interface{}) {
	message := Message{Type: messageType, Data: data}
	select {
	case h.broadcast <- message:
	default:
		metrics.WSErrors.WithLabelValues("broadcast_queue_full").Inc()
		logging.Warn().Str("type", messageType).Msg("websocket broadcast queue full, dropping message")
	}
}

// BroadcastCameraUpdate pushes a camera mutation to all clients.
func (h *Hub) BroadcastCameraUpdate(messageType string, camera *models.Camera) {
	h.Broadcast(messageType, camera)
}

// NotifyStatusChange implements the monitor's Notifier interface.
func (h *Hub) NotifyStatusChange(entityType string, entityID int64, name, from, to string) {
	h.Broadcast(MessageTypeStatusChanged, &StatusChange{
		EntityType: entityType,
		EntityID:   entityID,
		Name:       name,
		From:       from,
		To:         to,
	})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard is same-origin in production deployments; reverse
	// proxies terminate anything else before it reaches us.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades an HTTP request to a WebSocket connection and
// attaches the client to the hub.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		metrics.WSErrors.WithLabelValues("upgrade_failed").Inc()
		logging.Err(err).Msg("websocket upgrade failed")
		return
	}

	client := NewClient(h, conn)
	h.Register <- client
	client.Start()
}
