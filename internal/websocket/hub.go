package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub tracks every open connection and fans outbound events out to the
// eligible subset. Eligibility is room membership as tracked by the Registry;
// room-less events reach every connection, identified or not.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*WSClient]bool
	registry *Registry
}

func NewHub(registry *Registry) *Hub {
	return &Hub{
		clients:  make(map[*WSClient]bool),
		registry: registry,
	}
}

func (h *Hub) Add(client *WSClient) {
	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()
	incConnections()
}

// Remove drops the client from the hub and closes its outbound channel.
// Idempotent; callers unconditionally pair it with Registry.Delete.
func (h *Hub) Remove(client *WSClient) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
	}
	h.mu.Unlock()

	if ok {
		client.markClosed()
		decConnections()
	}
}

func (h *Hub) snapshot() []*WSClient {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := make([]*WSClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	return clients
}

// Broadcast serializes event once and attempts delivery to every eligible
// connection. Delivery is best-effort: a failed or stalled client is dropped
// without affecting the others, and Broadcast returns once every send has
// been attempted.
func (h *Hub) Broadcast(event OutboundEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("broadcast: marshal event: %v", err)
		return
	}

	roomID := event.Room()
	delivered := 0

	for _, client := range h.snapshot() {
		if roomID != "" {
			info, ok := h.registry.Get(client)
			if !ok || info.RoomID != roomID {
				continue
			}
		}

		if client.trySend(payload) {
			delivered++
		} else {
			log.Printf("broadcast: dropping unresponsive client %s", client.ID)
			h.registry.Delete(client)
			h.Remove(client)
		}
	}

	if delivered > 0 {
		addDelivered(delivered)
	}
}

// Send delivers event to a single connection, bypassing room routing.
func (h *Hub) Send(client *WSClient, event OutboundEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("send: marshal event: %v", err)
		return
	}
	if !client.trySend(payload) {
		log.Printf("send: client %s not accepting frames", client.ID)
	}
}
