package websocket

import "sync"

// ClientInfo is the tracked identity of one connection. RoomID is empty until
// the client joins a room.
type ClientInfo struct {
	Username string
	RoomID   string
}

// Registry maps each live connection to its identity and room. It is the
// single source of truth for who is connected where; entries live exactly as
// long as the underlying connection.
type Registry struct {
	mu      sync.RWMutex
	clients map[*WSClient]ClientInfo
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[*WSClient]ClientInfo),
	}
}

// Set inserts or replaces the info for client.
func (r *Registry) Set(client *WSClient, info ClientInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[client] = info
}

// Get reports the tracked info for client; ok is false for connections that
// never identified themselves.
func (r *Registry) Get(client *WSClient) (ClientInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.clients[client]
	return info, ok
}

// Delete removes the entry for client. Deleting an absent key is a no-op.
func (r *Registry) Delete(client *WSClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, client)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}
