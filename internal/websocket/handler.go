package websocket

import (
	"log"
	"net/http"

	roomservice "chat-server-backend/internal/service/room"
	userservice "chat-server-backend/internal/service/user"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	hub      *Hub
	registry *Registry
	users    *userservice.Service
	rooms    *roomservice.Service
}

func NewHandler(hub *Hub, registry *Registry, users *userservice.Service, rooms *roomservice.Service) *Handler {
	return &Handler{
		hub:      hub,
		registry: registry,
		users:    users,
		rooms:    rooms,
	}
}

// ServeWS upgrades the request and starts the per-connection goroutines. The
// welcome frame goes to the new connection alone, before any inbound event is
// processed.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return nil
	}

	client := newWSClient(conn, uuid.NewString())
	h.hub.Add(client)
	log.Printf("Client %s connected", client.ID)

	session := newSession(client, h.hub, h.registry, h.users, h.rooms)

	go client.keepAlive()
	go client.writeMessage()

	h.hub.Send(client, NewConnectionEstablishedEvent())

	go session.readLoop()
	return nil
}
