package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	roomservice "chat-server-backend/internal/service/room"
	userservice "chat-server-backend/internal/service/user"
	"chat-server-backend/internal/model"

	"github.com/gorilla/websocket"
)

// Session drives the per-connection state machine: inbound frames mutate the
// registry and trigger broadcasts, and disconnection runs the presence
// cleanup. One bad frame never kills the connection.
type Session struct {
	client   *WSClient
	hub      *Hub
	registry *Registry
	users    *userservice.Service
	rooms    *roomservice.Service
	ctx      context.Context
}

func newSession(client *WSClient, hub *Hub, registry *Registry, users *userservice.Service, rooms *roomservice.Service) *Session {
	return &Session{
		client:   client,
		hub:      hub,
		registry: registry,
		users:    users,
		rooms:    rooms,
		ctx:      context.Background(),
	}
}

func (s *Session) readLoop() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in readLoop: %v", r)
		}

		if s.client.done != nil {
			close(s.client.done)
		}

		s.handleClose()
		log.Printf("Client %s disconnected", s.client.ID)
	}()

	s.client.Conn.SetReadLimit(512 * 1024) // Set a reasonable read limit

	for {
		_, data, err := s.client.Conn.ReadMessage()
		if err != nil {
			if closeErr, ok := err.(*websocket.CloseError); ok {
				if closeErr.Code == websocket.CloseNormalClosure ||
					closeErr.Code == websocket.CloseGoingAway ||
					closeErr.Code == websocket.CloseNoStatusReceived {
					break
				}
			}
			log.Printf("Error reading message from client %s: %v", s.client.ID, err)
			break
		}

		if err := s.handleMessage(data); err != nil {
			log.Printf("WebSocket message error (client %s): %v", s.client.ID, err)
		}
	}
}

// handleMessage dispatches one inbound frame. Unknown types are ignored;
// errors are contained to this frame.
func (s *Session) handleMessage(data []byte) error {
	var event InboundEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return fmt.Errorf("decode inbound event: %w", err)
	}

	switch event.Type {
	case inboundAuth:
		return s.handleAuth(event)
	case inboundChatMessage:
		return s.handleChatMessage(event)
	case inboundTyping:
		s.hub.Broadcast(NewUserTypingEvent(event.Username, event.RoomID))
		return nil
	case inboundJoinRoom:
		s.registry.Set(s.client, ClientInfo{Username: event.Username, RoomID: event.RoomID})
		return nil
	default:
		return nil
	}
}

func (s *Session) handleAuth(event InboundEvent) error {
	s.registry.Set(s.client, ClientInfo{Username: event.Username, RoomID: event.RoomID})

	if _, err := s.users.UpdateStatusByUsername(s.ctx, event.Username, model.StatusOnline); err != nil {
		if isNotFound(err) {
			log.Printf("auth: no stored user %q, skipping status write", event.Username)
		} else {
			return fmt.Errorf("persist online status: %w", err)
		}
	}

	s.hub.Broadcast(NewUserStatusEvent(event.Username, model.StatusOnline))
	return nil
}

// handleChatMessage routes by the roomId carried in the payload, not by the
// registry's tracked room for this connection. The broadcast only happens
// after the message has been persisted.
func (s *Session) handleChatMessage(event InboundEvent) error {
	message, err := s.rooms.Append(s.ctx, event.RoomID, event.Content, event.Username)
	if err != nil {
		return fmt.Errorf("persist chat message: %w", err)
	}

	s.hub.Broadcast(NewChatMessageEvent(message))
	return nil
}

// handleClose runs the exit transition: offline persistence and a global
// status broadcast for identified connections, then unconditional removal.
// A user missing from the store is a no-op for both.
func (s *Session) handleClose() {
	if info, ok := s.registry.Get(s.client); ok {
		if _, err := s.users.UpdateStatusByUsername(s.ctx, info.Username, model.StatusOffline); err != nil {
			log.Printf("disconnect: status update for %q skipped: %v", info.Username, err)
		} else {
			s.hub.Broadcast(NewUserStatusEvent(info.Username, model.StatusOffline))
		}
	}

	s.registry.Delete(s.client)
	s.hub.Remove(s.client)
}

func isNotFound(err error) bool {
	var svcErr *userservice.Error
	return errors.As(err, &svcErr) && svcErr.Code == userservice.ErrorCodeNotFound
}
