package websocket

import "chat-server-backend/internal/model"

const (
	inboundAuth        = "auth"
	inboundChatMessage = "chat_message"
	inboundTyping      = "typing"
	inboundJoinRoom    = "join_room"
)

// InboundEvent is one decoded client frame. Type discriminates; the remaining
// fields are populated per type and zero otherwise.
type InboundEvent struct {
	Type     string `json:"type"`
	Username string `json:"username"`
	RoomID   string `json:"roomId"`
	Content  string `json:"content"`
}

// OutboundEvent is a server-to-client frame. Room scopes delivery: the empty
// string means the event goes to every open connection regardless of room.
type OutboundEvent interface {
	Room() string
}

type ConnectionEstablishedEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewConnectionEstablishedEvent() ConnectionEstablishedEvent {
	return ConnectionEstablishedEvent{
		Type:    "connection_established",
		Message: "Connected to chat server",
	}
}

func (ConnectionEstablishedEvent) Room() string { return "" }

type UserStatusEvent struct {
	Type     string `json:"type"`
	Username string `json:"username"`
	Status   string `json:"status"`
}

func NewUserStatusEvent(username, status string) UserStatusEvent {
	return UserStatusEvent{
		Type:     "user_status",
		Username: username,
		Status:   status,
	}
}

// Presence is globally visible: user_status events carry no room.
func (UserStatusEvent) Room() string { return "" }

type ChatMessageEvent struct {
	Type    string        `json:"type"`
	Message model.Message `json:"message"`
	RoomID  string        `json:"roomId"`
}

func NewChatMessageEvent(message model.Message) ChatMessageEvent {
	return ChatMessageEvent{
		Type:    "chat_message",
		Message: message,
		RoomID:  message.RoomID,
	}
}

func (e ChatMessageEvent) Room() string { return e.RoomID }

type UserTypingEvent struct {
	Type     string `json:"type"`
	Username string `json:"username"`
	RoomID   string `json:"roomId"`
}

func NewUserTypingEvent(username, roomID string) UserTypingEvent {
	return UserTypingEvent{
		Type:     "user_typing",
		Username: username,
		RoomID:   roomID,
	}
}

func (e UserTypingEvent) Room() string { return e.RoomID }
