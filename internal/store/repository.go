package store

import (
	"chat-server-backend/internal/model"
	"context"
	"errors"
)

var (
	ErrDuplicateUsername = errors.New("store: username already taken")
	ErrNotFound          = errors.New("store: not found")
)

// Repository is the durable store for users, rooms, and per-room message
// lists. Implementations must serialize read-modify-write cycles so that
// concurrent writers never lose updates.
type Repository interface {
	GetUsers(ctx context.Context) ([]model.User, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, error)
	CreateUser(ctx context.Context, username, password string) (model.User, error)
	UpdateUserStatus(ctx context.Context, userID, status string) (model.User, error)
	CreateChatRoom(ctx context.Context, name string) (model.Room, error)
	GetChatRooms(ctx context.Context) ([]model.Room, error)
	AddMessage(ctx context.Context, roomID string, message model.Message) (model.Message, error)
	GetMessages(ctx context.Context, roomID string) ([]model.Message, error)
}
