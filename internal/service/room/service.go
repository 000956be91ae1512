package room

import (
	"chat-server-backend/internal/model"
	"chat-server-backend/internal/store"
	"context"
	"strings"
	"time"
)

// Repository is the slice of the durable store the room service depends on.
type Repository interface {
	CreateChatRoom(ctx context.Context, name string) (model.Room, error)
	GetChatRooms(ctx context.Context) ([]model.Room, error)
	AddMessage(ctx context.Context, roomID string, message model.Message) (model.Message, error)
	GetMessages(ctx context.Context, roomID string) ([]model.Message, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func New(repo Repository) *Service {
	return NewWithClock(repo, time.Now)
}

func NewWithClock(repo Repository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo: repo,
		now:  now,
	}
}

func (s *Service) List(ctx context.Context) ([]model.Room, error) {
	rooms, err := s.repo.GetChatRooms(ctx)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list rooms", err)
	}
	return rooms, nil
}

func (s *Service) Create(ctx context.Context, name string) (model.Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Room{}, newError(ErrorCodeValidation, "Room name is required", nil)
	}

	created, err := s.repo.CreateChatRoom(ctx, name)
	if err != nil {
		return model.Room{}, newError(ErrorCodeInternal, "failed to create room", err)
	}
	return created, nil
}

func (s *Service) Messages(ctx context.Context, roomID string) ([]model.Message, error) {
	messages, err := s.repo.GetMessages(ctx, roomID)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list messages", err)
	}
	return messages, nil
}

// Append builds a message with a fresh time-derived id and RFC 3339 timestamp
// and persists it. Both the REST surface and the websocket session go through
// here so every stored message is stamped the same way.
func (s *Service) Append(ctx context.Context, roomID, content, username string) (model.Message, error) {
	if content == "" || username == "" {
		return model.Message{}, newError(ErrorCodeValidation, "Content and username are required", nil)
	}

	message := model.Message{
		ID:        store.TimeID("msg"),
		Content:   content,
		Username:  username,
		RoomID:    roomID,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}

	saved, err := s.repo.AddMessage(ctx, roomID, message)
	if err != nil {
		return model.Message{}, newError(ErrorCodeInternal, "failed to save message", err)
	}
	return saved, nil
}
