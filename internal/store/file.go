package store

import (
	"chat-server-backend/internal/model"
	"chat-server-backend/internal/queue"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type fileData struct {
	ChatRooms []model.Room               `json:"chatRooms"`
	Messages  map[string][]model.Message `json:"messages"`
	Users     []model.User               `json:"users"`
}

func defaultFileData() *fileData {
	return &fileData{
		ChatRooms: []model.Room{},
		Messages:  map[string][]model.Message{},
		Users:     []model.User{},
	}
}

// FileRepository persists the whole store as one JSON document. Every
// operation re-reads the file, mutates it, and writes it back; a one-worker
// job queue serializes those cycles so concurrent callers cannot overwrite
// each other's changes.
type FileRepository struct {
	path string
	jobs *queue.Manager
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: path,
		jobs: queue.NewManager(64, 1),
	}
}

func (r *FileRepository) Close() {
	r.jobs.Shutdown()
}

func (r *FileRepository) load() (*fileData, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultFileData(), nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	data := defaultFileData()
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, data); err != nil {
			return nil, fmt.Errorf("decode store file: %w", err)
		}
	}
	if data.Messages == nil {
		data.Messages = map[string][]model.Message{}
	}
	return data, nil
}

func (r *FileRepository) write(data *fileData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store file: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace store file: %w", err)
	}
	return nil
}

func (r *FileRepository) run(ctx context.Context, fn func(data *fileData) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.jobs.Run(func() error {
		data, err := r.load()
		if err != nil {
			return err
		}
		return fn(data)
	})
}

func (r *FileRepository) GetUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.run(ctx, func(data *fileData) error {
		users = append([]model.User{}, data.Users...)
		return nil
	})
	return users, err
}

func (r *FileRepository) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	var user model.User
	err := r.run(ctx, func(data *fileData) error {
		for _, u := range data.Users {
			if u.Username == username {
				user = u
				return nil
			}
		}
		return ErrNotFound
	})
	return user, err
}

func (r *FileRepository) CreateUser(ctx context.Context, username, password string) (model.User, error) {
	var user model.User
	err := r.run(ctx, func(data *fileData) error {
		for _, u := range data.Users {
			if u.Username == username {
				return ErrDuplicateUsername
			}
		}
		user = model.User{
			ID:       TimeID("user"),
			Username: username,
			Password: password,
			Status:   model.StatusOnline,
		}
		data.Users = append(data.Users, user)
		return r.write(data)
	})
	return user, err
}

func (r *FileRepository) UpdateUserStatus(ctx context.Context, userID, status string) (model.User, error) {
	var user model.User
	err := r.run(ctx, func(data *fileData) error {
		for i := range data.Users {
			if data.Users[i].ID == userID {
				data.Users[i].Status = status
				user = data.Users[i]
				return r.write(data)
			}
		}
		return ErrNotFound
	})
	return user, err
}

func (r *FileRepository) CreateChatRoom(ctx context.Context, name string) (model.Room, error) {
	var room model.Room
	err := r.run(ctx, func(data *fileData) error {
		room = model.Room{
			ID:   fmt.Sprintf("room%d", len(data.ChatRooms)+1),
			Name: name,
		}
		data.ChatRooms = append(data.ChatRooms, room)
		data.Messages[room.ID] = []model.Message{}
		return r.write(data)
	})
	return room, err
}

func (r *FileRepository) GetChatRooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	err := r.run(ctx, func(data *fileData) error {
		rooms = append([]model.Room{}, data.ChatRooms...)
		return nil
	})
	return rooms, err
}

func (r *FileRepository) AddMessage(ctx context.Context, roomID string, message model.Message) (model.Message, error) {
	err := r.run(ctx, func(data *fileData) error {
		data.Messages[roomID] = append(data.Messages[roomID], message)
		return r.write(data)
	})
	return message, err
}

func (r *FileRepository) GetMessages(ctx context.Context, roomID string) ([]model.Message, error) {
	messages := []model.Message{}
	err := r.run(ctx, func(data *fileData) error {
		messages = append(messages, data.Messages[roomID]...)
		return nil
	})
	return messages, err
}
