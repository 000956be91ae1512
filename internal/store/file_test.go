package store

import (
	"chat-server-backend/internal/model"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
)

func newTestRepository(t *testing.T) *FileRepository {
	t.Helper()
	repo := NewFileRepository(filepath.Join(t.TempDir(), "db.json"))
	t.Cleanup(repo.Close)
	return repo
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.CreateUser(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated user id")
	}
	if created.Status != model.StatusOnline {
		t.Fatalf("expected new user online, got %s", created.Status)
	}

	if _, err := repo.CreateUser(ctx, "alice", "other"); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestUpdateUserStatus(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	created, err := repo.CreateUser(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}

	updated, err := repo.UpdateUserStatus(ctx, created.ID, model.StatusOffline)
	if err != nil {
		t.Fatalf("UpdateUserStatus error: %v", err)
	}
	if updated.Status != model.StatusOffline {
		t.Fatalf("expected offline, got %s", updated.Status)
	}

	found, err := repo.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername error: %v", err)
	}
	if found.Status != model.StatusOffline {
		t.Fatalf("status not persisted, got %s", found.Status)
	}

	if _, err := repo.UpdateUserStatus(ctx, "user0", model.StatusOnline); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateChatRoomAssignsSequentialIDs(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.CreateChatRoom(ctx, "General")
	if err != nil {
		t.Fatalf("CreateChatRoom error: %v", err)
	}
	second, err := repo.CreateChatRoom(ctx, "Random")
	if err != nil {
		t.Fatalf("CreateChatRoom error: %v", err)
	}

	if first.ID != "room1" || second.ID != "room2" {
		t.Fatalf("unexpected room ids %s, %s", first.ID, second.ID)
	}

	messages, err := repo.GetMessages(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetMessages error: %v", err)
	}
	if len(messages) != 0 {
		t.Fatalf("expected empty message list for new room, got %d", len(messages))
	}
}

func TestStateSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	ctx := context.Background()

	repo := NewFileRepository(path)
	if _, err := repo.CreateUser(ctx, "alice", "secret"); err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	room, err := repo.CreateChatRoom(ctx, "General")
	if err != nil {
		t.Fatalf("CreateChatRoom error: %v", err)
	}
	if _, err := repo.AddMessage(ctx, room.ID, model.Message{ID: "msg1", Content: "hi", Username: "alice", RoomID: room.ID}); err != nil {
		t.Fatalf("AddMessage error: %v", err)
	}
	repo.Close()

	reopened := NewFileRepository(path)
	defer reopened.Close()

	if _, err := reopened.GetUserByUsername(ctx, "alice"); err != nil {
		t.Fatalf("user not found after reload: %v", err)
	}
	rooms, err := reopened.GetChatRooms(ctx)
	if err != nil {
		t.Fatalf("GetChatRooms error: %v", err)
	}
	if len(rooms) != 1 || rooms[0].Name != "General" {
		t.Fatalf("unexpected rooms after reload: %#v", rooms)
	}
	messages, err := reopened.GetMessages(ctx, room.ID)
	if err != nil {
		t.Fatalf("GetMessages error: %v", err)
	}
	if len(messages) != 1 || messages[0].Content != "hi" {
		t.Fatalf("unexpected messages after reload: %#v", messages)
	}
}

func TestConcurrentAddMessageLosesNothing(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	room, err := repo.CreateChatRoom(ctx, "General")
	if err != nil {
		t.Fatalf("CreateChatRoom error: %v", err)
	}

	const writers = 25
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			msg := model.Message{
				ID:       fmt.Sprintf("msg-%d", n),
				Content:  fmt.Sprintf("message %d", n),
				Username: "alice",
				RoomID:   room.ID,
			}
			if _, err := repo.AddMessage(ctx, room.ID, msg); err != nil {
				t.Errorf("AddMessage %d: %v", n, err)
			}
		}(i)
	}
	wg.Wait()

	messages, err := repo.GetMessages(ctx, room.ID)
	if err != nil {
		t.Fatalf("GetMessages error: %v", err)
	}
	if len(messages) != writers {
		t.Fatalf("expected %d messages, got %d", writers, len(messages))
	}
}

func TestTimeIDUniqueAndPrefixed(t *testing.T) {
	seen := make(map[string]bool)
	prev := ""
	for i := 0; i < 100; i++ {
		id := TimeID("msg")
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
		if id <= prev && prev != "" {
			t.Fatalf("ids not increasing: %s after %s", id, prev)
		}
		prev = id
	}
}
