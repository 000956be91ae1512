package endpoints

import (
	"bytes"
	"chat-server-backend/internal/api"
	"chat-server-backend/internal/dto"
	"chat-server-backend/internal/model"
	"chat-server-backend/internal/queue"
	usersvc "chat-server-backend/internal/service/user"
	"chat-server-backend/internal/store"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

type testRepository struct {
	mu       sync.Mutex
	users    map[string]model.User
	rooms    []model.Room
	messages map[string][]model.Message
}

func newTestRepository() *testRepository {
	return &testRepository{
		users:    make(map[string]model.User),
		messages: make(map[string][]model.Message),
	}
}

func (m *testRepository) seedUser(user model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *testRepository) GetUsers(ctx context.Context) ([]model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *testRepository) GetUserByUsername(ctx context.Context, username string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return model.User{}, store.ErrNotFound
}

func (m *testRepository) CreateUser(ctx context.Context, username, password string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return model.User{}, store.ErrDuplicateUsername
		}
	}
	user := model.User{
		ID:       fmt.Sprintf("user-%d", len(m.users)+1),
		Username: username,
		Password: password,
		Status:   model.StatusOnline,
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *testRepository) UpdateUserStatus(ctx context.Context, userID, status string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return model.User{}, store.ErrNotFound
	}
	user.Status = status
	m.users[userID] = user
	return user, nil
}

func (m *testRepository) CreateChatRoom(ctx context.Context, name string) (model.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	room := model.Room{ID: fmt.Sprintf("room%d", len(m.rooms)+1), Name: name}
	m.rooms = append(m.rooms, room)
	m.messages[room.ID] = []model.Message{}
	return room, nil
}

func (m *testRepository) GetChatRooms(ctx context.Context) ([]model.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Room{}, m.rooms...), nil
}

func (m *testRepository) AddMessage(ctx context.Context, roomID string, message model.Message) (model.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[roomID] = append(m.messages[roomID], message)
	return message, nil
}

func (m *testRepository) GetMessages(ctx context.Context, roomID string) ([]model.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.Message{}, m.messages[roomID]...), nil
}

func setupUserHandler(t *testing.T, svc *usersvc.Service) (http.Handler, func()) {
	t.Helper()

	userEndpoints := &userEndpoints{
		service: svc,
		paths: UserPaths{
			UsersPath:  "/api/v1/users",
			UserPrefix: "/api/v1/users/",
		},
	}

	queueManager := queue.NewManager(10, 1)
	server := api.NewAPIServer(":0", queueManager, nil, nil, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/users/register", server.MakeHTTPHandleFunc(userEndpoints.Register))
	mux.HandleFunc("/api/v1/users/login", server.MakeHTTPHandleFunc(userEndpoints.Login))
	mux.HandleFunc("/api/v1/users", server.MakeHTTPHandleFunc(userEndpoints.Users))
	mux.HandleFunc("/api/v1/users/", server.MakeHTTPHandleFunc(userEndpoints.User))

	return mux, func() {
		queueManager.Shutdown()
	}
}

func doJSONRequest[T any](t *testing.T, handler http.Handler, method, target string, body interface{}, expectedStatus int) T {
	t.Helper()

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		payload = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, target, payload)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != expectedStatus {
		t.Fatalf("expected status %d, got %d: %s", expectedStatus, rec.Code, rec.Body.String())
	}

	var result T
	if expectedStatus != http.StatusNoContent {
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}

	return result
}

func TestUserEndpointsEndToEnd(t *testing.T) {
	repo := newTestRepository()
	handler, cleanup := setupUserHandler(t, usersvc.New(repo))
	defer cleanup()

	registered := doJSONRequest[dto.UserResponse](t, handler, http.MethodPost, "/api/v1/users/register",
		map[string]string{"username": "alice", "password": "secret"}, http.StatusCreated)
	if registered.Username != "alice" || registered.Status != model.StatusOnline {
		t.Fatalf("unexpected register response %#v", registered)
	}

	// responses never carry the stored password
	raw := doJSONRequest[map[string]any](t, handler, http.MethodGet, "/api/v1/users/alice", nil, http.StatusOK)
	if _, ok := raw["password"]; ok {
		t.Fatal("password leaked in response")
	}

	loggedIn := doJSONRequest[dto.UserResponse](t, handler, http.MethodPost, "/api/v1/users/login",
		map[string]string{"username": "alice", "password": "secret"}, http.StatusOK)
	if loggedIn.ID != registered.ID {
		t.Fatalf("login returned different user %#v", loggedIn)
	}

	users := doJSONRequest[[]dto.UserResponse](t, handler, http.MethodGet, "/api/v1/users", nil, http.StatusOK)
	if len(users) != 1 {
		t.Fatalf("expected one user, got %d", len(users))
	}

	updated := doJSONRequest[dto.UserResponse](t, handler, http.MethodPut, "/api/v1/users/alice/status",
		map[string]string{"status": model.StatusOffline}, http.StatusOK)
	if updated.Status != model.StatusOffline {
		t.Fatalf("expected offline, got %s", updated.Status)
	}
}

func TestRegisterConflictReturns409(t *testing.T) {
	repo := newTestRepository()
	repo.seedUser(model.User{ID: "user-1", Username: "alice", Password: "secret"})
	handler, cleanup := setupUserHandler(t, usersvc.New(repo))
	defer cleanup()

	resp := doJSONRequest[api.ApiError](t, handler, http.MethodPost, "/api/v1/users/register",
		map[string]string{"username": "alice", "password": "other"}, http.StatusConflict)
	if resp.Error != "Username already taken" {
		t.Fatalf("unexpected error body %#v", resp)
	}
}

func TestRegisterValidationReturns400(t *testing.T) {
	handler, cleanup := setupUserHandler(t, usersvc.New(newTestRepository()))
	defer cleanup()

	doJSONRequest[api.ApiError](t, handler, http.MethodPost, "/api/v1/users/register",
		map[string]string{"username": "", "password": "secret"}, http.StatusBadRequest)
}

func TestLoginBadCredentialsReturns401(t *testing.T) {
	repo := newTestRepository()
	repo.seedUser(model.User{ID: "user-1", Username: "alice", Password: "secret"})
	handler, cleanup := setupUserHandler(t, usersvc.New(repo))
	defer cleanup()

	resp := doJSONRequest[api.ApiError](t, handler, http.MethodPost, "/api/v1/users/login",
		map[string]string{"username": "alice", "password": "wrong"}, http.StatusUnauthorized)
	if resp.Error != "Invalid credentials" {
		t.Fatalf("unexpected error body %#v", resp)
	}
}

func TestGetUnknownUserReturns404(t *testing.T) {
	handler, cleanup := setupUserHandler(t, usersvc.New(newTestRepository()))
	defer cleanup()

	doJSONRequest[api.ApiError](t, handler, http.MethodGet, "/api/v1/users/nobody", nil, http.StatusNotFound)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	repo := newTestRepository()
	repo.seedUser(model.User{ID: "user-1", Username: "alice", Password: "secret"})
	handler, cleanup := setupUserHandler(t, usersvc.New(repo))
	defer cleanup()

	doJSONRequest[api.ApiError](t, handler, http.MethodPut, "/api/v1/users/alice/status",
		map[string]string{"status": "away"}, http.StatusBadRequest)
}

func TestUsersRejectsUnsupportedMethod(t *testing.T) {
	handler, cleanup := setupUserHandler(t, usersvc.New(newTestRepository()))
	defer cleanup()

	doJSONRequest[api.ApiError](t, handler, http.MethodDelete, "/api/v1/users", nil, http.StatusMethodNotAllowed)
}
