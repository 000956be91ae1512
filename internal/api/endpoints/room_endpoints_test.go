package endpoints

import (
	"chat-server-backend/internal/api"
	"chat-server-backend/internal/dto"
	"chat-server-backend/internal/queue"
	roomsvc "chat-server-backend/internal/service/room"
	"net/http"
	"testing"
	"time"
)

func setupRoomHandler(t *testing.T, svc *roomsvc.Service) (http.Handler, func()) {
	t.Helper()

	roomEndpoints := &roomEndpoints{
		service: svc,
		paths: RoomPaths{
			RoomsPath:  "/api/v1/rooms",
			RoomPrefix: "/api/v1/rooms/",
		},
	}

	queueManager := queue.NewManager(10, 1)
	server := api.NewAPIServer(":0", queueManager, nil, nil, nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/rooms", server.MakeHTTPHandleFunc(roomEndpoints.Rooms))
	mux.HandleFunc("/api/v1/rooms/", server.MakeHTTPHandleFunc(roomEndpoints.RoomMessages))

	return mux, func() {
		queueManager.Shutdown()
	}
}

func fixedRoomClock() time.Time {
	return time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC)
}

func TestRoomEndpointsEndToEnd(t *testing.T) {
	repo := newTestRepository()
	handler, cleanup := setupRoomHandler(t, roomsvc.NewWithClock(repo, fixedRoomClock))
	defer cleanup()

	created := doJSONRequest[dto.RoomResponse](t, handler, http.MethodPost, "/api/v1/rooms",
		map[string]string{"name": "General"}, http.StatusCreated)
	if created.ID != "room1" || created.Name != "General" {
		t.Fatalf("unexpected room %#v", created)
	}

	rooms := doJSONRequest[[]dto.RoomResponse](t, handler, http.MethodGet, "/api/v1/rooms", nil, http.StatusOK)
	if len(rooms) != 1 || rooms[0].ID != "room1" {
		t.Fatalf("unexpected room list %#v", rooms)
	}

	posted := doJSONRequest[dto.MessageResponse](t, handler, http.MethodPost, "/api/v1/rooms/room1/messages",
		map[string]string{"content": "hello", "username": "alice"}, http.StatusCreated)
	if posted.RoomID != "room1" || posted.Timestamp != "2024-03-10T18:30:00Z" {
		t.Fatalf("unexpected message %#v", posted)
	}

	messages := doJSONRequest[[]dto.MessageResponse](t, handler, http.MethodGet, "/api/v1/rooms/room1/messages", nil, http.StatusOK)
	if len(messages) != 1 || messages[0].ID != posted.ID {
		t.Fatalf("unexpected message list %#v", messages)
	}
}

func TestCreateRoomWithoutNameReturns400(t *testing.T) {
	handler, cleanup := setupRoomHandler(t, roomsvc.NewWithClock(newTestRepository(), fixedRoomClock))
	defer cleanup()

	resp := doJSONRequest[api.ApiError](t, handler, http.MethodPost, "/api/v1/rooms",
		map[string]string{"name": "  "}, http.StatusBadRequest)
	if resp.Error != "Room name is required" {
		t.Fatalf("unexpected error body %#v", resp)
	}
}

func TestPostMessageValidationReturns400(t *testing.T) {
	handler, cleanup := setupRoomHandler(t, roomsvc.NewWithClock(newTestRepository(), fixedRoomClock))
	defer cleanup()

	doJSONRequest[api.ApiError](t, handler, http.MethodPost, "/api/v1/rooms/room1/messages",
		map[string]string{"content": "", "username": "alice"}, http.StatusBadRequest)
}

func TestMessagesForUnknownRoomIsEmptyList(t *testing.T) {
	handler, cleanup := setupRoomHandler(t, roomsvc.NewWithClock(newTestRepository(), fixedRoomClock))
	defer cleanup()

	messages := doJSONRequest[[]dto.MessageResponse](t, handler, http.MethodGet, "/api/v1/rooms/ghost/messages", nil, http.StatusOK)
	if len(messages) != 0 {
		t.Fatalf("expected empty list, got %#v", messages)
	}
}

func TestUnknownRoomSubresourceReturns404(t *testing.T) {
	handler, cleanup := setupRoomHandler(t, roomsvc.NewWithClock(newTestRepository(), fixedRoomClock))
	defer cleanup()

	doJSONRequest[api.ApiError](t, handler, http.MethodGet, "/api/v1/rooms/room1/participants", nil, http.StatusNotFound)
}
