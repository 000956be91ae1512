package endpoints

import (
	"chat-server-backend/internal/dto"
	"chat-server-backend/internal/model"
	roomsvc "chat-server-backend/internal/service/room"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type RoomPaths struct {
	RoomsPath  string
	RoomPrefix string
}

type RoomEndpoints interface {
	Rooms(http.ResponseWriter, *http.Request) error
	RoomMessages(http.ResponseWriter, *http.Request) error
}

type roomEndpoints struct {
	service *roomsvc.Service
	paths   RoomPaths
}

func NewRoomEndpoints(service *roomsvc.Service, paths RoomPaths) RoomEndpoints {
	return &roomEndpoints{
		service: service,
		paths:   paths,
	}
}

func (h *roomEndpoints) Rooms(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet:  h.handleList,
		http.MethodPost: h.handleCreate,
	})
}

// RoomMessages serves /rooms/{roomId}/messages.
func (h *roomEndpoints) RoomMessages(w http.ResponseWriter, r *http.Request) error {
	roomID, err := h.roomPathParam(r.URL.Path)
	if err != nil {
		return err
	}

	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet:  h.handleListMessages(roomID),
		http.MethodPost: h.handlePostMessage(roomID),
	})
}

func (h *roomEndpoints) roomPathParam(path string) (string, error) {
	trimmed := strings.TrimPrefix(path, h.paths.RoomPrefix)
	parts := strings.Split(strings.Trim(trimmed, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "messages" {
		return "", &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "Not found",
			ErrorLog:   fmt.Errorf("unexpected room path %q", path),
		}
	}
	return parts[0], nil
}

func (h *roomEndpoints) handleList(w http.ResponseWriter, r *http.Request) error {
	rooms, err := h.service.List(r.Context())
	if err != nil {
		return h.serviceError(err)
	}

	resp := make([]dto.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		resp = append(resp, dto.RoomResponse{ID: room.ID, Name: room.Name})
	}
	return WriteJSON(w, http.StatusOK, resp)
}

func (h *roomEndpoints) handleCreate(w http.ResponseWriter, r *http.Request) error {
	var req dto.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode create room request: %w", err),
		}
	}

	room, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusCreated, dto.RoomResponse{ID: room.ID, Name: room.Name})
}

func (h *roomEndpoints) handleListMessages(roomID string) func(http.ResponseWriter, *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		messages, err := h.service.Messages(r.Context(), roomID)
		if err != nil {
			return h.serviceError(err)
		}

		resp := make([]dto.MessageResponse, 0, len(messages))
		for _, m := range messages {
			resp = append(resp, toMessageResponse(m))
		}
		return WriteJSON(w, http.StatusOK, resp)
	}
}

func (h *roomEndpoints) handlePostMessage(roomID string) func(http.ResponseWriter, *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		var req dto.PostMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return &HTTPError{
				StatusCode: http.StatusBadRequest,
				Message:    "Invalid request payload",
				ErrorLog:   fmt.Errorf("decode post message request: %w", err),
			}
		}

		message, err := h.service.Append(r.Context(), roomID, req.Content, req.Username)
		if err != nil {
			return h.serviceError(err)
		}

		return WriteJSON(w, http.StatusCreated, toMessageResponse(message))
	}
}

func (h *roomEndpoints) serviceError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*roomsvc.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("room service: %w", err),
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	switch svcErr.Code {
	case roomsvc.ErrorCodeValidation:
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: svcErr.Message, ErrorLog: errorLog}
	case roomsvc.ErrorCodeNotFound:
		return &HTTPError{StatusCode: http.StatusNotFound, Message: svcErr.Message, ErrorLog: errorLog}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "Internal server error", ErrorLog: errorLog}
	}
}

func toMessageResponse(m model.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:        m.ID,
		Content:   m.Content,
		Username:  m.Username,
		RoomID:    m.RoomID,
		Timestamp: m.Timestamp,
	}
}
