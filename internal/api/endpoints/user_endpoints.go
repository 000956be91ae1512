package endpoints

import (
	"chat-server-backend/internal/dto"
	"chat-server-backend/internal/model"
	usersvc "chat-server-backend/internal/service/user"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// UserPaths carries the mounted route prefixes so the handlers can extract
// path parameters without a routing library.
type UserPaths struct {
	UsersPath  string
	UserPrefix string
}

type UserEndpoints interface {
	Users(http.ResponseWriter, *http.Request) error
	Register(http.ResponseWriter, *http.Request) error
	Login(http.ResponseWriter, *http.Request) error
	User(http.ResponseWriter, *http.Request) error
}

type userEndpoints struct {
	service *usersvc.Service
	paths   UserPaths
}

func NewUserEndpoints(service *usersvc.Service, paths UserPaths) UserEndpoints {
	return &userEndpoints{
		service: service,
		paths:   paths,
	}
}

func (h *userEndpoints) Users(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleList,
	})
}

func (h *userEndpoints) Register(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleRegister,
	})
}

func (h *userEndpoints) Login(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleLogin,
	})
}

// User serves /users/{username} and /users/{username}/status.
func (h *userEndpoints) User(w http.ResponseWriter, r *http.Request) error {
	username, rest, err := h.userPathParams(r.URL.Path)
	if err != nil {
		return err
	}

	switch {
	case rest == "":
		return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
			http.MethodGet: h.handleGetByUsername(username),
		})
	case rest == "status":
		return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
			http.MethodPut: h.handleUpdateStatus(username),
		})
	default:
		return &HTTPError{
			StatusCode: http.StatusNotFound,
			Message:    "Not found",
			ErrorLog:   fmt.Errorf("unknown user subresource %q", rest),
		}
	}
}

func (h *userEndpoints) userPathParams(path string) (username, rest string, err error) {
	trimmed := strings.TrimPrefix(path, h.paths.UserPrefix)
	parts := strings.Split(strings.Trim(trimmed, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return "", "", &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Username is required",
			ErrorLog:   fmt.Errorf("missing username in path %q", path),
		}
	}
	if len(parts) > 1 {
		rest = strings.Join(parts[1:], "/")
	}
	return parts[0], rest, nil
}

func (h *userEndpoints) handleList(w http.ResponseWriter, r *http.Request) error {
	users, err := h.service.List(r.Context())
	if err != nil {
		return h.serviceError(err)
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, toUserResponse(u))
	}
	return WriteJSON(w, http.StatusOK, resp)
}

func (h *userEndpoints) handleRegister(w http.ResponseWriter, r *http.Request) error {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode register request: %w", err),
		}
	}

	created, err := h.service.Register(r.Context(), usersvc.RegisterParams{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusCreated, toUserResponse(created))
}

func (h *userEndpoints) handleLogin(w http.ResponseWriter, r *http.Request) error {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode login request: %w", err),
		}
	}

	user, err := h.service.Login(r.Context(), usersvc.LoginParams{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return h.serviceError(err)
	}

	return WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *userEndpoints) handleGetByUsername(username string) func(http.ResponseWriter, *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		user, err := h.service.GetByUsername(r.Context(), username)
		if err != nil {
			return h.serviceError(err)
		}
		return WriteJSON(w, http.StatusOK, toUserResponse(user))
	}
}

func (h *userEndpoints) handleUpdateStatus(username string) func(http.ResponseWriter, *http.Request) error {
	return func(w http.ResponseWriter, r *http.Request) error {
		var req dto.UpdateStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return &HTTPError{
				StatusCode: http.StatusBadRequest,
				Message:    "Invalid request payload",
				ErrorLog:   fmt.Errorf("decode status request: %w", err),
			}
		}

		updated, err := h.service.UpdateStatusByUsername(r.Context(), username, req.Status)
		if err != nil {
			return h.serviceError(err)
		}
		return WriteJSON(w, http.StatusOK, toUserResponse(updated))
	}
}

func (h *userEndpoints) serviceError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*usersvc.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("user service: %w", err),
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	switch svcErr.Code {
	case usersvc.ErrorCodeValidation:
		return &HTTPError{StatusCode: http.StatusBadRequest, Message: svcErr.Message, ErrorLog: errorLog}
	case usersvc.ErrorCodeUnauthorized:
		return &HTTPError{StatusCode: http.StatusUnauthorized, Message: svcErr.Message, ErrorLog: errorLog}
	case usersvc.ErrorCodeNotFound:
		return &HTTPError{StatusCode: http.StatusNotFound, Message: svcErr.Message, ErrorLog: errorLog}
	case usersvc.ErrorCodeConflict:
		return &HTTPError{StatusCode: http.StatusConflict, Message: svcErr.Message, ErrorLog: errorLog}
	default:
		return &HTTPError{StatusCode: http.StatusInternalServerError, Message: "Internal server error", ErrorLog: errorLog}
	}
}

func toUserResponse(user model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Status:   user.Status,
	}
}
