package user

import (
	"chat-server-backend/internal/model"
	"chat-server-backend/internal/store"
	"context"
	"errors"
	"strings"
)

// Repository is the slice of the durable store the user service depends on.
type Repository interface {
	GetUsers(ctx context.Context) ([]model.User, error)
	GetUserByUsername(ctx context.Context, username string) (model.User, error)
	CreateUser(ctx context.Context, username, password string) (model.User, error)
	UpdateUserStatus(ctx context.Context, userID, status string) (model.User, error)
}

type Service struct {
	repo Repository
}

func New(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.GetUsers(ctx)
	if err != nil {
		return nil, newError(ErrorCodeInternal, "failed to list users", err)
	}
	return users, nil
}

func (s *Service) Register(ctx context.Context, params RegisterParams) (model.User, error) {
	username := strings.TrimSpace(params.Username)
	if username == "" || params.Password == "" {
		return model.User{}, newError(ErrorCodeValidation, "Username and password are required", nil)
	}

	created, err := s.repo.CreateUser(ctx, username, params.Password)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			return model.User{}, newError(ErrorCodeConflict, "Username already taken", err)
		}
		return model.User{}, newError(ErrorCodeInternal, "failed to create user", err)
	}
	return created, nil
}

// Login verifies credentials by direct comparison against the stored password
// and flips the user online. Hashing is out of scope for this backend.
func (s *Service) Login(ctx context.Context, params LoginParams) (model.User, error) {
	username := strings.TrimSpace(params.Username)
	if username == "" || params.Password == "" {
		return model.User{}, newError(ErrorCodeUnauthorized, "Invalid credentials", nil)
	}

	found, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.User{}, newError(ErrorCodeUnauthorized, "Invalid credentials", nil)
		}
		return model.User{}, newError(ErrorCodeInternal, "failed to fetch user", err)
	}
	if found.Password != params.Password {
		return model.User{}, newError(ErrorCodeUnauthorized, "Invalid credentials", nil)
	}

	updated, err := s.repo.UpdateUserStatus(ctx, found.ID, model.StatusOnline)
	if err != nil {
		return model.User{}, newError(ErrorCodeInternal, "failed to update user status", err)
	}
	return updated, nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (model.User, error) {
	found, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.User{}, newError(ErrorCodeNotFound, "User not found", err)
		}
		return model.User{}, newError(ErrorCodeInternal, "failed to fetch user", err)
	}
	return found, nil
}

// UpdateStatusByUsername resolves the user first so callers can address users
// by name; the store keys status updates by user id.
func (s *Service) UpdateStatusByUsername(ctx context.Context, username, status string) (model.User, error) {
	if status != model.StatusOnline && status != model.StatusOffline {
		return model.User{}, newError(ErrorCodeValidation, "Status must be online or offline", nil)
	}

	found, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.User{}, newError(ErrorCodeNotFound, "User not found", err)
		}
		return model.User{}, newError(ErrorCodeInternal, "failed to fetch user", err)
	}

	updated, err := s.repo.UpdateUserStatus(ctx, found.ID, status)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.User{}, newError(ErrorCodeNotFound, "User not found", err)
		}
		return model.User{}, newError(ErrorCodeInternal, "failed to update user status", err)
	}
	return updated, nil
}
