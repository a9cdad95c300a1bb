package service

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/objectifs/objectifs/internal/apperr"
	"github.com/objectifs/objectifs/internal/model"
	"github.com/objectifs/objectifs/internal/repository"
)

type UserService struct {
	userRepository repository.UserRepository
}

func NewUserService(userRepository repository.UserRepository) *UserService {
	return &UserService{userRepository: userRepository}
}

func (s *UserService) ByID(id string) (*model.User, error) {
	user, err := s.userRepository.ByID(id)
	if err != nil {
		return nil, storeErr(err, repository.ErrUserNotFound, "user not found")
	}
	return user, nil
}

// SetRole grants or revokes culture editing rights.
func (s *UserService) SetRole(email, role string) (*model.User, error) {
	if role != model.UserRoleUser && role != model.UserRoleAdmin {
		return nil, apperr.Validationf("invalid role %q: expected %s or %s", role, model.UserRoleUser, model.UserRoleAdmin)
	}

	user, err := s.userRepository.ByEmail(strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil, storeErr(err, repository.ErrUserNotFound, "user not found")
	}

	err = s.userRepository.UpdateRole(user.ID, role)
	if err != nil {
		return nil, storeErr(err, repository.ErrUserNotFound, "user not found")
	}

	user.Role = role
	slog.Info("user role changed", "user_id", user.ID, "role", role)
	return user, nil
}

// Me returns the public profile of the caller.
func (s *UserService) Me(userID string) (*model.User, error) {
	user, err := s.ByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return user, nil
}
