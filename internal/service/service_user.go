package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-task-tracker/internal/config"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/store"
	"github.com/MKhiriev/go-task-tracker/internal/utils"
	"github.com/MKhiriev/go-task-tracker/models"
)

type userService struct {
	userRepository   store.UserRepository
	taskRepository   store.TaskRepository
	passwordHashCost int

	logger *logger.Logger
}

func NewUserService(userRepository store.UserRepository, taskRepository store.TaskRepository, cfg config.App, logger *logger.Logger) UserService {
	return &userService{
		userRepository:   userRepository,
		taskRepository:   taskRepository,
		passwordHashCost: cfg.PasswordHashCost,
		logger:           logger,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", userID).Msg("profile lookup failed")
		return models.User{}, fmt.Errorf("profile lookup failed: %w", err)
	}

	return user, nil
}

// UpdateProfile applies the supplied fields of update.
//
// A changed email or username is checked against every other user, email
// first; a taken email is ErrEmailAlreadyInUse here, not the signup error.
// A new password is re-hashed before it reaches the store.
func (s *userService) UpdateProfile(ctx context.Context, userID string, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if update.IsEmpty() {
		return models.User{}, ErrNoFieldsToUpdate
	}

	if err := checkUnique(ctx, s.userRepository, update.Email.Value, update.Username.Value, userID); err != nil {
		return models.User{}, profileConflict(err)
	}

	patch := models.UserPatch{
		Username: update.Username,
		Email:    update.Email,
		FullName: update.FullName,
	}
	if update.Password.Set {
		passwordHash, err := utils.HashPassword(update.Password.Value, s.passwordHashCost)
		if err != nil {
			log.Err(err).Msg("password hashing failed")
			return models.User{}, fmt.Errorf("profile update: %w", err)
		}
		patch.PasswordHash = models.Some(passwordHash)
	}

	user, err := s.userRepository.UpdateUser(ctx, userID, patch)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("profile update failed")
		return models.User{}, fmt.Errorf("profile update failed: %w", profileConflict(conflictError(err)))
	}

	return user, nil
}

func profileConflict(err error) error {
	if errors.Is(err, ErrEmailAlreadyRegistered) {
		return ErrEmailAlreadyInUse
	}
	return err
}

// DeleteProfile removes every task of the user and then the user itself.
// The two steps are not atomic: a failure between them leaves the user
// without tasks.
func (s *userService) DeleteProfile(ctx context.Context, userID string) error {
	log := logger.FromContext(ctx)

	deleted, err := s.taskRepository.DeleteTasksByUser(ctx, userID)
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("deleting user tasks failed")
		return fmt.Errorf("deleting user tasks failed: %w", err)
	}

	err = s.userRepository.DeleteUser(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		return ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("user_id", userID).Msg("deleting user failed")
		return fmt.Errorf("deleting user failed: %w", err)
	}

	log.Info().Str("user_id", userID).Int64("tasks_deleted", deleted).Msg("user profile deleted")
	return nil
}
