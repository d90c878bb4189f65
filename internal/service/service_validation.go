package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-task-tracker/internal/validators"
	"github.com/MKhiriev/go-task-tracker/models"
)

// AuthValidationService validates signup and login payloads before they
// reach the wrapped AuthService.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewRequestValidator(),
	}
}

func (v *AuthValidationService) Signup(ctx context.Context, req models.SignupRequest) (models.AuthResult, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.AuthResult{}, fmt.Errorf("error during signup validation: %w", err)
	}

	return v.inner.Signup(ctx, req)
}

func (v *AuthValidationService) Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.AuthResult{}, fmt.Errorf("error during login validation: %w", err)
	}

	return v.inner.Login(ctx, req)
}

func (v *AuthValidationService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return v.inner.CreateToken(ctx, user)
}

func (v *AuthValidationService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return v.inner.ParseToken(ctx, tokenString)
}

func (v *AuthValidationService) Authenticate(ctx context.Context, tokenString string) (models.User, error) {
	return v.inner.Authenticate(ctx, tokenString)
}

func (v *AuthValidationService) Wrap(wrapped AuthService) AuthService {
	v.inner = wrapped
	return v
}

// UserValidationService rejects empty and invalid profile updates.
type UserValidationService struct {
	inner     UserService
	validator validators.Validator
}

func NewUserValidationService() UserServiceWrapper {
	return &UserValidationService{
		validator: validators.NewRequestValidator(),
	}
}

func (v *UserValidationService) GetProfile(ctx context.Context, userID string) (models.User, error) {
	return v.inner.GetProfile(ctx, userID)
}

func (v *UserValidationService) UpdateProfile(ctx context.Context, userID string, update models.UserUpdate) (models.User, error) {
	if update.IsEmpty() {
		return models.User{}, ErrNoFieldsToUpdate
	}
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.User{}, fmt.Errorf("error during profile update validation: %w", err)
	}

	return v.inner.UpdateProfile(ctx, userID, update)
}

func (v *UserValidationService) DeleteProfile(ctx context.Context, userID string) error {
	return v.inner.DeleteProfile(ctx, userID)
}

func (v *UserValidationService) Wrap(wrapped UserService) UserService {
	v.inner = wrapped
	return v
}

// TaskValidationService validates task payloads and the status filter.
type TaskValidationService struct {
	inner     TaskService
	validator validators.Validator
}

func NewTaskValidationService() TaskServiceWrapper {
	return &TaskValidationService{
		validator: validators.NewRequestValidator(),
	}
}

func (v *TaskValidationService) CreateTask(ctx context.Context, userID string, req models.TaskCreate) (models.Task, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Task{}, fmt.Errorf("error during task validation: %w", err)
	}

	return v.inner.CreateTask(ctx, userID, req)
}

func (v *TaskValidationService) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	if filter.Status != "" {
		if err := v.validator.Validate(ctx, filter.Status, validators.FieldStatusFilter); err != nil {
			return nil, fmt.Errorf("error during status filter validation: %w", err)
		}
	}

	return v.inner.ListTasks(ctx, filter)
}

func (v *TaskValidationService) GetTask(ctx context.Context, userID, taskID string) (models.Task, error) {
	return v.inner.GetTask(ctx, userID, taskID)
}

// UpdateTask reports a missing or foreign task before looking at the body,
// so an empty update of someone else's task is a 404, not a 400.
func (v *TaskValidationService) UpdateTask(ctx context.Context, userID, taskID string, update models.TaskUpdate) (models.Task, error) {
	if _, err := v.inner.GetTask(ctx, userID, taskID); err != nil {
		return models.Task{}, err
	}

	if update.IsEmpty() {
		return models.Task{}, ErrNoFieldsToUpdate
	}
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.Task{}, fmt.Errorf("error during task update validation: %w", err)
	}

	return v.inner.UpdateTask(ctx, userID, taskID, update)
}

func (v *TaskValidationService) DeleteTask(ctx context.Context, userID, taskID string) error {
	return v.inner.DeleteTask(ctx, userID, taskID)
}

func (v *TaskValidationService) Wrap(wrapped TaskService) TaskService {
	v.inner = wrapped
	return v
}
