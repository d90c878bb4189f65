package service

import (
	"context"

	"github.com/MKhiriev/go-task-tracker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) (models.AuthResult, error)
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)

	// Authenticate verifies tokenString and loads its owner. Every failure,
	// including a deleted owner, is reported as ErrInvalidCredentials.
	Authenticate(ctx context.Context, tokenString string) (models.User, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID string) (models.User, error)
	UpdateProfile(ctx context.Context, userID string, update models.UserUpdate) (models.User, error)

	// DeleteProfile removes the user's tasks, then the user.
	DeleteProfile(ctx context.Context, userID string) error
}

type TaskService interface {
	CreateTask(ctx context.Context, userID string, req models.TaskCreate) (models.Task, error)
	ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	GetTask(ctx context.Context, userID, taskID string) (models.Task, error)
	UpdateTask(ctx context.Context, userID, taskID string, update models.TaskUpdate) (models.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
}

type AppInfoService interface {
	GetStatus(ctx context.Context) models.StatusResponse
}
