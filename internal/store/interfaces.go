// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-task-tracker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the credential store: users keyed by id, with unique
// username and email.
type UserRepository interface {
	// CreateUser persists user and returns the stored record.
	// Returns ErrEmailAlreadyExists or ErrUsernameAlreadyExists on conflict.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByID returns ErrUserNotFound when no user has the id.
	FindUserByID(ctx context.Context, id string) (models.User, error)

	// FindUserByEmail returns ErrUserNotFound when no user has the email.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// EmailExists reports whether a user other than excludeID owns email.
	// An empty excludeID checks all users.
	EmailExists(ctx context.Context, email, excludeID string) (bool, error)

	// UsernameExists reports whether a user other than excludeID owns username.
	UsernameExists(ctx context.Context, username, excludeID string) (bool, error)

	// UpdateUser applies the supplied fields of patch and returns the result.
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (models.User, error)

	// DeleteUser removes the user. Returns ErrUserNotFound when nothing was deleted.
	DeleteUser(ctx context.Context, id string) error
}

// TaskRepository stores tasks. Every read and write is scoped to an owner.
type TaskRepository interface {
	// CreateTask persists task and returns the stored record.
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)

	// ListTasks returns the owner's tasks ordered by creation.
	ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)

	// GetTask returns ErrTaskNotFound when the task is absent or owned by
	// someone else.
	GetTask(ctx context.Context, userID, taskID string) (models.Task, error)

	// UpdateTask applies the supplied fields of update to an owned task.
	UpdateTask(ctx context.Context, userID, taskID string, update models.TaskUpdate) (models.Task, error)

	// DeleteTask removes an owned task. Returns ErrTaskNotFound when nothing
	// was deleted.
	DeleteTask(ctx context.Context, userID, taskID string) error

	// DeleteTasksByUser removes every task of userID and returns the count.
	DeleteTasksByUser(ctx context.Context, userID string) (int64, error)
}
