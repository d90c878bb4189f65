// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a typed client for the task tracker HTTP API.
//
// [TaskAPIClient] hides serialisation, bearer token handling and error
// decoding. Non-2xx responses come back as [*APIError], which matches the
// sentinel values in errors.go through [errors.Is] (e.g. [ErrNotFound] for
// 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-task-tracker/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// TaskAPIClient talks to the task tracker server.
type TaskAPIClient interface {
	// SetToken stores the bearer token attached to protected requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "" when none is set.
	Token() string

	// Signup registers a user and stores the returned access token.
	Signup(ctx context.Context, req models.SignupRequest) (models.AuthResult, error)

	// Login authenticates by email and password and stores the returned
	// access token.
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResult, error)

	// Logout acknowledges logout on the server and forgets the local token.
	// The token itself stays valid until it expires.
	Logout(ctx context.Context) error

	Me(ctx context.Context) (models.User, error)

	GetProfile(ctx context.Context) (models.User, error)
	UpdateProfile(ctx context.Context, update models.UserUpdate) (models.User, error)

	// DeleteProfile removes the account with all its tasks and forgets the
	// local token.
	DeleteProfile(ctx context.Context) error

	CreateTask(ctx context.Context, task models.TaskCreate) (models.Task, error)

	// ListTasks returns the caller's tasks; an empty status lists all of them.
	ListTasks(ctx context.Context, status models.TaskStatus) ([]models.Task, error)

	GetTask(ctx context.Context, id string) (models.Task, error)
	UpdateTask(ctx context.Context, id string, update models.TaskUpdate) (models.Task, error)
	DeleteTask(ctx context.Context, id string) error

	// Status calls the unauthenticated health endpoint.
	Status(ctx context.Context) (models.StatusResponse, error)
}
