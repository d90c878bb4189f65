// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/MKhiriev/go-task-tracker/internal/service"
	"github.com/MKhiriev/go-task-tracker/internal/validators"
	"github.com/MKhiriev/go-task-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testTaskID = "0190f7a2-9d00-7a1b-8c2d-112233445566"

var testTask = models.Task{
	ID:        testTaskID,
	Title:     "buy milk",
	Status:    models.TaskStatusPending,
	CreatedAt: time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
	UserID:    testUser.ID,
}

// ─────────────────────────────────────────────
// createTask
// ─────────────────────────────────────────────

func TestCreateTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, m := newTestHTTPHandler(t, ctrl, testServerConfig)
	m.expectAuthenticated()

	due := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	m.tasks.EXPECT().CreateTask(gomock.Any(), testUser.ID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, req models.TaskCreate) (models.Task, error) {
			assert.Equal(t, "buy milk", req.Title)
			require.NotNil(t, req.DueDate)
			assert.True(t, due.Equal(*req.DueDate))
			return testTask, nil
		})

	// user_id in the body is not a field of TaskCreate and is ignored
	rec := doRequest(t, h.Init(), http.MethodPost, "/api/tasks",
		`{"title":"buy milk","due_date":"2026-03-05T09:00:00Z","user_id":"someone-else"}`, testToken)

	require.Equal(t, http.StatusCreated, rec.Code)
	got := decodeResponse[models.Task](t, rec)
	assert.Equal(t, testTaskID, got.ID)
	assert.Equal(t, models.TaskStatusPending, got.Status)
	assert.Equal(t, testUser.ID, got.UserID)
}

func TestCreateTask_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, m := newTestHTTPHandler(t, ctrl, testServerConfig)

	m.auth.EXPECT().Authenticate(gomock.Any(), "expired").Return(models.User{}, service.ErrInvalidCredentials)

	rec := doRequest(t, h.Init(), http.MethodPost, "/api/tasks", `{"title":"x"}`, "expired")

	assertDetail(t, rec, http.StatusUnauthorized, "Could not validate credentials")
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
}

func TestCreateTask_InvalidStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, m := newTestHTTPHandler(t, ctrl, testServerConfig)
	m.expectAuthenticated()

	m.tasks.EXPECT().CreateTask(gomock.Any(), testUser.ID, gomock.Any()).Return(models.Task{},
		&validators.ValidationError{Field: "status", Message: "status must be one of pending, in-progress, completed"})

	rec := doRequest(t, h.Init(), http.MethodPost, "/api/tasks", `{"title":"x","status":"archived"}`, testToken)

	assertDetail(t, rec, http.StatusBadRequest, "status must be one of pending, in-progress, completed")
}

func TestCreateTask_DueDateWithoutOffset(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, m := newTestHTTPHandler(t, ctrl, testServerConfig)
	m.expectAuthenticated()

	m.tasks.EXPECT().CreateTask(gomock.Any(), testUser.ID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, req models.TaskCreate) (models.Task, error) {
			require.NotNil(t, req.DueDate)
			assert.True(t, time.Date(2026, 10, 22, 12, 34, 56, 123456000, time.UTC).Equal(*req.DueDate))
			return testTask, nil
		})

	rec := doRequest(t, h.Init(), http.MethodPost, "/api/tasks",
		`{"title":"t","due_date":"2026-10-22T12:34:56.123456"}`, testToken)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateTask_EmptyStatusReachesValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, m := newTestHTTPHandler(t, ctrl, testServerConfig)
	m.expectAuthenticated()

	m.tasks.EXPECT().CreateTask(gomock.Any(), testUser.ID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, req models.TaskCreate) (models.Task, error) {
			assert.Equal(t, models.Some(models.TaskStatus("")), req.Status)
			return models.Task{}, &validators.ValidationError{Field: "status", Message: "status must be one of pending, in-progress, completed"}
		})

	rec := doRequest(t, h.Init(), http.MethodPost, "/api/tasks", `{"title":"t","status":""}`, testToken)

	assertDetail(t, rec, http.StatusBadRequest, "status must be one of pending, in-progress, completed")
}

// ─────────────────────────────────────────────
// listTasks
// ─────────────────────────────────────────────

func TestListTasks(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantFilter models.TaskFilter
	}{
		{name: "all", path: "/api/tasks", wantFilter: models.TaskFilter{UserID: testUser.ID}},
		{
			name:       "status filter",
			path:       "/api/tasks?status_filter=completed",
			wantFilter: models.TaskFilter{UserID: testUser.ID, Status: models.TaskStatusCompleted},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			h, m := newTestHTTPHandler(t, ctrl, testServerConfig)
			m.expectAuthenticated()

			m.tasks.EXPECT().ListTasks(gomock.Any(), tt.wantFilter).Return([]models.Task{testTask}, nil)

			rec := doRequest(t, h.Init(), http.MethodGet, tt.path, "", testToken)

			require.Equal(t, http.StatusOK, rec.Code)
			got := decodeResponse[[]models.Task](t, rec)
			require.Len(t, got, 1)
			assert.Equal(t, testTaskID, got[0].ID)
		})
	}
}

func TestListTasks_EmptyIsArray(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, m := newTestHTTPHandler(t, ctrl, testServerConfig)
	m.expectAuthenticated()

	m.tasks.EXPECT().ListTasks(gomock.Any(), gomock.Any()).Return([]models.Task{}, nil)

	rec := doRequest(t, h.Init(), http.MethodGet, "/api/tasks", "", testToken)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

// ─────────────────────────────────────────────
// getTask / updateTask / deleteTask
// ─────────────────────────────────────────────

func TestGetTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, m := newTestHTTPHandler(t, ctrl, testServerConfig)
	m.expectAuthenticated()

	m.tasks.EXPECT().GetTask(gomock.Any(), testUser.ID, testTaskID).Return(testTask, nil)

	rec := doRequest(t, h.Init(), http.MethodGet, "/api/tasks/"+testTaskID, "", testToken)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"id": "0190f7a2-9d00-7a1b-8c2d-112233445566",
		"title": "buy milk",
		"description": null,
		"status": "pending",
		"due_date": null,
		"created_at": "2026-03-01T12:30:00Z",
		"user_id": "0190f7a2-7c1e-7d4b-9a3e-3f1c2b4d5e6f"
	}`, rec.Body.String())
}

func TestGetTask_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, m := newTestHTTPHandler(t, ctrl, testServerConfig)
	m.expectAuthenticated()

	m.tasks.EXPECT().GetTask(gomock.Any(), testUser.ID, "other").Return(models.Task{}, service.ErrTaskNotFound)

	rec := doRequest(t, h.Init(), http.MethodGet, "/api/tasks/other", "", testToken)

	assertDetail(t, rec, http.StatusNotFound, "Task not found")
}

func TestUpdateTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, m := newTestHTTPHandler(t, ctrl, testServerConfig)
	m.expectAuthenticated()

	want := models.TaskUpdate{
		Status:      models.Some(models.TaskStatusCompleted),
		Description: models.Null[string](),
	}
	done := testTask
	done.Status = models.TaskStatusCompleted
	gomock.InOrder(
		m.tasks.EXPECT().GetTask(gomock.Any(), testUser.ID, testTaskID).Return(testTask, nil),
		m.tasks.EXPECT().UpdateTask(gomock.Any(), testUser.ID, testTaskID, want).Return(done, nil),
	)

	rec := doRequest(t, h.Init(), http.MethodPut, "/api/tasks/"+testTaskID,
		`{"status":"completed","description":null}`, testToken)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.TaskStatusCompleted, decodeResponse[models.Task](t, rec).Status)
}

func TestUpdateTask_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		lookupErr  error
		updateErr  error
		wantStatus int
		wantDetail string
	}{
		{
			name:       "not owned",
			body:       `{}`,
			lookupErr:  service.ErrTaskNotFound,
			wantStatus: http.StatusNotFound,
			wantDetail: "Task not found",
		},
		{
			name:       "not owned with malformed body",
			body:       `{"title":`,
			lookupErr:  service.ErrTaskNotFound,
			wantStatus: http.StatusNotFound,
			wantDetail: "Task not found",
		},
		{
			name:       "owned with malformed body",
			body:       `{"title":`,
			wantStatus: http.StatusBadRequest,
			wantDetail: "Invalid JSON was passed",
		},
		{
			name:       "empty",
			body:       `{}`,
			updateErr:  service.ErrNoFieldsToUpdate,
			wantStatus: http.StatusBadRequest,
			wantDetail: "No fields to update",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			h, m := newTestHTTPHandler(t, ctrl, testServerConfig)
			m.expectAuthenticated()

			m.tasks.EXPECT().GetTask(gomock.Any(), testUser.ID, testTaskID).Return(testTask, tt.lookupErr)
			if tt.updateErr != nil {
				m.tasks.EXPECT().UpdateTask(gomock.Any(), testUser.ID, testTaskID, gomock.Any()).Return(models.Task{}, tt.updateErr)
			}

			rec := doRequest(t, h.Init(), http.MethodPut, "/api/tasks/"+testTaskID, tt.body, testToken)

			assertDetail(t, rec, tt.wantStatus, tt.wantDetail)
		})
	}
}

func TestDeleteTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, m := newTestHTTPHandler(t, ctrl, testServerConfig)
	m.expectAuthenticated()

	m.tasks.EXPECT().DeleteTask(gomock.Any(), testUser.ID, testTaskID).Return(nil)

	rec := doRequest(t, h.Init(), http.MethodDelete, "/api/tasks/"+testTaskID, "", testToken)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Task deleted successfully", decodeResponse[models.MessageResponse](t, rec).Message)
}

func TestDeleteTask_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, m := newTestHTTPHandler(t, ctrl, testServerConfig)
	m.expectAuthenticated()

	m.tasks.EXPECT().DeleteTask(gomock.Any(), testUser.ID, testTaskID).Return(service.ErrTaskNotFound)

	rec := doRequest(t, h.Init(), http.MethodDelete, "/api/tasks/"+testTaskID, "", testToken)

	assertDetail(t, rec, http.StatusNotFound, "Task not found")
}
