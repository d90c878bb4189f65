// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/store"
	"github.com/MKhiriev/go-task-tracker/internal/utils"
	"github.com/MKhiriev/go-task-tracker/models"
)

// taskService implements TaskService on top of a TaskRepository.
// Every operation is scoped to the owner passed in by the caller; the owner
// is never read from request bodies.
type taskService struct {
	taskRepository store.TaskRepository
	ids            *utils.UUIDGenerator
	now            func() time.Time

	logger *logger.Logger
}

func NewTaskService(taskRepository store.TaskRepository, logger *logger.Logger) TaskService {
	return &taskService{
		taskRepository: taskRepository,
		ids:            utils.NewUUIDGenerator(),
		now:            time.Now,
		logger:         logger,
	}
}

// CreateTask stores a new task owned by userID. An absent status defaults
// to pending.
func (s *taskService) CreateTask(ctx context.Context, userID string, req models.TaskCreate) (models.Task, error) {
	status := models.TaskStatusPending
	if req.Status.Set && !req.Status.Null {
		status = req.Status.Value
	}

	task := models.Task{
		ID:          s.ids.Generate(),
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		DueDate:     normalizeTime(req.DueDate),
		CreatedAt:   s.now().UTC().Truncate(time.Microsecond),
		UserID:      userID,
	}

	created, err := s.taskRepository.CreateTask(ctx, task)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", userID).Msg("task creation failed")
		return models.Task{}, fmt.Errorf("task creation failed: %w", err)
	}

	return created, nil
}

func (s *taskService) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	tasks, err := s.taskRepository.ListTasks(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("user_id", filter.UserID).Msg("listing tasks failed")
		return nil, fmt.Errorf("listing tasks failed: %w", err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	return tasks, nil
}

func (s *taskService) GetTask(ctx context.Context, userID, taskID string) (models.Task, error) {
	task, err := s.taskRepository.GetTask(ctx, userID, taskID)
	if err != nil {
		return models.Task{}, s.taskError(ctx, err, "task lookup failed")
	}

	return task, nil
}

// UpdateTask applies the supplied fields of update to an owned task.
func (s *taskService) UpdateTask(ctx context.Context, userID, taskID string, update models.TaskUpdate) (models.Task, error) {
	if update.IsEmpty() {
		return models.Task{}, ErrNoFieldsToUpdate
	}

	if update.DueDate.Set && !update.DueDate.Null {
		update.DueDate.Value = update.DueDate.Value.UTC().Truncate(time.Microsecond)
	}

	task, err := s.taskRepository.UpdateTask(ctx, userID, taskID, update)
	if err != nil {
		return models.Task{}, s.taskError(ctx, err, "task update failed")
	}

	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, userID, taskID string) error {
	if err := s.taskRepository.DeleteTask(ctx, userID, taskID); err != nil {
		return s.taskError(ctx, err, "task deletion failed")
	}

	return nil
}

// taskError maps a missing or foreign task to ErrTaskNotFound and wraps
// everything else.
func (s *taskService) taskError(ctx context.Context, err error, msg string) error {
	if errors.Is(err, store.ErrTaskNotFound) {
		return ErrTaskNotFound
	}

	logger.FromContext(ctx).Err(err).Msg(msg)
	return fmt.Errorf("%s: %w", msg, err)
}

// normalizeTime stores timestamps in UTC with the precision every backend
// can round-trip.
func normalizeTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC().Truncate(time.Microsecond)
	return &v
}
