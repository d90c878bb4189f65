// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-task-tracker/internal/utils"
	"github.com/MKhiriev/go-task-tracker/models"
	"github.com/go-chi/chi/v5"
)

const (
	taskIDParam       = "id"
	statusFilterParam = "status_filter"

	taskDeletedMessage = "Task deleted successfully"
)

func (h *Handler) createTask(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext)
		return
	}

	var req models.TaskCreate
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.services.TaskService.CreateTask(r.Context(), user.ID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, task, http.StatusCreated)
}

// listTasks returns the caller's tasks, optionally narrowed by the
// status_filter query parameter.
func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext)
		return
	}

	filter := models.TaskFilter{
		UserID: user.ID,
		Status: models.TaskStatus(r.URL.Query().Get(statusFilterParam)),
	}

	tasks, err := h.services.TaskService.ListTasks(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, tasks, http.StatusOK)
}

func (h *Handler) getTask(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext)
		return
	}

	task, err := h.services.TaskService.GetTask(r.Context(), user.ID, chi.URLParam(r, taskIDParam))
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, task, http.StatusOK)
}

// updateTask looks the task up before reading the body, so a missing or
// foreign task is a 404 even when the body is malformed.
func (h *Handler) updateTask(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext)
		return
	}

	taskID := chi.URLParam(r, taskIDParam)
	if _, err := h.services.TaskService.GetTask(r.Context(), user.ID, taskID); err != nil {
		writeError(w, r, err)
		return
	}

	var update models.TaskUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.services.TaskService.UpdateTask(r.Context(), user.ID, taskID, update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, task, http.StatusOK)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext)
		return
	}

	if err := h.services.TaskService.DeleteTask(r.Context(), user.ID, chi.URLParam(r, taskIDParam)); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.MessageResponse{Message: taskDeletedMessage}, http.StatusOK)
}
