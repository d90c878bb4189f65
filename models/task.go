// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// TaskStatuses lists every accepted status in display order.
var TaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
}

// IsValid reports whether s is one of [TaskStatuses].
func (s TaskStatus) IsValid() bool {
	return slices.Contains(TaskStatuses, s)
}

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      TaskStatus `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `json:"created_at"`

	// UserID is the owner. It is taken from the authenticated caller and
	// never from the request body.
	UserID string `json:"user_id"`
}

// TableName returns the name of the database table
// associated with the Task model.
func (t Task) TableName() string {
	return "tasks"
}

// TaskCreate is the body of POST /api/tasks.
// An absent Status means pending; a supplied one must be valid.
type TaskCreate struct {
	Title       string               `json:"title" validate:"required,min=1,max=200"`
	Description *string              `json:"description,omitempty"`
	Status      Optional[TaskStatus] `json:"status,omitzero"`
	DueDate     *time.Time           `json:"due_date,omitempty"`
}

// UnmarshalJSON decodes due_date with [ParseDueDate].
func (c *TaskCreate) UnmarshalJSON(b []byte) error {
	type plain TaskCreate
	aux := struct {
		*plain
		DueDate Optional[string] `json:"due_date"`
	}{plain: (*plain)(c)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	due, err := parseOptionalDueDate(aux.DueDate)
	if err != nil {
		return err
	}
	c.DueDate = due.Ptr()
	return nil
}

// TaskUpdate is a partial update of a task.
// Only fields with Set == true are applied.
type TaskUpdate struct {
	Title       Optional[string]     `json:"title,omitzero"`
	Description Optional[string]     `json:"description,omitzero"`
	Status      Optional[TaskStatus] `json:"status,omitzero"`
	DueDate     Optional[time.Time]  `json:"due_date,omitzero"`
}

// UnmarshalJSON decodes due_date with [ParseDueDate], keeping presence.
func (u *TaskUpdate) UnmarshalJSON(b []byte) error {
	type plain TaskUpdate
	aux := struct {
		*plain
		DueDate Optional[string] `json:"due_date"`
	}{plain: (*plain)(u)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	due, err := parseOptionalDueDate(aux.DueDate)
	if err != nil {
		return err
	}
	u.DueDate = due
	return nil
}

// IsEmpty reports whether no field was supplied.
func (u TaskUpdate) IsEmpty() bool {
	return !u.Title.Set && !u.Description.Set && !u.Status.Set && !u.DueDate.Set
}

// dueDateLayouts are tried in order. The offset-less forms are what
// datetime.isoformat() and HTML datetime-local inputs produce.
var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	time.DateOnly,
}

// ParseDueDate parses an ISO 8601 timestamp. Values without a UTC offset
// are taken as UTC.
func ParseDueDate(s string) (time.Time, error) {
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("due_date %q is not an ISO 8601 timestamp", s)
}

func parseOptionalDueDate(o Optional[string]) (Optional[time.Time], error) {
	if !o.Set || o.Null {
		return Optional[time.Time]{Set: o.Set, Null: o.Null}, nil
	}

	t, err := ParseDueDate(o.Value)
	if err != nil {
		return Optional[time.Time]{}, err
	}
	return Some(t), nil
}

// TaskFilter narrows the task list of one owner.
type TaskFilter struct {
	UserID string

	// Status is applied when non-empty.
	Status TaskStatus
}
