// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-task-tracker/models"
)

var (
	pgBuilder     = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	sqliteBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Question)
)

func Test_buildInsertUserQuery(t *testing.T) {
	user := testUser()

	query, args, err := buildInsertUserQuery(pgBuilder, user)
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.True(t, strings.HasPrefix(q, "insert into users"))
	assert.Contains(t, query, "$6")
	assert.Contains(t, q, "returning id, username, email, password_hash, full_name, created_at")
	assert.Equal(t, []any{user.ID, user.Username, user.Email, user.PasswordHash, "Alice", user.CreatedAt}, args)
}

func Test_buildSelectUserQuery_Placeholders(t *testing.T) {
	tests := []struct {
		name    string
		builder sq.StatementBuilderType
		want    string
	}{
		{"postgres", pgBuilder, "SELECT id, username, email, password_hash, full_name, created_at FROM users WHERE email = $1 LIMIT 1"},
		{"sqlite", sqliteBuilder, "SELECT id, username, email, password_hash, full_name, created_at FROM users WHERE email = ? LIMIT 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildSelectUserQuery(tt.builder, sq.Eq{"email": "a@x.com"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, query)
			assert.Equal(t, []any{"a@x.com"}, args)
		})
	}
}

func Test_buildUserExistsQuery(t *testing.T) {
	query, args, err := buildUserExistsQuery(pgBuilder, "username", "alice", "")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1 FROM users WHERE username = $1 LIMIT 1", query)
	assert.Equal(t, []any{"alice"}, args)

	query, args, err = buildUserExistsQuery(pgBuilder, "username", "alice", "me")
	require.NoError(t, err)
	assert.Equal(t, "SELECT 1 FROM users WHERE username = $1 AND id <> $2 LIMIT 1", query)
	assert.Equal(t, []any{"alice", "me"}, args)
}

func Test_buildUpdateUserQuery(t *testing.T) {
	t.Run("only supplied fields", func(t *testing.T) {
		query, args, err := buildUpdateUserQuery(pgBuilder, "id-1", models.UserPatch{
			Email:        models.Some("b@x.com"),
			PasswordHash: models.Some("digest"),
		})
		require.NoError(t, err)
		assert.Contains(t, query, "SET email = $1, password_hash = $2 WHERE id = $3")
		assert.NotContains(t, query, "username =")
		assert.NotContains(t, query, "full_name =")
		assert.Equal(t, []any{"b@x.com", "digest", "id-1"}, args)
	})

	t.Run("empty patch fails", func(t *testing.T) {
		_, _, err := buildUpdateUserQuery(pgBuilder, "id-1", models.UserPatch{})
		assert.Error(t, err)
	})
}

func Test_buildSelectTasksQuery(t *testing.T) {
	query, args, err := buildSelectTasksQuery(sqliteBuilder, models.TaskFilter{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, title, description, status, due_date, created_at, user_id FROM tasks WHERE user_id = ? ORDER BY created_at, id", query)
	assert.Equal(t, []any{"u1"}, args)

	_, args, err = buildSelectTasksQuery(sqliteBuilder, models.TaskFilter{UserID: "u1", Status: models.TaskStatusInProgress})
	require.NoError(t, err)
	assert.Equal(t, []any{"in-progress", "u1"}, args)
}

func Test_buildUpdateTaskQuery(t *testing.T) {
	due := time.Date(2026, 5, 1, 9, 0, 0, 0, time.FixedZone("X", 3600))

	query, args, err := buildUpdateTaskQuery(pgBuilder, "u1", "t1", models.TaskUpdate{
		Title:   models.Some("new"),
		DueDate: models.Some(due),
	})
	require.NoError(t, err)
	assert.Contains(t, query, "UPDATE tasks SET due_date = $1, title = $2 WHERE id = $3 AND user_id = $4")
	require.Len(t, args, 4)
	assert.Equal(t, time.UTC, args[0].(time.Time).Location())
	assert.True(t, due.Equal(args[0].(time.Time)))
	assert.Equal(t, []any{"new", "t1", "u1"}, args[1:])
}

func Test_buildDeleteQueries(t *testing.T) {
	query, args, err := buildDeleteTaskQuery(pgBuilder, "u1", "t1")
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM tasks WHERE id = $1 AND user_id = $2", query)
	assert.Equal(t, []any{"t1", "u1"}, args)

	query, args, err = buildDeleteTasksByUserQuery(pgBuilder, "u1")
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM tasks WHERE user_id = $1", query)
	assert.Equal(t, []any{"u1"}, args)

	query, _, err = buildDeleteUserQuery(sqliteBuilder, "u1")
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM users WHERE id = ?", query)
}

func Test_withForeignKeys(t *testing.T) {
	assert.Equal(t, "tasks.db?_foreign_keys=on", withForeignKeys("tasks.db"))
	assert.Equal(t, "file:tasks.db?cache=shared&_foreign_keys=on", withForeignKeys("file:tasks.db?cache=shared"))
	assert.Equal(t, "tasks.db?_fk=1", withForeignKeys("tasks.db?_fk=1"))
}
