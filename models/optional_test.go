package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_UnmarshalPresence(t *testing.T) {
	tests := []struct {
		name string
		body string
		want TaskUpdate
	}{
		{name: "absent", body: `{}`, want: TaskUpdate{}},
		{name: "null", body: `{"description":null}`, want: TaskUpdate{Description: Null[string]()}},
		{name: "value", body: `{"title":"buy milk"}`, want: TaskUpdate{Title: Some("buy milk")}},
		{name: "empty string is a value", body: `{"description":""}`, want: TaskUpdate{Description: Some("")}},
		{
			name: "status and due date",
			body: `{"status":"completed","due_date":"2026-03-05T09:00:00Z"}`,
			want: TaskUpdate{
				Status:  Some(TaskStatusCompleted),
				DueDate: Some(time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got TaskUpdate
			require.NoError(t, json.Unmarshal([]byte(tt.body), &got))

			assert.Equal(t, tt.want.Title, got.Title)
			assert.Equal(t, tt.want.Description, got.Description)
			assert.Equal(t, tt.want.Status, got.Status)
			assert.Equal(t, tt.want.DueDate.Set, got.DueDate.Set)
			assert.True(t, tt.want.DueDate.Value.Equal(got.DueDate.Value))
		})
	}
}

func TestOptional_UnmarshalTypeMismatch(t *testing.T) {
	var got UserUpdate

	err := json.Unmarshal([]byte(`{"email":42}`), &got)

	assert.Error(t, err)
}

func TestOptional_MarshalOmitsAbsent(t *testing.T) {
	b, err := json.Marshal(UserUpdate{Username: Some("alice"), FullName: Null[string]()})

	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"alice","full_name":null}`, string(b))
}

func TestOptional_Ptr(t *testing.T) {
	assert.Nil(t, Optional[string]{}.Ptr())
	assert.Nil(t, Null[string]().Ptr())

	o := Some("x")
	p := o.Ptr()
	require.NotNil(t, p)
	assert.Equal(t, "x", *p)

	*p = "changed"
	assert.Equal(t, "x", o.Value, "Ptr returns a copy")
}

func TestUpdates_IsEmpty(t *testing.T) {
	assert.True(t, TaskUpdate{}.IsEmpty())
	assert.False(t, TaskUpdate{Description: Null[string]()}.IsEmpty())

	assert.True(t, UserUpdate{}.IsEmpty())
	assert.False(t, UserUpdate{Password: Some("secret1")}.IsEmpty())

	assert.True(t, UserPatch{}.IsEmpty())
	assert.False(t, UserPatch{PasswordHash: Some("$2a$...")}.IsEmpty())
}
