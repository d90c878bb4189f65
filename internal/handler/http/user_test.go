package http

import (
	"net/http"
	"testing"

	"github.com/MKhiriev/go-task-tracker/internal/service"
	"github.com/MKhiriev/go-task-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestGetProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, m := newTestHTTPHandler(t, ctrl, testServerConfig)
	m.expectAuthenticated()

	m.users.EXPECT().GetProfile(gomock.Any(), testUser.ID).Return(testUser, nil)

	rec := doRequest(t, h.Init(), http.MethodGet, "/api/user/profile", "", testToken)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, testUser.Username, decodeResponse[models.User](t, rec).Username)
}

func TestUpdateProfile_PassesPresence(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, m := newTestHTTPHandler(t, ctrl, testServerConfig)
	m.expectAuthenticated()

	want := models.UserUpdate{
		Username: models.Some("alice2"),
		FullName: models.Null[string](),
	}
	updated := testUser
	updated.Username = "alice2"
	m.users.EXPECT().UpdateProfile(gomock.Any(), testUser.ID, want).Return(updated, nil)

	rec := doRequest(t, h.Init(), http.MethodPut, "/api/user/profile",
		`{"username":"alice2","full_name":null}`, testToken)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice2", decodeResponse[models.User](t, rec).Username)
}

func TestUpdateProfile_NoFields(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, m := newTestHTTPHandler(t, ctrl, testServerConfig)
	m.expectAuthenticated()

	m.users.EXPECT().UpdateProfile(gomock.Any(), testUser.ID, models.UserUpdate{}).
		Return(models.User{}, service.ErrNoFieldsToUpdate)

	rec := doRequest(t, h.Init(), http.MethodPut, "/api/user/profile", `{}`, testToken)

	assertDetail(t, rec, http.StatusBadRequest, "No fields to update")
}

func TestUpdateProfile_InvalidJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, m := newTestHTTPHandler(t, ctrl, testServerConfig)
	m.expectAuthenticated()

	rec := doRequest(t, h.Init(), http.MethodPut, "/api/user/profile", `{"email": 42}`, testToken)

	assertDetail(t, rec, http.StatusBadRequest, "Invalid JSON was passed")
}

func TestDeleteProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	h, m := newTestHTTPHandler(t, ctrl, testServerConfig)
	m.expectAuthenticated()

	m.users.EXPECT().DeleteProfile(gomock.Any(), testUser.ID).Return(nil)

	rec := doRequest(t, h.Init(), http.MethodDelete, "/api/user/profile", "", testToken)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User profile and all associated tasks deleted successfully",
		decodeResponse[models.MessageResponse](t, rec).Message)
}
