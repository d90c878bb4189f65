package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/mock"
	"github.com/MKhiriev/go-task-tracker/internal/store"
	"github.com/MKhiriev/go-task-tracker/internal/utils"
	"github.com/MKhiriev/go-task-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestUserSvc(t *testing.T, ctrl *gomock.Controller) (UserService, *mock.MockUserRepository, *mock.MockTaskRepository) {
	t.Helper()

	users := mock.NewMockUserRepository(ctrl)
	tasks := mock.NewMockTaskRepository(ctrl)

	return NewUserService(users, tasks, testAppConfig, logger.Nop()), users, tasks
}

func TestUserService_GetProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _ := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	user := models.User{ID: "user-1", Username: "alice"}
	users.EXPECT().FindUserByID(ctx, "user-1").Return(user, nil)

	got, err := svc.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestUserService_GetProfile_Errors(t *testing.T) {
	dbErr := errors.New("db down")

	tests := []struct {
		name     string
		storeErr error
		wantErr  error
	}{
		{name: "user gone", storeErr: store.ErrUserNotFound, wantErr: ErrInvalidCredentials},
		{name: "store failure", storeErr: dbErr, wantErr: dbErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, users, _ := newTestUserSvc(t, ctrl)

			users.EXPECT().FindUserByID(gomock.Any(), "user-1").Return(models.User{}, tt.storeErr)

			_, err := svc.GetProfile(context.Background(), "user-1")
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUserService_UpdateProfile_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestUserSvc(t, ctrl)

	_, err := svc.UpdateProfile(context.Background(), "user-1", models.UserUpdate{})
	require.ErrorIs(t, err, ErrNoFieldsToUpdate)
}

func TestUserService_UpdateProfile_FullNameOnlySkipsUniqueness(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _ := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	update := models.UserUpdate{FullName: models.Null[string]()}
	users.EXPECT().UpdateUser(ctx, "user-1", models.UserPatch{FullName: models.Null[string]()}).
		Return(models.User{ID: "user-1"}, nil)

	got, err := svc.UpdateProfile(ctx, "user-1", update)
	require.NoError(t, err)
	assert.Nil(t, got.FullName)
}

func TestUserService_UpdateProfile_ChecksEmailBeforeUsername(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _ := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	update := models.UserUpdate{Username: models.Some("bob"), Email: models.Some("bob@example.com")}
	users.EXPECT().EmailExists(ctx, "bob@example.com", "user-1").Return(true, nil)

	_, err := svc.UpdateProfile(ctx, "user-1", update)
	require.ErrorIs(t, err, ErrEmailAlreadyInUse)
	assert.NotErrorIs(t, err, ErrEmailAlreadyRegistered)
}

func TestUserService_UpdateProfile_UsernameTaken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _ := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	users.EXPECT().UsernameExists(ctx, "bob", "user-1").Return(true, nil)

	_, err := svc.UpdateProfile(ctx, "user-1", models.UserUpdate{Username: models.Some("bob")})
	require.ErrorIs(t, err, ErrUsernameAlreadyTaken)
}

func TestUserService_UpdateProfile_RehashesPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, _ := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	var patched models.UserPatch
	users.EXPECT().UpdateUser(ctx, "user-1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, patch models.UserPatch) (models.User, error) {
			patched = patch
			return models.User{ID: "user-1", PasswordHash: patch.PasswordHash.Value}, nil
		})

	_, err := svc.UpdateProfile(ctx, "user-1", models.UserUpdate{Password: models.Some("new-secret")})
	require.NoError(t, err)

	require.True(t, patched.PasswordHash.Set)
	assert.NotEqual(t, "new-secret", patched.PasswordHash.Value)
	assert.True(t, utils.CheckPassword("new-secret", patched.PasswordHash.Value))
	assert.False(t, patched.Username.Set)
	assert.False(t, patched.Email.Set)
	assert.False(t, patched.FullName.Set)
}

func TestUserService_UpdateProfile_StoreErrors(t *testing.T) {
	dbErr := errors.New("db down")

	tests := []struct {
		name     string
		storeErr error
		wantErr  error
	}{
		{name: "email race", storeErr: store.ErrEmailAlreadyExists, wantErr: ErrEmailAlreadyInUse},
		{name: "username race", storeErr: store.ErrUsernameAlreadyExists, wantErr: ErrUsernameAlreadyTaken},
		{name: "user gone", storeErr: store.ErrUserNotFound, wantErr: ErrInvalidCredentials},
		{name: "store failure", storeErr: dbErr, wantErr: dbErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, users, _ := newTestUserSvc(t, ctrl)

			users.EXPECT().UsernameExists(gomock.Any(), "bob", "user-1").Return(false, nil)
			users.EXPECT().UpdateUser(gomock.Any(), "user-1", gomock.Any()).Return(models.User{}, tt.storeErr)

			_, err := svc.UpdateProfile(context.Background(), "user-1", models.UserUpdate{Username: models.Some("bob")})
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUserService_DeleteProfile_DeletesTasksFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, tasks := newTestUserSvc(t, ctrl)
	ctx := context.Background()

	gomock.InOrder(
		tasks.EXPECT().DeleteTasksByUser(ctx, "user-1").Return(int64(3), nil),
		users.EXPECT().DeleteUser(ctx, "user-1").Return(nil),
	)

	require.NoError(t, svc.DeleteProfile(ctx, "user-1"))
}

func TestUserService_DeleteProfile_TaskDeletionFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, tasks := newTestUserSvc(t, ctrl)
	dbErr := errors.New("db down")

	tasks.EXPECT().DeleteTasksByUser(gomock.Any(), "user-1").Return(int64(0), dbErr)

	err := svc.DeleteProfile(context.Background(), "user-1")
	require.ErrorIs(t, err, dbErr)
}

func TestUserService_DeleteProfile_UserDeletionFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users, tasks := newTestUserSvc(t, ctrl)
	dbErr := errors.New("db down")

	tasks.EXPECT().DeleteTasksByUser(gomock.Any(), "user-1").Return(int64(1), nil)
	users.EXPECT().DeleteUser(gomock.Any(), "user-1").Return(dbErr)

	err := svc.DeleteProfile(context.Background(), "user-1")
	require.ErrorIs(t, err, dbErr)
}
