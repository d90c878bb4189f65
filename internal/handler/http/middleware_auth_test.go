package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/mock"
	"github.com/MKhiriev/go-task-tracker/internal/service"
	"github.com/MKhiriev/go-task-tracker/internal/utils"
	"github.com/MKhiriev/go-task-tracker/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// ---- Helpers ----

func newHandlerWithAuthService(authSvc service.AuthService) *Handler {
	return &Handler{
		logger: logger.Nop(),
		services: &service.Services{
			AuthService: authSvc,
		},
	}
}

func executeAuth(h *Handler, authHeader string, next http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	rr := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rr, req)
	return rr
}

func mustNotBeCalled(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler must not be called")
	})
}

// ---- Rejections ----

func TestAuth_RejectsMalformedHeaders(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "absent", header: ""},
		{name: "scheme only", header: "Bearer"},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "too many parts", header: "Bearer a b"},
		{name: "spaces only", header: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			h := newHandlerWithAuthService(mock.NewMockAuthService(ctrl))

			rr := executeAuth(h, tt.header, mustNotBeCalled(t))

			assertDetail(t, rr, http.StatusUnauthorized, "Not authenticated")
			assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestAuth_RejectsInvalidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	authSvc := mock.NewMockAuthService(ctrl)
	h := newHandlerWithAuthService(authSvc)

	authSvc.EXPECT().Authenticate(gomock.Any(), "bad-token").Return(models.User{}, service.ErrInvalidCredentials)

	rr := executeAuth(h, "Bearer bad-token", mustNotBeCalled(t))

	assertDetail(t, rr, http.StatusUnauthorized, "Could not validate credentials")
}

func TestAuth_StoreFailureIsInternal(t *testing.T) {
	ctrl := gomock.NewController(t)
	authSvc := mock.NewMockAuthService(ctrl)
	h := newHandlerWithAuthService(authSvc)

	authSvc.EXPECT().Authenticate(gomock.Any(), "token").Return(models.User{}, errors.New("db down"))

	rr := executeAuth(h, "Bearer token", mustNotBeCalled(t))

	assertDetail(t, rr, http.StatusInternalServerError, "Internal server error")
	assert.Empty(t, rr.Header().Get("WWW-Authenticate"))
}

// ---- Success ----

func TestAuth_InjectsUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	authSvc := mock.NewMockAuthService(ctrl)
	h := newHandlerWithAuthService(authSvc)

	authSvc.EXPECT().Authenticate(gomock.Any(), testToken).Return(testUser, nil)

	var got models.User
	var ok bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = utils.GetUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rr := executeAuth(h, "bearer "+testToken, next)

	require.Equal(t, http.StatusOK, rr.Code)
	require.True(t, ok)
	assert.Equal(t, testUser, got)
}

func TestAuth_NoCachingBetweenRequests(t *testing.T) {
	ctrl := gomock.NewController(t)
	authSvc := mock.NewMockAuthService(ctrl)
	h := newHandlerWithAuthService(authSvc)

	gomock.InOrder(
		authSvc.EXPECT().Authenticate(gomock.Any(), testToken).Return(testUser, nil),
		authSvc.EXPECT().Authenticate(gomock.Any(), testToken).Return(models.User{}, service.ErrInvalidCredentials),
	)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	first := executeAuth(h, "Bearer "+testToken, next)
	second := executeAuth(h, "Bearer "+testToken, next)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusUnauthorized, second.Code)
}
