package http

import (
	"net/http"

	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/utils"
	"github.com/MKhiriev/go-task-tracker/models"
)

const logoutMessage = "Successfully logged out"

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.services.AuthService.Signup(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Str("user_id", result.User.ID).Msg("user signed up")

	writeJSON(w, r, result, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.services.AuthService.Login(ctx, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Str("user_id", result.User.ID).Msg("user successfully logged in")

	writeJSON(w, r, result, http.StatusOK)
}

// logout only acknowledges: tokens are stateless and stay valid until they
// expire.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, models.MessageResponse{Message: logoutMessage}, http.StatusOK)
}

// me returns the profile the auth middleware resolved for this request.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext)
		return
	}

	writeJSON(w, r, user, http.StatusOK)
}
