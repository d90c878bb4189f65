package http

import (
	"net/http"

	"github.com/MKhiriev/go-task-tracker/internal/utils"
	"github.com/MKhiriev/go-task-tracker/models"
)

const profileDeletedMessage = "User profile and all associated tasks deleted successfully"

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext)
		return
	}

	profile, err := h.services.UserService.GetProfile(r.Context(), user.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, profile, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext)
		return
	}

	var update models.UserUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, r, err)
		return
	}

	profile, err := h.services.UserService.UpdateProfile(r.Context(), user.ID, update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, profile, http.StatusOK)
}

func (h *Handler) deleteProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoUserInContext)
		return
	}

	if err := h.services.UserService.DeleteProfile(r.Context(), user.ID); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, models.MessageResponse{Message: profileDeletedMessage}, http.StatusOK)
}
