package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-task-tracker/internal/logger"
	"github.com/MKhiriev/go-task-tracker/internal/service"
	"github.com/MKhiriev/go-task-tracker/internal/store"
	"github.com/MKhiriev/go-task-tracker/internal/utils"
	"github.com/MKhiriev/go-task-tracker/internal/validators"
	"github.com/MKhiriev/go-task-tracker/models"
)

const internalErrorDetail = "Internal server error"

type errorResponse struct {
	status int
	detail string
}

func clientError(status int, err error) errorResponse {
	return errorResponse{status: status, detail: err.Error()}
}

var errorStatusMap = map[error]errorResponse{
	service.ErrEmailAlreadyRegistered: clientError(http.StatusBadRequest, service.ErrEmailAlreadyRegistered),
	service.ErrEmailAlreadyInUse:      clientError(http.StatusBadRequest, service.ErrEmailAlreadyInUse),
	service.ErrUsernameAlreadyTaken:   clientError(http.StatusBadRequest, service.ErrUsernameAlreadyTaken),
	service.ErrNoFieldsToUpdate:       clientError(http.StatusBadRequest, service.ErrNoFieldsToUpdate),
	service.ErrIncorrectCredentials:   clientError(http.StatusUnauthorized, service.ErrIncorrectCredentials),
	service.ErrInvalidCredentials:     clientError(http.StatusUnauthorized, service.ErrInvalidCredentials),
	service.ErrTaskNotFound:           clientError(http.StatusNotFound, service.ErrTaskNotFound),

	ErrInvalidJSON:                clientError(http.StatusBadRequest, ErrInvalidJSON),
	ErrEmptyAuthorizationHeader:   {status: http.StatusUnauthorized, detail: "Not authenticated"},
	ErrInvalidAuthorizationHeader: {status: http.StatusUnauthorized, detail: "Not authenticated"},
	ErrNoUserInContext:            {status: http.StatusUnauthorized, detail: "Not authenticated"},
	ErrRouteNotFound:              clientError(http.StatusNotFound, ErrRouteNotFound),
	ErrTooManyRequests:            clientError(http.StatusTooManyRequests, ErrTooManyRequests),

	store.ErrBuildingSQLQuery: {status: http.StatusInternalServerError, detail: internalErrorDetail},
	store.ErrExecutingQuery:   {status: http.StatusInternalServerError, detail: internalErrorDetail},
	store.ErrScanningRow:      {status: http.StatusInternalServerError, detail: internalErrorDetail},
	store.ErrScanningRows:     {status: http.StatusInternalServerError, detail: internalErrorDetail},
}

// responseFromError picks the status and the caller-visible detail for err.
// Validation failures carry their own message; anything unknown is a 500
// with a generic detail.
func responseFromError(err error) errorResponse {
	var verr *validators.ValidationError
	if errors.As(err, &verr) {
		return errorResponse{status: http.StatusBadRequest, detail: verr.Message}
	}

	for target, resp := range errorStatusMap {
		if errors.Is(err, target) {
			return resp
		}
	}

	return errorResponse{status: http.StatusInternalServerError, detail: internalErrorDetail}
}

func statusFromError(err error) int {
	return responseFromError(err).status
}

// writeError writes err as {"detail": ...}. 401 responses carry the
// WWW-Authenticate challenge.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	resp := responseFromError(err)
	log := logger.FromRequest(r)

	if resp.status >= http.StatusInternalServerError {
		log.Err(err).Int("status", resp.status).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", resp.status).Msg("request rejected")
	}

	if resp.status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}

	if _, werr := utils.WriteJSON(w, models.ErrorResponse{Detail: resp.detail}, resp.status); werr != nil {
		log.Err(werr).Msg("error writing error response")
	}
}
