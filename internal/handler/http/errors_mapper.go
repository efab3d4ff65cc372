package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-tour-auth/internal/config"
	"github.com/MKhiriev/go-tour-auth/internal/logger"
	"github.com/MKhiriev/go-tour-auth/internal/mail"
	"github.com/MKhiriev/go-tour-auth/internal/service"
	"github.com/MKhiriev/go-tour-auth/internal/store"
	"github.com/MKhiriev/go-tour-auth/internal/utils"
	"github.com/MKhiriev/go-tour-auth/models"
)

var errorStatusMap = map[error]int{
	service.ErrValidation:         http.StatusBadRequest,
	service.ErrMissingCredentials: http.StatusBadRequest,
	service.ErrInvalidCredentials: http.StatusUnauthorized,
	service.ErrTokenExpired:       http.StatusUnauthorized,
	service.ErrTokenInvalid:       http.StatusUnauthorized,
	service.ErrStalePassword:      http.StatusUnauthorized,
	service.ErrResetTokenInvalid:  http.StatusBadRequest,

	service.ErrTokenCreationFailed: http.StatusInternalServerError,
	mail.ErrDeliveryFailed:         http.StatusInternalServerError,

	store.ErrEmailAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// respondError maps err onto the failure envelope. 4xx responses keep the
// error's own message; 5xx responses show a generic message in production
// and attach the raw error text everywhere else.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	logger.FromRequest(r).Err(err).Send()

	status := statusFromError(err)

	resp := models.ErrorResponse{
		Status:  models.StatusFail,
		Message: err.Error(),
	}
	if status >= http.StatusInternalServerError {
		resp.Status = models.StatusError
		resp.Message = "something went very wrong!"
	}
	if h.environment != config.EnvProduction {
		resp.Detail = err.Error()
	}

	utils.WriteJSON(w, resp, status)
}

// writeFail sends a 4xx failure envelope with an explicit message.
func (h *Handler) writeFail(w http.ResponseWriter, status int, message string) {
	utils.WriteJSON(w, models.ErrorResponse{
		Status:  models.StatusFail,
		Message: message,
	}, status)
}
