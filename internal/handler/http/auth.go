package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-tour-auth/internal/config"
	"github.com/MKhiriev/go-tour-auth/internal/logger"
	"github.com/MKhiriev/go-tour-auth/internal/service"
	"github.com/MKhiriev/go-tour-auth/internal/utils"
	"github.com/MKhiriev/go-tour-auth/models"
	"github.com/go-chi/chi/v5"
)

const sessionCookieName = "jwt"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

type updatePasswordRequest struct {
	PasswordCurrent string `json:"passwordCurrent"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var in service.SignupInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeFail(w, http.StatusBadRequest, "Invalid JSON was passed")
		return
	}

	user, token, err := h.services.AuthService.Signup(ctx, in, requestOrigin(r)+"/api/v1/users/me")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	log.Debug().Int64("id", user.UserID).Msg("user successfully signed up")
	h.writeAuthResponse(w, user, token, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var in loginRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeFail(w, http.StatusBadRequest, "Invalid JSON was passed")
		return
	}

	user, token, err := h.services.AuthService.Login(ctx, in.Email, in.Password)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	log.Debug().Int64("id", user.UserID).Msg("user successfully logged in")
	h.writeAuthResponse(w, user, token, http.StatusOK)
}

// logout overwrites the session cookie with a short-lived dummy value so
// browser clients that cannot delete httpOnly cookies drop the session.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if user, ok := utils.GetUserFromContext(r.Context()); ok {
		logger.FromRequest(r).Debug().Int64("id", user.UserID).Msg("user logged out")
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "loggedout",
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.environment == config.EnvProduction,
	})

	utils.WriteJSON(w, models.MessageResponse{Status: models.StatusSuccess}, http.StatusOK)
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var in forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeFail(w, http.StatusBadRequest, "Invalid JSON was passed")
		return
	}

	resetURLBase := requestOrigin(r) + "/api/v1/users/resetPassword"
	if err := h.services.AuthService.ForgotPassword(ctx, in.Email, resetURLBase); err != nil {
		h.respondError(w, r, err)
		return
	}

	// same answer whether or not the email is registered
	utils.WriteJSON(w, models.MessageResponse{
		Status:  models.StatusSuccess,
		Message: "token sent to email",
	}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var in resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeFail(w, http.StatusBadRequest, "Invalid JSON was passed")
		return
	}

	plainToken := chi.URLParam(r, "token")
	user, token, err := h.services.AuthService.ResetPassword(ctx, plainToken, in.Password, in.PasswordConfirm)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	log.Debug().Int64("id", user.UserID).Msg("password reset completed")
	h.writeAuthResponse(w, user, token, http.StatusOK)
}

func (h *Handler) updatePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	current, ok := utils.GetUserFromContext(ctx)
	if !ok {
		h.writeFail(w, http.StatusUnauthorized, ErrNoToken.Error())
		return
	}

	var in updatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		h.writeFail(w, http.StatusBadRequest, "Invalid JSON was passed")
		return
	}

	user, token, err := h.services.AuthService.UpdatePassword(ctx, current.UserID, in.PasswordCurrent, in.Password, in.PasswordConfirm)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	log.Debug().Int64("id", user.UserID).Msg("password updated")
	h.writeAuthResponse(w, user, token, http.StatusOK)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		h.writeFail(w, http.StatusUnauthorized, ErrNoToken.Error())
		return
	}

	utils.WriteJSON(w, models.AuthResponse{
		Status: models.StatusSuccess,
		Data:   &models.UserData{User: *user},
	}, http.StatusOK)
}

func (h *Handler) deleteMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		h.writeFail(w, http.StatusUnauthorized, ErrNoToken.Error())
		return
	}

	if err := h.services.AuthService.DeactivateUser(ctx, user.UserID); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Err(err).Msg("invalid user id")
		h.writeFail(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err = h.services.AuthService.DeactivateUser(ctx, userID); err != nil {
		h.respondError(w, r, err)
		return
	}

	log.Info().Int64("user_id", userID).Msg("user deactivated by administrator")
	w.WriteHeader(http.StatusNoContent)
}

// writeAuthResponse sends the success envelope of a session-opening
// operation and attaches the session both ways clients consume it: the
// "Authorization" response header and the httpOnly session cookie.
func (h *Handler) writeAuthResponse(w http.ResponseWriter, user models.User, token models.Token, status int) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token.SignedString,
		Path:     "/",
		Expires:  time.Now().Add(h.tokenDuration),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.environment == config.EnvProduction,
	})
	w.Header().Set("Authorization", "Bearer "+token.SignedString)

	utils.WriteJSON(w, models.AuthResponse{
		Status: models.StatusSuccess,
		Token:  token.SignedString,
		Data:   &models.UserData{User: user},
	}, status)
}

// requestOrigin reconstructs the external origin of a request for links
// embedded in outbound mail.
func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
