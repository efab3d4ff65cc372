package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-tour-auth/internal/logger"
	"github.com/MKhiriev/go-tour-auth/internal/service"
	"github.com/MKhiriev/go-tour-auth/internal/store"
	"github.com/MKhiriev/go-tour-auth/internal/utils"
	"github.com/MKhiriev/go-tour-auth/models"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It looks for the session token in the "Authorization" header first and
// falls back to the session cookie, resolves the token to its user via
// [service.AuthService.Authenticate], and stores the user in the request
// context under [utils.UserCtxKey] before delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized when:
//   - no token is present at all ([ErrNoToken]);
//   - the header value cannot be parsed as a bearer token
//     ([ErrInvalidAuthorizationHeader] or [ErrEmptyToken]);
//   - the token is expired, malformed, or was issued before the user's
//     last password change;
//   - the owning user no longer exists or has been deactivated.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := sessionToken(r)
		if err != nil {
			log.Err(err).Send()
			h.writeFail(w, http.StatusUnauthorized, err.Error())
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.Authenticate(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("authentication rejected")
			h.writeFail(w, http.StatusUnauthorized, authFailureMessage(err))
			return
		}

		// Store the authenticated user in the context so that downstream
		// handlers can retrieve it without hitting the database again.
		ctx = context.WithValue(ctx, utils.UserCtxKey, &user)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tryAuth resolves the session cookie like auth but never rejects: on any
// failure the request simply proceeds anonymously. Used on routes that a
// logged-in and an anonymous client may both call.
func (h *Handler) tryAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.Authenticate(ctx, cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx = context.WithValue(ctx, utils.UserCtxKey, &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// restrictTo gates a route group to the given roles. It must run after auth.
func (h *Handler) restrictTo(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := utils.GetUserFromContext(r.Context())
			if !ok {
				logger.FromRequest(r).Error().Msg("restrictTo reached without an authenticated user")
				h.writeFail(w, http.StatusUnauthorized, ErrNoToken.Error())
				return
			}

			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.FromRequest(r).Warn().
				Int64("user_id", user.UserID).
				Str("role", string(user.Role)).
				Msg("insufficient role")
			h.writeFail(w, http.StatusForbidden, "you do not have permission to perform this action")
		})
	}
}

// sessionToken extracts the session token from a request, preferring the
// "Authorization" header over the session cookie.
func sessionToken(r *http.Request) (string, error) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		return getTokenFromAuthHeader(authHeader)
	}

	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", ErrNoToken
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value of the form "<scheme> <token>".
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}

// authFailureMessage picks the client-facing text of a 401. Operational
// failures keep their message; anything unexpected gets a generic one.
func authFailureMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrTokenExpired),
		errors.Is(err, service.ErrTokenInvalid),
		errors.Is(err, service.ErrStalePassword):
		return err.Error()
	case errors.Is(err, store.ErrNoUserWasFound):
		return "the user belonging to this token does no longer exist"
	default:
		return http.StatusText(http.StatusUnauthorized)
	}
}
