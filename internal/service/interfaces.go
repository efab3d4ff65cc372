package service

import (
	"context"

	"github.com/MKhiriev/go-tour-auth/models"
)

// SignupInput carries the self-registration form.
type SignupInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
	Role            string `json:"role"`
}

// AuthService implements the credential lifecycle: registration, login,
// session verification, and the password-reset handshake.
type AuthService interface {
	// Signup registers a new user and opens a session for them.
	// accountURL is included in the welcome mail; a mail failure does not
	// fail the signup.
	Signup(ctx context.Context, in SignupInput, accountURL string) (models.User, models.Token, error)

	// Login verifies the credentials and opens a session. Unknown email and
	// wrong password are indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (models.User, models.Token, error)

	// CreateToken issues a signed session token for the given user.
	CreateToken(userID int64) (models.Token, error)

	// ParseToken verifies a session token's signature, issuer and expiry.
	ParseToken(tokenString string) (models.Token, error)

	// Authenticate resolves a session token to its living user, rejecting
	// tokens issued before the user's last password change.
	Authenticate(ctx context.Context, tokenString string) (models.User, error)

	// ForgotPassword starts the reset handshake. An unknown email succeeds
	// silently; a mail delivery failure rolls the stored token back.
	// resetURLBase is the URL prefix the plain token gets appended to.
	ForgotPassword(ctx context.Context, email, resetURLBase string) error

	// ResetPassword consumes a plain reset token and sets a new password,
	// opening a fresh session.
	ResetPassword(ctx context.Context, plainToken, password, passwordConfirm string) (models.User, models.Token, error)

	// UpdatePassword changes the password of an authenticated user after
	// re-verifying the current one, then opens a fresh session.
	UpdatePassword(ctx context.Context, userID int64, currentPassword, newPassword, passwordConfirm string) (models.User, models.Token, error)

	// DeactivateUser soft-deletes the account; existing sessions stop
	// resolving on the next Authenticate call.
	DeactivateUser(ctx context.Context, userID int64) error
}
