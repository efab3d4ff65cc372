package service

import "errors"

// Operational errors of the authentication flows. Handlers map these onto
// HTTP statuses; anything not in this list is treated as an internal fault.
var (
	// ErrValidation flags malformed signup or password input. The wrapping
	// error carries the human-readable detail.
	ErrValidation = errors.New("validation error")

	// ErrMissingCredentials is returned when a login request omits the
	// email or the password.
	ErrMissingCredentials = errors.New("please provide email and password")

	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so a caller cannot probe which of the two failed.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrTokenExpired is returned for a well-formed session token whose
	// expiry has passed.
	ErrTokenExpired = errors.New("your token has expired, please log in again")

	// ErrTokenInvalid is returned for a session token that fails any other
	// verification step.
	ErrTokenInvalid = errors.New("invalid token, please log in again")

	// ErrStalePassword is returned when the password was changed after the
	// presented token was issued.
	ErrStalePassword = errors.New("user recently changed password, please log in again")

	// ErrResetTokenInvalid covers every reset-token failure mode, unknown
	// and expired alike.
	ErrResetTokenInvalid = errors.New("reset token is invalid or has expired")

	// ErrTokenCreationFailed is returned when a session token cannot be
	// signed.
	ErrTokenCreationFailed = errors.New("could not create session token")
)
