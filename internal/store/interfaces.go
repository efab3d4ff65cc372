package store

//go:generate mockgen -source=interfaces.go -destination=../mock/user_repository_mock.go -package=mock

import (
	"context"
	"time"

	"github.com/MKhiriev/go-tour-auth/models"
)

// FindOptions makes the two implicit filters of user lookups explicit at
// every call site.
//
// IncludeInactive opts in to soft-deleted accounts; the default excludes
// them so that a deactivated user is invisible to every flow that does not
// deliberately ask otherwise.
//
// WithCredentials opts in to the credential columns (password hash and
// reset-token state). The default leaves them zero-valued so that only the
// flows that genuinely verify or rewrite credentials ever hold them.
type FindOptions struct {
	IncludeInactive bool
	WithCredentials bool
}

// UserRepository is the persistence contract of the credential store.
type UserRepository interface {
	// CreateUser persists a new user and returns the canonical database
	// representation with server-assigned fields populated.
	// Returns ErrEmailAlreadyExists on a unique-email violation.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail looks a user up by the already-normalized email.
	// Returns ErrNoUserWasFound when no matching (and, by default, active)
	// record exists.
	FindUserByEmail(ctx context.Context, email string, opts FindOptions) (models.User, error)

	// FindUserByID looks a user up by primary key.
	FindUserByID(ctx context.Context, userID int64, opts FindOptions) (models.User, error)

	// FindUserByResetTokenHash finds the active user holding the given
	// reset-token digest with a deadline still in the future at now.
	// Credential columns are always loaded so the caller can re-validate.
	FindUserByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (models.User, error)

	// UpdatePassword rewrites the password hash, records changedAt as the
	// password-change instant, and clears any outstanding reset-token state
	// in the same statement.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string, changedAt time.Time) error

	// SetResetToken stores the reset-token digest and its fixed deadline.
	SetResetToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error

	// ClearResetToken removes any outstanding reset-token state. Used both
	// on consumption and for the delivery-failure rollback.
	ClearResetToken(ctx context.Context, userID int64) error

	// DeactivateUser flips the soft-delete flag. The record itself is kept.
	DeactivateUser(ctx context.Context, userID int64) error
}
