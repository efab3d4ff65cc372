package models

import "time"

// Role is the closed set of authorization roles a user may hold.
type Role string

// All roles known to the application. RoleUser is the default assigned
// at signup when no role is requested.
const (
	RoleUser      Role = "user"
	RoleAdmin     Role = "admin"
	RoleGuide     Role = "guide"
	RoleLeadGuide Role = "lead-guide"
)

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleGuide, RoleLeadGuide:
		return true
	}
	return false
}

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries: every
// credential-bearing field is excluded from JSON so no response envelope can
// leak it.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Email is the unique, lower-cased user identifier used during
	// authentication. Normalization happens before persistence.
	Email string `json:"email"`

	// Name is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	Name string `json:"name"`

	// Role determines which protected operations the user may perform.
	Role Role `json:"role"`

	// PasswordHash is the bcrypt digest of the user's password.
	// Never exposed via JSON and only loaded from the store when a lookup
	// explicitly requests credential columns.
	PasswordHash string `json:"-"`

	// PasswordChangedAt records the moment of the most recent password
	// rewrite. Session tokens issued before it are permanently invalid.
	// Nil means the password has never been changed since signup.
	PasswordChangedAt *time.Time `json:"-"`

	// ResetTokenHash is the sha256 digest of the currently outstanding
	// password-reset token, empty when no reset is in flight.
	ResetTokenHash string `json:"-"`

	// ResetTokenExpiresAt is the fixed deadline of the outstanding reset
	// token. It is set once at generation time and never extended.
	ResetTokenExpiresAt *time.Time `json:"-"`

	// Active is the soft-delete marker. Inactive users are excluded from
	// lookups unless the caller opts in via store.FindOptions.
	Active bool `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// PasswordChangedAfter reports whether the user's password was rewritten
// after the given token issue time. A true result means the token is stale
// and must be rejected regardless of its own expiry.
func (u *User) PasswordChangedAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return issuedAt.Before(*u.PasswordChangedAt)
}
