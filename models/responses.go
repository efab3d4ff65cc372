package models

// Response status labels used in every JSON envelope. "fail" marks
// operational (expected, user-facing) failures; "error" marks internal
// faults surfaced with a generic message.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// AuthResponse is the success envelope returned by every operation that
// establishes or refreshes a session. The embedded user has all
// credential-bearing fields stripped by their `json:"-"` tags.
type AuthResponse struct {
	Status string    `json:"status"`
	Token  string    `json:"token,omitempty"`
	Data   *UserData `json:"data,omitempty"`
}

// UserData wraps the user payload of a success envelope.
type UserData struct {
	User User `json:"user"`
}

// MessageResponse is the success envelope for operations that return no
// session or entity, e.g. forgot-password and logout.
type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the failure envelope. Detail and Stack are populated
// only outside production so that internals never leak to clients.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`

	// Detail carries the raw error text in non-production environments.
	Detail string `json:"error,omitempty"`
}
