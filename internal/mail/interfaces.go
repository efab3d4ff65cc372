package mail

import (
	"context"

	"github.com/MKhiriev/go-tour-auth/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/mail_sender_mock.go -package=mock

// Sender delivers transactional email on behalf of the auth flows.
type Sender interface {
	// SendWelcome greets a freshly signed-up user. accountURL points at
	// the user's account page.
	SendWelcome(ctx context.Context, user models.User, accountURL string) error

	// SendPasswordReset delivers the single-use reset link. resetURL
	// embeds the plain reset token and must never be logged.
	SendPasswordReset(ctx context.Context, user models.User, resetURL string) error
}
