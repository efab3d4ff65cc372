package mail

import (
	"context"

	"github.com/MKhiriev/go-tour-auth/internal/logger"
	"github.com/MKhiriev/go-tour-auth/models"
)

type nopSender struct {
	logger *logger.Logger
}

// NewNopSender returns a Sender that logs instead of delivering. Used when
// no mail relay is configured, typically in development.
func NewNopSender(log *logger.Logger) Sender {
	return &nopSender{logger: log}
}

func (s *nopSender) SendWelcome(_ context.Context, user models.User, _ string) error {
	s.logger.Info().Str("to", user.Email).Msg("mail relay not configured, skipping welcome mail")
	return nil
}

func (s *nopSender) SendPasswordReset(_ context.Context, user models.User, _ string) error {
	s.logger.Info().Str("to", user.Email).Msg("mail relay not configured, skipping password reset mail")
	return nil
}
