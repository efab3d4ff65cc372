package mail

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-tour-auth/internal/config"
	"github.com/MKhiriev/go-tour-auth/internal/logger"
	"github.com/MKhiriev/go-tour-auth/models"
	"github.com/go-resty/resty/v2"
)

// message is the JSON body posted to the relay's /send endpoint.
type message struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Template string `json:"template"`
	Name     string `json:"name"`
	URL      string `json:"url"`
}

type httpSender struct {
	client *resty.Client
	from   string
	logger *logger.Logger
}

// NewHTTPSender returns a Sender that posts messages to an HTTP mail relay.
func NewHTTPSender(cfg config.Mail, log *logger.Logger) Sender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.RelayURL, "/")).
		SetTimeout(timeout)

	return &httpSender{client: cli, from: cfg.From, logger: log}
}

func (s *httpSender) SendWelcome(ctx context.Context, user models.User, accountURL string) error {
	return s.send(ctx, message{
		From:     s.from,
		To:       user.Email,
		Subject:  "Welcome to the Natours family!",
		Template: "welcome",
		Name:     user.Name,
		URL:      accountURL,
	})
}

func (s *httpSender) SendPasswordReset(ctx context.Context, user models.User, resetURL string) error {
	return s.send(ctx, message{
		From:     s.from,
		To:       user.Email,
		Subject:  "Your password reset token (valid for only 10 minutes)",
		Template: "passwordReset",
		Name:     user.Name,
		URL:      resetURL,
	})
}

func (s *httpSender) send(ctx context.Context, msg message) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(msg).
		Post("/send")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: relay returned %d", ErrDeliveryFailed, resp.StatusCode())
	}

	s.logger.Debug().
		Str("to", msg.To).
		Str("template", msg.Template).
		Msg("mail accepted by relay")

	return nil
}
