package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/MKhiriev/go-tour-auth/internal/config"
	"github.com/MKhiriev/go-tour-auth/internal/crypto"
	"github.com/MKhiriev/go-tour-auth/internal/logger"
	mailer "github.com/MKhiriev/go-tour-auth/internal/mail"
	"github.com/MKhiriev/go-tour-auth/internal/store"
	"github.com/MKhiriev/go-tour-auth/internal/utils"
	"github.com/MKhiriev/go-tour-auth/models"
	"github.com/golang-jwt/jwt/v5"
)

// minPasswordLength is the minimum accepted password length in bytes.
const minPasswordLength = 8

type authService struct {
	users       store.UserRepository
	hasher      crypto.PasswordHasher
	resetTokens crypto.ResetTokenGenerator
	sender      mailer.Sender
	cfg         config.Auth
	logger      *logger.Logger

	// now is swappable in tests.
	now func() time.Time
}

// NewAuthService builds the AuthService on top of the user repository.
func NewAuthService(users store.UserRepository, cfg config.Auth, sender mailer.Sender, log *logger.Logger) AuthService {
	return &authService{
		users:       users,
		hasher:      crypto.NewPasswordHasher(cfg.BcryptCost),
		resetTokens: crypto.NewResetTokenGenerator(cfg.ResetTokenDuration),
		sender:      sender,
		cfg:         cfg,
		logger:      log,
		now:         time.Now,
	}
}

func (s *authService) Signup(ctx context.Context, in SignupInput, accountURL string) (models.User, models.Token, error) {
	if strings.TrimSpace(in.Name) == "" {
		return models.User{}, models.Token{}, fmt.Errorf("%w: please tell us your name", ErrValidation)
	}

	email := normalizeEmail(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("%w: please provide a valid email", ErrValidation)
	}

	if err := validatePassword(in.Password, in.PasswordConfirm); err != nil {
		return models.User{}, models.Token{}, err
	}

	role := models.Role(in.Role)
	if in.Role == "" {
		role = models.RoleUser
	}
	if !role.Valid() {
		return models.User{}, models.Token{}, fmt.Errorf("%w: unknown role %q", ErrValidation, in.Role)
	}

	passwordHash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("hashing password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, models.User{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		Role:         role,
		PasswordHash: passwordHash,
	})
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	// a lost welcome mail must not lose the signup
	if err = s.sender.SendWelcome(ctx, user, accountURL); err != nil {
		s.logger.Warn().Err(err).Str("email", user.Email).Msg("welcome mail not delivered")
	}

	token, err := s.CreateToken(user.UserID)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (models.User, models.Token, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return models.User{}, models.Token{}, ErrMissingCredentials
	}

	user, err := s.users.FindUserByEmail(ctx, normalizeEmail(email), store.FindOptions{WithCredentials: true})
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, models.Token{}, ErrInvalidCredentials
		}
		return models.User{}, models.Token{}, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}

	token, err := s.CreateToken(user.UserID)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

func (s *authService) CreateToken(userID int64) (models.Token, error) {
	token, err := utils.GenerateJWTToken(s.cfg.TokenIssuer, userID, s.cfg.TokenDuration, s.cfg.TokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %v", ErrTokenCreationFailed, err)
	}
	return token, nil
}

func (s *authService) ParseToken(tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.cfg.TokenSignKey, s.cfg.TokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, ErrTokenExpired
		}
		return models.Token{}, ErrTokenInvalid
	}
	return token, nil
}

func (s *authService) Authenticate(ctx context.Context, tokenString string) (models.User, error) {
	token, err := s.ParseToken(tokenString)
	if err != nil {
		return models.User{}, err
	}

	user, err := s.users.FindUserByID(ctx, token.UserID, store.FindOptions{})
	if err != nil {
		return models.User{}, err
	}

	if user.PasswordChangedAfter(token.IssuedTime) {
		return models.User{}, ErrStalePassword
	}

	return user, nil
}

func (s *authService) ForgotPassword(ctx context.Context, email, resetURLBase string) error {
	user, err := s.users.FindUserByEmail(ctx, normalizeEmail(email), store.FindOptions{})
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			// do not reveal whether the address is registered
			s.logger.Debug().Msg("password reset requested for unknown email")
			return nil
		}
		return err
	}

	plainToken, tokenHash, expiresAt, err := s.resetTokens.Generate()
	if err != nil {
		return fmt.Errorf("generating reset token: %w", err)
	}

	if err = s.users.SetResetToken(ctx, user.UserID, tokenHash, expiresAt); err != nil {
		return err
	}

	resetURL := strings.TrimRight(resetURLBase, "/") + "/" + plainToken
	if err = s.sender.SendPasswordReset(ctx, user, resetURL); err != nil {
		// an undeliverable token must not stay live in the database
		if clearErr := s.users.ClearResetToken(ctx, user.UserID); clearErr != nil {
			s.logger.Error().Err(clearErr).Int64("user_id", user.UserID).Msg("failed to roll back reset token")
		}
		return fmt.Errorf("sending password reset mail: %w", err)
	}

	return nil
}

func (s *authService) ResetPassword(ctx context.Context, plainToken, password, passwordConfirm string) (models.User, models.Token, error) {
	if err := validatePassword(password, passwordConfirm); err != nil {
		return models.User{}, models.Token{}, err
	}

	now := s.now()

	user, err := s.users.FindUserByResetTokenHash(ctx, s.resetTokens.HashToken(plainToken), now)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, models.Token{}, ErrResetTokenInvalid
		}
		return models.User{}, models.Token{}, err
	}

	if user.ResetTokenExpiresAt == nil ||
		!s.resetTokens.Verify(plainToken, user.ResetTokenHash, *user.ResetTokenExpiresAt, now) {
		return models.User{}, models.Token{}, ErrResetTokenInvalid
	}

	user, token, err := s.rewritePassword(ctx, user, password, now)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

func (s *authService) UpdatePassword(ctx context.Context, userID int64, currentPassword, newPassword, passwordConfirm string) (models.User, models.Token, error) {
	user, err := s.users.FindUserByID(ctx, userID, store.FindOptions{WithCredentials: true})
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	if !s.hasher.Verify(currentPassword, user.PasswordHash) {
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}

	if err = validatePassword(newPassword, passwordConfirm); err != nil {
		return models.User{}, models.Token{}, err
	}

	user, token, err := s.rewritePassword(ctx, user, newPassword, s.now())
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

func (s *authService) DeactivateUser(ctx context.Context, userID int64) error {
	return s.users.DeactivateUser(ctx, userID)
}

// rewritePassword hashes and persists a new password and opens a fresh
// session. changedAt is backdated one second so the session token, stamped
// with second-resolution issue time, survives its own password change.
func (s *authService) rewritePassword(ctx context.Context, user models.User, password string, now time.Time) (models.User, models.Token, error) {
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, models.Token{}, fmt.Errorf("hashing password: %w", err)
	}

	changedAt := now.Add(-time.Second)
	if err = s.users.UpdatePassword(ctx, user.UserID, passwordHash, changedAt); err != nil {
		return models.User{}, models.Token{}, err
	}

	user.PasswordHash = ""
	user.PasswordChangedAt = &changedAt
	user.ResetTokenHash = ""
	user.ResetTokenExpiresAt = nil

	token, err := s.CreateToken(user.UserID)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(password, passwordConfirm string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters long", ErrValidation, minPasswordLength)
	}
	if password != passwordConfirm {
		return fmt.Errorf("%w: passwords are not the same", ErrValidation)
	}
	return nil
}
