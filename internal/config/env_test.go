package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParseEnv_PopulatesNestedFields verifies that env vars with the
// documented prefixes land in the right nested config fields.
func TestParseEnv_PopulatesNestedFields(t *testing.T) {
	t.Setenv("APP_ENVIRONMENT", "production")
	t.Setenv("AUTH_TOKEN_SIGN_KEY", "super-secret")
	t.Setenv("AUTH_TOKEN_ISSUER", "go-tour-auth")
	t.Setenv("AUTH_TOKEN_DURATION", "2160h")
	t.Setenv("AUTH_BCRYPT_COST", "12")
	t.Setenv("AUTH_RESET_TOKEN_DURATION", "10m")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://localhost/tours")
	t.Setenv("SERVER_ADDRESS", "0.0.0.0:8080")
	t.Setenv("MAIL_RELAY_URL", "https://mail.relay.local")

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, "super-secret", cfg.Auth.TokenSignKey)
	assert.Equal(t, "go-tour-auth", cfg.Auth.TokenIssuer)
	assert.Equal(t, 90*24*time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, 10*time.Minute, cfg.Auth.ResetTokenDuration)
	assert.Equal(t, "postgres://localhost/tours", cfg.Storage.DB.DSN)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, "https://mail.relay.local", cfg.Mail.RelayURL)
}

// TestParseEnv_InvalidDuration verifies that an unparseable duration value
// surfaces as a wrapped error.
func TestParseEnv_InvalidDuration(t *testing.T) {
	t.Setenv("AUTH_TOKEN_DURATION", "ninety-days")

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}
