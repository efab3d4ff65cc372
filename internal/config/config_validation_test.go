package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *StructuredConfig {
	cfg := defaultConfig()
	cfg.Auth.TokenSignKey = "secret"
	cfg.Storage.DB.DSN = "postgres://localhost/tours"
	return cfg
}

func TestValidate_ValidConfig(t *testing.T) {
	require.NoError(t, validConfig().validate())
}

func TestValidate_RejectsBrokenConfigs(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*StructuredConfig)
		wantErr error
	}{
		{
			name:    "missing sign key",
			mutate:  func(c *StructuredConfig) { c.Auth.TokenSignKey = "" },
			wantErr: ErrInvalidAuthConfigs,
		},
		{
			name:    "zero token duration",
			mutate:  func(c *StructuredConfig) { c.Auth.TokenDuration = 0 },
			wantErr: ErrInvalidAuthConfigs,
		},
		{
			name:    "bcrypt cost out of range",
			mutate:  func(c *StructuredConfig) { c.Auth.BcryptCost = 99 },
			wantErr: ErrInvalidAuthConfigs,
		},
		{
			name:    "zero reset token duration",
			mutate:  func(c *StructuredConfig) { c.Auth.ResetTokenDuration = 0 },
			wantErr: ErrInvalidAuthConfigs,
		},
		{
			name:    "empty DSN",
			mutate:  func(c *StructuredConfig) { c.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "empty http address",
			mutate:  func(c *StructuredConfig) { c.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.validate(), tt.wantErr)
		})
	}
}

func TestNetAddress_SetAndString(t *testing.T) {
	var a NetAddress
	require.NoError(t, a.Set("localhost:8080"))
	assert.Equal(t, "localhost:8080", a.String())
}

func TestNetAddress_SetRejectsGarbage(t *testing.T) {
	var a NetAddress
	assert.Error(t, a.Set("no-port"))
	assert.Error(t, a.Set("localhost:-1"))
	assert.Error(t, a.Set("not-an-ip:80"))
}
