package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseJSON_FullConfig(t *testing.T) {
	path := writeTempJSON(t, `{
		"app": {"environment": "production", "version": "1.2.3"},
		"auth": {
			"token_sign_key": "key",
			"token_issuer": "go-tour-auth",
			"token_duration": "2160h",
			"bcrypt_cost": 12,
			"reset_token_duration": "10m"
		},
		"storage": {"db": {"dsn": "postgres://localhost/tours"}},
		"server": {"http_address": "localhost:9090", "request_timeout": "30s"},
		"mail": {"relay_url": "https://mail.local", "from": "noreply@tours.io", "timeout": "15s"}
	}`)

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, "key", cfg.Auth.TokenSignKey)
	assert.Equal(t, 90*24*time.Hour, cfg.Auth.TokenDuration)
	assert.Equal(t, 10*time.Minute, cfg.Auth.ResetTokenDuration)
	assert.Equal(t, "postgres://localhost/tours", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:9090", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "noreply@tours.io", cfg.Mail.From)
	assert.Equal(t, 15*time.Second, cfg.Mail.Timeout)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_MalformedJSON(t *testing.T) {
	path := writeTempJSON(t, `{"auth": `)

	_, err := parseJSON(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestDuration_UnmarshalString(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalJSON([]byte(`"90m"`)))
	assert.Equal(t, 90*time.Minute, time.Duration(d))
}

func TestDuration_UnmarshalNumber(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalJSON([]byte(`1000000000`)))
	assert.Equal(t, time.Second, time.Duration(d))
}

func TestDuration_UnmarshalGarbage(t *testing.T) {
	var d Duration
	require.Error(t, d.UnmarshalJSON([]byte(`"not-a-duration"`)))
}
