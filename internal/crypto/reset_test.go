package crypto

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResetTokenGenerator_Generate(t *testing.T) {
	g := NewResetTokenGenerator(10 * time.Minute).(*resetTokenGenerator)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return fixed }

	plain, storedHash, expiresAt, err := g.Generate()
	require.NoError(t, err)

	// 32 random bytes hex-encoded.
	raw, err := hex.DecodeString(plain)
	require.NoError(t, err)
	assert.Len(t, raw, resetTokenBytes)

	assert.NotEqual(t, plain, storedHash, "stored hash must not be the plain token")
	assert.Equal(t, g.HashToken(plain), storedHash)
	assert.Equal(t, fixed.Add(10*time.Minute), expiresAt)
}

func TestResetTokenGenerator_GenerateIsUnique(t *testing.T) {
	g := NewResetTokenGenerator(10 * time.Minute)

	first, _, _, err := g.Generate()
	require.NoError(t, err)
	second, _, _, err := g.Generate()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestResetTokenGenerator_Verify(t *testing.T) {
	g := NewResetTokenGenerator(10 * time.Minute)
	now := time.Now()

	plain, storedHash, expiresAt, err := g.Generate()
	require.NoError(t, err)

	assert.True(t, g.Verify(plain, storedHash, expiresAt, now))

	t.Run("wrong token", func(t *testing.T) {
		assert.False(t, g.Verify("deadbeef", storedHash, expiresAt, now))
	})

	t.Run("past deadline", func(t *testing.T) {
		assert.False(t, g.Verify(plain, storedHash, expiresAt, expiresAt))
		assert.False(t, g.Verify(plain, storedHash, expiresAt, expiresAt.Add(time.Second)))
	})

	t.Run("cleared reset state", func(t *testing.T) {
		assert.False(t, g.Verify(plain, "", expiresAt, now))
		assert.False(t, g.Verify(plain, storedHash, time.Time{}, now))
	})
}
