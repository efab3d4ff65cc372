// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"io"
	"time"
)

// resetTokenBytes is the entropy of a plain reset token: 32 bytes read from
// the OS CSPRNG, 256 bits.
const resetTokenBytes = 32

// resetTokenGenerator is the default implementation of
// [ResetTokenGenerator]. The token digest is an unkeyed sha256: the input
// already carries full CSPRNG entropy, so a work factor or pepper would add
// nothing, while the digest still makes stored tokens useless to anyone who
// reads the database.
type resetTokenGenerator struct {
	ttl time.Duration

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

// NewResetTokenGenerator constructs a [ResetTokenGenerator] whose tokens
// expire ttl after generation.
func NewResetTokenGenerator(ttl time.Duration) ResetTokenGenerator {
	return &resetTokenGenerator{
		ttl: ttl,
		now: time.Now,
	}
}

// Generate implements [ResetTokenGenerator]. It reads 32 random bytes from
// the OS CSPRNG, hex-encodes them as the plain token, and returns the
// sha256-hex digest to persist alongside the fixed expiry deadline.
// Returns an error only if the random read fails.
func (g *resetTokenGenerator) Generate() (string, string, time.Time, error) {
	raw := make([]byte, resetTokenBytes)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", "", time.Time{}, err
	}

	plain := hex.EncodeToString(raw)
	return plain, g.HashToken(plain), g.now().Add(g.ttl), nil
}

// HashToken implements [ResetTokenGenerator].
func (g *resetTokenGenerator) HashToken(plainToken string) string {
	digest := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(digest[:])
}

// Verify implements [ResetTokenGenerator]. The digest comparison is
// constant time and the deadline check is strict: a token is accepted only
// while now < expiresAt.
func (g *resetTokenGenerator) Verify(plainToken, storedHash string, expiresAt, now time.Time) bool {
	if storedHash == "" || expiresAt.IsZero() {
		return false
	}
	if !now.Before(expiresAt) {
		return false
	}

	candidate := g.HashToken(plainToken)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(storedHash)) == 1
}
