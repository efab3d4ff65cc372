package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

import "time"

// PasswordHasher turns plaintext passwords into one-way adaptive digests
// and verifies candidates against stored digests.
//
// Implementations must not leak the correctness of a candidate through
// timing: verification compares in constant time and a malformed digest
// fails closed (false, no panic).
type PasswordHasher interface {
	// Hash produces a salted, adaptive digest of plaintext.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches digest.
	Verify(plaintext, digest string) bool
}

// ResetTokenGenerator creates and validates the single-use secrets of the
// password-reset handshake. Only the one-way digest of a token is ever
// persisted; the plain token exists solely in the reset email.
type ResetTokenGenerator interface {
	// Generate returns a fresh plain token, the digest to persist, and the
	// fixed expiry deadline.
	Generate() (plainToken, storedHash string, expiresAt time.Time, err error)

	// HashToken returns the digest of a candidate token, used to look up
	// the owning user record.
	HashToken(plainToken string) string

	// Verify reports whether plainToken matches storedHash and the deadline
	// has not passed at the given instant. Both checks must pass.
	Verify(plainToken, storedHash string, expiresAt, now time.Time) bool
}
