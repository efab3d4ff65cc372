// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements the cryptographic primitives of the credential
// core: adaptive password hashing and reset-token generation. Both are pure
// value transformations with no persistence side effects, which keeps them
// trivially safe for concurrent use.
package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the work factor applied when the configured cost is
// out of the range supported by the bcrypt library. Cost 12 puts a single
// hash at roughly 100ms on commodity hardware.
const DefaultBcryptCost = 12

// passwordHasher is the bcrypt-backed implementation of [PasswordHasher].
type passwordHasher struct {
	cost int
}

// NewPasswordHasher constructs a [PasswordHasher] with the given bcrypt
// work factor. Costs outside the library's supported range are replaced
// with [DefaultBcryptCost].
func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &passwordHasher{cost: cost}
}

// Hash implements [PasswordHasher]. The salt is generated internally by
// bcrypt, so equal plaintexts produce distinct digests.
func (p *passwordHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify implements [PasswordHasher]. bcrypt's comparison is constant time
// with respect to the candidate; any error, including a malformed digest,
// yields false rather than a fast-failing distinguishable path.
func (p *passwordHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
