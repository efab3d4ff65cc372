// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_buildFindUserByEmailQuery_DefaultsExcludeInactiveAndCredentials(t *testing.T) {
	query, args, err := buildFindUserByEmailQuery("a@x.com", FindOptions{})
	require.NoError(t, err)

	q := strings.ToLower(query)

	require.Contains(t, q, "select")
	require.Contains(t, q, "from users")
	require.Contains(t, q, "active = $")
	require.Contains(t, q, "email = $")

	// credential columns must not be selected by default
	assert.NotContains(t, q, "password_hash")
	assert.NotContains(t, q, "reset_token_hash")

	require.Len(t, args, 2)
	assert.Contains(t, args, "a@x.com")
	assert.Contains(t, args, true)
}

func Test_buildFindUserByEmailQuery_WithCredentials(t *testing.T) {
	query, _, err := buildFindUserByEmailQuery("a@x.com", FindOptions{WithCredentials: true})
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "password_hash")
	assert.Contains(t, q, "reset_token_hash")
	assert.Contains(t, q, "reset_token_expires_at")
}

func Test_buildFindUserByEmailQuery_IncludeInactive(t *testing.T) {
	query, args, err := buildFindUserByEmailQuery("a@x.com", FindOptions{IncludeInactive: true})
	require.NoError(t, err)

	assert.NotContains(t, strings.ToLower(query), "active = $")
	require.Len(t, args, 1)
}

func Test_buildFindUserByIDQuery(t *testing.T) {
	query, args, err := buildFindUserByIDQuery(42, FindOptions{})
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "user_id = $")
	require.Contains(t, query, "$1")
	assert.Contains(t, args, int64(42))
}

func Test_buildFindUserByResetTokenQuery(t *testing.T) {
	now := time.Now()

	query, args, err := buildFindUserByResetTokenQuery("digest", now)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "reset_token_hash = $")
	require.Contains(t, q, "reset_token_expires_at > $")
	// reset lookups always need the credential columns
	require.Contains(t, q, "password_hash")
	// and never match deactivated accounts
	require.Contains(t, q, "active = $")

	require.Len(t, args, 3)
	assert.Contains(t, args, "digest")
	assert.Contains(t, args, now)
}

func Test_buildUpdatePasswordQuery_ClearsResetState(t *testing.T) {
	changedAt := time.Now()

	query, args, err := buildUpdatePasswordQuery(42, "new-hash", changedAt)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "update users")
	require.Contains(t, q, "password_hash = $")
	require.Contains(t, q, "password_changed_at = $")
	require.Contains(t, q, "reset_token_hash = $")
	require.Contains(t, q, "reset_token_expires_at = $")
	require.Contains(t, q, "user_id = $")

	assert.Contains(t, args, "new-hash")
	assert.Contains(t, args, changedAt)
	assert.Contains(t, args, int64(42))
	// reset fields are set to NULL
	assert.Contains(t, args, nil)
}

func Test_buildSetResetTokenQuery(t *testing.T) {
	expiresAt := time.Now().Add(10 * time.Minute)

	query, args, err := buildSetResetTokenQuery(7, "digest", expiresAt)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "reset_token_hash = $")
	require.Contains(t, q, "reset_token_expires_at = $")
	assert.Contains(t, args, "digest")
	assert.Contains(t, args, expiresAt)
}

func Test_buildClearResetTokenQuery(t *testing.T) {
	query, args, err := buildClearResetTokenQuery(7)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "reset_token_hash = $")
	require.Contains(t, q, "reset_token_expires_at = $")
	assert.Contains(t, args, int64(7))
}

func Test_buildDeactivateUserQuery(t *testing.T) {
	query, args, err := buildDeactivateUserQuery(7)
	require.NoError(t, err)

	q := strings.ToLower(query)
	require.Contains(t, q, "update users")
	require.Contains(t, q, "active = $")
	assert.Contains(t, args, false)
	assert.Contains(t, args, int64(7))
}
