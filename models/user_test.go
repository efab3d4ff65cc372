package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRole_Valid(t *testing.T) {
	for _, role := range []Role{RoleUser, RoleAdmin, RoleGuide, RoleLeadGuide} {
		assert.True(t, role.Valid(), "expected %q to be valid", role)
	}

	assert.False(t, Role("superadmin").Valid())
	assert.False(t, Role("").Valid())
}

func TestUser_PasswordChangedAfter(t *testing.T) {
	issued := time.Now()

	var user User
	assert.False(t, user.PasswordChangedAfter(issued), "never-changed password is never stale")

	before := issued.Add(-time.Hour)
	user.PasswordChangedAt = &before
	assert.False(t, user.PasswordChangedAfter(issued))

	after := issued.Add(time.Hour)
	user.PasswordChangedAt = &after
	assert.True(t, user.PasswordChangedAfter(issued))
}

func TestUser_JSONHidesCredentialFields(t *testing.T) {
	now := time.Now()
	user := User{
		UserID:              1,
		Email:               "alice@example.com",
		Name:                "Alice",
		Role:                RoleUser,
		PasswordHash:        "$2a$12$digest",
		PasswordChangedAt:   &now,
		ResetTokenHash:      "reset-digest",
		ResetTokenExpiresAt: &now,
		Active:              true,
	}

	b, err := json.Marshal(user)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(b, &fields))

	assert.Contains(t, fields, "email")
	assert.NotContains(t, fields, "password_hash")
	assert.NotContains(t, fields, "passwordHash")
	assert.NotContains(t, string(b), "digest")
	assert.NotContains(t, string(b), "reset")
}
