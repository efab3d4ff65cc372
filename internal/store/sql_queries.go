// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

// psql is the squirrel statement builder configured for PostgreSQL $n
// placeholders. All dynamic queries of the user repository go through it.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// userColumns are the identity columns safe to load on any lookup.
var userColumns = []string{
	"user_id",
	"email",
	"name",
	"role",
	"password_changed_at",
	"active",
	"created_at",
}

// credentialColumns extends userColumns with the credential-bearing fields.
// They are selected only when [FindOptions.WithCredentials] is set, so the
// password hash never travels further than the flow that asked for it.
var credentialColumns = append(
	append([]string{}, userColumns...),
	"password_hash",
	"reset_token_hash",
	"reset_token_expires_at",
)

// createUser inserts a new account and returns the canonical row. The
// unique index on email turns concurrent duplicate signups into a
// unique_violation handled by the repository.
const createUser = `INSERT INTO users (email, name, role, password_hash)
    VALUES ($1, $2, $3, $4)
    RETURNING user_id, email, name, role, password_changed_at, active, created_at;`

// buildFindUserQuery is the shared base of all user lookups: column set and
// activity filter are driven by opts, the caller adds its own predicate.
func buildFindUserQuery(opts FindOptions) sq.SelectBuilder {
	columns := userColumns
	if opts.WithCredentials {
		columns = credentialColumns
	}

	query := psql.Select(columns...).From("users")
	if !opts.IncludeInactive {
		query = query.Where(sq.Eq{"active": true})
	}

	return query
}

func buildFindUserByEmailQuery(email string, opts FindOptions) (string, []any, error) {
	return buildFindUserQuery(opts).
		Where(sq.Eq{"email": email}).
		ToSql()
}

func buildFindUserByIDQuery(userID int64, opts FindOptions) (string, []any, error) {
	return buildFindUserQuery(opts).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

// buildFindUserByResetTokenQuery always loads credential columns and only
// matches tokens whose deadline is still in the future at now. The service
// re-validates both conditions before mutating anything.
func buildFindUserByResetTokenQuery(tokenHash string, now time.Time) (string, []any, error) {
	return buildFindUserQuery(FindOptions{WithCredentials: true}).
		Where(sq.Eq{"reset_token_hash": tokenHash}).
		Where(sq.Gt{"reset_token_expires_at": now}).
		ToSql()
}

// buildUpdatePasswordQuery rewrites the password hash and clears the reset
// state in one statement, so a consumed reset token can never survive the
// password rewrite it authorized.
func buildUpdatePasswordQuery(userID int64, passwordHash string, changedAt time.Time) (string, []any, error) {
	return psql.Update("users").
		Set("password_hash", passwordHash).
		Set("password_changed_at", changedAt).
		Set("reset_token_hash", nil).
		Set("reset_token_expires_at", nil).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildSetResetTokenQuery(userID int64, tokenHash string, expiresAt time.Time) (string, []any, error) {
	return psql.Update("users").
		Set("reset_token_hash", tokenHash).
		Set("reset_token_expires_at", expiresAt).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildClearResetTokenQuery(userID int64) (string, []any, error) {
	return psql.Update("users").
		Set("reset_token_hash", nil).
		Set("reset_token_expires_at", nil).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildDeactivateUserQuery(userID int64) (string, []any, error) {
	return psql.Update("users").
		Set("active", false).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}
