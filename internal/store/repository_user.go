package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-tour-auth/internal/logger"
	"github.com/MKhiriev/go-tour-auth/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, credential lookups, and credential-state
// mutations against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt, Active).
//
// The INSERT uses the [createUser] query which returns all identity columns
// via a RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → wrapped [ErrScanningRow].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser, user.Email, user.Name, user.Role, user.PasswordHash)
	created, err := scanUser(row, FindOptions{})
	if err != nil {
		log.Err(err).Str("func", "userRepository.CreateUser").Str("email", user.Email).Msg("error creating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		}
		if errors.Is(err, ErrScanningRow) {
			return models.User{}, err
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// FindUserByEmail implements [UserRepository]. The email must already be
// lower-cased by the caller; the store performs an exact match.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string, opts FindOptions) (models.User, error) {
	query, args, err := buildFindUserByEmailQuery(email, opts)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.findOne(ctx, "userRepository.FindUserByEmail", query, args, opts)
}

// FindUserByID implements [UserRepository].
func (r *userRepository) FindUserByID(ctx context.Context, userID int64, opts FindOptions) (models.User, error) {
	query, args, err := buildFindUserByIDQuery(userID, opts)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.findOne(ctx, "userRepository.FindUserByID", query, args, opts)
}

// FindUserByResetTokenHash implements [UserRepository]. Expired tokens are
// filtered out at the SQL level; callers still re-validate the deadline.
func (r *userRepository) FindUserByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (models.User, error) {
	query, args, err := buildFindUserByResetTokenQuery(tokenHash, now)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.findOne(ctx, "userRepository.FindUserByResetTokenHash", query, args, FindOptions{WithCredentials: true})
}

// UpdatePassword implements [UserRepository].
func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string, changedAt time.Time) error {
	query, args, err := buildUpdatePasswordQuery(userID, passwordHash, changedAt)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execForUser(ctx, "userRepository.UpdatePassword", query, args, userID)
}

// SetResetToken implements [UserRepository].
func (r *userRepository) SetResetToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	query, args, err := buildSetResetTokenQuery(userID, tokenHash, expiresAt)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execForUser(ctx, "userRepository.SetResetToken", query, args, userID)
}

// ClearResetToken implements [UserRepository].
func (r *userRepository) ClearResetToken(ctx context.Context, userID int64) error {
	query, args, err := buildClearResetTokenQuery(userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execForUser(ctx, "userRepository.ClearResetToken", query, args, userID)
}

// DeactivateUser implements [UserRepository].
func (r *userRepository) DeactivateUser(ctx context.Context, userID int64) error {
	query, args, err := buildDeactivateUserQuery(userID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execForUser(ctx, "userRepository.DeactivateUser", query, args, userID)
}

// findOne executes a single-row lookup and normalizes "no rows" into
// [ErrNoUserWasFound].
func (r *userRepository) findOne(ctx context.Context, caller, query string, args []any, opts FindOptions) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, args...)
	user, err := scanUser(row, opts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", caller).Msg("error looking up user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return user, nil
}

// execForUser executes a single-user DML statement and maps a zero affected
// row count to [ErrNoUserWasFound].
func (r *userRepository) execForUser(ctx context.Context, caller, query string, args []any, userID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", caller).Int64("user_id", userID).Msg("error executing statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", caller).Int64("user_id", userID).Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// scanUser scans one user row according to the column set implied by opts.
// Nullable credential columns are normalized: SQL NULL becomes the zero
// value / nil pointer on the model.
func scanUser(row *sql.Row, opts FindOptions) (models.User, error) {
	var user models.User
	var passwordChangedAt sql.NullTime
	var resetTokenHash sql.NullString
	var resetTokenExpiresAt sql.NullTime

	dest := []any{
		&user.UserID,
		&user.Email,
		&user.Name,
		&user.Role,
		&passwordChangedAt,
		&user.Active,
		&user.CreatedAt,
	}
	if opts.WithCredentials {
		dest = append(dest, &user.PasswordHash, &resetTokenHash, &resetTokenExpiresAt)
	}

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, err
		}
		if code := postgresError(err); code != "" {
			return models.User{}, err
		}
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	if passwordChangedAt.Valid {
		user.PasswordChangedAt = &passwordChangedAt.Time
	}
	if resetTokenHash.Valid {
		user.ResetTokenHash = resetTokenHash.String
	}
	if resetTokenExpiresAt.Valid {
		user.ResetTokenExpiresAt = &resetTokenExpiresAt.Time
	}

	return user, nil
}
