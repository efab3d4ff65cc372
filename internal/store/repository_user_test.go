package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-tour-auth/internal/logger"
	"github.com/MKhiriev/go-tour-auth/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRows(u models.User) *sqlmock.Rows {
	return sqlmock.
		NewRows([]string{"user_id", "email", "name", "role", "password_changed_at", "active", "created_at"}).
		AddRow(u.UserID, u.Email, u.Name, u.Role, u.PasswordChangedAt, u.Active, u.CreatedAt)
}

func credentialRows(u models.User) *sqlmock.Rows {
	return sqlmock.
		NewRows([]string{
			"user_id", "email", "name", "role", "password_changed_at", "active", "created_at",
			"password_hash", "reset_token_hash", "reset_token_expires_at",
		}).
		AddRow(u.UserID, u.Email, u.Name, u.Role, u.PasswordChangedAt, u.Active, u.CreatedAt,
			u.PasswordHash, u.ResetTokenHash, u.ResetTokenExpiresAt)
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Email:        "alice@example.com",
		Name:         "Alice",
		Role:         models.RoleUser,
		PasswordHash: "$2a$12$digest",
	}

	saved := user
	saved.UserID = 1
	saved.Active = true
	saved.CreatedAt = time.Now()
	saved.PasswordHash = "" // identity columns only

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Email, user.Name, user.Role, user.PasswordHash).
		WillReturnRows(userRows(saved))

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", created.UserID)
	}
	if !created.Active {
		t.Error("expected created user to be active")
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(ctx, models.User{Email: "alice@example.com"})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.ConnectionFailure))

	_, err := repo.CreateUser(ctx, models.User{Email: "alice@example.com"})
	if err == nil || errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected wrapped unexpected DB error, got %v", err)
	}
}

func TestFindUserByEmail_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		UserID:       5,
		Email:        "alice@example.com",
		Name:         "Alice",
		Role:         models.RoleGuide,
		Active:       true,
		CreatedAt:    time.Now(),
		PasswordHash: "$2a$12$digest",
	}

	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs(true, user.Email).
		WillReturnRows(credentialRows(user))

	found, err := repo.FindUserByEmail(ctx, user.Email, FindOptions{WithCredentials: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.PasswordHash != user.PasswordHash {
		t.Errorf("expected password hash to be loaded, got %q", found.PasswordHash)
	}
	if found.Role != models.RoleGuide {
		t.Errorf("expected role guide, got %q", found.Role)
	}
}

func TestFindUserByEmail_NoRows(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs(true, "ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByEmail(ctx, "ghost@example.com", FindOptions{})
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByID_NullableFieldsScanToZeroValues(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		UserID:    9,
		Email:     "bob@example.com",
		Name:      "Bob",
		Role:      models.RoleUser,
		Active:    true,
		CreatedAt: time.Now(),
	}

	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs(true, user.UserID).
		WillReturnRows(credentialRows(user))

	found, err := repo.FindUserByID(ctx, user.UserID, FindOptions{WithCredentials: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.PasswordChangedAt != nil {
		t.Error("expected nil PasswordChangedAt for NULL column")
	}
	if found.ResetTokenHash != "" {
		t.Error("expected empty ResetTokenHash for NULL column")
	}
	if found.ResetTokenExpiresAt != nil {
		t.Error("expected nil ResetTokenExpiresAt for NULL column")
	}
}

func TestFindUserByResetTokenHash_NoMatch(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT .+ FROM users").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByResetTokenHash(ctx, "digest", time.Now())
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestUpdatePassword_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	changedAt := time.Now()

	mock.ExpectExec("UPDATE users").
		WithArgs("new-hash", changedAt, nil, nil, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdatePassword(ctx, 42, "new-hash", changedAt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdatePassword_NoSuchUser(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePassword(ctx, 404, "new-hash", time.Now())
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestSetResetToken_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	expiresAt := time.Now().Add(10 * time.Minute)

	mock.ExpectExec("UPDATE users").
		WithArgs("digest", expiresAt, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetResetToken(ctx, 7, "digest", expiresAt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClearResetToken_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE users").
		WithArgs(nil, nil, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.ClearResetToken(ctx, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeactivateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE users").
		WithArgs(false, int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeactivateUser(ctx, 11); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeactivateUser_ExecError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectExec("UPDATE users").
		WillReturnError(errors.New("connection reset"))

	err := repo.DeactivateUser(ctx, 11)
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}
