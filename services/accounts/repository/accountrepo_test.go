package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/ordesk/ordesk/internal/pkg/models"
	"github.com/ordesk/ordesk/services/accounts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*AccountRepo, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// Bind as pgx so named queries rebind to $N placeholders
	sqlxDB := sqlx.NewDb(db, "pgx")
	return NewAccountRepo(&models.Config{}, sqlxDB), mock
}

func TestCreateOTP_SupersedesPreviousCodes(t *testing.T) {
	repo, mock := newMockRepo(t)

	otp := &models.OTP{
		ID:        uuid.New(),
		Email:     "alice@example.com",
		Code:      "123456",
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}

	mock.ExpectBegin()
	// Earlier unused codes for the same email get flipped first
	mock.ExpectExec(regexp.QuoteMeta("UPDATE otps")).
		WithArgs(otp.Email).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO otps")).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.CreateOTP(context.Background(), otp))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateOTP_InsertFailureRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)

	otp := &models.OTP{ID: uuid.New(), Email: "alice@example.com", Code: "123456"}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE otps")).
		WithArgs(otp.Email).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO otps")).
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	assert.Error(t, repo.CreateOTP(context.Background(), otp))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeOTPAndSetVerifier_Success(t *testing.T) {
	repo, mock := newMockRepo(t)
	userID := uuid.New()
	otpID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE otps")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(otpID.String()))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	consumed, err := repo.ConsumeOTPAndSetVerifier(context.Background(),
		"alice@example.com", "123456", userID, "deadbeef.cafe")
	require.NoError(t, err)
	assert.True(t, consumed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeOTPAndSetVerifier_NoActiveCode(t *testing.T) {
	repo, mock := newMockRepo(t)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE otps")).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	// A rejected code is not an error, and the users table is never touched
	consumed, err := repo.ConsumeOTPAndSetVerifier(context.Background(),
		"alice@example.com", "999999", userID, "deadbeef.cafe")
	require.NoError(t, err)
	assert.False(t, consumed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActiveOTP_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, code, used, created_at, expires_at")).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetActiveOTP(context.Background(), "alice@example.com", "123456")
	assert.ErrorIs(t, err, accounts.ErrNotFound)
}

func TestCreateUser_KeepsCallerAssignedIdentity(t *testing.T) {
	repo, mock := newMockRepo(t)

	// Identity is assigned by the caller before the insert; the repository
	// must store the record exactly as handed over.
	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	user := &models.User{
		ID:               uuid.MustParse("6f1a2b3c-4d5e-4f60-8a9b-0c1d2e3f4a5b"),
		Username:         "alice",
		Email:            "alice@example.com",
		FullName:         "Alice Tester",
		Role:             "member",
		PasswordVerifier: "deadbeef.cafe",
		IsActive:         true,
		CreatedAt:        created,
		UpdatedAt:        created,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(user.ID, "alice", "alice@example.com", "Alice Tester",
			"member", "deadbeef.cafe", true, created, created).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.CreateUser(context.Background(), user))
	assert.Equal(t, uuid.MustParse("6f1a2b3c-4d5e-4f60-8a9b-0c1d2e3f4a5b"), user.ID)
	assert.Equal(t, created, user.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByUsername_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1")).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetUserByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, accounts.ErrNotFound)
}

func TestGetUserByEmail_Found(t *testing.T) {
	repo, mock := newMockRepo(t)
	userID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "username", "email", "fullname", "role",
		"password_verifier", "is_active", "created_at", "updated_at",
	}).AddRow(userID.String(), "alice", "alice@example.com", "Alice Tester",
		"member", "deadbeef.cafe", true, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
		WithArgs("alice@example.com").
		WillReturnRows(rows)

	user, err := repo.GetUserByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.True(t, user.IsActive)
}

func TestUpdatePasswordVerifier_UnknownUser(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePasswordVerifier(context.Background(), uuid.New(), "deadbeef.cafe")
	assert.ErrorIs(t, err, accounts.ErrNotFound)
}

func TestMarkNotificationRead_WrongOwner(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE notifications")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.MarkNotificationRead(context.Background(), uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, accounts.ErrNotFound)
}

func TestListNotifications(t *testing.T) {
	repo, mock := newMockRepo(t)
	userID := uuid.New()
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "user_id", "type", "title", "body", "link", "read", "created_at",
	}).AddRow(uuid.New().String(), userID.String(), "order_update",
		"Order shipped", "On the way", "/orders/42", false, now)

	mock.ExpectQuery(regexp.QuoteMeta("FROM notifications")).
		WithArgs(userID.String(), 20).
		WillReturnRows(rows)

	notifications, err := repo.ListNotifications(context.Background(), userID.String(), 20)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Order shipped", notifications[0].Title)
	assert.False(t, notifications[0].Read)
}
