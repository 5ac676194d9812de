package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ordesk/ordesk/internal/pkg/models"
	"github.com/ordesk/ordesk/services/accounts"
)

// CreateOTP supersedes every unused code for the email and inserts the new
// record, in one transaction. Concurrent issues for the same email resolve to
// last-request-wins: whichever insert commits later leaves the only live code.
func (r *AccountRepo) CreateOTP(ctx context.Context, otp *models.OTP) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Invalidation by supersession: a leaked earlier code must not stay valid
	// alongside the new one
	query := `
		UPDATE otps
		SET used = true
		WHERE email = $1 AND used = false
	`
	if _, err := tx.ExecContext(ctx, query, otp.Email); err != nil {
		return fmt.Errorf("failed to supersede previous codes: %w", err)
	}

	query = `
		INSERT INTO otps (id, email, code, used, created_at, expires_at)
		VALUES (:id, :email, :code, :used, :created_at, :expires_at)
	`
	if _, err := tx.NamedExecContext(ctx, query, otp); err != nil {
		return fmt.Errorf("failed to insert code: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetActiveOTP retrieves the unused, unexpired record matching email and code.
// Expired rows are left in place and filtered out here; no sweeper is needed
// for correctness.
func (r *AccountRepo) GetActiveOTP(ctx context.Context, email, code string) (*models.OTP, error) {
	query := `
		SELECT id, email, code, used, created_at, expires_at
		FROM otps
		WHERE email = $1 AND code = $2 AND used = false AND expires_at > $3
		ORDER BY created_at DESC
		LIMIT 1
	`

	var otp models.OTP
	err := r.db.GetContext(ctx, &otp, query, email, code, time.Now())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, accounts.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get code: %w", err)
	}

	return &otp, nil
}

// ConsumeOTPAndSetVerifier flips the matching active code to used and updates
// the user's verifier in the same transaction. If no active code matches, the
// transaction rolls back and the verifier is untouched.
func (r *AccountRepo) ConsumeOTPAndSetVerifier(ctx context.Context, email, code string, userID uuid.UUID, verifier string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE otps
		SET used = true
		WHERE email = $1 AND code = $2 AND used = false AND expires_at > $3
		RETURNING id
	`

	var otpID uuid.UUID
	err = tx.QueryRowContext(ctx, query, email, code, time.Now()).Scan(&otpID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to consume code: %w", err)
	}

	query = `
		UPDATE users
		SET password_verifier = $1, updated_at = $2
		WHERE id = $3
	`
	if _, err := tx.ExecContext(ctx, query, verifier, time.Now(), userID); err != nil {
		return false, fmt.Errorf("failed to update password verifier: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return true, nil
}
