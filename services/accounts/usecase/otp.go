package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/ordesk/ordesk/internal/pkg/logger"
	"github.com/ordesk/ordesk/internal/pkg/models"
	"github.com/ordesk/ordesk/internal/pkg/password"
	"github.com/ordesk/ordesk/services/accounts"
)

// generateResetCode produces a uniformly random 6-digit code
func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// RequestPasswordReset issues a fresh reset code for the account behind the
// email. An unknown email returns no error and no code, so callers respond
// identically whether or not the account exists. Issuing a new code
// invalidates all earlier unconsumed codes for the same email. The returned
// code is only surfaced to clients in non-production reveal mode.
func (u *AccountUC) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			logger.Debug("Password reset requested for unknown email",
				logger.String("email", email))
			return "", nil
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}
	if !user.IsActive {
		return "", nil
	}

	code, err := generateResetCode()
	if err != nil {
		return "", err
	}

	now := time.Now()
	otp := &models.OTP{
		ID:        uuid.New(),
		Email:     user.Email,
		Code:      code,
		Used:      false,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Duration(u.cfg.OTP.TTLMinutes) * time.Minute),
	}

	if err := u.otpRepo.CreateOTP(ctx, otp); err != nil {
		return "", fmt.Errorf("failed to create reset code: %w", err)
	}

	delivered, err := u.accountGW.SendResetCode(ctx, user.Email, code)
	if err != nil || !delivered {
		// The code stays valid even when delivery fails; the user can
		// retry the request and get a fresh one.
		logger.Warn("Reset code delivery failed",
			logger.String("email", user.Email),
			logger.Err(err))
	}

	logger.Info("Password reset code issued",
		logger.String("user_id", user.ID.String()))

	return code, nil
}

// VerifyResetCode reports whether the code is currently valid for the email.
// It is read-only and does not consume the code.
func (u *AccountUC) VerifyResetCode(ctx context.Context, email, code string) (bool, error) {
	if _, err := u.otpRepo.GetActiveOTP(ctx, email, code); err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get reset code: %w", err)
	}
	return true, nil
}

// CompleteReset consumes the code and installs a new password verifier in a
// single atomic step. A wrong, expired, or already consumed code leaves the
// stored verifier untouched.
func (u *AccountUC) CompleteReset(ctx context.Context, email, code, newPassword string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return accounts.ErrCodeInvalidOrExpired
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	verifier, err := password.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	consumed, err := u.otpRepo.ConsumeOTPAndSetVerifier(ctx, email, code, user.ID, verifier)
	if err != nil {
		return fmt.Errorf("failed to complete password reset: %w", err)
	}
	if !consumed {
		return accounts.ErrCodeInvalidOrExpired
	}

	logger.Info("Password reset completed",
		logger.String("user_id", user.ID.String()))

	u.publishPasswordChanged(user.ID)
	return nil
}
