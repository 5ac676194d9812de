package models

import (
	"time"

	"github.com/google/uuid"
)

// OTP represents a single-use numeric reset code tied to an email address.
// At most one unused, unexpired row may exist per email: issuing a new code
// marks every prior unused row for that email as used.
type OTP struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Code      string    `json:"code" db:"code"`
	Used      bool      `json:"used" db:"used"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
}

// ForgotPasswordRequest represents a request to issue a reset code
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

// VerifyResetRequest represents a request to check a reset code
type VerifyResetRequest struct {
	Email string `json:"email" validate:"required"`
	Code  string `json:"code" validate:"required"`
}

// CompleteResetRequest represents a request to consume a reset code and set a
// new password
type CompleteResetRequest struct {
	Email       string `json:"email" validate:"required"`
	Code        string `json:"code" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}
