package accounts

import "errors"

// Failure taxonomy for the accounts core. Credential and code failures are
// deliberately generic: callers never learn whether a username exists, or
// whether a code was wrong rather than expired. Unauthenticated is a normal
// control-flow outcome, not an error to be logged. Anything outside this list
// is a transient infrastructure failure and is wrapped, not swallowed, so the
// HTTP layer can answer "try again" instead of "wrong password".
var (
	// ErrInvalidCredentials indicates a wrong username or password, without
	// distinguishing which
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrCodeInvalidOrExpired indicates a wrong, superseded, consumed or
	// expired reset code, without distinguishing which
	ErrCodeInvalidOrExpired = errors.New("code invalid or expired")

	// ErrUnauthenticated indicates a missing, expired or unresolvable session
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound indicates a record does not exist
	ErrNotFound = errors.New("not found")
)
