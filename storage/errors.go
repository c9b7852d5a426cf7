package storage

import "errors"

// Pre-defined error values shared by every backend. Read paths prefer
// degrading to empty/seed results over returning these; write paths surface
// them to the caller.
var (
	// ErrNotConfigured means no backing store credentials are present for
	// the requested operation.
	ErrNotConfigured = errors.New("storage: backend not configured")

	// ErrNotAuthenticated means the operation requires a session that does
	// not exist.
	ErrNotAuthenticated = errors.New("storage: not authenticated")

	// ErrRemoteUnavailable means the hosted backend could not be reached.
	ErrRemoteUnavailable = errors.New("storage: remote backend unavailable")
)

// AuthError signals bad credentials on login or a duplicate identity on
// sign-up. Duplicate distinguishes the sign-up conflict so callers never
// have to inspect the display string.
type AuthError struct {
	Reason    string
	Duplicate bool
}

func (e *AuthError) Error() string {
	return "storage: auth: " + e.Reason
}

// IsAuthError reports whether err is (or wraps) an AuthError.
func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}
