package goCred

import "errors"

var (
	// ErrIdentifierRequired is returned when a mutation is attempted without
	// an identifier.
	ErrIdentifierRequired = errors.New("identifier required")
	// ErrPasswordTooShort is returned when a password is shorter than the
	// configured minimum.
	ErrPasswordTooShort = errors.New("password too short")
	// ErrPasswordMismatch is returned when the confirmation value does not
	// equal the password on a create or explicit password-set operation.
	ErrPasswordMismatch = errors.New("passwords are not the same")
	// ErrCredentialNotFound is returned for unknown identifiers and for
	// credentials hidden by the soft-delete filter.
	ErrCredentialNotFound = errors.New("credential not found")
	// ErrCredentialExists is returned when creation would violate identifier
	// uniqueness.
	ErrCredentialExists = errors.New("credential already exists")
	// ErrResetTokenInvalid is returned when no pending reset matches the
	// supplied token.
	ErrResetTokenInvalid = errors.New("invalid reset token")
	// ErrResetTokenExpired is returned when a matching reset token is past
	// its expiry.
	ErrResetTokenExpired = errors.New("reset token expired")
	// ErrResetRateLimited is returned when reset requests for an identifier
	// exceed the configured window.
	ErrResetRateLimited = errors.New("password reset rate limited")
	// ErrStoreUnavailable wraps infrastructure failures from the credential
	// store.
	ErrStoreUnavailable = errors.New("credential store unavailable")
	// ErrEngineNotReady is returned when an Engine method is called before
	// Builder.Build completed.
	ErrEngineNotReady = errors.New("engine not initialized")
)

// IsValidation reports whether err belongs to the recoverable validation
// group: the request was malformed and no mutation was attempted.
func IsValidation(err error) bool {
	return errors.Is(err, ErrIdentifierRequired) ||
		errors.Is(err, ErrPasswordTooShort) ||
		errors.Is(err, ErrPasswordMismatch)
}
