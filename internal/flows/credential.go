package flows

import (
	"context"
	"time"
)

// Record is the flow-level credential representation. The root package
// converts between Record and its public Credential type at the boundary.
type Record struct {
	ID                  string
	Identifier          string
	PasswordHash        string
	PasswordChangedAt   *time.Time
	ResetTokenHash      string
	ResetTokenExpiresAt *time.Time
	Active              bool
	CreatedAt           time.Time
}

// MutationErrors carries the caller's sentinel errors so flow code reports
// failures in the caller's taxonomy without importing it.
type MutationErrors struct {
	IdentifierRequired error
	PasswordTooShort   error
	PasswordMismatch   error
}

// MutationDeps is the dependency set for the mutation pipeline.
type MutationDeps struct {
	MinPasswordLength int
	// ChangeBackdate is subtracted from Now() when stamping
	// PasswordChangedAt on an existing record, so a session token issued in
	// the same instant as the change is classified as issued before it.
	ChangeBackdate time.Duration

	Now   func() time.Time
	NewID func() string
	Hash  func(ctx context.Context, plain string) (string, error)

	Create func(ctx context.Context, rec *Record) error
	Save   func(ctx context.Context, rec *Record) error

	Errors MutationErrors
}

// ConfirmMatches is the password-confirmation check: an explicit pure
// function over both values, invoked only from password-set entry points.
func ConfirmMatches(password, confirm string) bool {
	return password == confirm
}

func validatePasswordSet(identifier, password, confirm string, deps MutationDeps) error {
	if identifier == "" {
		return deps.Errors.IdentifierRequired
	}
	if len(password) < deps.MinPasswordLength {
		return deps.Errors.PasswordTooShort
	}
	if !ConfirmMatches(password, confirm) {
		return deps.Errors.PasswordMismatch
	}
	return nil
}

// RunCreateCredential validates, hashes, and persists a brand-new record.
// PasswordChangedAt stays unset on creation. Validation failures surface
// before hashing; hash failures surface before any store write.
func RunCreateCredential(ctx context.Context, identifier, password, confirm string, deps MutationDeps) (*Record, error) {
	if err := validatePasswordSet(identifier, password, confirm, deps); err != nil {
		return nil, err
	}

	hash, err := deps.Hash(ctx, password)
	if err != nil {
		return nil, err
	}

	rec := &Record{
		ID:           deps.NewID(),
		Identifier:   identifier,
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    deps.Now(),
	}

	if err := deps.Create(ctx, rec); err != nil {
		return nil, err
	}

	return rec, nil
}

// RunChangePassword validates and hashes the new password for an existing
// record, stamps the backdated change time, and persists. rec is mutated
// only after validation and hashing succeed.
func RunChangePassword(ctx context.Context, rec *Record, newPassword, confirm string, deps MutationDeps) error {
	if err := validatePasswordSet(rec.Identifier, newPassword, confirm, deps); err != nil {
		return err
	}

	hash, err := deps.Hash(ctx, newPassword)
	if err != nil {
		return err
	}

	changedAt := deps.Now().Add(-deps.ChangeBackdate)

	rec.PasswordHash = hash
	rec.PasswordChangedAt = &changedAt

	return deps.Save(ctx, rec)
}

// RunConsumeReset clears the pending reset-token fields and routes the new
// password through the change pipeline in a single persisted write. The
// consumed token can never be replayed once the save lands.
func RunConsumeReset(ctx context.Context, rec *Record, newPassword, confirm string, deps MutationDeps) error {
	rec.ResetTokenHash = ""
	rec.ResetTokenExpiresAt = nil
	return RunChangePassword(ctx, rec, newPassword, confirm, deps)
}
