package goCred

import (
	"context"
	"io"
	"time"

	internalaudit "github.com/MrEthical07/goCred/internal/audit"
)

// Credential is the persisted authentication record for one user identity.
// PasswordHash, the reset-token fields, and Active are storage-only: they are
// excluded from the default projection returned by Engine operations (see
// [CredentialView]).
type Credential struct {
	ID                  string
	Identifier          string
	PasswordHash        string
	PasswordChangedAt   *time.Time
	ResetTokenHash      string
	ResetTokenExpiresAt *time.Time
	Active              bool
	CreatedAt           time.Time
}

// ChangedAfter reports whether the password was changed after a session token
// issued at issuedAtUnix (seconds). A credential whose password never changed
// since creation reports false: there are no prior tokens to invalidate.
func (c *Credential) ChangedAfter(issuedAtUnix int64) bool {
	if c == nil || c.PasswordChangedAt == nil {
		return false
	}
	return issuedAtUnix < c.PasswordChangedAt.Unix()
}

// HasPendingReset reports whether a reset token hash and expiry are both
// recorded. The two fields are always set and cleared together.
func (c *Credential) HasPendingReset() bool {
	return c != nil && c.ResetTokenHash != "" && c.ResetTokenExpiresAt != nil
}

// View returns the default read projection of the credential. The password
// hash, reset-token fields, and active flag are stripped.
func (c *Credential) View() CredentialView {
	if c == nil {
		return CredentialView{}
	}
	return CredentialView{
		ID:                c.ID,
		Identifier:        c.Identifier,
		PasswordChangedAt: cloneTime(c.PasswordChangedAt),
		CreatedAt:         c.CreatedAt,
	}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	out := *t
	return &out
}

// CredentialView is the caller-facing projection of a [Credential]. It never
// carries the password hash, the reset-token fields, or the active flag.
type CredentialView struct {
	ID                string
	Identifier        string
	PasswordChangedAt *time.Time
	CreatedAt         time.Time
}

// CreateCredentialInput is the input for [Engine.CreateCredential].
// PasswordConfirm is consumed by validation and discarded; it is not a field
// of [Credential] and can never reach storage.
type CreateCredentialInput struct {
	Identifier      string
	Password        string
	PasswordConfirm string
}

// CredentialStore is the persistence interface callers implement to integrate
// goCred with their database. Lookups return records regardless of the active
// flag; the engine applies the soft-delete filter at every read call site.
//
// The store must guarantee per-record atomicity: a read-modify-write of a
// single credential through Save must not interleave with another writer of
// the same record.
type CredentialStore interface {
	// Create persists a new credential and enforces identifier uniqueness,
	// returning ErrCredentialExists (or an error wrapping it) on duplicates.
	Create(ctx context.Context, cred *Credential) error
	// Save replaces the stored record identified by cred.Identifier.
	Save(ctx context.Context, cred *Credential) error
	// FindByIdentifier returns the record for identifier, or
	// ErrCredentialNotFound.
	FindByIdentifier(ctx context.Context, identifier string) (*Credential, error)
	// FindByResetTokenHash returns the record whose pending reset token
	// hashes to tokenHash, or ErrCredentialNotFound.
	FindByResetTokenHash(ctx context.Context, tokenHash string) (*Credential, error)
}

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine's audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer], one object per line.
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
