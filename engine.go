package goCred

import (
	"context"
	"time"

	internalaudit "github.com/MrEthical07/goCred/internal/audit"
	"github.com/MrEthical07/goCred/internal/flows"
	"github.com/MrEthical07/goCred/password"
)

// Engine is the credential-lifecycle engine. Construct it through [Builder];
// after Build it is immutable and safe for concurrent use.
type Engine struct {
	config       Config
	store        CredentialStore
	hasher       *password.Bcrypt
	hashSem      chan struct{}
	resetLimiter *resetRequestLimiter
	audit        *internalaudit.Dispatcher
	metrics      *Metrics

	// now and newID are swapped out by tests; production always uses
	// time.Now and uuid.NewString.
	now   func() time.Time
	newID func() string
}

// Close flushes and stops the audit dispatcher. The engine must not be used
// after Close.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped reports how many audit events were discarded because the
// buffer was full.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of all engine metrics.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

func (e *Engine) emitAudit(ctx context.Context, event AuditEvent) {
	if e == nil || e.audit == nil {
		return
	}
	event.Timestamp = e.now()
	e.audit.Emit(ctx, event)
}

// hashPassword runs bcrypt behind a bounded semaphore so concurrent logins
// and registrations cannot stack unbounded CPU work. Hashing never runs on
// anything resembling a shared dispatch loop.
func (e *Engine) hashPassword(ctx context.Context, plain string) (string, error) {
	select {
	case e.hashSem <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	defer func() { <-e.hashSem }()

	return e.hasher.Hash(plain)
}

func (e *Engine) mutationDeps() flows.MutationDeps {
	return flows.MutationDeps{
		MinPasswordLength: e.config.Password.MinLength,
		ChangeBackdate:    e.config.Freshness.ChangeBackdate,
		Now:               e.now,
		NewID:             e.newID,
		Hash:              e.hashPassword,
		Create: func(ctx context.Context, rec *flows.Record) error {
			return e.store.Create(ctx, recordToCredential(rec))
		},
		Save: func(ctx context.Context, rec *flows.Record) error {
			return e.store.Save(ctx, recordToCredential(rec))
		},
		Errors: flows.MutationErrors{
			IdentifierRequired: ErrIdentifierRequired,
			PasswordTooShort:   ErrPasswordTooShort,
			PasswordMismatch:   ErrPasswordMismatch,
		},
	}
}

// filterActive is the soft-delete read filter. Every engine read call site
// wraps its store lookup in filterActive; a deactivated credential is
// indistinguishable from an absent one.
func filterActive(cred *Credential, err error) (*Credential, error) {
	if err != nil {
		return nil, err
	}
	if cred == nil || !cred.Active {
		return nil, ErrCredentialNotFound
	}
	return cred, nil
}

// lookupActive loads a credential through the soft-delete filter.
func (e *Engine) lookupActive(ctx context.Context, identifier string) (*Credential, error) {
	return filterActive(e.store.FindByIdentifier(ctx, identifier))
}

// lookupAny bypasses the soft-delete filter. It backs the deactivation
// flows only and is never reachable from a default read.
func (e *Engine) lookupAny(ctx context.Context, identifier string) (*Credential, error) {
	cred, err := e.store.FindByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, ErrCredentialNotFound
	}
	return cred, nil
}

func credentialToRecord(cred *Credential) *flows.Record {
	return &flows.Record{
		ID:                  cred.ID,
		Identifier:          cred.Identifier,
		PasswordHash:        cred.PasswordHash,
		PasswordChangedAt:   cloneTime(cred.PasswordChangedAt),
		ResetTokenHash:      cred.ResetTokenHash,
		ResetTokenExpiresAt: cloneTime(cred.ResetTokenExpiresAt),
		Active:              cred.Active,
		CreatedAt:           cred.CreatedAt,
	}
}

func recordToCredential(rec *flows.Record) *Credential {
	return &Credential{
		ID:                  rec.ID,
		Identifier:          rec.Identifier,
		PasswordHash:        rec.PasswordHash,
		PasswordChangedAt:   cloneTime(rec.PasswordChangedAt),
		ResetTokenHash:      rec.ResetTokenHash,
		ResetTokenExpiresAt: cloneTime(rec.ResetTokenExpiresAt),
		Active:              rec.Active,
		CreatedAt:           rec.CreatedAt,
	}
}

