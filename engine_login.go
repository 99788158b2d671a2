package goCred

import (
	"context"
	"errors"
)

// dummyPasswordHash is verified against when the identifier is unknown or
// deactivated, so response time does not reveal whether a credential exists.
// It is a hash of a throwaway string and matches no real password here.
//
//nolint:gosec // not a credential; timing-equalization input only.
const dummyPasswordHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// VerifyLogin verifies a password against the stored hash for identifier.
// Unknown and deactivated identifiers report false exactly like a wrong
// password; the soft-delete filter is never bypassed on this path. The only
// non-nil errors are infrastructure failures.
func (e *Engine) VerifyLogin(ctx context.Context, identifier, plain string) (bool, error) {
	if e == nil {
		return false, ErrEngineNotReady
	}

	start := e.now()

	targetHash := dummyPasswordHash
	known := false

	cred, err := e.lookupActive(ctx, identifier)
	switch {
	case err == nil:
		targetHash = cred.PasswordHash
		known = true
	case errors.Is(err, ErrCredentialNotFound):
		// Fall through with the dummy hash to keep timing flat.
	default:
		return false, err
	}

	match, err := e.verifyPassword(ctx, plain, targetHash)
	if err != nil {
		return false, err
	}
	ok := match && known

	if e.metrics != nil {
		e.metrics.Observe(MetricLoginLatency, e.now().Sub(start))
	}

	if ok {
		e.metricInc(MetricLoginSuccess)
		e.emitAudit(ctx, AuditEvent{
			EventType:    auditEventLoginSuccess,
			Identifier:   identifier,
			CredentialID: cred.ID,
			Success:      true,
		})
	} else {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, AuditEvent{
			EventType:  auditEventLoginFailure,
			Identifier: identifier,
			Error:      "invalid credentials",
		})
	}

	return ok, nil
}

// verifyPassword runs bcrypt verification behind the same bounded semaphore
// as hashing; both are CPU-bound at the configured cost factor.
func (e *Engine) verifyPassword(ctx context.Context, plain, hash string) (bool, error) {
	select {
	case e.hashSem <- struct{}{}:
	case <-ctx.Done():
		return false, ctx.Err()
	}
	defer func() { <-e.hashSem }()

	return e.hasher.Verify(plain, hash), nil
}
