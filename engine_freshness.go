package goCred

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// CheckTokenFreshness reports whether a session token issued at
// issuedAtUnix (seconds) has been superseded by a password change on the
// credential. True means the caller must reject the token. A credential
// whose password never changed since creation never reports stale.
func (e *Engine) CheckTokenFreshness(ctx context.Context, identifier string, issuedAtUnix int64) (bool, error) {
	if e == nil {
		return false, ErrEngineNotReady
	}

	cred, err := e.lookupActive(ctx, identifier)
	if err != nil {
		return false, err
	}

	stale := cred.ChangedAfter(issuedAtUnix)
	if stale {
		e.metricInc(MetricStaleTokenRejected)
		e.emitAudit(ctx, AuditEvent{
			EventType:    auditEventStaleTokenRejected,
			Identifier:   identifier,
			CredentialID: cred.ID,
		})
	}

	return stale, nil
}

// StaleForClaims adapts [Credential.ChangedAfter] to JWT registered claims.
// A token without an issued-at claim is always stale: its freshness cannot
// be proven, so it fails closed.
func StaleForClaims(claims *jwt.RegisteredClaims, cred *Credential) bool {
	if claims == nil || claims.IssuedAt == nil {
		return true
	}
	return cred.ChangedAfter(claims.IssuedAt.Unix())
}
