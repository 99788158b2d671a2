package goCred

import (
	"context"
	"errors"

	"github.com/MrEthical07/goCred/internal"
	"github.com/MrEthical07/goCred/internal/flows"
)

// RequestPasswordReset issues a single-use reset token for an active
// credential. Only the SHA-256 of the token is persisted, together with an
// expiry of now plus the configured TTL; the raw token is returned exactly
// once for out-of-band delivery. A repeated request overwrites any pending
// token.
func (e *Engine) RequestPasswordReset(ctx context.Context, identifier string) (string, error) {
	if e == nil {
		return "", ErrEngineNotReady
	}

	if e.resetLimiter != nil {
		if err := e.resetLimiter.CheckRequest(ctx, identifier); err != nil {
			if errors.Is(err, ErrResetRateLimited) {
				e.metricInc(MetricPasswordResetRateLimited)
				e.emitAudit(ctx, AuditEvent{
					EventType:  auditEventPasswordResetRateLimited,
					Identifier: identifier,
					Error:      auditErrorString(err),
				})
			}
			return "", err
		}
	}

	cred, err := e.lookupActive(ctx, identifier)
	if err != nil {
		return "", err
	}

	raw, err := internal.NewResetToken()
	if err != nil {
		// Random-source failure is infrastructure, not user error. Nothing
		// was persisted.
		return "", err
	}

	expires := e.now().Add(e.config.Reset.TTL)
	cred.ResetTokenHash = internal.HashResetToken(raw)
	cred.ResetTokenExpiresAt = &expires

	if err := e.store.Save(ctx, cred); err != nil {
		return "", err
	}

	e.metricInc(MetricPasswordResetRequest)
	e.emitAudit(ctx, AuditEvent{
		EventType:    auditEventPasswordResetRequest,
		Identifier:   identifier,
		CredentialID: cred.ID,
		Success:      true,
	})

	return raw, nil
}

// ResetPassword consumes a raw reset token: the matching credential is found
// by the token's hash, expiry is checked lazily at this moment, the pending
// token fields are cleared, and the new password runs through the change
// pipeline (so PasswordChangedAt is stamped and prior session tokens become
// stale). An unknown token reports ErrResetTokenInvalid; a known but expired
// one reports ErrResetTokenExpired.
func (e *Engine) ResetPassword(ctx context.Context, rawToken, newPassword, confirm string) (CredentialView, error) {
	if e == nil {
		return CredentialView{}, ErrEngineNotReady
	}

	cred, err := filterActive(e.store.FindByResetTokenHash(ctx, internal.HashResetToken(rawToken)))
	if err != nil {
		if errors.Is(err, ErrCredentialNotFound) {
			e.metricInc(MetricPasswordResetConfirmFailure)
			e.emitAudit(ctx, AuditEvent{
				EventType: auditEventPasswordResetInvalid,
				Error:     ErrResetTokenInvalid.Error(),
			})
			return CredentialView{}, ErrResetTokenInvalid
		}
		return CredentialView{}, err
	}

	if cred.ResetTokenExpiresAt == nil || e.now().After(*cred.ResetTokenExpiresAt) {
		e.metricInc(MetricPasswordResetExpired)
		e.emitAudit(ctx, AuditEvent{
			EventType:    auditEventPasswordResetExpired,
			Identifier:   cred.Identifier,
			CredentialID: cred.ID,
			Error:        ErrResetTokenExpired.Error(),
		})
		return CredentialView{}, ErrResetTokenExpired
	}

	rec := credentialToRecord(cred)
	if err := flows.RunConsumeReset(ctx, rec, newPassword, confirm, e.mutationDeps()); err != nil {
		e.metricInc(MetricPasswordResetConfirmFailure)
		e.emitAudit(ctx, AuditEvent{
			EventType:    auditEventPasswordResetInvalid,
			Identifier:   cred.Identifier,
			CredentialID: cred.ID,
			Error:        auditErrorString(err),
		})
		return CredentialView{}, err
	}

	e.metricInc(MetricPasswordResetConfirmSuccess)
	e.emitAudit(ctx, AuditEvent{
		EventType:    auditEventPasswordResetConfirm,
		Identifier:   cred.Identifier,
		CredentialID: cred.ID,
		Success:      true,
	})

	return recordToCredential(rec).View(), nil
}
