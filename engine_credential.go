package goCred

import (
	"context"
	"errors"

	"github.com/MrEthical07/goCred/internal/flows"
)

// CreateCredential registers a new credential. The password and its
// confirmation must match, meet the minimum length, and the identifier must
// be unique. On success the stored record carries only the bcrypt hash; the
// confirmation value is discarded during validation and PasswordChangedAt
// stays unset.
func (e *Engine) CreateCredential(ctx context.Context, input CreateCredentialInput) (CredentialView, error) {
	if e == nil {
		return CredentialView{}, ErrEngineNotReady
	}

	rec, err := flows.RunCreateCredential(ctx, input.Identifier, input.Password, input.PasswordConfirm, e.mutationDeps())
	if err != nil {
		switch {
		case IsValidation(err):
			e.metricInc(MetricCredentialCreateValidation)
			e.emitAudit(ctx, AuditEvent{
				EventType:  auditEventCredentialCreateFailure,
				Identifier: input.Identifier,
				Error:      auditErrorString(err),
			})
		case errors.Is(err, ErrCredentialExists):
			e.metricInc(MetricCredentialCreateDuplicate)
			e.emitAudit(ctx, AuditEvent{
				EventType:  auditEventCredentialCreateDuplicate,
				Identifier: input.Identifier,
				Error:      auditErrorString(err),
			})
		default:
			e.emitAudit(ctx, AuditEvent{
				EventType:  auditEventCredentialCreateFailure,
				Identifier: input.Identifier,
				Error:      auditErrorString(err),
			})
		}
		return CredentialView{}, err
	}

	e.metricInc(MetricCredentialCreateSuccess)
	e.emitAudit(ctx, AuditEvent{
		EventType:    auditEventCredentialCreateSuccess,
		Identifier:   rec.Identifier,
		CredentialID: rec.ID,
		Success:      true,
	})

	return recordToCredential(rec).View(), nil
}

// ChangePassword sets a new password on an existing, active credential.
// PasswordChangedAt is stamped backdated by the configured skew so session
// tokens issued in the same instant are classified as superseded.
func (e *Engine) ChangePassword(ctx context.Context, identifier, newPassword, confirm string) (CredentialView, error) {
	if e == nil {
		return CredentialView{}, ErrEngineNotReady
	}

	cred, err := e.lookupActive(ctx, identifier)
	if err != nil {
		e.metricInc(MetricPasswordChangeFailure)
		e.emitAudit(ctx, AuditEvent{
			EventType:  auditEventPasswordChangeFailure,
			Identifier: identifier,
			Error:      auditErrorString(err),
		})
		return CredentialView{}, err
	}

	rec := credentialToRecord(cred)
	if err := flows.RunChangePassword(ctx, rec, newPassword, confirm, e.mutationDeps()); err != nil {
		e.metricInc(MetricPasswordChangeFailure)
		e.emitAudit(ctx, AuditEvent{
			EventType:    auditEventPasswordChangeFailure,
			Identifier:   identifier,
			CredentialID: cred.ID,
			Error:        auditErrorString(err),
		})
		return CredentialView{}, err
	}

	e.metricInc(MetricPasswordChangeSuccess)
	e.emitAudit(ctx, AuditEvent{
		EventType:    auditEventPasswordChangeSuccess,
		Identifier:   identifier,
		CredentialID: cred.ID,
		Success:      true,
	})

	return recordToCredential(rec).View(), nil
}

// Deactivate soft-deletes a credential: the record stays in storage but
// disappears from every default read, and the identity can no longer log in.
// Deactivating an already-inactive credential is a no-op.
func (e *Engine) Deactivate(ctx context.Context, identifier string) error {
	return e.setActive(ctx, identifier, false, auditEventCredentialDeactivated)
}

// Reactivate restores a soft-deleted credential to default visibility.
func (e *Engine) Reactivate(ctx context.Context, identifier string) error {
	return e.setActive(ctx, identifier, true, auditEventCredentialReactivated)
}

func (e *Engine) setActive(ctx context.Context, identifier string, active bool, eventType string) error {
	if e == nil {
		return ErrEngineNotReady
	}

	cred, err := e.lookupAny(ctx, identifier)
	if err != nil {
		return err
	}
	if cred.Active == active {
		return nil
	}

	cred.Active = active
	if err := e.store.Save(ctx, cred); err != nil {
		return err
	}

	e.emitAudit(ctx, AuditEvent{
		EventType:    eventType,
		Identifier:   identifier,
		CredentialID: cred.ID,
		Success:      true,
	})

	return nil
}
