package goCred

const (
	auditEventCredentialCreateSuccess   = "credential_create_success"
	auditEventCredentialCreateFailure   = "credential_create_failure"
	auditEventCredentialCreateDuplicate = "credential_create_duplicate"
	auditEventLoginSuccess              = "login_success"
	auditEventLoginFailure              = "login_failure"
	auditEventPasswordChangeSuccess     = "password_change_success"
	auditEventPasswordChangeFailure     = "password_change_failure"
	auditEventPasswordResetRequest      = "password_reset_request"
	auditEventPasswordResetRateLimited  = "password_reset_rate_limited"
	auditEventPasswordResetConfirm      = "password_reset_confirm"
	auditEventPasswordResetExpired      = "password_reset_expired"
	auditEventPasswordResetInvalid      = "password_reset_invalid"
	auditEventStaleTokenRejected        = "stale_token_rejected"
	auditEventCredentialDeactivated     = "credential_deactivated"
	auditEventCredentialReactivated     = "credential_reactivated"
)

func auditErrorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
