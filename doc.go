// Package goCred manages the authentication credential lifecycle for user
// identities: salted adaptive password hashing and verification, single-use
// password-reset tokens with bounded expiry, backdated change timestamps that
// invalidate previously issued session tokens, and soft-delete visibility
// filtering on every read.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// goCred is the public surface. It exposes [Engine], [Builder], [Config],
// [Credential], and the [CredentialStore] persistence interface that callers
// implement (or satisfy via [Builder.WithRedis], which installs the bundled
// Redis-backed store). Flow orchestration, token generation, and the bundled
// store live under internal/ and are never exported directly.
//
// # What this package must NOT do
//
//   - Issue or transport session tokens. Freshness checking only classifies
//     an issued-at instant against the last password change.
//   - Deliver reset tokens. RequestPasswordReset returns the raw token for
//     out-of-band delivery and persists only its SHA-256 hash.
//   - Hard-delete credentials. Deactivation hides a record from default
//     reads; the record stays in storage.
//
// # Security contract
//
// Plaintext passwords and confirmation values exist only as call arguments
// and are never persisted. Password verification and reset-token matching use
// constant-time comparison. A credential is never saved with a non-hashed
// password on any path.
package goCred
