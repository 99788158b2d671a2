// Package stores contains goCred's bundled Redis-backed credential store.
// It is wired by the root Builder when the caller supplies a Redis client
// instead of a custom CredentialStore implementation.
//
// # What this package must NOT do
//
//   - Filter on the active flag: soft-delete visibility is applied by the
//     engine at every read call site, not hidden in storage.
//   - Expire credential records. Only an external retention job may remove
//     stale reset state; expiry is classified lazily at consumption time.
package stores
