// Package password provides one-way adaptive password hashing for goCred.
//
// # Design
//
// Hashing uses bcrypt with a configurable work factor (default cost 12).
// Output embeds algorithm, cost, and a per-call random salt, so two hashes of
// the same plaintext never match. Verification recomputes with the embedded
// salt and compares in constant time.
//
// # What this package must NOT do
//
//   - Persist anything, or log plaintext or hashes.
//   - Distinguish failure reasons to callers during verification: a
//     malformed or mismatched hash is simply a non-match.
package password
