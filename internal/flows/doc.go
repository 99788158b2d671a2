// Package flows implements goCred's credential mutation pipeline as pure
// functions over an injected dependency set. Every password-setting path
// (creation, explicit change, reset consumption) runs the same ordered
// steps: validate, hash, timestamp, persist.
//
// # Architecture boundaries
//
// Flow functions receive everything through [MutationDeps]: clock, ID
// generation, the hashing primitive, persistence callbacks, and the caller's
// sentinel errors. They hold no state and import nothing above this package.
//
// # What this package must NOT do
//
//   - Persist a plaintext password, or persist anything when validation
//     fails.
//   - Stamp PasswordChangedAt on initial creation: a brand-new credential
//     has no prior session tokens to invalidate.
package flows
