// Package internal holds goCred's shared low-level primitives: reset-token
// generation and hashing. Nothing here is part of the public API.
package internal
