// Package audit defines goCred's audit event model, sink interface, and the
// buffered dispatcher that decouples engine latency from sink latency.
//
// # What this package must NOT do
//
//   - Carry secrets: events never contain passwords, hashes, or raw reset
//     tokens.
//   - Block engine operations when configured to drop on a full buffer.
package audit
