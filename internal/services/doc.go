// Package services defines shared utilities consumed by the ingestion pipeline
// and the remote platform client.
//
// Key responsibilities:
//   - Context helpers that stamp pipeline stage names and per-invocation
//     correlation identifiers for logging and outbound request headers.
//   - Structured error markers plus the Wrap helper. Package-level sentinels
//     elsewhere wrap one of these markers so ExitCode can translate any
//     failure into the CLI exit status (failure, timed out, cancelled).
package services
