// Package logging assembles structured slog loggers and formatting helpers used
// across the mux CLI.
//
// It owns the console/JSON handlers, centralizes level and output plumbing, and
// exposes context-aware helpers so pipeline code can tag log lines with the
// stage and per-invocation correlation ID. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
//
// CLI logs are diagnostics only and go to stderr; command results are written
// to stdout by the commands themselves.
package logging
