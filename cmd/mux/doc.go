// Package main hosts the mux CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into platform API
// calls: asset ingestion from a URL, local files, or a JSON manifest, asset
// inspection and readiness waits, static rendition requests, and configuration
// scaffolding. It centralizes configuration resolution, request correlation,
// and structured logging setup so subcommands can focus on presentation.
//
// Keep this package lean: ingestion rules live in internal/ingest and the
// wire protocol in internal/services/mux. Commands here parse flags, call into
// those packages, and render results as tables or JSON.
package main
