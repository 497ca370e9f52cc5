// Package config loads, normalizes, and validates mux CLI configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MUX_TOKEN_ID and MUX_TOKEN_SECRET. The Config type centralizes the API
// endpoint, upload transfer settings, readiness polling cadence, and logging
// knobs the CLI needs.
//
// Credentials are deliberately not required at load time: commands validate
// their local input first and only ask for an authenticated client afterwards.
package config
