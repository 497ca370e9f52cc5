package main

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"muxcli/internal/ingest"
	"muxcli/internal/readiness"
	"muxcli/internal/services"
	"muxcli/internal/services/mux"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	return encodeJSON(cmd.OutOrStdout(), v)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type jsonError struct {
	Type       string   `json:"type"`
	Message    string   `json:"message"`
	StatusCode int      `json:"status_code,omitempty"`
	Messages   []string `json:"messages,omitempty"`
}

func writeJSONError(w io.Writer, err error) error {
	payload := jsonError{Type: errorType(err), Message: err.Error()}
	var apiErr *mux.APIError
	if errors.As(err, &apiErr) {
		payload.StatusCode = apiErr.StatusCode
		payload.Messages = apiErr.Messages
	}
	var terminal *readiness.TerminalError
	if errors.As(err, &terminal) {
		payload.Messages = terminal.Messages
	}
	return encodeJSON(w, map[string]jsonError{"error": payload})
}

var errorTypes = []struct {
	target error
	name   string
}{
	{ingest.ErrModeConflict, "mode_conflict"},
	{ingest.ErrNoFilesMatched, "no_files_matched"},
	{ingest.ErrPatternIsDirectory, "pattern_is_directory"},
	{ingest.ErrInvalidPattern, "invalid_pattern"},
	{ingest.ErrManifestNotFound, "manifest_not_found"},
	{ingest.ErrManifestInvalidJSON, "manifest_invalid_json"},
	{ingest.ErrPassthroughTooLong, "passthrough_too_long"},
	{ingest.ErrInvalidOverride, "invalid_option"},
	{ingest.ErrConfirmationNeeded, "confirmation_required"},
	{ingest.ErrUserCancelled, "user_cancelled"},
	{ingest.ErrTransferFailed, "transfer_failed"},
	{readiness.ErrAssetErrored, "asset_errored"},
	{readiness.ErrUploadErrored, "upload_errored"},
	{readiness.ErrRenditionErrored, "rendition_errored"},
	{readiness.ErrTimedOut, "poll_timed_out"},
	{services.ErrConfiguration, "configuration_error"},
}

// errorType names the failure class for machine consumers.
func errorType(err error) string {
	for _, candidate := range errorTypes {
		if errors.Is(err, candidate.target) {
			return candidate.name
		}
	}
	var apiErr *mux.APIError
	if errors.As(err, &apiErr) {
		return "platform_api_error"
	}
	switch {
	case errors.Is(err, services.ErrValidation):
		return "validation_error"
	case errors.Is(err, services.ErrNotFound):
		return "not_found"
	case errors.Is(err, services.ErrTransient):
		return "transient_error"
	default:
		return "error"
	}
}
