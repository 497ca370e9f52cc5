package ingest

import "muxcli/internal/services"

var (
	ErrModeConflict        = services.Mark("conflicting ingestion modes", services.ErrValidation)
	ErrNoFilesMatched      = services.Mark("no files matched", services.ErrValidation)
	ErrPatternIsDirectory  = services.Mark("pattern matches only directories", services.ErrValidation)
	ErrInvalidPattern      = services.Mark("invalid file pattern", services.ErrValidation)
	ErrManifestNotFound    = services.Mark("manifest not found", services.ErrNotFound)
	ErrManifestInvalidJSON = services.Mark("invalid JSON in manifest", services.ErrValidation)
	ErrPassthroughTooLong  = services.Mark("passthrough too long", services.ErrValidation)
	ErrInvalidOverride     = services.Mark("invalid option", services.ErrValidation)
	ErrConfirmationNeeded  = services.Mark("confirmation required", services.ErrValidation)
	ErrUserCancelled       = services.Mark("cancelled by user", services.ErrCancelled)
	ErrTransferFailed      = services.Mark("file transfer failed", services.ErrTransient)
)
