package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrRemote        = errors.New("remote platform error")
	ErrTimeout       = errors.New("timeout")
	ErrCancelled     = errors.New("cancelled")
	ErrTransient     = errors.New("transient failure")
)

// Process exit codes reported by the CLI.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitTimedOut = 2
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of the
// exported sentinel errors above or a package sentinel that wraps one.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Mark returns a sentinel error with its own message that still matches
// marker under errors.Is. Packages use it to declare user-facing sentinels
// that classify as one of the markers above.
func Mark(message string, marker error) error {
	return &markedError{message: message, marker: marker}
}

type markedError struct {
	message string
	marker  error
}

func (e *markedError) Error() string { return e.message }

func (e *markedError) Unwrap() error { return e.marker }

// ExitCode maps a pipeline error to the process exit status. A cancelled
// operation exits cleanly; a readiness timeout is distinguishable from a
// failure so scripts can ask again later.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrCancelled):
		return ExitOK
	case errors.Is(err, ErrTimeout):
		return ExitTimedOut
	default:
		return ExitFailure
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
