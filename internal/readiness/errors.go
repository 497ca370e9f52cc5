package readiness

import (
	"fmt"
	"strings"

	"muxcli/internal/services"
)

var (
	// ErrTimedOut means the resource is still processing; ask again later.
	ErrTimedOut = services.Mark("still processing", services.ErrTimeout)
	// ErrAssetErrored reports that the platform failed to process an asset.
	ErrAssetErrored = services.Mark("asset errored", services.ErrRemote)
	// ErrRenditionErrored reports that the platform failed to produce a static rendition.
	ErrRenditionErrored = services.Mark("rendition errored", services.ErrRemote)
	// ErrUploadErrored reports a direct upload that ended without producing an asset.
	ErrUploadErrored = services.Mark("upload errored", services.ErrRemote)
)

// TerminalError is returned when a resource reaches the errored status. It
// carries the platform's messages.
type TerminalError struct {
	Kind     string
	ID       string
	Messages []string
	marker   error
}

func (e *TerminalError) Error() string {
	detail := strings.Join(e.Messages, "; ")
	if detail == "" {
		detail = "no error message reported"
	}
	return fmt.Sprintf("%s %s errored: %s", e.Kind, e.ID, detail)
}

func (e *TerminalError) Unwrap() error {
	if e.marker == nil {
		return services.ErrRemote
	}
	return e.marker
}
