package mux

import (
	"fmt"
	"strings"

	"muxcli/internal/services"
)

// APIError is a structured failure returned by the platform.
type APIError struct {
	StatusCode int      `json:"status_code"`
	Type       string   `json:"type"`
	Messages   []string `json:"messages"`
	Operation  string   `json:"operation"`
}

func (e *APIError) Error() string {
	detail := strings.Join(e.Messages, "; ")
	if detail == "" {
		detail = "no error message"
	}
	if e.Type != "" {
		return fmt.Sprintf("%s: http %d %s: %s", e.Operation, e.StatusCode, e.Type, detail)
	}
	return fmt.Sprintf("%s: http %d: %s", e.Operation, e.StatusCode, detail)
}

// Unwrap tags platform failures with the remote marker; a 404 is also ErrNotFound.
func (e *APIError) Unwrap() []error {
	if e.StatusCode == 404 {
		return []error{services.ErrRemote, services.ErrNotFound}
	}
	return []error{services.ErrRemote}
}

type errorEnvelope struct {
	Error *struct {
		Type     string   `json:"type"`
		Messages []string `json:"messages"`
	} `json:"error"`
}
