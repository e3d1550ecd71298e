package api

import (
	"fmt"
	"strings"
	"time"
)

// APIError is any non-2xx (or success=false) backend outcome that is not
// one of the more specific error types below. Fields carries the backend's
// field->messages validation map when one was returned.
type APIError struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("http error (%d): %s (%d field errors)", e.Status, e.Message, len(e.Fields))
	}
	return fmt.Sprintf("http error (%d): %s", e.Status, e.Message)
}

// PermissionError is a 403 carrying the backend's permission marker. It is
// never retried and callers surface it as a distinct banner.
type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("forbidden (403): %s", e.Message)
}

// RateLimitError is returned when the server responds with HTTP 429.
type RateLimitError struct {
	Message        string
	ResetTimestamp time.Time // from X-RateLimit-Reset, if present
}

func (e *RateLimitError) Error() string {
	if !e.ResetTimestamp.IsZero() {
		return fmt.Sprintf("rate limit exceeded; retry after %s", e.ResetTimestamp.Format(time.RFC3339))
	}
	return fmt.Sprintf("rate limit exceeded: %s", e.Message)
}

// permissionMarker is the substring the backend embeds in 403 bodies for
// role/permission denials, as opposed to plain forbidden resources.
const permissionMarker = "permission"

func isPermissionMessage(msg string) bool {
	return strings.Contains(strings.ToLower(msg), permissionMarker)
}
