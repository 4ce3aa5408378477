package tmdb

import (
	"errors"
	"fmt"
)

// Sentinel errors for TMDB API operations.
var (
	ErrUnauthorized     = errors.New("tmdb: unauthorized")
	ErrNotFound         = errors.New("tmdb: not found")
	ErrRateLimited      = errors.New("tmdb: rate limited by server")
	ErrServer           = errors.New("tmdb: server error")
	ErrUnexpectedStatus = errors.New("tmdb: unexpected status")
)

// maxBodySnippet bounds the response body kept on an Error.
const maxBodySnippet = 300

// Error describes a request that failed after all attempts.
type Error struct {
	Op       string // "trending", "discover", "genres", "credits"
	URL      string
	Status   int    // 0 when no response was received
	Body     string // at most maxBodySnippet characters
	Attempts int
	Err      error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("tmdb %s: HTTP %d for %s: %s", e.Op, e.Status, e.URL, e.Body)
	}
	return fmt.Sprintf("tmdb %s: %s: %v", e.Op, e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// statusError maps an HTTP status to its sentinel.
func statusError(status int) error {
	switch {
	case status == 401:
		return ErrUnauthorized
	case status == 404:
		return ErrNotFound
	case status == 429:
		return ErrRateLimited
	case status >= 500:
		return ErrServer
	default:
		return ErrUnexpectedStatus
	}
}

// snippet truncates body to maxBodySnippet characters without splitting a rune.
func snippet(body []byte) string {
	r := []rune(string(body))
	if len(r) > maxBodySnippet {
		r = r[:maxBodySnippet]
	}
	return string(r)
}
