package fetch

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes fetch failures. Every kind is recoverable: the
// caller falls back to manual text entry, nothing is fatal to the process.
type ErrorKind string

const (
	// KindTimeout is a request that exceeded its deadline
	KindTimeout ErrorKind = "timeout"
	// KindConnectionRefused is a transport-level connection failure
	KindConnectionRefused ErrorKind = "connection_refused"
	// KindHTTPStatus is a non-200 response without anti-bot markers
	KindHTTPStatus ErrorKind = "http_status"
	// KindBlocked is a response matching a known anti-bot signature
	KindBlocked ErrorKind = "blocked"
	// KindInvalidURL is a URL that does not parse
	KindInvalidURL ErrorKind = "invalid_url"
)

// Error represents a failure fetching a job posting page.
type Error struct {
	Kind       ErrorKind
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch %s failed (%s): %s: %v", e.URL, e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch %s failed (%s): %s", e.URL, e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf extracts the ErrorKind from an error returned by this package.
// Returns empty string for nil or foreign errors.
func KindOf(err error) ErrorKind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
