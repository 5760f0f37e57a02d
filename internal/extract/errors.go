package extract

import (
	"errors"
	"fmt"
)

// ErrorKind classifies structured extraction failures so callers can decide
// whether to retry, back off, or fall back to the scraped record alone.
type ErrorKind string

const (
	// KindTimeout means the provider did not answer within the deadline.
	KindTimeout ErrorKind = "timeout"
	// KindQuotaExceeded means the provider rejected the call for rate or
	// quota reasons. Retrying immediately only burns more quota.
	KindQuotaExceeded ErrorKind = "quota_exceeded"
	// KindMalformedResponse means the provider answered but the payload was
	// not valid JSON or did not match the extraction schema.
	KindMalformedResponse ErrorKind = "malformed_response"
	// KindUnavailable covers every other provider failure.
	KindUnavailable ErrorKind = "unavailable"
)

// Error describes a structured extraction failure.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extract: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("extract: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// KindOf returns the kind of an extraction error, or KindUnavailable when the
// error is not an *Error.
func KindOf(err error) ErrorKind {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Kind
	}
	return KindUnavailable
}
