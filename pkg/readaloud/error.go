package readaloud

import (
	"errors"
	"fmt"
)

// Kind classifies a readaloud error.
type Kind string

const (
	// KindConnection is a transport failure before or during the session.
	KindConnection Kind = "connection"

	// KindProtocol is a malformed frame that cannot be safely ignored.
	KindProtocol Kind = "protocol"

	// KindInvalidArgument is a request rejected before any network call.
	KindInvalidArgument Kind = "invalid_argument"

	// KindVoiceList is a failure fetching the live voice list.
	KindVoiceList Kind = "voice_list"
)

// Error is a readaloud client error.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Message describes the failure.
	Message string

	// RequestID is the X-RequestId of the session, if one was assigned.
	RequestID string

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("readaloud: %s (%s): %v", e.Message, e.Kind, e.Err)
	}
	return fmt.Sprintf("readaloud: %s (%s)", e.Message, e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsConnection reports whether the error is a transport failure.
func (e *Error) IsConnection() bool { return e.Kind == KindConnection }

// IsProtocol reports whether the error is a protocol violation.
func (e *Error) IsProtocol() bool { return e.Kind == KindProtocol }

// IsInvalidArgument reports whether the request was rejected locally.
func (e *Error) IsInvalidArgument() bool { return e.Kind == KindInvalidArgument }

// AsError tries to convert an error to *Error.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// errTruncatedFrame marks a binary frame whose declared header length
// exceeds the message. Such frames are skipped, not surfaced.
var errTruncatedFrame = errors.New("readaloud: truncated binary frame")

func newError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}
