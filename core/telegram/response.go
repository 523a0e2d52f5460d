package telegram

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTransport marks failures where no usable Bot API answer was received:
// network errors, timeouts and bodies that are not a Bot API envelope.
var ErrTransport = errors.New("telegram: transport failure")

const notModifiedDescription = "message is not modified"

// Response is the interpreted Bot API envelope of a single call.
type Response struct {
	// OK is the envelope's "ok" flag.
	OK bool
	// MessageID is result.message_id for calls that return a message.
	MessageID int
	// ErrorCode and Description are set when OK is false.
	ErrorCode   int
	Description string
	// RetryAfter is parameters.retry_after of flood-control rejections.
	RetryAfter int
}

// NotModified reports whether an edit was rejected only because the
// new content equals the current one.
func (r Response) NotModified() bool {
	return !r.OK && r.ErrorCode == 400 && strings.Contains(strings.ToLower(r.Description), notModifiedDescription)
}

// Throttled reports a flood-control rejection (HTTP 429 or retry_after set).
func (r Response) Throttled() bool {
	return !r.OK && (r.ErrorCode == 429 || r.RetryAfter > 0)
}

// Err converts a rejection into an *APIError. It returns nil for OK responses.
func (r Response) Err(method string) error {
	if r.OK {
		return nil
	}
	return &APIError{Method: method, Code: r.ErrorCode, Description: r.Description, RetryAfter: r.RetryAfter}
}

// APIError is a Bot API level rejection.
type APIError struct {
	Method      string
	Code        int
	Description string
	RetryAfter  int
}

func (e *APIError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("telegram %s rejected: %s (code=%d, retry_after=%ds)", e.Method, e.Description, e.Code, e.RetryAfter)
	}
	return fmt.Sprintf("telegram %s rejected: %s (code=%d)", e.Method, e.Description, e.Code)
}

type transportError struct {
	method string
	err    error
}

func (e *transportError) Error() string {
	return fmt.Sprintf("telegram %s: %v", e.method, e.err)
}

func (e *transportError) Unwrap() []error {
	return []error{ErrTransport, e.err}
}
