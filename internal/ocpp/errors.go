package ocpp

import (
	"errors"
	"fmt"
)

// UnknownActionError is returned by a version handler when a Call's action
// string does not resolve to any entry in that version's catalog. The
// session engine translates it into a CallError{NotImplemented} reply.
type UnknownActionError struct {
	Action string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown action: %s", e.Action)
}

// NewUnknownActionError constructs an UnknownActionError for action.
func NewUnknownActionError(action string) error {
	return &UnknownActionError{Action: action}
}

// PayloadError is returned when a Call's payload fails schema validation.
// The session engine translates it into a CallError{PropertyConstraintViolation}.
type PayloadError struct {
	Action string
	Cause  error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("invalid payload for %s: %v", e.Action, e.Cause)
}

func (e *PayloadError) Unwrap() error { return e.Cause }

// NewPayloadError wraps cause as a PayloadError for action.
func NewPayloadError(action string, cause error) error {
	return &PayloadError{Action: action, Cause: cause}
}

// ErrorResponseFor maps an error produced by a version handler's HandleCall
// to the CallError that should be sent back in reply to msgID, per the
// error taxonomy: unknown actions get NotImplemented, payload validation
// failures get PropertyConstraintViolation, anything else is InternalError.
func ErrorResponseFor(msgID string, err error) *CallError {
	var unknown *UnknownActionError
	var payload *PayloadError

	switch {
	case errors.As(err, &unknown):
		ce, _ := NewCallError(msgID, ErrorCodeNotImplemented, "Unknown action", nil)
		return ce
	case errors.As(err, &payload):
		ce, _ := NewCallError(msgID, ErrorCodePropertyConstraintViolation, payload.Error(), nil)
		return ce
	default:
		ce, _ := NewCallError(msgID, ErrorCodeInternalError, err.Error(), nil)
		return ce
	}
}
