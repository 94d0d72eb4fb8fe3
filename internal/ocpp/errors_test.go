package ocpp

import (
	"errors"
	"testing"
)

func TestErrorResponseFor_UnknownAction(t *testing.T) {
	err := NewUnknownActionError("FooBar")
	ce := ErrorResponseFor("msg-1", err)

	if ce.ErrorCode != ErrorCodeNotImplemented {
		t.Errorf("expected ErrorCodeNotImplemented, got %s", ce.ErrorCode)
	}
	if ce.UniqueID != "msg-1" {
		t.Errorf("expected UniqueID msg-1, got %s", ce.UniqueID)
	}
}

func TestErrorResponseFor_PayloadError(t *testing.T) {
	cause := errors.New("missing required field")
	err := NewPayloadError("BootNotification", cause)
	ce := ErrorResponseFor("msg-2", err)

	if ce.ErrorCode != ErrorCodePropertyConstraintViolation {
		t.Errorf("expected ErrorCodePropertyConstraintViolation, got %s", ce.ErrorCode)
	}
}

func TestErrorResponseFor_GenericError(t *testing.T) {
	ce := ErrorResponseFor("msg-3", errors.New("boom"))
	if ce.ErrorCode != ErrorCodeInternalError {
		t.Errorf("expected ErrorCodeInternalError, got %s", ce.ErrorCode)
	}
}

func TestPayloadError_Unwrap(t *testing.T) {
	cause := errors.New("underlying")
	err := NewPayloadError("Heartbeat", cause)

	if !errors.Is(err, cause) {
		t.Error("expected PayloadError to unwrap to its cause")
	}
}

func TestUnknownActionError_Message(t *testing.T) {
	err := NewUnknownActionError("Bogus")
	if err.Error() != "unknown action: Bogus" {
		t.Errorf("unexpected error message: %s", err.Error())
	}
}
