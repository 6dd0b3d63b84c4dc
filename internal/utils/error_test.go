package utils

import (
	"errors"
	"testing"
)

func TestErrorBuilder(t *testing.T) {
	cause := errors.New("disk full")
	err := NewErrorBuilder(ErrCodeTrialExecution).
		WithCause(cause).
		WithDetails("write trial aborted").
		Build()

	if err.Code != ErrCodeTrialExecution {
		t.Errorf("Expected code %s, got %s", ErrCodeTrialExecution, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Error("Expected cause to survive unwrapping")
	}
	if err.Error() == "" {
		t.Error("Expected non-empty error string")
	}
}

func TestIsErrorType(t *testing.T) {
	err := NewUnsupportedError("goavro/csv/write is not registered")

	if !IsErrorType(err, ErrCodeUnsupported) {
		t.Error("Expected unsupported-combination code to match")
	}
	if IsErrorType(err, ErrCodeSetup) {
		t.Error("Unrelated code matched")
	}
	if IsErrorType(errors.New("plain"), ErrCodeSetup) {
		t.Error("Plain error matched an app error code")
	}
}

func TestDefaultMessages(t *testing.T) {
	err := NewErrorBuilder(ErrCodeInsufficientTrials).Build()
	if err.Message == "" {
		t.Error("Expected a default message for known codes")
	}
}

func TestRunID(t *testing.T) {
	id := NewRunID()
	if !IsValidRunID(id) {
		t.Errorf("Generated run id %q failed validation", id)
	}
	if IsValidRunID("not-a-uuid") {
		t.Error("Invalid run id accepted")
	}
}
