// internal/core/errors_test.go
package core

import (
	"errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	err := &Error{Code: "TEST_ERROR", Message: "test message"}
	if err.Error() != "[TEST_ERROR] test message" {
		t.Errorf("unexpected error string: %s", err.Error())
	}
}

func TestError_ErrorWithCause(t *testing.T) {
	err := WrapError(ErrInvalidInput, errors.New("strike must be positive"))
	want := "[INVALID_INPUT] invalid input: strike must be positive"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{Code: "WRAP", Message: "wrapped", Cause: cause}
	if !errors.Is(err, cause) {
		t.Error("Unwrap should return cause")
	}
}

func TestError_Is(t *testing.T) {
	if !errors.Is(ErrConfigInvalid, ErrConfigInvalid) {
		t.Error("same error should match")
	}
	wrapped := WrapError(ErrUnknownMarket, errors.New("nyse"))
	if !errors.Is(wrapped, ErrUnknownMarket) {
		t.Error("wrapped error should match by code")
	}
	if errors.Is(wrapped, ErrUnknownAssetClass) {
		t.Error("different codes should not match")
	}
}

func TestWrapError(t *testing.T) {
	cause := errors.New("original")
	wrapped := WrapError(ErrArchiveFailed, cause)
	if wrapped.Cause != cause {
		t.Error("cause not set")
	}
	if wrapped.Code != ErrArchiveFailed.Code {
		t.Error("code not preserved")
	}
}
