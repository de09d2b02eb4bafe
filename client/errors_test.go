package client

import (
	"errors"
	"testing"
)

func TestTimeoutErrorMessage(t *testing.T) {
	err := &TimeoutError{Op: "Outputs"}
	if err.Error() == "" {
		t.Fatalf("TimeoutError.Error() returned empty string")
	}
}

func TestStatusErrorMessage(t *testing.T) {
	err := &StatusError{Op: "SubmitBlock", Code: 503}
	if err.Error() == "" {
		t.Fatalf("StatusError.Error() returned empty string")
	}
}

func TestErrNotFoundIsSentinel(t *testing.T) {
	wrapped := errors.New("wrapped: " + ErrNotFound.Error())
	if errors.Is(wrapped, ErrNotFound) {
		t.Fatalf("a freshly constructed error should not match errors.Is against ErrNotFound")
	}
	if !errors.Is(ErrNotFound, ErrNotFound) {
		t.Fatalf("ErrNotFound must match itself")
	}
}
