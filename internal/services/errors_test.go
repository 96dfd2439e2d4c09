package services

import (
	"errors"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrExternalService, "standardize", "call service", "http://host", cause)

	if !errors.Is(err, ErrExternalService) {
		t.Fatalf("marker lost: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause lost: %v", err)
	}
	want := "external service error: standardize: call service: http://host: connection refused"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestWrapWithoutCause(t *testing.T) {
	err := Wrap(ErrValidation, "fetch", "", "expected a JSON array", nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("marker lost: %v", err)
	}
	if err.Error() != "validation error: fetch: expected a JSON array" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected transient default, got %v", err)
	}
	if err.Error() != "transient failure: service failure" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
