package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorConstructors(t *testing.T) {
	cause := errors.New("underlying")

	tests := []struct {
		name     string
		build    func(string, error) *Error
		wantType ErrorType
	}{
		{"not found", NotFoundError, ErrTypeNotFound},
		{"conversion", ConversionError, ErrTypeConversion},
		{"remote service", RemoteServiceError, ErrTypeRemoteService},
		{"validation", ValidationError, ErrTypeValidation},
		{"config", ConfigError, ErrTypeConfig},
		{"io", IOError, ErrTypeIO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build("something broke", cause)
			if err.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", err.Type, tt.wantType)
			}
			if !errors.Is(err, cause) {
				t.Error("wrapped cause not reachable via errors.Is")
			}
			if !IsType(err, tt.wantType) {
				t.Errorf("IsType(err, %q) = false, want true", tt.wantType)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	withCause := ConversionError("rasterization failed", errors.New("bad page"))
	if got := withCause.Error(); got != "conversion_failure: rasterization failed: bad page" {
		t.Errorf("unexpected message with cause: %q", got)
	}

	withoutCause := ValidationError("empty path", nil)
	if got := withoutCause.Error(); got != "validation: empty path" {
		t.Errorf("unexpected message without cause: %q", got)
	}
}

func TestErrorIsMatchesByType(t *testing.T) {
	err := fmt.Errorf("stage failed: %w", RemoteServiceError("status 503", nil))

	if !errors.Is(err, &Error{Type: ErrTypeRemoteService}) {
		t.Error("wrapped remote service error did not match its type sentinel")
	}
	if errors.Is(err, &Error{Type: ErrTypeValidation}) {
		t.Error("remote service error matched an unrelated type sentinel")
	}
}

func TestIsTypeOnForeignError(t *testing.T) {
	if IsType(errors.New("plain"), ErrTypeIO) {
		t.Error("IsType matched a non-typed error")
	}
	if IsType(ErrNoData, ErrTypeNotFound) {
		t.Error("IsType matched the ErrNoData sentinel")
	}
}
