package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorText(t *testing.T) {
	plain := New(ErrCodeInvalidOpening, "opening %s: width must be positive", "door-1")
	if got, want := plain.Error(), "INVALID_OPENING: opening door-1: width must be positive"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := Wrap(ErrCodeNetwork, errors.New("connection refused"), "redis get %s", "k")
	if got, want := wrapped.Error(), "NETWORK_ERROR: redis get k: connection refused"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got := UserMessage(wrapped); got != "redis get k" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("root cause")
	err := fmt.Errorf("outer: %w", Wrap(ErrCodeInternal, cause, "context"))

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}
	var coded *Error
	if !errors.As(err, &coded) || coded.Code != ErrCodeInternal {
		t.Errorf("errors.As found %v", coded)
	}
}

func TestCodeLookup(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		code       Code
		validation bool
	}{
		{"coded", New(ErrCodeInvalidDimensions, "bad"), ErrCodeInvalidDimensions, true},
		{"wrapped by fmt", fmt.Errorf("decode: %w", New(ErrCodeInvalidFormat, "bad")), ErrCodeInvalidFormat, true},
		{"joined", Join(nil, New(ErrCodeInvalidConfig, "a"), errors.New("b")), ErrCodeInvalidConfig, true},
		{"network", New(ErrCodeNetwork, "down"), ErrCodeNetwork, false},
		{"plain", errors.New("plain"), "", false},
		{"nil", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%q) = false", tt.code)
			}
			if Is(tt.err, ErrCodeUnsupported) {
				t.Error("Is matched an unrelated code")
			}
			if got := IsValidation(tt.err); got != tt.validation {
				t.Errorf("IsValidation() = %v, want %v", got, tt.validation)
			}
		})
	}
}

func TestUserMessagePlain(t *testing.T) {
	if got := UserMessage(errors.New("plain error")); got != "plain error" {
		t.Errorf("UserMessage() = %q", got)
	}
}

func TestJoinDropsNil(t *testing.T) {
	if err := Join(nil, nil); err != nil {
		t.Errorf("Join(nil, nil) = %v, want nil", err)
	}
}
