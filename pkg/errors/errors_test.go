package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNoUnitMatch, "no unit in %q", "5 zorks")

	if err.Code != ErrCodeNoUnitMatch {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNoUnitMatch)
	}

	if err.Message != `no unit in "5 zorks"` {
		t.Errorf("Message = %v, want %v", err.Message, `no unit in "5 zorks"`)
	}

	expected := `NO_UNIT_MATCH: no unit in "5 zorks"`
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("match timeout")
	err := Wrap(ErrCodeInternal, cause, "grammar failed")

	if err.Code != ErrCodeInternal {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInternal)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeDifferentPower, "test"),
			code:     ErrCodeDifferentPower,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeDifferentPower, "test"),
			code:     ErrCodeDifferentKind,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInternal, New(ErrCodeNoUnitMatch, "inner"), "outer"),
			code:     ErrCodeInternal,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{"Error type", New(ErrCodePowerOutOfRange, "test"), ErrCodePowerOutOfRange},
		{"plain error", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"Error type", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain error", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsParseFailure(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{New(ErrCodeNoNumberFound, "x"), true},
		{New(ErrCodeNoUnitMatch, "x"), true},
		{New(ErrCodePowerMismatch, "x"), true},
		{New(ErrCodeDuplicateBaseUnit, "x"), false},
		{errors.New("plain"), false},
	}

	for _, tt := range tests {
		if got := IsParseFailure(tt.err); got != tt.want {
			t.Errorf("IsParseFailure(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
