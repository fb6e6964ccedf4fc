// Package errors provides structured error types for measure.
//
// Every failure raised by the parser, the unit algebra and the registry carries
// a machine-readable [Code] so callers can tell a recoverable input problem
// (text that does not describe a quantity) from a configuration mistake
// (a conflicting base unit discovered at startup).
//
// # Error Codes
//
// Codes fall into three groups:
//   - Parse failures: NO_NUMBER_FOUND, NO_UNIT_MATCH, POWER_MISMATCH
//   - Algebra failures: POWER_OUT_OF_RANGE, DIFFERENT_KIND, INCOMPATIBLE_KIND,
//     DIFFERENT_POWER, ABSTRACT_CONVERSION_UNRESOLVED, NULL_UNIT,
//     UNSUPPORTED_TARGET_KIND
//   - Registry and configuration failures: DUPLICATE_BASE_UNIT,
//     INVALID_POWER_REGISTRATION, REGISTRY_SEALED, INVALID_UNIT_NAME,
//     INVALID_CONFIG
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNoUnitMatch, "no unit in %q", text)
//	if errors.Is(err, errors.ErrCodeNoUnitMatch) {
//	    // retry with a narrower kind list, or reject the input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInternal, origErr, "match %q", text)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Parse errors
	ErrCodeNoNumberFound Code = "NO_NUMBER_FOUND"
	ErrCodeNoUnitMatch   Code = "NO_UNIT_MATCH"
	ErrCodePowerMismatch Code = "POWER_MISMATCH"

	// Unit algebra errors
	ErrCodePowerOutOfRange     Code = "POWER_OUT_OF_RANGE"
	ErrCodeDifferentKind       Code = "DIFFERENT_KIND"
	ErrCodeIncompatibleKind    Code = "INCOMPATIBLE_KIND"
	ErrCodeDifferentPower      Code = "DIFFERENT_POWER"
	ErrCodeAbstractUnresolved  Code = "ABSTRACT_CONVERSION_UNRESOLVED"
	ErrCodeNullUnit            Code = "NULL_UNIT"
	ErrCodeUnsupportedTarget   Code = "UNSUPPORTED_TARGET_KIND"
	ErrCodeDivisionByZero      Code = "DIVISION_BY_ZERO"
	ErrCodeInvalidInput        Code = "INVALID_INPUT"
	ErrCodeInvalidUnitName     Code = "INVALID_UNIT_NAME"
	ErrCodeNotFound            Code = "NOT_FOUND"
	ErrCodeInvalidConfig       Code = "INVALID_CONFIG"
	ErrCodeDuplicateBaseUnit   Code = "DUPLICATE_BASE_UNIT"
	ErrCodeInvalidPowerSibling Code = "INVALID_POWER_REGISTRATION"
	ErrCodeRegistrySealed      Code = "REGISTRY_SEALED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsParseFailure reports whether err describes input text that could not be
// decoded. Parse failures are recoverable: the caller may retry with a
// different kind restriction or reject the input.
func IsParseFailure(err error) bool {
	switch GetCode(err) {
	case ErrCodeNoNumberFound, ErrCodeNoUnitMatch, ErrCodePowerMismatch:
		return true
	}
	return false
}
