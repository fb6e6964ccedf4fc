package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxUnitNameLength bounds a single lexical form of a unit.
const maxUnitNameLength = 64

// ValidateUnitName validates one lexical form of a unit (name, plural, symbol
// or alternate name) before it is compiled into a grammar.
//
// The rules are conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No leading or trailing whitespace
//   - No decimal digits (they would be read as part of the amount)
//   - Maximum length of 64 characters
func ValidateUnitName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidUnitName, "unit name cannot be empty")
	}

	if len(name) > maxUnitNameLength {
		return New(ErrCodeInvalidUnitName, "unit name too long (max %d characters): %q", maxUnitNameLength, name)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidUnitName, "unit name contains invalid control characters: %q", name)
		}
		if r >= '0' && r <= '9' {
			return New(ErrCodeInvalidUnitName, "unit name cannot contain digits: %q", name)
		}
	}

	if strings.TrimSpace(name) != name {
		return New(ErrCodeInvalidUnitName, "unit name has surrounding whitespace: %q", name)
	}

	return nil
}

// kindNameRegex matches valid quantity kind names.
var kindNameRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// ValidateKindName validates a quantity kind name such as "Length" or "Money".
func ValidateKindName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "kind name cannot be empty")
	}

	if !kindNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid kind name: %q", name)
	}

	return nil
}

// ValidatePowerRange validates an inclusive exponent range. A max below min is
// accepted as the "unbounded above" sentinel; a zero min is not.
func ValidatePowerRange(min, max uint8) error {
	if min == 0 {
		return New(ErrCodeInvalidInput, "power range must start at 1 or above, got %d", min)
	}
	return nil
}
