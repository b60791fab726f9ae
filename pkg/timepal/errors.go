package timepal

import (
	"errors"
	"fmt"
)

// Sentinel errors for timepal error conditions.
// Use errors.Is() for matching - never compare error strings.
var (
	// Pattern errors. These are always delivered inside a *FormatError.
	ErrMalformedPattern = errors.New("malformed pattern")
	ErrFieldUnavailable = errors.New("field unavailable")
	ErrUnparseable      = errors.New("text cannot be parsed")

	// Input errors
	ErrNullInput     = errors.New("required value is missing")
	ErrInvalidOffset = errors.New("invalid zone offset")
	ErrInvalidField  = errors.New("field value out of range")
)

// FormatError reports a failure to compile, render or parse a pattern.
type FormatError struct {
	Op      string // "compile", "format" or "parse"
	Pattern string
	Input   string // parse input, empty otherwise
	Err     error
}

func (e *FormatError) Error() string {
	if e.Input != "" {
		return fmt.Sprintf("timepal: %s %q with %q: %v", e.Op, e.Input, e.Pattern, e.Err)
	}
	return fmt.Sprintf("timepal: %s %q: %v", e.Op, e.Pattern, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// IsFormatError reports whether err is a pattern compile, render or parse failure.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// IsNullInput reports whether err was caused by a missing required value.
func IsNullInput(err error) bool {
	return errors.Is(err, ErrNullInput)
}

// clientErrors enumerates all errors caused by caller input.
var clientErrors = []error{
	ErrMalformedPattern,
	ErrFieldUnavailable,
	ErrUnparseable,
	ErrNullInput,
	ErrInvalidOffset,
	ErrInvalidField,
}

// IsClientError returns true if the error was caused by caller input and
// will not succeed when repeated unchanged.
func IsClientError(err error) bool {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func nullInput(what string) error {
	return fmt.Errorf("%w: %s", ErrNullInput, what)
}
