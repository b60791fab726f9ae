// Package errmap provides transport mappers for timepal and request errors.
// Every client-facing error has an explicit HTTP status, code and exit code.
package errmap

import (
	"errors"
	"net/http"

	"github.com/aelexs/timepal/internal/domain"
	"github.com/aelexs/timepal/pkg/timepal"
)

// HTTPError represents an HTTP error response.
type HTTPError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e HTTPError) Error() string {
	return e.Message
}

// Error codes shared by the HTTP service and the CLI.
const (
	CodeMalformedPattern = "MALFORMED_PATTERN"
	CodeFieldUnavailable = "FIELD_UNAVAILABLE"
	CodeUnparseable      = "UNPARSEABLE"
	CodeNullInput        = "NULL_INPUT"
	CodeInvalidArgument  = "INVALID_ARGUMENT"
	CodeRequestTooLarge  = "REQUEST_TOO_LARGE"
	CodeInternal         = "INTERNAL"
)

// httpMapping defines an error to HTTP status/code mapping.
type httpMapping struct {
	err        error
	statusCode int
	code       string
}

// httpMappings maps errors to HTTP status codes and error codes.
// Order matters: first match wins (via errors.Is).
var httpMappings = []httpMapping{
	// Pattern and value errors
	{timepal.ErrMalformedPattern, http.StatusBadRequest, CodeMalformedPattern},
	{timepal.ErrFieldUnavailable, http.StatusBadRequest, CodeFieldUnavailable},
	{timepal.ErrUnparseable, http.StatusBadRequest, CodeUnparseable},
	{timepal.ErrNullInput, http.StatusBadRequest, CodeNullInput},

	// Validation errors
	{timepal.ErrInvalidOffset, http.StatusBadRequest, CodeInvalidArgument},
	{timepal.ErrInvalidField, http.StatusBadRequest, CodeInvalidArgument},
	{domain.ErrInvalidInput, http.StatusBadRequest, CodeInvalidArgument},

	// Request limits
	{domain.ErrRequestTooLarge, http.StatusRequestEntityTooLarge, CodeRequestTooLarge},
}

// ToHTTPError converts an error to an HTTP error.
func ToHTTPError(err error) HTTPError {
	if err == nil {
		return HTTPError{StatusCode: http.StatusOK}
	}
	for _, m := range httpMappings {
		if errors.Is(err, m.err) {
			return HTTPError{StatusCode: m.statusCode, Code: m.code, Message: err.Error()}
		}
	}
	// Never expose internal error details to clients
	return HTTPError{StatusCode: http.StatusInternalServerError, Code: CodeInternal, Message: "internal error"}
}

// ToHTTPStatusCode extracts just the HTTP status code for an error.
func ToHTTPStatusCode(err error) int {
	return ToHTTPError(err).StatusCode
}
