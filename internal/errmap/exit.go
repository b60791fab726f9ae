package errmap

import "net/http"

// Process exit codes used by the CLI.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitBadInput = 2
)

// ToExitCode maps an error onto a CLI exit code using the HTTP table:
// anything the caller could fix is ExitBadInput.
func ToExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	status := ToHTTPStatusCode(err)
	if status >= http.StatusBadRequest && status < http.StatusInternalServerError {
		return ExitBadInput
	}
	return ExitFailure
}
