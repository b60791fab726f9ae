package domain

import "errors"

// Request errors raised by the service surfaces before the facade is called.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrRequestTooLarge = errors.New("request too large")
)
