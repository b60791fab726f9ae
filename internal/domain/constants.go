// Package domain holds the service-level limits and value kinds shared by the
// timepald HTTP service and the timepal CLI.
package domain

import "time"

// Service limits. These are compiled defaults; the HTTP timeouts can be
// overridden via configuration.
const (
	// Request limits
	MaxRequestBodySize = 16 * 1024 // 16 KB; every request is a handful of short strings
	MaxPatternLength   = 256
	MaxCompareValues   = 1000

	// HTTP server defaults
	HTTPReadTimeout  = 10 * time.Second
	HTTPWriteTimeout = 10 * time.Second
	HTTPIdleTimeout  = 60 * time.Second

	// Graceful shutdown
	GracefulShutdownTimeout = 30 * time.Second // Max time from signal to exit
	ShutdownDrainDelay      = 1 * time.Second  // Health check reports 503 before the listener closes
	ShutdownHTTPTimeout     = 10 * time.Second
	ShutdownOTELTimeout     = 5 * time.Second
)

// Representation names a time representation accepted on the wire.
type Representation string

const (
	RepresentationInstant       Representation = "instant"
	RepresentationWallClock     Representation = "wall_clock"
	RepresentationLocalDateTime Representation = "local_date_time"
	RepresentationLocalDate     Representation = "local_date"
)

// IsValidRepresentation checks if a representation is supported.
func IsValidRepresentation(r Representation) bool {
	switch r {
	case RepresentationInstant, RepresentationWallClock, RepresentationLocalDateTime, RepresentationLocalDate:
		return true
	}
	return false
}

// IsAbsolute reports whether values of r denote a point on the time-line
// without needing an offset.
func IsAbsolute(r Representation) bool {
	return r == RepresentationInstant || r == RepresentationWallClock
}
