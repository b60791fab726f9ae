package timepal

import "time"

// Clock provides the current time. Implementations may be real (production)
// or deterministic (testing).
type Clock interface {
	// Now returns the current time. Every call samples the clock afresh.
	Now() time.Time
}

// SystemClock implements Clock using the system clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Ensure SystemClock implements Clock at compile time.
var _ Clock = SystemClock{}
