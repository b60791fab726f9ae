// Package timepal is a small facade over the time package. It obtains the
// current time, converts between Instant (nanosecond precision) and
// WallClock (millisecond precision), compares them, and formats and parses
// them with Patterns against a default zone offset and pattern.
//
// Defaults live in an immutable Config bound to a Facade. The package-level
// functions use a Facade built from DefaultConfig: UTC and the ISO local
// date-time pattern. Services that want other defaults build their own
// Facade once at start-up and share it.
//
// Every operation is synchronous and safe for concurrent use.
package timepal
