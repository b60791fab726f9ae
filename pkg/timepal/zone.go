package timepal

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ZoneOffset is a fixed offset from UTC in seconds.
type ZoneOffset int32

// UTC is the zero offset and the process default.
const UTC ZoneOffset = 0

// MaxOffset bounds offsets to ±18 hours.
const MaxOffset ZoneOffset = 18 * 3600

// OffsetSeconds returns the offset for the given total seconds.
func OffsetSeconds(seconds int) (ZoneOffset, error) {
	if seconds > int(MaxOffset) || seconds < -int(MaxOffset) {
		return 0, fmt.Errorf("%w: %d seconds is outside ±18:00", ErrInvalidOffset, seconds)
	}
	return ZoneOffset(seconds), nil
}

// OffsetOf returns the offset for hours and minutes. Both must carry the
// same sign, so -5h30m is written OffsetOf(-5, -30).
func OffsetOf(hours, minutes int) (ZoneOffset, error) {
	if minutes < -59 || minutes > 59 {
		return 0, fmt.Errorf("%w: minutes %d", ErrInvalidOffset, minutes)
	}
	if (hours > 0 && minutes < 0) || (hours < 0 && minutes > 0) {
		return 0, fmt.Errorf("%w: hours %d and minutes %d differ in sign", ErrInvalidOffset, hours, minutes)
	}
	return OffsetSeconds(hours*3600 + minutes*60)
}

// MustOffset is OffsetOf that panics on error. Use only for constants and tests.
func MustOffset(hours, minutes int) ZoneOffset {
	z, err := OffsetOf(hours, minutes)
	if err != nil {
		panic(err)
	}
	return z
}

// ParseZoneOffset accepts "Z", "+h", "+hh", "+hh:mm", "+hhmm", "+hh:mm:ss"
// and "+hhmmss", with either sign.
func ParseZoneOffset(s string) (ZoneOffset, error) {
	if s == "Z" || s == "z" {
		return UTC, nil
	}
	if len(s) < 2 || (s[0] != '+' && s[0] != '-') {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, s)
	}
	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	body := s[1:]

	var parts []string
	switch {
	case strings.Contains(body, ":"):
		parts = strings.Split(body, ":")
		if len(parts) > 3 || len(parts[0]) != 2 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, s)
		}
	case len(body) == 1 || len(body) == 2:
		parts = []string{body}
	case len(body) == 4:
		parts = []string{body[:2], body[2:]}
	case len(body) == 6:
		parts = []string{body[:2], body[2:4], body[4:]}
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, s)
	}

	units := [3]int{}
	for i, p := range parts {
		if i > 0 && len(p) != 2 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, s)
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, s)
		}
		units[i] = n
	}
	if units[1] > 59 || units[2] > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOffset, s)
	}
	return OffsetSeconds(sign * (units[0]*3600 + units[1]*60 + units[2]))
}

// Seconds returns the total offset in seconds.
func (z ZoneOffset) Seconds() int { return int(z) }

// Duration returns the offset as a time.Duration.
func (z ZoneOffset) Duration() time.Duration { return time.Duration(z) * time.Second }

// Location returns a fixed time.Location for the offset.
func (z ZoneOffset) Location() *time.Location {
	if z == UTC {
		return time.UTC
	}
	return time.FixedZone(z.String(), int(z))
}

// String renders "Z" for UTC, otherwise "+hh:mm" with ":ss" appended when
// the offset has a seconds component.
func (z ZoneOffset) String() string {
	if z == UTC {
		return "Z"
	}
	h, m, s := z.split()
	out := fmt.Sprintf("%c%02d:%02d", z.sign(), h, m)
	if s != 0 {
		out += fmt.Sprintf(":%02d", s)
	}
	return out
}

func (z ZoneOffset) sign() byte {
	if z < 0 {
		return '-'
	}
	return '+'
}

// split returns the absolute hours, minutes and seconds.
func (z ZoneOffset) split() (int, int, int) {
	abs := int(z)
	if abs < 0 {
		abs = -abs
	}
	return abs / 3600, abs / 60 % 60, abs % 60
}
