package timepal

import (
	"fmt"
	"math"
	"math/big"
	"time"
)

// Instant is an absolute point on the time-line with nanosecond precision.
// The zero value is absent; build instants with InstantOf or InstantFromEpoch.
type Instant struct {
	t time.Time
}

// InstantOf returns the instant t denotes. The monotonic reading and the
// location of t are dropped. A zero t yields an absent Instant.
func InstantOf(t time.Time) Instant {
	if t.IsZero() {
		return Instant{}
	}
	return Instant{t: t.Round(0).UTC()}
}

// InstantFromEpoch returns the instant sec seconds and nsec nanoseconds after
// 1970-01-01T00:00:00Z.
func InstantFromEpoch(sec, nsec int64) Instant {
	return Instant{t: time.Unix(sec, nsec).UTC()}
}

func (i Instant) Time() time.Time    { return i.t }
func (i Instant) IsZero() bool       { return i.t.IsZero() }
func (i Instant) EpochSecond() int64 { return i.t.Unix() }
func (i Instant) Nano() int          { return i.t.Nanosecond() }
func (i Instant) UnixMilli() int64   { return i.t.UnixMilli() }

func (i Instant) Equal(o Instant) bool  { return i.t.Equal(o.t) }
func (i Instant) Before(o Instant) bool { return i.t.Before(o.t) }
func (i Instant) After(o Instant) bool  { return i.t.After(o.t) }

// Truncate rounds i down to a multiple of d since the Unix epoch. It holds
// for the whole range of Instant, not only the years UnixNano can express.
func (i Instant) Truncate(d time.Duration) Instant {
	if i.IsZero() || d <= 0 {
		return i
	}
	n := new(big.Int).Mul(big.NewInt(i.t.Unix()), big.NewInt(int64(time.Second)))
	n.Add(n, big.NewInt(int64(i.t.Nanosecond())))
	r := n.Mod(n, big.NewInt(int64(d))) // Euclidean, so 0 <= r < d
	return Instant{t: i.t.Add(-time.Duration(r.Int64()))}
}

// In returns the wall-clock date and time of i at offset z.
func (i Instant) In(z ZoneOffset) LocalDateTime {
	if i.IsZero() {
		return LocalDateTime{}
	}
	return LocalDateTimeFrom(i.t.In(z.Location()))
}

func (i Instant) String() string {
	if i.IsZero() {
		return "<absent>"
	}
	return i.t.Format(time.RFC3339Nano)
}

// WallClock is an absolute point on the time-line at millisecond precision.
// The zero value is absent.
type WallClock struct {
	t time.Time
}

// Bounds of WallClock: the instants whose epoch milliseconds fit in int64.
var (
	MinWallClock = WallClockFromMillis(math.MinInt64)
	MaxWallClock = WallClockFromMillis(math.MaxInt64)
)

// inWallClockRange reports whether t truncated to milliseconds fits in int64
// epoch milliseconds.
func inWallClockRange(t time.Time) bool {
	return !t.Before(MinWallClock.t) && t.Before(MaxWallClock.t.Add(time.Millisecond))
}

// WallClockFromMillis returns the wall clock ms milliseconds after the epoch.
func WallClockFromMillis(ms int64) WallClock {
	return WallClock{t: time.UnixMilli(ms).UTC()}
}

// WallClockOf truncates t to millisecond precision. A zero t yields an
// absent WallClock. Times outside MinWallClock and MaxWallClock are clamped
// to the nearest bound; use ToWallClock to have them rejected.
func WallClockOf(t time.Time) WallClock {
	switch {
	case t.IsZero():
		return WallClock{}
	case t.Before(MinWallClock.t):
		return MinWallClock
	case !inWallClockRange(t):
		return MaxWallClock
	}
	return WallClockFromMillis(t.UnixMilli())
}

func (w WallClock) Time() time.Time  { return w.t }
func (w WallClock) IsZero() bool     { return w.t.IsZero() }
func (w WallClock) UnixMilli() int64 { return w.t.UnixMilli() }

func (w WallClock) Equal(o WallClock) bool  { return w.t.Equal(o.t) }
func (w WallClock) Before(o WallClock) bool { return w.t.Before(o.t) }
func (w WallClock) After(o WallClock) bool  { return w.t.After(o.t) }

func (w WallClock) String() string {
	if w.IsZero() {
		return "<absent>"
	}
	return w.t.Format("2006-01-02T15:04:05.000Z07:00")
}

// LocalDateTime is a date and time without an offset. It is ambiguous until
// resolved with At. The zero value is absent.
type LocalDateTime struct {
	t time.Time // wall fields held in UTC
}

// LocalDateTimeOf validates its fields and returns the local date-time.
func LocalDateTimeOf(year int, month time.Month, day, hour, minute, sec, nsec int) (LocalDateTime, error) {
	if err := checkDate(year, month, day); err != nil {
		return LocalDateTime{}, err
	}
	if err := checkClock(hour, minute, sec, nsec); err != nil {
		return LocalDateTime{}, err
	}
	return LocalDateTime{t: time.Date(year, month, day, hour, minute, sec, nsec, time.UTC)}, nil
}

// MustLocalDateTime is LocalDateTimeOf that panics on error. Use only in tests.
func MustLocalDateTime(year int, month time.Month, day, hour, minute, sec, nsec int) LocalDateTime {
	ldt, err := LocalDateTimeOf(year, month, day, hour, minute, sec, nsec)
	if err != nil {
		panic(err)
	}
	return ldt
}

// LocalDateTimeFrom keeps the wall fields of t and discards its location.
func LocalDateTimeFrom(t time.Time) LocalDateTime {
	if t.IsZero() {
		return LocalDateTime{}
	}
	return LocalDateTime{t: time.Date(t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)}
}

func (l LocalDateTime) IsZero() bool                                { return l.t.IsZero() }
func (l LocalDateTime) Date() (year int, month time.Month, day int) { return l.t.Date() }
func (l LocalDateTime) Clock() (hour, minute, sec int)              { return l.t.Clock() }
func (l LocalDateTime) Nanosecond() int                             { return l.t.Nanosecond() }
func (l LocalDateTime) LocalDate() LocalDate                        { return localDateOf(l.t) }
func (l LocalDateTime) LocalTime() LocalTime                        { return localTimeOf(l.t) }

func (l LocalDateTime) Equal(o LocalDateTime) bool  { return l.t.Equal(o.t) }
func (l LocalDateTime) Before(o LocalDateTime) bool { return l.t.Before(o.t) }
func (l LocalDateTime) After(o LocalDateTime) bool  { return l.t.After(o.t) }

// At resolves l as occurring at offset z. The one date-time that lands on
// 0001-01-01T00:00:00Z comes back absent; Resolve reports it instead.
func (l LocalDateTime) At(z ZoneOffset) Instant {
	if l.IsZero() {
		return Instant{}
	}
	return Instant{t: l.t.Add(-z.Duration())}
}

// Resolve is At with errors: ErrNullInput for an absent l and
// ErrInvalidField when l at z is the reserved zero instant.
func (l LocalDateTime) Resolve(z ZoneOffset) (Instant, error) {
	if l.IsZero() {
		return Instant{}, nullInput("local date-time")
	}
	i := l.At(z)
	if i.IsZero() {
		return Instant{}, fmt.Errorf("%w: %s at %s is 0001-01-01T00:00:00Z, which cannot be represented", ErrInvalidField, l, z)
	}
	return i, nil
}

func (l LocalDateTime) String() string {
	if l.IsZero() {
		return "<absent>"
	}
	return l.t.Format("2006-01-02T15:04:05.999999999")
}

// LocalDate is a calendar date without time-of-day or offset.
type LocalDate struct {
	t time.Time // midnight UTC
}

// LocalDateOf validates its fields and returns the date.
func LocalDateOf(year int, month time.Month, day int) (LocalDate, error) {
	if err := checkDate(year, month, day); err != nil {
		return LocalDate{}, err
	}
	return LocalDate{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}, nil
}

// MustLocalDate is LocalDateOf that panics on error. Use only in tests.
func MustLocalDate(year int, month time.Month, day int) LocalDate {
	d, err := LocalDateOf(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

func localDateOf(t time.Time) LocalDate {
	return LocalDate{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d LocalDate) IsZero() bool                                { return d.t.IsZero() }
func (d LocalDate) Date() (year int, month time.Month, day int) { return d.t.Date() }
func (d LocalDate) Equal(o LocalDate) bool                      { return d.t.Equal(o.t) }

// AtTime combines d with a time-of-day.
func (d LocalDate) AtTime(tm LocalTime) LocalDateTime {
	if d.IsZero() {
		return LocalDateTime{}
	}
	h, m, s := tm.Clock()
	y, mo, dd := d.Date()
	return LocalDateTime{t: time.Date(y, mo, dd, h, m, s, tm.Nanosecond(), time.UTC)}
}

func (d LocalDate) String() string {
	if d.IsZero() {
		return "<absent>"
	}
	return d.t.Format("2006-01-02")
}

// LocalTime is a time-of-day without date or offset.
type LocalTime struct {
	t time.Time // held on 1970-01-01 so midnight is not the zero value
}

// LocalTimeOf validates its fields and returns the time-of-day.
func LocalTimeOf(hour, minute, sec, nsec int) (LocalTime, error) {
	if err := checkClock(hour, minute, sec, nsec); err != nil {
		return LocalTime{}, err
	}
	return LocalTime{t: time.Date(1970, time.January, 1, hour, minute, sec, nsec, time.UTC)}, nil
}

func localTimeOf(t time.Time) LocalTime {
	return LocalTime{t: time.Date(1970, time.January, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)}
}

func (tm LocalTime) IsZero() bool                   { return tm.t.IsZero() }
func (tm LocalTime) Clock() (hour, minute, sec int) { return tm.t.Clock() }
func (tm LocalTime) Nanosecond() int                { return tm.t.Nanosecond() }
func (tm LocalTime) Equal(o LocalTime) bool         { return tm.t.Equal(o.t) }

func (tm LocalTime) String() string {
	if tm.IsZero() {
		return "<absent>"
	}
	return tm.t.Format("15:04:05.999999999")
}

func checkDate(year int, month time.Month, day int) error {
	if month < time.January || month > time.December {
		return fmt.Errorf("%w: month %d", ErrInvalidField, month)
	}
	if day < 1 || day > daysIn(year, month) {
		return fmt.Errorf("%w: day %d of %04d-%02d", ErrInvalidField, day, year, month)
	}
	return nil
}

func checkClock(hour, minute, sec, nsec int) error {
	switch {
	case hour < 0 || hour > 23:
		return fmt.Errorf("%w: hour %d", ErrInvalidField, hour)
	case minute < 0 || minute > 59:
		return fmt.Errorf("%w: minute %d", ErrInvalidField, minute)
	case sec < 0 || sec > 59:
		return fmt.Errorf("%w: second %d", ErrInvalidField, sec)
	case nsec < 0 || nsec > 999_999_999:
		return fmt.Errorf("%w: nanosecond %d", ErrInvalidField, nsec)
	}
	return nil
}

// daysIn delegates leap-year rules to the time package.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
