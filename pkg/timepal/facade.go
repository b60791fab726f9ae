package timepal

import "fmt"

// Config is the immutable default configuration a Facade renders with.
type Config struct {
	// Offset is the default zone offset. It is applied at render time and
	// wins over any zone baked into a pattern.
	Offset ZoneOffset

	// Pattern is the default pattern used by Now and Format.
	Pattern *Pattern
}

// DefaultConfig returns UTC with the ISO local date-time pattern.
func DefaultConfig() Config {
	return Config{Offset: UTC, Pattern: ISOLocalDateTime}
}

// Facade binds a Config to the now, conversion, comparison, formatting and
// parsing operations. A Facade has no mutable state and is safe for
// concurrent use.
type Facade struct {
	cfg   Config
	clock Clock
}

// Option configures a Facade at construction.
type Option func(*Facade)

// WithClock replaces the system clock, typically with timepaltest.FakeClock.
func WithClock(c Clock) Option {
	return func(f *Facade) { f.clock = c }
}

// New returns a Facade for cfg.
func New(cfg Config, opts ...Option) (*Facade, error) {
	if cfg.Pattern == nil {
		return nil, nullInput("default pattern")
	}
	if _, err := OffsetSeconds(cfg.Offset.Seconds()); err != nil {
		return nil, fmt.Errorf("default offset: %w", err)
	}
	f := &Facade{cfg: cfg, clock: SystemClock{}}
	for _, opt := range opts {
		opt(f)
	}
	if f.clock == nil {
		return nil, nullInput("clock")
	}
	return f, nil
}

// MustNew is New that panics on error.
func MustNew(cfg Config, opts ...Option) *Facade {
	f, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// Config returns the facade's configuration.
func (f *Facade) Config() Config { return f.cfg }

// Now renders the current instant with the default pattern at the default
// offset. It panics with ErrNullInput if the clock reports the zero
// time.Time; NowWith returns that error instead.
func (f *Facade) Now() string {
	s, err := f.cfg.Pattern.format(f.CurrentInstant(), &f.cfg.Offset)
	if err != nil {
		panic(err)
	}
	return s
}

// NowWith renders the current instant with p at the default offset. A zone
// baked into p is ignored.
func (f *Facade) NowWith(p *Pattern) (string, error) {
	return f.FormatWith(p, f.CurrentInstant())
}

// CurrentInstant samples the clock.
func (f *Facade) CurrentInstant() Instant {
	return InstantOf(f.clock.Now())
}

// CurrentWallClock samples the clock at millisecond precision.
func (f *Facade) CurrentWallClock() WallClock {
	return WallClockOf(f.clock.Now())
}

// CurrentLocalDateTime samples the clock and returns the wall time at the
// default offset.
func (f *Facade) CurrentLocalDateTime() LocalDateTime {
	return f.CurrentInstant().In(f.cfg.Offset)
}

// ToWallClock converts i, truncating to milliseconds. Instants whose epoch
// milliseconds do not fit in int64 fail with ErrInvalidField.
func ToWallClock(i Instant) (WallClock, error) {
	if i.IsZero() {
		return WallClock{}, nullInput("instant")
	}
	if !inWallClockRange(i.t) {
		return WallClock{}, fmt.Errorf("%w: instant %s is outside the wall clock range %s to %s",
			ErrInvalidField, i, MinWallClock, MaxWallClock)
	}
	return WallClockOf(i.t), nil
}

// ToInstant converts w. It is the exact inverse of ToWallClock.
func ToInstant(w WallClock) (Instant, error) {
	if w.IsZero() {
		return Instant{}, nullInput("wall clock")
	}
	return Instant{t: w.t}, nil
}

// LocalToWallClock interprets l at the default offset. Callers that need a
// different offset must resolve l with LocalDateTime.At themselves.
func (f *Facade) LocalToWallClock(l LocalDateTime) (WallClock, error) {
	i, err := l.Resolve(f.cfg.Offset)
	if err != nil {
		return WallClock{}, err
	}
	return ToWallClock(i)
}

// CompareInstants returns -1, 0 or +1 as a is before, equal to or after b.
// An absent value sorts before any present one and two absent values are equal.
func CompareInstants(a, b Instant) int {
	return compareAbsent(a.IsZero(), b.IsZero(), func() int { return a.t.Compare(b.t) })
}

// CompareWallClocks orders wall clocks like CompareInstants.
func CompareWallClocks(a, b WallClock) int {
	return compareAbsent(a.IsZero(), b.IsZero(), func() int { return a.t.Compare(b.t) })
}

func compareAbsent(aZero, bZero bool, cmp func() int) int {
	switch {
	case aZero && bZero:
		return 0
	case aZero:
		return -1
	case bZero:
		return 1
	}
	return cmp()
}

// IsFuture reports whether i is strictly after a fresh sample of the clock.
// There is no atomicity between sampling and comparing, so a value equal to
// now may go either way. Absent values are neither future nor past.
func (f *Facade) IsFuture(i Instant) bool {
	return !i.IsZero() && i.After(f.CurrentInstant())
}

// IsPast reports whether i is strictly before a fresh sample of the clock.
func (f *Facade) IsPast(i Instant) bool {
	return !i.IsZero() && i.Before(f.CurrentInstant())
}

// IsFutureWallClock is IsFuture for wall clocks. The clock sample is
// truncated to milliseconds before comparing.
func (f *Facade) IsFutureWallClock(w WallClock) bool {
	return !w.IsZero() && w.After(f.CurrentWallClock())
}

// IsPastWallClock is IsPast for wall clocks, also at millisecond precision.
func (f *Facade) IsPastWallClock(w WallClock) bool {
	return !w.IsZero() && w.Before(f.CurrentWallClock())
}

// Format renders v with the default pattern at the default offset.
func (f *Facade) Format(v Temporal) (string, error) {
	return f.cfg.Pattern.format(v, &f.cfg.Offset)
}

// FormatWith renders v with p at the default offset, overriding any zone
// baked into p.
func (f *Facade) FormatWith(p *Pattern, v Temporal) (string, error) {
	return FormatIn(p, v, f.cfg.Offset)
}

// FormatIn renders v with p at offset z. It is the only formatting entry
// point that honours a caller-chosen zone.
func FormatIn(p *Pattern, v Temporal, z ZoneOffset) (string, error) {
	if p == nil {
		return "", nullInput("pattern")
	}
	return p.format(v, &z)
}

// ParseInstant reads an instant. An offset in the text wins; otherwise the
// default offset applies.
func (f *Facade) ParseInstant(p *Pattern, text string) (Instant, error) {
	r, err := parseWith(p, text)
	if err != nil {
		return Instant{}, err
	}
	return r.instant(&f.cfg.Offset)
}

// ParseWallClock is ParseInstant truncated to milliseconds.
func (f *Facade) ParseWallClock(p *Pattern, text string) (WallClock, error) {
	i, err := f.ParseInstant(p, text)
	if err != nil {
		return WallClock{}, err
	}
	return ToWallClock(i)
}

// ParseLocalDateTime reads a date-time, ignoring any offset in the text.
func ParseLocalDateTime(p *Pattern, text string) (LocalDateTime, error) {
	r, err := parseWith(p, text)
	if err != nil {
		return LocalDateTime{}, err
	}
	return r.LocalDateTime()
}

// ParseLocalDate reads a date.
func ParseLocalDate(p *Pattern, text string) (LocalDate, error) {
	r, err := parseWith(p, text)
	if err != nil {
		return LocalDate{}, err
	}
	return r.LocalDate()
}

func parseWith(p *Pattern, text string) (*Parsed, error) {
	if p == nil {
		return nil, nullInput("pattern")
	}
	return p.Parse(text)
}
