package timepal

// std is the process-wide default Facade. It is never reassigned.
var std = MustNew(DefaultConfig())

// Default returns the Facade behind the package-level functions.
func Default() *Facade { return std }

// The functions below delegate to Default().

func Now() string                                               { return std.Now() }
func NowWith(p *Pattern) (string, error)                        { return std.NowWith(p) }
func CurrentInstant() Instant                                   { return std.CurrentInstant() }
func CurrentWallClock() WallClock                               { return std.CurrentWallClock() }
func CurrentLocalDateTime() LocalDateTime                       { return std.CurrentLocalDateTime() }
func LocalToWallClock(l LocalDateTime) (WallClock, error)       { return std.LocalToWallClock(l) }
func IsFuture(i Instant) bool                                   { return std.IsFuture(i) }
func IsPast(i Instant) bool                                     { return std.IsPast(i) }
func IsFutureWallClock(w WallClock) bool                        { return std.IsFutureWallClock(w) }
func IsPastWallClock(w WallClock) bool                          { return std.IsPastWallClock(w) }
func Format(v Temporal) (string, error)                         { return std.Format(v) }
func FormatWith(p *Pattern, v Temporal) (string, error)         { return std.FormatWith(p, v) }
func ParseInstant(p *Pattern, text string) (Instant, error)     { return std.ParseInstant(p, text) }
func ParseWallClock(p *Pattern, text string) (WallClock, error) { return std.ParseWallClock(p, text) }
