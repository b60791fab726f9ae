package timepal

import "time"

// Temporal is a value a Pattern can render: Instant, WallClock,
// LocalDateTime, LocalDate or LocalTime.
type Temporal interface {
	IsZero() bool
	fields(zone *ZoneOffset) fieldSet
}

type field uint8

const (
	fieldYear field = iota
	fieldMonth
	fieldDay
	fieldDayOfYear
	fieldWeekday
	fieldHour
	fieldMinute
	fieldSecond
	fieldNano
	fieldOffset

	// parse-only
	fieldAMPM
	fieldHourOfAMPM
)

var fieldNames = [...]string{
	fieldYear:       "Year",
	fieldMonth:      "MonthOfYear",
	fieldDay:        "DayOfMonth",
	fieldDayOfYear:  "DayOfYear",
	fieldWeekday:    "DayOfWeek",
	fieldHour:       "HourOfDay",
	fieldMinute:     "MinuteOfHour",
	fieldSecond:     "SecondOfMinute",
	fieldNano:       "NanoOfSecond",
	fieldOffset:     "OffsetSeconds",
	fieldAMPM:       "AmPmOfDay",
	fieldHourOfAMPM: "HourOfAmPm",
}

func (f field) String() string { return fieldNames[f] }

// fieldSet exposes the calendar fields a value carries. Date fields come
// from t's date, time fields from t's clock.
type fieldSet struct {
	t      time.Time
	date   bool
	clock  bool
	zoned  bool
	offset ZoneOffset
}

func (fs fieldSet) has(f field) bool {
	switch f {
	case fieldYear, fieldMonth, fieldDay, fieldDayOfYear, fieldWeekday:
		return fs.date
	case fieldHour, fieldMinute, fieldSecond, fieldNano, fieldAMPM, fieldHourOfAMPM:
		return fs.clock
	case fieldOffset:
		return fs.zoned
	}
	return false
}

func (fs fieldSet) get(f field) int64 {
	switch f {
	case fieldYear:
		return int64(fs.t.Year())
	case fieldMonth:
		return int64(fs.t.Month())
	case fieldDay:
		return int64(fs.t.Day())
	case fieldDayOfYear:
		return int64(fs.t.YearDay())
	case fieldWeekday:
		return int64(fs.t.Weekday())
	case fieldHour:
		return int64(fs.t.Hour())
	case fieldMinute:
		return int64(fs.t.Minute())
	case fieldSecond:
		return int64(fs.t.Second())
	case fieldNano:
		return int64(fs.t.Nanosecond())
	case fieldOffset:
		return int64(fs.offset)
	case fieldAMPM:
		return int64(fs.t.Hour() / 12)
	case fieldHourOfAMPM:
		return int64(fs.t.Hour() % 12)
	}
	return 0
}

// instantFields resolves an absolute time at zone. Without a zone only the
// position on the time-line is known, so no calendar field is available.
func instantFields(t time.Time, zone *ZoneOffset) fieldSet {
	if zone == nil {
		return fieldSet{}
	}
	return fieldSet{t: t.In(zone.Location()), date: true, clock: true, zoned: true, offset: *zone}
}

// localFields never shifts the wall fields; the zone only supplies the offset.
func localFields(t time.Time, date, clock bool, zone *ZoneOffset) fieldSet {
	fs := fieldSet{t: t, date: date, clock: clock}
	if zone != nil {
		fs.zoned = true
		fs.offset = *zone
	}
	return fs
}

func (i Instant) fields(zone *ZoneOffset) fieldSet       { return instantFields(i.t, zone) }
func (w WallClock) fields(zone *ZoneOffset) fieldSet     { return instantFields(w.t, zone) }
func (l LocalDateTime) fields(zone *ZoneOffset) fieldSet { return localFields(l.t, true, true, zone) }
func (d LocalDate) fields(zone *ZoneOffset) fieldSet     { return localFields(d.t, true, false, zone) }
func (tm LocalTime) fields(zone *ZoneOffset) fieldSet    { return localFields(tm.t, false, true, zone) }

var (
	_ Temporal = Instant{}
	_ Temporal = WallClock{}
	_ Temporal = LocalDateTime{}
	_ Temporal = LocalDate{}
	_ Temporal = LocalTime{}
)
