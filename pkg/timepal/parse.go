package timepal

import (
	"fmt"
	"maps"
	"time"
)

type parseState struct {
	vals map[field]int64
}

func newParseState() *parseState {
	return &parseState{vals: make(map[field]int64)}
}

// set records v for f. A field seen twice must agree with itself.
func (st *parseState) set(f field, v int64) bool {
	if old, ok := st.vals[f]; ok && old != v {
		return false
	}
	st.vals[f] = v
	return true
}

func (st *parseState) clone() *parseState {
	return &parseState{vals: maps.Clone(st.vals)}
}

// Parsed holds the fields read from text by Pattern.Parse. Resolve it into
// a value with LocalDate, LocalTime, LocalDateTime or Instant.
type Parsed struct {
	vals    map[field]int64
	pattern string
	input   string
	zone    *ZoneOffset
}

// Parse reads text according to p. The whole text must match.
func (p *Pattern) Parse(text string) (*Parsed, error) {
	st := newParseState()
	pos := 0
	for _, e := range p.elems {
		next, ok := e.parse(st, text, pos)
		if !ok {
			return nil, p.parseError(text, fmt.Errorf("%w: mismatch at index %d", ErrUnparseable, pos))
		}
		pos = next
	}
	if pos != len(text) {
		return nil, p.parseError(text, fmt.Errorf("%w: unparsed text at index %d", ErrUnparseable, pos))
	}
	return &Parsed{vals: st.vals, pattern: p.text, input: text, zone: p.zone}, nil
}

func (p *Pattern) parseError(text string, err error) error {
	return &FormatError{Op: "parse", Pattern: p.text, Input: text, Err: err}
}

func (r *Parsed) fail(err error) error {
	return &FormatError{Op: "parse", Pattern: r.pattern, Input: r.input, Err: err}
}

func (r *Parsed) has(f field) bool {
	_, ok := r.vals[f]
	return ok
}

// Offset returns the offset read from the text, if the pattern had one.
func (r *Parsed) Offset() (ZoneOffset, bool) {
	v, ok := r.vals[fieldOffset]
	return ZoneOffset(v), ok
}

// LocalDate resolves the date fields.
func (r *Parsed) LocalDate() (LocalDate, error) {
	d, err := r.date()
	if err != nil {
		return LocalDate{}, r.fail(err)
	}
	return d, nil
}

// LocalTime resolves the time-of-day fields. Missing minutes, seconds and
// fraction default to zero once an hour is present.
func (r *Parsed) LocalTime() (LocalTime, error) {
	tm, err := r.clock()
	if err != nil {
		return LocalTime{}, r.fail(err)
	}
	return tm, nil
}

// LocalDateTime resolves both date and time-of-day fields.
func (r *Parsed) LocalDateTime() (LocalDateTime, error) {
	d, err := r.date()
	if err != nil {
		return LocalDateTime{}, r.fail(err)
	}
	tm, err := r.clock()
	if err != nil {
		return LocalDateTime{}, r.fail(err)
	}
	return d.AtTime(tm), nil
}

// Instant resolves a date-time and places it at the parsed offset, or at the
// pattern's zone when the text carried none.
func (r *Parsed) Instant() (Instant, error) {
	return r.instant(r.zone)
}

func (r *Parsed) instant(fallback *ZoneOffset) (Instant, error) {
	ldt, err := r.LocalDateTime()
	if err != nil {
		return Instant{}, err
	}
	z, ok := r.Offset()
	if !ok {
		if fallback == nil {
			return Instant{}, r.fail(missing(fieldOffset))
		}
		z = *fallback
	}
	return ldt.Resolve(z)
}

func (r *Parsed) date() (LocalDate, error) {
	if !r.has(fieldYear) {
		return LocalDate{}, missing(fieldYear)
	}
	year := int(r.vals[fieldYear])

	var d LocalDate
	switch {
	case r.has(fieldMonth) && r.has(fieldDay):
		var err error
		d, err = LocalDateOf(year, time.Month(r.vals[fieldMonth]), int(r.vals[fieldDay]))
		if err != nil {
			return LocalDate{}, err
		}
		if r.has(fieldDayOfYear) && int64(d.t.YearDay()) != r.vals[fieldDayOfYear] {
			return LocalDate{}, fmt.Errorf("%w: day of year %d conflicts with %s", ErrInvalidField, r.vals[fieldDayOfYear], d)
		}
	case r.has(fieldDayOfYear):
		doy := int(r.vals[fieldDayOfYear])
		last := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
		if doy < 1 || doy > last {
			return LocalDate{}, fmt.Errorf("%w: day of year %d", ErrInvalidField, doy)
		}
		d = LocalDate{t: time.Date(year, time.January, doy, 0, 0, 0, 0, time.UTC)}
	case r.has(fieldMonth):
		return LocalDate{}, missing(fieldDay)
	default:
		return LocalDate{}, missing(fieldMonth)
	}

	if wd, ok := r.vals[fieldWeekday]; ok && time.Weekday(wd) != d.t.Weekday() {
		return LocalDate{}, fmt.Errorf("%w: %s is not a %s", ErrInvalidField, d, time.Weekday(wd))
	}
	return d, nil
}

func (r *Parsed) clock() (LocalTime, error) {
	var hour int64
	switch {
	case r.has(fieldHour):
		hour = r.vals[fieldHour]
		if ampm, ok := r.vals[fieldAMPM]; ok && hour/12 != ampm {
			return LocalTime{}, fmt.Errorf("%w: hour %d conflicts with AM/PM marker", ErrInvalidField, hour)
		}
		if hoa, ok := r.vals[fieldHourOfAMPM]; ok && hour%12 != hoa {
			return LocalTime{}, fmt.Errorf("%w: hour %d conflicts with hour of AM/PM %d", ErrInvalidField, hour, hoa)
		}
	case r.has(fieldHourOfAMPM) && r.has(fieldAMPM):
		hour = r.vals[fieldAMPM]*12 + r.vals[fieldHourOfAMPM]
	case r.has(fieldHourOfAMPM):
		return LocalTime{}, missing(fieldAMPM)
	default:
		return LocalTime{}, missing(fieldHour)
	}
	return LocalTimeOf(int(hour), int(r.vals[fieldMinute]), int(r.vals[fieldSecond]), int(r.vals[fieldNano]))
}
